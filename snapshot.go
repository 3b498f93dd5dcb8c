// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package fm

// snapshotState is a fully independent copy of every piece of mutable
// state takeSnapshot/loadSnapshot restore: the cutset, both blocks'
// membership and bucket structure, and every cell and net.
type snapshotState struct {
	cutset int
	cells  []cellState
	nets   []netState
	blockA blockSnapshot
	blockB blockSnapshot
}

type blockSnapshot struct {
	cells    []CellID
	size     int
	head     []CellID
	tail     []CellID
	maxGain  int
	freeHead CellID
	freeTail CellID
}

func snapshotBlock(blk *Block) blockSnapshot {
	return blockSnapshot{
		cells:    append([]CellID(nil), blk.cells...),
		size:     blk.size,
		head:     append([]CellID(nil), blk.bucket.head...),
		tail:     append([]CellID(nil), blk.bucket.tail...),
		maxGain:  blk.bucket.maxGain,
		freeHead: blk.bucket.freeHead,
		freeTail: blk.bucket.freeTail,
	}
}

func restoreBlock(blk *Block, s blockSnapshot) {
	blk.cells = append([]CellID(nil), s.cells...)
	blk.size = s.size
	blk.bucket.head = append([]CellID(nil), s.head...)
	blk.bucket.tail = append([]CellID(nil), s.tail...)
	blk.bucket.maxGain = s.maxGain
	blk.bucket.freeHead = s.freeHead
	blk.bucket.freeTail = s.freeTail
}

func cloneCell(c cellState) cellState {
	c.nets = append([]netID(nil), c.nets...)
	return c
}

func cloneNet(n netState) netState {
	n.incident = append([]CellID(nil), n.incident...)
	n.side[0] = append([]CellID(nil), n.side[0]...)
	n.side[1] = append([]CellID(nil), n.side[1]...)
	return n
}

// takeSnapshot copies every piece of mutable state needed to fully
// restore the current partition later with loadSnapshot. performPass
// calls this every time a move brings the live cutset below the lowest
// value seen so far in the current pass.
func (p *Partitioner) takeSnapshot() {
	cells := make([]cellState, len(p.reg.cells))
	for i, c := range p.reg.cells {
		cells[i] = cloneCell(c)
	}
	nets := make([]netState, len(p.reg.nets))
	for i, n := range p.reg.nets {
		nets[i] = cloneNet(n)
	}
	p.snapshot = &snapshotState{
		cutset: p.cutset,
		cells:  cells,
		nets:   nets,
		blockA: snapshotBlock(p.blockA),
		blockB: snapshotBlock(p.blockB),
	}
}

// loadSnapshot restores the partitioner to the state captured by the
// most recent takeSnapshot. It is a no-op if no snapshot has ever been
// taken, which is the case until some pass has moved at least one cell.
func (p *Partitioner) loadSnapshot() {
	if p.snapshot == nil {
		return
	}
	s := p.snapshot
	p.cutset = s.cutset

	cells := make([]cellState, len(s.cells))
	for i, c := range s.cells {
		cells[i] = cloneCell(c)
	}
	nets := make([]netState, len(s.nets))
	for i, n := range s.nets {
		nets[i] = cloneNet(n)
	}
	p.reg.cells = cells
	p.reg.nets = nets

	restoreBlock(p.blockA, s.blockA)
	restoreBlock(p.blockB, s.blockB)
}
