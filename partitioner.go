// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package fm

import (
	"fmt"
	"log"
	"math"
)

// Partitioner holds one hypergraph together with its current partition
// into two blocks and runs the Fiduccia-Mattheyses heuristic over it.
// It is single-threaded: no method is safe to call concurrently with
// another on the same Partitioner.
type Partitioner struct {
	cfg        *configs
	reg        *registry
	pmax       int
	blockA     *Block
	blockB     *Block
	cutset     int
	snapshot   *snapshotState
	ingested   bool
	iterations int
	passes     int
	err        error
}

// New returns a Partitioner configured by opts. It holds no hypergraph
// until InputRoutine succeeds.
func New(opts ...Option) *Partitioner {
	cfg := makeconfigs()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Partitioner{cfg: cfg}
}

// BlockA returns the A block of the current partition.
func (p *Partitioner) BlockA() *Block { return p.blockA }

// BlockB returns the B block of the current partition.
func (p *Partitioner) BlockB() *Block { return p.blockB }

// Cutset returns the number of nets with pins in both blocks.
func (p *Partitioner) Cutset() int { return p.cutset }

// PMax returns the maximum number of nets incident to any single cell,
// computed once by InputRoutine; it is the half-width of every
// BucketArray's gain range.
func (p *Partitioner) PMax() int { return p.pmax }

// Ratio returns the balance ratio configured by the Ratio option.
func (p *Partitioner) Ratio() float64 { return p.cfg.ratio }

// Iterations returns the number of passes the most recent call to
// FindMincut ran before the cutset stopped improving.
func (p *Partitioner) Iterations() int { return p.iterations }

// Pins returns the number of nets incident to cell c.
func (p *Partitioner) Pins(c CellID) int { return p.reg.pins(c) }

// Stats renders a short, human-readable summary of the current
// partition, useful for logging. In a debug build it also reports the
// lifetime number of passes and cell moves performed by this
// Partitioner.
func (p *Partitioner) Stats() string {
	res := fmt.Sprintf(
		"cells=%d nets=%d pmax=%d cutset=%d blockA=%d blockB=%d",
		len(p.reg.cells), len(p.reg.nets), p.pmax, p.cutset, p.blockA.size, p.blockB.size,
	)
	if _DEBUG {
		res += fmt.Sprintf(" passes=%d moves=%d", p.passes, p.reg.moves)
	}
	return res
}

// InputRoutine builds the cell and net arenas from a square, symmetric
// 0/1 adjacency matrix: matrix[i][j] == 1 means cells i and j share a
// net. Only entries above the diagonal create nets; the matrix need
// not be explicitly symmetric below it, but every row must have
// exactly len(matrix) entries and every entry, on either side of the
// diagonal, must be 0 or 1. Cell ids are the 0-based row/column indices, so
// every cell in [0, len(matrix)) is created even if it has no incident
// net.
//
// Every cell starts in block A, except any ids supplied through the
// Restrict option, which start in block B. On error, no partial state
// is left behind; the only effect is that Errored reports true and
// Error describes the problem.
func (p *Partitioner) InputRoutine(matrix [][]int) error {
	i := len(matrix)
	for row, r := range matrix {
		if len(r) != i {
			return p.seterror("row %d has %d entries, want %d: matrix must be square", row, len(r), i)
		}
		for col, v := range r {
			if v != 0 && v != 1 {
				return p.seterror("entry (%d,%d) = %d is not 0 or 1", row, col, v)
			}
		}
	}
	seen := make(map[CellID]bool, len(p.cfg.restrict))
	for _, id := range p.cfg.restrict {
		if int(id) < 0 || int(id) >= i {
			return p.seterror("restriction references cell %d outside [0,%d)", id, i)
		}
		if seen[id] {
			return p.seterror("restriction lists cell %d more than once", id)
		}
		seen[id] = true
	}

	numNets := 0
	for row := 0; row < i; row++ {
		for col := row + 1; col < i; col++ {
			if matrix[row][col] == 1 {
				numNets++
			}
		}
	}

	reg := newRegistry(i, numNets)
	for id := range reg.cells {
		reg.cells[id] = cellState{id: CellID(id), block: SideA, slotIdx: -1}
	}

	n := netID(0)
	for row := 0; row < i; row++ {
		for col := row + 1; col < i; col++ {
			if matrix[row][col] != 1 {
				continue
			}
			reg.nets[n] = netState{id: n}
			reg.addNetToCell(CellID(row), n)
			reg.addNetToCell(CellID(col), n)
			reg.netAddCell(n, CellID(row))
			reg.netAddCell(n, CellID(col))
			n++
		}
	}

	pmax := 0
	for id := range reg.cells {
		if pins := reg.pins(CellID(id)); pins > pmax {
			pmax = pins
		}
	}

	p.reg = reg
	p.pmax = pmax
	p.blockA = newBlock(SideA, reg, pmax)
	p.blockB = newBlock(SideB, reg, pmax)
	p.blockA.comp = p.blockB
	p.blockB.comp = p.blockA

	for id := range reg.cells {
		p.blockA.addCell(CellID(id))
	}
	for _, id := range p.cfg.restrict {
		p.moveToRestrictedBlock(id)
	}
	p.recomputeCutset()

	p.computeInitialGains()
	p.blockA.initialize()
	// With restrictions, block B already holds free cells; bucket them
	// now so the gain updates of initialPass find every free cell
	// slotted. Without restrictions B's staging list is empty and this
	// is a no-op.
	p.blockB.initialize()
	p.ingested = true
	return nil
}

// moveToRestrictedBlock relocates a cell from A to B at ingestion time,
// before any gain has been computed. Unlike Block.moveCell, this is a
// structural relocation: the cell has never been locked or bucketed by
// gain, so there is no gain-update protocol to run, only membership and
// per-side net bookkeeping to fix up.
func (p *Partitioner) moveToRestrictedBlock(id CellID) {
	reg := p.reg
	for _, n := range reg.cells[id].nets {
		net := &reg.nets[n]
		net.count[SideA]--
		net.free[SideA]--
		net.side[SideA] = removeCellID(net.side[SideA], id)
		net.count[SideB]++
		net.free[SideB]++
		net.side[SideB] = append(net.side[SideB], id)
	}
	p.blockA.removeStagedCell(id)
	p.blockB.addCell(id)
}

// recomputeCutset derives the cutset, and every net's cut flag, from
// scratch. Called once after ingestion (including any restrictions)
// rather than threaded through moveToRestrictedBlock's loop, since at
// that point it is a one-time structural setup rather than an
// algorithmic move needing an incremental delta.
func (p *Partitioner) recomputeCutset() {
	p.cutset = 0
	for i := range p.reg.nets {
		net := &p.reg.nets[i]
		net.cut = net.count[SideA] > 0 && net.count[SideB] > 0
		if net.cut {
			p.cutset++
		}
	}
}

// computeInitialGains recomputes every cell's gain from its incident
// nets' current side counts, re-bucketing any cell that is currently
// slotted by gain (a staged cell's slotIdx is -1, so it is simply left
// for the next Block.initialize to slot).
func (p *Partitioner) computeInitialGains() {
	for id := range p.reg.cells {
		cs := &p.reg.cells[id]
		cs.gain = 0
		own, other := cs.block, cs.block.other()
		for _, n := range cs.nets {
			net := &p.reg.nets[n]
			if net.count[own] == 1 {
				cs.gain++
			}
			if net.count[other] == 0 {
				cs.gain--
			}
		}
		if cs.slotIdx >= 0 {
			p.blockFor(cs.block).bucket.yankCell(CellID(id))
		}
	}
}

func (p *Partitioner) blockFor(side Side) *Block {
	if side == SideA {
		return p.blockA
	}
	return p.blockB
}

// IsBalanced reports whether the current partition respects the
// balance constraint with the tight slack of one cell, the threshold
// used to decide when initialPass can stop moving cells.
func (p *Partitioner) IsBalanced() bool {
	const smax = 1
	w := p.blockA.size + p.blockB.size
	target := p.cfg.ratio * float64(w)
	a := float64(p.blockA.size)
	return target-smax <= a && a <= target+smax
}

// getBalanceFactor reports how far block A's size would be from the
// target ratio if cell c were moved to the other block, and whether
// that hypothetical move would still respect balance at all, using the
// wider slack of pmax cells. This wider slack is what lets performPass
// explore trade-offs a tight IsBalanced check would forbid.
func (p *Partitioner) getBalanceFactor(c CellID) (float64, bool) {
	side := p.reg.cells[c].block
	var a, b int
	if side == SideA {
		a, b = p.blockA.size-1, p.blockB.size+1
	} else {
		a, b = p.blockA.size+1, p.blockB.size-1
	}
	w := a + b
	smax := float64(p.pmax)
	target := p.cfg.ratio * float64(w)
	if target-smax <= float64(a) && float64(a) <= target+smax {
		return math.Abs(float64(a) - target), true
	}
	return 0, false
}

func (p *Partitioner) candidateFromBlock(blk *Block) (CellID, float64, bool) {
	c, ok := blk.candidateBaseCell()
	if !ok {
		return 0, 0, false
	}
	bf, ok := p.getBalanceFactor(c)
	if !ok {
		return 0, 0, false
	}
	return c, bf, true
}

// getBaseCell picks the next cell to move: whichever of blockA's and
// blockB's top candidates keeps the partition closer to the target
// ratio after the move. Ties go to B; when only one block has a legal
// candidate, that candidate is picked.
func (p *Partitioner) getBaseCell() (CellID, bool) {
	ca, bfa, oka := p.candidateFromBlock(p.blockA)
	cb, bfb, okb := p.candidateFromBlock(p.blockB)
	switch {
	case !oka && !okb:
		return 0, false
	case !oka:
		return cb, true
	case !okb:
		return ca, true
	case bfa < bfb:
		return ca, true
	default:
		return cb, true
	}
}

// initialPass runs before any pass proper: it repeatedly moves blockA's
// highest-gain free cell to blockB until the partition first becomes
// balanced. InputRoutine places every unrestricted cell in A,
// so without this step the first real pass could start arbitrarily far
// from a legal partition.
func (p *Partitioner) initialPass() {
	for !p.IsBalanced() {
		c, ok := p.blockA.candidateBaseCell()
		if !ok {
			return
		}
		p.cutset += p.blockA.moveCell(c)
	}
}

// performPass runs one full Fiduccia-Mattheyses pass: recompute every
// gain from scratch, rehydrate both blocks' buckets, then repeatedly
// move the best legal base cell, snapshotting the partition every time
// a move brings the cutset below the lowest value seen so far in this
// pass (so always after the pass's first move). At the end it rolls
// back to the best snapshot of this pass; only a pass that moves no
// cell at all falls back to whatever snapshot an earlier pass left.
func (p *Partitioner) performPass() {
	p.passes++
	if _LOGLEVEL > 0 {
		log.Printf("start pass %d: cutset=%d\n", p.passes, p.cutset)
	}

	p.computeInitialGains()
	p.blockA.initialize()
	p.blockB.initialize()

	best := math.MaxInt32
	for {
		c, ok := p.getBaseCell()
		if !ok {
			break
		}
		blk := p.blockFor(p.reg.cells[c].block)
		p.cutset += blk.moveCell(c)
		if p.cutset < best {
			best = p.cutset
			p.takeSnapshot()
		}
	}
	p.loadSnapshot()

	if _LOGLEVEL > 0 {
		log.Printf("end pass %d: cutset=%d\n", p.passes, p.cutset)
	}
}

// FindMincut runs passes until the cutset stops improving and reports
// how many passes ran. It requires a prior successful InputRoutine.
func (p *Partitioner) FindMincut() error {
	if !p.ingested {
		return ErrNotIngested
	}
	p.initialPass()

	prev := math.MaxInt32
	p.performPass()
	p.iterations = 1
	for p.cutset != prev {
		prev = p.cutset
		p.performPass()
		p.iterations++
	}
	return nil
}
