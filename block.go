// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package fm

import "log"

// Block is one side of a partition: the set of cells currently placed
// there, and the BucketArray used to pick the next cell to move out of
// it. comp is the other block, set once both blocks exist.
type Block struct {
	side   Side
	reg    *registry
	bucket *BucketArray
	comp   *Block
	cells  []CellID
	size   int
}

func newBlock(side Side, reg *registry, pmax int) *Block {
	return &Block{
		side:   side,
		reg:    reg,
		bucket: newBucketArray(pmax, reg),
	}
}

// Side reports which side of the partition blk represents.
func (blk *Block) Side() Side { return blk.side }

// Size reports the number of cells currently placed in blk.
func (blk *Block) Size() int { return blk.size }

// Cells returns the ids of every cell currently placed in blk, in no
// particular order.
func (blk *Block) Cells() []CellID {
	out := make([]CellID, len(blk.cells))
	copy(out, blk.cells)
	return out
}

// addCell places c into blk, staging it in blk's bucket rather than
// slotting it by gain: gains are only meaningful once computed for the
// current pass.
func (blk *Block) addCell(c CellID) {
	blk.cells = append(blk.cells, c)
	blk.reg.cells[c].block = blk.side
	blk.bucket.stage(c)
	blk.size++
}

// removeCell takes c, which must currently be free and bucketed by
// gain, out of blk.
func (blk *Block) removeCell(c CellID) {
	blk.cells = removeCellID(blk.cells, c)
	blk.bucket.removeCell(c)
	blk.size--
}

// removeStagedCell takes c, which has never been bucketed by gain, out
// of blk. Used only while applying ingestion-time restrictions.
func (blk *Block) removeStagedCell(c CellID) {
	blk.cells = removeCellID(blk.cells, c)
	blk.bucket.unstage(c)
	blk.size--
}

// initialize rehydrates blk's bucket at the start of a pass: every cell
// staged since the last pass is unlocked and re-bucketed by its fresh
// gain.
func (blk *Block) initialize() {
	blk.bucket.initialize()
}

// candidateBaseCell returns blk's highest-gain free cell, if any.
func (blk *Block) candidateBaseCell() (CellID, bool) {
	return blk.bucket.candidateBaseCell()
}

// rebucket re-threads c in whichever of blk's or blk.comp's bucket
// currently holds it, based on c's current block. It is block-invariant:
// the same closure works correctly no matter which block it was built
// from, since blk.side and blk.comp.side never change.
func (blk *Block) rebucket(c CellID) {
	if blk.reg.cells[c].block == blk.side {
		blk.bucket.yankCell(c)
	} else {
		blk.comp.bucket.yankCell(c)
	}
}

// moveCell moves the free cell c out of blk and into blk.comp, running
// the full gain-update protocol, and returns the resulting cutset
// delta. This is the one piece of the algorithm with a fixed, critical
// order:
//
//  1. lock c
//  2. adjust the gains of cells affected by c joining blk.comp
//  3. remove c from blk
//  4. add c to blk.comp
//  5. update every incident net's per-side bookkeeping (c's block field
//     has already flipped by step 4)
//  6. adjust the gains of cells affected by c having left blk
func (blk *Block) moveCell(c CellID) int {
	reg := blk.reg
	rebucket := blk.rebucket

	reg.moves++
	if _LOGLEVEL > 0 {
		log.Printf("move %d: cell %d %s -> %s (gain %d)\n", reg.moves, c, blk.side, blk.side.other(), reg.cells[c].gain)
	}

	reg.lockCell(c)

	to := blk.side.other()
	for _, n := range reg.cells[c].nets {
		net := &reg.nets[n]
		if net.locked[to] != 0 {
			continue
		}
		switch net.free[to] {
		case 0:
			reg.incGainsOfFreeCells(n, rebucket)
		case 1:
			reg.decGainTcell(n, to, rebucket)
		}
	}

	blk.removeCell(c)
	comp := blk.comp
	comp.addCell(c)

	cutsetDelta := 0
	for _, n := range reg.cells[c].nets {
		cutsetDelta += reg.cellToBlock(n, c)
	}

	from := blk.side
	for _, n := range reg.cells[c].nets {
		net := &reg.nets[n]
		if net.locked[from] != 0 {
			continue
		}
		switch net.free[from] {
		case 0:
			reg.decGainsOfFreeCells(n, rebucket)
		case 1:
			reg.incGainFcell(n, from, rebucket)
		}
	}

	return cutsetDelta
}
