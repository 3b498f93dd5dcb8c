// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package fm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSnapshotRoundTrip exercises take_snapshot / load_snapshot directly:
// snapshot, perform a handful of further moves, then restore, and check
// the restored state is indistinguishable from the snapshot moment.
func TestSnapshotRoundTrip(t *testing.T) {
	p := New()
	require.NoError(t, p.InputRoutine(s1Matrix()))
	p.initialPass()
	p.computeInitialGains()
	p.blockA.initialize()
	p.blockB.initialize()
	assertStructuralInvariants(t, p)

	p.takeSnapshot()
	snapCutset := p.cutset
	snapCellGains := make([]int, len(p.reg.cells))
	snapCellBlocks := make([]Side, len(p.reg.cells))
	for i, c := range p.reg.cells {
		snapCellGains[i] = c.gain
		snapCellBlocks[i] = c.block
	}
	snapBlockASize := p.blockA.size
	snapBlockBSize := p.blockB.size

	// Move whatever is available a few more times.
	for i := 0; i < 3; i++ {
		c, ok := p.getBaseCell()
		if !ok {
			break
		}
		blk := p.blockFor(p.reg.cells[c].block)
		p.cutset += blk.moveCell(c)
	}
	assertStructuralInvariants(t, p)

	p.loadSnapshot()

	assert.Equal(t, snapCutset, p.cutset)
	assert.Equal(t, snapBlockASize, p.blockA.size)
	assert.Equal(t, snapBlockBSize, p.blockB.size)
	for i, c := range p.reg.cells {
		assert.Equal(t, snapCellGains[i], c.gain, "cell %d gain not restored", i)
		assert.Equal(t, snapCellBlocks[i], c.block, "cell %d block not restored", i)
	}
	assertStructuralInvariants(t, p)
}

// TestLoadSnapshotWithoutPriorTakeIsNoop covers the case where no
// snapshot has been taken yet: load_snapshot must leave the partitioner
// exactly as it found it.
func TestLoadSnapshotWithoutPriorTakeIsNoop(t *testing.T) {
	p := New()
	require.NoError(t, p.InputRoutine(s1Matrix()))
	before := p.cutset
	p.loadSnapshot()
	assert.Equal(t, before, p.cutset)
	assertStructuralInvariants(t, p)
}

// TestPerformPassRollsBackToBestCutset replays performPass's move loop
// by hand, snapshotting only when a move improves on the best cutset
// seen since the pass started, and checks that loadSnapshot leaves the
// live cutset at that best value.
func TestPerformPassRollsBackToBestCutset(t *testing.T) {
	p := New()
	require.NoError(t, p.InputRoutine(s1Matrix()))
	p.initialPass()

	p.computeInitialGains()
	p.blockA.initialize()
	p.blockB.initialize()

	best := p.cutset
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
	assert.Equal(t, best, p.cutset)
}
