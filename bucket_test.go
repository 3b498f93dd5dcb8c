// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package fm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestBucket builds a registry with n bare cells (gain 0, in neither a
// gain slot nor the staging list) and a BucketArray over them with the
// given pmax.
func newTestBucket(t *testing.T, pmax, n int) (*registry, *BucketArray) {
	t.Helper()
	reg := newRegistry(n, 0)
	for i := range reg.cells {
		reg.cells[i] = cellState{id: CellID(i), slotIdx: -1}
	}
	return reg, newBucketArray(pmax, reg)
}

func TestBucketArrayInitialState(t *testing.T) {
	_, ba := newTestBucket(t, 5, 0)
	assert.Len(t, ba.head, 11)
	assert.Len(t, ba.tail, 11)
	assert.Equal(t, -5, ba.maxGain)
	_, ok := ba.candidateBaseCell()
	assert.False(t, ok)
}

func TestBucketArrayAddCellTracksMaxGain(t *testing.T) {
	reg, ba := newTestBucket(t, 5, 3)
	reg.cells[0].gain = 1
	reg.cells[1].gain = 1
	reg.cells[2].gain = 5

	ba.addCell(0)
	assert.Equal(t, 1, ba.maxGain)
	c, ok := ba.candidateBaseCell()
	require.True(t, ok)
	assert.Equal(t, CellID(0), c)

	ba.addCell(1)
	assert.Equal(t, 1, ba.maxGain)
	// FIFO within a slot: cell 0 was added first, so it stays head.
	c, ok = ba.candidateBaseCell()
	require.True(t, ok)
	assert.Equal(t, CellID(0), c)

	ba.addCell(2)
	assert.Equal(t, 5, ba.maxGain)
	c, ok = ba.candidateBaseCell()
	require.True(t, ok)
	assert.Equal(t, CellID(2), c)
}

func TestBucketArrayYankCellRebucketsByNewGain(t *testing.T) {
	reg, ba := newTestBucket(t, 5, 3)
	reg.cells[0].gain = 1
	reg.cells[1].gain = 1
	reg.cells[2].gain = 5
	ba.addCell(0)
	ba.addCell(1)
	ba.addCell(2)

	reg.cells[0].gain = 3
	ba.yankCell(0)
	assert.Equal(t, 3, reg.cells[0].gain)
	assert.Equal(t, 5, ba.maxGain) // cell 2 is still on top

	reg.cells[2].gain = 0
	ba.yankCell(2)
	assert.Equal(t, 0, reg.cells[2].gain)
	// max_gain must fall back to the highest remaining occupied slot: 3.
	assert.Equal(t, 3, ba.maxGain)
}

func TestBucketArrayRemoveCellDecrementsMaxGainToEmpty(t *testing.T) {
	reg, ba := newTestBucket(t, 2, 1)
	reg.cells[0].gain = 2
	ba.addCell(0)
	assert.Equal(t, 2, ba.maxGain)

	ba.removeCell(0)
	assert.Equal(t, -2, ba.maxGain)
	_, ok := ba.candidateBaseCell()
	assert.False(t, ok)
}

func TestBucketArrayStageAndInitialize(t *testing.T) {
	reg, ba := newTestBucket(t, 2, 2)
	reg.cells[0].locked = true
	reg.cells[1].locked = true
	ba.stage(0)
	ba.stage(1)
	assert.Equal(t, CellID(0), ba.freeHead)
	assert.Equal(t, CellID(1), ba.freeTail)

	reg.cells[0].gain = 1
	reg.cells[1].gain = -1
	ba.initialize()

	assert.Equal(t, noCellID, ba.freeHead)
	assert.Equal(t, noCellID, ba.freeTail)
	assert.False(t, reg.cells[0].locked)
	assert.False(t, reg.cells[1].locked)
	assert.Equal(t, 1, ba.maxGain)
	c, ok := ba.candidateBaseCell()
	require.True(t, ok)
	assert.Equal(t, CellID(0), c)
}

func TestBucketArraySlotIndexing(t *testing.T) {
	_, ba := newTestBucket(t, 1, 1)
	assert.Equal(t, 1, ba.slot(0))
	assert.Equal(t, 0, ba.slot(-1))
	assert.Equal(t, 2, ba.slot(1))
}
