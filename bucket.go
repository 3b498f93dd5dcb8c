// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package fm

// BucketArray is the gain-indexed priority structure a Block uses to
// find its highest-gain free cell in O(1). Slot i holds every currently
// free cell whose gain is i-pmax, threaded through an intrusive doubly
// linked list (cellState.prev/next); a second such list, headed by
// freeHead/freeTail, stages cells that are not yet sorted by gain: newly
// ingested cells and cells still locked from the previous pass.
type BucketArray struct {
	pmax     int
	reg      *registry
	head     []CellID
	tail     []CellID
	maxGain  int
	freeHead CellID
	freeTail CellID
}

func newBucketArray(pmax int, reg *registry) *BucketArray {
	n := 2*pmax + 1
	head := make([]CellID, n)
	tail := make([]CellID, n)
	for i := range head {
		head[i] = noCellID
		tail[i] = noCellID
	}
	return &BucketArray{
		pmax:     pmax,
		reg:      reg,
		head:     head,
		tail:     tail,
		maxGain:  -pmax,
		freeHead: noCellID,
		freeTail: noCellID,
	}
}

func (b *BucketArray) slot(gain int) int {
	idx := gain + b.pmax
	if idx < 0 || idx >= len(b.head) {
		debugPanic("bucket: gain %d out of range [-%d,%d]", gain, b.pmax, b.pmax)
	}
	return idx
}

func (b *BucketArray) linkTail(c CellID, head, tail *CellID) {
	cs := &b.reg.cells[c]
	cs.prev, cs.next = noCellID, noCellID
	if *tail == noCellID {
		*head, *tail = c, c
		return
	}
	b.reg.cells[*tail].next = c
	cs.prev = *tail
	*tail = c
}

func (b *BucketArray) unlink(c CellID, head, tail *CellID) {
	cs := &b.reg.cells[c]
	if cs.prev != noCellID {
		b.reg.cells[cs.prev].next = cs.next
	} else {
		*head = cs.next
	}
	if cs.next != noCellID {
		b.reg.cells[cs.next].prev = cs.prev
	} else {
		*tail = cs.prev
	}
	cs.prev, cs.next = noCellID, noCellID
}

// addCell threads c into the slot matching its current gain.
func (b *BucketArray) addCell(c CellID) {
	cs := &b.reg.cells[c]
	idx := b.slot(cs.gain)
	b.linkTail(c, &b.head[idx], &b.tail[idx])
	cs.slotIdx = idx
	if cs.gain > b.maxGain {
		b.maxGain = cs.gain
	}
}

// removeCell unlinks c from the gain slot it was last added to
// (cs.slotIdx), regardless of whatever its gain has since become.
func (b *BucketArray) removeCell(c CellID) {
	cs := &b.reg.cells[c]
	idx := cs.slotIdx
	if idx < 0 {
		debugPanic("bucket: removeCell(%d) called on a staged, not bucketed, cell", c)
	}
	wasTop := idx == b.slot(b.maxGain)
	b.unlink(c, &b.head[idx], &b.tail[idx])
	cs.slotIdx = -1
	if wasTop && b.head[idx] == noCellID {
		b.decrementMaxGain()
	}
}

// yankCell re-threads c after its gain has changed, removing it from
// the slot it occupied before the change and adding it to the slot
// matching its new gain.
func (b *BucketArray) yankCell(c CellID) {
	b.removeCell(c)
	b.addCell(c)
}

// decrementMaxGain scans downward for the new highest occupied slot.
// O(pmax) worst case, amortized O(1) in the usual run of a pass.
func (b *BucketArray) decrementMaxGain() {
	for b.maxGain > -b.pmax {
		b.maxGain--
		if b.head[b.slot(b.maxGain)] != noCellID {
			break
		}
	}
}

// candidateBaseCell returns the cell occupying the highest occupied gain
// slot, if any.
func (b *BucketArray) candidateBaseCell() (CellID, bool) {
	c := b.head[b.slot(b.maxGain)]
	if c == noCellID {
		return 0, false
	}
	return c, true
}

// stage appends c to the free-cell staging list, outside of any gain
// slot.
func (b *BucketArray) stage(c CellID) {
	b.linkTail(c, &b.freeHead, &b.freeTail)
	b.reg.cells[c].slotIdx = -1
}

// unstage removes c from the staging list without ever having added it
// to a gain slot. Used only while applying ingestion-time restrictions,
// before gains exist.
func (b *BucketArray) unstage(c CellID) {
	b.unlink(c, &b.freeHead, &b.freeTail)
}

// initialize unlocks every cell parked in the staging list and moves it
// into the gain slot matching its (freshly computed) gain, then empties
// the staging list. Called at the start of every pass.
func (b *BucketArray) initialize() {
	c := b.freeHead
	for c != noCellID {
		next := b.reg.cells[c].next
		b.reg.unlockCell(c)
		b.addCell(c)
		c = next
	}
	b.freeHead, b.freeTail = noCellID, noCellID
}
