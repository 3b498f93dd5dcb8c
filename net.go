// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package fm

// netState is one arena slot for a net (hyperedge). Per-side bookkeeping
// is kept as arrays indexed by Side rather than duplicated blockA/blockB
// fields or A/B branches throughout the gain-update code.
type netState struct {
	id       netID
	incident []CellID   // every cell touching this net, either side
	count    [2]int     // total cells currently on each side
	free     [2]int     // free (unlocked) cells currently on each side
	locked   [2]int     // locked cells currently on each side
	side     [2][]CellID
	cut      bool
}

// netAddCell records c as incident to n during ingestion, placing it on
// whichever side c currently occupies. It is idempotent.
func (r *registry) netAddCell(n netID, c CellID) {
	net := &r.nets[n]
	for _, e := range net.incident {
		if e == c {
			return
		}
	}
	net.incident = append(net.incident, c)
	side := r.cells[c].block
	net.count[side]++
	net.free[side]++
	net.side[side] = append(net.side[side], c)
}

// cellToBlock updates net n's bookkeeping after cell c's block field has
// already been flipped to its new side; it moves c between the two
// side lists and returns the resulting cutset delta (-1, 0 or +1). The
// cell is always locked at the point this runs, since it is only called
// from the middle of Block.moveCell's critical sequence.
func (r *registry) cellToBlock(n netID, c CellID) int {
	net := &r.nets[n]
	to := r.cells[c].block
	from := to.other()

	net.side[from] = removeCellID(net.side[from], c)
	net.side[to] = append(net.side[to], c)

	net.locked[from]--
	net.locked[to]++
	net.count[from]--
	net.count[to]++
	if net.count[from] < 0 || net.count[to] < 0 || net.locked[from] < 0 {
		debugPanic("net %d: negative count moving cell %d from %s to %s", n, c, from, to)
	}

	wasCut := net.cut
	isCut := net.count[SideA] > 0 && net.count[SideB] > 0
	net.cut = isCut
	switch {
	case isCut && !wasCut:
		return 1
	case !isCut && wasCut:
		return -1
	default:
		return 0
	}
}

// incGainsOfFreeCells raises the gain of every free cell incident to n
// by one and re-buckets it. Used when n has no free cell on the side a
// move's base cell is headed towards: the move turns n from uncut into
// a net where every remaining free cell would close the cut again if it
// followed.
func (r *registry) incGainsOfFreeCells(n netID, rebucket func(CellID)) {
	for _, c := range r.nets[n].incident {
		if !r.cells[c].locked {
			r.cells[c].gain++
			rebucket(c)
		}
	}
}

// decGainsOfFreeCells is the mirror of incGainsOfFreeCells, used on the
// side the base cell is leaving.
func (r *registry) decGainsOfFreeCells(n netID, rebucket func(CellID)) {
	for _, c := range r.nets[n].incident {
		if !r.cells[c].locked {
			r.cells[c].gain--
			rebucket(c)
		}
	}
}

// decGainTcell lowers the gain of the single free cell on side, used
// when n has exactly one free cell on the side the base cell is headed
// towards.
func (r *registry) decGainTcell(n netID, side Side, rebucket func(CellID)) {
	for _, c := range r.nets[n].side[side] {
		if !r.cells[c].locked {
			r.cells[c].gain--
			rebucket(c)
			return
		}
	}
	debugPanic("net %d: decGainTcell(%s) found no free cell though free[%s]==1", n, side, side)
}

// incGainFcell is the mirror of decGainTcell, used on the side the base
// cell is leaving.
func (r *registry) incGainFcell(n netID, side Side, rebucket func(CellID)) {
	for _, c := range r.nets[n].side[side] {
		if !r.cells[c].locked {
			r.cells[c].gain++
			rebucket(c)
			return
		}
	}
	debugPanic("net %d: incGainFcell(%s) found no free cell though free[%s]==1", n, side, side)
}
