// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package fm implements the Fiduccia-Mattheyses heuristic for two-way
hypergraph partitioning under a balance constraint: given a hypergraph
(cells and nets, where each net connects two or more cells) split the
cells into two blocks, A and B, so as to minimize the number of nets
with pins in both blocks (the cutset) while keeping the size of A
within one cell of a target ratio of the total.

Basics

A Partitioner owns an arena of cells and an arena of nets, built in one
call to InputRoutine from a symmetric 0/1 adjacency matrix. Cells and
nets are addressed by integer handle (CellID); there are no pointers
into the arena exposed to callers.

The algorithm proceeds in passes. Each pass repeatedly selects a free
"base cell": the highest-gain cell in whichever block currently has
more freedom to move without breaking balance, moves it to the other
block, and incrementally updates the gains of every cell on a net
incident to the move. A pass remembers the best cutset seen along the
way and rolls back to it at the end; FindMincut runs passes until the
cutset stops improving.

Use of build tags

To unlock invariant checking and move/pass tracing, compile your
executable with the build tag `debug`. Under this tag, every cell move
logs a line, every pass logs a line at its start and at its end, and
Stats reports the lifetime count of
passes and moves alongside its usual summary. The default build (no
tag) is the release variant: invariant checks compile away entirely
rather than costing a function call per move, and tracing is silent.

Automatic memory management

The library is written in pure Go. A Partitioner's arena is fixed at
ingestion time: InputRoutine neither resizes it afterwards nor leaks
partial state if validation fails midway.
*/
package fm
