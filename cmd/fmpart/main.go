// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Command fmpart partitions a hypergraph given as a plain-text 0/1
// adjacency matrix using the Fiduccia-Mattheyses heuristic, and prints
// the resulting cutset and block membership.
package main

import (
	"flag"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	fm "github.com/cordeliagrey/fmpart"
	"github.com/cordeliagrey/fmpart/fmio"
)

func main() {
	var (
		matrixPath   = flag.String("matrix", "", "path to the 0/1 adjacency matrix file (required)")
		restrictPath = flag.String("restrict", "", "optional path to a file of restricted cell ids, one per line")
		ratio        = flag.Float64("ratio", 0.5, "target balance ratio for block A")
	)
	flag.Parse()

	logger := log.NewLogfmtLogger(os.Stderr)
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)

	if *matrixPath == "" {
		level.Error(logger).Log("msg", "missing required -matrix flag")
		os.Exit(1)
	}

	f, err := os.Open(*matrixPath)
	if err != nil {
		level.Error(logger).Log("msg", "cannot open matrix file", "err", err)
		os.Exit(1)
	}
	matrix, err := fmio.ReadMatrix(f)
	f.Close()
	if err != nil {
		level.Error(logger).Log("msg", "cannot parse matrix file", "err", err)
		os.Exit(1)
	}

	opts := []fm.Option{fm.Ratio(*ratio)}
	if *restrictPath != "" {
		rf, err := os.Open(*restrictPath)
		if err != nil {
			level.Error(logger).Log("msg", "cannot open restrictions file", "err", err)
			os.Exit(1)
		}
		ids, err := fmio.ReadRestrictions(rf)
		rf.Close()
		if err != nil {
			level.Error(logger).Log("msg", "cannot parse restrictions file", "err", err)
			os.Exit(1)
		}
		opts = append(opts, fm.Restrict(ids...))
	}

	p := fm.New(opts...)
	if err := p.InputRoutine(matrix); err != nil {
		level.Error(logger).Log("msg", "failed to ingest hypergraph", "err", err)
		os.Exit(1)
	}

	if err := p.FindMincut(); err != nil {
		level.Error(logger).Log("msg", "partitioning failed", "err", err)
		os.Exit(1)
	}
	level.Info(logger).Log("msg", "partitioning complete", "iterations", p.Iterations(), "cutset", p.Cutset())

	res := fmio.Result{
		Cutset: p.Cutset(),
		BlockA: toInts(p.BlockA().Cells()),
		BlockB: toInts(p.BlockB().Cells()),
	}
	if err := fmio.WriteResult(os.Stdout, res); err != nil {
		level.Error(logger).Log("msg", "failed writing result", "err", err)
		os.Exit(1)
	}
}

func toInts(ids []fm.CellID) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = int(id)
	}
	return out
}
