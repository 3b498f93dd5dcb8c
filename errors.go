// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package fm

import (
	"errors"
	"fmt"
	"log"
)

// ErrMalformedInput is wrapped by every error InputRoutine returns: a
// non-square matrix, an entry outside {0, 1}, or a restriction
// referencing a cell id outside the matrix.
var ErrMalformedInput = errors.New("fm: malformed input")

// ErrNotIngested is returned by FindMincut when called before a
// successful InputRoutine.
var ErrNotIngested = errors.New("fm: partitioner has no ingested hypergraph")

// Error returns the error status of the Partitioner, or the empty
// string if ingestion succeeded.
func (p *Partitioner) Error() string {
	if p.err == nil {
		return ""
	}
	return p.err.Error()
}

// Errored reports whether ingestion failed.
func (p *Partitioner) Errored() bool {
	return p.err != nil
}

func (p *Partitioner) seterror(format string, a ...interface{}) error {
	p.err = fmt.Errorf("%w: %s", ErrMalformedInput, fmt.Sprintf(format, a...))
	if _DEBUG {
		log.Println(p.err)
	}
	return p.err
}
