// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package fm

// configs stores the values of the parameters of a Partitioner.
type configs struct {
	ratio    float64
	restrict []CellID
}

func makeconfigs() *configs {
	return &configs{ratio: 0.5}
}

// Option configures a Partitioner at construction time.
type Option func(*configs)

// Ratio is a configuration option (function). Used as a parameter in New
// it sets the balance ratio r used by IsBalanced and the balance-factor
// computation that guides base cell selection: a partition is considered
// balanced when the size of block A stays within one cell of r * (total
// size). Must lie in the open interval (0, 1); the default is 0.5. A
// value outside that range is ignored, since a functional option has no
// way to report an error back to the caller.
func Ratio(r float64) Option {
	return func(c *configs) {
		if r > 0 && r < 1 {
			c.ratio = r
		}
	}
}

// Restrict is a configuration option (function). Used as a parameter in
// New it forces the given cell ids into block B at ingestion time,
// before any gain is computed, rather than letting InputRoutine place
// every cell in block A by default. InputRoutine validates the ids
// against the matrix dimension and rejects duplicates.
func Restrict(cellIDs ...int) Option {
	return func(c *configs) {
		for _, id := range cellIDs {
			c.restrict = append(c.restrict, CellID(id))
		}
	}
}
