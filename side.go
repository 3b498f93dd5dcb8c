// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package fm

// Side names one of the two blocks produced by a Partitioner.
type Side int8

// The two sides of a partition.
const (
	SideA Side = iota
	SideB
)

var sideNames = [2]string{"A", "B"}

func (s Side) String() string {
	return sideNames[s]
}

// other returns the side opposite s.
func (s Side) other() Side {
	return 1 - s
}
