package mtree

import (
	"fmt"
	"strconv"
)

// ConfigurationError is returned from [Build]
// when the leaf count is not a positive power of two,
// or when the number of leaf inputs does not match the leaf count.
//
// No tree is produced alongside a ConfigurationError.
type ConfigurationError struct {
	LeafCount int
	NumLeaves int

	// Err holds every problem found with the inputs.
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf(
		"invalid tree configuration (leaf count %d, %d leaf inputs): %v",
		e.LeafCount, e.NumLeaves, e.Err,
	)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// BoundsError is returned from [*Tree.FindPath]
// when the requested index does not refer to a leaf.
type BoundsError struct {
	Index     int
	LeafCount int
}

func (e *BoundsError) Error() string {
	return "leaf index " + strconv.Itoa(e.Index) +
		" out of range [0, " + strconv.Itoa(e.LeafCount) + ")"
}
