package gen

import (
	"github.com/hwfuzz/stimgen/pkg/category"
	"github.com/hwfuzz/stimgen/pkg/width"
)

// Constraint biases or restricts selection during a generation run. At most
// one filter and one weighting is effective per axis; absence means uniform
// selection over everything the instruction set declares.
type Constraint interface {
	implConstraint()
}

// CategoryWhiteList makes only the listed categories eligible.
type CategoryWhiteList struct {
	Categories []category.Category
}

// CategoryBlackList excludes the listed categories.
type CategoryBlackList struct {
	Categories []category.Category
}

// CategoryWeight assigns an integer weight to one category.
type CategoryWeight struct {
	Category category.Category
	Weight   int64
}

// CategoryDistribution biases category-based selection. Weights are an
// ordered slice, never a map: selection must not depend on iteration order.
type CategoryDistribution struct {
	Weights []CategoryWeight
}

// RangeWeight assigns an integer weight to one address range.
type RangeWeight struct {
	Range  width.Range
	Weight int64
}

// MemoryDistribution biases memory address sampling toward the listed ranges.
type MemoryDistribution struct {
	Buckets []RangeWeight
}

// IODistribution biases I/O address sampling toward the listed ranges.
type IODistribution struct {
	Buckets []RangeWeight
}

func (CategoryWhiteList) implConstraint()    {}
func (CategoryBlackList) implConstraint()    {}
func (CategoryDistribution) implConstraint() {}
func (MemoryDistribution) implConstraint()   {}
func (IODistribution) implConstraint()       {}
