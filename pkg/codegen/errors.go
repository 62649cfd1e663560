package codegen

import "fmt"

// DuplicateLabelError reports a second definition of an already bound
// label.
type DuplicateLabelError struct {
	Name string
}

func (e *DuplicateLabelError) Error() string {
	return fmt.Sprintf("duplicate label %q", e.Name)
}

// OperandRangeError reports an instruction operand outside the range
// its encoding can hold. It is raised at emission time; the failing
// operation emits nothing.
type OperandRangeError struct {
	Op    string
	Value int
	Min   int
	Max   int
}

func (e *OperandRangeError) Error() string {
	return fmt.Sprintf("%s: operand %d out of range [%d, %d]", e.Op, e.Value, e.Min, e.Max)
}

// UnresolvedLabelError reports a fixup whose target label was never
// defined. Offset is the buffer offset of the placeholder bytes, which
// locates the emission call that referenced the label.
type UnresolvedLabelError struct {
	Label  string
	Offset int
}

func (e *UnresolvedLabelError) Error() string {
	return fmt.Sprintf("unresolved label %q referenced by fixup at offset 0x%04X", e.Label, e.Offset)
}

// BranchOutOfRangeError reports a relative branch whose computed
// displacement does not fit in a signed byte.
type BranchOutOfRangeError struct {
	Offset       int
	Displacement int
}

func (e *BranchOutOfRangeError) Error() string {
	return fmt.Sprintf("relative branch at offset 0x%04X: displacement %d outside [-128, 127]", e.Offset, e.Displacement)
}
