package gen

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/hwfuzz/stimgen/pkg/width"
)

// ErrEmptyLabelRegistry reports a label reference requested before any jump
// target was registered in the run.
var ErrEmptyLabelRegistry = errors.New("gen: no jump targets registered")

// ErrNoEligibleInstruction reports that the active category constraints leave
// nothing selectable in the catalog.
var ErrNoEligibleInstruction = errors.New("gen: no eligible instruction")

// WidthViolationError reports an explicit field initializer outside its
// declared width's range.
type WidthViolationError struct {
	Value *big.Int
	Width width.Width
}

func (e *WidthViolationError) Error() string {
	return fmt.Sprintf("gen: initializer %s does not fit %s %s", e.Value, e.Width, e.Width.Range())
}

// IllegalRegisterError reports an explicit register initializer that does not
// belong to the required register file.
type IllegalRegisterError struct {
	File  string
	Index int
}

func (e *IllegalRegisterError) Error() string {
	return fmt.Sprintf("gen: register index %d is not a member of file %q", e.Index, e.File)
}
