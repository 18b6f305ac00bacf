package costsheet

import (
	"errors"
	"fmt"
)

// ErrorSentinel is the computed value displayed by a cell whose formula failed.
const ErrorSentinel = "#ERROR"

// ErrFormula is the root of every formula evaluation error.
var ErrFormula = errors.New("formula error")

var (
	ErrUnknownFunction   = fmt.Errorf("%w: unknown function", ErrFormula)
	ErrBadReference      = fmt.Errorf("%w: malformed reference", ErrFormula)
	ErrCircularReference = fmt.Errorf("%w: circular reference detected", ErrFormula)
	ErrUnparseable       = fmt.Errorf("%w: unparseable expression", ErrFormula)
)

// ErrExtent reports a grid extent that is negative or exceeds the limits
// checked by CheckExtent.
var ErrExtent = errors.New("invalid grid extent")
