package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidKind   = errors.New("invalid transaction kind")
	ErrEmptyCategory = errors.New("category is required")
	ErrInvalidAmount = errors.New("amount must be a non-negative finite number")
	ErrInvalidMonth  = errors.New("month must be in YYYY-MM form")
)
