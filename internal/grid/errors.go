package grid

import "errors"

// Configuration errors returned by NewLayout. They indicate a bad ColumnSpec,
// never bad user data.
var (
	// ErrInvalidWidth indicates a zero or negative column or default width.
	ErrInvalidWidth = errors.New("column width must be positive")

	// ErrEmptyColumnID indicates a column declared without an identifier.
	ErrEmptyColumnID = errors.New("column identifier must not be empty")

	// ErrDuplicateColumn indicates the same identifier declared twice.
	ErrDuplicateColumn = errors.New("duplicate column identifier")

	// ErrInvalidRowHeight indicates a zero or negative row height.
	ErrInvalidRowHeight = errors.New("row height must be positive")
)
