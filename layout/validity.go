package layout

import (
	"github.com/wippyai/jagged/errors"
)

// Validate checks the structural invariants of the whole tree rooted at c:
// every index points inside its content, offsets are monotone, tags are
// in range, and provenance has one label per row. It returns the first
// violation found.
func Validate(c Content) error {
	if c == nil {
		return errors.InvalidInput(errors.PhaseValidate, "nil node")
	}
	return c.Validate()
}

// ValidityError returns the message of the first violation, or "" when
// c is valid.
func ValidityError(c Content) string {
	if err := Validate(c); err != nil {
		return err.Error()
	}
	return ""
}

func invalid(k Kind, row int64, format string, args ...any) error {
	return errors.New(errors.PhaseValidate, errors.KindInvalidData).
		Node(k.String()).
		Row(row).
		Detail(format, args...).
		Build()
}
