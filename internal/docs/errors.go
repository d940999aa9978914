package docs

import (
	"fmt"

	"github.com/starford/feather-contrib/internal/apperr"
)

// InitHint is the command that populates the guides submodule.
const InitHint = "git submodule update --init --recursive"

// MissingInputError reports an absent source directory. It is returned
// before anything in the destination is touched.
type MissingInputError struct {
	Path string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("feather-docs submodule not found at %s. Run `%s`", e.Path, InitHint)
}

// Unwrap lets callers match with errors.Is(err, apperr.ErrMissingInput).
func (e *MissingInputError) Unwrap() error {
	return apperr.ErrMissingInput
}
