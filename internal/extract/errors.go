package extract

import (
	"fmt"
	"strings"
)

// MissingFieldError reports every required labeled field that could not
// be located in the published content.
type MissingFieldError struct {
	Labels []string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("could not locate required debt field(s): %s", strings.Join(e.Labels, ", "))
}
