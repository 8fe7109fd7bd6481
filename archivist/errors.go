package archivist

import (
	"errors"

	"github.com/subsets-io/mas-connector/pkg/errlvl"
)

// archivistError is a service-level error type.
type archivistError error

var (
	errFailedMigration  archivistError = errors.New("failed to migrate schema")
	errFailedConnection archivistError = errors.New("failed to connect to database")
)

// newError creates a wrapped fatal error instance with the given errors.
func newError(genericErr archivistError, err error) error {
	if err != nil {
		return errlvl.Wrap(errors.Join(genericErr, err), errlvl.FATAL)
	}

	return errlvl.Wrap(genericErr, errlvl.FATAL)
}
