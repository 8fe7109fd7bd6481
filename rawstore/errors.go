package rawstore

import (
	"errors"

	"github.com/subsets-io/mas-connector/pkg/errlvl"
)

// storeError is a service-level error type.
type storeError error

var (
	errMarshal    storeError = errors.New("failed to marshal document")
	errUnmarshal  storeError = errors.New("failed to unmarshal document")
	errWriteFile  storeError = errors.New("failed to write raw file")
	errReadFile   storeError = errors.New("failed to read raw file")
	errWriteState storeError = errors.New("failed to write state file")
	errReadState  storeError = errors.New("failed to read state file")
)

// newError creates a wrapped error instance with the given errors.
func newError(lvl errlvl.Lvl, genericErr storeError, err error) error {
	if err != nil {
		return errlvl.Wrap(errors.Join(genericErr, err), lvl)
	}

	return errlvl.Wrap(genericErr, lvl)
}
