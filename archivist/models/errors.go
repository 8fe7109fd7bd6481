package models

import (
	"errors"

	"github.com/subsets-io/mas-connector/pkg/errlvl"
)

// modelError is a service-level error type.
type modelError error

var (
	errNameEmpty           modelError = errors.New("name is empty")
	errNameTooLong         modelError = errors.New("name is too long")
	errSourceIDTooLong     modelError = errors.New("source_id is too long")
	errTitleTooLong        modelError = errors.New("title is too long")
	errSeriesEmpty         modelError = errors.New("series is empty")
	errSeriesTooLong       modelError = errors.New("series is too long")
	errDateEmpty           modelError = errors.New("date is empty")
	errHashTooLong         modelError = errors.New("hash is too long")
	errProviderNameTooLong modelError = errors.New("provider_name is too long")
	errURLEmpty            modelError = errors.New("url is empty")
	errURLTooLong          modelError = errors.New("url is too long")
	errDescTooLong         modelError = errors.New("description is too long")
	errPublishedAtEmpty    modelError = errors.New("published_at is empty")
	errJobNameEmpty        modelError = errors.New("job_name is empty")
	errUnknownStatus       modelError = errors.New("unknown run status")
	errValidation          modelError = errors.New("validation failed")
	errCreation            modelError = errors.New("creation failed")
	errUpdate              modelError = errors.New("update failed")
	errFind                modelError = errors.New("find failed")
)

// newError creates a wrapped error instance with the given errors.
func newError(lvl errlvl.Lvl, genericErr modelError, err error) error {
	if err != nil {
		return errlvl.Wrap(errors.Join(genericErr, err), lvl)
	}

	return errlvl.Wrap(genericErr, lvl)
}
