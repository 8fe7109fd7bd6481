package journalist

import (
	"errors"
	"fmt"
	"github.com/subsets-io/mas-connector/pkg/errlvl"
)

var (
	errFetchingNews       = errors.New("failed to fetch announcements")
	errParseDate          = errors.New("failed to parse announcement date")
	errPanicGetLatestNews = errors.New("panic in Journalist.GetLatestNews")
)

// Error is the error type for the Journalist.
type Error struct {
	level        errlvl.Lvl // severity level of the error
	errs         []error
	providerName string
}

func (e *Error) Error() string {
	return e.getWrappedError().Error()
}

func (e *Error) Unwrap() error {
	return e.getWrappedError()
}

func (e *Error) WithProvider(providerName string) *Error {
	e.providerName = providerName
	return e
}

func (e *Error) getWrappedError() error {
	err := errors.Join(e.errs...)

	if e.providerName != "" {
		return errlvl.Wrap(fmt.Errorf("provider %s: %w", e.providerName, err), e.level)
	}

	return errlvl.Wrap(err, e.level)
}

// newError creates a new Error instance.
func newError(lvl errlvl.Lvl, errs ...error) *Error {
	return &Error{
		level: lvl,
		errs:  errs,
	}
}
