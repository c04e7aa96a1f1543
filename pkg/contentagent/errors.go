// Error taxonomy for capability adapters.
package contentagent

import (
	"errors"
	"fmt"
)

// Kind classifies an adapter failure.
type Kind string

const (
	// KindValidation marks a caller-supplied parameter outside its allowed set.
	KindValidation Kind = "validation"
	// KindTransport marks a network error, timeout, or non-2xx response.
	KindTransport Kind = "transport"
	// KindCredential marks a missing or invalid credential for an external call.
	KindCredential Kind = "credential"
	// KindConfiguration marks an attempt to store an invalid configuration.
	KindConfiguration Kind = "configuration"
)

// Error is a classified adapter failure. Adapters return it as a value inside
// the tool response envelope; it never crosses the dispatch layer as a fault.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func validationError(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func transportError(err error, format string, args ...any) *Error {
	return &Error{Kind: KindTransport, Msg: fmt.Sprintf(format, args...), Err: err}
}

// credentialError names the environment variable that must be set.
func credentialError(envVar string) *Error {
	return &Error{Kind: KindCredential, Msg: fmt.Sprintf("missing credential: %s is not set", envVar)}
}

func configurationError(format string, args ...any) *Error {
	return &Error{Kind: KindConfiguration, Msg: fmt.Sprintf(format, args...)}
}

// KindOf extracts the classification from err. Unclassified errors from
// external calls default to transport.
func KindOf(err error) Kind {
	var agentErr *Error
	if errors.As(err, &agentErr) {
		return agentErr.Kind
	}
	return KindTransport
}
