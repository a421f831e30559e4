package dashboard

import (
	"errors"
	"fmt"
)

// Kind classifies the outcome of a dashboard request.
type Kind int

const (
	KindNone Kind = iota
	KindTransport
	KindLogical
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindTransport:
		return "transport"
	case KindLogical:
		return "logical"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

const (
	DetailsFailedMessage = "Failed to load event details."
	// GenericServerMessage is shown when a failed submission carries no
	// usable message of its own.
	GenericServerMessage = "An unexpected server error occurred."
)

// TransportError reports a request that did not complete with a 2xx status.
// Status is zero when no response was received at all.
type TransportError struct {
	Status  int
	Message string
	Body    string
	Err     error
}

func (e *TransportError) Error() string {
	if e.Status == 0 {
		if e.Err != nil {
			return fmt.Sprintf("%s (%v)", e.Message, e.Err)
		}
		return e.Message
	}
	return fmt.Sprintf("status %d: %s", e.Status, e.Message)
}

func (e *TransportError) Unwrap() error { return e.Err }

// LogicalError reports a 2xx response whose payload indicates failure.
type LogicalError struct {
	Message string
}

func (e *LogicalError) Error() string { return e.Message }

// KindOf classifies err. Any error that is not a LogicalError counts as a
// transport failure.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var logical *LogicalError
	if errors.As(err, &logical) {
		return KindLogical
	}
	return KindTransport
}

// ErrorMessage returns the text that should be shown to the user for err.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	if transport, ok := AsTransport(err); ok {
		return transport.Message
	}
	var logical *LogicalError
	if errors.As(err, &logical) {
		return logical.Message
	}
	return err.Error()
}

// AsTransport unwraps err to a TransportError.
func AsTransport(err error) (*TransportError, bool) {
	var transport *TransportError
	if errors.As(err, &transport) {
		return transport, true
	}
	return nil, false
}
