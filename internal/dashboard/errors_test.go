package dashboard

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindNone},
		{"logical", &LogicalError{Message: "no"}, KindLogical},
		{"wrapped logical", fmt.Errorf("submit: %w", &LogicalError{Message: "no"}), KindLogical},
		{"transport", &TransportError{Status: 500, Message: "x"}, KindTransport},
		{"plain", errors.New("dial tcp: refused"), KindTransport},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, KindOf(tc.err))
		})
	}
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "", ErrorMessage(nil))
	assert.Equal(t, "X", ErrorMessage(&TransportError{Status: 409, Message: "X"}))
	assert.Equal(t, "dup", ErrorMessage(fmt.Errorf("wrap: %w", &LogicalError{Message: "dup"})))
	assert.Equal(t, "raw", ErrorMessage(errors.New("raw")))
}

func TestTransportErrorString(t *testing.T) {
	assert.Equal(t, "status 404: missing", (&TransportError{Status: 404, Message: "missing"}).Error())
	cause := errors.New("refused")
	err := &TransportError{Message: "Failed", Err: cause}
	assert.Equal(t, "Failed (refused)", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "transport", KindTransport.String())
}
