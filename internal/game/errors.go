package game

import (
	"errors"
	"fmt"
)

// ProtocolError is a client fault: a bad name, an out-of-turn action, an
// illegal amount. It is answered with a single errorMessage to the offending
// viewer; table state is untouched and nothing is logged.
//
// Any other error out of the table is an invariant violation and aborts the
// current hand.
type ProtocolError struct {
	msg string
}

func (e *ProtocolError) Error() string {
	return e.msg
}

func protocolErrorf(format string, args ...any) error {
	return &ProtocolError{msg: fmt.Sprintf(format, args...)}
}

// IsProtocolError reports whether err is a client-protocol error.
func IsProtocolError(err error) bool {
	var pe *ProtocolError
	return errors.As(err, &pe)
}
