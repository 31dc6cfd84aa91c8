package xerrors_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/autoserve/autoserve/pkg/xerrors"
)

func TestWrap(t *testing.T) {
	t.Run("wrapped error unwraps to its cause", func(t *testing.T) {
		cause := errors.New("root cause")
		wrapped := xerrors.Wrap(cause)

		if !errors.Is(wrapped, cause) {
			t.Errorf("wrapped error does not match its cause: %v", wrapped)
		}
	})

	t.Run("message contains cause and call site", func(t *testing.T) {
		cause := errors.New("root cause")
		wrapped := xerrors.Wrap(cause)

		msg := wrapped.Error()
		if !strings.Contains(msg, "root cause") {
			t.Errorf("message does not contain cause: %s", msg)
		}
		if !strings.Contains(msg, "xerrors_test") {
			t.Errorf("message does not contain call site: %s", msg)
		}
	})

	t.Run("note is included in message", func(t *testing.T) {
		wrapped := xerrors.WrapWithNote("while doing something", errors.New("oops"))

		if !strings.Contains(wrapped.Error(), "while doing something") {
			t.Errorf("message does not contain note: %s", wrapped.Error())
		}
	})
}
