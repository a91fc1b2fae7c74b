package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type codeError struct{ code string }

func (e *codeError) Error() string { return e.code }

func TestAsType(t *testing.T) {
	err := Wrap(&codeError{code: "VOUCHER_NOT_FOUND"}, "get voucher")

	target, ok := AsType[*codeError](err)
	require.True(t, ok)
	assert.Equal(t, "VOUCHER_NOT_FOUND", target.code)

	_, ok = AsType[*codeError](New("plain"))
	assert.False(t, ok)
}

func TestWrapKeepsIdentity(t *testing.T) {
	sentinel := New("sequence exhausted")

	assert.True(t, Is(Wrapf(sentinel, "allocate %s", "RL-20240110"), sentinel))
	assert.True(t, Is(WithStack(sentinel), sentinel))
	assert.Nil(t, Wrap(nil, "nothing to wrap"))
	assert.Contains(t, fmt.Sprintf("%+v", Errorf("item %s", "AB0001")), "TestWrapKeepsIdentity")
}
