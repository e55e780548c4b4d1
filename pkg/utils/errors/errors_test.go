package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsCarryTypes(t *testing.T) {
	cases := []struct {
		err     error
		errType ErrorType
	}{
		{New("unknown"), ErrorTypeUnknown},
		{InvalidArgument("bad"), ErrorTypeInvalidArgument},
		{NotFound("missing"), ErrorTypeNotFound},
		{AlreadyExists("dup"), ErrorTypeAlreadyExists},
		{Internal("boom"), ErrorTypeInternal},
		{Domain("neg"), ErrorTypeDomain},
		{Domainf("neg %d", 1), ErrorTypeDomain},
		{InvalidOptionType("swap"), ErrorTypeInvalidOptionType},
		{InvalidStrikes("order"), ErrorTypeInvalidStrikes},
		{InvalidStrikesf("order %d", 2), ErrorTypeInvalidStrikes},
		{NonConvergence("stuck"), ErrorTypeNonConvergence},
		{NonConvergencef("stuck %d", 3), ErrorTypeNonConvergence},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.errType, TypeOf(tc.err), "%v", tc.err)
		assert.True(t, IsType(tc.err, tc.errType))
	}
}

func TestWrapPreservesType(t *testing.T) {
	inner := Domain("volatility must be positive")
	wrapped := Wrapf(inner, "leg %d", 2)

	require.Error(t, wrapped)
	assert.True(t, IsType(wrapped, ErrorTypeDomain))
	assert.Contains(t, wrapped.Error(), "leg 2")
	assert.Contains(t, wrapped.Error(), "volatility must be positive")
}

func TestWrapPlainError(t *testing.T) {
	wrapped := Wrap(fmt.Errorf("io failure"), "reading config")
	assert.True(t, IsType(wrapped, ErrorTypeUnknown))
	assert.Contains(t, wrapped.Error(), "reading config")
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "nothing"))
	assert.NoError(t, Wrapf(nil, "nothing %d", 1))
}

func TestTypeOfStdlibError(t *testing.T) {
	assert.Equal(t, ErrorTypeUnknown, TypeOf(fmt.Errorf("plain")))
	assert.False(t, IsType(fmt.Errorf("plain"), ErrorTypeDomain))
}

func TestWrapDeepChain(t *testing.T) {
	inner := NonConvergence("no bracket")
	mid := Wrap(inner, "brent")
	outer := Wrap(mid, "solve")

	assert.True(t, IsType(outer, ErrorTypeNonConvergence))
}
