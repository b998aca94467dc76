package aprs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculatePasscode(t *testing.T) {
	code, err := CalculatePasscode("N0CALL")
	require.NoError(t, err)
	assert.Equal(t, 13023, code)
}

func TestCalculatePasscodeIgnoresCaseAndSSID(t *testing.T) {
	base, err := CalculatePasscode("N0CALL")
	require.NoError(t, err)

	lower, err := CalculatePasscode("n0call")
	require.NoError(t, err)
	assert.Equal(t, base, lower)

	withSSID, err := CalculatePasscode("N0CALL-9")
	require.NoError(t, err)
	assert.Equal(t, base, withSSID)
}

func TestCalculatePasscodeInvalid(t *testing.T) {
	_, err := CalculatePasscode("")
	assert.Error(t, err)

	_, err = CalculatePasscode("TOOLONGCALL")
	assert.Error(t, err)
}
