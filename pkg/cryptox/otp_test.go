package cryptox

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateOTPShape(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := GenerateOTP()
		require.NoError(t, err)
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 100000)
		require.LessOrEqual(t, n, 999999)
	}
}

func TestFingerprintOTP(t *testing.T) {
	fp := FingerprintOTP("123456")

	// Deterministic, hex-encoded sha256.
	require.Equal(t, FingerprintOTP("123456"), fp)
	require.Len(t, fp, 64)
	require.NotEqual(t, FingerprintOTP("123457"), fp)
	require.NotContains(t, fp, "123456")
}
