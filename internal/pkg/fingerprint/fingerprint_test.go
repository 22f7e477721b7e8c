package fingerprint_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/assetd/internal/pkg/fingerprint"
)

func TestSumDeterministic(t *testing.T) {
	data := []byte("some payload")
	require.Equal(t, fingerprint.Sum(data), fingerprint.Sum([]byte("some payload")))
}

func TestSumDistinguishesContent(t *testing.T) {
	require.NotEqual(t, fingerprint.Sum([]byte("a")), fingerprint.Sum([]byte("b")))
	require.NotEqual(t, fingerprint.Sum(nil), fingerprint.Sum([]byte{0}))
}

func TestSumShape(t *testing.T) {
	digest := fingerprint.Sum([]byte("x"))
	require.Len(t, digest, 64)
	for _, r := range digest {
		require.Contains(t, "0123456789abcdef", string(r))
	}
}
