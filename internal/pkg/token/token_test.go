package token_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/assetd/internal/pkg/token"
)

func TestNewIsURLSafe(t *testing.T) {
	value := token.New()
	require.Len(t, value, 64)
	for _, r := range value {
		ok := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_'
		require.True(t, ok, "unexpected character %q", r)
	}
}

func TestNewIsUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		value := token.New()
		_, dup := seen[value]
		require.False(t, dup)
		seen[value] = struct{}{}
	}
}
