package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeSite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"full url", "https://www.Example.com/path?q=1", "www.example.com"},
		{"bare host", "example.com", "example.com"},
		{"with port", "http://example.com:8080/page", "example.com"},
		{"empty", "", "unknown"},
		{"garbage", "://not a url", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, SanitizeSite(tt.in))
		})
	}
}
