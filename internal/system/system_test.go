package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHostOf(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"https://discord.com/api/webhooks/1/abc", "discord.com"},
		{"http://127.0.0.1:8080/hook", "127.0.0.1"},
		{"discord.com", "discord.com"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HostOf(tt.raw), tt.raw)
	}
}

func TestDetermineOS(t *testing.T) {
	assert.Contains(t, []string{"windows", "linux", "darwin", "unknown"}, DetermineOS())
}
