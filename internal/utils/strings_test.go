package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlural(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{0, "0 moderators"},
		{1, "1 moderator"},
		{2, "2 moderators"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Plural(tt.count, "moderator"))
	}
}

func TestMarshalStruct(t *testing.T) {
	out, err := MarshalStruct(struct {
		Name string `json:"name"`
	}{Name: "Phoenix"})
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Phoenix"}`, out)
}
