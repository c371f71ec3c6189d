package gatekeeper

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/devusSs/court-kraken/internal/clients"
)

func TestModOnly(t *testing.T) {
	ran := 0
	h := ModOnly(func(*clients.Client, string) error {
		ran++
		return nil
	})

	err := h(&clients.Client{}, "1")
	var ce *ClientError
	assert.True(t, errors.As(err, &ce))
	assert.Equal(t, "You must be authorized to do that.", err.Error())
	assert.Equal(t, 0, ran)

	assert.Error(t, h(nil, "1"))
	assert.Equal(t, 0, ran)

	assert.NoError(t, h(&clients.Client{IsMod: true}, "1"))
	assert.Equal(t, 1, ran)
}
