// Package gatekeeper decides who may run which command.
package gatekeeper

import "github.com/devusSs/court-kraken/internal/clients"

// Handler runs a command for client with the raw argument string.
type Handler func(client *clients.Client, arg string) error

// ClientError is reported back to the invoking client as an OOC message.
type ClientError struct {
	msg string
}

func NewClientError(msg string) *ClientError {
	return &ClientError{msg: msg}
}

func (e *ClientError) Error() string {
	return e.msg
}

var errNotAuthorized = NewClientError("You must be authorized to do that.")

// Wraps h so it only runs for moderators.
func ModOnly(h Handler) Handler {
	return func(client *clients.Client, arg string) error {
		if !IsModerator(client) {
			return errNotAuthorized
		}
		return h(client, arg)
	}
}

func IsModerator(client *clients.Client) bool {
	return client != nil && client.IsMod
}
