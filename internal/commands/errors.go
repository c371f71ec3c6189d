package commands

import "fmt"

// ArgumentError reports a missing or malformed command argument.
// The message is shown to the invoker as is.
type ArgumentError struct {
	msg string
}

func NewArgumentError(msg string) *ArgumentError {
	return &ArgumentError{msg: msg}
}

func (e *ArgumentError) Error() string {
	return e.msg
}

func usageError(name string) *ArgumentError {
	return NewArgumentError(fmt.Sprintf("You must specify a target. Use /%s <id>.", name))
}
