// Package commands implements the OOC slash commands players and
// moderators can run.
package commands

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/samber/lo"

	"github.com/devusSs/court-kraken/internal/clients"
	"github.com/devusSs/court-kraken/internal/gatekeeper"
	"github.com/devusSs/court-kraken/internal/logging"
	"github.com/devusSs/court-kraken/internal/metrics"
	"github.com/devusSs/court-kraken/internal/types"
)

type Command struct {
	Name        string
	Usage       string
	Description string
	Level       types.UserLevel
	Handler     gatekeeper.Handler
}

type Registry struct {
	commands map[string]Command
}

func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds cmd, replacing any command with the same name.
// Moderator commands are wrapped in the moderator gate.
func (r *Registry) Register(cmd Command) {
	if cmd.Level == types.Moderator {
		cmd.Handler = gatekeeper.ModOnly(cmd.Handler)
	}
	r.commands[strings.ToLower(cmd.Name)] = cmd
}

func (r *Registry) Lookup(name string) (Command, bool) {
	cmd, ok := r.commands[strings.ToLower(name)]
	return cmd, ok
}

// Names returns every registered command name in sorted order.
func (r *Registry) Names() []string {
	names := lo.Keys(r.commands)
	sort.Strings(names)
	return names
}

// Dispatch runs the command in line on behalf of client.
//
// Argument and client errors are answered with an OOC message and are not
// returned. Anything else is returned to the caller.
func (r *Registry) Dispatch(client *clients.Client, line string) error {
	line = strings.TrimPrefix(strings.TrimSpace(line), "/")
	name, arg := line, ""
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		name, arg = line[:i], strings.TrimSpace(line[i:])
	}
	name = strings.ToLower(name)

	cmd, ok := r.commands[name]
	if !ok {
		metrics.CommandsTotal.WithLabelValues("unknown", "client_error").Inc()
		client.SendOOC("Invalid command.")
		return nil
	}

	err := cmd.Handler(client, arg)

	var argErr *ArgumentError
	var clientErr *gatekeeper.ClientError

	switch {
	case err == nil:
		metrics.CommandsTotal.WithLabelValues(name, "ok").Inc()
		return nil
	case errors.As(err, &argErr):
		metrics.CommandsTotal.WithLabelValues(name, "argument_error").Inc()
		client.SendOOC(argErr.Error())
		return nil
	case errors.As(err, &clientErr):
		metrics.CommandsTotal.WithLabelValues(name, "client_error").Inc()
		client.SendOOC(clientErr.Error())
		return nil
	default:
		metrics.CommandsTotal.WithLabelValues(name, "error").Inc()
		logging.WriteError(fmt.Sprintf("Command %s failed: %s", name, err.Error()))
		return fmt.Errorf("running /%s: %w", name, err)
	}
}
