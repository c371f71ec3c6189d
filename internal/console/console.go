// Package console runs the operator console of courtd.
//
// Every line typed is handled on behalf of the built-in console moderator
// or, with ".as", another connected client. Lines starting with "/" are
// commands, lines starting with "." manage the simulated clients, and
// everything else is in-character chat.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/devusSs/court-kraken/internal/clients"
	"github.com/devusSs/court-kraken/internal/commands"
	"github.com/devusSs/court-kraken/internal/database"
	"github.com/devusSs/court-kraken/internal/logging"
	"github.com/devusSs/court-kraken/internal/types"
)

const (
	operatorName = "console"

	defaultAuditLimit = 10
)

// AuditReader lists stored audit entries, newest first.
type AuditReader interface {
	GetAuditEvents(action types.EventType, limit int) ([]database.AuditEvent, error)
}

// The area the operator and new clients start in.
var lobby = &clients.Area{ID: 0, Name: "Lobby", Abbreviation: "LOB"}

type Console struct {
	registry  *commands.Registry
	manager   *clients.Manager
	events    AuditReader
	operator  *clients.Client
	gimpLines []string
	out       io.Writer
}

// New registers the console moderator with manager and prints its OOC
// replies to out. events may be nil, which disables ".audit".
func New(registry *commands.Registry, manager *clients.Manager, events AuditReader, gimpLines []string, out io.Writer) *Console {
	c := &Console{
		registry:  registry,
		manager:   manager,
		events:    events,
		gimpLines: gimpLines,
		out:       out,
	}

	c.operator = c.join(operatorName, "Judge", true)

	return c
}

func (c *Console) Operator() *clients.Client {
	return c.operator
}

// Run reads lines from in until EOF or until ctx is cancelled.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	errs := make(chan error, 1)

	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errs <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errs:
			if err != nil {
				return fmt.Errorf("reading console input: %w", err)
			}
			return nil
		case line := <-lines:
			if err := c.HandleLine(c.operator, line); err != nil {
				logging.WriteError(err)
			}
		}
	}
}

// HandleLine handles one line typed on behalf of client.
func (c *Console) HandleLine(client *clients.Client, line string) error {
	line = strings.TrimSpace(line)

	switch {
	case line == "":
		return nil
	case strings.HasPrefix(line, "/"):
		return c.registry.Dispatch(client, line)
	case strings.HasPrefix(line, "."):
		return c.builtin(client, line)
	default:
		c.chat(client, line)
		return nil
	}
}

func (c *Console) chat(client *clients.Client, message string) {
	message = clients.ApplyChatEffects(client, message, c.gimpLines)

	var tags []string
	if client.Rainbow {
		tags = append(tags, "rainbow")
	}
	if client.Dank {
		tags = append(tags, "dank")
	}

	prefix := ""
	if len(tags) > 0 {
		prefix = "{" + strings.Join(tags, ",") + "} "
	}

	fmt.Fprintf(c.out, "[IC] %s: %s%s\n", displayName(client), prefix, message)
}

// Console-only commands for simulating connections.
func (c *Console) builtin(client *clients.Client, line string) error {
	name, arg, _ := strings.Cut(strings.TrimPrefix(line, "."), " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "join":
		ooc, char, _ := strings.Cut(arg, " ")
		if ooc == "" {
			client.SendOOC("Usage: .join <ooc name> [character]")
			return nil
		}
		joined := c.join(ooc, strings.TrimSpace(char), false)
		client.SendOOC(fmt.Sprintf("%s joined with ID %d.", ooc, joined.ID))
	case "leave":
		target, ok := c.lookup(client, arg)
		if !ok {
			return nil
		}
		if target == c.operator {
			client.SendOOC("The console cannot leave.")
			return nil
		}
		c.manager.Remove(target)
		client.SendOOC(fmt.Sprintf("%s left.", target.Name))
	case "as":
		idText, rest, _ := strings.Cut(arg, " ")
		target, ok := c.lookup(client, idText)
		if !ok {
			return nil
		}
		return c.HandleLine(target, rest)
	case "list":
		for _, cl := range c.manager.All() {
			client.SendOOC(describe(cl))
		}
	case "audit":
		return c.audit(client, arg)
	default:
		client.SendOOC("Unknown console command. Use .join, .leave, .as, .list or .audit.")
	}

	return nil
}

// Prints the newest audit entries of one action, ".audit <action> [count]".
func (c *Console) audit(client *clients.Client, arg string) error {
	if c.events == nil {
		client.SendOOC("The audit log is not available.")
		return nil
	}

	fields := strings.Fields(arg)
	if len(fields) == 0 {
		client.SendOOC("Usage: .audit <action> [count]")
		return nil
	}

	limit := defaultAuditLimit
	if len(fields) > 1 {
		n, err := strconv.Atoi(fields[1])
		if err != nil || n <= 0 {
			client.SendOOC("Usage: .audit <action> [count]")
			return nil
		}
		limit = n
	}

	events, err := c.events.GetAuditEvents(types.EventType(fields[0]), limit)
	if err != nil {
		return fmt.Errorf("reading audit log: %w", err)
	}

	if len(events) == 0 {
		client.SendOOC(fmt.Sprintf("No %s entries found.", fields[0]))
		return nil
	}

	for _, e := range events {
		client.SendOOC(fmt.Sprintf("#%d %s %s %s", e.ID, e.Timestamp.UTC().Format("2006-01-02 15:04:05"), e.Type, e.Data))
	}

	return nil
}

func (c *Console) join(ooc, char string, mod bool) *clients.Client {
	cl := &clients.Client{Name: ooc, CharName: char, IsMod: mod, Area: lobby}
	c.manager.Add(cl)
	cl.IPID = cl.ID
	cl.HDID = fmt.Sprintf("console-%d", cl.ID)
	cl.OnOOC(func(msg string) {
		fmt.Fprintf(c.out, "[OOC -> %s] %s\n", cl.Name, msg)
	})
	return cl
}

func (c *Console) lookup(invoker *clients.Client, idText string) (*clients.Client, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(idText))
	if err != nil {
		invoker.SendOOC("You must specify a client ID.")
		return nil, false
	}

	found, err := c.manager.GetTargets(invoker, clients.TargetID, id, true)
	if err != nil || len(found) == 0 {
		invoker.SendOOC("No targets found.")
		return nil, false
	}

	return found[0], true
}

func displayName(cl *clients.Client) string {
	if cl.CharName != "" {
		return cl.CharName
	}
	return cl.Name
}

func describe(cl *clients.Client) string {
	var effects []string
	for _, e := range []struct {
		name string
		on   bool
	}{
		{"disemvowel", cl.Disemvowel},
		{"shaken", cl.Shaken},
		{"gimp", cl.Gimp},
		{"rainbow", cl.Rainbow},
		{"dank", cl.Dank},
	} {
		if e.on {
			effects = append(effects, e.name)
		}
	}

	mod := ""
	if cl.IsMod {
		mod = " (mod)"
	}

	if len(effects) == 0 {
		return fmt.Sprintf("[%d] %s%s", cl.ID, cl.Name, mod)
	}
	return fmt.Sprintf("[%d] %s%s: %s", cl.ID, cl.Name, mod, strings.Join(effects, ", "))
}
