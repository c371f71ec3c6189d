package commands

import (
	"fmt"
	"strconv"

	"github.com/devusSs/court-kraken/internal/clients"
	"github.com/devusSs/court-kraken/internal/types"
)

// A moderator command that sets or clears one effect flag on its targets.
type flagCommand struct {
	name     string
	action   types.EventType
	value    bool
	verb     string
	emptyMsg string
	misc     bool // audit as misc entry with the actor's area abbreviation
	set      func(c *clients.Client, v bool)
}

var flagCommands = []flagCommand{
	{
		name: "disemvowel", action: types.Disemvowel, value: true, verb: "Disemvowelled",
		emptyMsg: "You must specify a target.",
		set:      func(c *clients.Client, v bool) { c.Disemvowel = v },
	},
	{
		name: "undisemvowel", action: types.Undisemvowel, value: false, verb: "Undisemvowelled",
		emptyMsg: "You must specify a target.",
		set:      func(c *clients.Client, v bool) { c.Disemvowel = v },
	},
	{
		name: "shake", action: types.Shake, value: true, verb: "Shook",
		emptyMsg: "You must specify a target.",
		set:      func(c *clients.Client, v bool) { c.Shaken = v },
	},
	{
		name: "unshake", action: types.Unshake, value: false, verb: "Unshook",
		emptyMsg: "You must specify a target.",
		set:      func(c *clients.Client, v bool) { c.Shaken = v },
	},
	{
		name: "gimp", action: types.Gimp, value: true, verb: "Gimped",
		emptyMsg: "You must specify a target ID.", misc: true,
		set: func(c *clients.Client, v bool) { c.Gimp = v },
	},
	{
		name: "ungimp", action: types.Ungimp, value: false, verb: "Ungimped",
		emptyMsg: "You must specify a target ID.", misc: true,
		set: func(c *clients.Client, v bool) { c.Gimp = v },
	},
}

func registerFun(r *Registry, targets TargetResolver, audit AuditLogger) {
	for _, fc := range flagCommands {
		r.Register(Command{
			Name:        fc.name,
			Usage:       fmt.Sprintf("/%s <id>", fc.name),
			Description: fmt.Sprintf("%s the client with the given ID.", fc.verb),
			Level:       types.Moderator,
			Handler:     fc.handler(targets, audit),
		})
	}

	r.Register(Command{
		Name:        "washhands",
		Usage:       "/washhands",
		Description: "Wash your hands.",
		Level:       types.Anyone,
		Handler: func(client *clients.Client, _ string) error {
			client.SendOOC("You washed your hands!")
			return nil
		},
	})

	r.Register(Command{
		Name:        "rainbow",
		Usage:       "/rainbow",
		Description: "Toggle rainbow text.",
		Level:       types.Anyone,
		Handler: func(client *clients.Client, _ string) error {
			client.Rainbow = !client.Rainbow
			client.SendOOC(toggleReply("Rainbow", client.Rainbow))
			return nil
		},
	})

	r.Register(Command{
		Name:        "dank",
		Usage:       "/dank",
		Description: "Toggle dank mode.",
		Level:       types.Anyone,
		Handler: func(client *clients.Client, _ string) error {
			client.Dank = !client.Dank
			client.SendOOC(toggleReply("Dank", client.Dank))
			return nil
		},
	})
}

func (fc flagCommand) handler(targets TargetResolver, audit AuditLogger) func(*clients.Client, string) error {
	return func(client *clients.Client, arg string) error {
		if arg == "" {
			return NewArgumentError(fc.emptyMsg)
		}

		id, err := strconv.Atoi(arg)
		if err != nil {
			return usageError(fc.name)
		}

		found, err := targets.GetTargets(client, clients.TargetID, id, false)
		if err != nil {
			return usageError(fc.name)
		}

		if len(found) == 0 {
			client.SendOOC("No targets found.")
			return nil
		}

		for _, target := range found {
			if fc.misc {
				audit.LogMisc(fc.action, client, target, client.AreaAbbreviation())
			} else {
				audit.LogArea(fc.action, client, client.Area, target)
			}
			fc.set(target, fc.value)
		}

		client.SendOOC(fmt.Sprintf("%s %d existing client(s).", fc.verb, len(found)))
		return nil
	}
}
