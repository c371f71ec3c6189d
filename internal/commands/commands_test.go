package commands

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devusSs/court-kraken/internal/clients"
	"github.com/devusSs/court-kraken/internal/logging"
	"github.com/devusSs/court-kraken/internal/types"
)

type auditCall struct {
	action types.EventType
	actor  *clients.Client
	area   *clients.Area
	target *clients.Client
	data   string
	misc   bool
}

type recordingAudit struct {
	calls []auditCall
}

func (a *recordingAudit) LogArea(action types.EventType, actor *clients.Client, area *clients.Area, target *clients.Client) {
	a.calls = append(a.calls, auditCall{action: action, actor: actor, area: area, target: target})
}

func (a *recordingAudit) LogMisc(action types.EventType, actor *clients.Client, target *clients.Client, data string) {
	a.calls = append(a.calls, auditCall{action: action, actor: actor, target: target, data: data, misc: true})
}

type advertCall struct {
	char string
	area *clients.Area
	msg  string
}

type recordingAdverts struct {
	calls []advertCall
}

func (a *recordingAdverts) Advert(_ context.Context, char string, area *clients.Area, msg string) {
	a.calls = append(a.calls, advertCall{char, area, msg})
}

type failingResolver struct{}

func (failingResolver) GetTargets(*clients.Client, clients.TargetType, interface{}, bool) ([]*clients.Client, error) {
	return nil, errors.New("lookup exploded")
}

type fixture struct {
	registry *Registry
	manager  *clients.Manager
	audit    *recordingAudit
	adverts  *recordingAdverts
	mod      *clients.Client
	player   *clients.Client
	area     *clients.Area
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logging.SetConsoleOutput(io.Discard, io.Discard)
	t.Cleanup(func() { logging.SetConsoleOutput(os.Stdout, os.Stderr) })

	f := &fixture{
		manager: clients.NewManager(),
		audit:   &recordingAudit{},
		adverts: &recordingAdverts{},
		area:    &clients.Area{ID: 3, Name: "Courtroom 3", Abbreviation: "CR3"},
	}
	f.mod = &clients.Client{Name: "Edgeworth", IPID: 10, IsMod: true, Area: f.area}
	f.player = &clients.Client{Name: "Larry", CharName: "Larry Butz", IPID: 20, Area: f.area}
	f.manager.Add(f.mod)    // ID 0
	f.manager.Add(f.player) // ID 1
	f.registry = New(f.manager, f.audit, f.adverts)
	return f
}

func flagOf(name string, c *clients.Client) bool {
	switch name {
	case "disemvowel", "undisemvowel":
		return c.Disemvowel
	case "shake", "unshake":
		return c.Shaken
	default:
		return c.Gimp
	}
}

func TestFlagCommands(t *testing.T) {
	tests := []struct {
		name     string
		action   types.EventType
		want     bool
		reply    string
		emptyMsg string
		misc     bool
	}{
		{"disemvowel", types.Disemvowel, true, "Disemvowelled 1 existing client(s).", "You must specify a target.", false},
		{"undisemvowel", types.Undisemvowel, false, "Undisemvowelled 1 existing client(s).", "You must specify a target.", false},
		{"shake", types.Shake, true, "Shook 1 existing client(s).", "You must specify a target.", false},
		{"unshake", types.Unshake, false, "Unshook 1 existing client(s).", "You must specify a target.", false},
		{"gimp", types.Gimp, true, "Gimped 1 existing client(s).", "You must specify a target ID.", true},
		{"ungimp", types.Ungimp, false, "Ungimped 1 existing client(s).", "You must specify a target ID.", true},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/empty argument", func(t *testing.T) {
			f := newFixture(t)
			before := flagOf(tt.name, f.player)

			cmd, ok := f.registry.Lookup(tt.name)
			require.True(t, ok)
			err := cmd.Handler(f.mod, "")

			var argErr *ArgumentError
			require.True(t, errors.As(err, &argErr))
			assert.Equal(t, tt.emptyMsg, argErr.Error())
			assert.Equal(t, before, flagOf(tt.name, f.player))
			assert.Empty(t, f.audit.calls)
		})

		t.Run(tt.name+"/non numeric argument", func(t *testing.T) {
			f := newFixture(t)

			cmd, _ := f.registry.Lookup(tt.name)
			for _, arg := range []string{"larry", "1 2", "1.5"} {
				err := cmd.Handler(f.mod, arg)

				var argErr *ArgumentError
				require.True(t, errors.As(err, &argErr), arg)
				assert.Equal(t, "You must specify a target. Use /"+tt.name+" <id>.", argErr.Error())
			}
			assert.Empty(t, f.audit.calls)
		})

		t.Run(tt.name+"/no targets", func(t *testing.T) {
			f := newFixture(t)
			before := flagOf(tt.name, f.player)

			require.NoError(t, f.registry.Dispatch(f.mod, "/"+tt.name+" 99"))

			assert.Equal(t, "No targets found.", f.mod.LastOOC())
			assert.Equal(t, before, flagOf(tt.name, f.player))
			assert.Empty(t, f.audit.calls)
		})

		t.Run(tt.name+"/one target", func(t *testing.T) {
			f := newFixture(t)
			f.player.Disemvowel, f.player.Shaken, f.player.Gimp = !tt.want, !tt.want, !tt.want

			require.NoError(t, f.registry.Dispatch(f.mod, "/"+tt.name+" 1"))

			assert.Equal(t, tt.want, flagOf(tt.name, f.player))
			assert.Equal(t, tt.reply, f.mod.LastOOC())
			require.Len(t, f.audit.calls, 1)

			call := f.audit.calls[0]
			assert.Equal(t, tt.action, call.action)
			assert.Same(t, f.mod, call.actor)
			assert.Same(t, f.player, call.target)
			assert.Equal(t, tt.misc, call.misc)
			if tt.misc {
				assert.Equal(t, "CR3", call.data)
			} else {
				assert.Same(t, f.area, call.area)
			}
		})

		t.Run(tt.name+"/resolver failure", func(t *testing.T) {
			f := newFixture(t)
			r := New(failingResolver{}, f.audit, f.adverts)

			require.NoError(t, r.Dispatch(f.mod, "/"+tt.name+" 1"))
			assert.Equal(t, "You must specify a target. Use /"+tt.name+" <id>.", f.mod.LastOOC())
			assert.Empty(t, f.audit.calls)
		})

		t.Run(tt.name+"/not a moderator", func(t *testing.T) {
			f := newFixture(t)
			before := flagOf(tt.name, f.mod)

			require.NoError(t, f.registry.Dispatch(f.player, "/"+tt.name+" 0"))
			assert.Equal(t, "You must be authorized to do that.", f.player.LastOOC())
			assert.Equal(t, before, flagOf(tt.name, f.mod))
			assert.Empty(t, f.audit.calls)
		})
	}
}

type multiResolver struct {
	targets []*clients.Client
}

func (m multiResolver) GetTargets(*clients.Client, clients.TargetType, interface{}, bool) ([]*clients.Client, error) {
	return m.targets, nil
}

func TestFlagCommand_MultipleTargets(t *testing.T) {
	f := newFixture(t)
	targets := []*clients.Client{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	r := New(multiResolver{targets}, f.audit, f.adverts)

	require.NoError(t, r.Dispatch(f.mod, "/shake 4"))

	assert.Equal(t, "Shook 3 existing client(s).", f.mod.LastOOC())
	assert.Len(t, f.audit.calls, 3)
	for _, c := range targets {
		assert.True(t, c.Shaken)
	}
}

func TestToggleCommands(t *testing.T) {
	for _, tt := range []struct {
		name string
		mode string
		flag func(c *clients.Client) bool
	}{
		{"rainbow", "Rainbow", func(c *clients.Client) bool { return c.Rainbow }},
		{"dank", "Dank", func(c *clients.Client) bool { return c.Dank }},
	} {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			require.NoError(t, f.registry.Dispatch(f.player, "/"+tt.name))
			assert.True(t, tt.flag(f.player))
			assert.Equal(t, tt.mode+" Mode ACTIVATED.", f.player.LastOOC())

			require.NoError(t, f.registry.Dispatch(f.player, "/"+tt.name))
			assert.False(t, tt.flag(f.player))
			assert.Equal(t, tt.mode+" Mode DEACTIVATED.", f.player.LastOOC())

			assert.Empty(t, f.audit.calls)
		})
	}
}

func TestWashHands(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.registry.Dispatch(f.player, "/washhands please"))
	assert.Equal(t, "You washed your hands!", f.player.LastOOC())
	assert.Empty(t, f.audit.calls)
}

func TestNeed(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.registry.Dispatch(f.player, "/need a def and a judge"))

	require.Len(t, f.adverts.calls, 1)
	assert.Equal(t, advertCall{"Larry Butz", f.area, "a def and a judge"}, f.adverts.calls[0])
	assert.Equal(t, "Your advert has been sent.", f.player.LastOOC())
}

func TestDispatch(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.registry.Dispatch(f.player, "/objection"))
	assert.Equal(t, "Invalid command.", f.player.LastOOC())

	require.NoError(t, f.registry.Dispatch(f.mod, "  /DISEMVOWEL   1  "))
	assert.True(t, f.player.Disemvowel)

	require.NoError(t, f.registry.Dispatch(f.mod, "/shake\t1"))
	assert.True(t, f.player.Shaken)
	assert.Equal(t, "Shook 1 existing client(s).", f.mod.LastOOC())

	boom := errors.New("boom")
	f.registry.Register(Command{Name: "explode", Handler: func(*clients.Client, string) error { return boom }})
	err := f.registry.Dispatch(f.player, "explode")
	assert.ErrorIs(t, err, boom)
}

func TestNames(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, []string{
		"dank", "disemvowel", "gimp", "help", "need", "rainbow", "shake",
		"undisemvowel", "ungimp", "unshake", "washhands",
	}, f.registry.Names())

	require.NoError(t, f.registry.Dispatch(f.player, "/help"))
	assert.Contains(t, f.player.LastOOC(), "Available commands: dank, disemvowel")
}
