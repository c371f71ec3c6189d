package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/devusSs/court-kraken/internal/clients"
	"github.com/devusSs/court-kraken/internal/types"
)

// TargetResolver finds the clients a moderator command is aimed at.
type TargetResolver interface {
	GetTargets(invoker *clients.Client, kind clients.TargetType, key interface{}, exact bool) ([]*clients.Client, error)
}

// AuditLogger records moderator actions.
type AuditLogger interface {
	LogArea(action types.EventType, actor *clients.Client, area *clients.Area, target *clients.Client)
	LogMisc(action types.EventType, actor *clients.Client, target *clients.Client, data string)
}

// Advertiser posts case adverts.
type Advertiser interface {
	Advert(ctx context.Context, char string, area *clients.Area, msg string)
}

// New returns a registry holding every built-in command.
func New(targets TargetResolver, audit AuditLogger, adverts Advertiser) *Registry {
	r := NewRegistry()
	registerFun(r, targets, audit)

	r.Register(Command{
		Name:        "need",
		Usage:       "/need <message>",
		Description: "Advertise a case looking for players.",
		Level:       types.Anyone,
		Handler: func(client *clients.Client, arg string) error {
			adverts.Advert(context.Background(), client.CharName, client.Area, arg)
			client.SendOOC("Your advert has been sent.")
			return nil
		},
	})

	r.Register(Command{
		Name:        "help",
		Usage:       "/help",
		Description: "List the available commands.",
		Level:       types.Anyone,
		Handler: func(client *clients.Client, _ string) error {
			client.SendOOC("Available commands: " + strings.Join(r.Names(), ", "))
			return nil
		},
	})

	return r
}

func toggleReply(mode string, on bool) string {
	if on {
		return fmt.Sprintf("%s Mode ACTIVATED.", mode)
	}
	return fmt.Sprintf("%s Mode DEACTIVATED.", mode)
}
