package main

import (
	"context"
	"fmt"
	"time"

	"github.com/devusSs/court-kraken/internal/clients"
	"github.com/devusSs/court-kraken/internal/webhooks"
)

// Sends one notification of kind filled with sample data.
func sendTestWebhook(ctx context.Context, n *webhooks.Notifier, kind string) error {
	area := &clients.Area{ID: 1, Name: "Courtroom 1", Abbreviation: "CR1"}
	mod := &clients.Client{Name: "console", IPID: 0, IsMod: true, Area: area}
	expiry := time.Now().Add(24 * time.Hour)

	switch kind {
	case "modcall":
		n.Modcall(ctx, "Phoenix Wright", 1, area, "test modcall")
	case "advert":
		n.Advert(ctx, "Phoenix Wright", area, "def and a judge")
	case "kick":
		n.Kick(ctx, 1, "test-hdid", "test kick", mod, "Larry Butz")
	case "ban":
		n.Ban(ctx, 1, 0, "test ban", mod, "", "Larry Butz", &expiry)
	case "unban":
		n.Unban(ctx, 0, mod)
	case "warn":
		n.Warn(ctx, 1, "test-hdid", "test warn", mod, "Larry Butz")
	default:
		return fmt.Errorf("unknown webhook kind %q (want modcall, advert, kick, ban, unban or warn)", kind)
	}

	return nil
}
