package webhooks

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/samber/lo"

	"github.com/devusSs/court-kraken/internal/clients"
	"github.com/devusSs/court-kraken/internal/config"
	"github.com/devusSs/court-kraken/internal/utils"
)

const (
	modcallTitle = "Modcall"
	advertTitle  = "❗ Case Advert ❗"

	// Selects every role of the advert table.
	allRolesKeyword = "all"
)

// Modcall notifies moderators that char (ipid) called for help in area.
// An empty reason is reported as a call from an old client without reasons.
func (n *Notifier) Modcall(ctx context.Context, char string, ipid int, area *clients.Area, reason string) {
	settings := n.cfg.Modcall
	if !settings.Enabled {
		return
	}

	mods := n.census.ModsOnline()

	var message string
	if mods == 0 && settings.PingOnNoMods {
		ping := "@here"
		if settings.ModRoleID != "" {
			ping = fmt.Sprintf("<@&%s>", settings.ModRoleID)
		}
		message = fmt.Sprintf("%s A user called for a moderator, but there are none online!", ping)
	} else {
		message = fmt.Sprintf("New modcall received (%s online)", utils.Plural(mods, "moderator"))
	}

	reasonText := "without reason (using <2.6?)"
	if strings.TrimSpace(reason) != "" {
		reasonText = "with reason: " + reason
	}

	description := fmt.Sprintf("[%s UTC] %s (%d) in %s %s",
		n.now().UTC().Format("15:04"), char, ipid, areaLabel(area), reasonText)

	n.SendWebhook(ctx, Message{
		Kind:        "modcall",
		Username:    settings.Username,
		AvatarURL:   settings.AvatarURL,
		Content:     message,
		Embed:       true,
		Title:       modcallTitle,
		Description: description,
	})
}

// Advert posts a case advert to the advert webhook, pinging the roles named in msg.
func (n *Notifier) Advert(ctx context.Context, char string, area *clients.Area, msg string) {
	settings := n.cfg.Advert
	if !settings.Enabled {
		return
	}

	header := ""
	if len(n.titles) > 0 {
		header = n.pickTitle(n.titles)
	}
	message := header + "\n" + strings.Join(n.ResolvePings(msg), " ")

	areaName := ""
	if area != nil {
		areaName = area.Name
	}

	need := "needs people for a case!"
	if strings.TrimSpace(msg) != "" {
		need = "needs " + msg
	}

	n.SendWebhook(ctx, Message{
		Kind:        "advert",
		Username:    settings.Username,
		AvatarURL:   settings.AvatarURL,
		Content:     message,
		Embed:       true,
		Title:       advertTitle,
		Description: fmt.Sprintf("%s in %s %s", char, areaName, need),
		URL:         n.cfg.AdvertURL,
	})
}

// ResolvePings returns the role mentions requested by an advert message.
//
// Words are matched case-insensitively against the role keywords. The word
// "all" selects every role in table order. Each mention appears once, in
// order of first match.
func (n *Notifier) ResolvePings(msg string) []string {
	words := lo.Map(strings.Fields(strings.ToLower(msg)), func(w string, _ int) string {
		return strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
	})

	if lo.Contains(words, allRolesKeyword) {
		return lo.Uniq(lo.Map(n.roles, func(r config.RolePing, _ int) string { return r.Mention }))
	}

	pings := []string{}
	for _, w := range words {
		for _, r := range n.roles {
			if lo.ContainsBy(r.Keywords, func(k string) bool { return strings.ToLower(k) == w }) {
				pings = append(pings, r.Mention)
			}
		}
	}

	return lo.Uniq(pings)
}

// Kick reports that a client was kicked. client is the kicking moderator, nil for the server.
func (n *Notifier) Kick(ctx context.Context, ipid int, hdid, reason string, client *clients.Client, char string) {
	settings := n.cfg.Kick
	if !settings.Enabled {
		return
	}

	message := subject(ipid, hdid, char) + " was kicked" + actor(client, " from the server") + withReason(reason)

	n.SendWebhook(ctx, Message{
		Kind:      "kick",
		Username:  settings.Username,
		AvatarURL: settings.AvatarURL,
		Content:   message,
	})
}

// Ban reports a new ban. A non-empty hdid marks a hardware ban, a nil
// unbanDate a permanent one.
func (n *Notifier) Ban(ctx context.Context, ipid, banID int, reason string, client *clients.Client, hdid, char string, unbanDate *time.Time) {
	settings := n.cfg.Ban
	if !settings.Enabled {
		return
	}

	var b strings.Builder
	b.WriteString(subject(ipid, hdid, char))
	if hdid != "" {
		b.WriteString(" was hardware-banned")
	} else {
		b.WriteString(" was banned")
	}
	b.WriteString(actor(client, " from the server"))
	if strings.TrimSpace(reason) != "" {
		b.WriteString(" with reason: " + reason)
	}
	fmt.Fprintf(&b, " (Ban ID: %d).\n", banID)
	if unbanDate != nil {
		b.WriteString("It will expire " + unbanDate.UTC().Format("2006-01-02 15:04:05 MST"))
	} else {
		b.WriteString("It is a permanent ban.")
	}

	n.SendWebhook(ctx, Message{
		Kind:      "ban",
		Username:  settings.Username,
		AvatarURL: settings.AvatarURL,
		Content:   b.String(),
	})
}

// Unban reports that banID was revoked by client, nil for the server.
func (n *Notifier) Unban(ctx context.Context, banID int, client *clients.Client) {
	settings := n.cfg.Unban
	if !settings.Enabled {
		return
	}

	message := fmt.Sprintf("Ban ID %d was revoked", banID)
	if client != nil {
		message += fmt.Sprintf(" by %s (%d).", client.Name, client.IPID)
	} else {
		message += " by the server."
	}

	n.SendWebhook(ctx, Message{
		Kind:      "unban",
		Username:  settings.Username,
		AvatarURL: settings.AvatarURL,
		Content:   message,
	})
}

// Warn reports that a client was warned. client is the warning moderator, nil for the server.
func (n *Notifier) Warn(ctx context.Context, ipid int, hdid, reason string, client *clients.Client, char string) {
	settings := n.cfg.Warn
	if !settings.Enabled {
		return
	}

	message := subject(ipid, hdid, char) + " was warned" + actor(client, " from the server") + withReason(reason)

	n.SendWebhook(ctx, Message{
		Kind:      "warn",
		Username:  settings.Username,
		AvatarURL: settings.AvatarURL,
		Content:   message,
	})
}

func subject(ipid int, hdid, char string) string {
	if char == "" {
		return strconv.Itoa(ipid)
	}
	return fmt.Sprintf("%s (IPID: %d, HDID: %s)", char, ipid, hdid)
}

func actor(client *clients.Client, fallback string) string {
	if client == nil {
		return fallback
	}
	return fmt.Sprintf(" by %s (%d)", client.Name, client.IPID)
}

func withReason(reason string) string {
	if strings.TrimSpace(reason) == "" {
		return " (no reason provided)."
	}
	return " with reason: " + reason
}

func areaLabel(area *clients.Area) string {
	if area == nil {
		return "[?] unknown area"
	}
	return fmt.Sprintf("[%d] %s", area.ID, area.Name)
}
