// Package webhooks posts moderation notifications to a Discord-style
// chat webhook.
//
// Delivery is best effort: one POST per event, no retries, and failures
// only show up in the audit log and the error log.
package webhooks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/samber/lo"

	"github.com/devusSs/court-kraken/internal/clients"
	"github.com/devusSs/court-kraken/internal/config"
	"github.com/devusSs/court-kraken/internal/logging"
	"github.com/devusSs/court-kraken/internal/metrics"
	"github.com/devusSs/court-kraken/internal/types"
)

const fallbackUsername = "court-kraken webhook"

// AuditLogger is the part of the audit log the notifier writes to.
type AuditLogger interface {
	LogMisc(action types.EventType, actor *clients.Client, target *clients.Client, data string)
}

// ModeratorCensus reports how many moderators are connected.
type ModeratorCensus interface {
	ModsOnline() int
}

// Message is one webhook delivery.
type Message struct {
	Kind        string // metrics label, "generic" when empty
	Username    string
	AvatarURL   string
	Content     string
	Embed       bool
	Title       string
	Description string
	URL         string // overrides the configured webhook_url
}

type payload struct {
	Content   string  `json:"content"`
	AvatarURL string  `json:"avatar_url,omitempty"`
	Username  string  `json:"username"`
	Embeds    []embed `json:"embeds,omitempty"`
}

type embed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Notifier struct {
	cfg    config.Webhooks
	roles  []config.RolePing
	titles []string

	httpClient *http.Client
	audit      AuditLogger
	census     ModeratorCensus

	now       func() time.Time
	pickTitle func([]string) string
}

func New(cfg *config.Config, census ModeratorCensus, audit AuditLogger) *Notifier {
	return NewWithHTTPClient(cfg, census, audit, &http.Client{Timeout: cfg.WebhookTimeout()})
}

// NewWithHTTPClient creates a notifier with a custom HTTP client (for testing).
func NewWithHTTPClient(cfg *config.Config, census ModeratorCensus, audit AuditLogger, httpClient *http.Client) *Notifier {
	return &Notifier{
		cfg:        cfg.Webhooks,
		roles:      cfg.Misc.AdvertRoles,
		titles:     cfg.Misc.AdvertTitles,
		httpClient: httpClient,
		audit:      audit,
		census:     census,
		now:        time.Now,
		pickTitle:  func(titles []string) string { return lo.Sample(titles) },
	}
}

// SendWebhook delivers msg unless webhooks are globally disabled.
//
// It never returns an error; the outcome is written to the audit log.
func (n *Notifier) SendWebhook(ctx context.Context, msg Message) {
	if !n.cfg.Enabled {
		return
	}

	kind := msg.Kind
	if kind == "" {
		kind = "generic"
	}

	url := msg.URL
	if url == "" {
		url = n.cfg.URL
	}

	p := payload{
		Content:   msg.Content,
		AvatarURL: msg.AvatarURL,
		Username:  msg.Username,
	}
	if p.Username == "" {
		p.Username = fallbackUsername
	}
	if msg.Embed {
		p.Embeds = []embed{{Title: msg.Title, Description: msg.Description}}
	}

	body, err := json.Marshal(p)
	if err != nil {
		logging.WriteError(fmt.Sprintf("Encoding %s webhook failed: %s", kind, err.Error()))
		return
	}

	status, err := n.post(ctx, url, body)
	if err != nil {
		reason := redactURL(err)
		metrics.WebhookDeliveries.WithLabelValues(kind, "transport_error").Inc()
		logging.WriteError(fmt.Sprintf("Sending %s webhook failed: %s", kind, reason))
		n.audit.LogMisc(types.WebhookErr, nil, nil, reason)
		return
	}

	if status >= http.StatusBadRequest {
		metrics.WebhookDeliveries.WithLabelValues(kind, "http_error").Inc()
		logging.WriteError(fmt.Sprintf("Webhook %s rejected with status %d", kind, status))
		n.audit.LogMisc(types.WebhookErr, nil, nil, strconv.Itoa(status))
		return
	}

	metrics.WebhookDeliveries.WithLabelValues(kind, "ok").Inc()
	n.audit.LogMisc(types.WebhookOK, nil, nil, fmt.Sprintf("successfully delivered payload, code %d", status))
}

// Webhook URLs carry their token in the path, so only the host of a failed
// request is kept.
func redactURL(err error) string {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err.Error()
	}

	host := "webhook"
	if u, perr := url.Parse(urlErr.URL); perr == nil && u.Host != "" {
		host = u.Host
	}

	return fmt.Sprintf("%s %s: %s", urlErr.Op, host, urlErr.Err.Error())
}

func (n *Notifier) post(ctx context.Context, url string, body []byte) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body) //nolint:errcheck

	return resp.StatusCode, nil
}
