package audit

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devusSs/court-kraken/internal/clients"
	"github.com/devusSs/court-kraken/internal/database"
	"github.com/devusSs/court-kraken/internal/database/sqlite"
	"github.com/devusSs/court-kraken/internal/logging"
	"github.com/devusSs/court-kraken/internal/types"
)

func setupLog(t *testing.T) (*Log, database.Service) {
	t.Helper()
	svc, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, svc.Migrate())
	t.Cleanup(func() { svc.Close() })
	return New(svc), svc
}

func decode(t *testing.T, e database.AuditEvent) types.AuditData {
	t.Helper()
	var data types.AuditData
	require.NoError(t, json.Unmarshal([]byte(e.Data), &data))
	return data
}

func TestLogArea(t *testing.T) {
	l, svc := setupLog(t)

	area := &clients.Area{ID: 3, Name: "Detention Center", Abbreviation: "DC"}
	mod := &clients.Client{Name: "Judge", IPID: 1, Area: area}
	target := &clients.Client{Name: "Larry", IPID: 7}

	l.LogArea(types.Disemvowel, mod, area, target)

	events, err := svc.GetAuditEvents(types.Disemvowel, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)

	data := decode(t, events[0])
	assert.Equal(t, types.AreaCategory, data.Category)
	assert.Equal(t, "Judge", data.Actor)
	assert.Equal(t, 1, data.ActorIPID)
	assert.Equal(t, "[3] Detention Center", data.Area)
	assert.Equal(t, "Larry", data.Target)
	assert.Equal(t, 7, data.TargetIPID)
}

func TestLogMisc_WithoutClients(t *testing.T) {
	l, svc := setupLog(t)

	l.LogMisc(types.WebhookErr, nil, nil, "404")

	events, err := svc.GetAuditEvents(types.WebhookErr, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)

	data := decode(t, events[0])
	assert.Equal(t, types.MiscCategory, data.Category)
	assert.Equal(t, "404", data.Data)
	assert.Empty(t, data.Actor)
	assert.Empty(t, data.Target)
}

type failingService struct{ database.Service }

func (failingService) AddAuditEvent(database.AuditEvent) (database.AuditEvent, error) {
	return database.AuditEvent{}, errors.New("disk full")
}

func TestLog_StorageErrorIsSwallowed(t *testing.T) {
	logging.SetConsoleOutput(io.Discard, io.Discard)
	t.Cleanup(func() { logging.SetConsoleOutput(os.Stdout, os.Stderr) })

	l := New(failingService{})
	assert.NotPanics(t, func() {
		l.LogMisc(types.Gimp, &clients.Client{Name: "Mod"}, nil, "CR1")
	})
}
