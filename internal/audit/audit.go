// Package audit records moderator actions and webhook outcomes.
//
// Writes are fire-and-forget: storage errors are logged and never reach
// the command or notifier that produced the entry.
package audit

import (
	"fmt"
	"time"

	"github.com/devusSs/court-kraken/internal/clients"
	"github.com/devusSs/court-kraken/internal/database"
	"github.com/devusSs/court-kraken/internal/logging"
	"github.com/devusSs/court-kraken/internal/types"
	"github.com/devusSs/court-kraken/internal/utils"
)

type Log struct {
	service database.Service
	now     func() time.Time
}

func New(svc database.Service) *Log {
	return &Log{service: svc, now: time.Now}
}

// Records an action performed by actor inside area, optionally against target.
func (l *Log) LogArea(action types.EventType, actor *clients.Client, area *clients.Area, target *clients.Client) {
	data := types.AuditData{Category: types.AreaCategory}
	fillClients(&data, actor, target)
	if area != nil {
		data.Area = fmt.Sprintf("[%d] %s", area.ID, area.Name)
	}

	l.write(action, data)
}

// Records an action that is not tied to an area. actor and target may be nil.
func (l *Log) LogMisc(action types.EventType, actor *clients.Client, target *clients.Client, data string) {
	payload := types.AuditData{Category: types.MiscCategory, Data: data}
	fillClients(&payload, actor, target)

	l.write(action, payload)
}

func fillClients(data *types.AuditData, actor, target *clients.Client) {
	if actor != nil {
		data.Actor = actor.Name
		data.ActorIPID = actor.IPID
	}
	if target != nil {
		data.Target = target.Name
		data.TargetIPID = target.IPID
	}
}

func (l *Log) write(action types.EventType, data types.AuditData) {
	eventData, err := utils.MarshalStruct(data)
	if err != nil {
		logging.WriteError(err)
		return
	}

	_, err = l.service.AddAuditEvent(database.AuditEvent{
		Type:      action,
		Data:      eventData,
		Timestamp: l.now(),
	})
	if err != nil {
		logging.WriteError(fmt.Sprintf("Writing audit event %s failed: %s", action, err.Error()))
	}
}
