package signal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/osokin/roulette/internal/core"
	"github.com/osokin/roulette/internal/domain"
)

const writeWait = 5 * time.Second

func (ctl *Controller) writePump(ctx context.Context, id domain.ClientID, c *wsConn) {
	ticker := time.NewTicker(ctl.pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Str("client", string(id)).Msg("writePump ctx done")
			return
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Warn().Err(err).Str("module", "signal").Str("client", string(id)).Msg("writePump ping error")
				return
			}
		case data, ok := <-c.send:
			if !ok {
				log.Warn().Str("module", "signal").Str("client", string(id)).Msg("writePump channel closed")
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump write error")
				return
			}
		}
	}
}

// readPump reads frames until the transport drops. Its exit is the one
// place a disconnect becomes visible to the orchestrator.
func (ctl *Controller) readPump(ctx context.Context, id domain.ClientID, c *wsConn) {
	defer func() {
		log.Info().Str("module", "signal").Str("client", string(id)).Msg("readPump closing")
		c.Close()
		ctl.Orch.OnDisconnect(id)
	}()

	pongWait := ctl.pingPeriod * 10 / 9
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Str("client", string(id)).Msg("readPump ctx done")
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				log.Warn().Err(err).Str("module", "signal").Str("client", string(id)).Msg("readPump read error")
				return
			}
			ctl.handleEvent(id, data)
		}
	}
}

// handleEvent is the panic boundary: a fault in any handler is logged and
// surfaced to the originating client as a generic error event, never
// crashing the process.
func (ctl *Controller) handleEvent(id domain.ClientID, data []byte) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("module", "signal").
				Str("client", string(id)).Msg("event handler panic")
			if ctl.Orch != nil {
				ctl.Orch.NotifyError(id, core.MsgMatchFailed)
			}
		}
	}()

	var env core.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad json")
		return
	}

	switch env.Type {
	case core.EventFindPartner:
		ctl.Orch.RequestMatch(id)
	case core.EventNext:
		ctl.Orch.OnNext(id)
	case core.EventChatMessage:
		ctl.handleChat(id, data)
	case core.EventOffer:
		ctl.handleOffer(id, data)
	case core.EventAnswer:
		ctl.handleAnswer(id, data)
	case core.EventICECandidate:
		ctl.handleCandidate(id, data)
	case core.EventStreamReady:
		ctl.Orch.Relay(id, data)
	default:
		log.Warn().Str("module", "signal").Str("type", env.Type).Msg("unknown signal")
	}
}
