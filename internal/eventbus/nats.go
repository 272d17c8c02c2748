/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package eventbus bridges the in-process event bus onto NATS so other
// services (mail senders, calendar sync, dashboards) can react to
// scheduling events. Publishing is best-effort: a dead broker degrades to
// local-only delivery, it never fails a search or a booking.
package eventbus

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/friendsincode/roundtable/internal/events"
)

const subjectPrefix = "roundtable.events."

// Envelope is the wire format for one event message.
type Envelope struct {
	MessageID string         `json:"message_id"`
	Type      string         `json:"type"`
	EmittedAt time.Time      `json:"emitted_at"`
	Payload   events.Payload `json:"payload"`
}

// Publisher forwards events to NATS and mirrors them on the local bus.
type Publisher struct {
	conn   *nats.Conn
	local  *events.Bus
	logger zerolog.Logger
}

// Connect dials the NATS server and returns a publisher. When url is empty
// or the server is unreachable, the publisher runs in local-only mode.
func Connect(url string, local *events.Bus, logger zerolog.Logger) *Publisher {
	p := &Publisher{
		local:  local,
		logger: logger.With().Str("component", "eventbus").Logger(),
	}
	if url == "" {
		p.logger.Info().Msg("no NATS url configured, events stay in-process")
		return p
	}

	conn, err := nats.Connect(url,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.Timeout(5*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			p.logger.Warn().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			p.logger.Info().Str("url", c.ConnectedUrl()).Msg("NATS reconnected")
		}),
	)
	if err != nil {
		p.logger.Warn().Err(err).Str("url", url).Msg("NATS unavailable, events stay in-process")
		return p
	}

	p.conn = conn
	p.logger.Info().Str("url", url).Msg("connected to NATS")
	return p
}

// Publish delivers the event locally and, when connected, to NATS under
// roundtable.events.<type>.
func (p *Publisher) Publish(eventType events.EventType, payload events.Payload) {
	if p.local != nil {
		p.local.Publish(eventType, payload)
	}
	if p.conn == nil {
		return
	}

	env := Envelope{
		MessageID: uuid.NewString(),
		Type:      string(eventType),
		EmittedAt: time.Now().UTC(),
		Payload:   payload,
	}
	data, err := json.Marshal(env)
	if err != nil {
		p.logger.Error().Err(err).Str("type", env.Type).Msg("marshal event envelope")
		return
	}
	if err := p.conn.Publish(subjectPrefix+env.Type, data); err != nil {
		p.logger.Warn().Err(err).Str("type", env.Type).Msg("publish event to NATS")
	}
}

// Drain flushes pending messages and closes the connection.
func (p *Publisher) Drain() error {
	if p.conn == nil {
		return nil
	}
	if err := p.conn.Drain(); err != nil {
		return fmt.Errorf("drain NATS connection: %w", err)
	}
	return nil
}
