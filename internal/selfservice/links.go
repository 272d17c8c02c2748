/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package selfservice issues signed invite links that let a participant
// confirm or decline an assigned slot without an account. The token is the
// whole credential: whoever holds the link may act on the slot.
package selfservice

import (
	"fmt"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/friendsincode/roundtable/internal/events"
	"github.com/friendsincode/roundtable/internal/models"
	"github.com/friendsincode/roundtable/internal/scheduling"
)

// DefaultInviteTTL bounds how long an invite link stays valid.
const DefaultInviteTTL = 7 * 24 * time.Hour

// Claims binds an invite token to one participant and one placed slot.
type Claims struct {
	ParticipantID string    `json:"pid"`
	SessionID     string    `json:"sid"`
	BookingID     string    `json:"bid,omitempty"`
	SlotStart     time.Time `json:"slot_start"`
	SlotEnd       time.Time `json:"slot_end"`
	jwt.RegisteredClaims
}

// Issue creates a signed invite token string. A zero ttl falls back to
// DefaultInviteTTL; a negative ttl yields an already-expired token.
func Issue(secret []byte, claims Claims, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = DefaultInviteTTL
	}
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		Subject:   claims.ParticipantID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// Parse validates an invite token string.
func Parse(secret []byte, token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}

// Issuer builds invite links for booking slots and announces them.
type Issuer struct {
	secret  []byte
	baseURL string
	ttl     time.Duration
	bus     scheduling.Publisher
	logger  zerolog.Logger
}

// NewIssuer creates an invite issuer. baseURL is the public root the links
// point at, e.g. "https://schedule.example.com".
func NewIssuer(secret []byte, baseURL string, ttl time.Duration, bus scheduling.Publisher, logger zerolog.Logger) *Issuer {
	if ttl <= 0 {
		ttl = DefaultInviteTTL
	}
	return &Issuer{
		secret:  secret,
		baseURL: baseURL,
		ttl:     ttl,
		bus:     bus,
		logger:  logger.With().Str("component", "selfservice").Logger(),
	}
}

// Invite is one issued link.
type Invite struct {
	ParticipantID string `json:"participant_id"`
	SessionID     string `json:"session_id"`
	URL           string `json:"url"`
}

// IssueForBooking creates one invite link per participant per slot of the
// booking and publishes an event for each so notification workers can
// deliver them.
func (i *Issuer) IssueForBooking(booking *models.Booking) ([]Invite, error) {
	var invites []Invite
	for _, slot := range booking.Slots {
		for _, a := range slot.Participants {
			token, err := Issue(i.secret, Claims{
				ParticipantID: a.ParticipantID,
				SessionID:     slot.SessionID,
				BookingID:     booking.ID,
				SlotStart:     slot.StartsAt,
				SlotEnd:       slot.EndsAt,
			}, i.ttl)
			if err != nil {
				return nil, fmt.Errorf("sign invite for %s: %w", a.ParticipantID, err)
			}

			invite := Invite{
				ParticipantID: a.ParticipantID,
				SessionID:     slot.SessionID,
				URL:           i.link(token),
			}
			invites = append(invites, invite)

			if i.bus != nil {
				i.bus.Publish(events.EventInviteIssued, events.Payload{
					"booking_id":     booking.ID,
					"participant_id": a.ParticipantID,
					"session_id":     slot.SessionID,
					"url":            invite.URL,
				})
			}
		}
	}

	i.logger.Info().
		Str("booking_id", booking.ID).
		Int("invites", len(invites)).
		Msg("invite links issued")
	return invites, nil
}

func (i *Issuer) link(token string) string {
	return i.baseURL + "/invite?" + url.Values{"token": {token}}.Encode()
}
