package events

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dealflow-labs/sponsorship-board/internal/agreement"
	"github.com/dealflow-labs/sponsorship-board/internal/store"
)

// Conn is the part of *nats.Conn used for publishing.
type Conn interface {
	Publish(subj string, data []byte) error
}

// AgreementEvent carries the store sequence number so consumers can drop stale updates.
type AgreementEvent struct {
	Seq       uint64               `json:"seq"`
	Kind      string               `json:"kind"`
	ID        string               `json:"id,omitempty"`
	At        time.Time            `json:"at"`
	Agreement *agreement.Agreement `json:"agreement,omitempty"`
}

// Publisher forwards agreement changes of the store to NATS.
type Publisher struct {
	conn   Conn
	prefix string
}

func NewPublisher(conn Conn, prefix string) *Publisher {
	return &Publisher{
		conn:   conn,
		prefix: prefix,
	}
}

// Listen is a store.Listener. Failures are logged and never reach the store.
func (p *Publisher) Listen(e store.Event) {
	if !isAgreementEvent(e.Kind) {
		return
	}

	payload, err := json.Marshal(AgreementEvent{
		Seq:       e.Seq,
		Kind:      string(e.Kind),
		ID:        e.ID,
		At:        e.At,
		Agreement: e.Agreement,
	})
	if err != nil {
		log.Error().Err(err).Str("kind", string(e.Kind)).Msg("marshal agreement event")

		return
	}

	subject := AgreementSubject(p.prefix, e.Kind)
	if err = p.conn.Publish(subject, payload); err != nil {
		log.Error().Err(err).Str("subject", subject).Msg("publish agreement event")
	}
}

// AgreementSubject returns e.g. dealboard.agreements.status_changed.
func AgreementSubject(prefix string, kind store.EventKind) string {
	name := string(kind)
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[idx+1:]
	}

	return fmt.Sprintf("%s.agreements.%s", prefix, name)
}

func isAgreementEvent(kind store.EventKind) bool {
	switch kind {
	case store.EventAgreementCreated,
		store.EventAgreementUpdated,
		store.EventAgreementStatusChanged,
		store.EventAgreementDeleted,
		store.EventAgreementsReplaced:
		return true
	default:
		return false
	}
}
