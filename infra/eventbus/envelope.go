package eventbus

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/amirasaad/ledgerbook/pkg/domain/events"
)

// Envelope is the wire format shared by every broker-backed bus.
type Envelope struct {
	Type    string          `json:"type"`
	Source  string          `json:"source"`
	SentAt  time.Time       `json:"sent_at"`
	Payload json.RawMessage `json:"payload"`
}

const envelopeSource = "ledgerbook"

func encodeEnvelope(event events.Event) ([]byte, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal %s event: %w", event.Type(), err)
	}
	data, err := json.Marshal(Envelope{
		Type:    event.Type(),
		Source:  envelopeSource,
		SentAt:  time.Now().UTC(),
		Payload: payload,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal envelope: %w", err)
	}
	return data, nil
}

// DecodeEnvelope parses a message body written by one of the broker buses.
func DecodeEnvelope(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Type == "" {
		return Envelope{}, fmt.Errorf("unmarshal envelope: missing type")
	}
	return env, nil
}
