package messages

import (
	"encoding/json"
	"errors"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/errs"
)

// Envelope is one message in flight between two agents.
//
// Body stays raw JSON until the recipient decodes it, so a malformed body only
// fails inside the recipient's handler and never on the transport.
type Envelope struct {
	ID           kernel.UUID
	From         Address
	To           Address
	Performative Performative
	Body         json.RawMessage
}

// NewEnvelope encodes b and addresses it from one agent to another. The performative
// is taken from the body type.
func NewEnvelope(from, to Address, b Body) (Envelope, error) {
	if err := errors.Join(from.Validate(), to.Validate()); err != nil {
		return Envelope{}, err
	}

	raw, err := EncodeBody(b)
	if err != nil {
		return Envelope{}, err
	}

	return Envelope{
		ID:           kernel.NewUUID(),
		From:         from,
		To:           to,
		Performative: b.Performative(),
		Body:         raw,
	}, nil
}

// Validate checks routing metadata only. The body is checked by Decode.
func (e Envelope) Validate() error {
	return errors.Join(
		e.ID.Validate(),
		e.From.Validate(),
		e.To.Validate(),
		e.Performative.Validate(),
	)
}

// Decode parses the body.
func (e Envelope) Decode() (Body, error) {
	return DecodeBody(e.Body)
}

type wireEnvelope struct {
	ID           string          `json:"id"`
	From         Address         `json:"from"`
	To           Address         `json:"to"`
	Performative Performative    `json:"performative"`
	Body         json.RawMessage `json:"body"`
}

// MarshalJSON implements json.Marshaler.
func (e Envelope) MarshalJSON() ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(wireEnvelope{
		ID:           e.ID.String(),
		From:         e.From,
		To:           e.To,
		Performative: e.Performative,
		Body:         e.Body,
	})
}

// UnmarshalJSON implements json.Unmarshaler. The body is kept raw.
func (e *Envelope) UnmarshalJSON(data []byte) error {
	var w wireEnvelope
	if err := json.Unmarshal(data, &w); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("envelope", err)
	}

	id, err := kernel.UUIDFromString(w.ID)
	if err != nil {
		return err
	}

	env := Envelope{
		ID:           id,
		From:         w.From,
		To:           w.To,
		Performative: w.Performative,
		Body:         w.Body,
	}
	if err := env.Validate(); err != nil {
		return err
	}

	*e = env
	return nil
}
