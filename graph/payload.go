package graph

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/message"
)

func init() {
	err := component.RegisterPayload(&component.PayloadRegistration{
		Domain:      "extmodel",
		Category:    "entity",
		Version:     "v1",
		Description: "Extension model entity with its facts for graph ingestion",
		Factory:     func() any { return &EntityPayload{} },
	})
	if err != nil {
		panic("failed to register EntityPayload: " + err.Error())
	}
}

// EntityType is the message type for extension model entity payloads.
var EntityType = message.Type{Domain: "extmodel", Category: "entity", Version: "v1"}

// EntityPayload is one entity and its facts, as published for graph ingestion.
type EntityPayload struct {
	ID         string           `json:"id"`
	TripleData []message.Triple `json:"triples"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

func (e *EntityPayload) EntityID() string          { return e.ID }
func (e *EntityPayload) Triples() []message.Triple { return e.TripleData }
func (e *EntityPayload) Schema() message.Type      { return EntityType }

func (e *EntityPayload) Validate() error {
	if e.ID == "" {
		return errors.New("entity ID is required")
	}
	if len(e.TripleData) == 0 {
		return errors.New("entity has no triples")
	}
	return nil
}

func (e *EntityPayload) MarshalJSON() ([]byte, error) {
	type Alias EntityPayload
	return json.Marshal((*Alias)(e))
}

func (e *EntityPayload) UnmarshalJSON(data []byte) error {
	type Alias EntityPayload
	return json.Unmarshal(data, (*Alias)(e))
}
