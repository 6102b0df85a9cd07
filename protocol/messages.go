package protocol

import "encoding/json"

// Message is a server-to-client WebSocket message.
type Message struct {
	Type          string          `json:"type"`
	SchemaVersion string          `json:"schemaVersion,omitempty"`
	Definitions   json.RawMessage `json:"definitions,omitempty"`
	Error         *Error          `json:"error,omitempty"`
}

// NewDefinitionsMessage wraps a serialized definitions object.
func NewDefinitionsMessage(definitions string) *Message {
	return &Message{
		Type:          MessageDefinitions,
		SchemaVersion: SchemaVersion,
		Definitions:   json.RawMessage(definitions),
	}
}

// NewErrorMessage wraps an error.
func NewErrorMessage(err *Error) *Message {
	return &Message{Type: MessageError, Error: err}
}
