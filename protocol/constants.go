package protocol

// SchemaVersion is the Arri Type Definition version emitted in definition documents.
const SchemaVersion = "0.0.8"

// Definitions document keys.
const (
	KeySchemaVersion = "schemaVersion"
	KeyDefinitions   = "definitions"
)

// HTTP routes served by the transport package.
const (
	PathHealth      = "/health"
	PathDefinitions = "/definitions"
)

// WebSocket message types.
const (
	MessageDefinitions = "definitions"
	MessageError       = "error"
)
