package schema

// Metadata is optional documentation attached to a node. Every field is
// independently absent; an absent field is omitted from the output.
type Metadata struct {
	ID                *string
	Description       *string
	IsDeprecated      *bool
	DeprecatedSince   *string
	DeprecatedMessage *string
}

// NewMetadata returns metadata with every field absent.
func NewMetadata() Metadata {
	return Metadata{}
}

// WithID returns a copy of m with the id set. The With methods never
// modify m.
func (m Metadata) WithID(id string) Metadata {
	m.ID = &id
	return m
}

func (m Metadata) WithDescription(description string) Metadata {
	m.Description = &description
	return m
}

func (m Metadata) WithDeprecated(deprecated bool) Metadata {
	m.IsDeprecated = &deprecated
	return m
}

func (m Metadata) WithDeprecatedSince(version string) Metadata {
	m.DeprecatedSince = &version
	return m
}

// WithDeprecatedMessage sets the note serialized as deprecatedNote.
func (m Metadata) WithDeprecatedMessage(message string) Metadata {
	m.DeprecatedMessage = &message
	return m
}

// Merge combines m with other field by field. Fields present in other win;
// fields absent in other keep the value from m.
func (m Metadata) Merge(other Metadata) Metadata {
	if other.ID != nil {
		m.ID = other.ID
	}
	if other.Description != nil {
		m.Description = other.Description
	}
	if other.IsDeprecated != nil {
		m.IsDeprecated = other.IsDeprecated
	}
	if other.DeprecatedSince != nil {
		m.DeprecatedSince = other.DeprecatedSince
	}
	if other.DeprecatedMessage != nil {
		m.DeprecatedMessage = other.DeprecatedMessage
	}
	return m
}

// IsZero reports whether every field is absent.
func (m Metadata) IsZero() bool {
	return m.ID == nil && m.Description == nil && m.IsDeprecated == nil &&
		m.DeprecatedSince == nil && m.DeprecatedMessage == nil
}

// Serialize emits id, description, isDeprecated, deprecatedSince and
// deprecatedNote, in that order.
func (m Metadata) Serialize() (string, bool) {
	return NewBuilder().
		Set("id", m.ID).
		Set("description", m.Description).
		Set("isDeprecated", m.IsDeprecated).
		Set("deprecatedSince", m.DeprecatedSince).
		Set("deprecatedNote", m.DeprecatedMessage).
		Build(), true
}

// described is embedded by nodes that carry metadata.
type described struct {
	metadata *Metadata
}

// SetMetadata merges m into the existing metadata, or installs it when the
// node has none.
func (d *described) SetMetadata(m Metadata) {
	if d.metadata == nil {
		d.metadata = &m
		return
	}
	merged := d.metadata.Merge(m)
	d.metadata = &merged
}

// Metadata returns the node's metadata and whether any was set.
func (d *described) Metadata() (Metadata, bool) {
	if d.metadata == nil {
		return Metadata{}, false
	}
	return *d.metadata, true
}

// nullability is embedded by nodes that carry isNullable.
type nullability struct {
	nullable *bool
}

func (n *nullability) SetNullable(nullable bool) {
	n.nullable = &nullable
}

// Nullable reports the isNullable flag. Unset reads as false.
func (n *nullability) Nullable() bool {
	return n.nullable != nil && *n.nullable
}
