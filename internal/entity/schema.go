// Package entity defines the portfolio resource schemas and the pure
// serialization layer between wire JSON and stored documents.
package entity

// Kind is the wire/storage type of a schema field.
type Kind int

const (
	// Text is free-form text stored as-is.
	Text Kind = iota
	// Date is a calendar date on the wire (YYYY-MM-DD), stored as a
	// timestamp at midnight UTC.
	Date
	// URL must be a well-formed absolute URL; stored as a plain string.
	URL
	// Email must be a parseable address; stored as a plain string.
	Email
	// StringList is a JSON array of strings.
	StringList
	// Blob is binary content carried as a base64 string.
	Blob
)

type Field struct {
	Name     string
	Kind     Kind
	Required bool
}

// Schema describes one resource type: its display name (used in messages),
// backing collection, cardinality and fields.
type Schema struct {
	Name       string
	Collection string
	Singleton  bool
	Fields     []Field
}
