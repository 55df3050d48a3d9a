// Package store defines the document store client used by every resource.
// A store holds named collections of schema-flexible documents, each
// addressable by a store-assigned string identifier.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by FindByID and FindFirst when no document matches.
var ErrNotFound = errors.New("document not found")

// Document is a stored record: the store-assigned identifier plus its fields.
// The identifier never appears inside Fields.
type Document struct {
	ID     string
	Fields map[string]any
}

// Patch is a field-merge update: Set overwrites the named fields and Unset
// removes them. Fields mentioned in neither are left untouched.
type Patch struct {
	Set   map[string]any
	Unset []string
}

// IsEmpty reports whether applying the patch can never modify a document.
func (p Patch) IsEmpty() bool {
	return len(p.Set) == 0 && len(p.Unset) == 0
}

// Store is the interface every backend implements.
//
// Identifiers are opaque strings whose format is backend-defined; ValidID is
// the format predicate and is distinct from an existence check. UpdateByID
// reports the number of documents actually modified, not merely matched, so
// a patch that changes nothing yields zero.
type Store interface {
	// ValidID reports whether id is well-formed for this backend.
	ValidID(id string) bool

	// InsertOne stores a new document and returns its assigned identifier.
	InsertOne(ctx context.Context, collection string, fields map[string]any) (string, error)

	// FindByID returns the document with the given identifier.
	FindByID(ctx context.Context, collection, id string) (Document, error)

	// FindFirst returns an arbitrary document from the collection, or
	// ErrNotFound if the collection is empty. Used for singleton resources.
	FindFirst(ctx context.Context, collection string) (Document, error)

	// FindAll returns every document in the collection in store order.
	FindAll(ctx context.Context, collection string) ([]Document, error)

	// UpdateByID applies a field-merge patch to one document and returns
	// the number of documents modified (0 or 1).
	UpdateByID(ctx context.Context, collection, id string, patch Patch) (int64, error)

	// DeleteByID removes at most one document and reports whether it existed.
	DeleteByID(ctx context.Context, collection, id string) (bool, error)

	Ping(ctx context.Context) error
	Close() error
}
