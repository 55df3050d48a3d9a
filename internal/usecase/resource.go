package usecase

import (
	"context"
	"fmt"

	"portfolio-api/internal/entity"
	"portfolio-api/internal/store"
)

// Entity is the wire shape of one stored resource: all schema fields plus id.
type Entity = map[string]any

// Resource implements the shared CRUD contract for one entity schema.
// Handlers instantiate one per resource; all state lives in the store.
type Resource struct {
	schema entity.Schema
	st     store.Store
}

func NewResource(st store.Store, schema entity.Schema) *Resource {
	return &Resource{schema: schema, st: st}
}

func (r *Resource) Schema() entity.Schema {
	return r.schema
}

// List returns every document in the collection in store order.
func (r *Resource) List(ctx context.Context) ([]Entity, error) {
	docs, err := r.st.FindAll(ctx, r.schema.Collection)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	out := make([]Entity, 0, len(docs))
	for _, doc := range docs {
		out = append(out, entity.FromStorage(r.schema, doc))
	}
	return out, nil
}

// Create validates the full payload, inserts it and returns the re-fetched
// document. Singleton schemas conflict when a document already exists.
func (r *Resource) Create(ctx context.Context, body []byte) (Entity, error) {
	patch, err := entity.ParsePatch(r.schema, body, true)
	if err != nil {
		return nil, err
	}

	if r.schema.Singleton {
		_, err := r.st.FindFirst(ctx, r.schema.Collection)
		switch {
		case err == nil:
			return nil, ErrConflict
		case err != store.ErrNotFound:
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	id, err := r.st.InsertOne(ctx, r.schema.Collection, entity.ToStorage(patch).Set)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	doc, err := r.st.FindByID(ctx, r.schema.Collection, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return entity.FromStorage(r.schema, doc), nil
}

// Update applies a field-merge patch to the identified document and returns
// its current state. For singleton schemas id must be empty: the sole
// document is resolved implicitly. A merge that modifies nothing reports
// ErrNotFound, the same as an unknown id.
func (r *Resource) Update(ctx context.Context, id string, body []byte) (Entity, error) {
	if r.schema.Singleton {
		doc, err := r.st.FindFirst(ctx, r.schema.Collection)
		if err == store.ErrNotFound {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		id = doc.ID
	} else if !r.st.ValidID(id) {
		return nil, ErrInvalidID
	}

	patch, err := entity.ParsePatch(r.schema, body, false)
	if err != nil {
		return nil, err
	}

	modified, err := r.st.UpdateByID(ctx, r.schema.Collection, id, entity.ToStorage(patch))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if modified == 0 {
		return nil, ErrNotFound
	}

	doc, err := r.st.FindByID(ctx, r.schema.Collection, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return entity.FromStorage(r.schema, doc), nil
}

// Delete removes at most one document by id.
func (r *Resource) Delete(ctx context.Context, id string) error {
	if !r.st.ValidID(id) {
		return ErrInvalidID
	}

	deleted, err := r.st.DeleteByID(ctx, r.schema.Collection, id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
