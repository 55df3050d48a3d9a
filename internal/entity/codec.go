package entity

import (
	"fmt"
	"time"

	"portfolio-api/internal/store"
)

// ToStorage converts a parsed patch into the stored form: set fields carry
// storage-ready values, null fields become clears. Pure; never touches the
// store.
func ToStorage(p Patch) store.Patch {
	out := store.Patch{Set: map[string]any{}}
	for _, f := range p.schema.Fields {
		v, ok := p.values[f.Name]
		if !ok {
			continue
		}
		if v.Null {
			out.Unset = append(out.Unset, f.Name)
			continue
		}
		out.Set[f.Name] = v.Data
	}
	return out
}

// FromStorage shapes a stored document into the wire representation: the
// store identifier becomes a public "id" field, date fields come back as
// calendar dates, everything else as stored. Every schema field is present
// in the result, absent ones as null.
func FromStorage(schema Schema, doc store.Document) map[string]any {
	out := map[string]any{"id": doc.ID}
	for _, f := range schema.Fields {
		v, ok := doc.Fields[f.Name]
		if !ok || v == nil {
			out[f.Name] = nil
			continue
		}
		if f.Kind == Date {
			if d, ok := dateString(v); ok {
				out[f.Name] = d
				continue
			}
		}
		out[f.Name] = v
	}
	return out
}

// dateString recovers the calendar date from however the backend stored the
// midnight-UTC timestamp: native time, RFC 3339 text, or a bare date.
func dateString(v any) (string, bool) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC().Format("2006-01-02"), true
	case string:
		if d, err := time.Parse(time.RFC3339, t); err == nil {
			return d.UTC().Format("2006-01-02"), true
		}
		if _, err := time.Parse("2006-01-02", t); err == nil {
			return t, true
		}
	}
	return "", false
}

// DataURI wraps a base64 payload for direct embedding by a client.
func DataURI(contentType, payload string) string {
	return fmt.Sprintf("data:%s;base64,%s", contentType, payload)
}
