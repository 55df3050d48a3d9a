package entity

import (
	"encoding/base64"
	"encoding/json"
	"net/mail"
	"net/url"
	"strings"
	"time"
)

// ValidationError names the offending field so handlers can surface it.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// Value is one field of a patch. A field missing from the patch entirely is
// "absent"; Null marks an explicit JSON null, which clears the stored field.
type Value struct {
	Null bool
	Data any // string, time.Time or []string, ready for storage
}

// Patch is the typed form of a request body: only the fields actually
// present in the JSON appear in it, each either null or a validated value.
type Patch struct {
	schema Schema
	values map[string]Value
}

// ParsePatch validates a JSON body against the schema. With full set,
// every required field must be present and non-null (create); otherwise
// present fields are validated but none are mandatory (update). Fields the
// schema does not know are ignored.
func ParsePatch(schema Schema, body []byte, full bool) (Patch, error) {
	raw := map[string]json.RawMessage{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &raw); err != nil {
			return Patch{}, invalid("body", "must be a JSON object")
		}
	}

	p := Patch{schema: schema, values: map[string]Value{}}
	for _, f := range schema.Fields {
		rv, present := raw[f.Name]
		if !present {
			if full && f.Required {
				return Patch{}, invalid(f.Name, "is required")
			}
			continue
		}

		if isNull(rv) {
			if f.Required {
				if full {
					return Patch{}, invalid(f.Name, "is required")
				}
				return Patch{}, invalid(f.Name, "cannot be cleared")
			}
			p.values[f.Name] = Value{Null: true}
			continue
		}

		v, err := parseField(f, rv)
		if err != nil {
			return Patch{}, err
		}
		p.values[f.Name] = Value{Data: v}
	}
	return p, nil
}

func isNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}

func parseField(f Field, raw json.RawMessage) (any, error) {
	switch f.Kind {
	case Text, Email, URL, Date, Blob:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, invalid(f.Name, "must be a string")
		}
		return parseString(f, s)
	case StringList:
		var list []string
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, invalid(f.Name, "must be a list of strings")
		}
		return list, nil
	default:
		return nil, invalid(f.Name, "has an unsupported type")
	}
}

func parseString(f Field, s string) (any, error) {
	if f.Required && strings.TrimSpace(s) == "" {
		return nil, invalid(f.Name, "must not be empty")
	}

	switch f.Kind {
	case Date:
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, invalid(f.Name, "must be a calendar date (YYYY-MM-DD)")
		}
		// Midnight UTC, so the calendar date survives storage untouched.
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), nil
	case URL:
		u, err := url.Parse(s)
		if err != nil || !u.IsAbs() || u.Host == "" {
			return nil, invalid(f.Name, "must be a well-formed absolute URL")
		}
		return u.String(), nil
	case Email:
		if _, err := mail.ParseAddress(s); err != nil {
			return nil, invalid(f.Name, "must be a valid email address")
		}
		return s, nil
	case Blob:
		if _, err := base64.StdEncoding.DecodeString(s); err != nil {
			return nil, invalid(f.Name, "must be base64-encoded")
		}
		return s, nil
	default:
		return s, nil
	}
}

// IsEmpty reports whether the patch carries no fields at all.
func (p Patch) IsEmpty() bool {
	return len(p.values) == 0
}
