package usecase

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"portfolio-api/internal/entity"
	"portfolio-api/internal/store"
)

type IconUpload struct {
	Name        string
	Filename    string
	ContentType string
	Data        []byte
}

type IconItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	// ImageData is a data-URI ready for direct <img src> embedding.
	ImageData string `json:"image_data"`
}

// Icon handles skill icon uploads and the data-URI listing. Update and
// delete of stored icons go through the generic Resource service.
type Icon struct {
	st store.Store
}

func NewIcon(st store.Store) *Icon {
	return &Icon{st: st}
}

// Upload validates the declared media type, base64-encodes the payload and
// stores it with the original filename. Returns the assigned id.
func (u *Icon) Upload(ctx context.Context, in IconUpload) (string, error) {
	if strings.TrimSpace(in.Name) == "" {
		return "", &entity.ValidationError{Field: "name", Reason: "is required"}
	}
	if !strings.HasPrefix(in.ContentType, "image/") {
		return "", &entity.ValidationError{Field: "file", Reason: "must be an image"}
	}

	fields := map[string]any{
		"name":           in.Name,
		"image_filename": in.Filename,
		"content_type":   in.ContentType,
		"image_data":     base64.StdEncoding.EncodeToString(in.Data),
	}
	id, err := u.st.InsertOne(ctx, entity.Skill.Collection, fields)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return id, nil
}

// List returns every stored icon with its payload wrapped as a data-URI.
// The payload is decoded and re-encoded so a corrupt document surfaces
// here rather than in a client's img tag.
func (u *Icon) List(ctx context.Context) ([]IconItem, error) {
	docs, err := u.st.FindAll(ctx, entity.Skill.Collection)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	out := make([]IconItem, 0, len(docs))
	for _, doc := range docs {
		name := stringField(doc.Fields, "name")
		if name == "" {
			name = "Unnamed"
		}
		contentType := stringField(doc.Fields, "content_type")

		payload := stringField(doc.Fields, "image_data")
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: corrupt icon payload %s", ErrInternal, doc.ID)
		}
		payload = base64.StdEncoding.EncodeToString(decoded)

		out = append(out, IconItem{
			ID:          doc.ID,
			Name:        name,
			ContentType: contentType,
			ImageData:   entity.DataURI(contentType, payload),
		})
	}
	return out, nil
}

func stringField(fields map[string]any, name string) string {
	s, _ := fields[name].(string)
	return s
}
