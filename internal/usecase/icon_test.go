package usecase

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"portfolio-api/internal/entity"
	"portfolio-api/internal/store/memory"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13}

func TestIcon_UploadRejectsNonImage(t *testing.T) {
	uc := NewIcon(memory.New())

	_, err := uc.Upload(context.Background(), IconUpload{
		Name:        "resume",
		Filename:    "resume.pdf",
		ContentType: "application/pdf",
		Data:        []byte("%PDF-1.4"),
	})

	var ve *entity.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestIcon_UploadRequiresName(t *testing.T) {
	uc := NewIcon(memory.New())

	_, err := uc.Upload(context.Background(), IconUpload{
		Filename:    "go.png",
		ContentType: "image/png",
		Data:        pngBytes,
	})

	var ve *entity.ValidationError
	if !errors.As(err, &ve) || ve.Field != "name" {
		t.Fatalf("expected name violation, got %v", err)
	}
}

func TestIcon_UploadThenListRoundTrips(t *testing.T) {
	uc := NewIcon(memory.New())
	ctx := context.Background()

	id, err := uc.Upload(ctx, IconUpload{
		Name:        "Go",
		Filename:    "go.png",
		ContentType: "image/png",
		Data:        pngBytes,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if id == "" {
		t.Fatal("expected assigned id")
	}

	items, err := uc.List(ctx)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 icon, got %d", len(items))
	}

	it := items[0]
	if it.ID != id || it.Name != "Go" || it.ContentType != "image/png" {
		t.Fatalf("unexpected item: %+v", it)
	}

	const prefix = "data:image/png;base64,"
	if !strings.HasPrefix(it.ImageData, prefix) {
		t.Fatalf("expected data-URI, got %q", it.ImageData)
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(it.ImageData, prefix))
	if err != nil {
		t.Fatalf("payload not base64: %v", err)
	}
	if !bytes.Equal(decoded, pngBytes) {
		t.Fatalf("payload drifted: %v != %v", decoded, pngBytes)
	}
}

func TestIcon_ListDefaultsMissingName(t *testing.T) {
	st := memory.New()
	ctx := context.Background()

	_, err := st.InsertOne(ctx, entity.Skill.Collection, map[string]any{
		"image_filename": "mystery.png",
		"content_type":   "image/png",
		"image_data":     base64.StdEncoding.EncodeToString(pngBytes),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	items, err := NewIcon(st).List(ctx)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Unnamed" {
		t.Fatalf("expected Unnamed fallback, got %+v", items)
	}
}
