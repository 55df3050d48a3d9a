package handler_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"portfolio-api/internal/app"
	"portfolio-api/internal/config"
	"portfolio-api/internal/mail"
	"portfolio-api/internal/store/memory"
)

type mockMailer struct {
	sent []mail.Message
	err  error
}

func (m *mockMailer) Send(_ context.Context, msg mail.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func newTestApp(t *testing.T, mailer mail.Mailer) *app.App {
	t.Helper()
	if mailer == nil {
		mailer = &mockMailer{}
	}
	cfg := config.Config{}
	cfg.SMTP.Sender = "owner@example.com"
	return app.New(cfg, memory.New(), mailer)
}

func doJSON(t *testing.T, a *app.App, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.Fiber.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	raw, _ := io.ReadAll(resp.Body)
	out := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		_ = json.Unmarshal(raw, &out)
	}
	return resp, out
}

func listJSON(t *testing.T, a *app.App, path string) []map[string]any {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := a.Fiber.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var out []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("bad list body: %v", err)
	}
	return out
}

func TestProjectLifecycle(t *testing.T) {
	a := newTestApp(t, nil)

	resp, created := doJSON(t, a, http.MethodPost, "/projects/post", `{"name":"X"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	id, _ := created["id"].(string)
	if id == "" {
		t.Fatalf("expected id in %v", created)
	}
	if v, present := created["description"]; !present || v != nil {
		t.Fatalf("expected explicit null description, got %v", created)
	}

	items := listJSON(t, a, "/projects/get")
	if len(items) != 1 || items[0]["id"] != id {
		t.Fatalf("expected created project in listing, got %v", items)
	}

	resp, body := doJSON(t, a, http.MethodDelete, "/projects/delete/"+id, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body["detail"] != "Project deleted successfully" {
		t.Fatalf("unexpected confirmation: %v", body)
	}

	resp, _ = doJSON(t, a, http.MethodDelete, "/projects/delete/"+id, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 on repeat delete, got %d", resp.StatusCode)
	}
}

func TestMalformedIDDistinctFromNotFound(t *testing.T) {
	a := newTestApp(t, nil)

	resp, body := doJSON(t, a, http.MethodPut, "/projects/update/not-an-id", `{"name":"Y"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if body["detail"] != "Invalid ID format" {
		t.Fatalf("unexpected detail: %v", body)
	}

	resp, _ = doJSON(t, a, http.MethodPut,
		"/projects/update/b9f1c6a2-9c3e-4e0f-8a3d-0c2a1b4d5e6f", `{"name":"Y"}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestPersonalSingleton(t *testing.T) {
	a := newTestApp(t, nil)

	resp, _ := doJSON(t, a, http.MethodPut, "/personals/update", `{"passion":"systems"}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 before creation, got %d", resp.StatusCode)
	}

	body := `{"name":"Jane","email":"jane@example.com"}`
	resp, _ = doJSON(t, a, http.MethodPost, "/personals/post", body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	resp, errBody := doJSON(t, a, http.MethodPost, "/personals/post", body)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 conflict, got %d", resp.StatusCode)
	}
	if errBody["detail"] != "Personal information already exists" {
		t.Fatalf("unexpected detail: %v", errBody)
	}

	resp, updated := doJSON(t, a, http.MethodPut, "/personals/update", `{"passion":"systems"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if updated["passion"] != "systems" {
		t.Fatalf("unexpected body: %v", updated)
	}
}

func TestCreateValidationFailure(t *testing.T) {
	a := newTestApp(t, nil)

	resp, body := doJSON(t, a, http.MethodPost, "/experiences/post",
		`{"Company_name":"Acme","website":"not a url"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if detail, _ := body["detail"].(string); !strings.Contains(detail, "website") {
		t.Fatalf("expected website violation, got %v", body)
	}
}

var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13}

func uploadIcon(t *testing.T, a *app.App, name, filename, contentType string, data []byte) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("name", name); err != nil {
		t.Fatalf("write field: %v", err)
	}
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	hdr.Set("Content-Type", contentType)
	part, err := w.CreatePart(hdr)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	_ = w.Close()

	req := httptest.NewRequest(http.MethodPost, "/skills/post", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := a.Fiber.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestSkillUpload(t *testing.T) {
	a := newTestApp(t, nil)

	resp := uploadIcon(t, a, "Doc", "doc.pdf", "application/pdf", []byte("%PDF"))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-image, got %d", resp.StatusCode)
	}

	resp = uploadIcon(t, a, "Go", "go.png", "image/png", pngBytes)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var upload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&upload); err != nil {
		t.Fatalf("bad upload body: %v", err)
	}
	if upload["filename"] != "go.png" {
		t.Fatalf("unexpected upload body: %v", upload)
	}

	items := listJSON(t, a, "/skills/get")
	if len(items) != 1 {
		t.Fatalf("expected 1 skill, got %v", items)
	}
	uri, _ := items[0]["image_data"].(string)
	const prefix = "data:image/png;base64,"
	if !strings.HasPrefix(uri, prefix) {
		t.Fatalf("expected data-URI, got %q", uri)
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	if err != nil || !bytes.Equal(decoded, pngBytes) {
		t.Fatalf("payload round trip failed: %v %v", decoded, err)
	}
}

func TestContactEndpoint(t *testing.T) {
	mailer := &mockMailer{}
	a := newTestApp(t, mailer)

	body := `{"first_name":"Jane","last_name":"Doe","email":"jane@example.com","message":"hi"}`
	resp, out := doJSON(t, a, http.MethodPost, "/contact/post", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if out["message"] != "Email sent successfully" {
		t.Fatalf("unexpected body: %v", out)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected 1 delivery, got %d", len(mailer.sent))
	}

	resp, out = doJSON(t, a, http.MethodPost, "/contact/post", `{"first_name":"Jane"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	failing := newTestApp(t, &mockMailer{err: errors.New("smtp: connection refused")})
	resp, out = doJSON(t, failing, http.MethodPost, "/contact/post", body)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	if out["detail"] != "Failed to send email" {
		t.Fatalf("transport failure must be generic, got %v", out)
	}
}
