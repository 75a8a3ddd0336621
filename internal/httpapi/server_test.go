package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"dewi/internal/app"
	"dewi/internal/storage"
	"dewi/internal/video"
)

func newTestRouter(t *testing.T) (http.Handler, *app.Service) {
	t.Helper()

	base := t.TempDir()
	store := storage.NewLocalStorage(base+"/assets", base+"/videos", base+"/audio")
	if err := store.EnsureDirectories(); err != nil {
		t.Fatal(err)
	}

	svc := app.NewService(app.ServiceOptions{
		Store: store,
		Assembler: video.NewAssembler(video.AssemblerOptions{
			FFmpegPath:  "/nonexistent/ffmpeg",
			OutputDir:   base + "/videos",
			Resolution:  "1080x1920",
			Backgrounds: store,
		}),
	})

	return NewServer(svc).Router(), svc
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestCreateFactAndGenerate(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/facts", map[string]string{
		"text": "Bananas are berries but strawberries are not",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create fact status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	fact := decodeBody[app.Fact](t, rec)
	if fact.ID == "" {
		t.Fatal("fact id empty")
	}

	rec = doJSON(t, router, http.MethodPost, "/api/videos/generate", map[string]string{
		"fact_id": fact.ID,
		"vibe":    "cozy",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("generate status = %d: %s", rec.Code, rec.Body.String())
	}
	v := decodeBody[app.Video](t, rec)
	if v.Vibe != "cozy" {
		t.Errorf("vibe = %q, want cozy", v.Vibe)
	}
	if v.Script == nil || v.Script.Hook == "" {
		t.Error("generated video missing script")
	}
	if v.AIAvailable {
		t.Error("AIAvailable = true without a configured generator")
	}
}

func TestCreateFactValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	tests := []struct {
		name string
		body any
	}{
		{"emptyText", map[string]string{"text": "  "}},
		{"missingText", map[string]string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/api/facts", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestGenerateUnknownFact(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodPost, "/api/videos/generate", map[string]string{
		"fact_id": "missing",
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestRenderFlow(t *testing.T) {
	router, svc := newTestRouter(t)
	fact := svc.AddFact("some fact")

	rec := doJSON(t, router, http.MethodPost, "/api/videos/generate", map[string]string{"fact_id": fact.ID})
	v := decodeBody[app.Video](t, rec)

	rec = doJSON(t, router, http.MethodPost, "/api/videos/render", map[string]any{
		"video_id":      v.ID,
		"include_audio": false,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("render status = %d: %s", rec.Code, rec.Body.String())
	}
	result := decodeBody[app.RenderResult](t, rec)
	if result.Status != app.StatusPendingToolchain {
		t.Errorf("status = %q, want %q", result.Status, app.StatusPendingToolchain)
	}

	// A placeholder render has no downloadable clip.
	rec = doJSON(t, router, http.MethodGet, "/api/videos/render/"+result.RenderID+"/download", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("download status = %d, want 404 for placeholder render", rec.Code)
	}
}

func TestGetVideoNotFound(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/api/videos/missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestBatchGenerate(t *testing.T) {
	router, svc := newTestRouter(t)
	var ids []string
	for i := 0; i < 3; i++ {
		ids = append(ids, svc.AddFact(fmt.Sprintf("fact %d", i)).ID)
	}
	ids = append(ids, "missing")

	rec := doJSON(t, router, http.MethodPost, "/api/videos/batch-generate", map[string]any{
		"fact_ids": ids,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	resp := decodeBody[struct {
		Requested int `json:"requested"`
		Generated int `json:"generated"`
	}](t, rec)
	if resp.Requested != 4 || resp.Generated != 3 {
		t.Errorf("requested/generated = %d/%d, want 4/3", resp.Requested, resp.Generated)
	}
}

func TestListVideosEnvelope(t *testing.T) {
	router, svc := newTestRouter(t)
	for i := 0; i < 3; i++ {
		fact := svc.AddFact(fmt.Sprintf("fact %d", i))
		if _, err := svc.GenerateVideo(context.Background(), fact.ID, "hype"); err != nil {
			t.Fatal(err)
		}
	}

	rec := doJSON(t, router, http.MethodGet, "/api/videos?skip=1&limit=1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	resp := decodeBody[struct {
		Videos []app.Video `json:"videos"`
		Total  int         `json:"total"`
	}](t, rec)
	if len(resp.Videos) != 1 {
		t.Errorf("len(videos) = %d, want 1 with limit=1", len(resp.Videos))
	}
	if resp.Total != 3 {
		t.Errorf("total = %d, want 3", resp.Total)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/videos?skip=10", nil)
	resp = decodeBody[struct {
		Videos []app.Video `json:"videos"`
		Total  int         `json:"total"`
	}](t, rec)
	if resp.Videos == nil {
		t.Error("videos should be an empty list past the end, not null")
	}
}

func TestServiceStatus(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/api/videos/status/services", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	status := decodeBody[app.ServiceStatus](t, rec)
	if status.AIAvailable || status.TTSAvailable || status.FFmpegAvailable {
		t.Errorf("status = %+v, want all capabilities unavailable", status)
	}
}

func TestDownloadName(t *testing.T) {
	if got := downloadName("0a1b2c3d-ffff-4444-aaaa-bbbbccccdddd"); got != "dewi_video_0a1b2c3d.mp4" {
		t.Errorf("downloadName() = %q", got)
	}
}
