package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"dewi/internal/app"
)

// Server exposes the pipeline over HTTP.
type Server struct {
	svc *app.Service
}

func NewServer(svc *app.Service) *Server {
	return &Server{svc: svc}
}

// Router builds the API route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/facts", s.handleCreateFact)
		r.Get("/facts", s.handleListFacts)

		r.Route("/videos", func(r chi.Router) {
			r.Post("/generate", s.handleGenerate)
			r.Post("/batch-generate", s.handleBatchGenerate)
			r.Post("/render", s.handleRender)
			r.Get("/", s.handleListVideos)
			r.Get("/status/services", s.handleServiceStatus)
			r.Get("/render/{renderID}/download", s.handleDownloadVideo)
			r.Get("/render/{renderID}/audio", s.handleDownloadAudio)
			r.Get("/{videoID}", s.handleGetVideo)
		})
	})

	return r
}

type createFactRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleCreateFact(w http.ResponseWriter, r *http.Request) {
	var req createFactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "fact text is required")
		return
	}

	fact := s.svc.AddFact(req.Text)
	writeJSON(w, http.StatusCreated, fact)
}

func (s *Server) handleListFacts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.ListFacts())
}

type generateRequest struct {
	FactID string `json:"fact_id"`
	Vibe   string `json:"vibe"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.FactID == "" {
		writeError(w, http.StatusBadRequest, "fact_id is required")
		return
	}

	video, err := s.svc.GenerateVideo(r.Context(), req.FactID, req.Vibe)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, video)
}

type batchGenerateRequest struct {
	FactIDs []string `json:"fact_ids"`
	Vibe    string   `json:"vibe"`
	Limit   int      `json:"limit"`
}

func (s *Server) handleBatchGenerate(w http.ResponseWriter, r *http.Request) {
	var req batchGenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.FactIDs) == 0 {
		writeError(w, http.StatusBadRequest, "fact_ids is required")
		return
	}

	items := s.svc.BatchGenerate(r.Context(), req.FactIDs, req.Vibe, req.Limit)
	generated := 0
	for _, item := range items {
		if item.Video != nil {
			generated++
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"results":   items,
		"requested": len(req.FactIDs),
		"generated": generated,
	})
}

type renderRequest struct {
	VideoID      string `json:"video_id"`
	IncludeAudio bool   `json:"include_audio"`
	MascotVoice  string `json:"mascot_voice"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.VideoID == "" {
		writeError(w, http.StatusBadRequest, "video_id is required")
		return
	}

	result, err := s.svc.RenderVideo(r.Context(), req.VideoID, req.IncludeAudio, req.MascotVoice)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleListVideos(w http.ResponseWriter, r *http.Request) {
	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", 100)
	videos := s.svc.ListVideos(skip, limit)
	if videos == nil {
		videos = []*app.Video{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"videos": videos,
		"total":  s.svc.VideoCount(),
	})
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func (s *Server) handleGetVideo(w http.ResponseWriter, r *http.Request) {
	video, err := s.svc.GetVideo(chi.URLParam(r, "videoID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, video)
}

func (s *Server) handleDownloadVideo(w http.ResponseWriter, r *http.Request) {
	renderID := chi.URLParam(r, "renderID")
	path, err := s.svc.RenderedArtifact(renderID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", downloadName(renderID)))
	http.ServeFile(w, r, path)
}

func (s *Server) handleDownloadAudio(w http.ResponseWriter, r *http.Request) {
	renderID := chi.URLParam(r, "renderID")
	path, err := s.svc.NarrationArtifact(renderID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", renderID+".mp3"))
	http.ServeFile(w, r, path)
}

func (s *Server) handleServiceStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Status())
}

// downloadName builds a short user-facing filename from the render id.
func downloadName(renderID string) string {
	short := renderID
	if len(short) > 8 {
		short = short[:8]
	}
	return "dewi_video_" + short + ".mp4"
}

func writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, app.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	slog.Error("Request failed", "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
