package httpapi

import (
	"crypto/subtle"
	"embed"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/remedylabs/remedysearch/internal/core/domain"
	"github.com/remedylabs/remedysearch/internal/logger"
)

//go:embed static
var staticFS embed.FS

type searchRequest struct {
	Q string `json:"q"`
	K int    `json:"k"`
}

type searchResponse struct {
	OK       bool            `json:"ok"`
	Query    string          `json:"query"`
	Remedies []domain.Remedy `json:"remedies"`
}

type uploadResponse struct {
	OK     bool   `json:"ok"`
	BookID string `json:"book_id"`
	Title  string `json:"title"`
	Chunks int    `json:"chunks"`
}

type healthResponse struct {
	Status       string `json:"status"`
	BooksLoaded  int    `json:"books_loaded"`
	ChunksLoaded int    `json:"chunks_loaded"`
	ExtractMode  string `json:"extract_mode"`
}

type errorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, "page unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page) //nolint:errcheck
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status, err := s.ports.Library.Status(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Status:       "healthy",
		BooksLoaded:  status.Books,
		ChunksLoaded: status.Chunks,
		ExtractMode:  s.ports.Remedy.ExtractMode().String(),
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrInvalidInput)
		return
	}
	if strings.TrimSpace(req.Q) == "" {
		writeError(w, domain.ErrInvalidInput)
		return
	}

	remedies, err := s.ports.Remedy.Search(r.Context(), req.Q, domain.SearchOptions{
		Limit: req.K,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	// The page expects an array, never null.
	if remedies == nil {
		remedies = []domain.Remedy{}
	}

	writeJSON(w, http.StatusOK, searchResponse{
		OK:       true,
		Query:    strings.TrimSpace(req.Q),
		Remedies: remedies,
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		writeError(w, domain.ErrUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, domain.ErrInvalidInput)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, domain.ErrInvalidInput)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, err)
		return
	}

	book, chunks, err := s.ports.Library.Ingest(r.Context(), &domain.RawBook{
		Filename: header.Filename,
		Content:  content,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	logger.Info("Uploaded %q: %d chunks", book.Title, chunks)

	writeJSON(w, http.StatusOK, uploadResponse{
		OK:     true,
		BookID: book.ID,
		Title:  book.Title,
		Chunks: chunks,
	})
}

// authorized checks the upload admin token. No configured token means
// uploads are open.
func (s *Server) authorized(r *http.Request) bool {
	if s.adminToken == "" {
		return true
	}
	auth := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(s.adminToken)) == 1
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrNoBooks),
		errors.Is(err, domain.ErrNoText),
		errors.Is(err, domain.ErrUnsupportedFormat):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	}
	writeJSON(w, status, errorResponse{OK: false, Error: err.Error()})
}
