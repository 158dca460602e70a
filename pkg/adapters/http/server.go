package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/aretw0/voyager"
	"github.com/aretw0/voyager/pkg/domain"
	"github.com/aretw0/voyager/pkg/ports"
	"github.com/go-chi/chi/v5"
)

// DefaultMaxBody caps the size of uploaded payloads.
const DefaultMaxBody = 64 << 20

// Server exposes an AssetStore over HTTP:
//
//	GET    /assets?prefix=p   list locations
//	GET    /assets/{location} read a payload
//	PUT    /assets/{location} write a payload
//	DELETE /assets/{location} remove a payload
//	GET    /events            server-sent asset change events
type Server struct {
	Store     ports.AssetStore
	Validator ports.DocumentValidator
	Locker    ports.DistributedLocker
	Streams   *StreamManager
	Logger    *slog.Logger
	LockTTL   time.Duration
	MaxBody   int64
}

type Option func(*Server)

// WithValidator rejects uploaded scene documents that fail validation.
func WithValidator(v ports.DocumentValidator) Option {
	return func(s *Server) { s.Validator = v }
}

// WithLocker serializes writes to the same location.
func WithLocker(l ports.DistributedLocker) Option {
	return func(s *Server) { s.Locker = l }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.Logger = logger }
}

// NewServer creates a server over store.
func NewServer(store ports.AssetStore, opts ...Option) *Server {
	s := &Server{
		Store:   store,
		Streams: NewStreamManager(),
		Logger:  slog.Default(),
		LockTTL: 30 * time.Second,
		MaxBody: DefaultMaxBody,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewHandler creates the HTTP handler for an asset store.
func NewHandler(store ports.AssetStore, opts ...Option) http.Handler {
	return NewServer(store, opts...).Routes()
}

// Routes returns the router of the server.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/events", s.SubscribeEvents)
	r.Get("/assets", s.ListAssets)
	r.Get("/assets/*", s.GetAsset)
	r.Put("/assets/*", s.PutAsset)
	r.Delete("/assets/*", s.DeleteAsset)
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func location(r *http.Request) (string, error) {
	raw := chi.URLParam(r, "*")
	loc, err := url.PathUnescape(raw)
	if err != nil || loc == "" || strings.HasPrefix(loc, "/") {
		return "", fmt.Errorf("invalid asset location %q", raw)
	}
	return loc, nil
}

// GetAsset handles GET /assets/{location}.
func (s *Server) GetAsset(w http.ResponseWriter, r *http.Request) {
	loc, err := location(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	data, err := s.Store.Get(r.Context(), loc)
	if err != nil {
		if errors.Is(err, domain.ErrAssetNotFound) {
			http.Error(w, "asset not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("read error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("GetAsset failed", "location", loc, "err", err)
		return
	}
	contentType := mime.TypeByExtension(path.Ext(loc))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(data)
}

// PutAsset handles PUT /assets/{location}. Scene documents are validated first when
// the server has a validator.
func (s *Server) PutAsset(w http.ResponseWriter, r *http.Request) {
	loc, err := location(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.MaxBody))
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("PutAsset: invalid request body", "location", loc, "err", err)
		return
	}

	if s.Validator != nil && strings.HasSuffix(loc, domain.DocumentSuffix) {
		if err := s.Validator.ValidateJSON(data); err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			s.Logger.Warn("PutAsset: document rejected", "location", loc, "err", err)
			return
		}
	}

	if s.Locker != nil {
		unlock, err := s.Locker.Lock(r.Context(), loc, s.LockTTL)
		if err != nil {
			http.Error(w, fmt.Sprintf("lock error: %v", err), http.StatusServiceUnavailable)
			s.Logger.Error("PutAsset: lock failed", "location", loc, "err", err)
			return
		}
		defer func() {
			if err := unlock(context.Background()); err != nil {
				s.Logger.Warn("PutAsset: unlock failed", "location", loc, "err", err)
			}
		}()
	}

	if err := s.Store.Put(r.Context(), loc, data); err != nil {
		http.Error(w, fmt.Sprintf("write error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("PutAsset failed", "location", loc, "err", err)
		return
	}
	s.Logger.Debug("PutAsset", "location", loc, "size", len(data))
	s.Streams.Broadcast(AssetEvent{Op: OpPut, Location: loc})
	w.WriteHeader(http.StatusNoContent)
}

// DeleteAsset handles DELETE /assets/{location}.
func (s *Server) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	loc, err := location(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.Store.Delete(r.Context(), loc); err != nil {
		http.Error(w, fmt.Sprintf("delete error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("DeleteAsset failed", "location", loc, "err", err)
		return
	}
	s.Streams.Broadcast(AssetEvent{Op: OpDelete, Location: loc})
	w.WriteHeader(http.StatusNoContent)
}

// ListAssets handles GET /assets.
func (s *Server) ListAssets(w http.ResponseWriter, r *http.Request) {
	locations, err := s.Store.List(r.Context(), r.URL.Query().Get("prefix"))
	if err != nil {
		http.Error(w, fmt.Sprintf("list error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("ListAssets failed", "err", err)
		return
	}
	if locations == nil {
		locations = []string{}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(locations); err != nil {
		s.Logger.Error("ListAssets response encode failed", "err", err)
	}
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{
		"app":      "voyager-assets",
		"version":  strings.TrimSpace(voyager.Version),
		"document": domain.MimeType + ";version=" + domain.Version,
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// SubscribeEvents handles GET /events (SSE). An optional prefix query parameter
// restricts the stream to matching locations.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	prefix := r.URL.Query().Get("prefix")
	ch, cancel := s.Streams.Subscribe()
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if !strings.HasPrefix(event.Location, prefix) {
				continue
			}
			payload, err := json.Marshal(event)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
