// Package api serves the modes and stickers over HTTP as JSON.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sant0-9/companion/internal/logger"
	"github.com/sant0-9/companion/internal/mode"
	"github.com/sant0-9/companion/internal/modes/coach"
	"github.com/sant0-9/companion/internal/modes/tutor"
	"github.com/sant0-9/companion/internal/sticker"
)

type Server struct {
	router   *chi.Mux
	addr     string
	registry *mode.Registry
	stickers *sticker.Picker
}

func NewServer(addr string, registry *mode.Registry, stickers *sticker.Picker) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(requestLogger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:   router,
		addr:     addr,
		registry: registry,
		stickers: stickers,
	}

	router.Get("/health", s.health)
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/modes", s.listModes)
		r.Route("/modes/{id}", func(r chi.Router) {
			r.Post("/messages", s.sendMessage)
			r.Get("/history", s.history)
			r.Delete("/history", s.clearHistory)
			r.Get("/greeting", s.greeting)
			r.Get("/tools", s.tools)
			r.Post("/tools/{tool}", s.runTool)
		})

		r.Get("/stickers", s.stickerPacks)
		r.Get("/stickers/recent", s.recentStickers)
		r.Post("/stickers", s.uploadSticker)
		r.Post("/stickers/{id}/send", s.sendSticker)
		r.Delete("/stickers/{id}", s.removeSticker)

		r.Get("/coach", s.coachProfile)
		r.Put("/coach/style", s.setCoachStyle)
		r.Post("/coach/goals", s.addGoal)
		r.Patch("/coach/goals/{id}", s.updateGoal)
		r.Post("/coach/actions", s.addAction)
		r.Post("/coach/actions/{id}/complete", s.completeAction)

		r.Get("/tutor", s.tutorProfile)
		r.Patch("/tutor", s.updateTutorProfile)
		r.Post("/tutor/vocabulary", s.addVocabulary)
		r.Post("/tutor/grammar", s.recordLesson(func(t *tutor.Tutor, r *http.Request, topic string) error {
			return t.RecordGrammarLesson(r.Context(), topic)
		}))
		r.Post("/tutor/conversations", s.recordLesson(func(t *tutor.Tutor, r *http.Request, topic string) error {
			return t.RecordConversation(r.Context(), topic)
		}))
	})

	return s
}

func (s *Server) Handler() http.Handler { return s.router }

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.With("api").Info("API server starting", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logger.With("api").Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

var errBadRequest = errors.New("bad request")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.With("api").Error("encode response", "err", err)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, mode.ErrUnknownMode),
		errors.Is(err, mode.ErrUnknownTool),
		errors.Is(err, coach.ErrNotFound),
		errors.Is(err, sticker.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errBadRequest),
		errors.Is(err, sticker.ErrEmptyName),
		errors.Is(err, sticker.ErrTooLarge),
		errors.Is(err, sticker.ErrUnsupportedType),
		errors.Is(err, coach.ErrEmptyTitle),
		errors.Is(err, coach.ErrInvalidProgress),
		errors.Is(err, coach.ErrUnknownStyle),
		errors.Is(err, tutor.ErrUnsupportedLanguage),
		errors.Is(err, tutor.ErrUnknownLevel),
		errors.Is(err, tutor.ErrRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.With("api").Error("request failed", "err", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

// decodeOptional is decode for bodies that may be left out.
func decodeOptional(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return fmt.Errorf("%w: %v", errBadRequest, err)
}
