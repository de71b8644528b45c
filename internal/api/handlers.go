package api

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sant0-9/companion/internal/mode"
	"github.com/sant0-9/companion/internal/modes/coach"
	"github.com/sant0-9/companion/internal/modes/tutor"
	"github.com/sant0-9/companion/internal/sticker"
)

// maxUploadBody bounds a multipart sticker upload, form overhead included.
const maxUploadBody = 2 * sticker.MaxSize

type messageRequest struct {
	Text    string       `json:"text"`
	Context mode.Context `json:"context"`
}

func (s *Server) listModes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.registry.List())
}

func (s *Server) sendMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	resp, err := s.registry.Process(r.Context(), chi.URLParam(r, "id"), req.Text, req.Context)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) historyKeeper(r *http.Request) (mode.HistoryKeeper, error) {
	id := chi.URLParam(r, "id")
	m, err := s.registry.Ready(r.Context(), id)
	if err != nil {
		return nil, err
	}
	hk, ok := m.(mode.HistoryKeeper)
	if !ok {
		return nil, fmt.Errorf("%w: %s keeps no history", mode.ErrUnknownMode, id)
	}
	return hk, nil
}

func (s *Server) history(w http.ResponseWriter, r *http.Request) {
	hk, err := s.historyKeeper(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hk.History())
}

func (s *Server) clearHistory(w http.ResponseWriter, r *http.Request) {
	hk, err := s.historyKeeper(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := hk.ClearHistory(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) greeting(w http.ResponseWriter, r *http.Request) {
	m, err := s.registry.Ready(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	var text string
	if g, ok := m.(mode.Greeter); ok {
		text = g.Greeting()
	}
	writeJSON(w, http.StatusOK, map[string]string{"greeting": text})
}

func (s *Server) tools(w http.ResponseWriter, r *http.Request) {
	m, ok := s.registry.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, fmt.Errorf("%w: %s", mode.ErrUnknownMode, chi.URLParam(r, "id")))
		return
	}
	tools := []mode.Tool{}
	if t, ok := m.(mode.Tooler); ok {
		tools = t.Tools()
	}
	writeJSON(w, http.StatusOK, tools)
}

type toolRequest struct {
	Topic string `json:"topic"`
}

func (s *Server) runTool(w http.ResponseWriter, r *http.Request) {
	var req toolRequest
	if err := decodeOptional(r, &req); err != nil {
		writeError(w, err)
		return
	}
	resp, err := s.registry.RunTool(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "tool"), req.Topic)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) stickerPacks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.stickers.Packs())
}

func (s *Server) recentStickers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.stickers.Recent())
}

func (s *Server) uploadSticker(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
	if err := r.ParseMultipartForm(maxUploadBody); err != nil {
		writeError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	file.Close()

	src := sticker.Source{
		Filename: header.Filename,
		Size:     header.Size,
		Open:     func() (io.ReadCloser, error) { return header.Open() },
	}
	st, err := s.stickers.Upload(r.Context(), strings.TrimSpace(r.FormValue("name")), src)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, st)
}

func (s *Server) sendSticker(w http.ResponseWriter, r *http.Request) {
	st, err := s.stickers.Send(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) removeSticker(w http.ResponseWriter, r *http.Request) {
	if err := s.stickers.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// readyAs returns mode id initialized and asserted to its concrete type.
func readyAs[T any](s *Server, r *http.Request, id string) (T, error) {
	var zero T
	m, err := s.registry.Ready(r.Context(), id)
	if err != nil {
		return zero, err
	}
	t, ok := m.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s", mode.ErrUnknownMode, id)
	}
	return t, nil
}

func (s *Server) coachMode(r *http.Request) (*coach.Coach, error) {
	return readyAs[*coach.Coach](s, r, coach.ID)
}

type coachProfile struct {
	Stage       string             `json:"stage"`
	Style       string             `json:"style"`
	FocusAreas  []string           `json:"focusAreas"`
	Goals       []coach.Goal       `json:"goals"`
	ActionItems []coach.ActionItem `json:"actionItems"`
}

func (s *Server) coachProfile(w http.ResponseWriter, r *http.Request) {
	c, err := s.coachMode(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, coachProfile{
		Stage:       c.Stage().String(),
		Style:       c.Style(),
		FocusAreas:  nonNil(c.FocusAreas()),
		Goals:       nonNil(c.Goals()),
		ActionItems: nonNil(c.ActionItems()),
	})
}

type styleRequest struct {
	Style string `json:"style"`
}

func (s *Server) setCoachStyle(w http.ResponseWriter, r *http.Request) {
	c, err := s.coachMode(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req styleRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := c.SetCoachingStyle(r.Context(), req.Style); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, styleRequest{Style: c.Style()})
}

func (s *Server) addGoal(w http.ResponseWriter, r *http.Request) {
	c, err := s.coachMode(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var in coach.GoalInput
	if err := decode(r, &in); err != nil {
		writeError(w, err)
		return
	}
	g, err := c.AddGoal(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, g)
}

type progressRequest struct {
	Progress *int `json:"progress"`
}

func (s *Server) updateGoal(w http.ResponseWriter, r *http.Request) {
	c, err := s.coachMode(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req progressRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Progress == nil {
		writeError(w, fmt.Errorf("%w: progress is required", errBadRequest))
		return
	}
	id := chi.URLParam(r, "id")
	if err := c.UpdateGoalProgress(r.Context(), id, *req.Progress); err != nil {
		writeError(w, err)
		return
	}
	for _, g := range c.Goals() {
		if g.ID == id {
			writeJSON(w, http.StatusOK, g)
			return
		}
	}
	writeError(w, fmt.Errorf("goal %s: %w", id, coach.ErrNotFound))
}

func (s *Server) addAction(w http.ResponseWriter, r *http.Request) {
	c, err := s.coachMode(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var in coach.ActionInput
	if err := decode(r, &in); err != nil {
		writeError(w, err)
		return
	}
	item, err := c.AddActionItem(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) completeAction(w http.ResponseWriter, r *http.Request) {
	c, err := s.coachMode(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id := chi.URLParam(r, "id")
	if err := c.CompleteActionItem(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	for _, it := range c.ActionItems() {
		if it.ID == id {
			writeJSON(w, http.StatusOK, it)
			return
		}
	}
	writeError(w, fmt.Errorf("action item %s: %w", id, coach.ErrNotFound))
}

func (s *Server) tutorMode(r *http.Request) (*tutor.Tutor, error) {
	return readyAs[*tutor.Tutor](s, r, tutor.ID)
}

type tutorProfile struct {
	tutor.Profile
	Vocabulary []tutor.VocabularyItem `json:"vocabulary"`
	Languages  []string               `json:"supportedLanguages"`
}

func (s *Server) tutorProfile(w http.ResponseWriter, r *http.Request) {
	t, err := s.tutorMode(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tutorProfile{
		Profile:    t.Profile(),
		Vocabulary: nonNil(t.Vocabulary()),
		Languages:  t.Languages(),
	})
}

type profileRequest struct {
	Target string `json:"targetLanguage"`
	Level  string `json:"proficiencyLevel"`
}

func (s *Server) updateTutorProfile(w http.ResponseWriter, r *http.Request) {
	t, err := s.tutorMode(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req profileRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Target != "" {
		if err := t.SetTargetLanguage(r.Context(), req.Target); err != nil {
			writeError(w, err)
			return
		}
	}
	if req.Level != "" {
		if err := t.SetLevel(r.Context(), req.Level); err != nil {
			writeError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, t.Profile())
}

type vocabularyRequest struct {
	Word        string `json:"word"`
	Translation string `json:"translation"`
	Topic       string `json:"topic"`
}

func (s *Server) addVocabulary(w http.ResponseWriter, r *http.Request) {
	t, err := s.tutorMode(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req vocabularyRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	item, err := t.AddVocabularyItem(r.Context(), req.Word, req.Translation, req.Topic)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

type recordRequest struct {
	Topic string `json:"topic"`
}

// recordLesson handles both grammar lessons and practice conversations;
// the route decides which.
func (s *Server) recordLesson(record func(*tutor.Tutor, *http.Request, string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := s.tutorMode(r)
		if err != nil {
			writeError(w, err)
			return
		}
		var req recordRequest
		if err := decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		if err := record(t, r, req.Topic); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
