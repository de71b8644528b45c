package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/companion/internal/kv"
	"github.com/sant0-9/companion/internal/mode"
	"github.com/sant0-9/companion/internal/modes"
	"github.com/sant0-9/companion/internal/modes/coach"
	"github.com/sant0-9/companion/internal/modes/research"
	"github.com/sant0-9/companion/internal/modes/tutor"
	"github.com/sant0-9/companion/internal/modes/weather"
	"github.com/sant0-9/companion/internal/session"
	"github.com/sant0-9/companion/internal/sticker"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store := kv.NewMemory()
	reg := mode.NewRegistry()
	require.NoError(t, modes.Register(reg, store, nil))
	return NewServer(":0", reg, sticker.NewPicker(context.Background(), store, sticker.Options{}))
}

func do(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
	return v
}

func TestHealthEndpoint(t *testing.T) {
	w := do(t, newTestServer(t), "GET", "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeBody[map[string]string](t, w)["status"])
}

func TestNotFoundEndpoint(t *testing.T) {
	w := do(t, newTestServer(t), "GET", "/nonexistent", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListModes(t *testing.T) {
	w := do(t, newTestServer(t), "GET", "/api/v1/modes", nil)
	require.Equal(t, http.StatusOK, w.Code)

	infos := decodeBody[[]mode.Info](t, w)
	require.Len(t, infos, 4)
	assert.Equal(t, tutor.ID, infos[0].ID)
	assert.Equal(t, research.ID, infos[3].ID)
}

func TestMessageRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	base := "/api/v1/modes/" + tutor.ID

	w := do(t, srv, "POST", base+"/messages", map[string]any{"text": "Teach me some basic Spanish phrases"})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[mode.Response](t, w)
	assert.Equal(t, tutor.Vocabulary, resp.Category)
	assert.Contains(t, resp.Text, "Spanish")
	assert.NotEmpty(t, resp.Suggestions)

	w = do(t, srv, "GET", base+"/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	history := decodeBody[[]session.Turn](t, w)
	require.Len(t, history, 2)
	assert.Equal(t, session.RoleUser, history[0].Role)
	assert.Equal(t, session.RoleAssistant, history[1].Role)

	w = do(t, srv, "DELETE", base+"/history", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, srv, "GET", base+"/history", nil)
	assert.Empty(t, decodeBody[[]session.Turn](t, w))
}

func TestMessageWithContext(t *testing.T) {
	srv := newTestServer(t)
	w := do(t, srv, "POST", "/api/v1/modes/"+weather.ID+"/messages", map[string]any{
		"text":    "What's the forecast for Cairo?",
		"context": map[string]string{"temperature": "38"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decodeBody[mode.Response](t, w).Text, "Heat Advisory")
}

func TestErrors(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"unknown mode", "POST", "/api/v1/modes/poet/messages", map[string]string{"text": "hi"}, http.StatusNotFound},
		{"unknown mode history", "GET", "/api/v1/modes/poet/history", nil, http.StatusNotFound},
		{"bad json", "POST", "/api/v1/modes/" + tutor.ID + "/messages", "{not json", http.StatusBadRequest},
		{"unknown tool", "POST", "/api/v1/modes/" + research.ID + "/tools/summarizer", nil, http.StatusNotFound},
		{"mode without tools", "POST", "/api/v1/modes/" + tutor.ID + "/tools/paraphraser", nil, http.StatusNotFound},
		{"unknown sticker", "POST", "/api/v1/stickers/nope/send", nil, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, srv, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, w.Code)
			assert.NotEmpty(t, decodeBody[map[string]string](t, w)["error"])
		})
	}
}

func TestGreeting(t *testing.T) {
	w := do(t, newTestServer(t), "GET", "/api/v1/modes/"+research.ID+"/greeting", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decodeBody[map[string]string](t, w)["greeting"], "research assistant")
}

func TestTools(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, "GET", "/api/v1/modes/"+research.ID+"/tools", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody[[]mode.Tool](t, w), 4)

	w = do(t, srv, "GET", "/api/v1/modes/"+weather.ID+"/tools", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody[[]mode.Tool](t, w))

	w = do(t, srv, "POST", "/api/v1/modes/"+research.ID+"/tools/thesis-statement", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, research.Thesis, decodeBody[mode.Response](t, w).Category)

	w = do(t, srv, "POST", "/api/v1/modes/"+research.ID+"/tools/paraphraser", map[string]string{"topic": "soil erosion"})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, srv, "GET", "/api/v1/modes/"+research.ID+"/history", nil)
	history := decodeBody[[]session.Turn](t, w)
	require.Len(t, history, 4)
	assert.True(t, strings.HasSuffix(history[2].Content, "My topic: soil erosion"))

	w = do(t, srv, "POST", "/api/v1/modes/"+research.ID+"/tools/paraphraser", "{oops")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func multipartUpload(t *testing.T, name, filename string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", name))
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/api/v1/stickers", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestStickers(t *testing.T) {
	srv := newTestServer(t)
	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 16)...)

	w := do(t, srv, "GET", "/api/v1/stickers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody[[]sticker.Pack](t, w), 5)

	tests := []struct {
		name     string
		sticker  string
		filename string
		data     []byte
		want     int
	}{
		{"png", "Wave", "wave.png", png, http.StatusCreated},
		{"jpeg", "Photo", "photo.jpg", png, http.StatusBadRequest},
		{"no name", "", "wave.png", png, http.StatusBadRequest},
		{"too large", "Huge", "huge.png", append(append([]byte{}, png...), make([]byte, sticker.MaxSize)...), http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			srv.router.ServeHTTP(w, multipartUpload(t, tt.sticker, tt.filename, tt.data))
			assert.Equal(t, tt.want, w.Code)
		})
	}

	w = do(t, srv, "GET", "/api/v1/stickers", nil)
	packs := decodeBody[[]sticker.Pack](t, w)
	custom := packs[len(packs)-1].Stickers
	require.Len(t, custom, 1, "only the valid upload is kept")
	assert.True(t, strings.HasPrefix(custom[0].URL, "data:image/png;base64,"))

	w = do(t, srv, "POST", "/api/v1/stickers/"+custom[0].ID+"/send", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, srv, "POST", "/api/v1/stickers/emoji-fire/send", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, srv, "GET", "/api/v1/stickers/recent", nil)
	recent := decodeBody[[]sticker.Sticker](t, w)
	require.Len(t, recent, 2)
	assert.Equal(t, "emoji-fire", recent[0].ID)
	assert.Equal(t, custom[0].ID, recent[1].ID)

	w = do(t, srv, "DELETE", "/api/v1/stickers/"+custom[0].ID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, srv, "DELETE", "/api/v1/stickers/"+custom[0].ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(t, srv, "DELETE", "/api/v1/stickers/emoji-fire", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, srv, "GET", "/api/v1/stickers/recent", nil)
	recent = decodeBody[[]sticker.Sticker](t, w)
	require.Len(t, recent, 1)
	assert.Equal(t, "emoji-fire", recent[0].ID)
}

func TestCoachGoalsAndActions(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, "POST", "/api/v1/coach/goals", coach.GoalInput{Title: " "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, srv, "POST", "/api/v1/coach/goals", coach.GoalInput{Title: "Run a 10k", Area: "health"})
	require.Equal(t, http.StatusCreated, w.Code)
	goal := decodeBody[coach.Goal](t, w)
	assert.Equal(t, coach.GoalActive, goal.Status)

	w = do(t, srv, "PATCH", "/api/v1/coach/goals/"+goal.ID, map[string]int{"progress": 150})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, srv, "PATCH", "/api/v1/coach/goals/"+goal.ID, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, srv, "PATCH", "/api/v1/coach/goals/missing", map[string]int{"progress": 10})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, srv, "PATCH", "/api/v1/coach/goals/"+goal.ID, map[string]int{"progress": 40})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 40, decodeBody[coach.Goal](t, w).Progress)

	w = do(t, srv, "POST", "/api/v1/coach/actions", coach.ActionInput{Title: "Buy running shoes", GoalID: goal.ID})
	require.Equal(t, http.StatusCreated, w.Code)
	item := decodeBody[coach.ActionItem](t, w)
	assert.False(t, item.Completed)

	w = do(t, srv, "POST", "/api/v1/coach/actions/"+item.ID+"/complete", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeBody[coach.ActionItem](t, w).Completed)

	w = do(t, srv, "POST", "/api/v1/coach/actions/missing/complete", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCoachProfileAndStyle(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, "GET", "/api/v1/coach", nil)
	require.Equal(t, http.StatusOK, w.Code)
	profile := decodeBody[map[string]any](t, w)
	assert.Equal(t, "balanced", profile["style"])
	assert.Equal(t, coach.StageExploration.String(), profile["stage"])
	assert.Empty(t, profile["goals"])

	w = do(t, srv, "PUT", "/api/v1/coach/style", map[string]string{"style": "Directive"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "directive", decodeBody[map[string]string](t, w)["style"])

	w = do(t, srv, "PUT", "/api/v1/coach/style", map[string]string{"style": "gentle"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	do(t, srv, "POST", "/api/v1/coach/goals", coach.GoalInput{Title: "Run a 10k"})
	w = do(t, srv, "GET", "/api/v1/coach", nil)
	profile = decodeBody[map[string]any](t, w)
	assert.Len(t, profile["goals"], 1)
	assert.Equal(t, coach.StageActionPlanning.String(), profile["stage"])
}

func TestTutorProfile(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, "GET", "/api/v1/tutor", nil)
	require.Equal(t, http.StatusOK, w.Code)
	profile := decodeBody[map[string]any](t, w)
	assert.Equal(t, "Spanish", profile["targetLanguage"])
	assert.Equal(t, "beginner", profile["proficiencyLevel"])
	assert.Empty(t, profile["vocabulary"])
	assert.Len(t, profile["supportedLanguages"], 26)
	assert.Contains(t, profile["supportedLanguages"], "Japanese")

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"set language and level", "PATCH", "/api/v1/tutor", map[string]string{"targetLanguage": "french", "proficiencyLevel": "Advanced"}, http.StatusOK},
		{"unsupported language", "PATCH", "/api/v1/tutor", map[string]string{"targetLanguage": "Klingon"}, http.StatusBadRequest},
		{"unknown level", "PATCH", "/api/v1/tutor", map[string]string{"proficiencyLevel": "wizard"}, http.StatusBadRequest},
		{"add vocabulary", "POST", "/api/v1/tutor/vocabulary", map[string]string{"word": "chat", "translation": "cat"}, http.StatusCreated},
		{"vocabulary needs a word", "POST", "/api/v1/tutor/vocabulary", map[string]string{"translation": "cat"}, http.StatusBadRequest},
		{"record grammar", "POST", "/api/v1/tutor/grammar", map[string]string{"topic": "passé composé"}, http.StatusNoContent},
		{"grammar needs a topic", "POST", "/api/v1/tutor/grammar", map[string]string{}, http.StatusBadRequest},
		{"record conversation", "POST", "/api/v1/tutor/conversations", map[string]string{"topic": "ordering coffee"}, http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, srv, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, w.Code)
		})
	}

	w = do(t, srv, "GET", "/api/v1/tutor", nil)
	profile = decodeBody[map[string]any](t, w)
	assert.Equal(t, "French", profile["targetLanguage"])
	assert.Equal(t, "advanced", profile["proficiencyLevel"])
	assert.Len(t, profile["vocabulary"], 1)
}
