// Package tutor is the language learning mode: vocabulary, grammar,
// conversation practice, translation and feedback for 26 languages.
package tutor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sant0-9/companion/internal/kv"
	"github.com/sant0-9/companion/internal/logger"
	"github.com/sant0-9/companion/internal/mode"
	"github.com/sant0-9/companion/internal/pipeline"
	"github.com/sant0-9/companion/internal/session"
	"github.com/sant0-9/companion/internal/slot"
)

const ID = "language-tutor"

var (
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrUnknownLevel        = errors.New("unknown proficiency level")
	ErrRequired            = errors.New("value is required")
)

// Preference keys.
const (
	prefTarget       = "targetLanguage"
	prefNative       = "nativeLanguage"
	prefLevel        = "proficiencyLevel"
	prefGoal         = "learningGoal"
	prefVocabulary   = "vocabulary"
	prefGrammar      = "grammarLessons"
	prefConversation = "practiceConversations"
)

// Profile is the learner's current setup.
type Profile struct {
	Target string `json:"targetLanguage"`
	Native string `json:"nativeLanguage"`
	Level  string `json:"proficiencyLevel"`
	Goal   string `json:"learningGoal"`
}

type VocabularyItem struct {
	Word        string    `json:"word"`
	Translation string    `json:"translation"`
	Topic       string    `json:"topic,omitempty"`
	Added       time.Time `json:"added"`
}

type GrammarLesson struct {
	Concept string    `json:"concept"`
	Studied time.Time `json:"studied"`
	Mastery string    `json:"mastery"`
}

type PracticeConversation struct {
	Topic string    `json:"topic"`
	Date  time.Time `json:"date"`
}

type Tutor struct {
	*mode.Base
	catalog  *Catalog
	defaults Profile
}

func New(store kv.Store, historyLimit int) *Tutor {
	t := &Tutor{
		catalog: defaultCatalog(),
		defaults: Profile{
			Target: "Spanish",
			Native: "English",
			Level:  "beginner",
			Goal:   "conversation",
		},
	}
	common, byCategory := t.extractors()
	t.Base = mode.NewBase(mode.Info{
		ID:          ID,
		Name:        "Language Tutor",
		Description: "Vocabulary, grammar and conversation practice",
		Category:    "education",
		Version:     "1.0.0",
	}, store, historyLimit, pipeline.Config{
		Rules:      rules(),
		Extractors: byCategory,
		Common:     common,
		Engine:     t.engine(),
		EmptyFunc: func(st *session.State) string {
			return fmt.Sprintf("I'm your language learning assistant for %s. I can help with vocabulary, grammar, conversation practice, translation, and more. What would you like to learn today?", t.profile(st).Target)
		},
		Apply:   t.apply,
		Suggest: t.suggest,
	})
	return t
}

// Initialize loads saved state. Options targetLanguage, nativeLanguage,
// proficiencyLevel and learningGoal set defaults that saved preferences
// override.
func (t *Tutor) Initialize(ctx context.Context, opts mode.Options) error {
	if err := t.Base.Initialize(ctx, opts); err != nil {
		return err
	}
	if lang, ok := opts[prefTarget]; ok {
		if l, found := t.catalog.Language(lang); found {
			t.defaults.Target = l.Name
		} else {
			logger.With("tutor").Warn("ignoring unsupported target language", "language", lang)
		}
	}
	if v := opts[prefNative]; v != "" {
		t.defaults.Native = v
	}
	if v := strings.ToLower(opts[prefLevel]); v != "" {
		if _, ok := levelTable[v]; ok {
			t.defaults.Level = v
		}
	}
	if v := opts[prefGoal]; v != "" {
		t.defaults.Goal = v
	}
	return nil
}

func (t *Tutor) ProcessInput(ctx context.Context, text string, _ mode.Context) (*mode.Response, error) {
	resp, _, err := t.Respond(ctx, text)
	return resp, err
}

func (t *Tutor) profile(st *session.State) Profile {
	return Profile{
		Target: st.String(prefTarget, t.defaults.Target),
		Native: st.String(prefNative, t.defaults.Native),
		Level:  st.String(prefLevel, t.defaults.Level),
		Goal:   st.String(prefGoal, t.defaults.Goal),
	}
}

func (t *Tutor) apply(_ context.Context, _ string, s slot.Values, st *session.State) {
	if lang, ok := s.Get("language"); ok {
		st.Merge(map[string]any{prefTarget: lang})
	}
	if level, ok := s.Get("level"); ok {
		st.Merge(map[string]any{prefLevel: level})
	}
}

// Greeting rotates through the greeting phrases with the response count.
func (t *Tutor) Greeting() string {
	greetings := t.catalog.Greetings
	if len(greetings) == 0 {
		return ""
	}
	var n int
	t.Pipeline().View(func(st *session.State) {
		n = st.Counters["responses"]
	})
	return greetings[n%len(greetings)]
}

func (t *Tutor) Profile() Profile {
	var p Profile
	t.Pipeline().View(func(st *session.State) {
		p = t.profile(st)
	})
	return p
}

func (t *Tutor) Languages() []string {
	return t.catalog.LanguageNames()
}

func (t *Tutor) SetTargetLanguage(ctx context.Context, lang string) error {
	l, ok := t.catalog.Language(lang)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedLanguage, lang)
	}
	t.Pipeline().SavePreferences(ctx, map[string]any{prefTarget: l.Name})
	return nil
}

func (t *Tutor) SetLevel(ctx context.Context, level string) error {
	level = strings.ToLower(strings.TrimSpace(level))
	if _, ok := levelTable[level]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownLevel, level)
	}
	t.Pipeline().SavePreferences(ctx, map[string]any{prefLevel: level})
	return nil
}

// AddVocabularyItem records a word the learner is studying.
func (t *Tutor) AddVocabularyItem(ctx context.Context, word, translation, topic string) (VocabularyItem, error) {
	word, translation = strings.TrimSpace(word), strings.TrimSpace(translation)
	if word == "" || translation == "" {
		return VocabularyItem{}, fmt.Errorf("%w: word and translation", ErrRequired)
	}
	item := VocabularyItem{Word: word, Translation: translation, Topic: topic, Added: time.Now()}

	err := t.Pipeline().Update(ctx, func(st *session.State) error {
		var items []VocabularyItem
		if _, err := st.Preference(prefVocabulary, &items); err != nil {
			return err
		}
		st.Merge(map[string]any{prefVocabulary: append(items, item)})
		st.Incr("vocabulary_items")
		return nil
	})
	return item, err
}

func (t *Tutor) Vocabulary() []VocabularyItem {
	var items []VocabularyItem
	t.Pipeline().View(func(st *session.State) {
		if _, err := st.Preference(prefVocabulary, &items); err != nil {
			logger.With("tutor").Warn("unreadable vocabulary list", "err", err)
		}
	})
	return items
}

func (t *Tutor) RecordGrammarLesson(ctx context.Context, concept string) error {
	concept = strings.TrimSpace(concept)
	if concept == "" {
		return fmt.Errorf("%w: grammar concept", ErrRequired)
	}
	return t.Pipeline().Update(ctx, func(st *session.State) error {
		var lessons []GrammarLesson
		if _, err := st.Preference(prefGrammar, &lessons); err != nil {
			return err
		}
		lessons = append(lessons, GrammarLesson{Concept: concept, Studied: time.Now(), Mastery: "studying"})
		st.Merge(map[string]any{prefGrammar: lessons})
		return nil
	})
}

func (t *Tutor) RecordConversation(ctx context.Context, topic string) error {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return fmt.Errorf("%w: conversation topic", ErrRequired)
	}
	return t.Pipeline().Update(ctx, func(st *session.State) error {
		var convs []PracticeConversation
		if _, err := st.Preference(prefConversation, &convs); err != nil {
			return err
		}
		convs = append(convs, PracticeConversation{Topic: topic, Date: time.Now()})
		st.Merge(map[string]any{prefConversation: convs})
		return nil
	})
}
