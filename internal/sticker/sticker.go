// Package sticker keeps the sticker packs, the recently sent list and
// the user's uploaded stickers.
package sticker

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/sant0-9/companion/internal/kv"
	"github.com/sant0-9/companion/internal/logger"
)

//go:embed packs.yaml
var packsYAML []byte

const (
	// MaxSize is the largest sticker file accepted, in bytes.
	MaxSize = 1 << 20

	DefaultMaxRecent = 12

	CustomPackID = "custom"

	keyCustom = "stickers-custom"
	keyRecent = "stickers-recent"
)

var (
	ErrEmptyName       = errors.New("sticker name is required")
	ErrTooLarge        = errors.New("sticker file must be 1 MiB or smaller")
	ErrUnsupportedType = errors.New("sticker must be a PNG or GIF image")
	ErrNotFound        = errors.New("sticker not found")
)

type Sticker struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

type Pack struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	Stickers    []Sticker `json:"stickers" yaml:"stickers"`
}

type Options struct {
	// MaxRecent caps the recent list. Zero means DefaultMaxRecent.
	MaxRecent int
}

// Picker is safe for concurrent use.
type Picker struct {
	mu        sync.Mutex
	store     kv.Store
	builtin   []Pack
	custom    []Sticker
	recent    []Sticker
	maxRecent int
}

func builtinPacks() []Pack {
	var doc struct {
		Packs []Pack `yaml:"packs"`
	}
	if err := yaml.Unmarshal(packsYAML, &doc); err != nil {
		panic(fmt.Sprintf("parse sticker packs: %v", err))
	}
	return doc.Packs
}

// NewPicker loads saved custom and recent stickers. Missing or corrupt
// values start empty.
func NewPicker(ctx context.Context, store kv.Store, opts Options) *Picker {
	if opts.MaxRecent <= 0 {
		opts.MaxRecent = DefaultMaxRecent
	}
	p := &Picker{
		store:     store,
		builtin:   builtinPacks(),
		custom:    []Sticker{},
		recent:    []Sticker{},
		maxRecent: opts.MaxRecent,
	}
	p.read(ctx, keyCustom, &p.custom)
	p.read(ctx, keyRecent, &p.recent)
	if len(p.recent) > p.maxRecent {
		p.recent = p.recent[:p.maxRecent]
	}
	return p
}

func (p *Picker) read(ctx context.Context, key string, dst *[]Sticker) {
	data, err := p.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			logger.With("sticker").Warn("load failed, starting empty", "key", key, "err", err)
		}
		return
	}
	var list []Sticker
	if err := json.Unmarshal(data, &list); err != nil {
		logger.With("sticker").Warn("corrupt value, starting empty", "key", key, "err", err)
		return
	}
	if list != nil {
		*dst = list
	}
}

// write must be called with p.mu held.
func (p *Picker) write(ctx context.Context, key string, list []Sticker) {
	data, err := json.Marshal(list)
	if err != nil {
		logger.With("sticker").Error("encode failed", "key", key, "err", err)
		return
	}
	if err := p.store.Set(ctx, key, data); err != nil {
		logger.With("sticker").Error("save failed", "key", key, "err", err)
	}
}

// Packs returns the built-in packs followed by the custom pack.
func (p *Picker) Packs() []Pack {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]Pack, 0, len(p.builtin)+1)
	for _, pk := range p.builtin {
		pk.Stickers = append([]Sticker(nil), pk.Stickers...)
		out = append(out, pk)
	}
	return append(out, Pack{
		ID:          CustomPackID,
		Name:        "Custom Stickers",
		Description: "Your custom stickers",
		Stickers:    append([]Sticker{}, p.custom...),
	})
}

func (p *Picker) Find(id string) (Sticker, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.find(id)
}

func (p *Picker) find(id string) (Sticker, bool) {
	for _, pk := range p.builtin {
		for _, s := range pk.Stickers {
			if s.ID == id {
				return s, true
			}
		}
	}
	for _, s := range p.custom {
		if s.ID == id {
			return s, true
		}
	}
	return Sticker{}, false
}

// Recent returns recently sent stickers, newest first.
func (p *Picker) Recent() []Sticker {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Sticker{}, p.recent...)
}

// Send records id as the most recently used sticker and returns it.
func (p *Picker) Send(ctx context.Context, id string) (Sticker, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.find(id)
	if !ok {
		return Sticker{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	recent := make([]Sticker, 0, len(p.recent)+1)
	recent = append(recent, s)
	for _, r := range p.recent {
		if r.ID != id {
			recent = append(recent, r)
		}
	}
	if len(recent) > p.maxRecent {
		recent = recent[:p.maxRecent]
	}
	p.recent = recent
	p.write(ctx, keyRecent, p.recent)
	return s, nil
}

// Remove deletes a custom sticker and drops it from the recent list.
// Built-in stickers cannot be removed.
func (p *Picker) Remove(ctx context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	i := slices.IndexFunc(p.custom, func(s Sticker) bool { return s.ID == id })
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	p.custom = slices.Delete(p.custom, i, i+1)
	p.write(ctx, keyCustom, p.custom)

	if j := slices.IndexFunc(p.recent, func(s Sticker) bool { return s.ID == id }); j >= 0 {
		p.recent = slices.Delete(p.recent, j, j+1)
		p.write(ctx, keyRecent, p.recent)
	}
	return nil
}

func (p *Picker) addCustom(ctx context.Context, s Sticker) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.custom = append(p.custom, s)
	p.write(ctx, keyCustom, p.custom)
}
