// Package modes wires the built-in assistant modes into a registry.
package modes

import (
	"fmt"

	"github.com/sant0-9/companion/internal/config"
	"github.com/sant0-9/companion/internal/kv"
	"github.com/sant0-9/companion/internal/mode"
	"github.com/sant0-9/companion/internal/modes/coach"
	"github.com/sant0-9/companion/internal/modes/research"
	"github.com/sant0-9/companion/internal/modes/tutor"
	"github.com/sant0-9/companion/internal/modes/weather"
)

// IDs lists the built-in modes in menu order.
var IDs = []string{tutor.ID, coach.ID, weather.ID, research.ID}

// Register adds every built-in mode to reg with its configured options.
// Modes initialize on first use.
func Register(reg *mode.Registry, store kv.Store, cfg *config.Config) error {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	limit := cfg.HistoryLimit
	all := []mode.Mode{
		tutor.New(store, limit),
		coach.New(store, limit),
		weather.New(store, limit),
		research.New(store, limit),
	}
	for _, m := range all {
		opts := mode.Options(cfg.ModeOptions(m.Info().ID))
		if err := reg.Register(m, opts); err != nil {
			return fmt.Errorf("register %s: %w", m.Info().ID, err)
		}
	}
	return nil
}

// DefaultMode returns cfg.DefaultMode when it names a built-in mode and
// the tutor otherwise.
func DefaultMode(cfg *config.Config) string {
	if cfg != nil {
		for _, id := range IDs {
			if id == cfg.DefaultMode {
				return id
			}
		}
	}
	return tutor.ID
}
