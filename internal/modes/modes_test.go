package modes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/companion/internal/config"
	"github.com/sant0-9/companion/internal/kv"
	"github.com/sant0-9/companion/internal/mode"
	"github.com/sant0-9/companion/internal/modes/research"
	"github.com/sant0-9/companion/internal/modes/tutor"
	"github.com/sant0-9/companion/internal/modes/weather"
)

func TestRegister(t *testing.T) {
	reg := mode.NewRegistry()
	require.NoError(t, Register(reg, kv.NewMemory(), nil))
	require.Equal(t, len(IDs), reg.Count())

	for i, info := range reg.List() {
		assert.Equal(t, IDs[i], info.ID)
	}

	assert.Error(t, Register(reg, kv.NewMemory(), nil), "second registration collides")
}

func TestRegisterPassesModeOptions(t *testing.T) {
	ctx := context.Background()
	cfg := config.DefaultConfig()
	cfg.Modes = map[string]map[string]string{
		weather.ID: {"units": "imperial"},
	}
	reg := mode.NewRegistry()
	require.NoError(t, Register(reg, kv.NewMemory(), cfg))

	m, err := reg.Ready(ctx, weather.ID)
	require.NoError(t, err)
	assert.Equal(t, weather.UnitsImperial, m.(*weather.Weather).Units())
}

func TestDefaultMode(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
		want string
	}{
		{"nil config", nil, tutor.ID},
		{"known", &config.Config{DefaultMode: research.ID}, research.ID},
		{"unknown", &config.Config{DefaultMode: "poet"}, tutor.ID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultMode(tt.cfg))
		})
	}
}
