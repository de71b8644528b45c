package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment keys understood by ApplyEnv.
const (
	EnvDefaultMode  = "COMPANION_DEFAULT_MODE"
	EnvLogLevel     = "COMPANION_LOG_LEVEL"
	EnvLogFile      = "COMPANION_LOG_FILE"
	EnvHistoryLimit = "COMPANION_HISTORY_LIMIT"
	EnvStore        = "COMPANION_STORE"
	EnvStorePath    = "COMPANION_STORE_PATH"
	EnvServerAddr   = "COMPANION_SERVER_ADDR"
	EnvStickerDir   = "COMPANION_STICKER_DIR"
)

// ApplyEnvFile overlays values from a dotenv file. A missing file is ignored.
func (c *Config) ApplyEnvFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	defer f.Close()

	env, err := godotenv.Parse(f)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return c.ApplyEnv(env)
}

// ApplyEnv overlays COMPANION_* values onto c. Unknown keys are ignored.
func (c *Config) ApplyEnv(env map[string]string) error {
	set := func(key string, dst *string) {
		if v, ok := env[key]; ok && v != "" {
			*dst = v
		}
	}

	set(EnvDefaultMode, &c.DefaultMode)
	set(EnvLogLevel, &c.LogLevel)
	set(EnvLogFile, &c.LogFile)
	set(EnvStore, &c.Store.Backend)
	set(EnvStorePath, &c.Store.Path)
	set(EnvServerAddr, &c.Server.Addr)
	set(EnvStickerDir, &c.Stickers.WatchDir)

	if v, ok := env[EnvHistoryLimit]; ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s: invalid value %q", EnvHistoryLimit, v)
		}
		c.HistoryLimit = n
	}

	if GetBackend(c.Store.Backend) == nil {
		return fmt.Errorf("unknown store backend: %s", c.Store.Backend)
	}
	return nil
}
