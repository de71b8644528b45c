package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sant0-9/companion/internal/api"
	"github.com/sant0-9/companion/internal/config"
	"github.com/sant0-9/companion/internal/kv"
	"github.com/sant0-9/companion/internal/logger"
	"github.com/sant0-9/companion/internal/mode"
	"github.com/sant0-9/companion/internal/modes"
	"github.com/sant0-9/companion/internal/render"
	"github.com/sant0-9/companion/internal/sticker"
	"github.com/sant0-9/companion/internal/tui"
)

// cli holds what every subcommand shares once flags are parsed.
type cli struct {
	v          *viper.Viper
	configPath string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}

	root := &cobra.Command{
		Use:   "companion",
		Short: "Companion - conversational assistants in your terminal",
		Long: `Companion hosts a set of rule-based assistant modes: a language tutor,
a life coach, a weather forecaster and an academic research assistant.
Run without arguments for the interactive terminal UI.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.load(cmd)
		},
		RunE: c.runTUI,
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "Config file [default: ~/.config/companion/config.yaml]")
	flags.String("log-level", "", "Set log level (debug|info|warn|error) [default: info]")
	flags.String("log-file", "", "Write logs to file instead of stderr")
	flags.String("store", "", "Storage backend (file|sqlite|memory)")
	flags.String("store-path", "", "Storage location for the chosen backend")

	for _, name := range []string{"config", "log-level", "log-file", "store", "store-path"} {
		if err := c.v.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind %s flag: %v", name, err))
		}
	}
	c.v.SetEnvPrefix("COMPANION")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()
	for key, env := range envOnly {
		if err := c.v.BindEnv(key, env); err != nil {
			panic(fmt.Sprintf("bind %s env: %v", env, err))
		}
	}

	root.AddCommand(
		c.serveCmd(),
		c.askCmd(),
		c.modesCmd(),
		versionCmd(),
	)
	return root
}

// envOnly are settings with no flag. Process env outranks the .env file
// for them as well.
var envOnly = map[string]string{
	"default-mode":  config.EnvDefaultMode,
	"history-limit": config.EnvHistoryLimit,
	"server-addr":   config.EnvServerAddr,
	"sticker-dir":   config.EnvStickerDir,
}

// load reads the config file and .env overlay, then applies env vars and
// flags on top.
func (c *cli) load(cmd *cobra.Command) error {
	c.configPath = c.v.GetString("config")
	cfg, err := config.LoadOrDefault(c.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	env := make(map[string]string, len(envOnly))
	for key, name := range envOnly {
		if v := c.v.GetString(key); v != "" {
			env[name] = v
		}
	}
	if err := cfg.ApplyEnv(env); err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	override := func(key string, dst *string) {
		if s := c.v.GetString(key); s != "" {
			*dst = s
		}
	}
	override("log-level", &cfg.LogLevel)
	override("log-file", &cfg.LogFile)
	override("store", &cfg.Store.Backend)
	override("store-path", &cfg.Store.Path)
	c.cfg = cfg

	// The TUI owns the terminal, so its logs go to a file.
	logFile := cfg.LogFile
	if logFile == "" && cmd.Name() == "companion" {
		dir, err := config.ConfigDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
		logFile = filepath.Join(dir, "companion.log")
	}
	if err := logger.Configure(cfg.LogLevel, logFile); err != nil {
		return fmt.Errorf("configure logger: %w", err)
	}
	if c.configPath == "" && !config.Exists() {
		logger.Debug("no config file, using defaults")
	}
	return nil
}

// runtime is the storage, registry and stickers behind every command.
type runtime struct {
	store    kv.Store
	registry *mode.Registry
	stickers *sticker.Picker
}

func (c *cli) open(ctx context.Context) (*runtime, error) {
	store, err := kv.Open(c.cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", c.cfg.Store.Backend, err)
	}
	reg := mode.NewRegistry()
	if err := modes.Register(reg, store, c.cfg); err != nil {
		store.Close()
		return nil, err
	}
	picker := sticker.NewPicker(ctx, store, sticker.Options{MaxRecent: c.cfg.Stickers.MaxRecent})
	logger.Debug("runtime ready", "store", c.cfg.Store.Backend, "modes", reg.Count())
	return &runtime{store: store, registry: reg, stickers: picker}, nil
}

func (r *runtime) close(ctx context.Context) {
	if err := r.registry.Close(ctx); err != nil {
		logger.Warn("closing modes failed", "err", err)
	}
	if err := r.store.Close(); err != nil {
		logger.Warn("closing store failed", "err", err)
	}
}

func (c *cli) runTUI(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	rt, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer rt.close(ctx)

	app, err := tui.NewApp(tui.Options{
		Config:     c.cfg,
		Registry:   rt.registry,
		Stickers:   rt.stickers,
		ConfigPath: c.configPath,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

func (c *cli) serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			rt, err := c.open(ctx)
			if err != nil {
				return err
			}
			defer rt.close(context.Background())

			if dir := c.cfg.Stickers.WatchDir; dir != "" {
				w, err := sticker.Watch(ctx, dir, rt.stickers)
				if err != nil {
					return fmt.Errorf("watch stickers: %w", err)
				}
				defer w.Stop()
				logger.Info("watching for stickers", "dir", w.Dir())
			}

			if addr == "" {
				addr = c.cfg.Server.Addr
			}
			return api.NewServer(addr, rt.registry, rt.stickers).Start(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address [default: server.addr from config]")
	return cmd
}

func (c *cli) askCmd() *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "ask <mode> <text...>",
		Short: "Send one message to a mode and print the reply",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := c.open(ctx)
			if err != nil {
				return err
			}
			defer rt.close(ctx)

			resp, err := rt.registry.Process(ctx, args[0], strings.Join(args[1:], " "), nil)
			if err != nil {
				return err
			}

			out := resp.Text
			if !raw {
				md, err := render.NewMarkdown(80, "")
				if err != nil {
					return err
				}
				out = md.Render(resp.Text)
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(out, "\n"))
			if len(resp.Suggestions) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "\nTry: %s\n", strings.Join(resp.Suggestions, " | "))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Print markdown instead of rendering it")
	return cmd
}

func (c *cli) modesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modes",
		Short: "List available modes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg := mode.NewRegistry()
			if err := modes.Register(reg, kv.NewMemory(), c.cfg); err != nil {
				return err
			}
			def := modes.DefaultMode(c.cfg)
			for _, info := range reg.List() {
				marker := " "
				if info.ID == def {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-28s %s\n", marker, info.ID, info.Description)
			}
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "companion %s\n", version)
		},
	}
}
