package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Makepad-fr/shoplist/internal/app"
	"github.com/Makepad-fr/shoplist/internal/config"
	"github.com/Makepad-fr/shoplist/internal/store"
	"github.com/Makepad-fr/shoplist/internal/store/seed"
	"github.com/Makepad-fr/shoplist/internal/ui"
)

// usageError marks bad invocations (exit code 2).
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return usageError{fmt.Errorf(format, args...)}
}

// env is what every subcommand gets once flags and config are resolved.
type env struct {
	configFile string
	v          *viper.Viper
	cfg        *config.Config
	logger     *slog.Logger
	logFile    io.Closer
	out        outputOptions
	now        func() time.Time
}

// Run executes the command tree and returns an exit code (0 ok, 1 error,
// 2 usage).
func Run(args []string) int {
	cmd := New()
	cmd.SetArgs(args)
	return exitCode(cmd.Execute())
}

// exitCode reports err and maps it to an exit code.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var (
		ue usageError
		ie *store.IndexError
	)
	if errors.As(err, &ie) {
		// Report the 1-based index the user typed.
		ui.Fail(fmt.Sprintf("%s: index out of range: have %d, got %d", ie.Op, ie.Len, ie.Index+1))
	} else {
		ui.Fail(err.Error())
	}
	switch {
	case errors.As(err, &ue):
		return 2
	case errors.Is(err, store.ErrIndexOutOfRange):
		ui.Hint("Hint: run `shoplist ls --sort insertion` to see valid indexes")
		return 2
	case errors.Is(err, config.ErrInvalid):
		return 2
	}
	return 1
}

// New builds the root command.
func New() *cobra.Command {
	e := &env{now: time.Now}

	cmd := &cobra.Command{
		Use:   "shoplist",
		Short: "A shopping list for the terminal.",
		Long: `shoplist keeps a shopping list in memory for the length of a run.

Every run starts from the seed list (built in, or --seed FILE). One-shot
commands apply their change, then print the list; "shoplist ui" opens the
interactive view.`,
		Args:          noArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if e.logFile != nil {
				return e.logFile.Close()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(e, cmd)
		},
	}
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := cmd.PersistentFlags()
	pf.StringVar(&e.configFile, "config", "", "Config file (default: ./.shoplist.yaml)")
	pf.String("seed", "", "Seed list file (YAML or JSON); default is the built-in list.")
	pf.String("sort", "", "Sort by: name, created, insertion.")
	pf.String("filter", "", "Show: all, checked, unchecked.")
	pf.String("search", "", "Only show names containing this text (case-insensitive).")
	pf.Int("search-threshold", 0, "Search applies only to terms longer than this.")
	pf.Bool("exclusive", false, "Search replaces the checked filter instead of narrowing it.")
	pf.String("theme", "", "Colour theme: classic, neon, mono.")
	pf.String("color", "", "Colour output: auto, always, never.")
	pf.String("log-level", "", "Log level: debug, info, warn, error.")
	pf.String("log-file", "", "Append logs to this file.")
	addOutputFlags(cmd, &e.out)

	addList(cmd, e)
	addAdd(cmd, e)
	addToggle(cmd, e)
	addRemove(cmd, e)
	addRename(cmd, e)
	addDo(cmd, e)
	addUI(cmd, e)
	return cmd
}

var flagKeys = map[string]string{
	"seed":             config.KeySeed,
	"sort":             config.KeySort,
	"filter":           config.KeyFilter,
	"search-threshold": config.KeySearchThreshold,
	"exclusive":        config.KeySearchExclusive,
	"theme":            config.KeyTheme,
	"color":            config.KeyColor,
	"log-level":        config.KeyLogLevel,
	"log-file":         config.KeyLogFile,
}

func (e *env) setup(cmd *cobra.Command) error {
	e.v = config.New(e.configFile)
	for flag, key := range flagKeys {
		// Only explicitly set flags override file and env values.
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			if err := e.v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind %s: %w", flag, err)
			}
		}
	}

	cfg, err := config.Load(e.v, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		return err
	}
	e.cfg = cfg
	if s, _ := cmd.Flags().GetString("search"); s != "" {
		e.cfg.View.Search = s
	}

	ui.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
	switch cfg.Color {
	case "always":
		ui.SetColor(true)
	case "never":
		ui.SetColor(false)
	}
	ui.SetTheme(cfg.Theme)

	logger, closer, err := newLogger(cfg, cmd.ErrOrStderr(), cmd.Name() == "ui")
	if err != nil {
		return err
	}
	e.logger, e.logFile = logger, closer
	if cfg.File != "" {
		logger.Debug("loaded config", slog.String("path", cfg.File))
	}
	return nil
}

// newLogger logs to stderr, or to log.file when set. The interactive view
// owns the terminal, so without a file it logs nowhere.
func newLogger(cfg *config.Config, stderr io.Writer, interactive bool) (*slog.Logger, io.Closer, error) {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "shoplist")
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return slog.New(slog.NewTextHandler(f, opts)), f, nil
	}
	if interactive {
		stderr = io.Discard
	}
	return slog.New(slog.NewTextHandler(stderr, opts)), nil, nil
}

// session builds a fresh store from the seed and wraps it.
func (e *env) session() (*app.Session, error) {
	now := e.now()
	entries, err := seed.Load(e.cfg.Seed, now)
	if err != nil {
		return nil, fmt.Errorf("load seed: %w", err)
	}
	st := store.New(
		store.WithEntries(entries),
		store.WithDefaultSort(e.cfg.View.Sort),
		store.WithClock(e.now),
	)
	e.logger.Debug("seeded", slog.Int("entries", st.Len()), slog.String("seed", e.cfg.Seed))
	return app.NewSession(st, e.cfg.View, e.logger), nil
}
