// Package cli wires the todoai commands: the terminal UI, the HTTP API, and
// one-shot AI help from the shell.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/sant0-9/todoai/internal/config"
	"github.com/sant0-9/todoai/internal/logger"
	"github.com/sant0-9/todoai/internal/todo"
	"github.com/sant0-9/todoai/internal/tui"
)

// Version is set via ldflags at build time.
var Version = "dev"

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "todoai",
		Short:        "Todos with categories, due dates, and AI help",
		Version:      Version,
		SilenceUsage: true,
		RunE:         runTUI,
	}

	root.PersistentFlags().String("config", "", "Path to the config file (default ~/.config/todoai/config.yaml)")
	root.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error, disabled)")
	root.PersistentFlags().Bool("log-json", false, "Output logs in JSON format")

	root.AddCommand(
		ServeCmd(),
		PlanCmd(),
		ConfigCmd(),
	)

	return root
}

func runTUI(cmd *cobra.Command, _ []string) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errors.New("todoai needs a terminal; use `todoai plan <task>` or `todoai serve` instead")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The UI owns the terminal, so logs go to a file.
	logFile, err := openLogFile()
	if err != nil {
		return err
	}
	defer logFile.Close()
	log := setupLogger(cmd, logFile)

	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	app := tui.NewApp(cfg, store, log)
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		app.SetConfigPath(path)
	}
	if closeWatcher, err := app.WatchStore(); err != nil {
		log.Warn("Live reload disabled", "error", err)
	} else {
		defer closeWatcher()
	}

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// loadConfig reads .env, then the config file, then the environment.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if err := config.LoadEnvFile(".env"); err != nil {
		return nil, err
	}

	path, _ := cmd.Flags().GetString("config")
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	cfg.ApplyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogger(cmd *cobra.Command, out io.Writer) logger.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	logJSON, _ := cmd.Flags().GetBool("log-json")

	logger.Init(&logger.Config{
		Level:      logger.LogLevel(level),
		Output:     out,
		JSON:       logJSON,
		TimeFormat: "15:04:05",
	})
	return logger.GetDefault()
}

func openLogFile() (*os.File, error) {
	dir, err := config.ConfigDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "todoai.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

func openStore(cfg *config.Config) (*todo.Store, error) {
	path, err := cfg.ResolvedDataPath()
	if err != nil {
		return nil, err
	}
	store, err := todo.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open todo store: %w", err)
	}
	return store, nil
}
