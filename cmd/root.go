package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/marcus/charview/internal/config"
	"github.com/marcus/charview/internal/library"
	"github.com/marcus/charview/internal/logging"
	"github.com/marcus/charview/internal/output"
	"github.com/marcus/charview/pkg/browser"
)

var (
	version     string
	configPath  string
	libraryPath string
	logPath     string
)

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "charview",
	Short: "Terminal browser for character cards",
	Long: `charview - browse a local library of character cards.

Running with no arguments opens the interactive browser: pick a card to see
its details in a modal overlay with configurable sections, and start a chat
from there.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		lib, err := openLibrary()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer lib.Close()

		log, closeLog := logging.Open(resolveLogPath())
		defer closeLog.Close()

		var watcher *library.Watcher
		if dir := store.Settings().ImportDir; dir != "" {
			if w, err := library.Watch(dir); err == nil {
				watcher = w
				defer w.Close()
			} else {
				log.Warn().Err(err).Str("dir", dir).Msg("import watch unavailable")
			}
		}

		model := browser.New(browser.Options{
			Config:  store,
			Library: lib,
			Watcher: watcher,
			Log:     log,
		})
		prog := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
		if _, err := prog.Run(); err != nil {
			return fmt.Errorf("browser: %w", err)
		}
		return store.Flush()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "settings file (default: user config dir)")
	rootCmd.PersistentFlags().StringVar(&libraryPath, "library", "", "library database (default: user data dir)")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "debug log file (default: user state dir)")
}

func openStore() (*config.Store, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("resolve settings path: %w", err)
		}
	}
	store, err := config.Load(path)
	if err != nil {
		output.Error("settings unreadable, using defaults: %v", err)
		return config.Defaults(path), nil
	}
	return store, nil
}

func openLibrary() (*library.Library, error) {
	path := libraryPath
	if path == "" {
		var err error
		path, err = library.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("resolve library path: %w", err)
		}
	}
	return library.Open(path)
}

func resolveLogPath() string {
	if logPath != "" {
		return logPath
	}
	path, err := logging.DefaultPath()
	if err != nil {
		return ""
	}
	return path
}
