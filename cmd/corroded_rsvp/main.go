package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"corrodedrsvp/internal/config"
	"corrodedrsvp/internal/logging"

	"github.com/spf13/cobra"
)

// version is stamped by the build target.
var version = "dev"

var (
	// Global flags
	verbose    bool
	configPath string

	// Reading flags
	wpm         int
	focus       bool
	markdown    bool
	noClipboard bool
	follow      bool
	restart     bool
	play        bool

	// Loaded in PersistentPreRunE
	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "corroded_rsvp [file...]",
	Short: "A simple RSVP speed reader for the terminal",
	Long: `corroded_rsvp flashes text one word at a time in the middle of the terminal.

Text comes from the files given as arguments. Without files it is read from
the clipboard, and if that is empty, from standard input.

Keys:
  space  play / pause        n p  next / previous word
  u d    faster / slower     r    restart
  ?      help                q    quit`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig(cmd)
		if err != nil {
			return err
		}
		if verbose {
			cfg.Logging.DebugMode = true
			cfg.Logging.Level = "debug"
		}
		if err := logging.Initialize(cfg.LogsDir(), cfg.Logging.Settings()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logging.Boot("config: %s", configPath)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.CloseAll()
	},
	RunE: runReader,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Write debug logs to the data directory")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/corroded_rsvp/config.yaml)")

	rootCmd.Flags().IntVarP(&wpm, "wpm", "w", 250, "Words per minute")
	rootCmd.Flags().BoolVarP(&focus, "focus", "f", false, "Highlight the focus letter of each word")
	rootCmd.Flags().BoolVar(&markdown, "markdown", false, "Render input as markdown before reading")
	rootCmd.Flags().BoolVar(&noClipboard, "no-clipboard", false, "Never read from the clipboard")
	rootCmd.Flags().BoolVar(&follow, "follow", false, "Reload the file when it changes (single file only)")
	rootCmd.Flags().BoolVar(&restart, "restart", false, "Ignore the saved position and start from the first word")
	rootCmd.Flags().BoolVar(&play, "play", false, "Start playing immediately instead of paused")

	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(forgetCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves the config path, loads it and applies flags that were
// set explicitly on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}
	c, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("wpm") {
		c.Reader.WPM = wpm
	}
	if flags.Changed("focus") {
		c.Reader.Focus = focus
	}
	if flags.Changed("no-clipboard") {
		c.Source.Clipboard = !noClipboard
	}
	if flags.Changed("play") {
		c.Reader.StartPaused = !play
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	return c, nil
}

// versionCmd prints the build version
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "corroded_rsvp %s\n", version)
	},
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

func absPaths(paths []string) ([]string, error) {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, err
		}
		out = append(out, abs)
	}
	return out, nil
}

// errWriter returns cmd's error stream.
func errWriter(cmd *cobra.Command) io.Writer {
	return cmd.ErrOrStderr()
}

var errFollowNeedsFile = errors.New("--follow needs exactly one file")
