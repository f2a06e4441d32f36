package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"corrodedrsvp/cmd/corroded_rsvp/reader"
	"corrodedrsvp/cmd/corroded_rsvp/ui"
	"corrodedrsvp/internal/logging"
	"corrodedrsvp/internal/playback"
	"corrodedrsvp/internal/progress"
	"corrodedrsvp/internal/source"
	"corrodedrsvp/internal/watch"
	"corrodedrsvp/internal/words"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

const noTextMessage = "No text to display. Please provide a file, text in clipboard, or pipe text into the program."

// runReader loads the text and runs the interactive reader.
func runReader(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if follow && len(args) != 1 {
		return errFollowNeedsFile
	}
	paths, err := absPaths(args)
	if err != nil {
		return err
	}

	doc, err := source.Load(ctx, source.Options{
		Paths:       paths,
		Markdown:    markdown,
		NoClipboard: !cfg.Source.Clipboard,
		Stdin:       cmd.InOrStdin(),
	})
	if errors.Is(err, source.ErrNoInput) {
		fmt.Fprintln(errWriter(cmd), noTextMessage)
		return nil
	}
	if err != nil {
		return err
	}

	ws := words.Split(doc.Text)
	docID := doc.ID()
	if follow {
		docID = source.PathID(paths[0])
	}
	logging.Boot("loaded %q from %s: %d words, id %s", doc.Name, doc.Origin, len(ws), docID)

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	start := 0
	if store != nil && !restart {
		start, _ = store.ResumeIndex(ctx, docID, len(ws))
	}

	session := playback.New(ws, playback.Options{
		WPM:    cfg.Reader.WPM,
		MaxWPM: cfg.Reader.MaxWPM,
		Start:  start,
	}, time.Now())

	opts := reader.Options{
		Title:        "corroded_rsvp: " + doc.Name,
		Focus:        cfg.Reader.Focus,
		Caret:        cfg.UI.Caret,
		ShowProgress: cfg.UI.ShowProgress,
		ShowHelp:     cfg.UI.ShowHelp,
		Autoplay:     !cfg.Reader.StartPaused,
		Styles:       ui.NewStyles(ui.ThemeFor(cfg.UI)),
		SaveDebounce: cfg.GetSaveInterval(),
	}

	var sessionID uuid.UUID
	if store != nil {
		opts.Persist = persister(store, docID, doc.Name)
		if sessionID, err = store.BeginSession(ctx, docID); err != nil {
			logging.Get(logging.CategoryProgress).Warn("%v", err)
		}
	}

	if follow {
		w, err := watch.New(paths[0], cfg.GetFollowDebounce(), func(ctx context.Context, p string) (string, error) {
			return source.ReadFile(ctx, p, markdown)
		})
		if err != nil {
			return fmt.Errorf("failed to follow %s: %w", paths[0], err)
		}
		defer w.Stop()
		if opts.Reloads, err = w.Start(ctx); err != nil {
			return fmt.Errorf("failed to follow %s: %w", paths[0], err)
		}
	}

	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if !isTerminal(os.Stdin) {
		// stdin was the text; keys come from the controlling terminal
		programOpts = append(programOpts, tea.WithInputTTY())
	}

	model := reader.New(session, opts)
	final, err := tea.NewProgram(model, programOpts...).Run()
	// copies of the model share one saver, so this also covers a killed program
	model.Flush()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("reader failed: %w", err)
	}

	if fm, ok := final.(reader.Model); ok && store != nil && sessionID != uuid.Nil {
		if err := store.EndSession(context.Background(), sessionID, fm.Session().Advanced()); err != nil {
			logging.Get(logging.CategoryProgress).Warn("%v", err)
		}
	}
	return nil
}

// openStore opens the progress store, or returns nil when it is disabled or
// unavailable. Reading never fails because of the store.
func openStore() *progress.Store {
	if !cfg.Progress.Enabled {
		return nil
	}
	store, err := progress.Open(cfg.DataDir())
	if err != nil {
		logging.Get(logging.CategoryProgress).Warn("progress disabled: %v", err)
		return nil
	}
	return store
}

// persister saves reader positions for one document.
func persister(store *progress.Store, docID uuid.UUID, name string) func(reader.Position) {
	return func(p reader.Position) {
		err := store.Save(context.Background(), progress.Entry{
			DocumentID: docID,
			Name:       name,
			Index:      p.Index,
			Total:      p.Total,
			WPM:        p.WPM,
		})
		if err != nil {
			logging.Get(logging.CategoryProgress).Warn("%v", err)
		}
	}
}
