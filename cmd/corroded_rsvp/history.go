package main

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"corrodedrsvp/internal/progress"

	"github.com/cheynewallace/tabby"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	historyLimit int
	forgetAll    bool
)

// historyCmd lists saved reading positions
var historyCmd = &cobra.Command{
	Use:   "history [id-prefix]",
	Short: "List saved reading positions",
	Long: `Lists saved positions, newest first. Given a prefix of a document ID,
lists that document's reading sessions instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

// forgetCmd deletes saved positions
var forgetCmd = &cobra.Command{
	Use:   "forget [id-prefix]",
	Short: "Forget the saved position of a document",
	Long: `Deletes the saved position and session history of one document.
The document is named by a prefix of the ID shown by 'history'.

Example:
  corroded_rsvp forget 3f2a
  corroded_rsvp forget --all`,
	Args: cobra.MaximumNArgs(1),
	RunE: runForget,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "Rows to show (default: progress.history_limit)")
	forgetCmd.Flags().BoolVar(&forgetAll, "all", false, "Forget every document")
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := progress.Open(cfg.DataDir())
	if err != nil {
		return err
	}
	defer store.Close()

	if len(args) == 1 {
		return showSessions(cmd, store, args[0])
	}

	limit := historyLimit
	if limit <= 0 {
		limit = cfg.Progress.HistoryLimit
	}
	entries, err := store.List(cmd.Context(), limit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No saved positions.")
		return nil
	}

	t := tabby.NewCustom(tabwriter.NewWriter(out, 0, 0, 2, ' ', 0))
	t.AddHeader("ID", "NAME", "POSITION", "WPM", "LEFT", "SESSIONS", "READ", "UPDATED")
	for _, e := range entries {
		sessions, err := store.Sessions(cmd.Context(), e.DocumentID)
		if err != nil {
			return err
		}
		t.AddLine(
			e.DocumentID.String()[:8],
			e.Name,
			formatPosition(e),
			e.WPM,
			formatLeft(e),
			len(sessions),
			humanize.Comma(int64(wordsRead(sessions))),
			humanize.Time(e.UpdatedAt),
		)
	}
	t.Print()
	return nil
}

// showSessions prints the reading sessions of one document.
func showSessions(cmd *cobra.Command, store *progress.Store, prefix string) error {
	ctx := cmd.Context()
	e, err := store.Find(ctx, prefix)
	if errors.Is(err, progress.ErrNotFound) {
		return fmt.Errorf("no saved position matches %q", prefix)
	}
	if err != nil {
		return err
	}
	sessions, err := store.Sessions(ctx, e.DocumentID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s): %s, %s words read\n",
		e.Name, e.DocumentID, formatPosition(e), humanize.Comma(int64(wordsRead(sessions))))
	if len(sessions) == 0 {
		fmt.Fprintln(out, "No reading sessions.")
		return nil
	}

	t := tabby.NewCustom(tabwriter.NewWriter(out, 0, 0, 2, ' ', 0))
	t.AddHeader("STARTED", "DURATION", "WORDS")
	for _, s := range sessions {
		t.AddLine(humanize.Time(s.StartedAt), formatDuration(s), humanize.Comma(int64(s.WordsRead)))
	}
	t.Print()
	return nil
}

func wordsRead(sessions []progress.Session) int {
	n := 0
	for _, s := range sessions {
		n += s.WordsRead
	}
	return n
}

// formatDuration is "-" for a session that never ended, e.g. after a crash.
func formatDuration(s progress.Session) string {
	if s.EndedAt.IsZero() {
		return "-"
	}
	return s.EndedAt.Sub(s.StartedAt).Round(time.Second).String()
}

func formatPosition(e progress.Entry) string {
	if e.Done() {
		return fmt.Sprintf("done (%s words)", humanize.Comma(int64(e.Total)))
	}
	pct := 0.0
	if e.Total > 0 {
		pct = float64(e.Index) / float64(e.Total) * 100
	}
	return fmt.Sprintf("%s/%s (%.0f%%)", humanize.Comma(int64(e.Index+1)), humanize.Comma(int64(e.Total)), pct)
}

func formatLeft(e progress.Entry) string {
	left := e.Total - e.Index
	if left <= 0 || e.WPM <= 0 {
		return "-"
	}
	return (time.Duration(left) * time.Minute / time.Duration(e.WPM)).Round(time.Second).String()
}

func runForget(cmd *cobra.Command, args []string) error {
	if forgetAll == (len(args) == 1) {
		return errors.New("give an ID prefix or --all")
	}
	store, err := progress.Open(cfg.DataDir())
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	if forgetAll {
		if err := store.Clear(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Forgot every document.")
		return nil
	}

	e, err := store.Find(ctx, args[0])
	if errors.Is(err, progress.ErrNotFound) {
		return fmt.Errorf("no saved position matches %q", args[0])
	}
	if err != nil {
		return err
	}
	if err := store.Delete(ctx, e.DocumentID); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Forgot %s (%s).\n", e.Name, e.DocumentID)
	return nil
}
