// Package source resolves where the text to read comes from: files named on
// the command line, the system clipboard, or standard input, in that order.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"corrodedrsvp/internal/logging"

	"github.com/atotto/clipboard"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"
)

// Origin names where a document was read from.
type Origin string

const (
	OriginFile      Origin = "file"
	OriginClipboard Origin = "clipboard"
	OriginStdin     Origin = "stdin"
)

// ErrNoInput is returned when every source came up empty.
var ErrNoInput = errors.New("no text to display")

// documentNamespace scopes document IDs so they never collide with other
// SHA-1 UUIDs.
var documentNamespace = uuid.MustParse("6f0c8a52-3c55-4f5e-9d0c-1c2b8e1a7d41")

// Document is a loaded, normalised text.
type Document struct {
	Name   string
	Origin Origin
	Paths  []string
	Text   string
}

// ID identifies the document by content.
func (d Document) ID() uuid.UUID {
	return DocumentID(d.Text)
}

// DocumentID derives a stable ID from text.
func DocumentID(text string) uuid.UUID {
	return uuid.NewSHA1(documentNamespace, []byte(text))
}

// PathID identifies a followed file by location, since its text changes.
func PathID(path string) uuid.UUID {
	return uuid.NewSHA1(documentNamespace, []byte("file:"+path))
}

// Options control Load.
type Options struct {
	Paths       []string
	Markdown    bool // force markdown rendering for every source
	NoClipboard bool
	Stdin       io.Reader
}

// clipboardReadAll is a package-level variable to allow mocking in tests.
var clipboardReadAll = clipboard.ReadAll

// Load reads the document described by opts.
func Load(ctx context.Context, opts Options) (Document, error) {
	if len(opts.Paths) > 0 {
		return loadFiles(ctx, opts)
	}

	if !opts.NoClipboard {
		text, err := clipboardReadAll()
		switch {
		case err != nil:
			logging.Source("clipboard unavailable: %v", err)
		case strings.TrimSpace(text) != "":
			return finish(Document{Name: "clipboard", Origin: OriginClipboard}, text, opts.Markdown)
		default:
			logging.Source("clipboard is empty, falling back to stdin")
		}
	}

	in := opts.Stdin
	if in == nil {
		in = os.Stdin
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read stdin: %w", err)
	}
	return finish(Document{Name: "stdin", Origin: OriginStdin}, string(data), opts.Markdown)
}

func loadFiles(ctx context.Context, opts Options) (Document, error) {
	texts := make([]string, len(opts.Paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, p := range opts.Paths {
		i, p := i, p
		g.Go(func() error {
			text, err := ReadFile(ctx, p, opts.Markdown)
			if err != nil {
				return err
			}
			texts[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Document{}, err
	}

	name := filepath.Base(opts.Paths[0])
	if len(opts.Paths) > 1 {
		name = fmt.Sprintf("%s (+%d)", name, len(opts.Paths)-1)
	}
	doc := Document{Name: name, Origin: OriginFile, Paths: opts.Paths}
	// each file was already rendered individually
	return finish(doc, strings.Join(texts, "\n\n"), false)
}

// ReadFile reads one file, rendering it as markdown when forced or when its
// extension says so.
func ReadFile(ctx context.Context, path string, markdown bool) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	text := string(data)
	if markdown || IsMarkdownPath(path) {
		text, err = RenderMarkdown(text)
		if err != nil {
			return "", fmt.Errorf("failed to render %s: %w", path, err)
		}
	}
	logging.Source("read %s (%d bytes)", path, len(data))
	return text, nil
}

func finish(doc Document, text string, markdown bool) (Document, error) {
	if markdown {
		rendered, err := RenderMarkdown(text)
		if err != nil {
			return Document{}, fmt.Errorf("failed to render markdown: %w", err)
		}
		text = rendered
	}
	doc.Text = Normalize(text)
	if strings.TrimSpace(doc.Text) == "" {
		return doc, ErrNoInput
	}
	return doc, nil
}

// Normalize converts text to NFC so composed and decomposed input read the
// same way and produce the same document ID.
func Normalize(text string) string {
	return norm.NFC.String(text)
}
