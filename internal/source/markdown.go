package source

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

// IsMarkdownPath reports whether the file extension marks markdown.
func IsMarkdownPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown", ".mdown", ".mkd":
		return true
	}
	return false
}

// enumerationMark follows an ordered list number so the number can be cut
// from the rendered text without touching numbers in prose.
const enumerationMark = "\x1f"

var enumerationPrefix = regexp.MustCompile(`[0-9]+` + enumerationMark)

// plainStyle is the ASCII style with the markers that would otherwise be
// shown as words removed.
func plainStyle() ansi.StyleConfig {
	cfg := styles.ASCIIStyleConfig
	quoteIndent := " "
	cfg.BlockQuote.IndentToken = &quoteIndent
	for _, h := range []*ansi.StyleBlock{&cfg.H1, &cfg.H2, &cfg.H3, &cfg.H4, &cfg.H5, &cfg.H6} {
		h.Prefix = ""
		h.Suffix = ""
	}
	cfg.Strong.BlockPrefix = ""
	cfg.Strong.BlockSuffix = ""
	cfg.Emph.BlockPrefix = ""
	cfg.Emph.BlockSuffix = ""
	cfg.Strikethrough.BlockPrefix = ""
	cfg.Strikethrough.BlockSuffix = ""
	cfg.Code.BlockPrefix = ""
	cfg.Code.BlockSuffix = ""
	cfg.Item.BlockPrefix = ""
	cfg.Enumeration.BlockPrefix = enumerationMark
	cfg.Task.Ticked = ""
	cfg.Task.Unticked = ""
	cfg.ImageText.Format = "{{.text}}"
	cfg.DefinitionDescription.BlockPrefix = "\n"
	cfg.HorizontalRule.Format = "\n"
	return cfg
}

// RenderMarkdown flattens markdown to plain text so markup is not read out as
// words.
func RenderMarkdown(text string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			// If glamour panics, read the raw text
			out, err = text, nil
		}
	}()

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(plainStyle()),
		glamour.WithWordWrap(0),
	)
	if err != nil {
		return "", err
	}
	out, err = r.Render(text)
	if err != nil {
		return "", err
	}
	return enumerationPrefix.ReplaceAllString(out, ""), nil
}
