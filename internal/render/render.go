package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/samvad-hq/placeholder-explorer/internal/domain"
)

// Supported output formats.
const (
	FormatText  = "text"
	FormatTable = "table"
	FormatYAML  = "yaml"
)

const ellipsis = "..."

// Renderer writes decoded resources to w.
type Renderer interface {
	Posts(w io.Writer, posts []domain.Post) error
	Users(w io.Writer, users []domain.User) error
	PostDetail(w io.Writer, post domain.Post) error
	Comments(w io.Writer, comments []domain.Comment) error
}

// New returns the renderer for format. An empty format selects text.
func New(format string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		return Text{}, nil
	case FormatTable:
		return Table{}, nil
	case FormatYAML:
		return YAML{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

// Truncate cuts s to at most max runes.
func Truncate(s string, max int) string {
	if max < 0 {
		max = 0
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

// TruncateWithEllipsis cuts s to max runes and appends "..." when anything was removed.
func TruncateWithEllipsis(s string, max int) string {
	cut := Truncate(s, max)
	if cut == s {
		return s
	}
	return cut + ellipsis
}
