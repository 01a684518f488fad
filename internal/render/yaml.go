package render

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/samvad-hq/placeholder-explorer/internal/domain"
)

// YAML renders resources as a YAML document per call.
type YAML struct{}

func (YAML) Posts(w io.Writer, posts []domain.Post) error          { return encodeYAML(w, posts) }
func (YAML) Users(w io.Writer, users []domain.User) error          { return encodeYAML(w, users) }
func (YAML) PostDetail(w io.Writer, post domain.Post) error        { return encodeYAML(w, post) }
func (YAML) Comments(w io.Writer, comments []domain.Comment) error { return encodeYAML(w, comments) }

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
