// Package leaflet renders a domain.MapDocument as a self-contained HTML page
// built on Leaflet and Leaflet.TimeDimension.
package leaflet

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"html"
	"html/template"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/fire-map-etl/internal/domain"
	"github.com/microcosm-cc/bluemonday"
)

//go:embed map.html.tmpl
var pageSource string

var page = template.Must(template.New("map").Funcs(template.FuncMap{
	"toJSON": toJSON,
}).Parse(pageSource))

// Renderer writes map documents to a fixed output path.
type Renderer struct {
	path   string
	policy *bluemonday.Policy
	logger *slog.Logger
}

// NewRenderer creates a Renderer writing to path.
func NewRenderer(path string, logger *slog.Logger) *Renderer {
	return &Renderer{
		path:   path,
		policy: PopupPolicy(),
		logger: logger,
	}
}

// PopupPolicy allows only line breaks and bold text in popup HTML.
func PopupPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("br", "b")
	return p
}

// Load renders doc and replaces the output file atomically. Any failure is
// reported as domain.ErrOutputWrite and leaves no partial file behind.
func (r *Renderer) Load(ctx context.Context, doc domain.MapDocument) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrOutputWrite, r.path, err)
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, doc); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrOutputWrite, r.path, err)
	}
	if err := writeAtomic(r.path, buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrOutputWrite, r.path, err)
	}

	r.logger.Info("map written", "path", r.path, "bytes", buf.Len(), "layers", len(doc.Layers))
	return nil
}

// Render executes the page template for doc.
func (r *Renderer) Render(w io.Writer, doc domain.MapDocument) error {
	if err := page.Execute(w, newPageData(doc, r.policy)); err != nil {
		return fmt.Errorf("render map template: %w", err)
	}
	return nil
}

// PopupHTML splits a label onto one line per field and appends the place
// name when present. The result is sanitized with policy.
func PopupHTML(policy *bluemonday.Policy, label, place string) string {
	lines := strings.SplitN(label, ", Acres Burned:", 2)
	if len(lines) == 2 {
		lines[1] = "Acres Burned:" + lines[1]
	}
	if place != "" {
		lines = append(lines, "Place: "+place)
	}
	for i, l := range lines {
		lines[i] = html.EscapeString(l)
	}
	return policy.Sanitize(strings.Join(lines, "<br>"))
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

func toJSON(v any) (template.JS, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}
