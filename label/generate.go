package label

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Summary describes a finished generation run.
type Summary struct {
	Tags  int
	Files []string
}

// Generator writes label files for a range of tags.
type Generator struct {
	renderer *Renderer
	log      *slog.Logger
}

// NewGenerator creates a Generator that renders with r.
func NewGenerator(r *Renderer, log *slog.Logger) *Generator {
	if log == nil {
		log = slog.Default()
	}
	return &Generator{renderer: r, log: log}
}

// Run validates the request and then writes every artifact of every tag
// in r to dir, one tag at a time. Existing files are overwritten. The
// first failure aborts the run; files already written are left in place.
func (g *Generator) Run(r Range, dir string) (Summary, error) {
	var sum Summary
	if err := Validate(r, dir); err != nil {
		return sum, err
	}

	start := time.Now()
	g.log.Info("generating asset tags",
		"layout", g.renderer.Layout().Name,
		"from", r.From, "to", r.To, "count", r.Len(), "dir", dir)

	for n := r.From; n <= r.To; n++ {
		artifacts, err := g.renderer.Render(n)
		if err != nil {
			return sum, err
		}
		for _, a := range artifacts {
			path := filepath.Join(dir, a.Name)
			if err := writeArtifact(path, a); err != nil {
				return sum, err
			}
			sum.Files = append(sum.Files, path)
		}
		sum.Tags++
		g.log.Debug("wrote asset tag", "tag", FormatID(n), "files", len(artifacts))
	}

	g.log.Info("asset tags generated", "tags", sum.Tags, "files", len(sum.Files),
		"elapsed", time.Since(start).Truncate(time.Millisecond))
	return sum, nil
}

func writeArtifact(path string, a Artifact) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := EncodePNG(f, a.Image); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
