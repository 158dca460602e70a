package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/voyager"
	"github.com/aretw0/voyager/internal/presentation/graph"
	"github.com/aretw0/voyager/internal/presentation/tui"
	"github.com/aretw0/voyager/pkg/scene"
)

// Validate opens the document at path, which checks the schema and references.
func Validate(ctx context.Context, eng *voyager.Engine, path string) error {
	doc, err := eng.Open(ctx, path)
	if err != nil {
		return err
	}
	doc.Node().Dispose()
	return nil
}

// InspectFormat selects the output of Inspect.
type InspectFormat int

const (
	// InspectMarkdown writes a markdown summary.
	InspectMarkdown InspectFormat = iota
	// InspectMermaid writes a Mermaid flowchart of the node tree.
	InspectMermaid
	// InspectTree writes the plain node tree.
	InspectTree
)

// InspectOptions tune Inspect.
type InspectOptions struct {
	Format InspectFormat
	// Render, when set, post-processes markdown output.
	Render func(string) (string, error)
}

// Inspect writes a description of the document at path to w.
func Inspect(ctx context.Context, eng *voyager.Engine, path string, w io.Writer, opts InspectOptions) error {
	doc, err := eng.Open(ctx, path)
	if err != nil {
		return err
	}
	defer doc.Node().Dispose()

	var out string
	switch opts.Format {
	case InspectMermaid:
		out = graph.GenerateMermaid(doc.Root(), nil)
	case InspectTree:
		out = scene.Tree(doc.Root())
	default:
		out = tui.DocumentMarkdown(doc)
		if opts.Render != nil {
			if out, err = opts.Render(out); err != nil {
				return fmt.Errorf("render: %w", err)
			}
		}
	}
	_, err = io.WriteString(w, out)
	return err
}

// Normalize reads the document at in and writes it back to out, or over in when out
// is empty. Only the component kinds in include are written when include is non-empty.
func Normalize(ctx context.Context, eng *voyager.Engine, in, out string, include []string) error {
	doc, err := eng.Open(ctx, in)
	if err != nil {
		return err
	}
	defer doc.Node().Dispose()

	var filter scene.Filter
	if len(include) > 0 {
		filter = scene.Filter{}
		for _, kind := range include {
			filter[strings.TrimSpace(kind)] = true
		}
	}
	if out == "" {
		out = in
	}
	return eng.Save(ctx, doc, filter, out)
}
