// Package render is the extension point SPEC_FULL.md reserves for
// tree image export (e.g. SVG/PNG rendering of the Newick output).
// Nothing in the example corpus carries a tree-drawing dependency, and
// the distilled spec's Non-goals exclude graphical rendering, so this
// stays a stub an external tool can later implement against.
package render

import "github.com/kcri-tz/sans-go"

// Renderer turns a Newick tree string into a rendered image.
type Renderer interface {
	Render(newick string) ([]byte, error)
}

type unimplemented struct{}

// Default is the no-op Renderer: it always reports
// sans.ErrNotImplemented. No sans command calls it; sans run has no
// rendering flag.
var Default Renderer = unimplemented{}

func (unimplemented) Render(string) ([]byte, error) {
	return nil, sans.ErrNotImplemented
}
