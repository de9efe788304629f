// Package templates emits the Go source ripplegen generates: one constant
// plan and one constant program per input template, so embedders pay zero
// parse cost at runtime.
package templates

import (
	"bytes"

	qt "github.com/valyala/quicktemplate"

	"github.com/GhostKellz/ripple/render"
	"github.com/GhostKellz/ripple/template"
)

// Entry is one compiled template heading into the generated file.
type Entry struct {
	Name    string
	Plan    *template.Plan
	Program *render.Program
}

// GeneratedSource renders the full generated file for pkg.
func GeneratedSource(pkg string, entries []Entry) string {
	bb := &bytes.Buffer{}
	qw := qt.AcquireWriter(bb)
	w := qw.N()

	w.S("// Code generated by ripplegen. DO NOT EDIT.\n\n")
	w.S("package ")
	w.S(pkg)
	w.S("\n\nimport (\n")
	w.S("\t\"github.com/GhostKellz/ripple/render\"\n")
	w.S("\t\"github.com/GhostKellz/ripple/template\"\n")
	w.S(")\n")

	for _, e := range entries {
		writePlan(w, e)
		writeProgram(w, e)
	}

	qt.ReleaseWriter(qw)
	return bb.String()
}

func writePlan(w *qt.QWriter, e Entry) {
	w.S("\nvar ")
	w.S(e.Name)
	w.S("Plan = template.Plan{\n\tStaticParts: []string{")
	for i, part := range e.Plan.StaticParts {
		if i > 0 {
			w.S(", ")
		}
		w.Q(part)
	}
	w.S("},\n\tPlaceholders: []string{")
	for i, ph := range e.Plan.Placeholders {
		if i > 0 {
			w.S(", ")
		}
		w.Q(ph)
	}
	w.S("},\n}\n")
}

func writeProgram(w *qt.QWriter, e Entry) {
	w.S("\nvar ")
	w.S(e.Name)
	w.S("Program = render.Program{\n\tOps: []render.Op{\n")
	for _, op := range e.Program.Ops {
		w.S("\t\t{Kind: ")
		w.S(opKindName(op.Kind))
		if op.Tag != "" {
			w.S(", Tag: ")
			w.Q(op.Tag)
		}
		if op.Text != "" {
			w.S(", Text: ")
			w.Q(op.Text)
		}
		if op.Name != "" {
			w.S(", Name: ")
			w.Q(op.Name)
		}
		if op.Kind == render.OpDynamicText {
			w.S(", Slot: ")
			w.D(op.Slot)
		}
		if op.HID != 0 {
			w.S(", HID: ")
			w.D(int(op.HID))
		}
		w.S("},\n")
	}
	w.S("\t},\n\tMaxHydrationID: ")
	w.D(int(e.Program.MaxHydrationID))
	w.S(",\n}\n")
}
