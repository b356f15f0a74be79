// Package render implements the renderer of spec.md §4.5: composing
// value fragments into a per-entry ProcTemplate, then §4.6/§4.7
// assembling those into a rendered bibliography or citation through an
// outformat.Format back end.
//
// Grounded on the teacher's hub/convert/serializer.go logic: iterate a
// field list, extract each, accumulate into an ordered output
// structure, apply a separator/suffix pass at the end. The field list
// here is a style.Component template rather than a fixed schema.
package render

import (
	"strings"

	"github.com/csln-go/csln/outformat"
	"github.com/csln-go/csln/style"
	"github.com/csln-go/csln/values"
)

// ProcComponent is one rendered template node (spec.md §4.5
// "ProcComponent{template_component, value, prefix, suffix, url,
// ref_type, config}"). Prefix/Suffix on Value already include the
// effective-rendering prefix/suffix merge (values.Context.Extract
// folds those in); Rendering here carries only the markup flags
// (emph/strong/quote/wrap/...) the assembler still needs to apply.
type ProcComponent struct {
	Component style.Component
	Rendering style.Rendering
	Value     *values.ProcValue
}

// ProcTemplate is the renderer's output for one entry or citation item
// (spec.md §4.5 "ProcTemplate = list<ProcComponent>").
type ProcTemplate []ProcComponent

// RenderEntry walks template against ctx's reference, producing one
// ProcComponent per component that yields a value. Components that
// produce nothing (absent field, suppressed override, exhausted
// substitution) are simply omitted, matching spec.md §4.5's push-
// on-success iteration.
func RenderEntry(ctx *values.Context, template []style.Component) ProcTemplate {
	var out ProcTemplate
	for _, comp := range template {
		pv, ok := ctx.Extract(comp)
		if !ok {
			continue
		}
		effective := values.EffectiveRendering(comp, ctx.Ref.Kind)
		out = append(out, ProcComponent{Component: comp, Rendering: effective.Rendering, Value: pv})
	}
	return out
}

// Assemble renders pt through f, applying each component's markup
// flags (emph/strong/small-caps/quote/wrap/link) and already-merged
// affixes, then joins the results with separator (spec.md §4.7 "join
// components into a single line"), skipping the separator before a
// fragment that already begins with separator-like punctuation or an
// opening parenthesis.
func Assemble(f outformat.Format, pt ProcTemplate, separator string) outformat.Fragment {
	var out string
	for _, pc := range pt {
		frag := string(assembleOne(f, pc))
		if frag == "" {
			continue
		}
		if out != "" && !startsWithSeparatorPunct(frag) {
			out += separator
		}
		out += frag
	}
	return outformat.Fragment(out)
}

// startsWithSeparatorPunct implements spec.md §4.7's separator-skip
// rule: don't insert the joining separator before a fragment that
// already opens with punctuation that would read oddly doubled up.
func startsWithSeparatorPunct(s string) bool {
	if s == "" {
		return false
	}
	r := []rune(s)[0]
	return strings.ContainsRune(",;:. ()", r)
}

// htmlBearingVariables names the simple_var fields that commonly carry
// embedded HTML copied from a publisher API (spec.md §4.1). Back ends
// that don't themselves speak HTML need it stripped before the value
// can be treated as plain text.
var htmlBearingVariables = map[string]bool{
	"abstract": true,
	"note":     true,
}

func assembleOne(f outformat.Format, pc ProcComponent) outformat.Fragment {
	text := pc.Value.Value
	if pc.Component.Kind == style.ComponentVariable && htmlBearingVariables[pc.Component.SimpleVar] {
		switch f.Name() {
		case "html", "djot":
			// these back ends escape/convert markup themselves.
		default:
			if outformat.IsHTML(text) {
				text = outformat.StripHTML(text)
			}
		}
	}
	frag := f.Text(text)

	if pc.Value.URL != "" {
		frag = f.Link(pc.Value.URL, frag)
	}
	if pc.Rendering.Emph {
		frag = f.Emph(frag)
	}
	if pc.Rendering.Strong {
		frag = f.Strong(frag)
	}
	if pc.Rendering.SmallCaps {
		frag = f.SmallCaps(frag)
	}
	if pc.Rendering.Quote {
		frag = f.Quote(frag)
	}
	if pc.Rendering.InnerPrefix != "" || pc.Rendering.InnerSuffix != "" {
		frag = f.InnerAffix(pc.Rendering.InnerPrefix, frag, pc.Rendering.InnerSuffix)
	}
	if pc.Rendering.Wrap != "" && pc.Rendering.Wrap != style.WrapNone {
		frag = f.WrapPunctuation(pc.Rendering.Wrap, frag)
	}
	frag = f.Affix(pc.Value.Prefix, frag, pc.Value.Suffix)
	if class := semanticClass(pc.Component); class != "" {
		frag = f.Semantic(class, frag)
	}
	return frag
}

// semanticClass names the csln-* semantic class a component's kind
// maps to (spec.md §4.6 "semantic(class, frag)"); list/group/text/term
// components carry no independent semantic identity of their own.
func semanticClass(comp style.Component) string {
	switch comp.Kind {
	case style.ComponentContributor:
		return "contributor"
	case style.ComponentDate:
		return "date"
	case style.ComponentTitle:
		return "title"
	case style.ComponentNumber:
		return string(comp.NumberVar)
	case style.ComponentVariable:
		return string(comp.SimpleVar)
	default:
		return ""
	}
}
