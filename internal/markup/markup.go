// Package markup renders the inline markdown allowed in entry names
// (emphasis, code spans, links, strikethrough) as styled terminal
// text, or strips it for plain output.
package markup

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Styles holds the terminal styles applied per inline construct.
type Styles struct {
	Bold   lipgloss.Style
	Italic lipgloss.Style
	Code   lipgloss.Style
	Strike lipgloss.Style
	Link   lipgloss.Style
}

// parserInstance is initialized once and reused. The parser
// configuration never changes and the goldmark parser is safe to
// share; parsing creates per-call state via Parse(reader).
var (
	parserInstance goldmark.Markdown
	parserOnce     sync.Once
)

func parser() goldmark.Markdown {
	parserOnce.Do(func() {
		parserInstance = goldmark.New(
			goldmark.WithExtensions(extension.Strikethrough),
		)
	})
	return parserInstance
}

// Render returns name with its inline markdown rendered through the
// given styles. Plain text passes through untouched. Block structure
// is irrelevant for a one-line name; only inline nodes are styled.
func Render(name string, st Styles) string {
	return walkInline(name, &st)
}

// Strip returns name with all inline markdown removed.
func Strip(name string) string {
	return walkInline(name, nil)
}

func walkInline(name string, st *Styles) string {
	if name == "" {
		return ""
	}
	source := []byte(name)
	root := parser().Parser().Parse(text.NewReader(source))

	r := &inlineRenderer{source: source, styles: st}
	_ = ast.Walk(root, r.walk)
	return r.out.String()
}

// inlineRenderer accumulates text from inline nodes, tracking which
// inline constructs are open. Counters rather than booleans handle
// nested emphasis correctly.
type inlineRenderer struct {
	source []byte
	styles *Styles
	out    strings.Builder

	bold   int
	italic int
	strike int
	link   int
}

func (r *inlineRenderer) walk(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node := n.(type) {
	case *ast.Text:
		if entering {
			r.write(string(node.Segment.Value(r.source)))
			if node.SoftLineBreak() || node.HardLineBreak() {
				r.write(" ")
			}
		}
	case *ast.CodeSpan:
		if entering {
			var code strings.Builder
			for c := node.FirstChild(); c != nil; c = c.NextSibling() {
				if t, ok := c.(*ast.Text); ok {
					code.Write(t.Segment.Value(r.source))
				}
			}
			r.writeStyled(code.String(), func(st *Styles) lipgloss.Style { return st.Code })
			return ast.WalkSkipChildren, nil
		}
	case *ast.Emphasis:
		delta := 1
		if !entering {
			delta = -1
		}
		if node.Level >= 2 {
			r.bold += delta
		} else {
			r.italic += delta
		}
	case *extast.Strikethrough:
		if entering {
			r.strike++
		} else {
			r.strike--
		}
	case *ast.Link:
		if entering {
			r.link++
		} else {
			r.link--
		}
	case *ast.AutoLink:
		if entering {
			r.writeStyled(string(node.URL(r.source)), func(st *Styles) lipgloss.Style { return st.Link })
		}
	}
	return ast.WalkContinue, nil
}

// write emits text under the currently open constructs. When several
// are open the innermost-binding one wins; names are short enough that
// full style composition is not worth the ANSI nesting.
func (r *inlineRenderer) write(s string) {
	switch {
	case r.bold > 0:
		r.writeStyled(s, func(st *Styles) lipgloss.Style { return st.Bold })
	case r.italic > 0:
		r.writeStyled(s, func(st *Styles) lipgloss.Style { return st.Italic })
	case r.strike > 0:
		r.writeStyled(s, func(st *Styles) lipgloss.Style { return st.Strike })
	case r.link > 0:
		r.writeStyled(s, func(st *Styles) lipgloss.Style { return st.Link })
	default:
		r.out.WriteString(s)
	}
}

func (r *inlineRenderer) writeStyled(s string, pick func(*Styles) lipgloss.Style) {
	if r.styles == nil {
		r.out.WriteString(s)
		return
	}
	r.out.WriteString(pick(r.styles).Render(s))
}
