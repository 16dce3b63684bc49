package prettyprint

import (
	"bytes"
	"fmt"
	"strings"
)

// Based on http://homepages.inf.ed.ac.uk/wadler/papers/prettier/prettier.pdf
// (the naive version; no width-aware layout).

type Doc interface {
	// String renders the doc.
	String() string
	// Debug returns a representation of the doc tree.
	Debug() string
}

// Text

type text struct {
	str string
}

var _ Doc = &text{}

func Text(s string) Doc {
	return &text{str: s}
}

func Textf(format string, args ...interface{}) Doc {
	return Text(fmt.Sprintf(format, args...))
}

func (t *text) String() string {
	return t.str
}

func (t *text) Debug() string {
	return fmt.Sprintf("Text(%#v)", t.str)
}

// Indent

type indent struct {
	doc Doc
	by  int
}

// Indent prefixes every line of d with `by` spaces.
func Indent(by int, d Doc) Doc {
	return &indent{doc: d, by: by}
}

func (n *indent) String() string {
	prefix := strings.Repeat(" ", n.by)
	lines := strings.Split(n.doc.String(), "\n")
	buf := bytes.NewBufferString("")
	for idx, line := range lines {
		if idx > 0 {
			buf.WriteString("\n")
		}
		if line != "" {
			buf.WriteString(prefix)
		}
		buf.WriteString(line)
	}
	return buf.String()
}

func (n *indent) Debug() string {
	return fmt.Sprintf("Indent(%d, %s)", n.by, n.doc.Debug())
}

// Empty

type empty struct{}

var Empty Doc = &empty{}

func (*empty) String() string {
	return ""
}

func (*empty) Debug() string {
	return "Empty"
}

// Seq

type seq struct {
	docs []Doc
}

func Seq(docs ...Doc) Doc {
	return &seq{docs: docs}
}

func (s *seq) String() string {
	buf := bytes.NewBufferString("")
	for _, doc := range s.docs {
		buf.WriteString(doc.String())
	}
	return buf.String()
}

func (s *seq) Debug() string {
	docStrs := make([]string, len(s.docs))
	for idx, doc := range s.docs {
		docStrs[idx] = doc.Debug()
	}
	return fmt.Sprintf("Seq(%s)", strings.Join(docStrs, ", "))
}

// Newline

type newline struct{}

var Newline Doc = &newline{}

func (*newline) String() string {
	return "\n"
}

func (*newline) Debug() string {
	return "Newline"
}

// Combinators

func Join(docs []Doc, sep Doc) Doc {
	var out []Doc
	for idx, doc := range docs {
		if idx > 0 {
			out = append(out, sep)
		}
		out = append(out, doc)
	}
	return Seq(out...)
}

var Comma = Text(",")

var CommaNewline = Seq(Comma, Newline)

// KV renders `key: value`.
func KV(key string, value Doc) Doc {
	return Seq(Text(key), Text(": "), value)
}

// Block renders entries one per line between open and close, with a
// trailing comma after each entry. An empty block stays on one line.
func Block(open string, entries []Doc, close string) Doc {
	if len(entries) == 0 {
		return Text(open + close)
	}
	return Seq(
		Text(open), Newline,
		Indent(2, Join(entries, CommaNewline)),
		CommaNewline,
		Text(close),
	)
}
