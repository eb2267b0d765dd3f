// Package htmlwriter builds small HTML fragments with attributes kept in
// the order they were given.
package htmlwriter

import (
	"html"
	"strings"
)

type Attr struct {
	Name  string
	Value string
}

type Attrs []Attr

// A builds attributes from name, value pairs. A trailing name without a
// value is dropped.
func A(pairs ...string) Attrs {
	attrs := make(Attrs, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		attrs = append(attrs, Attr{Name: pairs[i], Value: pairs[i+1]})
	}
	return attrs
}

func (a Attrs) String() string {
	var b strings.Builder
	for _, attr := range a {
		b.WriteByte(' ')
		b.WriteString(attr.Name)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(attr.Value))
		b.WriteByte('"')
	}
	return b.String()
}

// StartTag returns an opening tag.
func StartTag(name string, attrs Attrs) string {
	return "<" + name + attrs.String() + ">"
}

// EndTag returns a closing tag.
func EndTag(name string) string {
	return "</" + name + ">"
}

// EmptyTag returns a self-closing tag such as img.
func EmptyTag(name string, attrs Attrs) string {
	return "<" + name + attrs.String() + " />"
}

// Tag wraps contents, which must already be safe HTML.
func Tag(name, contents string, attrs Attrs) string {
	return StartTag(name, attrs) + contents + EndTag(name)
}

// Link returns an anchor; text is escaped.
func Link(url, text string, attrs Attrs) string {
	return Tag("a", html.EscapeString(text), append(Attrs{{Name: "href", Value: url}}, attrs...))
}

// Escape escapes text for use as element content.
func Escape(text string) string {
	return html.EscapeString(text)
}
