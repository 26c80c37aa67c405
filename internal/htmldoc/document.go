// Package htmldoc provides a mutable HTML document model for hand-authored pages.
//
// A Document is parsed with golang.org/x/net/html, which repairs malformed markup
// the way browsers do (implicit head/body, auto-closed tags), and queried through
// goquery selectors. All mutations apply to the owning Document in place; nothing
// is re-parsed implicitly.
package htmldoc

import (
	"bytes"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/sitecake/internal/foundation/errors"
)

// Document is a parsed HTML page.
type Document struct {
	doc *goquery.Document
}

// Parse parses raw HTML into a Document.
//
// The parser is lenient: arbitrary real-world markup produces a tree. An error is
// only returned when the input cannot be read.
func Parse(content string) (*Document, error) {
	return ParseReader(strings.NewReader(content))
}

// ParseReader parses HTML from r into a Document.
func ParseReader(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "failed to parse HTML").Build()
	}
	return &Document{doc: goquery.NewDocumentFromNode(root)}, nil
}

// Root returns the document node.
func (d *Document) Root() *html.Node {
	return d.doc.Nodes[0]
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	return &Document{doc: goquery.CloneDocument(d.doc)}
}

// Query returns the elements matching selector below root, in document order.
// A nil root searches the whole document. Invalid selectors match nothing.
func (d *Document) Query(selector string, root *html.Node) []*html.Node {
	m, err := CompileSelector(selector)
	if err != nil {
		return nil
	}
	if root == nil {
		return d.doc.FindMatcher(m).Nodes
	}
	return selection(root).FindMatcher(m).Nodes
}

// CompileSelector parses a CSS selector group, reporting syntax errors.
func CompileSelector(selector string) (goquery.Matcher, error) {
	m, err := cascadia.Compile(selector)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "invalid selector").
			WithContext("selector", selector).
			Build()
	}
	return m, nil
}

// Head returns the <head> element, or nil if the tree has none.
func (d *Document) Head() *html.Node {
	nodes := d.doc.FindMatcher(goquery.Single("head")).Nodes
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

// Attr returns the value of the named attribute and whether it is present.
func Attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// AttrOr returns the named attribute or def when absent.
func AttrOr(n *html.Node, name, def string) string {
	if v, ok := Attr(n, name); ok {
		return v
	}
	return def
}

// SetAttr sets the named attribute, creating it when absent.
func SetAttr(n *html.Node, name, value string) {
	selection(n).SetAttr(name, value)
}

// RemoveAttr removes the named attribute; absent attributes are ignored.
func RemoveAttr(n *html.Node, name string) {
	selection(n).RemoveAttr(name)
}

// Classes returns the class tokens of n in attribute order.
func Classes(n *html.Node) []string {
	return strings.Fields(AttrOr(n, "class", ""))
}

// AddClass appends a class token unless it is already present.
func AddClass(n *html.Node, class string) {
	selection(n).AddClass(class)
}

// RemoveClass removes every occurrence of a class token.
func RemoveClass(n *html.Node, class string) {
	selection(n).RemoveClass(class)
}

// HTML returns the inner HTML of n.
func HTML(n *html.Node) string {
	out, err := selection(n).Html()
	if err != nil {
		return ""
	}
	return out
}

// OuterHTML returns the serialized markup of n including n itself.
func OuterHTML(n *html.Node) string {
	out, err := goquery.OuterHtml(selection(n))
	if err != nil {
		return ""
	}
	return out
}

// SetHTML replaces the children of n with the parsed fragment.
// The fragment is parsed in the context of n.
func SetHTML(n *html.Node, fragment string) {
	selection(n).SetHtml(fragment)
}

// Text returns the combined text content of n.
func Text(n *html.Node) string {
	return selection(n).Text()
}

// NewElement creates a detached element node.
func NewElement(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     attrs,
	}
}

// Remove detaches n from its parent.
func Remove(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// PrependToHead inserts the fragment at the start of <head>.
func (d *Document) PrependToHead(fragment string) {
	if head := d.Head(); head != nil {
		selection(head).PrependHtml(fragment)
	}
}

// AppendToHead inserts the fragment at the end of <head>.
func (d *Document) AppendToHead(fragment string) {
	if head := d.Head(); head != nil {
		selection(head).AppendHtml(fragment)
	}
}

// PrependNodeToHead inserts a detached node as the first child of <head>.
func (d *Document) PrependNodeToHead(n *html.Node) {
	head := d.Head()
	if head == nil {
		return
	}
	head.InsertBefore(n, head.FirstChild)
}

// Render writes the serialized document to w.
func (d *Document) Render(w io.Writer) error {
	if err := html.Render(w, d.Root()); err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to render HTML").Build()
	}
	return nil
}

// String serializes the document.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

func selection(n *html.Node) *goquery.Selection {
	return goquery.NewDocumentFromNode(n).Selection
}
