package page

import (
	"golang.org/x/net/html"

	"git.home.luguber.info/inful/sitecake/internal/htmldoc"
	"git.home.luguber.info/inful/sitecake/internal/logfields"
)

const (
	descriptionSelector = `meta[name="description"]`
	noIndexSelector     = `meta[name="robots"][content="noindex"]`
	appMarkerSelector   = `meta[name="application-name"][content="sitecake"]`

	pageIDAttr = "data-pageid"
)

func meta(name, content string) *html.Node {
	return htmldoc.NewElement("meta",
		html.Attribute{Key: "name", Val: name},
		html.Attribute{Key: "content", Val: content},
	)
}

func (p *Page) removeAll(selector string) int {
	nodes := p.doc.Query(selector, nil)
	for _, n := range nodes {
		htmldoc.Remove(n)
	}
	return len(nodes)
}

// PageDescription returns the content of the description meta tag, or "".
func (p *Page) PageDescription() string {
	nodes := p.doc.Query(descriptionSelector, nil)
	if len(nodes) == 0 {
		return ""
	}
	return htmldoc.AttrOr(nodes[0], "content", "")
}

// SetPageDescription creates, updates or, for an empty text, removes the
// description meta tag.
func (p *Page) SetPageDescription(text string) {
	defer p.changed("set_page_description")

	if text == "" {
		p.removeAll(descriptionSelector)
		return
	}

	nodes := p.doc.Query(descriptionSelector, nil)
	if len(nodes) == 0 {
		p.doc.PrependNodeToHead(meta("description", text))
		return
	}
	for _, n := range nodes {
		htmldoc.SetAttr(n, "content", text)
	}
}

// AddRobotsNoIndex inserts <meta name="robots" content="noindex"> unless present.
func (p *Page) AddRobotsNoIndex() {
	if p.IsRobotsNoIndex() {
		return
	}
	p.doc.PrependNodeToHead(meta("robots", "noindex"))
	p.changed("add_robots_noindex")
}

// RemoveRobotsNoIndex deletes every no-index marker.
func (p *Page) RemoveRobotsNoIndex() {
	if p.removeAll(noIndexSelector) > 0 {
		p.changed("remove_robots_noindex")
	}
}

// IsRobotsNoIndex reports whether the page carries a no-index marker.
func (p *Page) IsRobotsNoIndex() bool {
	return len(p.doc.Query(noIndexSelector, nil)) > 0
}

// AddMetadata inserts the application marker meta tag unless present.
func (p *Page) AddMetadata() {
	if len(p.doc.Query(appMarkerSelector, nil)) > 0 {
		return
	}
	p.doc.PrependNodeToHead(meta("application-name", "sitecake"))
	p.changed("add_metadata")
}

// RemoveMetadata deletes the application marker, and with it the page id.
func (p *Page) RemoveMetadata() {
	if p.removeAll(appMarkerSelector) > 0 {
		p.changed("remove_metadata")
	}
}

// EnsurePageID stamps a freshly generated id on the application marker,
// creating the marker if needed. An existing id is always replaced; check
// PageID first to keep a stable one.
func (p *Page) EnsurePageID() string {
	p.AddMetadata()
	id := p.pageIDs.NewID()
	for _, n := range p.doc.Query(appMarkerSelector, nil) {
		htmldoc.SetAttr(n, pageIDAttr, id)
	}
	p.changed("ensure_page_id")
	p.logger.Debug("Assigned page id", logfields.Page(p.name), logfields.PageID(id))
	return id
}

// PageID returns the page id and whether one is set.
func (p *Page) PageID() (string, bool) {
	nodes := p.doc.Query(appMarkerSelector, nil)
	if len(nodes) == 0 {
		return "", false
	}
	return htmldoc.Attr(nodes[0], pageIDAttr)
}

// RemovePageID strips the id attribute and keeps the application marker.
func (p *Page) RemovePageID() {
	for _, n := range p.doc.Query(appMarkerSelector, nil) {
		htmldoc.RemoveAttr(n, pageIDAttr)
	}
	p.changed("remove_page_id")
}
