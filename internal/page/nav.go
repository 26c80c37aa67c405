package page

import (
	"net/url"

	"git.home.luguber.info/inful/sitecake/internal/htmldoc"
	"git.home.luguber.info/inful/sitecake/internal/metrics"
	"git.home.luguber.info/inful/sitecake/internal/navlink"
)

// DefaultEntryPoint is the server script that routes rendered page links.
const DefaultEntryPoint = "sitecake.php"

// NavItem is a link found in a navigation element.
type NavItem struct {
	URL  string
	Text string
}

// Render returns the served version of the page: internal anchor hrefs are
// routed through the entry point as <entry>?page=<href>. The page itself is not
// modified, so String keeps returning the stored version.
func (p *Page) Render() string {
	out := p.doc.Clone()
	count := rewriteInternalLinks(out, p.entryPoint, p.links)
	p.recorder.IncOperation("render", metrics.ResultSuccess)
	p.recorder.AddRewrittenURLs("render", count)
	return out.String()
}

func rewriteInternalLinks(doc *htmldoc.Document, entryPoint string, links navlink.Classifier) int {
	count := 0
	for _, a := range doc.Query("a", nil) {
		href, ok := htmldoc.Attr(a, "href")
		if !ok || links.IsExternal(href) {
			continue
		}
		htmldoc.SetAttr(a, "href", entryPoint+"?page="+url.QueryEscape(href))
		count++
	}
	return count
}

// NavURLs returns href and text of the elements matched by selector. Each href
// is listed once at its first position; a later duplicate replaces the text.
func (p *Page) NavURLs(selector string) []NavItem {
	var items []NavItem
	index := map[string]int{}
	for _, n := range p.doc.Query(selector, nil) {
		href := htmldoc.AttrOr(n, "href", "")
		text := htmldoc.Text(n)
		if i, ok := index[href]; ok {
			items[i].Text = text
			continue
		}
		index[href] = len(items)
		items = append(items, NavItem{URL: href, Text: text})
	}
	return items
}

// SetNav replaces the inner HTML of every element matched by selector.
func (p *Page) SetNav(selector, content string) int {
	nodes := p.doc.Query(selector, nil)
	for _, n := range nodes {
		htmldoc.SetHTML(n, content)
	}
	p.changed("set_nav")
	return len(nodes)
}
