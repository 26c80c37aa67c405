package page

import (
	"git.home.luguber.info/inful/sitecake/internal/htmldoc"
	"git.home.luguber.info/inful/sitecake/internal/logfields"
	"git.home.luguber.info/inful/sitecake/internal/metrics"
	"git.home.luguber.info/inful/sitecake/internal/resourceurl"
)

const resourceElements = "a, img"

var resourceAttrs = []string{"src", "href", "srcset"}

// PrefixResourceURLs prepends prefix to every asset URL in the src, href and
// srcset attributes of anchors and images. It returns the number of attributes
// changed. Other URLs are left untouched.
func (p *Page) PrefixResourceURLs(prefix string) int {
	add := func(u string) string { return resourceurl.AddPrefix(u, prefix) }
	return p.rewriteResourceURLs("prefix_resource_urls", prefix, add, func(set string) string {
		return resourceurl.RewriteSrcset(set, add)
	})
}

// UnprefixResourceURLs removes a leading prefix from asset URLs. Values without
// the prefix are left as they are, so the call is safe to repeat.
func (p *Page) UnprefixResourceURLs(prefix string) int {
	return p.rewriteResourceURLs("unprefix_resource_urls", prefix,
		func(u string) string { return resourceurl.RemovePrefix(u, prefix) },
		func(set string) string { return resourceurl.UnprefixSrcset(set, prefix) },
	)
}

func (p *Page) rewriteResourceURLs(op, prefix string, rewrite, rewriteSrcset func(string) string) int {
	if prefix == "" {
		p.recorder.IncOperation(op, metrics.ResultNoop)
		return 0
	}

	count := 0
	for _, n := range p.doc.Query(resourceElements, nil) {
		for _, attr := range resourceAttrs {
			val, ok := htmldoc.Attr(n, attr)
			if !ok {
				continue
			}
			var next string
			if attr == "srcset" {
				next = rewriteSrcset(val)
			} else {
				next = rewrite(val)
			}
			if next != val {
				htmldoc.SetAttr(n, attr, next)
				count++
			}
		}
	}

	p.changed(op)
	p.recorder.AddRewrittenURLs(op, count)
	p.logger.Debug("Rewrote resource URLs",
		logfields.Page(p.name), logfields.Operation(op), logfields.Prefix(prefix), logfields.Count(count))
	return count
}
