package page

import (
	"git.home.luguber.info/inful/sitecake/internal/htmldoc"
	"git.home.luguber.info/inful/sitecake/internal/resourceurl"
)

// ContainerResourceURLs scans the serialized markup of c for asset URLs.
//
// Scanning the markup rather than walking attributes also finds references in
// inline styles, srcset lists and data attributes.
func (p *Page) ContainerResourceURLs(c Container) []string {
	return resourceurl.Find(htmldoc.OuterHTML(c.Node))
}

// ResourceURLs returns the asset URLs of every container in document order.
// Duplicates are kept.
func (p *Page) ResourceURLs() []string {
	var urls []string
	for _, c := range p.ContainerNodes() {
		urls = append(urls, p.ContainerResourceURLs(c)...)
	}
	p.recorder.AddResourceURLs(len(urls))
	return urls
}
