package page

import (
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/sitecake/internal/htmldoc"
	"git.home.luguber.info/inful/sitecake/internal/logfields"
)

const (
	containerClass  = "sc-content"
	namedPrefix     = containerClass + "-"
	temporaryMarker = "_cnt_"
	temporaryPrefix = namedPrefix + temporaryMarker
)

// Kind classifies a content container by its class tokens.
type Kind int

const (
	// KindUntagged containers carry only the bare sc-content token.
	KindUntagged Kind = iota
	// KindNamed containers carry an sc-content-<name> token.
	KindNamed
	// KindTemporary containers were named for the current edit session.
	KindTemporary
)

func (k Kind) String() string {
	switch k {
	case KindNamed:
		return "named"
	case KindTemporary:
		return "temporary"
	default:
		return "untagged"
	}
}

// Container is a view of an editable region. It is only valid until the next
// mutation of the owning Page.
type Container struct {
	Node *html.Node
	Kind Kind
	// Name is the part after "sc-content-"; empty for untagged containers.
	Name string
}

// classifyContainer inspects class tokens. Only whole tokens count, so
// "my-sc-content-box" is not a container while "sc-content-box" is.
func classifyContainer(classes []string) (c Container, ok bool) {
	var temporary string
	for _, token := range classes {
		switch {
		case token == containerClass:
			ok = true
		case strings.HasPrefix(token, temporaryPrefix):
			ok = true
			if temporary == "" {
				temporary = strings.TrimPrefix(token, namedPrefix)
			}
		case strings.HasPrefix(token, namedPrefix) && len(token) > len(namedPrefix):
			if c.Kind != KindNamed {
				c.Kind = KindNamed
				c.Name = strings.TrimPrefix(token, namedPrefix)
			}
			ok = true
		}
	}
	if c.Kind != KindNamed && temporary != "" {
		c.Kind = KindTemporary
		c.Name = temporary
	}
	return c, ok
}

func hasToken(classes []string, token string) bool {
	for _, c := range classes {
		if c == token {
			return true
		}
	}
	return false
}

// ContainerNodes returns every content container in document order.
func (p *Page) ContainerNodes() []Container {
	var out []Container
	for _, n := range p.doc.Query(`[class*="`+containerClass+`"]`, nil) {
		c, ok := classifyContainer(htmldoc.Classes(n))
		if !ok {
			continue
		}
		c.Node = n
		out = append(out, c)
	}
	return out
}

// Containers returns the names of named containers in document order.
// Repeated names are kept. The result is cached until the page changes.
func (p *Page) Containers() []string {
	if p.containers == nil {
		names := []string{}
		for _, c := range p.ContainerNodes() {
			if c.Kind == KindNamed {
				names = append(names, c.Name)
			}
		}
		p.containers = names
	}
	return append([]string(nil), p.containers...)
}

// EditableContainers returns the names of named and temporary containers, i.e.
// every container addressable through SetContainerContent.
func (p *Page) EditableContainers() []string {
	var names []string
	for _, c := range p.ContainerNodes() {
		if c.Kind != KindUntagged {
			names = append(names, c.Name)
		}
	}
	return names
}

// NormalizeContainerNames gives every container lacking a named token a fresh
// sc-content-_cnt_<id> class. Each call adds another token, so call it once
// per edit session and undo it with CleanupContainerNames.
func (p *Page) NormalizeContainerNames() int {
	count := 0
	for _, c := range p.ContainerNodes() {
		classes := htmldoc.Classes(c.Node)
		if c.Kind == KindNamed || !hasToken(classes, containerClass) {
			continue
		}
		htmldoc.AddClass(c.Node, temporaryPrefix+p.containerIDs.NewID())
		count++
	}
	p.changed("normalize_container_names")
	p.logger.Debug("Normalized container names", logfields.Page(p.name), logfields.Count(count))
	return count
}

// CleanupContainerNames removes the first temporary name from every container.
func (p *Page) CleanupContainerNames() int {
	count := 0
	for _, c := range p.ContainerNodes() {
		for _, token := range htmldoc.Classes(c.Node) {
			if strings.HasPrefix(token, temporaryPrefix) {
				htmldoc.RemoveClass(c.Node, token)
				count++
				break
			}
		}
	}
	p.changed("cleanup_container_names")
	p.logger.Debug("Cleaned up container names", logfields.Page(p.name), logfields.Count(count))
	return count
}

// SetContainerContent replaces the inner HTML of every container named name.
// Temporary names are accepted too.
func (p *Page) SetContainerContent(name, content string) int {
	count := 0
	for _, c := range p.ContainerNodes() {
		if c.Kind == KindUntagged || !hasToken(htmldoc.Classes(c.Node), namedPrefix+name) {
			continue
		}
		htmldoc.SetHTML(c.Node, content)
		count++
	}
	p.changed("set_container_content")
	p.logger.Debug("Set container content", logfields.Page(p.name), logfields.Container(name), logfields.Count(count))
	return count
}
