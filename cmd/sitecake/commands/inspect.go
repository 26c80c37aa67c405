package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/sitecake/internal/htmldoc"
	"git.home.luguber.info/inful/sitecake/internal/logfields"
	"git.home.luguber.info/inful/sitecake/internal/page"
)

// ContainersCmd implements the 'containers' command.
type ContainersCmd struct {
	Page string `arg:"" help:"Page name relative to the site root"`
	All  bool   `short:"a" help:"Include temporary container names"`
}

func (c *ContainersCmd) Run(g *Global, root *CLI) error {
	s, err := openSession(g, root)
	if err != nil {
		return err
	}
	p, err := s.load(context.Background(), c.Page)
	if err != nil {
		return err
	}

	names := p.Containers()
	if c.All {
		names = p.EditableContainers()
	}
	for _, name := range names {
		_, _ = fmt.Fprintln(g.Out, name)
	}
	return nil
}

// ResourcesCmd implements the 'resources' command.
type ResourcesCmd struct {
	Pages []string `arg:"" optional:"" help:"Pages to scan (default: every page)"`
}

func (r *ResourcesCmd) Run(g *Global, root *CLI) error {
	ctx := context.Background()
	s, err := openSession(g, root)
	if err != nil {
		return err
	}
	names, err := s.pageNames(ctx, r.Pages)
	if err != nil {
		return err
	}

	for _, name := range names {
		p, err := s.load(ctx, name)
		if err != nil {
			return err
		}
		urls := p.ResourceURLs()
		g.Logger.Debug("Scanned page for resources", logfields.Page(name), logfields.Count(len(urls)))
		for _, u := range urls {
			if len(names) > 1 {
				_, _ = fmt.Fprintf(g.Out, "%s\t%s\n", name, u)
				continue
			}
			_, _ = fmt.Fprintln(g.Out, u)
		}
	}
	return nil
}

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	Page       string `arg:"" help:"Page name relative to the site root"`
	EntryPoint string `name:"entry-point" help:"Override site.entry_point"`
}

func (r *RenderCmd) Run(g *Global, root *CLI) error {
	s, err := openSession(g, root)
	if err != nil {
		return err
	}
	if r.EntryPoint != "" {
		s.cfg.Site.EntryPoint = r.EntryPoint
	}
	p, err := s.load(context.Background(), r.Page)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(g.Out, p.Render())
	return nil
}

// NavCmd implements the 'nav' command.
type NavCmd struct {
	Page     string `arg:"" help:"Page name relative to the site root"`
	Selector string `short:"s" help:"CSS selector of the navigation links" default:"nav a"`
	Set      string `help:"Replace the inner HTML of the elements matched by --container with this markup"`
	Target   string `name:"container" help:"CSS selector of the navigation container used with --set" default:"nav"`
}

func (n *NavCmd) Run(g *Global, root *CLI) error {
	for _, sel := range []string{n.Selector, n.Target} {
		if _, err := htmldoc.CompileSelector(sel); err != nil {
			return err
		}
	}
	s, err := openSession(g, root)
	if err != nil {
		return err
	}
	ctx := context.Background()

	if n.Set != "" {
		err := s.edit(ctx, n.Page, func(p *page.Page) (bool, error) {
			count := p.SetNav(n.Target, n.Set)
			_, _ = fmt.Fprintf(g.Out, "replaced %d navigation element(s)\n", count)
			return count > 0, nil
		})
		if err != nil {
			return err
		}
	}

	p, err := s.load(ctx, n.Page)
	if err != nil {
		return err
	}
	for _, item := range p.NavURLs(n.Selector) {
		_, _ = fmt.Fprintf(g.Out, "%s\t%s\n", item.URL, item.Text)
	}
	return nil
}
