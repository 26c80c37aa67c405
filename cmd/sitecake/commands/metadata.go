package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/sitecake/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecake/internal/page"
)

// DescribeCmd implements the 'describe' command.
type DescribeCmd struct {
	Page  string `arg:"" help:"Page name relative to the site root"`
	Set   string `help:"New description"`
	Clear bool   `help:"Remove the description"`
}

func (d *DescribeCmd) Run(g *Global, root *CLI) error {
	if d.Set != "" && d.Clear {
		return errors.ValidationError("--set and --clear are mutually exclusive").Build()
	}
	s, err := openSession(g, root)
	if err != nil {
		return err
	}
	ctx := context.Background()

	if d.Set == "" && !d.Clear {
		p, err := s.load(ctx, d.Page)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(g.Out, p.PageDescription())
		return nil
	}

	return s.edit(ctx, d.Page, func(p *page.Page) (bool, error) {
		before := p.PageDescription()
		p.SetPageDescription(d.Set)
		_, _ = fmt.Fprintln(g.Out, p.PageDescription())
		return before != p.PageDescription(), nil
	})
}

// NoindexCmd implements the 'noindex' command.
type NoindexCmd struct {
	Page  string `arg:"" help:"Page name relative to the site root"`
	State string `arg:"" optional:"" enum:"on,off,status" default:"status" help:"on, off or status"`
}

func (n *NoindexCmd) Run(g *Global, root *CLI) error {
	s, err := openSession(g, root)
	if err != nil {
		return err
	}
	ctx := context.Background()

	if n.State == "status" {
		p, err := s.load(ctx, n.Page)
		if err != nil {
			return err
		}
		printNoindex(g, p)
		return nil
	}

	return s.edit(ctx, n.Page, func(p *page.Page) (bool, error) {
		was := p.IsRobotsNoIndex()
		if n.State == "on" {
			p.AddRobotsNoIndex()
		} else {
			p.RemoveRobotsNoIndex()
		}
		printNoindex(g, p)
		return was != p.IsRobotsNoIndex(), nil
	})
}

func printNoindex(g *Global, p *page.Page) {
	state := "off"
	if p.IsRobotsNoIndex() {
		state = "on"
	}
	_, _ = fmt.Fprintf(g.Out, "noindex: %s\n", state)
}

// PageidCmd implements the 'pageid' command.
type PageidCmd struct {
	Page   string `arg:"" help:"Page name relative to the site root"`
	Ensure bool   `help:"Assign a fresh page id"`
	Remove bool   `help:"Remove the page id"`
}

func (c *PageidCmd) Run(g *Global, root *CLI) error {
	if c.Ensure && c.Remove {
		return errors.ValidationError("--ensure and --remove are mutually exclusive").Build()
	}
	s, err := openSession(g, root)
	if err != nil {
		return err
	}
	ctx := context.Background()

	switch {
	case c.Ensure:
		return s.edit(ctx, c.Page, func(p *page.Page) (bool, error) {
			_, _ = fmt.Fprintln(g.Out, p.EnsurePageID())
			return true, nil
		})
	case c.Remove:
		return s.edit(ctx, c.Page, func(p *page.Page) (bool, error) {
			_, had := p.PageID()
			p.RemovePageID()
			return had, nil
		})
	}

	p, err := s.load(ctx, c.Page)
	if err != nil {
		return err
	}
	id, ok := p.PageID()
	if !ok {
		return errors.NotFoundError("page has no id").WithContext("page", c.Page).Build()
	}
	_, _ = fmt.Fprintln(g.Out, id)
	return nil
}
