package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"git.home.luguber.info/inful/sitecake/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecake/internal/page"
)

// PrefixCmd implements the 'prefix' command.
type PrefixCmd struct {
	Page   string `arg:"" help:"Page name relative to the site root"`
	Prefix string `short:"p" help:"Prefix to apply (default: resources.prefix)"`
}

func (c *PrefixCmd) Run(g *Global, root *CLI) error {
	return rewriteCommand(g, root, c.Page, c.Prefix, "prefixed", (*page.Page).PrefixResourceURLs)
}

// UnprefixCmd implements the 'unprefix' command.
type UnprefixCmd struct {
	Page   string `arg:"" help:"Page name relative to the site root"`
	Prefix string `short:"p" help:"Prefix to remove (default: resources.prefix)"`
}

func (c *UnprefixCmd) Run(g *Global, root *CLI) error {
	return rewriteCommand(g, root, c.Page, c.Prefix, "unprefixed", (*page.Page).UnprefixResourceURLs)
}

func rewriteCommand(g *Global, root *CLI, name, prefix, verb string, rewrite func(*page.Page, string) int) error {
	s, err := openSession(g, root)
	if err != nil {
		return err
	}
	if prefix == "" {
		prefix = s.cfg.Resources.Prefix
	}
	if prefix == "" {
		return errors.ValidationError("no prefix given and resources.prefix is not configured").Build()
	}

	return s.edit(context.Background(), name, func(p *page.Page) (bool, error) {
		n := rewrite(p, prefix)
		_, _ = fmt.Fprintf(g.Out, "%s %d resource URL(s)\n", verb, n)
		return n > 0, nil
	})
}

// NormalizeCmd implements the 'normalize' command.
type NormalizeCmd struct {
	Page string `arg:"" help:"Page name relative to the site root"`
}

func (c *NormalizeCmd) Run(g *Global, root *CLI) error {
	return countCommand(g, root, c.Page, "named %d container(s)\n", (*page.Page).NormalizeContainerNames)
}

// CleanupCmd implements the 'cleanup' command.
type CleanupCmd struct {
	Page string `arg:"" help:"Page name relative to the site root"`
}

func (c *CleanupCmd) Run(g *Global, root *CLI) error {
	return countCommand(g, root, c.Page, "removed %d temporary name(s)\n", (*page.Page).CleanupContainerNames)
}

func countCommand(g *Global, root *CLI, name, format string, op func(*page.Page) int) error {
	s, err := openSession(g, root)
	if err != nil {
		return err
	}
	return s.edit(context.Background(), name, func(p *page.Page) (bool, error) {
		n := op(p)
		_, _ = fmt.Fprintf(g.Out, format, n)
		return n > 0, nil
	})
}

// SetContentCmd implements the 'set-content' command.
type SetContentCmd struct {
	Page      string `arg:"" help:"Page name relative to the site root"`
	Container string `arg:"" help:"Container name (named or temporary)"`
	HTML      string `arg:"" help:"Replacement markup, or - to read it from stdin"`
}

func (c *SetContentCmd) Run(g *Global, root *CLI) error {
	content := c.HTML
	if content == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "read content from stdin").Build()
		}
		content = string(data)
	}

	s, err := openSession(g, root)
	if err != nil {
		return err
	}
	return s.edit(context.Background(), c.Page, func(p *page.Page) (bool, error) {
		if p.SetContainerContent(c.Container, content) == 0 {
			return false, errors.NotFoundError("container not found").
				WithContext("page", c.Page).
				WithContext("container", c.Container).
				Build()
		}
		_, _ = fmt.Fprintf(g.Out, "updated container %s\n", c.Container)
		return true, nil
	})
}
