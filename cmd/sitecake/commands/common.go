package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/sitecake/internal/config"
	"git.home.luguber.info/inful/sitecake/internal/logfields"
	"git.home.luguber.info/inful/sitecake/internal/metrics"
	"git.home.luguber.info/inful/sitecake/internal/navlink"
	"git.home.luguber.info/inful/sitecake/internal/page"
	"git.home.luguber.info/inful/sitecake/internal/storage"
	"git.home.luguber.info/inful/sitecake/internal/uid"
)

// Global is the state shared by every subcommand.
type Global struct {
	Logger   *slog.Logger
	Out      io.Writer
	Registry *prometheus.Registry
	Recorder metrics.Recorder
}

// NewGlobal returns a Global writing results to out with a fresh metrics registry.
func NewGlobal(out io.Writer) *Global {
	reg := prometheus.NewRegistry()
	return &Global{
		Logger:   slog.Default(),
		Out:      out,
		Registry: reg,
		Recorder: metrics.NewPrometheusRecorder(reg),
	}
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config      string           `short:"c" help:"Configuration file path" default:"sitecake.yaml"`
	Root        string           `short:"r" help:"Site root directory (overrides site.root)"`
	Verbose     bool             `short:"v" help:"Enable verbose logging"`
	MetricsDump bool             `name:"metrics-dump" help:"Print collected metrics in Prometheus text format after the command"`
	Version     kong.VersionFlag `name:"version" help:"Show version and exit"`

	Init       InitCmd       `cmd:"" help:"Initialize a new configuration file"`
	Containers ContainersCmd `cmd:"" help:"List the content containers of a page"`
	Resources  ResourcesCmd  `cmd:"" help:"List the uploaded resources referenced by pages"`
	Render     RenderCmd     `cmd:"" help:"Print the served version of a page"`
	Prefix     PrefixCmd     `cmd:"" help:"Prefix resource URLs of a page"`
	Unprefix   UnprefixCmd   `cmd:"" help:"Remove a prefix from resource URLs of a page"`
	Describe   DescribeCmd   `cmd:"" help:"Show or change the meta description of a page"`
	Noindex    NoindexCmd    `cmd:"" help:"Show or change the robots no-index marker of a page"`
	Pageid     PageidCmd     `cmd:"" name:"pageid" help:"Show, assign or remove the page id"`
	Normalize  NormalizeCmd  `cmd:"" help:"Give unnamed containers temporary names"`
	Cleanup    CleanupCmd    `cmd:"" help:"Remove temporary container names"`
	Nav        NavCmd        `cmd:"" help:"List or replace navigation links"`
	SetContent SetContentCmd `cmd:"" name:"set-content" help:"Replace the content of a named container"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// LoadConfig loads the configuration file, falling back to defaults when the
// default file is absent, and applies the --root override.
func LoadConfig(root *CLI) (*config.Config, error) {
	var cfg *config.Config
	if _, err := os.Stat(root.Config); os.IsNotExist(err) && root.Config == config.DefaultPath {
		cfg = config.Default()
	} else {
		loaded, err := config.Load(root.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if root.Root != "" {
		cfg.Site.Root = root.Root
	}
	return cfg, nil
}

// ConfigureLogger replaces the logger from the configured level and format
// unless --verbose already asked for debug output.
func ConfigureLogger(g *Global, root *CLI, cfg *config.Config) {
	if root.Verbose {
		g.Logger = slog.Default()
		return
	}
	var level slog.Level
	switch cfg.Logging.Level {
	case config.LogLevelDebug:
		level = slog.LevelDebug
	case config.LogLevelWarn:
		level = slog.LevelWarn
	case config.LogLevelError:
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if cfg.Logging.Format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	g.Logger = slog.New(handler)
}

// session bundles what a page command needs after setup.
type session struct {
	cfg   *config.Config
	store storage.PageStore
	g     *Global
}

func openSession(g *Global, root *CLI) (*session, error) {
	cfg, err := LoadConfig(root)
	if err != nil {
		return nil, err
	}
	ConfigureLogger(g, root, cfg)

	store, err := storage.NewFSStore(cfg.Site.Root)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, store: store, g: g}, nil
}

// options returns the page options derived from configuration.
func (s *session) options(name string) []page.Option {
	opts := []page.Option{
		page.WithName(name),
		page.WithEntryPoint(s.cfg.Site.EntryPoint),
		page.WithContainerIDGenerator(uid.ForKind(string(s.cfg.IDs.Temporary))),
		page.WithLogger(s.g.Logger),
		page.WithRecorder(s.g.Recorder),
	}
	if host := navlink.HostOf(s.cfg.Site.BaseURL); host != "" {
		opts = append(opts, page.WithLinkClassifier(navlink.HostClassifier{Host: host}))
	}
	return opts
}

// load reads and parses a stored page.
func (s *session) load(ctx context.Context, name string) (*page.Page, error) {
	content, err := s.store.Read(ctx, name)
	if err != nil {
		return nil, err
	}
	return page.New(content, s.options(name)...)
}

// edit loads a page under its lock, applies fn and writes the page back when
// fn reports a change.
func (s *session) edit(ctx context.Context, name string, fn func(p *page.Page) (bool, error)) error {
	unlock, err := s.store.Lock(ctx, name)
	if err != nil {
		return err
	}
	defer func() {
		if uerr := unlock(); uerr != nil {
			s.g.Logger.Warn("Failed to release page lock", logfields.Page(name), logfields.Error(uerr))
		}
	}()

	p, err := s.load(ctx, name)
	if err != nil {
		return err
	}
	changed, err := fn(p)
	if err != nil || !changed {
		return err
	}
	if err := s.store.Write(ctx, name, p.String()); err != nil {
		return err
	}
	s.g.Logger.Info("Page saved", logfields.Page(name))
	return nil
}

// pageNames returns names, or every stored page when names is empty.
func (s *session) pageNames(ctx context.Context, names []string) ([]string, error) {
	if len(names) > 0 {
		return names, nil
	}
	return s.store.List(ctx)
}
