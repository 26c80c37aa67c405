// Package page turns a hand-authored HTML page into an editable document.
//
// A Page owns one parsed document and exposes the operations the CMS needs:
// locating content containers (elements classed sc-content or
// sc-content-<name>), listing and rewriting content-addressed asset URLs,
// maintaining description, no-index and page-id meta tags, and producing the
// served version of the page with internal links routed through the entry
// point.
//
// A Page is not safe for concurrent use. Each request parses its own Page.
package page

import (
	"log/slog"
	"time"

	"git.home.luguber.info/inful/sitecake/internal/htmldoc"
	"git.home.luguber.info/inful/sitecake/internal/metrics"
	"git.home.luguber.info/inful/sitecake/internal/navlink"
	"git.home.luguber.info/inful/sitecake/internal/uid"
)

// Page is a parsed page and the operations on it.
type Page struct {
	doc *htmldoc.Document

	name         string
	containerIDs uid.Generator
	pageIDs      uid.Generator
	entryPoint   string
	links        navlink.Classifier
	logger       *slog.Logger
	recorder     metrics.Recorder

	// containers caches Containers(); nil means stale.
	containers []string
}

// Option configures a Page.
type Option func(*Page)

// WithName sets the page name used in log records.
func WithName(name string) Option {
	return func(p *Page) { p.name = name }
}

// WithIDGenerator sets the generator for both temporary container names and
// page ids.
func WithIDGenerator(g uid.Generator) Option {
	return func(p *Page) {
		p.containerIDs = g
		p.pageIDs = g
	}
}

// WithContainerIDGenerator sets the generator for temporary container names.
func WithContainerIDGenerator(g uid.Generator) Option {
	return func(p *Page) { p.containerIDs = g }
}

// WithEntryPoint sets the script internal links are routed through on Render.
func WithEntryPoint(entry string) Option {
	return func(p *Page) {
		if entry != "" {
			p.entryPoint = entry
		}
	}
}

// WithLinkClassifier sets the predicate deciding which links Render leaves alone.
func WithLinkClassifier(c navlink.Classifier) Option {
	return func(p *Page) { p.links = c }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Page) { p.logger = l }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(p *Page) { p.recorder = r }
}

// New parses html into a Page.
func New(html string, opts ...Option) (*Page, error) {
	p := &Page{
		containerIDs: uid.NewTimeGenerator(),
		pageIDs:      uid.UUIDGenerator{},
		entryPoint:   DefaultEntryPoint,
		links:        navlink.HostClassifier{},
		logger:       slog.Default(),
		recorder:     metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(p)
	}

	start := time.Now()
	doc, err := htmldoc.Parse(html)
	if err != nil {
		p.recorder.IncOperation("parse", metrics.ResultFailed)
		return nil, err
	}
	p.recorder.ObserveParseDuration(time.Since(start))
	p.recorder.IncOperation("parse", metrics.ResultSuccess)
	p.doc = doc
	return p, nil
}

// String returns the stored version of the page.
func (p *Page) String() string {
	return p.doc.String()
}

// AppendCodeToHead appends raw markup, e.g. editor scripts, to <head>.
func (p *Page) AppendCodeToHead(code string) {
	p.doc.AppendToHead(code)
	p.changed("append_code_to_head")
}

// changed drops cached views after a mutation.
func (p *Page) changed(op string) {
	p.containers = nil
	p.recorder.IncOperation(op, metrics.ResultSuccess)
}
