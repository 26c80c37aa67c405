package metrics

import (
	"io"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once          sync.Once
	parseDuration prom.Histogram
	operations    *prom.CounterVec
	resourceURLs  prom.Counter
	rewrittenURLs *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.parseDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "sitecake",
			Name:      "page_parse_duration_seconds",
			Help:      "Duration of HTML page parsing",
			Buckets:   prom.DefBuckets,
		})
		pr.operations = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "sitecake",
			Name:      "page_operations_total",
			Help:      "Page operations by name and result",
		}, []string{"operation", "result"})
		pr.resourceURLs = prom.NewCounter(prom.CounterOpts{
			Namespace: "sitecake",
			Name:      "resource_urls_found_total",
			Help:      "Asset URLs discovered in content containers",
		})
		pr.rewrittenURLs = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "sitecake",
			Name:      "urls_rewritten_total",
			Help:      "Attribute URLs rewritten by operation",
		}, []string{"operation"})
		reg.MustRegister(pr.parseDuration, pr.operations, pr.resourceURLs, pr.rewrittenURLs)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveParseDuration(d time.Duration) {
	if p == nil || p.parseDuration == nil {
		return
	}
	p.parseDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncOperation(op string, result ResultLabel) {
	if p == nil || p.operations == nil {
		return
	}
	p.operations.WithLabelValues(op, string(result)).Inc()
}

func (p *PrometheusRecorder) AddResourceURLs(n int) {
	if p == nil || p.resourceURLs == nil || n <= 0 {
		return
	}
	p.resourceURLs.Add(float64(n))
}

func (p *PrometheusRecorder) AddRewrittenURLs(op string, n int) {
	if p == nil || p.rewrittenURLs == nil || n <= 0 {
		return
	}
	p.rewrittenURLs.WithLabelValues(op).Add(float64(n))
}

// WriteText writes every metric family in reg using the text exposition format.
func WriteText(w io.Writer, reg *prom.Registry) error {
	mfs, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
