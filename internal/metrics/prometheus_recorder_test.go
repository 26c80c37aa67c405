package metrics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveParseDuration(15 * time.Millisecond)
	pr.IncOperation("prefix_resource_urls", ResultSuccess)
	pr.AddResourceURLs(3)
	pr.AddRewrittenURLs("prefix_resource_urls", 2)
	// Basic scrape to ensure metrics encode without panic
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(mfs) == 0 {
		t.Fatalf("expected metrics, got none")
	}
}

func TestWriteText(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.IncOperation("render", ResultSuccess)
	pr.AddResourceURLs(0) // ignored

	var buf bytes.Buffer
	if err := WriteText(&buf, reg); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `sitecake_page_operations_total{operation="render",result="success"} 1`) {
		t.Fatalf("missing operation counter in output:\n%s", out)
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.ObserveParseDuration(time.Second)
	pr.IncOperation("x", ResultFailed)
	pr.AddResourceURLs(1)
	pr.AddRewrittenURLs("x", 1)

	var r Recorder = NoopRecorder{}
	r.IncOperation("x", ResultNoop)
}
