// Package metrics provides observability hooks for page operations.
//
// # Design Philosophy
//
// This package implements the Null Object pattern to enable metrics collection
// without requiring explicit nil checks throughout the codebase. By default,
// pages use NoopRecorder which implements the Recorder interface with
// no-op methods.
//
// # Usage Pattern
//
// Pages receive a Recorder through an option:
//
//	reg := prometheus.NewRegistry()
//	p, err := page.New(src, page.WithRecorder(metrics.NewPrometheusRecorder(reg)))
//
// The CLI gathers the registry after a command and prints it with WriteText
// when --metrics is set.
package metrics
