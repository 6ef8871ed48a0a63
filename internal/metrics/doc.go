// Package metrics defines the Recorder abstraction for build observability
// and its Prometheus implementation. The Noop recorder is the default so
// metrics stay optional at every call site.
package metrics
