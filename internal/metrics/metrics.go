// Package metrics provides Prometheus observability for the support pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for the application.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

// MessagesProcessed counts fully processed messages by classification label
// and final outcome.
var MessagesProcessed = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "support",
	Name:      "messages_processed_total",
	Help:      "Messages processed by the orchestrator, by label and outcome",
}, []string{"label", "outcome"})

// IncidentsCreated counts incident tickets opened from negative feedback.
var IncidentsCreated = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "support",
	Name:      "incidents_created_total",
	Help:      "Incident tickets created by the feedback handler",
})

// CompletionFailures counts failed completion-service calls.
var CompletionFailures = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "support",
	Name:      "completion_failures_total",
	Help:      "Completion service calls that returned an error",
})

// PipelineDuration observes end-to-end orchestration latency.
var PipelineDuration = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "support",
	Name:      "pipeline_duration_seconds",
	Help:      "Wall-clock duration of a full classify-route-reply pipeline",
	Buckets:   prometheus.DefBuckets,
})
