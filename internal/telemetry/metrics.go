package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "model_registry_ops"

var (
	workflowRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "workflow",
			Name:      "runs_total",
			Help:      "Workflow runs by workflow and result",
		},
		[]string{"workflow", "result"},
	)

	registryRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "requests_total",
			Help:      "Requests sent to the tracking service registry API",
		},
		[]string{"operation", "outcome"},
	)

	registryLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "request_duration_seconds",
			Help:      "Duration of registry API requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"path", "method", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)
)

func init() {
	prometheus.MustRegister(workflowRuns, registryRequests, registryLatency, httpRequests, httpDuration)
}

// Workflow names used as label values.
const (
	WorkflowPromote  = "promote"
	WorkflowRegister = "register"
	WorkflowEvaluate = "evaluate"
)

func ObserveWorkflow(workflow string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	workflowRuns.WithLabelValues(workflow, result).Inc()
}

func ObserveRegistryRequest(operation string, seconds float64, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	registryRequests.WithLabelValues(operation, outcome).Inc()
	registryLatency.WithLabelValues(operation).Observe(seconds)
}

func ObserveHTTPRequest(path, method, status string, seconds float64) {
	httpRequests.WithLabelValues(path, method, status).Inc()
	httpDuration.WithLabelValues(path, method, status).Observe(seconds)
}
