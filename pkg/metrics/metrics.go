// Package metrics holds the Prometheus instruments of the element runtime.
// All collectors are registered with the global registry, so serving
// promhttp.Handler() is enough to expose them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/go-drift/elements/pkg/errors"
)

var (
	// ElementsDefined counts tags registered with a platform.
	ElementsDefined = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "elements_defined_total",
			Help: "Number of custom element tags defined.",
		})

	// Reloads counts platform reloads triggered by a duplicate tag.
	Reloads = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "elements_reloads_total",
			Help: "Number of reloads forced by redefining a tag.",
		})

	// Renders counts successful renders per tag.
	Renders = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "elements_renders_total",
			Help: "Number of renders, including the synchronous first render of each mount.",
		}, []string{"tag"})

	// RefreshCoalesced counts refresh requests that joined a pending frame.
	RefreshCoalesced = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "elements_refresh_coalesced_total",
			Help: "Number of refresh requests absorbed by an already pending frame.",
		}, []string{"tag"})

	// Mounts counts mounts per tag.
	Mounts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "elements_mounts_total",
			Help: "Number of element mounts.",
		}, []string{"tag"})

	// Unmounts counts unmounts per tag.
	Unmounts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "elements_unmounts_total",
			Help: "Number of element unmounts.",
		}, []string{"tag"})

	// ConversionErrors counts attribute values rejected by their property.
	ConversionErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "elements_conversion_errors_total",
			Help: "Number of attribute values that could not be assigned to their property.",
		}, []string{"tag"})

	// Reported counts errors and recovered panics handed to ErrorCounter,
	// labelled by error kind.
	Reported = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "elements_reported_errors_total",
			Help: "Number of errors and recovered panics reported to the error handler.",
		}, []string{"kind"})
)

func init() {
	prometheus.MustRegister(
		ElementsDefined,
		Reloads,
		Renders,
		RefreshCoalesced,
		Mounts,
		Unmounts,
		ConversionErrors,
		Reported,
	)
}

// ErrorCounter is an errors.ErrorHandler that counts reports by kind. Chain
// it with a handler that logs:
//
//	errors.SetHandler(errors.Chain(&errors.LogHandler{}, metrics.ErrorCounter{}))
type ErrorCounter struct{}

// HandleError counts err under its kind.
func (ErrorCounter) HandleError(err *errors.ElementError) {
	Reported.WithLabelValues(err.Kind.String()).Inc()
}

// HandlePanic counts err under the panic kind.
func (ErrorCounter) HandlePanic(*errors.PanicError) {
	Reported.WithLabelValues(errors.KindPanic.String()).Inc()
}
