package monkey

import "github.com/prometheus/client_golang/prometheus"

type metrics struct {
	registry *prometheus.Registry

	// Counters
	installs    prometheus.Counter
	uninstalls  prometheus.Counter
	activations prometheus.Counter

	// Gauges
	installedPatches prometheus.GaugeFunc

	// Latency
	wrapLatency prometheus.Summary
}

func newMetrics(r *Registry) *metrics {
	labels := prometheus.Labels{"registry": r.name}
	m := &metrics{
		installs: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name:        "patch_installs_total",
				Help:        "number of patches installed over the registry's lifetime",
				ConstLabels: labels,
			},
		),
		uninstalls: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name:        "patch_uninstalls_total",
				Help:        "number of uninstall requests, including ones for absent patches",
				ConstLabels: labels,
			},
		),
		activations: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name:        "patch_set_activations_total",
				Help:        "number of patch set activations",
				ConstLabels: labels,
			},
		),
		installedPatches: prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name:        "installed_patches",
				Help:        "number of patches currently installed",
				ConstLabels: labels,
			},
			func() float64 {
				return float64(r.Len())
			},
		),
		wrapLatency: prometheus.NewSummary(
			prometheus.SummaryOpts{
				Name:        "wrap_latency_ns",
				Help:        "time spent inside PatchSet.Wrap, activation and deactivation included",
				ConstLabels: labels,
			},
		),
	}
	m.registry = prometheus.NewPedanticRegistry()
	reg := m.registry

	reg.MustRegister(m.installs)
	reg.MustRegister(m.uninstalls)
	reg.MustRegister(m.activations)
	reg.MustRegister(m.installedPatches)
	reg.MustRegister(m.wrapLatency)
	return m
}
