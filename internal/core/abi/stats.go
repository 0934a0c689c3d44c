package abi

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Stats wires the registration/encode/decode counters spec-adjacent monitoring needs
// onto prometheus, replacing the plain atomic-counter snapshot the teacher's ABIStats
// used: the metrics server this module sits behind already scrapes a prometheus
// registry, so the counters live there directly instead of behind a Go-only accessor.
type Stats struct {
	registrations      prometheus.Counter
	registrationErrors prometheus.Counter
	encodeOps          prometheus.Counter
	encodeErrors       prometheus.Counter
	decodeOps          prometheus.Counter
	decodeErrors       prometheus.Counter
	encodeDuration     prometheus.Histogram
	decodeDuration     prometheus.Histogram
}

// NewStats registers its metrics against reg. Use prometheus.NewRegistry() in tests to
// avoid collisions with the global default registry.
func NewStats(reg prometheus.Registerer) *Stats {
	s := &Stats{
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "abi_registrations_total",
			Help: "ABI documents successfully validated and loaded.",
		}),
		registrationErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "abi_registration_errors_total",
			Help: "ABI documents that failed validation.",
		}),
		encodeOps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "abi_encode_operations_total",
			Help: "value_to_binary calls completed.",
		}),
		encodeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "abi_encode_errors_total",
			Help: "value_to_binary calls that returned an error.",
		}),
		decodeOps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "abi_decode_operations_total",
			Help: "binary_to_value calls completed.",
		}),
		decodeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "abi_decode_errors_total",
			Help: "binary_to_value calls that returned an error.",
		}),
		encodeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "abi_encode_duration_seconds",
			Help:    "value_to_binary wall time.",
			Buckets: prometheus.DefBuckets,
		}),
		decodeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "abi_decode_duration_seconds",
			Help:    "binary_to_value wall time.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(
		s.registrations, s.registrationErrors,
		s.encodeOps, s.encodeErrors,
		s.decodeOps, s.decodeErrors,
		s.encodeDuration, s.decodeDuration,
	)
	return s
}

func (s *Stats) ObserveRegistration(err error) {
	if err != nil {
		s.registrationErrors.Inc()
		return
	}
	s.registrations.Inc()
}

func (s *Stats) ObserveEncode(start time.Time, err error) {
	s.encodeDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.encodeErrors.Inc()
		return
	}
	s.encodeOps.Inc()
}

func (s *Stats) ObserveDecode(start time.Time, err error) {
	s.decodeDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.decodeErrors.Inc()
		return
	}
	s.decodeOps.Inc()
}
