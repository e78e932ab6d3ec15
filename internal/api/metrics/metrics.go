// Package metrics defines the custom Prometheus metrics of the blog API. It is
// the single source of truth for metric names, labels, and help strings.
//
// Metrics are registered with the default registry on package init through
// promauto; Register adds them to any other registry the router serves.
// HTTP request metrics come from echoprometheus.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blog"

// ── Account metrics ───────────────────────────────────────────────────────────

// RegistrationsTotal counts accounts created through POST /auth/register.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of user accounts registered.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "unknown_account", "bad_password" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Post metrics ──────────────────────────────────────────────────────────────

// PostWritesTotal counts successful post mutations.
// Label:
//   - op: "create", "update" or "delete"
var PostWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "post_writes_total",
		Help:      "Total number of post writes, by operation.",
	},
	[]string{"op"},
)

// ── Idempotency metrics ───────────────────────────────────────────────────────

// IdempotencyTotal counts Idempotency-Key lookups.
// Label:
//   - result: "hit" (stored response replayed) or "miss" (request processed)
var IdempotencyTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "idempotency_total",
		Help:      "Total number of idempotency lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// Register adds the blog counters to reg. Collectors already present in reg
// are skipped.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{RegistrationsTotal, LoginsTotal, PostWritesTotal, IdempotencyTotal} {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}
