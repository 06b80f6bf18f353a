// Package metrics defines all custom Prometheus metrics for the loyalty
// backend. It is the single source of truth for metric names, labels, and
// help strings. Metrics register themselves with the default registry via
// promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "loyalty"

// PointsIssuedTotal counts loyalty points credited to users.
// Label:
//   - kind: ledger entry kind ("purchase", "device_return")
var PointsIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "points_issued_total",
		Help:      "Total loyalty points credited, by ledger entry kind.",
	},
	[]string{"kind"},
)

// PointsSpentTotal counts loyalty points debited through redemptions.
var PointsSpentTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "points_spent_total",
		Help:      "Total loyalty points spent on reward redemptions.",
	},
)

// RedemptionsTotal counts redemption lifecycle events.
// Label:
//   - status: "created" or "confirmed"
var RedemptionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "redemptions_total",
		Help:      "Total reward redemptions, by lifecycle event.",
	},
	[]string{"status"},
)

// NotificationsSentTotal counts outbound Telegram notification attempts.
// Label:
//   - result: "ok" or "error"
var NotificationsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_sent_total",
		Help:      "Total Telegram notification sends, by result.",
	},
	[]string{"result"},
)
