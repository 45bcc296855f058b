package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "poweradmin"

// OwnershipDenials counts operations rejected because the acting user has no
// zone link to the target domain.
var OwnershipDenials = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "ownership_denials_total",
	Help:      "Total number of operations denied for lack of zone ownership",
})
