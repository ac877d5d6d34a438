package sync

import "github.com/prometheus/client_golang/prometheus"

var (
	documentsPulled = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vision_sync_documents_pulled_total",
		Help: "Remote task documents received by pull",
	})
	documentsPushed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vision_sync_documents_pushed_total",
		Help: "Local task documents sent by push",
	})
	pushConflicts = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vision_sync_conflicts_total",
		Help: "Pushed documents the server answered with a master copy",
	})
	cycles = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vision_sync_cycles_total",
			Help: "Replication cycles by resulting state",
		},
		[]string{"state"},
	)
	pendingDocuments = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "vision_sync_pending_documents",
		Help: "Local changes not yet acknowledged by the server",
	})
)

func init() {
	prometheus.MustRegister(documentsPulled)
	prometheus.MustRegister(documentsPushed)
	prometheus.MustRegister(pushConflicts)
	prometheus.MustRegister(cycles)
	prometheus.MustRegister(pendingDocuments)
}
