package metrics

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// RegisterPgxPoolMetrics publishes live pool statistics as gauges so database
// saturation shows up next to the HTTP metrics.
func RegisterPgxPoolMetrics(pool *pgxpool.Pool) {
	poolGauge := func(name, help string, read func(*pgxpool.Stat) int32) prometheus.GaugeFunc {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{Name: name, Help: help}, func() float64 {
			return float64(read(pool.Stat()))
		})
	}

	prometheus.MustRegister(
		poolGauge("pgxpool_acquired_conns", "Connections currently checked out of the pool", (*pgxpool.Stat).AcquiredConns),
		poolGauge("pgxpool_idle_conns", "Connections sitting idle in the pool", (*pgxpool.Stat).IdleConns),
		poolGauge("pgxpool_total_conns", "Connections the pool currently holds", (*pgxpool.Stat).TotalConns),
		poolGauge("pgxpool_max_conns", "Upper bound on pool connections", (*pgxpool.Stat).MaxConns),
	)
}
