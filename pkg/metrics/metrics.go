package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Métricas do motor de sincronização, expostas em /metrics.
var (
	// SyncEnqueued total de mutações enfileiradas por indisponibilidade do remoto.
	SyncEnqueued = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "estoque",
		Subsystem: "sync",
		Name:      "enqueued_total",
		Help:      "Mutações enfileiradas para replay, por tipo de entidade.",
	}, []string{"kind"})

	// SyncDrained total de itens processados em passes de drain, por resultado.
	SyncDrained = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "estoque",
		Subsystem: "sync",
		Name:      "drained_total",
		Help:      "Itens da fila processados em drains, por resultado (ok|failed).",
	}, []string{"result"})

	// SyncPending tamanho atual da fila de mutações pendentes.
	SyncPending = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "estoque",
		Subsystem: "sync",
		Name:      "pending",
		Help:      "Mutações pendentes aguardando replay.",
	})

	// RemoteAvailable 1 quando o gateway remoto tem handle estabelecido.
	RemoteAvailable = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "estoque",
		Subsystem: "remote",
		Name:      "available",
		Help:      "Disponibilidade do gateway remoto (0/1).",
	})
)
