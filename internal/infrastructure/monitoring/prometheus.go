package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tostadora"

var (
	mutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_mutations_total",
		Help:      "Mutações aplicadas ao estado, por operação.",
	}, []string{"op"})

	syncTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_operations_total",
		Help:      "Operações com o armazenamento remoto, por operação e resultado.",
	}, []string{"op", "result"})

	advisorTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "advisor_requests_total",
		Help:      "Consultas ao assessor de IA, por resultado.",
	}, []string{"result"})

	collectionSize = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "collection_size",
		Help:      "Quantidade de registros por coleção.",
	}, []string{"collection"})
)

// RecordMutation conta uma mutação aplicada
func RecordMutation(op string) {
	mutationsTotal.WithLabelValues(op).Inc()
}

// RecordSync conta uma operação de sincronização
func RecordSync(op, result string) {
	syncTotal.WithLabelValues(op, result).Inc()
}

// RecordAdvisor conta uma consulta ao assessor
func RecordAdvisor(result string) {
	advisorTotal.WithLabelValues(result).Inc()
}

// SetCollectionSizes atualiza o tamanho das coleções principais
func SetCollectionSizes(products, clients, sales int) {
	collectionSize.WithLabelValues("products").Set(float64(products))
	collectionSize.WithLabelValues("clients").Set(float64(clients))
	collectionSize.WithLabelValues("sales").Set(float64(sales))
}

// Handler expõe as métricas no formato do Prometheus
func Handler() http.Handler {
	return promhttp.Handler()
}
