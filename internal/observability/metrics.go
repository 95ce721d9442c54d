package observability

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registerOnce sync.Once

	encodedMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sbcontrol",
			Subsystem: "wire",
			Name:      "messages_total",
			Help:      "Scoreboard messages encoded.",
		},
		[]string{"version", "kind", "success"},
	)
	encodedBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sbcontrol",
			Subsystem: "wire",
			Name:      "bytes_total",
			Help:      "Bytes of encoded scoreboard messages, including the identifier byte.",
		},
		[]string{"version", "kind"},
	)
	transportSends = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sbcontrol",
			Subsystem: "transport",
			Name:      "sends_total",
			Help:      "Packet batches handed to the host transport.",
		},
		[]string{"success"},
	)
	boardClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "sbcontrol",
			Subsystem: "board",
			Name:      "clients",
			Help:      "Client attachments across all live boards.",
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(encodedMessages, encodedBytes, transportSends, boardClients)
	})
}

// MetricsHandler serves the default registry in the text exposition format.
func MetricsHandler() http.Handler {
	RegisterMetrics()
	return promhttp.Handler()
}

func RecordEncode(version, kind string, size int, success bool) {
	RegisterMetrics()
	encodedMessages.WithLabelValues(version, kind, strconv.FormatBool(success)).Inc()
	if success {
		encodedBytes.WithLabelValues(version, kind).Add(float64(size))
	}
}

func RecordSend(success bool) {
	RegisterMetrics()
	transportSends.WithLabelValues(strconv.FormatBool(success)).Inc()
}

// RecordClients adjusts the attached client gauge by delta.
func RecordClients(delta int) {
	RegisterMetrics()
	boardClients.Add(float64(delta))
}
