// Package metrics exports client activity as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Config configures the Prometheus observer.
type Config struct {
	// Namespace is the metrics namespace (default: "plog").
	Namespace string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Observer implements client.Observer by updating Prometheus collectors.
type Observer struct {
	messagesSent   prometheus.Counter
	messagesFailed prometheus.Counter
	chunksSent     prometheus.Counter
	bytesSent      prometheus.Counter
	messageChunks  prometheus.Histogram
	socketOpens    prometheus.Counter
	socketFailures prometheus.Counter
	socketOpen     prometheus.Gauge
}

// New registers the client collectors with cfg.Registry.
func New(cfg Config) *Observer {
	if cfg.Namespace == "" {
		cfg.Namespace = "plog"
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(cfg.Registry)

	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   "client",
			Name:        name,
			Help:        help,
			ConstLabels: cfg.ConstLabels,
		})
	}

	return &Observer{
		messagesSent:   counter("messages_sent_total", "Messages whose chunks were all written"),
		messagesFailed: counter("messages_failed_total", "Messages dropped by an encoding or transport failure"),
		chunksSent:     counter("chunks_sent_total", "Packets written for successfully sent messages"),
		bytesSent:      counter("message_bytes_total", "Message payload bytes sent, excluding headers"),
		socketOpens:    counter("socket_opens_total", "UDP sockets opened"),
		socketFailures: counter("socket_failures_total", "UDP sockets torn down after a transport failure"),

		messageChunks: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   "client",
			Name:        "message_chunks",
			Help:        "Number of chunks per sent message",
			ConstLabels: cfg.ConstLabels,
			Buckets:     []float64{1, 2, 4, 8, 16, 64, 256, 1024},
		}),

		socketOpen: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   "client",
			Name:        "socket_open",
			Help:        "1 while the client holds an open socket",
			ConstLabels: cfg.ConstLabels,
		}),
	}
}

func (o *Observer) HandleOpened() {
	o.socketOpens.Inc()
	o.socketOpen.Set(1)
}

func (o *Observer) HandleClosed(cause error) {
	if cause != nil {
		o.socketFailures.Inc()
	}
	o.socketOpen.Set(0)
}

func (o *Observer) MessageSent(id uint32, chunks int, bytes int) {
	o.messagesSent.Inc()
	o.chunksSent.Add(float64(chunks))
	o.bytesSent.Add(float64(bytes))
	o.messageChunks.Observe(float64(chunks))
}

func (o *Observer) SendFailed(id uint32, err error) {
	o.messagesFailed.Inc()
}
