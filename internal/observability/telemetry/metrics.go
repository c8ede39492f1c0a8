package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WebhookRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vui_webhook_requests_total",
		Help: "Webhook requests processed, by platform and result",
	}, []string{"platform", "result"})

	WebhookLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "vui_webhook_latency_seconds",
		Help:    "End-to-end webhook processing latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"platform"})

	SignatureFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vui_signature_failures_total",
		Help: "Requests rejected by signature verification",
	}, []string{"platform"})

	CertificateFetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vui_certificate_fetches_total",
		Help: "Outbound certificate fetches, by result",
	}, []string{"result"})
)
