package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PaymentOrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payment_orders_created_total",
		Help: "Total number of payment orders created with the gateway",
	})

	PaymentOrdersFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_orders_failed_total",
		Help: "Total number of payment orders that ended in a failed state",
	}, []string{"reason"})

	PaymentOrdersCancelledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payment_orders_cancelled_total",
		Help: "Total number of payment orders cancelled by the user",
	})

	PaymentsConfirmedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payments_confirmed_total",
		Help: "Total number of payment confirmations verified",
	})

	BookingsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookings_created_total",
		Help: "Total number of bookings materialized",
	})

	GatewayRequestLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gateway_request_latency_seconds",
		Help:    "Latency of payment gateway order creation calls",
		Buckets: prometheus.DefBuckets,
	})
)
