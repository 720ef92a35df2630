package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	chatRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chat_requests_total",
		Help: "Chat stream requests by pipeline branch.",
	}, []string{"branch"})

	streamedTokensTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chat_streamed_tokens_total",
		Help: "Tokens relayed to clients across all chat streams.",
	})

	streamErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chat_stream_errors_total",
		Help: "Chat streams terminated by an error event.",
	})
)
