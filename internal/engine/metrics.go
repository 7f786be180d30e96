package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/tartampluch/go-dualclock/internal/config"
)

var timezoneFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: config.MetricFallback,
	Help: config.MetricFallbackHelp,
}, []string{config.MetricLabelZone})

var ticksRendered = promauto.NewCounter(prometheus.CounterOpts{
	Name: config.MetricTicks,
	Help: config.MetricTicksHelp,
})
