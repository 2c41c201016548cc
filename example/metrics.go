package main

import "github.com/zeromicro/go-zero/core/metric"

const namespace = "idle"

var (
	metricConnOpen = metric.NewCounterVec(&metric.CounterVecOpts{
		Namespace: namespace,
		Subsystem: "conn",
		Name:      "open_total",
		Help:      "Total number of connections opened.",
		Labels:    []string{},
	})

	metricConnClose = metric.NewCounterVec(&metric.CounterVecOpts{
		Namespace: namespace,
		Subsystem: "conn",
		Name:      "close_total",
		Help:      "Total number of connections closed.",
		Labels:    []string{},
	})

	metricConnTimeout = metric.NewCounterVec(&metric.CounterVecOpts{
		Namespace: namespace,
		Subsystem: "conn",
		Name:      "timeout_total",
		Help:      "Total number of connections closed by the idle timeout.",
		Labels:    []string{},
	})
)
