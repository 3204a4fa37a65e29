// Unionfind
// Copyright (C) James Shubin and the project contributors
// Written by James Shubin <james@shubin.ca> and the project contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package prometheus provides functions that are useful to control and manage
// the built-in prometheus instance.
package prometheus

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultPrometheusListen is registered in
// https://github.com/prometheus/prometheus/wiki/Default-port-allocations
const DefaultPrometheusListen = "127.0.0.1:9233"

const (
	// OpUnion is the op label of a Union call.
	OpUnion = "union"

	// OpConnected is the op label of a Connected call.
	OpConnected = "connected"

	// OpFind is the op label of a Find call.
	OpFind = "find"
)

// Prometheus is the struct that contains information about the prometheus
// instance. Run Init() on it.
type Prometheus struct {
	Listen string // the listen specification for the net/http server

	// Registry is where the metrics get registered. If nil, Init makes a
	// new one, so that many instances can exist in the same process.
	Registry *prometheus.Registry

	operationsTotal         *prometheus.CounterVec // total of disjoint set operations
	trialsTotal             *prometheus.CounterVec // total of percolation trials
	threshold               *prometheus.GaugeVec   // last percolation threshold estimate
	processStartTimeSeconds prometheus.Gauge       // process start time in seconds since unix epoch

	server   *http.Server
	listener net.Listener
}

// Init creates and registers the metrics, and sets the default Listen address.
func (obj *Prometheus) Init() error {
	if len(obj.Listen) == 0 {
		obj.Listen = DefaultPrometheusListen
	}
	if obj.Registry == nil {
		obj.Registry = prometheus.NewRegistry()
	}

	obj.operationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unionfind_operations_total",
			Help: "Number of disjoint set operations that have run.",
		},
		// Labels for this metric.
		// kind: strategy: quick-find, weighted-quick-union, ...
		// op: union, connected or find
		[]string{"kind", "op"},
	)
	obj.trialsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unionfind_trials_total",
			Help: "Number of percolation trials that have run.",
		},
		[]string{"kind", "percolated"},
	)
	obj.threshold = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "unionfind_threshold",
			Help: "Last estimate of the percolation threshold.",
		},
		[]string{"kind"},
	)
	obj.processStartTimeSeconds = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "unionfind_process_start_time_seconds",
			Help: "Start time of the process since unix epoch in seconds.",
		},
	)

	for _, c := range []prometheus.Collector{
		obj.operationsTotal,
		obj.trialsTotal,
		obj.threshold,
		obj.processStartTimeSeconds,
	} {
		if err := obj.Registry.Register(c); err != nil {
			return err
		}
	}
	// directly set the processStartTimeSeconds
	obj.processStartTimeSeconds.SetToCurrentTime()

	return nil
}

// Handler returns the http handler which responds to /metrics as prometheus
// would expect.
func (obj *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(obj.Registry, promhttp.HandlerOpts{})
}

// Start runs a http server in a go routine, that responds to /metrics as
// prometheus would expect. The listener is opened before this returns, so a
// bad address is reported here.
func (obj *Prometheus) Start() error {
	if obj.server != nil {
		return fmt.Errorf("already started")
	}
	listener, err := net.Listen("tcp", obj.Listen)
	if err != nil {
		return err
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", obj.Handler())
	obj.listener = listener
	obj.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go obj.server.Serve(listener) // returns ErrServerClosed on Stop
	return nil
}

// Addr returns the address the server listens on, which is useful when Listen
// asked for a random port. It is nil until Start succeeds.
func (obj *Prometheus) Addr() net.Addr {
	if obj.listener == nil {
		return nil
	}
	return obj.listener.Addr()
}

// Stop the http server.
func (obj *Prometheus) Stop() error {
	if obj.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := obj.server.Shutdown(ctx)
	obj.server, obj.listener = nil, nil
	return err
}

// UpdateOperationsTotal counts one operation on a disjoint set of some kind.
func (obj *Prometheus) UpdateOperationsTotal(kind, op string) error {
	switch op {
	case OpUnion, OpConnected, OpFind:
	default:
		return fmt.Errorf("unknown op: %s", op)
	}
	labels := prometheus.Labels{"kind": kind, "op": op}
	obj.operationsTotal.With(labels).Inc()
	return nil
}

// UpdateTrialsTotal counts one percolation trial.
func (obj *Prometheus) UpdateTrialsTotal(kind string, percolated bool) error {
	labels := prometheus.Labels{"kind": kind, "percolated": strconv.FormatBool(percolated)}
	obj.trialsTotal.With(labels).Inc()
	return nil
}

// UpdateThreshold stores the latest threshold estimate.
func (obj *Prometheus) UpdateThreshold(kind string, mean float64) error {
	obj.threshold.With(prometheus.Labels{"kind": kind}).Set(mean)
	return nil
}
