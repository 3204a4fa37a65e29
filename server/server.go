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

// Package server exposes one shared disjoint set over http. Every request goes
// through a single lock, and every index is checked here before the set ever
// sees it, so a bad request is a 400 and never a panic.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/purpleidea/unionfind/prometheus"
	"github.com/purpleidea/unionfind/util"
	"github.com/purpleidea/unionfind/util/disjoint"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultListen is the address that the server listens on if none is
	// given.
	DefaultListen = "127.0.0.1:8380"

	// shutdownTimeout is how long Run waits for requests to finish once
	// the context is cancelled.
	shutdownTimeout = 5 * time.Second
)

func init() {
	// XXX: here for now: https://github.com/gin-gonic/gin/issues/1180
	gin.SetMode(gin.ReleaseMode)
}

// UnionRequest is the body of a POST to /union.
type UnionRequest struct {
	A *int `json:"a" binding:"required"`
	B *int `json:"b" binding:"required"`
}

// Stats is the body of the /stats response.
type Stats struct {
	Kind     string `json:"kind"`
	Size     int    `json:"size"`
	Count    int    `json:"count"`
	MaxDepth int    `json:"maxDepth"`
}

// Server holds a locked disjoint set and serves it. Run Init() on it.
type Server struct {
	// Kind is the strategy of the set.
	Kind disjoint.Kind

	// Size is the number of elements.
	Size int

	// Listen is the address to listen on.
	Listen string

	// Prometheus, if not nil, counts the operations and serves /metrics.
	// It must already be initialized.
	Prometheus *prometheus.Prometheus

	Debug bool
	Logf  func(format string, v ...interface{})

	set    *disjoint.Locked
	router *gin.Engine
	addr   net.Addr
	ready  chan struct{}
}

// Init builds the set and the routes.
func (obj *Server) Init() error {
	if obj.Logf == nil {
		return fmt.Errorf("the Logf function is missing")
	}
	if obj.Listen == "" {
		obj.Listen = DefaultListen
	}
	set, err := disjoint.New(obj.Kind, obj.Size)
	if err != nil {
		return err
	}
	obj.set = disjoint.NewLocked(set)
	obj.ready = make(chan struct{})

	router := gin.New()
	logger := obj.ginLogger()
	if obj.Debug {
		logger = gin.LoggerWithWriter(&util.LogWriter{Prefix: "gin: ", Logf: obj.Logf})
	}
	router.Use(logger, gin.RecoveryWithWriter(&util.LogWriter{Prefix: "panic: ", Logf: obj.Logf}))

	router.POST("/union", obj.handleUnion)
	router.GET("/connected", obj.handleConnected)
	router.GET("/find/:index", obj.handleFind)
	router.GET("/groups", obj.handleGroups)
	router.GET("/stats", obj.handleStats)
	if obj.Prometheus != nil {
		router.GET("/metrics", gin.WrapH(obj.Prometheus.Handler()))
	}
	obj.router = router

	return nil
}

// Handler returns the http handler which serves every route.
func (obj *Server) Handler() http.Handler {
	return obj.router
}

// Run listens and serves until the context is cancelled, and then shuts down
// gracefully. It only returns an error if it could not serve.
func (obj *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", obj.Listen)
	if err != nil {
		return err
	}
	obj.addr = listener.Addr()
	close(obj.ready)
	obj.Logf("listening on: %s", obj.addr)

	server := &http.Server{
		Handler:           obj.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errch := make(chan error, 1)
	go func() {
		errch <- server.Serve(listener)
	}()

	select {
	case err := <-errch: // died on its own
		return err
	case <-ctx.Done():
	}

	obj.Logf("shutting down...")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errch; err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Ready is closed once Run is listening.
func (obj *Server) Ready() <-chan struct{} {
	return obj.ready
}

// Addr returns the address that Run listens on. It is nil until Ready.
func (obj *Server) Addr() net.Addr {
	return obj.addr
}

// ginLogger logs one short line per request.
func (obj *Server) ginLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		obj.Logf("%v %s %s (%d)", c.ClientIP(), c.Request.Method, c.Request.URL.Path, c.Writer.Status())
	}
}

// count records an operation if we have metrics.
func (obj *Server) count(op string) {
	if obj.Prometheus == nil {
		return
	}
	if err := obj.Prometheus.UpdateOperationsTotal(obj.Kind.String(), op); err != nil {
		obj.Logf("metrics error: %+v", err)
	}
}

// index validates an index that came in from a request. On failure it writes
// the 400 response and returns false.
func (obj *Server) index(c *gin.Context, name, value string) (int, bool) {
	i, err := strconv.Atoi(value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%s: not an integer: %q", name, value)})
		return 0, false
	}
	if err := disjoint.CheckIndex(i, obj.set.Len()); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%s: %s", name, err)})
		return 0, false
	}
	return i, true
}

func (obj *Server) handleUnion(c *gin.Context) {
	req := &UnionRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("bad request: %v", err)})
		return
	}
	if err := disjoint.CheckIndex(*req.A, obj.set.Len()); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("a: %s", err)})
		return
	}
	if err := disjoint.CheckIndex(*req.B, obj.set.Len()); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("b: %s", err)})
		return
	}
	obj.set.Union(*req.A, *req.B)
	obj.count(prometheus.OpUnion)
	if obj.Debug {
		obj.Logf("union(%d, %d)", *req.A, *req.B)
	}
	c.JSON(http.StatusOK, gin.H{"count": obj.set.Count()})
}

func (obj *Server) handleConnected(c *gin.Context) {
	a, ok := obj.index(c, "a", c.Query("a"))
	if !ok {
		return
	}
	b, ok := obj.index(c, "b", c.Query("b"))
	if !ok {
		return
	}
	connected := obj.set.Connected(a, b)
	obj.count(prometheus.OpConnected)
	c.JSON(http.StatusOK, gin.H{"connected": connected})
}

func (obj *Server) handleFind(c *gin.Context) {
	i, ok := obj.index(c, "index", c.Param("index"))
	if !ok {
		return
	}
	root := obj.set.Find(i)
	obj.count(prometheus.OpFind)
	c.JSON(http.StatusOK, gin.H{"root": root})
}

func (obj *Server) handleGroups(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"groups": obj.set.Groups()})
}

func (obj *Server) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, &Stats{
		Kind:     obj.Kind.String(),
		Size:     obj.set.Len(),
		Count:    obj.set.Count(),
		MaxDepth: disjoint.MaxDepth(obj.set),
	})
}
