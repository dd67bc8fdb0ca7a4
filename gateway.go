// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package botrpc

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/rpc/v2"
	"github.com/gorilla/rpc/v2/json2"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// DefaultWSPath is where OneBot implementations connect by default
const DefaultWSPath = "/ws/cq/"

// Gateway accepts bot connections over every transport, keeps them in a
// Registry and exposes the HTTP surface: the WebSocket endpoint, the JSON-RPC
// control plane, metrics and a health check.
type Gateway struct {
	registry *Registry
	log      *zap.Logger
	wsPath   string
	connOpts []Option
	promReg  *prometheus.Registry
	metrics  *Metrics
	upgrader websocket.Upgrader
	engine   *gin.Engine

	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// GatewayOption configures a Gateway
type GatewayOption func(*Gateway)

// WithGatewayLogger sets the logger of the gateway and its connections
func WithGatewayLogger(l *zap.Logger) GatewayOption {
	return func(g *Gateway) {
		if l != nil {
			g.log = l
		}
	}
}

// WithWSPath sets the WebSocket route
func WithWSPath(path string) GatewayOption {
	return func(g *Gateway) {
		if path != "" {
			g.wsPath = path
		}
	}
}

// WithConnOptions sets options applied to every accepted connection
func WithConnOptions(opts ...Option) GatewayOption {
	return func(g *Gateway) { g.connOpts = append(g.connOpts, opts...) }
}

// WithPrometheusRegistry registers the gateway collectors with reg and serves
// it on /metrics.
func WithPrometheusRegistry(reg *prometheus.Registry) GatewayOption {
	return func(g *Gateway) {
		if reg != nil {
			g.promReg = reg
		}
	}
}

func NewGateway(opts ...GatewayOption) *Gateway {
	g := &Gateway{
		registry: NewRegistry(),
		log:      zap.NewNop(),
		wsPath:   DefaultWSPath,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.promReg == nil {
		g.promReg = prometheus.NewRegistry()
	}
	g.metrics = NewMetrics(g.promReg)
	g.ctx, g.cancel = context.WithCancel(context.Background())
	g.engine = g.routes()
	return g
}

// Registry returns the live connections
func (g *Gateway) Registry() *Registry { return g.registry }

// Handler returns the HTTP handler serving every route
func (g *Gateway) Handler() http.Handler { return g.engine }

func (g *Gateway) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(g.log))

	control := rpc.NewServer()
	control.RegisterCodec(json2.NewCodec(), "application/json")
	if err := control.RegisterService(&ControlService{registry: g.registry}, "Bot"); err != nil {
		g.log.Error("cannot register control service", zap.Error(err))
	}

	r.GET(g.wsPath, g.handleWS)
	r.POST("/rpc", gin.WrapH(control))
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(g.promReg, promhttp.HandlerOpts{})))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "bots": g.registry.Len()})
	})
	return r
}

// parseSelfID reads a bot id; anything that is not a positive integer is invalid.
func parseSelfID(v string) (int64, bool) {
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (g *Gateway) handleWS(c *gin.Context) {
	botID, ok := parseSelfID(c.GetHeader(HeaderSelfID))
	if !ok {
		g.log.Warn("rejecting connection without valid bot id",
			zap.String("self_id", c.GetHeader(HeaderSelfID)),
			zap.String("remote_addr", c.ClientIP()),
		)
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid " + HeaderSelfID})
		return
	}
	conn, err := g.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		g.log.Warn("websocket upgrade failed", zap.Int64("bot_id", botID), zap.Error(err))
		return
	}
	g.attach(botID, NewWSTransport(conn), TransportWS)
}

// attach serves tr as the connection of bot botID until it ends. A previous
// connection of the same bot is replaced.
var errGatewayClosed = errors.New("botrpc: gateway closed")

func (g *Gateway) attach(botID int64, tr Transport, kind string) error {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		tr.Close()
		return errGatewayClosed
	}
	g.wg.Add(1)
	g.mu.Unlock()
	defer g.wg.Done()

	opts := append([]Option{
		WithLogger(g.log.With(zap.String("transport", kind))),
		WithMetrics(g.metrics),
	}, g.connOpts...)
	c, err := NewConn(botID, tr, opts...)
	if err != nil {
		tr.Close()
		return err
	}
	if old := g.registry.Put(c); old != nil {
		g.log.Info("replaced existing bot connection", zap.Int64("bot_id", botID))
	}
	defer g.registry.Remove(c)
	return c.Serve(g.ctx)
}

// Close disconnects every bot and waits for their connections to finish.
func (g *Gateway) Close() error {
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()
	g.cancel()
	g.registry.CloseAll()
	g.wg.Wait()
	return nil
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		switch {
		case status >= 500:
			log.Error("http_request", fields...)
		case status >= 400:
			log.Warn("http_request", fields...)
		default:
			log.Debug("http_request", fields...)
		}
	}
}
