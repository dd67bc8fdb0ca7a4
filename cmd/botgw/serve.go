// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/luxfi/botrpc"
	"github.com/luxfi/botrpc/internal/config"
	"github.com/luxfi/botrpc/internal/logging"
	"github.com/luxfi/botrpc/onebot"
)

func newServeCmd() *cobra.Command {
	var cfgFile, listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the gateway",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if listen != "" {
				cfg.Listen = listen
			}
			log, err := logging.New(cfg.Log)
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, log)
		},
	}
	cmd.Flags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML)")
	cmd.Flags().StringVar(&listen, "listen", "", "HTTP listen address, overrides the config")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	gin.SetMode(gin.ReleaseMode)

	bus := botrpc.NewEventBus()
	if cfg.Echo.Enabled {
		echo := &echoHandler{recallAfter: cfg.Echo.RecallAfter, log: log.Named("echo")}
		if err := bus.Subscribe(botrpc.EventTopic(onebot.TPrivateMessageEvent), echo.onPrivateMessage); err != nil {
			return err
		}
	}

	gw := botrpc.NewGateway(
		botrpc.WithGatewayLogger(log),
		botrpc.WithWSPath(cfg.WSPath),
		botrpc.WithConnOptions(
			botrpc.WithEventHandler(bus),
			botrpc.WithQueueSize(cfg.QueueSize),
			botrpc.WithMaxInflightEvents(cfg.MaxInflightEvents),
			botrpc.WithEventBacklog(cfg.EventBacklog),
			botrpc.WithCallTimeout(cfg.CallTimeout),
			botrpc.WithSendRate(cfg.SendRate, cfg.SendBurst),
		),
	)

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           gw.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("gateway listening", zap.String("addr", cfg.Listen), zap.String("ws_path", cfg.WSPath))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if cfg.TCPListen != "" {
		ln, err := net.Listen("tcp", cfg.TCPListen)
		if err != nil {
			return err
		}
		g.Go(func() error { return gw.ServeTCP(gctx, ln) })
	}
	if cfg.GRPCListen != "" {
		ln, err := net.Listen("tcp", cfg.GRPCListen)
		if err != nil {
			return err
		}
		gs := gw.GRPCServer()
		g.Go(func() error {
			log.Info("grpc listening", zap.String("addr", cfg.GRPCListen))
			return gs.Serve(ln)
		})
		g.Go(func() error {
			<-gctx.Done()
			gs.Stop()
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		gw.Close()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
