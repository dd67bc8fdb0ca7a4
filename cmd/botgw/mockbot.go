// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/luxfi/botrpc"
	"github.com/luxfi/botrpc/internal/config"
	"github.com/luxfi/botrpc/internal/logging"
	"github.com/luxfi/botrpc/internal/mockbot"
)

func newMockbotCmd() *cobra.Command {
	var (
		transport string
		addr      string
		botID     int64
		sayTo     int64
		say       string
		level     string
	)
	cmd := &cobra.Command{
		Use:   "mockbot",
		Short: "Connect a mock bot that answers every request",
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := logging.New(config.Log{Level: level, Format: "console"})
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			tr, err := botrpc.Dial(ctx, transport, addr, botID)
			if err != nil {
				return err
			}
			bot := mockbot.New(botID, tr, log)
			log.Info("mock bot connected", zap.String("transport", transport), zap.String("addr", addr), zap.Int64("bot_id", botID))

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error { return bot.Serve(gctx) })
			if say != "" {
				g.Go(func() error { return bot.EmitPrivateMessage(gctx, sayTo, say) })
			}
			if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&transport, "transport", botrpc.DefaultTransport, "transport: ws, tcp or grpc")
	cmd.Flags().StringVar(&addr, "addr", "ws://127.0.0.1:8081/ws/cq/", "gateway address")
	cmd.Flags().Int64Var(&botID, "id", 10001, "bot id")
	cmd.Flags().Int64Var(&sayTo, "from", 123, "user id of the emitted message")
	cmd.Flags().StringVar(&say, "say", "", "emit a private message event with this text")
	cmd.Flags().StringVar(&level, "log-level", "info", "log level")
	return cmd
}
