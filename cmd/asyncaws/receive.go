package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lkinley/AsyncAWS/sqs"
)

func newReceiveCmd(a *app) *cobra.Command {
	var (
		workers    int
		wait       time.Duration
		maxMsgs    int
		visibility time.Duration
	)

	cmd := &cobra.Command{
		Use:   "receive <queue-url>",
		Short: "Long-poll a queue and print received messages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if a.cfg.Metrics.Enabled {
				go a.serveMetrics()
			}

			poller := sqs.NewPoller(a.sqsClient(), args[0],
				sqs.WithWorkers(workers),
				sqs.WithReceiveOptions(sqs.ReceiveOptions{
					WaitTime:          wait,
					MaxMessages:       maxMsgs,
					VisibilityTimeout: visibility,
				}),
				sqs.WithPollerLogger(a.logger),
			)

			err := poller.Run(ctx, func(ctx context.Context, msg *sqs.Message) error {
				fmt.Println(msg.Body)
				return nil
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 1, "Number of concurrent polling workers")
	cmd.Flags().DurationVar(&wait, "wait", 15*time.Second, "Long-poll wait time per receive")
	cmd.Flags().IntVar(&maxMsgs, "max", 1, "Maximum messages per receive")
	cmd.Flags().DurationVar(&visibility, "visibility", 5*time.Minute, "Visibility timeout for received messages")

	return cmd
}

// serveMetrics exposes /metrics for the lifetime of a long-running command.
func (a *app) serveMetrics() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", a.metrics.Handler())

	a.logger.Info().Str("addr", a.cfg.Metrics.Addr).Msg("serving metrics")
	if err := http.ListenAndServe(a.cfg.Metrics.Addr, mux); err != nil {
		a.logger.Error().Err(err).Msg("metrics server stopped")
	}
}
