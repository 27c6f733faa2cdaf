package main

import (
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lkinley/AsyncAWS/internal/config"
	"github.com/lkinley/AsyncAWS/internal/metrics"
	"github.com/lkinley/AsyncAWS/sigv4"
	"github.com/lkinley/AsyncAWS/sigv4/keycache"
	"github.com/lkinley/AsyncAWS/sns"
	"github.com/lkinley/AsyncAWS/sqs"
	"github.com/lkinley/AsyncAWS/transport"
)

// app carries the loaded configuration and shared collaborators into the
// subcommands.
type app struct {
	cfg     *config.Config
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "asyncaws",
		Short:         "Signed SQS/SNS query client",
		Long:          "asyncaws signs SQS and SNS query API requests with AWS Signature Version 4 and dispatches them.",
		SilenceUsage:  true,
		SilenceErrors: false,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			debug, _ := cmd.Flags().GetBool("debug")

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg

			level, err := zerolog.ParseLevel(cfg.Logging.Level)
			if err != nil {
				return fmt.Errorf("invalid logging level %q: %w", cfg.Logging.Level, err)
			}
			if debug {
				level = zerolog.DebugLevel
			}

			zerolog.TimeFieldFormat = time.RFC3339Nano
			logger := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(level)
			if cfg.Logging.Format == "console" {
				logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
			}
			a.logger = logger
			a.metrics = metrics.New()

			return nil
		},
	}

	cmd.PersistentFlags().String("config", "", "Path to config file")
	cmd.PersistentFlags().Bool("debug", false, "Set debug level for logging")

	cmd.AddCommand(newSendCmd(a))
	cmd.AddCommand(newReceiveCmd(a))
	cmd.AddCommand(newQueueCmd(a))
	cmd.AddCommand(newTopicCmd(a))

	return cmd
}

func (a *app) credentials() sigv4.Credentials {
	return sigv4.Credentials{
		AccessKeyID:     a.cfg.Credentials.AccessKey,
		SecretAccessKey: a.cfg.Credentials.SecretKey,
	}
}

// keyProvider builds the signing-key provider selected by the cache config.
func (a *app) keyProvider() sigv4.KeyProvider {
	switch a.cfg.Cache.Backend {
	case "memory":
		return keycache.NewMemory(nil)
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:        a.cfg.Cache.Redis.Addr(),
			Password:    a.cfg.Cache.Redis.Password,
			DB:          a.cfg.Cache.Redis.DB,
			DialTimeout: a.cfg.Cache.Redis.DialTimeout,
		})
		return keycache.NewRedis(client, nil, a.logger)
	default:
		return sigv4.DeriveProvider{}
	}
}

func (a *app) transport() transport.Transport {
	return transport.NewHTTP(
		transport.WithTimeout(a.cfg.HTTP.Timeout),
		transport.WithLogger(a.logger),
		transport.WithObserver(a.metrics),
	)
}

func (a *app) sqsClient() *sqs.Client {
	opts := []sqs.Option{
		sqs.WithTransport(a.transport()),
		sqs.WithLogger(a.logger),
		sqs.WithSignerOptions(
			sigv4.WithKeyProvider(a.keyProvider()),
			sigv4.WithLogger(a.logger),
		),
	}
	if a.cfg.SQS.Endpoint != "" {
		opts = append(opts, sqs.WithEndpoint(a.cfg.SQS.Endpoint))
	}
	return sqs.New(a.credentials(), a.cfg.Region, opts...)
}

func (a *app) snsClient() *sns.Client {
	opts := []sns.Option{
		sns.WithTransport(a.transport()),
		sns.WithLogger(a.logger),
		sns.WithSignerOptions(
			sigv4.WithKeyProvider(a.keyProvider()),
			sigv4.WithLogger(a.logger),
		),
	}
	if a.cfg.SNS.Endpoint != "" {
		opts = append(opts, sns.WithEndpoint(a.cfg.SNS.Endpoint))
	}
	return sns.New(a.credentials(), a.cfg.Region, opts...)
}

// checkResponse turns a vendor rejection into an error, decoding the
// <ErrorResponse> envelope when present.
func checkResponse(resp *transport.Response) error {
	if resp.StatusCode == 200 {
		return nil
	}
	if apiErr, ok := sqs.ParseErrorResponse(resp.Body); ok {
		return apiErr
	}
	return fmt.Errorf("request rejected: %s", resp.Status)
}
