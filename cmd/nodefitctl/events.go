package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"nodefit/pkg/logger"
	"nodefit/pkg/rabbitmq"
)

var eventsQueue string

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Work with the domain event queue",
}

var eventsTailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Log every event published to the queue until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if !cfg.EventsEnabled() {
			return fmt.Errorf("RABBITMQ_URL is not set")
		}
		zl, err := logger.New(cfg.LogLevel, true)
		if err != nil {
			return err
		}
		defer func() { _ = zl.Sync() }()

		client, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: eventsQueue}, zl)
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return client.Consume(ctx, rabbitmq.LogHandler(zl))
	},
}

func init() {
	eventsTailCmd.Flags().StringVar(&eventsQueue, "queue", rabbitmq.DefaultQueue, "Queue to consume")
	eventsCmd.AddCommand(eventsTailCmd)
	rootCmd.AddCommand(eventsCmd)
}

