package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lkinley/AsyncAWS/sqs"
)

func newQueueCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Manage queues",
	}

	cmd.AddCommand(newQueueCreateCmd(a))
	cmd.AddCommand(newQueueDeleteCmd(a))
	cmd.AddCommand(newQueueAttributesCmd(a))
	cmd.AddCommand(newQueueSetAttributesCmd(a))

	return cmd
}

func newQueueCreateCmd(a *app) *cobra.Command {
	var attrs []string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a queue (or fetch the URL of an existing one)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			attributes, err := parseAttributePairs(attrs)
			if err != nil {
				return err
			}

			resp, err := a.sqsClient().CreateQueue(cmd.Context(), args[0], attributes)
			if err != nil {
				return err
			}
			if err := checkResponse(resp); err != nil {
				return err
			}

			result, err := sqs.ParseResponse(resp.Body)
			if err != nil {
				return err
			}
			if result.Kind == sqs.ResultQueueURL {
				fmt.Println(result.QueueURL)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&attrs, "attribute", nil, "Queue attribute as name=value (repeatable)")

	return cmd
}

func newQueueDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <queue-url>",
		Short: "Delete a queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.sqsClient().DeleteQueue(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return checkResponse(resp)
		},
	}
}

func newQueueAttributesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "attributes <queue-url> [name...]",
		Short: "Fetch queue attributes (all by default)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.sqsClient().GetQueueAttributes(cmd.Context(), args[0], args[1:]...)
			if err != nil {
				return err
			}
			if err := checkResponse(resp); err != nil {
				return err
			}

			result, err := sqs.ParseResponse(resp.Body)
			if err != nil {
				return err
			}
			if result.Kind != sqs.ResultQueueAttributes {
				return fmt.Errorf("unexpected response shape %s", result.Kind)
			}
			for name, value := range result.Attributes {
				fmt.Printf("%s=%s\n", name, value)
			}
			return nil
		},
	}
}

func newQueueSetAttributesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set-attributes <queue-url> <name=value>...",
		Short: "Set queue attributes",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			attributes, err := parseAttributePairs(args[1:])
			if err != nil {
				return err
			}

			resp, err := a.sqsClient().SetQueueAttributes(cmd.Context(), args[0], attributes)
			if err != nil {
				return err
			}
			return checkResponse(resp)
		},
	}
}

func parseAttributePairs(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, found := strings.Cut(pair, "=")
		if !found || name == "" {
			return nil, fmt.Errorf("invalid attribute %q, expected name=value", pair)
		}
		out[name] = value
	}
	return out, nil
}
