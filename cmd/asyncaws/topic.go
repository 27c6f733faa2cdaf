package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newTopicCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topic",
		Short: "Manage notification topics",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "create <name>",
		Short: "Create a notification topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.snsClient().CreateTopic(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := checkResponse(resp); err != nil {
				return err
			}
			fmt.Println(strings.TrimSpace(string(resp.Body)))
			return nil
		},
	})

	return cmd
}
