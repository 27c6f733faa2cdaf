package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSendCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "send <queue-url> <message>",
		Short: "Send a message to a queue",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.sqsClient().SendMessage(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if err := checkResponse(resp); err != nil {
				return err
			}
			fmt.Println(strings.TrimSpace(string(resp.Body)))
			return nil
		},
	}
}
