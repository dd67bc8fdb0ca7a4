// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/luxfi/botrpc"
)

func newCallCmd() *cobra.Command {
	var endpoint string
	cmd := &cobra.Command{
		Use:   "call METHOD [PARAMS_JSON]",
		Short: "Invoke a control plane method, e.g. Bot.SendPrivateMsg",
		Example: `  botgw call Bot.List
  botgw call Bot.SendPrivateMsg '{"bot_id":10001,"user_id":123,"text":"hi"}'`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			uri, err := url.Parse(endpoint)
			if err != nil {
				return fmt.Errorf("invalid endpoint: %w", err)
			}
			params := json.RawMessage("{}")
			if len(args) == 2 {
				if !json.Valid([]byte(args[1])) {
					return fmt.Errorf("params are not valid JSON")
				}
				params = json.RawMessage(args[1])
			}

			var reply json.RawMessage
			if err := botrpc.CallControl(cmd.Context(), uri, args[0], params, &reply); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(reply))
			return nil
		},
	}
	cmd.Flags().StringVar(&endpoint, "endpoint", "http://127.0.0.1:8081/rpc", "control plane URL")
	return cmd
}
