//
//  Copyright 2012 Dmitry Kolesnikov, All Rights Reserved
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.
//

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDecodeCmd(app *cli) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "decode <rn>...",
		Short: "Decode reference numbers into their fields",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layout := app.cfg.layout()
			failed := 0

			for _, arg := range args {
				id, err := layout.Parse(arg)
				if err != nil {
					failed++
					app.logger.Debug().Err(err).Str("rn", arg).Msg("decode failed")
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", arg, err)
					continue
				}

				if err := write(cmd.OutOrStdout(), format, id); err != nil {
					return err
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d reference numbers are not valid", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "fields", "output format: text, encoded, decimal, fields, json")

	return cmd
}

func newVerifyCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <rn>...",
		Short: "Verify check digits of reference numbers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec := app.cfg.layout().Codec()
			failed := 0

			for _, arg := range args {
				if _, err := codec.Decode(arg); err != nil {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "%s\tfail\t%v\n", arg, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\tok\n", arg)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d reference numbers are not valid", failed, len(args))
			}
			return nil
		},
	}
}
