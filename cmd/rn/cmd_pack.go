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
	"time"

	"github.com/fogfish/rn"
	"github.com/spf13/cobra"
)

func newPackCmd(app *cli) *cobra.Command {
	var (
		at      string
		decimal string
		format  string
	)

	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Build reference number from fields or packed decimal form",
		Long: `pack builds reference number either from the configured tuple and
the instant given by --at, or from fixed width packed decimal form.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			layout := app.cfg.layout()

			if decimal != "" {
				id, err := layout.FromDecimal(decimal)
				if err != nil {
					return err
				}
				return write(cmd.OutOrStdout(), format, id)
			}

			a, i, t, v, err := app.cfg.tuple()
			if err != nil {
				return err
			}

			issued := time.Now()
			if at != "" {
				if issued, err = time.Parse(time.RFC3339Nano, at); err != nil {
					return fmt.Errorf("bad --at: %w", err)
				}
			}

			id, err := rn.New(a, i, t, issued, rn.WithVersion(v), rn.WithLayout(layout))
			if err != nil {
				return err
			}

			return write(cmd.OutOrStdout(), format, id)
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "instant of issue, RFC 3339 (default now)")
	cmd.Flags().StringVar(&decimal, "decimal", "", "packed decimal form")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, encoded, decimal, fields, json")

	return cmd
}
