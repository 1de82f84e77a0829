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
	"encoding/json"
	"fmt"
	"io"

	"github.com/fogfish/rn"
	"github.com/spf13/cobra"
)

func newGenerateCmd(app *cli) *cobra.Command {
	var (
		count  int
		format string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Issue reference numbers for the configured tuple",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("count must be positive: %d", count)
			}

			a, i, t, v, err := app.cfg.tuple()
			if err != nil {
				return err
			}

			opts := []rn.RegistryOption{
				rn.WithLogger(app.logger),
				rn.WithFactoryLayout(app.cfg.layout()),
				rn.WithFactoryVersion(v),
				rn.WithLockDir(app.cfg.LockDir),
			}
			if app.cfg.NoLock {
				opts = append(opts, rn.WithoutLock())
			}

			registry := rn.NewRegistry(opts...)
			defer closeWithLog(app.logger, registry, "registry")

			factory, err := registry.Factory(a, i, t)
			if err != nil {
				return err
			}

			seq, err := factory.GenerateN(count)
			if err != nil {
				return err
			}

			for _, id := range seq {
				if err := write(cmd.OutOrStdout(), format, id); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of reference numbers")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, encoded, decimal, fields, json")

	return cmd
}

type view struct {
	Encoded   string `json:"encoded"`
	Decimal   string `json:"decimal"`
	Authority int    `json:"authority"`
	Instance  int    `json:"instance"`
	Type      int    `json:"type"`
	Version   int    `json:"version"`
	Time      string `json:"time"`
}

// write prints reference number in the requested format
func write(w io.Writer, format string, id rn.RN) error {
	var err error

	switch format {
	case "text":
		_, err = fmt.Fprintf(w, "%s\t%s\t%s\n", id.Encode(), id.Decimal(), id)
	case "encoded":
		_, err = fmt.Fprintln(w, id.Encode())
	case "decimal":
		_, err = fmt.Fprintln(w, id.Decimal())
	case "fields":
		_, err = fmt.Fprintln(w, id.String())
	case "json":
		err = json.NewEncoder(w).Encode(view{
			Encoded:   id.Encode(),
			Decimal:   id.Decimal(),
			Authority: id.Authority().ID(),
			Instance:  id.Instance().ID(),
			Type:      id.Type().ID(),
			Version:   id.Version().ID(),
			Time:      id.TimeStamp().String(),
		})
	default:
		err = fmt.Errorf("unknown format: %s", format)
	}

	return err
}
