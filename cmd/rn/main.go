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

// Command rn issues, decodes and verifies reference numbers.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// cli is the state shared by sub-commands
type cli struct {
	cfg    *Config
	logger zerolog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	app := &cli{logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "rn",
		Short: "Reference numbers: issue, decode and verify",
		Long: `rn issues short, check-digit protected reference numbers for the tuple
⟨authority, instance, type⟩ and decodes them back to their fields.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}

			app.cfg = cfg
			app.logger = newLogger(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Pretty)
			return nil
		},
	}

	setFlags(root.PersistentFlags())

	root.AddCommand(
		newGenerateCmd(app),
		newDecodeCmd(app),
		newVerifyCmd(app),
		newPackCmd(app),
	)

	return root
}
