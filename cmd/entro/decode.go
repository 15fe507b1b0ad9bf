/*
Copyright 2011-2026 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/flanglet/entro/codec"
)

func newDecodeCommand() *cobra.Command {
	var input, output string

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode an entro artifact back into the original bytes",
		RunE: func(cmd *cobra.Command, args []string) error {
			blob, err := os.ReadFile(input)

			if err != nil {
				return errors.Wrap(err, "entro: read artifact")
			}

			var art codec.Artifact

			if err := art.UnmarshalBinary(blob); err != nil {
				return errors.Wrap(err, "entro: unmarshal artifact")
			}

			data, err := codec.Decode(&art, cliOptions())

			if err != nil {
				return errors.Wrap(err, "entro: decode")
			}

			if err := os.WriteFile(output, data, 0o644); err != nil {
				return errors.Wrap(err, "entro: write output")
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "in", "i", "", "artifact input path")
	cmd.Flags().StringVarP(&output, "out", "o", "", "decoded output path")
	cmd.MarkFlagRequired("in")
	cmd.MarkFlagRequired("out")

	return cmd
}
