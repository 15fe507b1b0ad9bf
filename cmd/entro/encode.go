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

func newEncodeCommand() *cobra.Command {
	var input, output, algorithm string
	var numLanes int

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a file into an entro artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(input)

			if err != nil {
				return errors.Wrap(err, "entro: read input")
			}

			algo, err := codec.ParseAlgorithm(algorithm)

			if err != nil {
				return err
			}

			opts := cliOptions()
			opts.NumLanes = numLanes

			art, err := codec.Encode(algo, data, opts)

			if err != nil {
				return errors.Wrap(err, "entro: encode")
			}

			blob, err := art.MarshalBinary()

			if err != nil {
				return errors.Wrap(err, "entro: marshal artifact")
			}

			if err := os.WriteFile(output, blob, 0o644); err != nil {
				return errors.Wrap(err, "entro: write artifact")
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "in", "i", "", "input file path")
	cmd.Flags().StringVarP(&output, "out", "o", "", "artifact output path")
	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "RANS", "AC, RANS or MULTI_LANE_RANS")
	cmd.Flags().IntVar(&numLanes, "lanes", 4, "number of lanes for MULTI_LANE_RANS")
	cmd.MarkFlagRequired("in")
	cmd.MarkFlagRequired("out")

	return cmd
}
