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
	"bytes"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/flanglet/entro/codec"
)

// ErrRoundtripMismatch is returned when a decoded artifact does not
// reproduce its original input byte for byte.
var ErrRoundtripMismatch = errors.New("entro: decoded output does not match input")

func newRoundtripCommand() *cobra.Command {
	var input, algorithm string
	var numLanes int

	cmd := &cobra.Command{
		Use:   "roundtrip",
		Short: "Encode then decode a file and report the compression ratio",
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

			var roundTripped codec.Artifact

			if err := roundTripped.UnmarshalBinary(blob); err != nil {
				return errors.Wrap(err, "entro: unmarshal artifact")
			}

			got, err := codec.Decode(&roundTripped, opts)

			if err != nil {
				return errors.Wrap(err, "entro: decode")
			}

			if !bytes.Equal(data, got) {
				return ErrRoundtripMismatch
			}

			ratio := 1.0

			if len(data) > 0 {
				ratio = float64(len(blob)) / float64(len(data))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d -> %d bytes (ratio %.4f)\n",
				algo, len(data), len(blob), ratio)

			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "in", "i", "", "input file path")
	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "RANS", "AC, RANS or MULTI_LANE_RANS")
	cmd.Flags().IntVar(&numLanes, "lanes", 4, "number of lanes for MULTI_LANE_RANS")
	cmd.MarkFlagRequired("in")

	return cmd
}
