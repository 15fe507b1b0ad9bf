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

package codec

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/flanglet/entro"
	"github.com/flanglet/entro/entropy"
	"github.com/flanglet/entro/model"
)

// ErrInvalidInput is returned for requests Encode cannot serve: an
// unknown algorithm, an alphabet larger than the requested M, or a
// codec core rejecting its parameters or input.
var ErrInvalidInput = errors.New("codec: invalid input")

// ErrFrequencyQuantization is returned when the frequency-table
// adjustment loop cannot make the table sum to the requested
// denominator M while keeping every frequency >= 1.
var ErrFrequencyQuantization = errors.New("codec: frequency quantization failed")

// ErrDecode is returned when a structurally valid Artifact fails to
// decode: an AC payload with residual bits, a rANS state outside its
// invariant window, or a slot lookup that finds no owning symbol.
var ErrDecode = errors.New("codec: decode failed")

// Options configures an Encode call. The zero value uses DefaultParams
// and DefaultNumLanes.
type Options struct {
	Params   entropy.Params
	NumLanes int
	Listener entro.Listener
	Logger   *zerolog.Logger
}

func (o Options) resolve() Options {
	if o.Params == (entropy.Params{}) {
		o.Params = entropy.DefaultParams()
	}

	if o.NumLanes == 0 {
		o.NumLanes = entropy.DefaultNumLanes
	}

	return o
}

func (o Options) notify(evt entro.Event) {
	if o.Listener != nil {
		o.Listener.ProcessEvent(evt)
	}
}

func (o Options) logger() zerolog.Logger {
	if o.Logger != nil {
		return *o.Logger
	}

	return log.Logger
}

// Encode builds a frequency model over data and runs it through the
// chosen algorithm's codec core, returning the resulting Artifact.
func Encode(algo Algorithm, data []byte, opts Options) (*Artifact, error) {
	opts = opts.resolve()
	runID := uuid.New()
	logger := opts.logger().With().Str("run_id", runID.String()).Str("algorithm", algo.String()).Logger()

	logger.Debug().Int("length", len(data)).Msg("encode start")
	opts.notify(entro.Event{Type: entro.EvtEncodeStart, Length: len(data), Msg: algo.String()})

	m := opts.Params.M

	if algo == AC {
		m = len(data)
	}

	mdl, err := model.BuildModel(data, m)

	if err != nil {
		logger.Error().Err(err).Msg("frequency model construction failed")

		if errors.Is(err, model.ErrAlphabetTooLarge) {
			return nil, errors.Wrap(ErrInvalidInput, err.Error())
		}

		return nil, errors.Wrap(ErrFrequencyQuantization, err.Error())
	}

	opts.notify(entro.Event{Type: entro.EvtModelBuilt, Length: len(mdl.Alphabet), Msg: "model built"})

	art := &Artifact{
		Algorithm: algo,
		Length:    len(data),
		Alphabet:  mdl.Alphabet,
		Freq:      mdl.Freq,
		Cum:       mdl.Cum,
		M:         mdl.M,
		K:         opts.Params.K,
		B:         opts.Params.B,
		L:         opts.Params.L,
	}

	switch algo {
	case AC:
		payload, bitCount, err := entropy.EncodeAC(data, mdl)

		if err != nil {
			logger.Error().Err(err).Msg("AC encode failed")
			return nil, errors.Wrap(ErrInvalidInput, err.Error())
		}

		art.Payload = payload
		art.BitCount = bitCount

	case RANS:
		payload, state, err := entropy.EncodeRANS(data, mdl, opts.Params)

		if err != nil {
			logger.Error().Err(err).Msg("rANS encode failed")
			return nil, errors.Wrap(ErrInvalidInput, err.Error())
		}

		art.Payload = payload
		art.State = state

	case MultiLaneRANS:
		payload, states, rem, err := entropy.EncodeMultiLaneRANS(data, mdl, opts.Params, opts.NumLanes)

		if err != nil {
			logger.Error().Err(err).Msg("multi-lane rANS encode failed")
			return nil, errors.Wrap(ErrInvalidInput, err.Error())
		}

		art.Payload = payload
		art.States = states
		art.NumLanes = opts.NumLanes
		art.Rem = rem

	default:
		return nil, errors.Wrapf(ErrInvalidInput, "unknown algorithm %v", algo)
	}

	art.RunID = runID
	logger.Info().Int("payload_bytes", len(art.Payload)).Msg("encode end")
	opts.notify(entro.Event{Type: entro.EvtEncodeEnd, Length: len(art.Payload), Msg: algo.String()})

	return art, nil
}

// Decode reverses Encode, reconstructing the original byte slice from
// an Artifact.
func Decode(art *Artifact, opts Options) ([]byte, error) {
	opts = opts.resolve()
	logger := opts.logger().With().Str("run_id", art.RunID.String()).Str("algorithm", art.Algorithm.String()).Logger()

	if err := art.validate(); err != nil {
		logger.Error().Err(err).Msg("artifact failed validation")
		return nil, err
	}

	logger.Debug().Int("length", art.Length).Msg("decode start")
	opts.notify(entro.Event{Type: entro.EvtDecodeStart, Length: art.Length, Msg: art.Algorithm.String()})

	mdl := art.model()

	var out []byte
	var err error

	switch art.Algorithm {
	case AC:
		out, err = entropy.DecodeAC(art.Payload, art.BitCount, mdl)

	case RANS:
		out, err = entropy.DecodeRANS(art.Payload, art.Length, art.State, mdl, art.params())

	case MultiLaneRANS:
		out, err = entropy.DecodeMultiLaneRANS(art.Payload, art.Length, art.States, art.Rem, art.NumLanes, mdl, art.params())

	default:
		return nil, errors.Wrapf(ErrCorruptArtifact, "unknown algorithm %v", art.Algorithm)
	}

	if err != nil {
		logger.Error().Err(err).Msg("decode failed")
		return nil, errors.Wrap(ErrDecode, err.Error())
	}

	logger.Info().Int("length", len(out)).Msg("decode end")
	opts.notify(entro.Event{Type: entro.EvtDecodeEnd, Length: len(out), Msg: art.Algorithm.String()})

	return out, nil
}
