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

// Package codec ties a codec core in package entropy to an Artifact: the
// self-describing header + payload pair that a caller serializes,
// stores, or ships, and later hands back unchanged for decode.
package codec

import (
	"strings"

	"github.com/pkg/errors"
)

// Algorithm selects which codec core an Artifact was produced by.
type Algorithm uint8

const (
	AC Algorithm = iota
	RANS
	MultiLaneRANS
)

// ErrUnknownAlgorithm is returned by ParseAlgorithm for an unrecognized name.
var ErrUnknownAlgorithm = errors.New("codec: unknown algorithm name")

func (a Algorithm) String() string {
	switch a {
	case AC:
		return "AC"
	case RANS:
		return "RANS"
	case MultiLaneRANS:
		return "MULTI_LANE_RANS"
	default:
		return "UNKNOWN"
	}
}

// ParseAlgorithm maps a CLI/config algorithm name to its Algorithm value.
// Matching is case-insensitive and accepts "multi-lane-rans" alongside
// the canonical "MULTI_LANE_RANS" spelling.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToUpper(strings.ReplaceAll(name, "-", "_")) {
	case "AC":
		return AC, nil
	case "RANS":
		return RANS, nil
	case "MULTI_LANE_RANS":
		return MultiLaneRANS, nil
	default:
		return 0, errors.Wrapf(ErrUnknownAlgorithm, "%q", name)
	}
}
