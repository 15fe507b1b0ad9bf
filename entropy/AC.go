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

package entropy

import (
	"math"
	"math/big"

	"github.com/pkg/errors"

	"github.com/flanglet/entro"
	"github.com/flanglet/entro/bitstream"
)

// ErrResidualBits is returned when an AC payload leaves unconsumed bits
// that never resolved to a symbol.
var ErrResidualBits = errors.New("entropy: AC payload has residual bits")

// EncodeAC implements an exact-rational interval coder using math/big.Rat
// rather than a finite-precision integer coder with carry propagation.
// Exact rationals sidestep underflow/carry handling entirely at the cost
// of unbounded-precision arithmetic (see DESIGN.md for the tradeoff).
//
// AC does not require frequency-table quantization: it narrows directly
// on the raw symbol counts over M2 = len(data), which is exactly what
// model.BuildModel(data, len(data)) produces (the quantization loop is a
// no-op when the target denominator already equals the input length).
func EncodeAC(data []byte, m entro.Model) ([]byte, int, error) {
	if len(data) == 0 {
		return nil, 0, nil
	}

	idx := buildIndex(m.Alphabet)
	denom := big.NewInt(int64(m.M))
	sink := bitstream.NewBitSink()

	for _, s := range data {
		i := idx[s]

		if i < 0 {
			return nil, 0, ErrSymbolNotInAlphabet
		}

		lo := big.NewRat(0, 1)

		if i > 0 {
			lo = new(big.Rat).SetFrac(big.NewInt(int64(m.Cum[i])), denom)
		}

		hi := new(big.Rat).SetFrac(big.NewInt(int64(m.Cum[i]+m.Freq[i])), denom)

		bits, err := findRangeMinimumBits(lo, hi)

		if err != nil {
			return nil, 0, err
		}

		for _, b := range bits {
			if err := sink.AppendBit(b); err != nil {
				return nil, 0, err
			}
		}
	}

	payload, n, err := sink.Finalize()
	return payload, n, err
}

// DecodeAC narrows [L,U) one input bit at a time until exactly one
// symbol's range contains it, emits that symbol, and resets. Decoding
// runs until the payload is exhausted; a nonzero nbits at that point
// means residual bits remain, which is a decode error.
func DecodeAC(payload []byte, bitCount int, m entro.Model) ([]byte, error) {
	if bitCount == 0 {
		return []byte{}, nil
	}

	src := bitstream.NewBitSource(payload, bitCount)
	denom := big.NewInt(int64(m.M))

	var out []byte
	lo := big.NewRat(0, 1)
	hi := big.NewRat(1, 1)
	nbits := 0

	for src.HasMore() {
		b, err := src.ReadBit()

		if err != nil {
			return nil, err
		}

		nbits++

		if b == 1 {
			lo = new(big.Rat).Add(lo, pow2Inv(nbits))
		}

		hi = new(big.Rat).Add(lo, pow2Inv(nbits))

		if j := findRangeIndex(m, denom, lo, hi); j >= 0 {
			out = append(out, m.Alphabet[j])
			nbits = 0
			lo = big.NewRat(0, 1)
			hi = big.NewRat(1, 1)
		}
	}

	if nbits != 0 {
		return nil, ErrResidualBits
	}

	return out, nil
}

// findRangeIndex returns the unique j with Cum[j]/M <= lo and
// hi < (Cum[j]+Freq[j])/M, or -1 if no symbol's range yet contains [lo, hi).
func findRangeIndex(m entro.Model, denom *big.Int, lo, hi *big.Rat) int {
	for j := range m.Alphabet {
		rangeLo := big.NewRat(0, 1)

		if j > 0 {
			rangeLo = new(big.Rat).SetFrac(big.NewInt(int64(m.Cum[j])), denom)
		}

		rangeHi := new(big.Rat).SetFrac(big.NewInt(int64(m.Cum[j]+m.Freq[j])), denom)

		if rangeLo.Cmp(lo) <= 0 && hi.Cmp(rangeHi) < 0 {
			return j
		}
	}

	return -1
}

// findRangeMinimumBits finds the shortest bit string w of length k such
// that the dyadic interval [n/2^k, (n+1)/2^k), n the integer read from w,
// is strictly contained in [lo, hi). k starts at ceil(-log2(hi-lo)) (a
// float estimate) and grows until the containment check, done in exact
// rational arithmetic, actually holds - the float estimate only seeds
// the search, it never decides correctness.
func findRangeMinimumBits(lo, hi *big.Rat) ([]int, error) {
	width, _ := new(big.Rat).Sub(hi, lo).Float64()

	if width <= 0 {
		return nil, errors.New("entropy: AC interval is empty or inverted")
	}

	k := int(math.Ceil(-math.Log2(width)))

	if k < 0 {
		k = 0
	}

	for {
		n := ceilMul(lo, k)
		lhs := new(big.Rat).SetInt(new(big.Int).Add(n, big.NewInt(1)))
		rhs := new(big.Rat).Mul(hi, twoPow(k))

		if lhs.Cmp(rhs) < 0 {
			return intToBits(n, k), nil
		}

		k++
	}
}

// twoPow returns 2^k as an exact big.Rat.
func twoPow(k int) *big.Rat {
	return new(big.Rat).SetInt(new(big.Int).Lsh(big.NewInt(1), uint(k)))
}

// pow2Inv returns 1/2^n as an exact big.Rat.
func pow2Inv(n int) *big.Rat {
	return new(big.Rat).SetFrac(big.NewInt(1), new(big.Int).Lsh(big.NewInt(1), uint(n)))
}

// ceilMul returns ceil(r * 2^k) as a big.Int; r must be non-negative.
func ceilMul(r *big.Rat, k int) *big.Int {
	prod := new(big.Rat).Mul(r, twoPow(k))
	num := prod.Num()
	den := prod.Denom()

	q, rem := new(big.Int).QuoRem(num, den, new(big.Int))

	if rem.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}

	return q
}

// intToBits renders n as a fixed-width k-bit big-endian bit slice.
func intToBits(n *big.Int, k int) []int {
	bits := make([]int, k)

	for i := 0; i < k; i++ {
		bits[k-1-i] = int(new(big.Int).And(new(big.Int).Rsh(n, uint(i)), big.NewInt(1)).Int64())
	}

	return bits
}
