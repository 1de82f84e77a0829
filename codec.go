//
//   Copyright 2012 Dmitry Kolesnikov, All Rights Reserved
//
//   Licensed under the Apache License, Version 2.0 (the "License");
//   you may not use this file except in compliance with the License.
//   You may obtain a copy of the License at
//
//       http://www.apache.org/licenses/LICENSE-2.0
//
//   Unless required by applicable law or agreed to in writing, software
//   distributed under the License is distributed on an "AS IS" BASIS,
//   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//   See the License for the specific language governing permissions and
//   limitations under the License.
//

package rn

import (
	"math/big"
	"strings"
	"unicode"
)

// Alphabet of encoded form. It excludes I, O, U and lower case letters.
const Alphabet = "ABCDEFGHJKLMNPQRSTVWXYZ0123456789"

// LegacyAlphabet is superseded ordering of the alphabet, digit zero follows nine.
const LegacyAlphabet = "ABCDEFGHJKLMNPQRSTVWXYZ1234567890"

// Default shape of encoded form
const (
	Digits    = 18
	GroupSize = 6
	Separator = '-'
)

/*

Codec converts non-negative integers to check-digited strings over
the alphabet and back.

For some value NN the check digits cc are

	cc = P - ((NN * R) mod P)

where B = base², P is the largest prime below B and R = B - P. Since
B mod P = R mod P, the checked value CC = NN * B + cc satisfies
CC mod P = 0. NN is recovered as CC div B.
*/
type Codec struct {
	alphabet string
	index    [unicode.MaxASCII + 1]int8
	base     *big.Int
	squared  *big.Int
	prime    *big.Int
	residual *big.Int
	limit    *big.Int
	digits   int
	group    int
}

// StdCodec is the codec of canonical encoded form
var StdCodec = NewCodec(Alphabet, Digits, GroupSize)

// LegacyCodec decodes numbers issued with superseded alphabet
var LegacyCodec = NewCodec(LegacyAlphabet, Digits, GroupSize)

/*

NewCodec creates codec for the alphabet of unique upper case ASCII symbols.
The encoded form has fixed number of digits, grouped for readability.
*/
func NewCodec(alphabet string, digits, group int) *Codec {
	if len(alphabet) < 2 || digits < 3 {
		panic("rn: codec requires at least 2 symbols and 3 digits")
	}

	c := &Codec{
		alphabet: alphabet,
		base:     big.NewInt(int64(len(alphabet))),
		digits:   digits,
		group:    group,
	}

	for i := range c.index {
		c.index[i] = -1
	}
	for i, x := range alphabet {
		if x > unicode.MaxASCII || c.index[x] != -1 {
			panic("rn: alphabet must be unique ASCII symbols")
		}
		c.index[x] = int8(i)
	}

	c.squared = new(big.Int).Mul(c.base, c.base)
	c.prime = largestPrimeBelow(c.squared)
	c.residual = new(big.Int).Sub(c.squared, c.prime)
	c.limit = new(big.Int).Exp(c.base, big.NewInt(int64(digits)), nil)

	return c
}

func largestPrimeBelow(n *big.Int) *big.Int {
	p := new(big.Int).Sub(n, big.NewInt(1))
	for !p.ProbablyPrime(20) {
		p.Sub(p, big.NewInt(1))
	}
	return p
}

// Base of numeral system
func (c *Codec) Base() int { return len(c.alphabet) }

// Prime used for check digits
func (c *Codec) Prime() int64 { return c.prime.Int64() }

// Digits of encoded form, excluding separators
func (c *Codec) Digits() int { return c.digits }

/*

Encode serialises the integer with check digits to grouped alphabet form
*/
func (c *Codec) Encode(nn *big.Int) (string, error) {
	if nn.Sign() < 0 {
		return "", &OverflowError{Value: nn.String()}
	}

	cc := c.WithCheckDigits(nn)
	if cc.Cmp(c.limit) >= 0 {
		return "", &OverflowError{Value: nn.String(), Limit: c.MaxValue().String()}
	}

	return c.GroupDigits(c.AlphabetEncode(cc)), nil
}

/*

Decode verifies check digits of encoded form and returns the packed
integer. Whitespaces and separators are ignored, letters are case
insensitive.
*/
func (c *Codec) Decode(s string) (*big.Int, error) {
	cc, err := c.AlphabetDecode(s)
	if err != nil {
		return nil, err
	}

	return c.CheckCheckDigits(cc)
}

/*

Valid checks the integrity of encoded form
*/
func (c *Codec) Valid(s string) bool {
	_, err := c.Decode(s)
	return err == nil
}

/*

MaxValue is the largest integer that fits encoded form together with
its check digits.
*/
func (c *Codec) MaxValue() *big.Int {
	// CC = NN * B + cc < base^digits, where 1 <= cc <= P
	v := new(big.Int).Sub(c.limit, big.NewInt(1))
	v.Div(v, c.squared)

	for c.WithCheckDigits(v).Cmp(c.limit) >= 0 {
		v.Sub(v, big.NewInt(1))
	}
	return v
}

/*

WithCheckDigits appends check digits to the integer
*/
func (c *Codec) WithCheckDigits(nn *big.Int) *big.Int {
	cc := new(big.Int).Mul(nn, c.residual)
	cc.Mod(cc, c.prime)
	cc.Sub(c.prime, cc)

	return cc.Add(cc, new(big.Int).Mul(nn, c.squared))
}

/*

CheckCheckDigits verifies the integer and strips its check digits
*/
func (c *Codec) CheckCheckDigits(cc *big.Int) (*big.Int, error) {
	if new(big.Int).Mod(cc, c.prime).Sign() != 0 {
		return nil, &ChecksumError{Value: c.GroupDigits(c.AlphabetEncode(cc))}
	}

	return new(big.Int).Div(cc, c.squared), nil
}

/*

AlphabetEncode serialises the integer to alphabet, most significant digit
first. The output is left padded by zero symbol up to the number of digits.
*/
func (c *Codec) AlphabetEncode(nn *big.Int) string {
	b := make([]byte, 0, c.digits)
	i := new(big.Int).Set(nn)
	d := new(big.Int)

	for i.Sign() > 0 || len(b) < c.digits {
		i.DivMod(i, c.base, d)
		b = append(b, c.alphabet[d.Int64()])
	}

	for l, r := 0, len(b)-1; l < r; l, r = l+1, r-1 {
		b[l], b[r] = b[r], b[l]
	}

	return string(b)
}

/*

AlphabetDecode parses alphabet form to integer without verification of
check digits.
*/
func (c *Codec) AlphabetDecode(s string) (*big.Int, error) {
	digits := c.clean(s)
	if len(digits) == 0 {
		return nil, &FormatError{Input: s, Reason: "no digits"}
	}

	for _, x := range digits {
		if x > unicode.MaxASCII || c.index[x] == -1 {
			return nil, &FormatError{Input: digits, Char: x}
		}
	}

	if len(digits) > c.digits {
		return nil, &FormatError{Input: digits, Reason: "too many digits"}
	}

	v := new(big.Int)
	for _, x := range digits {
		v.Mul(v, c.base)
		v.Add(v, big.NewInt(int64(c.index[x])))
	}

	return v, nil
}

// clean drops separators, whitespaces and folds the case
func (c *Codec) clean(s string) string {
	return strings.Map(
		func(r rune) rune {
			if r == Separator || unicode.IsSpace(r) {
				return -1
			}
			return unicode.ToUpper(r)
		},
		s,
	)
}

/*

GroupDigits inserts separator between groups of digits
*/
func (c *Codec) GroupDigits(digits string) string {
	if c.group <= 0 || len(digits) <= c.group {
		return digits
	}

	var sb strings.Builder
	sb.Grow(len(digits) + len(digits)/c.group)

	for i := 0; i < len(digits); i += c.group {
		if i > 0 {
			sb.WriteByte(Separator)
		}
		sb.WriteString(digits[i:min(i+c.group, len(digits))])
	}

	return sb.String()
}
