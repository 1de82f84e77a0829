/*

  Copyright 2012 Dmitry Kolesnikov, All Rights Reserved

  Licensed under the Apache License, Version 2.0 (the "License");
  you may not use this file except in compliance with the License.
  You may obtain a copy of the License at

      http://www.apache.org/licenses/LICENSE-2.0

  Unless required by applicable law or agreed to in writing, software
  distributed under the License is distributed on an "AS IS" BASIS,
  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
  See the License for the specific language governing permissions and
  limitations under the License.

*/

package rn

import (
	"encoding/json"
	"fmt"
	"math/big"
	"time"
)

/*

RN is reference number: the tuple ⟨authority, instance, type, version,
timestamp⟩ together with its packed integer value. The value is immutable.
*/
type RN struct {
	authority Authority
	instance  Instance
	kind      Type
	version   Version
	timestamp TimeStamp
	layout    *Layout
	value     *big.Int
	encoded   string
}

// Option of reference number construction
type Option func(*RN)

// WithVersion sets the version digit, default is 0
func WithVersion(v Version) Option {
	return func(rn *RN) { rn.version = v }
}

// WithLayout selects the layout of packed form, default is Canonical
func WithLayout(l *Layout) Option {
	return func(rn *RN) { rn.layout = l }
}

/*

New creates reference number from its fields issued at the instant t.
It fails with RangeError if the instant is outside of permitted window
or the fields do not fit the layout.
*/
func New(a Authority, i Instance, t Type, at time.Time, opts ...Option) (RN, error) {
	ts, err := NewTimeStamp(at)
	if err != nil {
		return RN{}, err
	}

	return Make(a, i, t, ts, opts...)
}

/*

Make creates reference number from its fields and the time stamp
*/
func Make(a Authority, i Instance, t Type, ts TimeStamp, opts ...Option) (RN, error) {
	rn := RN{
		authority: a,
		instance:  i,
		kind:      t,
		timestamp: ts,
		layout:    Canonical,
	}

	for _, opt := range opts {
		opt(&rn)
	}

	if rn.layout == nil {
		rn.layout = Canonical
	}

	if err := rn.layout.validate(&rn); err != nil {
		return RN{}, err
	}

	rn.value, _ = new(big.Int).SetString(rn.layout.pack(&rn), 10)
	return rn.seal()
}

// seal computes the encoded form
func (rn RN) seal() (RN, error) {
	encoded, err := rn.layout.codec.Encode(rn.value)
	if err != nil {
		return RN{}, err
	}

	rn.encoded = encoded
	return rn, nil
}

/*

FromPacked parses the packed integer of the layout
*/
func (l *Layout) FromPacked(value *big.Int) (RN, error) {
	rn, err := l.parse(value)
	if err != nil {
		return RN{}, err
	}

	return rn.seal()
}

/*

FromDecimal parses the fixed width packed decimal form of the layout
*/
func (l *Layout) FromDecimal(s string) (RN, error) {
	if len(s) != l.width {
		return RN{}, &PackedFormError{Value: s, Layout: l.name, Width: l.width}
	}

	value, ok := new(big.Int).SetString(s, 10)
	if !ok || value.Sign() < 0 {
		return RN{}, &PackedFormError{Value: s, Layout: l.name, Width: l.width}
	}

	return l.FromPacked(value)
}

/*

Parse decodes encoded form, verifies its check digits and parses fields
*/
func (l *Layout) Parse(s string) (RN, error) {
	value, err := l.codec.Decode(s)
	if err != nil {
		return RN{}, err
	}

	return l.FromPacked(value)
}

// FromPacked parses the packed integer of canonical layout
func FromPacked(value *big.Int) (RN, error) { return Canonical.FromPacked(value) }

// FromDecimal parses the packed decimal form of canonical layout
func FromDecimal(s string) (RN, error) { return Canonical.FromDecimal(s) }

// Parse decodes canonical encoded form
func Parse(s string) (RN, error) { return Canonical.Parse(s) }

/*

ParseCalendar decodes reference numbers issued with superseded calendar
layout. The layout is never guessed, the caller knows the origin of input.
*/
func ParseCalendar(s string) (RN, error) { return Calendar.Parse(s) }

/*

ParseWith decodes encoded form of historical formats, using the codec
for alphabet and check digits and the layout for fields.
*/
func ParseWith(codec *Codec, layout *Layout, s string) (RN, error) {
	return layout.WithCodec(codec).Parse(s)
}

// MustParse decodes canonical encoded form, it panics on error
func MustParse(s string) RN {
	rn, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return rn
}

// Authority of reference number
func (rn RN) Authority() Authority { return rn.authority }

// Instance of reference number
func (rn RN) Instance() Instance { return rn.instance }

// Type of reference number
func (rn RN) Type() Type { return rn.kind }

// Version of reference number
func (rn RN) Version() Version { return rn.version }

// TimeStamp of reference number
func (rn RN) TimeStamp() TimeStamp { return rn.timestamp }

// Time when reference number was issued
func (rn RN) Time() time.Time { return rn.timestamp.Time() }

// Layout of packed form
func (rn RN) Layout() *Layout { return rn.layout }

// IsZero reports whether rn is not constructed
func (rn RN) IsZero() bool { return rn.value == nil }

/*

Value returns the packed integer
*/
func (rn RN) Value() *big.Int {
	if rn.value == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(rn.value)
}

/*

Decimal returns fixed width packed decimal form
*/
func (rn RN) Decimal() string {
	if rn.value == nil {
		return ""
	}
	s, _ := rn.layout.decimal(rn.value)
	return s
}

/*

Encode returns the encoded form, including check digits
*/
func (rn RN) Encode() string { return rn.encoded }

/*

String returns fielded form, primarily for debugging

	aaaa:i:tt:yyyy-MM-ddThh:mm:ss.uuuZ[:vN]
*/
func (rn RN) String() string {
	if rn.value == nil {
		return ""
	}

	s := fmt.Sprintf("%04d:%d:%02d:%s", rn.authority.id, rn.instance.id, rn.kind.id, rn.timestamp)
	if rn.layout.versioned {
		s += fmt.Sprintf(":v%d", rn.version.id)
	}
	return s
}

/*

Equal reports whether all fields are equal and packed by the same layout.
Equal numbers have equal packed integers, Compare of them is 0.
*/
func (rn RN) Equal(other RN) bool {
	return rn.layoutName() == other.layoutName() &&
		rn.authority == other.authority &&
		rn.instance == other.instance &&
		rn.kind == other.kind &&
		rn.version == other.version &&
		rn.timestamp == other.timestamp
}

/*

Compare orders reference numbers by the packed integer. It returns -1, 0
or +1. The millisecond field is the most significant one, therefore the
order is not chronological across second boundaries, use Before for it.
*/
func (rn RN) Compare(other RN) int {
	return rn.Value().Cmp(other.Value())
}

// Less compares reference numbers by the packed integer
func (rn RN) Less(other RN) bool { return rn.Compare(other) < 0 }

// Before reports whether rn was issued before other
func (rn RN) Before(other RN) bool { return rn.timestamp.Before(other.timestamp) }

func (rn RN) layoutName() string {
	if rn.layout == nil {
		return ""
	}
	return rn.layout.name
}

// text form is decoded with canonical layout only
func (rn RN) marshalable() error {
	if rn.layout != nil && rn.layout != Canonical {
		return &LayoutError{Layout: rn.layout.name}
	}
	return nil
}

/*

MarshalText encodes reference number to its encoded form. Numbers of
other than canonical layout fail with LayoutError, their encoded form
is not recognised by UnmarshalText.
*/
func (rn RN) MarshalText() ([]byte, error) {
	if err := rn.marshalable(); err != nil {
		return nil, err
	}
	return []byte(rn.encoded), nil
}

/*

UnmarshalText decodes encoded form of canonical layout
*/
func (rn *RN) UnmarshalText(b []byte) (err error) {
	*rn, err = Parse(string(b))
	return
}

/*

MarshalJSON encodes reference number to JSON string of encoded form
*/
func (rn RN) MarshalJSON() ([]byte, error) {
	if err := rn.marshalable(); err != nil {
		return nil, err
	}
	return json.Marshal(rn.encoded)
}

/*

UnmarshalJSON decodes JSON string of encoded form
*/
func (rn *RN) UnmarshalJSON(b []byte) (err error) {
	var val string
	if err = json.Unmarshal(b, &val); err != nil {
		return
	}
	*rn, err = Parse(val)
	return
}
