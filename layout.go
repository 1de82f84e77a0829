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
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"
)

/*

Layout is the wire contract of packed decimal form: the order, width and
offset of each field. Layouts are never changed, a new one is introduced
instead together with the version bump.

	Canonical  uuu aaaa iii ttt ssssssssss v
	Calendar   uuu aaaa i   tt  yyyy MM dd hh mm ss

	u  millisecond of second       a  authority
	i  instance                    t  type
	s  seconds since Unix epoch    v  version
	y M d h m s calendar fields of UTC instant
*/
type Layout struct {
	name        string
	width       int
	maxInstance int
	versioned   bool
	maxTime     TimeStamp
	codec       *Codec
	pack        func(*RN) string
	unpack      func(string) fields
}

// fields extracted from packed decimal form
type fields struct {
	authority string
	instance  string
	kind      string
	version   string
	timestamp func() (TimeStamp, error)
}

// Canonical layout of reference numbers
var Canonical = &Layout{
	name:        "canonical",
	width:       24,
	maxInstance: 999,
	versioned:   true,
	maxTime:     TimeStamp{ms: 9999999999*1000 + 999},
	codec:       StdCodec,
	pack:        packCanonical,
	unpack:      unpackCanonical,
}

// Calendar is superseded layout of unversioned reference numbers
var Calendar = &Layout{
	name:        "calendar",
	width:       24,
	maxInstance: 9,
	versioned:   false,
	maxTime:     TimeStamp{ms: time.Date(MaxYear, 12, 31, 23, 59, 59, 999*int(time.Millisecond), time.UTC).UnixMilli()},
	codec:       StdCodec,
	pack:        packCalendar,
	unpack:      unpackCalendar,
}

// Name of layout
func (l *Layout) Name() string { return l.name }

// Width of packed decimal form in digits
func (l *Layout) Width() int { return l.width }

// MaxInstance is the largest instance that fits the layout
func (l *Layout) MaxInstance() int { return l.maxInstance }

// Versioned is true if the layout carries the version digit
func (l *Layout) Versioned() bool { return l.versioned }

// Codec of encoded form
func (l *Layout) Codec() *Codec { return l.codec }

/*

WithCodec derives a layout that uses another codec for encoded form,
e.g. Calendar.WithCodec(LegacyCodec) decodes numbers of superseded alphabet.
*/
func (l *Layout) WithCodec(codec *Codec) *Layout {
	c := *l
	c.codec = codec
	return &c
}

func (l *Layout) String() string { return l.name }

// validate the fields of reference number against slots of the layout
func (l *Layout) validate(rn *RN) error {
	if rn.instance.id > l.maxInstance {
		return &RangeError{Field: "instance", Value: int64(rn.instance.id), Min: MinInstance, Max: int64(l.maxInstance)}
	}

	if rn.timestamp.ms > l.maxTime.ms {
		return &RangeError{Field: "timestamp", Value: rn.timestamp.ms, Min: 0, Max: l.maxTime.ms}
	}

	if !l.versioned && rn.version.id != 0 {
		return &RangeError{Field: "version", Value: int64(rn.version.id), Min: 0, Max: 0}
	}

	return nil
}

// decimal form of packed value, zero padded to layout width
func (l *Layout) decimal(value *big.Int) (string, error) {
	if value.Sign() < 0 {
		return "", &PackedFormError{Value: value.String(), Layout: l.name, Width: l.width}
	}

	s := value.String()
	if len(s) > l.width {
		return "", &PackedFormError{Value: s, Layout: l.name, Width: l.width}
	}
	return strings.Repeat("0", l.width-len(s)) + s, nil
}

func (l *Layout) parse(value *big.Int) (RN, error) {
	s, err := l.decimal(value)
	if err != nil {
		return RN{}, err
	}

	f := l.unpack(s)
	rn := RN{layout: l, value: new(big.Int).Set(value)}

	if rn.kind, err = ParseType(f.kind); err != nil {
		return RN{}, err
	}

	if rn.instance, err = ParseInstance(f.instance); err != nil {
		return RN{}, err
	}

	if rn.authority, err = ParseAuthority(f.authority); err != nil {
		return RN{}, err
	}

	if l.versioned {
		if rn.version, err = ParseVersion(f.version); err != nil {
			return RN{}, err
		}
	}

	if rn.timestamp, err = f.timestamp(); err != nil {
		return RN{}, err
	}

	if err := l.validate(&rn); err != nil {
		return RN{}, err
	}

	return rn, nil
}

//
// canonical layout
//

func packCanonical(rn *RN) string {
	return fmt.Sprintf("%03d%04d%03d%03d%010d%01d",
		rn.timestamp.Milli(),
		rn.authority.id,
		rn.instance.id,
		rn.kind.id,
		rn.timestamp.Unix(),
		rn.version.id,
	)
}

func unpackCanonical(s string) fields {
	f := fields{
		authority: s[3:7],
		instance:  s[7:10],
		kind:      s[10:13],
		version:   s[23:24],
	}

	milli, sec := digits(s[0:3]), digits(s[13:23])
	f.timestamp = func() (TimeStamp, error) {
		return TimeStampFromUnixMilli(int64(sec)*1000 + int64(milli))
	}

	return f
}

//
// calendar layout
//

func packCalendar(rn *RN) string {
	t := rn.timestamp.Time()

	return fmt.Sprintf("%03d%04d%01d%02d%04d%02d%02d%02d%02d%02d",
		rn.timestamp.Milli(),
		rn.authority.id,
		rn.instance.id,
		rn.kind.id,
		t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second(),
	)
}

func unpackCalendar(s string) fields {
	f := fields{
		authority: s[3:7],
		instance:  s[7:8],
		kind:      s[8:10],
	}

	f.timestamp = func() (TimeStamp, error) {
		return TimeStampOf(
			digits(s[10:14]), // year
			digits(s[14:16]), // month
			digits(s[16:18]), // day
			digits(s[18:20]), // hour
			digits(s[20:22]), // minute
			digits(s[22:24]), // second
			digits(s[0:3]),   // milli
		)
	}

	return f
}

// digits converts a slice of decimal form, the form is produced from
// big.Int so it contains digits only
func digits(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
