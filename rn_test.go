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

package rn_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/fogfish/it/v2"
	"github.com/fogfish/rn"
)

var (
	authority, _ = rn.NewAuthority(1234)
	instance, _  = rn.NewInstance(5)
	kind, _      = rn.NewType(6)
	issuedAt     = time.Date(2018, 4, 12, 12, 34, 51, 468*int(time.Millisecond), time.UTC)
)

const (
	encoded = "H31DDZ-TFSV8C-KELK2B"
	decimal = "468123400500615235364910"
	fielded = "1234:5:06:2018-04-12T12:34:51.468Z:v0"
)

func TestNew(t *testing.T) {
	id, err := rn.New(authority, instance, kind, issuedAt)

	it.Then(t).Should(
		it.True(err == nil),
		it.True(!id.IsZero()),
		it.Equal(id.Encode(), encoded),
		it.Equal(id.Decimal(), decimal),
		it.Equal(id.String(), fielded),
		it.Equal(id.Value().String(), decimal),
		it.Equal(id.Authority(), authority),
		it.Equal(id.Instance(), instance),
		it.Equal(id.Type(), kind),
		it.Equal(id.Version().ID(), 0),
		it.True(id.Time().Equal(issuedAt)),
		it.Equal(id.Layout(), rn.Canonical),
	)
}

func TestNewWithVersion(t *testing.T) {
	v3, _ := rn.NewVersion(3)
	id, err := rn.New(authority, instance, kind, issuedAt, rn.WithVersion(v3))

	it.Then(t).Should(
		it.True(err == nil),
		it.Equal(id.Decimal(), "468123400500615235364913"),
		it.Equal(id.Encode(), "H31DDZ-TFSV8C-KELN15"),
		it.Equal(id.String(), "1234:5:06:2018-04-12T12:34:51.468Z:v3"),
	)

	back, err := rn.Parse(id.Encode())
	it.Then(t).Should(
		it.True(err == nil),
		it.Equal(back.Version(), v3),
	)
}

func TestParse(t *testing.T) {
	for _, in := range []string{encoded, "h31ddz-tfsv8c-kelk2b", "H31DDZTFSV8CKELK2B", "H31DDZ TFSV8C KELK2B"} {
		id, err := rn.Parse(in)
		it.Then(t).Should(
			it.True(err == nil),
			it.Equal(id.String(), fielded),
			it.Equal(id.Encode(), encoded),
		)
	}
}

func TestParseCorrupted(t *testing.T) {
	_, err := rn.Parse("H31DDZ-TFSV8C-KELK20")

	var e *rn.ChecksumError
	it.Then(t).Should(it.True(errors.As(err, &e)))
	it.Then(t).Should(
		it.True(errors.Is(err, rn.ErrChecksum)),
		it.Equal(e.Value, "H31DDZ-TFSV8C-KELK20"),
	)
}

func TestParseIllegal(t *testing.T) {
	_, err := rn.Parse("AI0")

	it.Then(t).Should(
		it.True(errors.Is(err, rn.ErrFormat)),
		it.Equal(err.Error(), "illegal character in encoded number: 'AI0' should not contain 'I'"),
	)
}

func TestParseFieldOutOfRange(t *testing.T) {
	for _, in := range []string{
		"AAB36W-EJ6H76-5PHJ6L", // authority 0999
		"AAAAAA-L28Q0W-3ZWTES", // authority 0000
		"AACH9T-2Y8Z71-8LW8RN", // type 100
		"AACH9T-2RJ97V-3HPQ07", // 1999-12-31T23:59:59Z
	} {
		_, err := rn.Parse(in)
		it.Then(t).Should(
			it.True(errors.Is(err, rn.ErrRange)),
		)
	}
}

func TestMustParse(t *testing.T) {
	id := rn.MustParse(encoded)
	it.Then(t).Should(it.Equal(id.String(), fielded))

	defer func() {
		it.Then(t).ShouldNot(it.True(recover() == nil))
	}()
	rn.MustParse("H31DDZ-TFSV8C-KELK20")
}

func TestFromDecimal(t *testing.T) {
	id, err := rn.FromDecimal(decimal)
	it.Then(t).Should(
		it.True(err == nil),
		it.Equal(id.Encode(), encoded),
		it.Equal(id.String(), fielded),
	)

	for _, in := range []string{"", "46812340050061523536491", "4681234005006152353649100", "-68123400500615235364910", "46812340050061523536491x"} {
		_, err := rn.FromDecimal(in)
		it.Then(t).Should(
			it.True(errors.Is(err, rn.ErrPackedForm)),
		)
	}
}

func TestFromPacked(t *testing.T) {
	id, err := rn.FromPacked(bigOf(decimal))
	it.Then(t).Should(
		it.True(err == nil),
		it.Equal(id.Encode(), encoded),
	)

	_, err = rn.FromPacked(bigOf("1" + decimal))
	it.Then(t).Should(it.True(errors.Is(err, rn.ErrPackedForm)))
}

func TestCanonicalTimeWindow(t *testing.T) {
	last := time.UnixMilli(9999999999*1000 + 999).UTC()

	id, err := rn.New(authority, instance, kind, last)
	it.Then(t).Should(
		it.True(err == nil),
		it.Equal(id.Decimal()[13:23], "9999999999"),
	)

	_, err = rn.New(authority, instance, kind, last.Add(time.Millisecond))
	it.Then(t).Should(it.True(errors.Is(err, rn.ErrRange)))

	_, err = rn.New(authority, instance, kind, time.Date(1999, 12, 31, 23, 59, 59, 0, time.UTC))
	it.Then(t).Should(it.True(errors.Is(err, rn.ErrRange)))
}

func TestCanonicalInstance(t *testing.T) {
	i999, _ := rn.NewInstance(999)
	id, err := rn.New(authority, i999, kind, issuedAt)

	it.Then(t).Should(
		it.True(err == nil),
		it.Equal(id.Instance().ID(), 999),
	)
}

func TestCalendar(t *testing.T) {
	at := time.Date(2018, 4, 12, 13, 45, 18, 283*int(time.Millisecond), time.UTC)
	id, err := rn.New(authority, instance, kind, at, rn.WithLayout(rn.Calendar))

	it.Then(t).Should(
		it.True(err == nil),
		it.Equal(id.Decimal(), "283123450620180412134518"),
		it.Equal(id.Encode(), "E057TK-HRLBQW-0PB99N"),
		it.Equal(id.String(), "1234:5:06:2018-04-12T13:45:18.283Z"),
		it.Equal(id.Layout(), rn.Calendar),
	)

	back, err := rn.ParseCalendar("E057TK-HRLBQW-0PB99N")
	it.Then(t).Should(
		it.True(err == nil),
		it.True(back.Equal(id)),
		it.True(back.Time().Equal(at)),
	)

	_, err = rn.ParseCalendar("E057TK-HRL0QW-0P099N")
	it.Then(t).Should(it.True(errors.Is(err, rn.ErrChecksum)))
}

func TestCalendarLegacyAlphabet(t *testing.T) {
	legacy := rn.Calendar.WithCodec(rn.LegacyCodec)

	id, err := legacy.Parse("E168TK-HRLBQW-1PB00N")
	it.Then(t).Should(
		it.True(err == nil),
		it.Equal(id.Decimal(), "283123450620180412134518"),
		it.Equal(id.String(), "1234:5:06:2018-04-12T13:45:18.283Z"),
	)

	same, err := rn.ParseWith(rn.LegacyCodec, rn.Calendar, "e168tk hrlbqw 1pb00n")
	it.Then(t).Should(
		it.True(err == nil),
		it.True(same.Equal(id)),
		it.Equal(same.Encode(), "E168TK-HRLBQW-1PB00N"),
	)

	// legacy alphabet is never guessed
	_, err = rn.ParseCalendar("E168TK-HRLBQW-1PB00N")
	it.Then(t).Should(it.True(errors.Is(err, rn.ErrChecksum)))
}

func TestCalendarBounds(t *testing.T) {
	i9, err := rn.NewInstanceIn(rn.Calendar, 9)
	it.Then(t).Should(
		it.True(err == nil),
		it.Equal(i9.ID(), 9),
	)

	_, err = rn.NewInstanceIn(rn.Calendar, 10)
	it.Then(t).Should(it.True(errors.Is(err, rn.ErrRange)))

	i10, _ := rn.NewInstance(10)
	_, err = rn.New(authority, i10, kind, issuedAt, rn.WithLayout(rn.Calendar))
	it.Then(t).Should(it.True(errors.Is(err, rn.ErrRange)))

	v1, _ := rn.NewVersion(1)
	_, err = rn.New(authority, instance, kind, issuedAt, rn.WithLayout(rn.Calendar), rn.WithVersion(v1))
	it.Then(t).Should(it.True(errors.Is(err, rn.ErrRange)))

	// 30th of February
	_, err = rn.Calendar.FromDecimal("283123450620180230134518")
	it.Then(t).Should(it.True(errors.Is(err, rn.ErrDate)))

	// month 13
	_, err = rn.Calendar.FromDecimal("283123450620181312134518")
	it.Then(t).Should(it.True(errors.Is(err, rn.ErrDate)))
}

func TestLayoutIsNotGuessed(t *testing.T) {
	// calendar number has valid check digits, its canonical type is 201
	_, err := rn.Parse("E057TK-HRLBQW-0PB99N")

	var e *rn.RangeError
	it.Then(t).Should(it.True(errors.As(err, &e)))
	it.Then(t).Should(
		it.Equal(e.Field, "type"),
		it.Equal(e.Value, int64(201)),
	)
}

func TestRoundTrip(t *testing.T) {
	c := rn.NewClockMock(time.Date(2024, 7, 1, 10, 20, 30, 0, time.UTC))
	a, _ := rn.NewAuthority(9999)
	i, _ := rn.NewInstance(0)
	k, _ := rn.NewType(99)

	for n := 0; n < 2500; n++ {
		at := time.UnixMilli(c.T())
		id, err := rn.New(a, i, k, at)
		it.Then(t).Should(it.True(err == nil))

		back, err := rn.Parse(id.Encode())
		it.Then(t).Should(
			it.True(err == nil),
			it.True(back.Equal(id)),
			it.Equal(back.Compare(id), 0),
			it.Equal(back.Decimal(), id.Decimal()),
		)
	}
}

func TestCompare(t *testing.T) {
	a, _ := rn.New(authority, instance, kind, issuedAt)
	b, _ := rn.New(authority, instance, kind, issuedAt.Add(time.Millisecond))
	c, _ := rn.New(authority, instance, kind, issuedAt.Add(600*time.Millisecond))

	it.Then(t).Should(
		it.Equal(a.Compare(a), 0),
		it.Equal(a.Compare(b), -1),
		it.Equal(b.Compare(a), 1),
		it.True(a.Less(b)),
		it.True(a.Before(b)),
		// 12:34:52.068 packs below 12:34:51.469
		it.True(c.Less(b)),
		it.True(b.Before(c)),
		it.True(!a.Equal(b)),
	)
}

func TestJSON(t *testing.T) {
	type Order struct {
		ID rn.RN `json:"id"`
	}

	id := rn.MustParse(encoded)
	b, err := json.Marshal(Order{ID: id})
	it.Then(t).Should(
		it.True(err == nil),
		it.Equal(string(b), `{"id":"H31DDZ-TFSV8C-KELK2B"}`),
	)

	var order Order
	err = json.Unmarshal(b, &order)
	it.Then(t).Should(
		it.True(err == nil),
		it.True(order.ID.Equal(id)),
	)

	err = json.Unmarshal([]byte(`{"id":"H31DDZ-TFSV8C-KELK20"}`), &order)
	it.Then(t).Should(it.True(errors.Is(err, rn.ErrChecksum)))
}

func TestText(t *testing.T) {
	id := rn.MustParse(encoded)
	b, err := id.MarshalText()
	it.Then(t).Should(
		it.True(err == nil),
		it.Equal(string(b), encoded),
	)

	var back rn.RN
	it.Then(t).Should(
		it.True(back.UnmarshalText(b) == nil),
		it.True(back.Equal(id)),
	)
}

func TestZero(t *testing.T) {
	var id rn.RN

	it.Then(t).Should(
		it.True(id.IsZero()),
		it.Equal(id.String(), ""),
		it.Equal(id.Decimal(), ""),
		it.Equal(id.Encode(), ""),
		it.Equal(id.Value().Sign(), 0),
	)
}

func TestMarshalCanonicalOnly(t *testing.T) {
	at := time.Date(2018, 4, 12, 13, 45, 18, 283*int(time.Millisecond), time.UTC)
	id, _ := rn.New(authority, instance, kind, at, rn.WithLayout(rn.Calendar))

	_, errJSON := json.Marshal(id)
	_, errText := id.MarshalText()

	var e *rn.LayoutError
	it.Then(t).Should(it.True(errors.As(errText, &e)))
	it.Then(t).Should(
		it.True(errors.Is(errJSON, rn.ErrLayout)),
		it.True(errors.Is(errText, rn.ErrLayout)),
		it.Equal(e.Layout, "calendar"),
		// the encoded form stays available
		it.Equal(id.Encode(), "E057TK-HRLBQW-0PB99N"),
	)

	legacy, _ := rn.ParseWith(rn.LegacyCodec, rn.Calendar, "E168TK-HRLBQW-1PB00N")
	_, err := json.Marshal(legacy)
	it.Then(t).Should(it.True(errors.Is(err, rn.ErrLayout)))
}

func TestEqualLayout(t *testing.T) {
	at := time.Date(2018, 4, 12, 13, 45, 18, 283*int(time.Millisecond), time.UTC)
	canonical, _ := rn.New(authority, instance, kind, at)
	calendar, _ := rn.New(authority, instance, kind, at, rn.WithLayout(rn.Calendar))
	legacy, _ := rn.ParseWith(rn.LegacyCodec, rn.Calendar, "E168TK-HRLBQW-1PB00N")

	it.Then(t).Should(
		it.True(!canonical.Equal(calendar)),
		it.True(canonical.Compare(calendar) != 0),
		it.True(calendar.Equal(legacy)),
		it.Equal(calendar.Compare(legacy), 0),
	)
}

func TestNilLayout(t *testing.T) {
	id, err := rn.New(authority, instance, kind, issuedAt, rn.WithLayout(nil))

	it.Then(t).Should(
		it.True(err == nil),
		it.Equal(id.Layout(), rn.Canonical),
		it.Equal(id.Encode(), encoded),
	)
}
