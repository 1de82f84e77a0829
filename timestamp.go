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

import "time"

// Permitted years of time stamp
const (
	MinYear = 2000
	MaxYear = 9999
)

const isoMilli = "2006-01-02T15:04:05.000Z"

/*

TimeStamp is UTC instant with millisecond precision within the epoch
window of reference numbers (year 2000 to 9999 inclusive).
*/
type TimeStamp struct{ ms int64 }

/*

NewTimeStamp normalises the instant to UTC, truncates it to milliseconds
and validates the year.
*/
func NewTimeStamp(t time.Time) (TimeStamp, error) {
	t = t.UTC().Truncate(time.Millisecond)
	if err := inRange("year", t.Year(), MinYear, MaxYear); err != nil {
		return TimeStamp{}, err
	}
	return TimeStamp{ms: t.UnixMilli()}, nil
}

/*

TimeStampOf builds the time stamp from calendar fields. Fields that do
not denote an existing date (e.g. 30th of February) fail with DateError.
*/
func TimeStampOf(year, month, day, hour, min, sec, milli int) (TimeStamp, error) {
	if err := inRange("year", year, MinYear, MaxYear); err != nil {
		return TimeStamp{}, err
	}

	t := time.Date(year, time.Month(month), day, hour, min, sec, milli*int(time.Millisecond), time.UTC)

	// time.Date normalises overflowing fields, a real date survives the trip
	if t.Year() != year || int(t.Month()) != month || t.Day() != day ||
		t.Hour() != hour || t.Minute() != min || t.Second() != sec ||
		t.Nanosecond()/int(time.Millisecond) != milli || milli < 0 {
		return TimeStamp{}, &DateError{year, month, day, hour, min, sec, milli}
	}

	return TimeStamp{ms: t.UnixMilli()}, nil
}

/*

TimeStampFromUnixMilli builds the time stamp from milliseconds since epoch
*/
func TimeStampFromUnixMilli(ms int64) (TimeStamp, error) {
	return NewTimeStamp(time.UnixMilli(ms))
}

// Time returns the instant in UTC
func (ts TimeStamp) Time() time.Time { return time.UnixMilli(ts.ms).UTC() }

// UnixMilli returns milliseconds since Unix epoch
func (ts TimeStamp) UnixMilli() int64 { return ts.ms }

// Unix returns seconds since Unix epoch
func (ts TimeStamp) Unix() int64 { return ts.ms / 1000 }

// Milli returns millisecond of second
func (ts TimeStamp) Milli() int { return int(ts.ms % 1000) }

// Before reports whether the instant ts is before u
func (ts TimeStamp) Before(u TimeStamp) bool { return ts.ms < u.ms }

// String returns ISO-8601 UTC form, e.g. 2018-04-12T12:34:51.468Z
func (ts TimeStamp) String() string { return ts.Time().Format(isoMilli) }
