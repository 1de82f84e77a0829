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

package rn

import (
	"errors"
	"fmt"
)

// Kinds of failures reported by the library. Use errors.Is to classify
// an error and errors.As to access the typed details.
var (
	ErrRange              = errors.New("value out of range")
	ErrFormat             = errors.New("malformed encoded number")
	ErrChecksum           = errors.New("check digits are not intact")
	ErrDate               = errors.New("invalid calendar date")
	ErrOverflow           = errors.New("numeric overflow")
	ErrPackedForm         = errors.New("invalid packed form")
	ErrDuplicateGenerator = errors.New("generator is owned by another process")
	ErrLockUnsupported    = errors.New("host lock is not supported on this platform")
	ErrFactoryClosed      = errors.New("factory is closed")
	ErrLayout             = errors.New("layout is not supported")
)

// RangeError is a field value outside of its permitted domain
type RangeError struct {
	Field string
	Value int64
	Min   int64
	Max   int64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("illegal %s: %d is not in the range %d : %d", e.Field, e.Value, e.Min, e.Max)
}

func (e *RangeError) Unwrap() error { return ErrRange }

// FormatError is malformed input of codec
type FormatError struct {
	Input  string
	Char   rune
	Reason string
}

func (e *FormatError) Error() string {
	if e.Char != 0 {
		return fmt.Sprintf("illegal character in encoded number: '%s' should not contain '%c'", e.Input, e.Char)
	}
	return fmt.Sprintf("bad encoded number '%s': %s", e.Input, e.Reason)
}

func (e *FormatError) Unwrap() error { return ErrFormat }

// ChecksumError is well-formed input that fails the check digits
// verification. Value is the re-encoded (grouped) form of the number.
type ChecksumError struct {
	Value string
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("value '%s' does not have intact check digits", e.Value)
}

func (e *ChecksumError) Unwrap() error { return ErrChecksum }

// DateError is a numerically valid set of fields that is not a calendar date
type DateError struct {
	Year, Month, Day, Hour, Min, Sec, Milli int
}

func (e *DateError) Error() string {
	return fmt.Sprintf("invalid date: %04d-%02d-%02dT%02d:%02d:%02d.%03dZ",
		e.Year, e.Month, e.Day, e.Hour, e.Min, e.Sec, e.Milli)
}

func (e *DateError) Unwrap() error { return ErrDate }

// OverflowError is a value that does not fit the fixed digit budget
type OverflowError struct {
	Value string
	Limit string
}

func (e *OverflowError) Error() string {
	if e.Limit == "" {
		return fmt.Sprintf("negative values are not allowed: %s", e.Value)
	}
	return fmt.Sprintf("numeric overflow: %s is larger than %s", e.Value, e.Limit)
}

func (e *OverflowError) Unwrap() error { return ErrOverflow }

// PackedFormError is a packed integer that does not have the layout width
type PackedFormError struct {
	Value  string
	Layout string
	Width  int
}

func (e *PackedFormError) Error() string {
	return fmt.Sprintf("bad decimal form for %s layout (expected %d digits): %s", e.Layout, e.Width, e.Value)
}

func (e *PackedFormError) Unwrap() error { return ErrPackedForm }

// DuplicateGeneratorError is a generator lock held by another process
type DuplicateGeneratorError struct {
	Lock string
}

func (e *DuplicateGeneratorError) Error() string {
	return fmt.Sprintf("generator lock %s is held by another process", e.Lock)
}

func (e *DuplicateGeneratorError) Unwrap() error { return ErrDuplicateGenerator }

// LayoutError is an operation that is not supported by the layout
type LayoutError struct {
	Layout string
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("reference number of %s layout cannot be marshalled, only canonical one", e.Layout)
}

func (e *LayoutError) Unwrap() error { return ErrLayout }
