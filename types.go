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
	"strconv"
	"strings"
)

// Permitted ranges of field values
const (
	MinAuthority = 1000
	MaxAuthority = 9999

	MinInstance = 0
	MaxInstance = 999

	MinType = 0
	MaxType = 99

	MinVersion = 0
	MaxVersion = 9
)

/*

Authority denotes the issuing body of reference number.
*/
type Authority struct{ id int }

/*

NewAuthority validates the identity of authority
*/
func NewAuthority(id int) (Authority, error) {
	if err := inRange("authority", id, MinAuthority, MaxAuthority); err != nil {
		return Authority{}, err
	}
	return Authority{id: id}, nil
}

/*

ParseAuthority decodes canonical decimal form of authority
*/
func ParseAuthority(s string) (Authority, error) {
	id, err := atoi("authority", s)
	if err != nil {
		return Authority{}, err
	}
	return NewAuthority(id)
}

// ID returns numerical identity
func (a Authority) ID() int { return a.id }

func (a Authority) String() string { return strconv.Itoa(a.id) }

/*

Instance disambiguates multiple generator deployments of single authority.
The type admits the widest range used by any layout, each layout narrows
it down to the width of its slot (see Layout.MaxInstance).
*/
type Instance struct{ id int }

/*

NewInstance validates the identity of instance
*/
func NewInstance(id int) (Instance, error) {
	if err := inRange("instance", id, MinInstance, MaxInstance); err != nil {
		return Instance{}, err
	}
	return Instance{id: id}, nil
}

// NewInstanceIn validates the instance against the slot of layout
func NewInstanceIn(l *Layout, id int) (Instance, error) {
	if err := inRange("instance", id, MinInstance, l.maxInstance); err != nil {
		return Instance{}, err
	}
	return Instance{id: id}, nil
}

/*

ParseInstance decodes canonical decimal form of instance
*/
func ParseInstance(s string) (Instance, error) {
	id, err := atoi("instance", s)
	if err != nil {
		return Instance{}, err
	}
	return NewInstance(id)
}

// ID returns numerical identity
func (i Instance) ID() int { return i.id }

func (i Instance) String() string { return strconv.Itoa(i.id) }

/*

Type classifies the kind of entity denoted by reference number.
*/
type Type struct{ id int }

/*

NewType validates the identity of type
*/
func NewType(id int) (Type, error) {
	if err := inRange("type", id, MinType, MaxType); err != nil {
		return Type{}, err
	}
	return Type{id: id}, nil
}

/*

ParseType decodes canonical decimal form of type
*/
func ParseType(s string) (Type, error) {
	id, err := atoi("type", s)
	if err != nil {
		return Type{}, err
	}
	return NewType(id)
}

// ID returns numerical identity
func (t Type) ID() int { return t.id }

func (t Type) String() string { return strconv.Itoa(t.id) }

/*

Version identifies the revision of the encoding scheme.
*/
type Version struct{ id int }

/*

NewVersion validates the identity of version
*/
func NewVersion(id int) (Version, error) {
	if err := inRange("version", id, MinVersion, MaxVersion); err != nil {
		return Version{}, err
	}
	return Version{id: id}, nil
}

/*

ParseVersion decodes canonical decimal form of version
*/
func ParseVersion(s string) (Version, error) {
	id, err := atoi("version", s)
	if err != nil {
		return Version{}, err
	}
	return NewVersion(id)
}

// ID returns numerical identity
func (v Version) ID() int { return v.id }

func (v Version) String() string { return strconv.Itoa(v.id) }

func inRange(field string, id, min, max int) error {
	if id < min || id > max {
		return &RangeError{Field: field, Value: int64(id), Min: int64(min), Max: int64(max)}
	}
	return nil
}

// atoi accepts decimal digits only, sign and spaces are not a part of
// canonical form
func atoi(field, s string) (int, error) {
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return 0, &FormatError{Input: s, Reason: "not a decimal " + field}
	}

	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, &FormatError{Input: s, Reason: field + " is too large"}
	}
	return id, nil
}
