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
	"sync/atomic"
	"time"
)

// Chronos is an abstraction of wall clock used by factories.
type Chronos interface {
	// Milliseconds since Unix epoch
	T() int64
}

// Wall clock type, the default one
type clock struct {
	ticker func() int64
}

func (clock clock) T() int64 { return clock.ticker() }

// Creates instance of wall clock
func NewClock(opts ...Config) Chronos {
	clock := &clock{}
	defopt := []Config{WithClockUnix()}

	for _, opt := range append(defopt, opts...) {
		opt(clock)
	}
	return clock
}

// Create mock instance of wall clock, it advances by 1ms on every reading
// starting from the given instant.
func NewClockMock(at time.Time, opts ...Config) Chronos {
	t := at.UnixMilli() - 1
	clock := &clock{
		ticker: func() int64 { return atomic.AddInt64(&t, 1) },
	}

	for _, opt := range opts {
		opt(clock)
	}
	return clock
}

// Config option of wall clock behavior.
type Config func(*clock)

// WithClock configures a custom timestamp generator function, the function
// returns milliseconds since Unix epoch
func WithClock(ticker func() int64) Config {
	return func(clock *clock) {
		clock.ticker = ticker
	}
}

// WithClockUnix configures unix timestamp time.Now().UnixMilli() as generator function
func WithClockUnix() Config {
	return func(clock *clock) {
		clock.ticker = unixtime
	}
}

func unixtime() int64 {
	return time.Now().UnixMilli()
}
