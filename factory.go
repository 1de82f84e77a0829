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
	"sync"
	"time"

	"github.com/rs/zerolog"
)

/*

Factory issues reference numbers for the tuple ⟨authority, instance, type⟩.
Time stamps of issued numbers are strictly increasing: the factory waits
for the next millisecond if the clock does not advance or steps backward.

Factories are obtained from Registry, which guarantees a single factory
per tuple within the process and, with the lock, within the host.
*/
type Factory struct {
	authority Authority
	instance  Instance
	kind      Type
	version   Version
	layout    *Layout
	clock     Chronos
	sleep     time.Duration
	logger    zerolog.Logger
	lock      *LockFile
	onClose   func()

	mu     sync.Mutex
	prev   int64
	closed bool
}

// Authority of issued numbers
func (f *Factory) Authority() Authority { return f.authority }

// Instance of issued numbers
func (f *Factory) Instance() Instance { return f.instance }

// Type of issued numbers
func (f *Factory) Type() Type { return f.kind }

// Version of issued numbers
func (f *Factory) Version() Version { return f.version }

/*

Generate issues a fresh reference number. The call blocks for a few
milliseconds at most when numbers are requested faster than the clock
advances.
*/
func (f *Factory) Generate() (RN, error) {
	t, err := f.reserve()
	if err != nil {
		return RN{}, err
	}

	ts, err := TimeStampFromUnixMilli(t)
	if err != nil {
		return RN{}, err
	}

	return Make(f.authority, f.instance, f.kind, ts,
		WithVersion(f.version),
		WithLayout(f.layout),
	)
}

// reserve advances the watermark to the next reading of the clock
func (f *Factory) reserve() (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return 0, ErrFactoryClosed
	}

	t := f.clock.T()
	if t < f.prev {
		f.logger.Debug().
			Int64("clock", t).
			Int64("watermark", f.prev).
			Msg("clock stepped backward, waiting")
	}

	for t <= f.prev {
		time.Sleep(f.sleep)
		t = f.clock.T()
	}

	f.prev = t
	return t, nil
}

/*

GenerateN issues n reference numbers in the order of issue
*/
func (f *Factory) GenerateN(n int) ([]RN, error) {
	seq := make([]RN, 0, n)
	for i := 0; i < n; i++ {
		rn, err := f.Generate()
		if err != nil {
			return nil, err
		}
		seq = append(seq, rn)
	}
	return seq, nil
}

/*

Close releases the host lock and detaches the factory from its registry.
It is safe to call Close multiple times.
*/
func (f *Factory) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	f.mu.Unlock()

	if f.onClose != nil {
		f.onClose()
	}

	if f.lock == nil {
		return nil
	}

	f.logger.Info().Str("lock", f.lock.Path()).Msg("factory closed")
	return f.lock.Close()
}
