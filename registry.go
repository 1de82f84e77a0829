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
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// tuple identifies the factory
type tuple struct {
	authority Authority
	instance  Instance
	kind      Type
}

/*

Registry owns factories of the process, one per tuple ⟨authority,
instance, type⟩. Applications create a registry at startup and pass it
where reference numbers are issued.
*/
type Registry struct {
	mu        sync.Mutex
	factories map[tuple]*Factory

	clock   Chronos
	layout  *Layout
	version Version
	sleep   time.Duration
	locking bool
	lockDir string
	logger  zerolog.Logger
}

// RegistryOption configures the registry and factories it creates
type RegistryOption func(*Registry)

// WithChronos configures the clock of factories
func WithChronos(clock Chronos) RegistryOption {
	return func(r *Registry) { r.clock = clock }
}

// WithFactoryLayout configures the layout of issued numbers
func WithFactoryLayout(l *Layout) RegistryOption {
	return func(r *Registry) { r.layout = l }
}

// WithFactoryVersion configures the version digit of issued numbers
func WithFactoryVersion(v Version) RegistryOption {
	return func(r *Registry) { r.version = v }
}

// WithSleep configures the wait step when the clock does not advance
func WithSleep(d time.Duration) RegistryOption {
	return func(r *Registry) { r.sleep = d }
}

// WithLockDir configures the directory of lock files, os.TempDir() by default
func WithLockDir(dir string) RegistryOption {
	return func(r *Registry) {
		r.locking = true
		r.lockDir = dir
	}
}

// WithoutLock disables host lock, only the process-level guarantee remains
func WithoutLock() RegistryOption {
	return func(r *Registry) { r.locking = false }
}

// WithLogger configures the logger, the registry is silent by default
func WithLogger(logger zerolog.Logger) RegistryOption {
	return func(r *Registry) { r.logger = logger }
}

/*

NewRegistry creates an empty registry
*/
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		factories: make(map[tuple]*Factory),
		clock:     NewClock(),
		layout:    Canonical,
		sleep:     time.Millisecond,
		locking:   true,
		lockDir:   os.TempDir(),
		logger:    zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.layout == nil {
		r.layout = Canonical
	}
	return r
}

/*

Factory returns the factory of the tuple, creating it on the first request.
Requests for equal tuples return the same instance. It fails with
DuplicateGeneratorError if another process owns the tuple on this host.
*/
func (r *Registry) Factory(a Authority, i Instance, t Type) (*Factory, error) {
	key := tuple{authority: a, instance: i, kind: t}

	r.mu.Lock()
	defer r.mu.Unlock()

	if f, has := r.factories[key]; has {
		return f, nil
	}

	f, err := r.create(key)
	if err != nil {
		return nil, err
	}

	r.factories[key] = f
	r.logger.Info().
		Int("authority", a.id).
		Int("instance", i.id).
		Int("type", t.id).
		Msg("factory created")

	return f, nil
}

func (r *Registry) create(key tuple) (*Factory, error) {
	// zero value of Authority is not a valid one
	if err := inRange("authority", key.authority.id, MinAuthority, MaxAuthority); err != nil {
		return nil, err
	}

	// probe the tuple against the layout, issued numbers never fail on it
	probe := RN{authority: key.authority, instance: key.instance, kind: key.kind, version: r.version}
	if err := r.layout.validate(&probe); err != nil {
		return nil, err
	}

	f := &Factory{
		authority: key.authority,
		instance:  key.instance,
		kind:      key.kind,
		version:   r.version,
		layout:    r.layout,
		clock:     r.clock,
		sleep:     r.sleep,
		logger: r.logger.With().
			Int("authority", key.authority.id).
			Int("instance", key.instance.id).
			Int("type", key.kind.id).
			Logger(),
	}
	f.onClose = func() { r.remove(key, f) }

	if !r.locking {
		return f, nil
	}

	lock := NewLockFile(filepath.Join(r.lockDir, LockName(key.authority, key.instance, key.kind)))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("factory %s: %w", lock.Path(), err)
	}
	if !ok {
		r.logger.Warn().Str("lock", lock.Path()).Msg("factory is owned by another process")
		return nil, &DuplicateGeneratorError{Lock: lock.Path()}
	}

	f.lock = lock
	return f, nil
}

func (r *Registry) remove(key tuple, f *Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.factories[key] == f {
		delete(r.factories, key)
	}
}

// Len returns number of live factories
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.factories)
}

/*

Close closes all factories of the registry
*/
func (r *Registry) Close() error {
	r.mu.Lock()
	factories := make([]*Factory, 0, len(r.factories))
	for _, f := range r.factories {
		factories = append(factories, f)
	}
	r.mu.Unlock()

	var errs []error
	for _, f := range factories {
		if err := f.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
