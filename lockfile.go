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
	"io/fs"
	"os"
	"sync"
)

// LockName is the name of lock file that guards the factory of the tuple
func LockName(a Authority, i Instance, t Type) string {
	return fmt.Sprintf("rn-%04d-%d-%02d.lock", a.id, i.id, t.id)
}

/*

LockFile is host-local advisory exclusive lock backed by a file. It only
protects a single host; deployments over multiple hosts have to partition
instance numbers between them.

All operations are idempotent and safe for concurrent use.
*/
type LockFile struct {
	mu     sync.Mutex
	path   string
	file   *os.File
	locked bool
}

// NewLockFile creates lock at the path, the file is created on first TryLock
func NewLockFile(path string) *LockFile {
	return &LockFile{path: path}
}

// Path of lock file
func (lf *LockFile) Path() string { return lf.path }

/*

TryLock acquires the lock without blocking. It returns false if the lock
is held by another owner (process or open file).

The lock is granted on an open file, while owners agree on the path. The
file is removed by its owner on Close, therefore the locked file shall
still be the one at the path, otherwise the lock is taken again.
*/
func (lf *LockFile) TryLock() (bool, error) {
	lf.mu.Lock()
	defer lf.mu.Unlock()

	if lf.locked {
		return true, nil
	}

	for {
		if lf.file == nil {
			f, err := os.OpenFile(lf.path, os.O_CREATE|os.O_RDWR, 0644)
			if err != nil {
				return false, fmt.Errorf("open lock %s: %w", lf.path, err)
			}
			lf.file = f
		}

		ok, err := tryLock(lf.file)
		if err != nil || !ok {
			lf.drop()
			return false, err
		}

		same, err := lf.atPath()
		if err != nil {
			unlock(lf.file)
			lf.drop()
			return false, err
		}

		if same {
			lf.locked = true
			return true, nil
		}

		// the file was removed (and maybe re-created) by previous owner
		unlock(lf.file)
		lf.drop()
	}
}

// atPath reports whether the open file is the one at the path
func (lf *LockFile) atPath() (bool, error) {
	fi, err := lf.file.Stat()
	if err != nil {
		return false, fmt.Errorf("stat lock %s: %w", lf.path, err)
	}

	pi, err := os.Stat(lf.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("stat lock %s: %w", lf.path, err)
	}

	return os.SameFile(fi, pi), nil
}

func (lf *LockFile) drop() {
	lf.file.Close()
	lf.file = nil
}

/*

Release gives up the lock, the file remains open
*/
func (lf *LockFile) Release() error {
	lf.mu.Lock()
	defer lf.mu.Unlock()

	return lf.release()
}

func (lf *LockFile) release() error {
	if !lf.locked {
		return nil
	}

	lf.locked = false
	return unlock(lf.file)
}

/*

Close releases the lock and closes the file. The file is removed if
the lock was held.
*/
func (lf *LockFile) Close() error {
	lf.mu.Lock()
	defer lf.mu.Unlock()

	if lf.file == nil {
		return nil
	}

	var errs []error

	// remove while holding the lock, nobody else owns the file
	if lf.locked {
		if err := os.Remove(lf.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}

	if err := lf.release(); err != nil {
		errs = append(errs, err)
	}

	if err := lf.file.Close(); err != nil {
		errs = append(errs, err)
	}
	lf.file = nil

	return errors.Join(errs...)
}
