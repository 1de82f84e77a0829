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

//go:build unix

package rn_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fogfish/it/v2"
	"github.com/fogfish/rn"
)

func TestLockName(t *testing.T) {
	it.Then(t).Should(
		it.Equal(rn.LockName(authority, instance, kind), "rn-1234-5-06.lock"),
	)
}

func TestLockFileExclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.lock")
	a := rn.NewLockFile(path)
	b := rn.NewLockFile(path)
	defer a.Close()
	defer b.Close()

	okA, errA := a.TryLock()
	okB, errB := b.TryLock()

	it.Then(t).Should(
		it.True(errA == nil),
		it.True(errB == nil),
		it.True(okA),
		it.True(!okB),
		it.Equal(a.Path(), path),
	)

	// reentrant for the owner
	ok, err := a.TryLock()
	it.Then(t).Should(
		it.True(err == nil),
		it.True(ok),
	)
}

func TestLockFileRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.lock")
	a := rn.NewLockFile(path)
	b := rn.NewLockFile(path)
	defer a.Close()
	defer b.Close()

	a.TryLock()
	it.Then(t).Should(
		it.True(a.Release() == nil),
		it.True(a.Release() == nil),
	)

	ok, err := b.TryLock()
	it.Then(t).Should(
		it.True(err == nil),
		it.True(ok),
	)
}

func TestLockFileClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.lock")
	a := rn.NewLockFile(path)

	ok, _ := a.TryLock()
	_, statErr := os.Stat(path)
	it.Then(t).Should(
		it.True(ok),
		it.True(statErr == nil),
	)

	it.Then(t).Should(
		it.True(a.Close() == nil),
		it.True(a.Close() == nil),
	)

	_, statErr = os.Stat(path)
	it.Then(t).Should(
		it.True(os.IsNotExist(statErr)),
	)

	// the lock is usable again after close
	b := rn.NewLockFile(path)
	defer b.Close()

	ok, err := b.TryLock()
	it.Then(t).Should(
		it.True(err == nil),
		it.True(ok),
	)
}

func TestLockFileMissingDir(t *testing.T) {
	a := rn.NewLockFile(filepath.Join(t.TempDir(), "missing", "a.lock"))

	ok, err := a.TryLock()
	it.Then(t).Should(
		it.True(!ok),
		it.True(err != nil),
		it.True(a.Close() == nil),
	)
}

func TestLockFileRemovedByOwner(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.lock")
	a := rn.NewLockFile(path)
	b := rn.NewLockFile(path)
	c := rn.NewLockFile(path)
	defer a.Close()
	defer c.Close()

	// a keeps the file of the first owner open
	okA, _ := a.TryLock()
	it.Then(t).Should(
		it.True(okA),
		it.True(a.Release() == nil),
	)

	okB, _ := b.TryLock()
	it.Then(t).Should(
		it.True(okB),
		it.True(b.Close() == nil),
	)

	okC, errC := c.TryLock()
	it.Then(t).Should(
		it.True(errC == nil),
		it.True(okC),
	)

	// the removed file is free but it is not the lock anymore
	ok, err := a.TryLock()
	it.Then(t).Should(
		it.True(err == nil),
		it.True(!ok),
	)

	// once c is gone, a takes the file at the path
	it.Then(t).Should(it.True(c.Close() == nil))

	ok, err = a.TryLock()
	_, statErr := os.Stat(path)
	it.Then(t).Should(
		it.True(err == nil),
		it.True(ok),
		it.True(statErr == nil),
	)
}

func TestLockFileRemovedWhileUnlocked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.lock")
	a := rn.NewLockFile(path)
	defer a.Close()

	a.TryLock()
	a.Release()
	it.Then(t).Should(it.True(os.Remove(path) == nil))

	ok, err := a.TryLock()
	_, statErr := os.Stat(path)
	it.Then(t).Should(
		it.True(err == nil),
		it.True(ok),
		it.True(statErr == nil),
	)
}
