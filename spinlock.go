// Copyright © 2018 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package sans

import (
	"runtime"
	"sync/atomic"
)

// spinlock is a test-and-set mutex backed by a single uint32, used for
// the per-shard locks instead of sync.Mutex. Shard critical sections
// are a handful of map operations, so the cost of an OS-level mutex
// (and the possibility of the runtime parking a goroutine) outweighs a
// short busy-wait; this mirrors original_source/spinlockMutex.h, which
// the thousands-of-shards design in graph.h relies on for the same
// reason.
type spinlock struct {
	state uint32
}

const (
	spinUnlocked = 0
	spinLocked   = 1
)

func (s *spinlock) Lock() {
	for !atomic.CompareAndSwapUint32(&s.state, spinUnlocked, spinLocked) {
		runtime.Gosched()
	}
}

func (s *spinlock) Unlock() {
	atomic.StoreUint32(&s.state, spinUnlocked)
}

func (s *spinlock) TryLock() bool {
	return atomic.CompareAndSwapUint32(&s.state, spinUnlocked, spinLocked)
}
