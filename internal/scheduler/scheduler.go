//nolint:forcetypeassert
package scheduler

import (
	"container/heap"
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/vineetsharma9252/Babel-The-Speech-translator/internal/log"
)

// KeyedScheduler manages delayed firing of string keys via a min-heap.
// Enqueueing the same key again keeps only the earliest due time. Fired
// keys are delivered on Chan in due order.
//
//	s := NewKeyedScheduler(logger)
//	defer s.Shutdown()
//	s.Enqueue("speaker-1", time.Second)
//	for key := range s.Chan() { ... }
type KeyedScheduler struct {
	items    map[string]*item
	heap     priorityQueue
	chSig    chan string
	chAction chan func()
	timer    clockwork.Timer
	timerTS  time.Time
	ctx      context.Context
	cancel   context.CancelFunc
	clock    clockwork.Clock
	logger   *log.Logger
}

func NewKeyedScheduler(logger *log.Logger) *KeyedScheduler {
	return newKeyedSchedulerWithClock(logger, clockwork.NewRealClock())
}

func newKeyedSchedulerWithClock(logger *log.Logger, clock clockwork.Clock) *KeyedScheduler {
	if logger == nil {
		panic("logger is required")
	}
	if clock == nil {
		panic("clock is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	ks := &KeyedScheduler{
		items:    make(map[string]*item),
		heap:     make(priorityQueue, 0),
		chSig:    make(chan string),
		chAction: make(chan func(), 100),
		timer:    clock.NewTimer(time.Second),
		ctx:      ctx,
		cancel:   cancel,
		clock:    clock,
		logger:   logger,
	}
	heap.Init(&ks.heap)

	go ks.loop()
	return ks
}

func (ks *KeyedScheduler) Chan() <-chan string {
	return ks.chSig
}

func (ks *KeyedScheduler) Enqueue(key string, delay time.Duration) {
	ts := ks.clock.Now().Add(delay)
	ks.chAction <- func() {
		ks.doEnqueue(&item{key: key, ts: ts})
	}
}

func (ks *KeyedScheduler) Cancel(key string) {
	ks.chAction <- func() {
		ks.doCancel(key)
	}
}

func (ks *KeyedScheduler) Clear() {
	ks.chAction <- func() {
		ks.doClear()
	}
}

// Shutdown stops the loop goroutine. The timer is owned by the loop,
// so shutdown only signals; the loop stops the timer on its way out.
func (ks *KeyedScheduler) Shutdown() {
	ks.cancel()
}

func (ks *KeyedScheduler) doEnqueue(it *item) {
	cur, ok := ks.items[it.key]
	if ok {
		// earliest due time wins
		if !it.ts.Before(cur.ts) {
			return
		}
		heap.Remove(&ks.heap, cur.index)
	}

	ks.items[it.key] = it
	heap.Push(&ks.heap, it)
	ks.scheduleNextTimer()
}

func (ks *KeyedScheduler) doCancel(key string) {
	if it, exists := ks.items[key]; exists {
		delete(ks.items, key)
		heap.Remove(&ks.heap, it.index)
		ks.scheduleNextTimer()
	}
}

func (ks *KeyedScheduler) doClear() {
	ks.items = make(map[string]*item)
	ks.heap = make(priorityQueue, 0)
	heap.Init(&ks.heap)
	ks.clearTimer()
}

func (ks *KeyedScheduler) clearTimer() {
	ks.timer.Stop()
	ks.timerTS = time.Time{}
}

func (ks *KeyedScheduler) scheduleNextTimer() {
	if len(ks.items) == 0 {
		ks.clearTimer()
		return
	}

	top := ks.heap[0]
	// same due, no reschedule needed
	if ks.timerTS.Equal(top.ts) {
		return
	}

	delay := top.ts.Sub(ks.clock.Now())
	if delay < 0 {
		delay = 0
	}

	ks.timerTS = top.ts
	ks.timer.Stop()
	ks.timer.Reset(delay)
}

func (ks *KeyedScheduler) loop() {
	for {
		select {
		case <-ks.ctx.Done():
			ks.clearTimer()
			close(ks.chSig)
			return
		case action, ok := <-ks.chAction:
			if !ok {
				return
			}
			action()
		case <-ks.timer.Chan():
			ks.clearTimer()
			ks.fireDue()
		}
	}
}

func (ks *KeyedScheduler) popTop() *item {
	top := heap.Pop(&ks.heap).(*item)
	delete(ks.items, top.key)
	return top
}

func (ks *KeyedScheduler) fireDue() {
	now := ks.clock.Now()

	for len(ks.items) > 0 {
		select {
		case <-ks.ctx.Done():
			return
		default:
		}

		if ks.heap[0].ts.After(now) {
			break
		}

		it := ks.popTop()
		// the consumer may be gone; never block past shutdown
		select {
		case ks.chSig <- it.key:
		case <-ks.ctx.Done():
			return
		}
	}

	ks.scheduleNextTimer()
}
