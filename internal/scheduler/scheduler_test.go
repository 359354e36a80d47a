package scheduler

import (
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/suite"

	"github.com/vineetsharma9252/Babel-The-Speech-translator/internal/log"
)

type SchedulerTestSuite struct {
	suite.Suite
	logger    *log.Logger
	clock     *clockwork.FakeClock
	scheduler *KeyedScheduler
	mu        sync.Mutex
	fired     map[string]int
}

func TestSchedulerSuite(t *testing.T) {
	suite.Run(t, new(SchedulerTestSuite))
}

func (s *SchedulerTestSuite) SetupTest() {
	s.logger = log.NewNop()
	s.clock = clockwork.NewFakeClock()
	s.scheduler = newKeyedSchedulerWithClock(s.logger, s.clock)
	s.fired = make(map[string]int)
}

func (s *SchedulerTestSuite) TearDownTest() {
	s.scheduler.Shutdown()
}

func (s *SchedulerTestSuite) onFire(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fired[key]++
}

func (s *SchedulerTestSuite) firedCount(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fired[key]
}

func (s *SchedulerTestSuite) firedKeys() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.fired)
}

func (s *SchedulerTestSuite) drainInto(ch chan string) {
	go func() {
		for key := range s.scheduler.Chan() {
			s.onFire(key)
			ch <- key
		}
	}()
}

func (s *SchedulerTestSuite) TestFiresInDueOrder() {
	fired := make(chan string, 2)
	s.drainInto(fired)

	s.scheduler.Enqueue("a", 50*time.Millisecond)
	s.scheduler.Enqueue("b", 100*time.Millisecond)

	s.clock.Advance(50 * time.Millisecond)
	s.Assert().Equal("a", <-fired)

	s.clock.Advance(50 * time.Millisecond)
	s.Assert().Equal("b", <-fired)

	s.Assert().Equal(1, s.firedCount("a"))
	s.Assert().Equal(1, s.firedCount("b"))
}

func (s *SchedulerTestSuite) TestCancel() {
	due1 := s.clock.Now().Add(100 * time.Millisecond)
	due2 := s.clock.Now().Add(200 * time.Millisecond)

	// call doEnqueue directly to inspect internal state synchronously
	s.scheduler.doEnqueue(&item{key: "a", ts: due1})
	s.scheduler.doEnqueue(&item{key: "b", ts: due2})

	s.Assert().Len(s.scheduler.items, 2)
	s.Assert().Equal(due1, s.scheduler.timerTS)

	s.scheduler.doCancel("a")

	s.Assert().Len(s.scheduler.items, 1)
	s.Assert().Equal(due2, s.scheduler.timerTS)
	_, ok := s.scheduler.items["b"]
	s.Assert().True(ok)
}

func (s *SchedulerTestSuite) TestClear() {
	due := s.clock.Now().Add(100 * time.Millisecond)

	s.scheduler.doEnqueue(&item{key: "a", ts: due})
	s.scheduler.doEnqueue(&item{key: "b", ts: due})
	s.scheduler.doClear()

	s.Assert().Empty(s.scheduler.items)
}

func (s *SchedulerTestSuite) TestEarlierEnqueueWins() {
	fired := make(chan string, 1)
	s.drainInto(fired)

	s.scheduler.Enqueue("a", 100*time.Millisecond)
	s.scheduler.Enqueue("a", 50*time.Millisecond)

	s.clock.Advance(50 * time.Millisecond)
	<-fired

	s.Assert().Equal(1, s.firedCount("a"))
	s.Assert().Empty(s.scheduler.items)
}

func (s *SchedulerTestSuite) TestLaterEnqueueIgnored() {
	fired := make(chan string, 1)
	s.drainInto(fired)

	due1 := s.clock.Now().Add(100 * time.Millisecond)
	due2 := s.clock.Now().Add(200 * time.Millisecond)

	s.scheduler.doEnqueue(&item{key: "a", ts: due1})
	s.scheduler.doEnqueue(&item{key: "a", ts: due2})

	s.clock.Advance(100 * time.Millisecond)
	<-fired

	s.Assert().Equal(1, s.firedCount("a"))
	s.Assert().Empty(s.scheduler.items)
}

func (s *SchedulerTestSuite) TestShutdownWithArmedTimer() {
	s.scheduler.Enqueue("a", 100*time.Millisecond)
	s.scheduler.Shutdown()
	s.waitClosed()
}

func (s *SchedulerTestSuite) TestShutdownUnblocksFireWithoutConsumer() {
	// nobody drains Chan, so the due key blocks the loop mid-fire
	s.scheduler.Enqueue("a", 50*time.Millisecond)
	s.clock.Advance(50 * time.Millisecond)

	s.scheduler.Shutdown()
	s.waitClosed()
}

// waitClosed drains any in-flight fire and waits for Chan to close.
func (s *SchedulerTestSuite) waitClosed() {
	for {
		select {
		case _, ok := <-s.scheduler.Chan():
			if !ok {
				return
			}
		case <-time.After(time.Second):
			s.FailNow("scheduler did not stop")
		}
	}
}

func (s *SchedulerTestSuite) TestManyKeysSameDeadline() {
	expected := 10
	fired := make(chan string, expected)
	s.drainInto(fired)

	for i := range expected {
		key := "key" + string(rune('0'+i))
		s.scheduler.Enqueue(key, 50*time.Millisecond)
	}

	s.clock.Advance(50 * time.Millisecond)

	for range expected {
		<-fired
	}

	s.Assert().Equal(expected, s.firedKeys())
}
