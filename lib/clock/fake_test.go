// Copyright 2026 The Antrian Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

var testEpoch = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func TestFakeNowStandsStill(t *testing.T) {
	fake := Fake(testEpoch)
	if !fake.Now().Equal(testEpoch) {
		t.Fatalf("Now() = %v, want %v", fake.Now(), testEpoch)
	}
	if !fake.Now().Equal(testEpoch) {
		t.Fatal("Now() moved without Advance")
	}
}

func TestFakeAdvanceMovesNow(t *testing.T) {
	fake := Fake(testEpoch)
	fake.Advance(90 * time.Second)
	want := testEpoch.Add(90 * time.Second)
	if !fake.Now().Equal(want) {
		t.Fatalf("Now() = %v, want %v", fake.Now(), want)
	}
}

func TestFakeAfterFiresOnAdvance(t *testing.T) {
	fake := Fake(testEpoch)
	ch := fake.After(time.Minute)

	select {
	case <-ch:
		t.Fatal("After fired before Advance")
	default:
	}

	fake.Advance(time.Minute)
	select {
	case fired := <-ch:
		if !fired.Equal(testEpoch.Add(time.Minute)) {
			t.Fatalf("fired at %v, want %v", fired, testEpoch.Add(time.Minute))
		}
	default:
		t.Fatal("After did not fire after Advance")
	}
}

func TestFakeAfterNonPositiveFiresImmediately(t *testing.T) {
	fake := Fake(testEpoch)
	select {
	case <-fake.After(0):
	default:
		t.Fatal("After(0) did not fire immediately")
	}
}

func TestFakeAfterDoesNotDoubleFire(t *testing.T) {
	fake := Fake(testEpoch)
	ch := fake.After(time.Second)
	fake.Advance(time.Second)
	fake.Advance(time.Second)

	<-ch
	select {
	case <-ch:
		t.Fatal("one-shot waiter fired twice")
	default:
	}
}

func TestFakeTickerFiresPerInterval(t *testing.T) {
	fake := Fake(testEpoch)
	ticker := fake.NewTicker(10 * time.Second)
	defer ticker.Stop()

	fake.Advance(10 * time.Second)
	select {
	case <-ticker.C:
	default:
		t.Fatal("ticker did not fire after one interval")
	}

	// Two intervals elapse while the consumer drains between them.
	fake.Advance(10 * time.Second)
	<-ticker.C
	fake.Advance(10 * time.Second)
	<-ticker.C
}

func TestFakeTickerDropsUndrainedTicks(t *testing.T) {
	fake := Fake(testEpoch)
	ticker := fake.NewTicker(time.Second)
	defer ticker.Stop()

	// Three intervals with no consumer: only one tick is buffered.
	fake.Advance(3 * time.Second)
	<-ticker.C
	select {
	case <-ticker.C:
		t.Fatal("ticker queued more than one undrained tick")
	default:
	}
}

func TestFakeTickerStop(t *testing.T) {
	fake := Fake(testEpoch)
	ticker := fake.NewTicker(time.Second)
	ticker.Stop()

	fake.Advance(5 * time.Second)
	select {
	case <-ticker.C:
		t.Fatal("stopped ticker fired")
	default:
	}
}

func TestFakeTickerPanicsOnNonPositiveInterval(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("NewTicker(0) did not panic")
		}
	}()
	Fake(testEpoch).NewTicker(0)
}

func TestFakeSleepReturnsAfterAdvance(t *testing.T) {
	fake := Fake(testEpoch)
	done := make(chan struct{})
	go func() {
		fake.Sleep(time.Minute)
		close(done)
	}()

	// Let the sleeper register its waiter before advancing.
	for {
		fake.mu.Lock()
		registered := len(fake.waiters) > 0
		fake.mu.Unlock()
		if registered {
			break
		}
	}

	fake.Advance(time.Minute)
	<-done
}
