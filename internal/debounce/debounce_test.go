// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package debounce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/staranto/deckthumb/internal/loop"
)

const window = 30 * time.Millisecond

// drain lets every armed timer fire and runs what they queued.
func drain(l *loop.Loop) {
	time.Sleep(4 * window)
	l.RunPending()
}

func TestValue_InitialIsSettled(t *testing.T) {
	l := loop.New()
	calls := 0
	v := New(l, "a", window, func(string) { calls++ })

	assert.Equal(t, "a", v.Settled())
	assert.Equal(t, "a", v.Pending())
	drain(l)
	assert.Equal(t, 0, calls)
}

func TestValue_CoalescesBurst(t *testing.T) {
	l := loop.New()
	var got []int
	v := New(l, 0, window, func(x int) { got = append(got, x) })

	for i := 1; i <= 20; i++ {
		v.Set(i)
	}
	assert.Equal(t, 0, v.Settled())
	assert.Equal(t, 20, v.Pending())

	drain(l)
	assert.Equal(t, []int{20}, got)
	assert.Equal(t, 20, v.Settled())
}

func TestValue_RestartsWindow(t *testing.T) {
	l := loop.New()
	var got []string
	v := New(l, "", window, func(x string) { got = append(got, x) })

	v.Set("a")
	time.Sleep(window / 2)
	l.RunPending()
	v.Set("b")
	time.Sleep(window / 2)
	l.RunPending()
	assert.Empty(t, got)

	drain(l)
	assert.Equal(t, []string{"b"}, got)
}

func TestValue_BackToSettledDoesNotFire(t *testing.T) {
	l := loop.New()
	calls := 0
	v := New(l, "a", window, func(string) { calls++ })
	idle := 0
	v.OnIdle(func() { idle++ })

	v.Set("b")
	v.Set("a")
	drain(l)

	assert.Equal(t, 0, calls)
	assert.Equal(t, 1, idle)
	assert.Equal(t, "a", v.Settled())
}

func TestValue_OnIdleOnlyWhenUnchanged(t *testing.T) {
	tests := []struct {
		name     string
		sets     []string
		wantSets int
		wantIdle int
	}{
		{"no sets", nil, 0, 0},
		{"change", []string{"b"}, 1, 0},
		{"change and back", []string{"b", "a"}, 0, 1},
		{"same as pending", []string{"a"}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := loop.New()
			sets, idle := 0, 0
			v := New(l, "a", window, func(string) { sets++ })
			v.OnIdle(func() { idle++ })

			for _, x := range tt.sets {
				v.Set(x)
			}
			drain(l)

			assert.Equal(t, tt.wantSets, sets)
			assert.Equal(t, tt.wantIdle, idle)
		})
	}
}

func TestValue_PointerIdentity(t *testing.T) {
	type snap struct{ n int }
	first := &snap{1}
	l := loop.New()
	var got []*snap
	v := New(l, first, window, func(s *snap) { got = append(got, s) })

	same := &snap{1}
	v.Set(same)
	drain(l)

	// Equal content, different snapshot: still a change.
	assert.Len(t, got, 1)
	assert.Same(t, same, got[0])
}

func TestValue_ZeroWindowPostsToLoop(t *testing.T) {
	l := loop.New()
	calls := 0
	v := New(l, 1, 0, func(int) { calls++ })

	v.Set(2)
	assert.Equal(t, 0, calls)
	l.RunPending()
	assert.Equal(t, 1, calls)
}

func TestValue_Stop(t *testing.T) {
	l := loop.New()
	calls := 0
	v := New(l, 1, window, func(int) { calls++ })

	v.Set(2)
	v.Stop()
	v.Set(3)
	drain(l)

	assert.Equal(t, 0, calls)
	assert.Equal(t, 1, v.Settled())
}
