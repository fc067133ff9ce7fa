// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package loop

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunPending_FIFO(t *testing.T) {
	l := New()
	var got []int
	for i := 0; i < 3; i++ {
		l.Post(func() { got = append(got, i) })
	}

	assert.Equal(t, 3, l.RunPending())
	assert.Equal(t, []int{0, 1, 2}, got)
	assert.Equal(t, 0, l.RunPending())
}

func TestDefer_RunsAfterNormalTasks(t *testing.T) {
	l := New()
	var got []string

	l.Post(func() {
		got = append(got, "urgent-1")
		l.Defer(func() { got = append(got, "idle-1") })
		got = append(got, "urgent-1-end")
	})
	l.Defer(func() {
		got = append(got, "idle-0")
		l.Post(func() { got = append(got, "urgent-from-idle") })
	})
	l.Post(func() { got = append(got, "urgent-2") })

	l.RunPending()
	assert.Equal(t, []string{
		"urgent-1",
		"urgent-1-end",
		"urgent-2",
		"idle-0",
		"urgent-from-idle",
		"idle-1",
	}, got)
}

func TestDefer_NeverRunsInline(t *testing.T) {
	l := New()
	ran := false
	l.Defer(func() { ran = true })
	assert.False(t, ran)

	normal, idle := l.Pending()
	assert.Equal(t, 0, normal)
	assert.Equal(t, 1, idle)

	l.RunPending()
	assert.True(t, ran)
}

func TestAfterFunc(t *testing.T) {
	l := New()
	fired := make(chan struct{})
	ran := false

	l.AfterFunc(10*time.Millisecond, func() { ran = true })
	stopped := l.AfterFunc(10*time.Millisecond, func() { t.Error("stopped timer ran") })
	stopped.Stop()
	time.AfterFunc(80*time.Millisecond, func() { close(fired) })

	<-fired
	// The timer only queued the task; nothing runs until the loop turns.
	assert.False(t, ran)
	l.RunPending()
	assert.True(t, ran)
}

func TestRun_ContextCancel(t *testing.T) {
	l := New()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error)
	go func() { done <- l.Run(ctx) }()

	ran := make(chan struct{})
	l.Post(func() { close(ran) })
	<-ran

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestRun_CloseDrains(t *testing.T) {
	l := New()
	count := 0
	l.Post(func() { count++ })
	l.Defer(func() { count++ })
	l.Close()

	// Posting after close is ignored.
	l.Post(func() { count += 100 })

	require.NoError(t, l.Run(context.Background()))
	assert.Equal(t, 2, count)
}

func TestPanicHandler(t *testing.T) {
	var recovered any
	l := New(WithPanicHandler(func(r any) { recovered = r }))

	after := false
	l.Post(func() { panic(errors.New("render failed")) })
	l.Post(func() { after = true })

	assert.NotPanics(t, func() { l.RunPending() })
	assert.EqualError(t, recovered.(error), "render failed")
	assert.True(t, after)
}

func TestPanicPropagatesWithoutHandler(t *testing.T) {
	l := New()
	l.Post(func() { panic("boom") })
	assert.PanicsWithValue(t, "boom", func() { l.RunPending() })
}
