// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package loop provides a single-threaded cooperative task queue. Every task
// runs on the goroutine driving the loop, so state touched only by tasks needs
// no locking. Deferred (idle) tasks run only once no normal task is waiting,
// which keeps expensive background work from delaying interactive work queued
// at the same time.
package loop
