// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package cache keeps the most recently rendered miniature of every slide for
// the life of the process. Entries are only ever overwritten, never evicted.
package cache
