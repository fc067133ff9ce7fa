// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package miniature keeps slide miniatures up to date while a deck is being
// edited.
//
// A mounted Miniature shows the cached artifact for its slide straight away,
// if there is one and nothing has been painted yet, and then schedules a
// low-priority refresh that re-renders the slide and repaints only when the
// renderer hands back a different artifact. Raw deck and slide changes are
// debounced first, so a burst of edits costs one refresh.
package miniature
