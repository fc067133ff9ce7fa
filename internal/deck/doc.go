// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package deck holds the deck and slide snapshots the miniatures are rendered
// from. A Deck is never mutated after it is built; every edit produces a new
// *Deck, and consumers compare snapshots by pointer.
package deck
