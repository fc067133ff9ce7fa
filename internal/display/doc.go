// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package display binds rendered artifacts to the surfaces they are shown on.
// A Target outlives nothing: once destroyed, every paint into it is silently
// dropped, so queued work that still references it is harmless.
package display
