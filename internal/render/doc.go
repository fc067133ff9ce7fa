// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package render turns a slide of a deck into a raster miniature. Artifacts
// are compared by pointer: a renderer that memoizes returns the same *Artifact
// for unchanged input, and callers rely on that to skip redundant work.
package render
