// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gl

// flipY converts the top edge y of a rectangle of the given height to the
// bottom edge in OpenGL window coordinates, whose origin is bottom-left.
func flipY(y, height, fbHeight int) int {
	return fbHeight - (y + height)
}

// cString returns s NUL-terminated, as OpenGL expects.
func cString(s string) string {
	if len(s) > 0 && s[len(s)-1] == 0 {
		return s
	}
	return s + "\x00"
}
