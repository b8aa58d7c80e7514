// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glenda

import "errors"

// Errors returned when a layout policy value is rejected.
var (
	// ErrInvalidAspectRatio is returned for aspect ratios that are not
	// finite and strictly positive.
	ErrInvalidAspectRatio = errors.New("glenda: invalid aspect ratio")

	// ErrInvalidSplitPoint is returned for ratio split points that are NaN or infinite.
	ErrInvalidSplitPoint = errors.New("glenda: invalid split point")

	// ErrInvalidInset is returned for negative insets.
	ErrInvalidInset = errors.New("glenda: invalid inset")
)
