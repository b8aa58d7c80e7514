// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build nogl

package main

import (
	"context"
	"errors"

	"github.com/gogpu/glenda/layout"
)

func runWindow(context.Context, options, *layout.Config) error {
	return errors.New("glenda: built with nogl, -window is unavailable")
}
