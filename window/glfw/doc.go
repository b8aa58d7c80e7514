// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package glfw opens a desktop window with an OpenGL 3.3 core context and
// feeds its events to a window.Loop.
//
// glfw requires all calls on the main thread: call runtime.LockOSThread
// from an init function of package main and run the loop there.
//
// The package is excluded by the nogl build tag.
package glfw
