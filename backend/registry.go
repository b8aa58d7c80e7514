// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/gogpu/glenda"
)

// Backend name constants.
const (
	// NameSoftware is the CPU rasterizer.
	NameSoftware = "software"
	// NameRecording records calls without drawing.
	NameRecording = "recording"
	// NameHAL is the gogpu/wgpu HAL backend.
	NameHAL = "hal"
	// NameGL is the OpenGL 3.3 core backend.
	NameGL = "gl"
)

// Factory creates a backend drawing into an offscreen target of the
// given size. Backends that need a window or device supplied by the host
// are constructed directly instead of through the registry.
type Factory func(width, height int) (Backend, error)

var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
	// Priority order for Default (first registered wins).
	priority = []string{NameSoftware, NameRecording}
)

// Register registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it is replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// Available returns the registered backend names, sorted.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}

// Get creates the named backend.
func Get(name string, width, height int) (Backend, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	b, err := factory(width, height)
	if err != nil {
		return nil, fmt.Errorf("backend %s: %w", name, err)
	}
	glenda.Logger().Info("backend selected", "name", name, "width", width, "height", height)
	return b, nil
}

// Default creates the best available backend based on priority, falling
// back to any registered backend.
func Default(width, height int) (Backend, error) {
	registryMu.RLock()
	names := make([]string, 0, len(factories))
	for _, name := range priority {
		if _, ok := factories[name]; ok {
			names = append(names, name)
		}
	}
	for _, name := range slices.Sorted(maps.Keys(factories)) {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	registryMu.RUnlock()

	var lastErr error
	for _, name := range names {
		b, err := Get(name, width, height)
		if err == nil {
			return b, nil
		}
		glenda.Logger().Warn("backend unavailable", "name", name, "err", err)
		lastErr = err
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, ErrBackendNotAvailable
}

// MustDefault returns the default backend or panics.
func MustDefault(width, height int) Backend {
	b, err := Default(width, height)
	if err != nil {
		panic(err)
	}
	return b
}
