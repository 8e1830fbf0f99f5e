// Copyright (C) 2019 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package layer implements an implicit Vulkan layer that injects overlay
// rendering at present time.
//
// The layer sits between the application and the driver in the loader's
// call chain. It intercepts instance and device creation to capture
// dispatch tables for the next link, tracks every queue the application
// creates, and rewrites vkQueuePresentKHR so that an extra command buffer
// carrying the overlay is submitted against the image being presented
// before the present is forwarded to the real entry point.
package layer

import (
	"context"

	"github.com/lexisother/ThatSkyLoader/core/fault"
	"github.com/lexisother/ThatSkyLoader/overlay"
)

const (
	// ErrNoChainContext is returned when a creation call arrives without the
	// loader negotiation chain the layer depends on. This is distinct from a
	// downstream driver failure: the loader never linked us in.
	ErrNoChainContext = fault.Const("no loader chain context in creation parameters")

	// ErrNoLoaderDataCallback is returned when the device creation chain
	// does not carry the loader data callback. Every queue must be
	// registered through it or the loader's queue-to-device association
	// breaks.
	ErrNoLoaderDataCallback = fault.Const("loader data callback missing from device creation chain")

	// ErrImageIndexOutOfRange is returned when a present names an image
	// index beyond the frame ring capacity.
	ErrImageIndexOutOfRange = fault.Const("presented image index exceeds frame ring capacity")

	// ErrUnknownQueue is reported when a present arrives on a queue the
	// layer never saw during device creation.
	ErrUnknownQueue = fault.Const("present on a queue not tracked by the layer")

	// ErrTooManyImages is reported when a swapchain carries more images
	// than the frame ring holds; the ring saturates at capacity.
	ErrTooManyImages = fault.Const("swapchain image count exceeds frame ring capacity")
)

// Layer is the process-scoped interception state: one dispatch registry and
// the overlay renderer invoked at present time.
//
// The intercepted entry points are methods on Layer so that all state is
// reachable without package level globals; the host shim creates exactly one
// Layer and hands its GetInstanceProcAddr/GetDeviceProcAddr to the loader.
type Layer struct {
	ctx      context.Context // the ABI fixes the entry point signatures, so the logging context lives here
	registry *Registry
	renderer overlay.Renderer
}

// New returns a Layer logging through ctx and drawing with renderer.
// A nil renderer draws nothing.
func New(ctx context.Context, renderer overlay.Renderer) *Layer {
	if renderer == nil {
		renderer = overlay.Nop()
	}
	return &Layer{
		ctx:      ctx,
		registry: NewRegistry(),
		renderer: renderer,
	}
}

// Registry returns the layer's dispatch registry.
func (l *Layer) Registry() *Registry { return l.registry }
