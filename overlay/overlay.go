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

// Package overlay defines the boundary between the interception layer and
// whatever draws the overlay content. The layer records the render pass and
// submits; the renderer only issues draw commands inside it.
package overlay

import (
	"context"

	"github.com/lexisother/ThatSkyLoader/vulkan"
)

// FrameContext is everything a renderer needs to issue draw commands into
// the frame currently being injected. CommandBuffer is actively recording
// and already inside the layer's render pass.
type FrameContext struct {
	Instance       vulkan.VkInstance
	PhysicalDevice vulkan.VkPhysicalDevice
	Device         vulkan.VkDevice
	QueueFamily    uint32
	Queue          vulkan.VkQueue
	PipelineCache  vulkan.VkPipelineCache
	DescriptorPool vulkan.VkDescriptorPool
	RenderPass     vulkan.VkRenderPass
	Subpass        uint32
	ImageCount     uint32
	CommandBuffer  vulkan.VkCommandBuffer
	Extent         vulkan.VkExtent2D
}

// Renderer draws the overlay for one frame.
//
// Render must record only draw commands into fc.CommandBuffer: it must not
// begin or end the render pass, submit the command buffer, or present. An
// error aborts the overlay for this frame only; the host's own rendering is
// unaffected.
type Renderer interface {
	Render(ctx context.Context, fc FrameContext) error
}

// RendererFunc lets a plain function be used as a Renderer.
type RendererFunc func(ctx context.Context, fc FrameContext) error

// Render calls f.
func (f RendererFunc) Render(ctx context.Context, fc FrameContext) error { return f(ctx, fc) }

// Nop returns a Renderer that draws nothing.
func Nop() Renderer {
	return RendererFunc(func(context.Context, FrameContext) error { return nil })
}
