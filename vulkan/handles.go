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

// Package vulkan holds the subset of the Vulkan API surface spoken by the
// layer: handle types, enums, the info structures crossed at the intercepted
// entry points, the loader negotiation chain and the dispatch tables.
package vulkan

import "unsafe"

// Dispatchable handles. A dispatchable handle is a pointer to an object
// whose first machine word is the loader's dispatch key for that object.
// All dispatchable objects belonging to the same instance or device carry
// the same key, which is what makes the key usable for dispatch table
// lookups.
type (
	// VkInstance is the handle to a Vulkan instance.
	VkInstance uintptr
	// VkPhysicalDevice is the handle to a physical device.
	VkPhysicalDevice uintptr
	// VkDevice is the handle to a logical device.
	VkDevice uintptr
	// VkQueue is the handle to a device queue.
	VkQueue uintptr
	// VkCommandBuffer is the handle to a command buffer.
	VkCommandBuffer uintptr
)

// Non-dispatchable handles.
type (
	// VkSemaphore is the handle to a semaphore.
	VkSemaphore uint64
	// VkFence is the handle to a fence.
	VkFence uint64
	// VkSwapchainKHR is the handle to a swapchain.
	VkSwapchainKHR uint64
	// VkSurfaceKHR is the handle to a presentable surface.
	VkSurfaceKHR uint64
	// VkImage is the handle to an image.
	VkImage uint64
	// VkImageView is the handle to an image view.
	VkImageView uint64
	// VkFramebuffer is the handle to a framebuffer.
	VkFramebuffer uint64
	// VkRenderPass is the handle to a render pass.
	VkRenderPass uint64
	// VkCommandPool is the handle to a command pool.
	VkCommandPool uint64
	// VkDescriptorPool is the handle to a descriptor pool.
	VkDescriptorPool uint64
	// VkPipelineCache is the handle to a pipeline cache.
	VkPipelineCache uint64
)

// objectKey reads the first machine word at the object's memory. The Vulkan
// loader documents this layout for all dispatchable handles, so the value is
// stable for the lifetime of the object. This exact derivation must be
// preserved for interop with the loader and other layers.
func objectKey(h uintptr) uintptr {
	return *(*uintptr)(unsafe.Pointer(h))
}

// Key returns the dispatch key for the instance.
func (h VkInstance) Key() uintptr { return objectKey(uintptr(h)) }

// Key returns the dispatch key for the physical device.
func (h VkPhysicalDevice) Key() uintptr { return objectKey(uintptr(h)) }

// Key returns the dispatch key for the device.
func (h VkDevice) Key() uintptr { return objectKey(uintptr(h)) }

// Key returns the dispatch key for the queue.
func (h VkQueue) Key() uintptr { return objectKey(uintptr(h)) }

// Key returns the dispatch key for the command buffer.
func (h VkCommandBuffer) Key() uintptr { return objectKey(uintptr(h)) }
