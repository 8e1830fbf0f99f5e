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

package vulkan

// PFNvkVoidFunction is the untyped result of a proc address query. It holds
// one of the PFNvk* function types below; the caller type-asserts it to the
// signature it resolved, mirroring the pointer cast a native layer performs.
type PFNvkVoidFunction interface{}

// Global and instance level entry points.
type (
	PFNvkGetInstanceProcAddr                    func(instance VkInstance, name string) PFNvkVoidFunction
	PFNvkCreateInstance                         func(createInfo *VkInstanceCreateInfo, allocator *VkAllocationCallbacks, instance *VkInstance) VkResult
	PFNvkDestroyInstance                        func(instance VkInstance, allocator *VkAllocationCallbacks)
	PFNvkEnumeratePhysicalDevices               func(instance VkInstance, count *uint32, devices []VkPhysicalDevice) VkResult
	PFNvkGetPhysicalDeviceProperties            func(physicalDevice VkPhysicalDevice, properties *VkPhysicalDeviceProperties)
	PFNvkGetPhysicalDeviceQueueFamilyProperties func(physicalDevice VkPhysicalDevice, count *uint32, properties []VkQueueFamilyProperties)
	PFNvkCreateDevice                           func(physicalDevice VkPhysicalDevice, createInfo *VkDeviceCreateInfo, allocator *VkAllocationCallbacks, device *VkDevice) VkResult
)

// Device level entry points.
type (
	PFNvkGetDeviceProcAddr      func(device VkDevice, name string) PFNvkVoidFunction
	PFNvkDestroyDevice          func(device VkDevice, allocator *VkAllocationCallbacks)
	PFNvkGetDeviceQueue         func(device VkDevice, queueFamilyIndex, queueIndex uint32, queue *VkQueue)
	PFNvkQueueSubmit            func(queue VkQueue, submits []VkSubmitInfo, fence VkFence) VkResult
	PFNvkQueuePresentKHR        func(queue VkQueue, presentInfo *VkPresentInfoKHR) VkResult
	PFNvkCreateSwapchainKHR     func(device VkDevice, createInfo *VkSwapchainCreateInfoKHR, allocator *VkAllocationCallbacks, swapchain *VkSwapchainKHR) VkResult
	PFNvkAcquireNextImageKHR    func(device VkDevice, swapchain VkSwapchainKHR, timeout uint64, semaphore VkSemaphore, fence VkFence, imageIndex *uint32) VkResult
	PFNvkGetSwapchainImagesKHR  func(device VkDevice, swapchain VkSwapchainKHR, count *uint32, images []VkImage) VkResult
	PFNvkCreateCommandPool      func(device VkDevice, createInfo *VkCommandPoolCreateInfo, allocator *VkAllocationCallbacks, pool *VkCommandPool) VkResult
	PFNvkDestroyCommandPool     func(device VkDevice, pool VkCommandPool, allocator *VkAllocationCallbacks)
	PFNvkAllocateCommandBuffers func(device VkDevice, allocateInfo *VkCommandBufferAllocateInfo, buffers []VkCommandBuffer) VkResult
	PFNvkFreeCommandBuffers     func(device VkDevice, pool VkCommandPool, buffers []VkCommandBuffer)
	PFNvkResetCommandBuffer     func(buffer VkCommandBuffer, flags uint32) VkResult
	PFNvkBeginCommandBuffer     func(buffer VkCommandBuffer, beginInfo *VkCommandBufferBeginInfo) VkResult
	PFNvkEndCommandBuffer       func(buffer VkCommandBuffer) VkResult
	PFNvkCmdBeginRenderPass     func(buffer VkCommandBuffer, beginInfo *VkRenderPassBeginInfo, contents VkSubpassContents)
	PFNvkCmdEndRenderPass       func(buffer VkCommandBuffer)
	PFNvkCreateFence            func(device VkDevice, createInfo *VkFenceCreateInfo, allocator *VkAllocationCallbacks, fence *VkFence) VkResult
	PFNvkDestroyFence           func(device VkDevice, fence VkFence, allocator *VkAllocationCallbacks)
	PFNvkWaitForFences          func(device VkDevice, fences []VkFence, waitAll bool, timeout uint64) VkResult
	PFNvkResetFences            func(device VkDevice, fences []VkFence) VkResult
	PFNvkCreateSemaphore        func(device VkDevice, createInfo *VkSemaphoreCreateInfo, allocator *VkAllocationCallbacks, semaphore *VkSemaphore) VkResult
	PFNvkDestroySemaphore       func(device VkDevice, semaphore VkSemaphore, allocator *VkAllocationCallbacks)
	PFNvkCreateRenderPass       func(device VkDevice, createInfo *VkRenderPassCreateInfo, allocator *VkAllocationCallbacks, renderPass *VkRenderPass) VkResult
	PFNvkDestroyRenderPass      func(device VkDevice, renderPass VkRenderPass, allocator *VkAllocationCallbacks)
	PFNvkCreateImageView        func(device VkDevice, createInfo *VkImageViewCreateInfo, allocator *VkAllocationCallbacks, view *VkImageView) VkResult
	PFNvkDestroyImageView       func(device VkDevice, view VkImageView, allocator *VkAllocationCallbacks)
	PFNvkCreateFramebuffer      func(device VkDevice, createInfo *VkFramebufferCreateInfo, allocator *VkAllocationCallbacks, framebuffer *VkFramebuffer) VkResult
	PFNvkDestroyFramebuffer     func(device VkDevice, framebuffer VkFramebuffer, allocator *VkAllocationCallbacks)
	PFNvkCreateDescriptorPool   func(device VkDevice, createInfo *VkDescriptorPoolCreateInfo, allocator *VkAllocationCallbacks, pool *VkDescriptorPool) VkResult
	PFNvkDestroyDescriptorPool  func(device VkDevice, pool VkDescriptorPool, allocator *VkAllocationCallbacks)
)

// PFNvkSetDeviceLoaderData is the loader provided callback that associates a
// dispatchable object created by the driver (a queue) with the loader's
// bookkeeping for its owning device. It must be invoked once for every queue
// the layer fetches, or the loader's queue-to-device association breaks.
type PFNvkSetDeviceLoaderData func(device VkDevice, object uintptr) VkResult

// VkLayerInstanceDispatchTable holds the next-link instance level entry
// points the layer needs to call through to.
type VkLayerInstanceDispatchTable struct {
	GetInstanceProcAddr                    PFNvkGetInstanceProcAddr
	DestroyInstance                        PFNvkDestroyInstance
	EnumeratePhysicalDevices               PFNvkEnumeratePhysicalDevices
	GetPhysicalDeviceProperties            PFNvkGetPhysicalDeviceProperties
	GetPhysicalDeviceQueueFamilyProperties PFNvkGetPhysicalDeviceQueueFamilyProperties
	CreateDevice                           PFNvkCreateDevice
}

// VkLayerDispatchTable holds the next-link device level entry points the
// layer needs to call through to.
type VkLayerDispatchTable struct {
	GetDeviceProcAddr   PFNvkGetDeviceProcAddr
	DestroyDevice       PFNvkDestroyDevice
	GetDeviceQueue      PFNvkGetDeviceQueue
	QueuePresentKHR     PFNvkQueuePresentKHR
	CreateSwapchainKHR  PFNvkCreateSwapchainKHR
	AcquireNextImageKHR PFNvkAcquireNextImageKHR
}
