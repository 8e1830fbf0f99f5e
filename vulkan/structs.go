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

import "unsafe"

// VkExtent2D is a two dimensional extent in pixels.
type VkExtent2D struct {
	Width  uint32
	Height uint32
}

// VkOffset2D is a two dimensional offset in pixels.
type VkOffset2D struct {
	X int32
	Y int32
}

// VkRect2D is a two dimensional sub-region.
type VkRect2D struct {
	Offset VkOffset2D
	Extent VkExtent2D
}

// VkAllocationCallbacks is the application provided host allocator. The
// layer never allocates through it; it is only threaded through to the next
// link in the chain.
type VkAllocationCallbacks struct {
	UserData unsafe.Pointer
}

// VkInstanceCreateInfo holds the parameters of vkCreateInstance.
// Next carries the loader negotiation chain.
type VkInstanceCreateInfo struct {
	Next                  unsafe.Pointer
	ApplicationName       string
	EngineName            string
	APIVersion            uint32
	EnabledLayerNames     []string
	EnabledExtensionNames []string
}

// VkDeviceQueueCreateInfo requests the creation of queues belonging to one
// queue family. The number of queues created is len(QueuePriorities).
type VkDeviceQueueCreateInfo struct {
	QueueFamilyIndex uint32
	QueuePriorities  []float32
}

// VkDeviceCreateInfo holds the parameters of vkCreateDevice.
// Next carries the loader negotiation chain.
type VkDeviceCreateInfo struct {
	Next                  unsafe.Pointer
	QueueCreateInfos      []VkDeviceQueueCreateInfo
	EnabledExtensionNames []string
}

// VkQueueFamilyProperties describes one queue family of a physical device.
type VkQueueFamilyProperties struct {
	QueueFlags         VkQueueFlags
	QueueCount         uint32
	TimestampValidBits uint32
}

// VkPhysicalDeviceProperties describes a physical device.
type VkPhysicalDeviceProperties struct {
	APIVersion    uint32
	DriverVersion uint32
	VendorID      uint32
	DeviceID      uint32
	DeviceType    VkPhysicalDeviceType
	DeviceName    string
}

// VkSwapchainCreateInfoKHR holds the parameters of vkCreateSwapchainKHR.
type VkSwapchainCreateInfoKHR struct {
	Next             unsafe.Pointer
	Surface          VkSurfaceKHR
	MinImageCount    uint32
	ImageFormat      VkFormat
	ImageExtent      VkExtent2D
	ImageArrayLayers uint32
	OldSwapchain     VkSwapchainKHR
}

// VkPresentInfoKHR holds the parameters of vkQueuePresentKHR. Results, when
// non-nil, receives the per-swapchain presentation result and must be the
// same length as Swapchains.
type VkPresentInfoKHR struct {
	Next           unsafe.Pointer
	WaitSemaphores []VkSemaphore
	Swapchains     []VkSwapchainKHR
	ImageIndices   []uint32
	Results        []VkResult
}

// VkSubmitInfo describes a single queue submission batch.
type VkSubmitInfo struct {
	WaitSemaphores   []VkSemaphore
	WaitDstStageMask []VkPipelineStageFlags
	CommandBuffers   []VkCommandBuffer
	SignalSemaphores []VkSemaphore
}

// VkCommandPoolCreateInfo holds the parameters of vkCreateCommandPool.
type VkCommandPoolCreateInfo struct {
	Flags            VkCommandPoolCreateFlags
	QueueFamilyIndex uint32
}

// VkCommandBufferAllocateInfo holds the parameters of
// vkAllocateCommandBuffers.
type VkCommandBufferAllocateInfo struct {
	CommandPool        VkCommandPool
	Level              VkCommandBufferLevel
	CommandBufferCount uint32
}

// VkCommandBufferBeginInfo holds the parameters of vkBeginCommandBuffer.
type VkCommandBufferBeginInfo struct {
	Flags VkCommandBufferUsageFlags
}

// VkFenceCreateInfo holds the parameters of vkCreateFence.
type VkFenceCreateInfo struct {
	Flags VkFenceCreateFlags
}

// VkSemaphoreCreateInfo holds the parameters of vkCreateSemaphore.
type VkSemaphoreCreateInfo struct{}

// VkAttachmentDescription describes a render pass attachment.
type VkAttachmentDescription struct {
	Format         VkFormat
	Samples        VkSampleCountFlags
	LoadOp         VkAttachmentLoadOp
	StoreOp        VkAttachmentStoreOp
	StencilLoadOp  VkAttachmentLoadOp
	StencilStoreOp VkAttachmentStoreOp
	InitialLayout  VkImageLayout
	FinalLayout    VkImageLayout
}

// VkAttachmentReference refers to an attachment by index within a subpass.
type VkAttachmentReference struct {
	Attachment uint32
	Layout     VkImageLayout
}

// VkSubpassDescription describes a render pass subpass.
type VkSubpassDescription struct {
	PipelineBindPoint VkPipelineBindPoint
	ColorAttachments  []VkAttachmentReference
}

// VkRenderPassCreateInfo holds the parameters of vkCreateRenderPass.
type VkRenderPassCreateInfo struct {
	Attachments []VkAttachmentDescription
	Subpasses   []VkSubpassDescription
}

// VkRenderPassBeginInfo holds the parameters of vkCmdBeginRenderPass.
type VkRenderPassBeginInfo struct {
	RenderPass  VkRenderPass
	Framebuffer VkFramebuffer
	RenderArea  VkRect2D
}

// VkImageSubresourceRange selects a set of mip levels and array layers.
type VkImageSubresourceRange struct {
	AspectMask     VkImageAspectFlags
	BaseMipLevel   uint32
	LevelCount     uint32
	BaseArrayLayer uint32
	LayerCount     uint32
}

// VkImageViewCreateInfo holds the parameters of vkCreateImageView.
type VkImageViewCreateInfo struct {
	Image            VkImage
	ViewType         VkImageViewType
	Format           VkFormat
	SubresourceRange VkImageSubresourceRange
}

// VkFramebufferCreateInfo holds the parameters of vkCreateFramebuffer.
type VkFramebufferCreateInfo struct {
	RenderPass  VkRenderPass
	Attachments []VkImageView
	Width       uint32
	Height      uint32
	Layers      uint32
}

// VkDescriptorPoolSize pairs a descriptor type with a count.
type VkDescriptorPoolSize struct {
	Type            VkDescriptorType
	DescriptorCount uint32
}

// VkDescriptorPoolCreateInfo holds the parameters of vkCreateDescriptorPool.
type VkDescriptorPoolCreateInfo struct {
	Flags     VkDescriptorPoolCreateFlags
	MaxSets   uint32
	PoolSizes []VkDescriptorPoolSize
}
