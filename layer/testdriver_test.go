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

package layer_test

import (
	"unsafe"

	"github.com/lexisother/ThatSkyLoader/vulkan"
)

// dispatchObject backs a fabricated dispatchable handle. The handle is the
// object's address, so its first word is the dispatch key, exactly as the
// loader lays real handles out.
type dispatchObject struct {
	key uintptr
}

// fakeFamily is one queue family of the fake device.
type fakeFamily struct {
	flags  vulkan.VkQueueFlags
	queues uint32
}

type queueID struct {
	device vulkan.VkDevice
	family uint32
	index  uint32
}

type submitRecord struct {
	queue   vulkan.VkQueue
	waits   []vulkan.VkSemaphore
	buffers []vulkan.VkCommandBuffer
	signals []vulkan.VkSemaphore
	fence   vulkan.VkFence
}

type presentRecord struct {
	queue      vulkan.VkQueue
	waits      []vulkan.VkSemaphore
	swapchains []vulkan.VkSwapchainKHR
	indices    []uint32
}

type objectCounts struct {
	pools           int
	buffers         int
	fences          int
	semaphores      int
	views           int
	framebuffers    int
	renderPasses    int
	descriptorPools int
}

// fakeDriver is an in-process stand-in for the next link of the chain: it
// fabricates handles, answers topology queries and records every submission
// and present the layer sends down.
type fakeDriver struct {
	keep []*dispatchObject // keeps fabricated handles reachable

	gpuTypes []vulkan.VkPhysicalDeviceType
	families []fakeFamily

	instances       int
	devices         int
	instancesClosed int
	devicesClosed   int
	loaderDataCalls int

	gpus   map[vulkan.VkInstance][]vulkan.VkPhysicalDevice
	queues map[queueID]vulkan.VkQueue

	nextHandle uint64
	imageCount uint32
	images     []vulkan.VkImage

	created   objectCounts
	destroyed objectCounts

	fenceWaits     int
	fenceWaitR     vulkan.VkResult
	submitR        vulkan.VkResult
	submits        []submitRecord
	presents       []presentRecord
	presentResults []vulkan.VkResult // consumed in order; empty means VK_SUCCESS
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		gpuTypes:   []vulkan.VkPhysicalDeviceType{vulkan.VkPhysicalDeviceType_VK_PHYSICAL_DEVICE_TYPE_DISCRETE_GPU},
		families:   []fakeFamily{{flags: vulkan.VkQueueFlagBits_VK_QUEUE_GRAPHICS_BIT, queues: 1}},
		gpus:       map[vulkan.VkInstance][]vulkan.VkPhysicalDevice{},
		queues:     map[queueID]vulkan.VkQueue{},
		imageCount: 3,
	}
}

func (d *fakeDriver) newDispatchable(key uintptr) uintptr {
	obj := &dispatchObject{key: key}
	d.keep = append(d.keep, obj)
	h := uintptr(unsafe.Pointer(obj))
	if key == 0 {
		obj.key = h // self-keyed until the loader data callback rewrites it
	}
	return h
}

func (d *fakeDriver) handle() uint64 {
	d.nextHandle++
	return d.nextHandle
}

// Chain construction, as the loader would lay it out.

func (d *fakeDriver) instanceCreateInfo() *vulkan.VkInstanceCreateInfo {
	chain := &vulkan.VkLayerInstanceCreateInfo{
		SType:    vulkan.VkStructureType_VK_STRUCTURE_TYPE_LOADER_INSTANCE_CREATE_INFO,
		Function: vulkan.VkLayerFunction_VK_LAYER_LINK_INFO,
		Layer:    &vulkan.VkLayerInstanceLink{NextGetInstanceProcAddr: d.instanceProcAddr},
	}
	return &vulkan.VkInstanceCreateInfo{Next: unsafe.Pointer(chain)}
}

func (d *fakeDriver) deviceCreateInfo(withLoaderData bool, queues ...vulkan.VkDeviceQueueCreateInfo) *vulkan.VkDeviceCreateInfo {
	link := &vulkan.VkLayerDeviceCreateInfo{
		SType:    vulkan.VkStructureType_VK_STRUCTURE_TYPE_LOADER_DEVICE_CREATE_INFO,
		Function: vulkan.VkLayerFunction_VK_LAYER_LINK_INFO,
		Layer: &vulkan.VkLayerDeviceLink{
			NextGetInstanceProcAddr: d.instanceProcAddr,
			NextGetDeviceProcAddr:   d.deviceProcAddr,
		},
	}
	if withLoaderData {
		link.Next = unsafe.Pointer(&vulkan.VkLayerDeviceCreateInfo{
			SType:               vulkan.VkStructureType_VK_STRUCTURE_TYPE_LOADER_DEVICE_CREATE_INFO,
			Function:            vulkan.VkLayerFunction_VK_LOADER_DATA_CALLBACK,
			SetDeviceLoaderData: d.setDeviceLoaderData,
		})
	}
	return &vulkan.VkDeviceCreateInfo{
		Next:             unsafe.Pointer(link),
		QueueCreateInfos: queues,
	}
}

func (d *fakeDriver) setDeviceLoaderData(device vulkan.VkDevice, object uintptr) vulkan.VkResult {
	*(*uintptr)(unsafe.Pointer(object)) = device.Key()
	d.loaderDataCalls++
	return vulkan.VkResult_VK_SUCCESS
}

// Instance level entry points.

func (d *fakeDriver) instanceProcAddr(_ vulkan.VkInstance, name string) vulkan.PFNvkVoidFunction {
	switch name {
	case "vkCreateInstance":
		return vulkan.PFNvkCreateInstance(d.createInstance)
	case "vkDestroyInstance":
		return vulkan.PFNvkDestroyInstance(d.destroyInstance)
	case "vkEnumeratePhysicalDevices":
		return vulkan.PFNvkEnumeratePhysicalDevices(d.enumeratePhysicalDevices)
	case "vkGetPhysicalDeviceProperties":
		return vulkan.PFNvkGetPhysicalDeviceProperties(d.getPhysicalDeviceProperties)
	case "vkGetPhysicalDeviceQueueFamilyProperties":
		return vulkan.PFNvkGetPhysicalDeviceQueueFamilyProperties(d.getQueueFamilyProperties)
	case "vkCreateDevice":
		return vulkan.PFNvkCreateDevice(d.createDevice)
	}
	return nil
}

func (d *fakeDriver) createInstance(_ *vulkan.VkInstanceCreateInfo, _ *vulkan.VkAllocationCallbacks, out *vulkan.VkInstance) vulkan.VkResult {
	instance := vulkan.VkInstance(d.newDispatchable(0))
	gpus := make([]vulkan.VkPhysicalDevice, len(d.gpuTypes))
	for i := range gpus {
		gpus[i] = vulkan.VkPhysicalDevice(d.newDispatchable(instance.Key()))
	}
	d.gpus[instance] = gpus
	d.instances++
	*out = instance
	return vulkan.VkResult_VK_SUCCESS
}

func (d *fakeDriver) destroyInstance(vulkan.VkInstance, *vulkan.VkAllocationCallbacks) {
	d.instancesClosed++
}

func (d *fakeDriver) enumeratePhysicalDevices(instance vulkan.VkInstance, count *uint32, devices []vulkan.VkPhysicalDevice) vulkan.VkResult {
	gpus := d.gpus[instance]
	*count = uint32(len(gpus))
	copy(devices, gpus)
	return vulkan.VkResult_VK_SUCCESS
}

func (d *fakeDriver) gpuIndex(gpu vulkan.VkPhysicalDevice) int {
	for _, gpus := range d.gpus {
		for i, g := range gpus {
			if g == gpu {
				return i
			}
		}
	}
	return -1
}

func (d *fakeDriver) getPhysicalDeviceProperties(gpu vulkan.VkPhysicalDevice, props *vulkan.VkPhysicalDeviceProperties) {
	i := d.gpuIndex(gpu)
	props.DeviceType = d.gpuTypes[i]
	props.DeviceName = "fake"
}

func (d *fakeDriver) getQueueFamilyProperties(_ vulkan.VkPhysicalDevice, count *uint32, props []vulkan.VkQueueFamilyProperties) {
	*count = uint32(len(d.families))
	for i := range props {
		props[i] = vulkan.VkQueueFamilyProperties{
			QueueFlags: d.families[i].flags,
			QueueCount: d.families[i].queues,
		}
	}
}

func (d *fakeDriver) createDevice(_ vulkan.VkPhysicalDevice, _ *vulkan.VkDeviceCreateInfo, _ *vulkan.VkAllocationCallbacks, out *vulkan.VkDevice) vulkan.VkResult {
	d.devices++
	*out = vulkan.VkDevice(d.newDispatchable(0))
	return vulkan.VkResult_VK_SUCCESS
}

// Device level entry points.

func (d *fakeDriver) deviceProcAddr(_ vulkan.VkDevice, name string) vulkan.PFNvkVoidFunction {
	switch name {
	case "vkDestroyDevice":
		return vulkan.PFNvkDestroyDevice(d.destroyDevice)
	case "vkGetDeviceQueue":
		return vulkan.PFNvkGetDeviceQueue(d.getDeviceQueue)
	case "vkQueueSubmit":
		return vulkan.PFNvkQueueSubmit(d.queueSubmit)
	case "vkQueuePresentKHR":
		return vulkan.PFNvkQueuePresentKHR(d.queuePresent)
	case "vkCreateSwapchainKHR":
		return vulkan.PFNvkCreateSwapchainKHR(d.createSwapchain)
	case "vkAcquireNextImageKHR":
		return vulkan.PFNvkAcquireNextImageKHR(d.acquireNextImage)
	case "vkGetSwapchainImagesKHR":
		return vulkan.PFNvkGetSwapchainImagesKHR(d.getSwapchainImages)
	case "vkCreateCommandPool":
		return vulkan.PFNvkCreateCommandPool(d.createCommandPool)
	case "vkDestroyCommandPool":
		return vulkan.PFNvkDestroyCommandPool(d.destroyCommandPool)
	case "vkAllocateCommandBuffers":
		return vulkan.PFNvkAllocateCommandBuffers(d.allocateCommandBuffers)
	case "vkFreeCommandBuffers":
		return vulkan.PFNvkFreeCommandBuffers(d.freeCommandBuffers)
	case "vkResetCommandBuffer":
		return vulkan.PFNvkResetCommandBuffer(d.resetCommandBuffer)
	case "vkBeginCommandBuffer":
		return vulkan.PFNvkBeginCommandBuffer(d.beginCommandBuffer)
	case "vkEndCommandBuffer":
		return vulkan.PFNvkEndCommandBuffer(d.endCommandBuffer)
	case "vkCmdBeginRenderPass":
		return vulkan.PFNvkCmdBeginRenderPass(d.cmdBeginRenderPass)
	case "vkCmdEndRenderPass":
		return vulkan.PFNvkCmdEndRenderPass(d.cmdEndRenderPass)
	case "vkCreateFence":
		return vulkan.PFNvkCreateFence(d.createFence)
	case "vkDestroyFence":
		return vulkan.PFNvkDestroyFence(d.destroyFence)
	case "vkWaitForFences":
		return vulkan.PFNvkWaitForFences(d.waitForFences)
	case "vkResetFences":
		return vulkan.PFNvkResetFences(d.resetFences)
	case "vkCreateSemaphore":
		return vulkan.PFNvkCreateSemaphore(d.createSemaphore)
	case "vkDestroySemaphore":
		return vulkan.PFNvkDestroySemaphore(d.destroySemaphore)
	case "vkCreateRenderPass":
		return vulkan.PFNvkCreateRenderPass(d.createRenderPass)
	case "vkDestroyRenderPass":
		return vulkan.PFNvkDestroyRenderPass(d.destroyRenderPass)
	case "vkCreateImageView":
		return vulkan.PFNvkCreateImageView(d.createImageView)
	case "vkDestroyImageView":
		return vulkan.PFNvkDestroyImageView(d.destroyImageView)
	case "vkCreateFramebuffer":
		return vulkan.PFNvkCreateFramebuffer(d.createFramebuffer)
	case "vkDestroyFramebuffer":
		return vulkan.PFNvkDestroyFramebuffer(d.destroyFramebuffer)
	case "vkCreateDescriptorPool":
		return vulkan.PFNvkCreateDescriptorPool(d.createDescriptorPool)
	case "vkDestroyDescriptorPool":
		return vulkan.PFNvkDestroyDescriptorPool(d.destroyDescriptorPool)
	}
	return nil
}

func (d *fakeDriver) destroyDevice(vulkan.VkDevice, *vulkan.VkAllocationCallbacks) {
	d.devicesClosed++
}

func (d *fakeDriver) getDeviceQueue(device vulkan.VkDevice, family, index uint32, out *vulkan.VkQueue) {
	if int(family) >= len(d.families) || index >= d.families[family].queues {
		*out = 0
		return
	}
	id := queueID{device: device, family: family, index: index}
	q, ok := d.queues[id]
	if !ok {
		q = vulkan.VkQueue(d.newDispatchable(0))
		d.queues[id] = q
	}
	*out = q
}

func (d *fakeDriver) queueSubmit(queue vulkan.VkQueue, submits []vulkan.VkSubmitInfo, fence vulkan.VkFence) vulkan.VkResult {
	if d.submitR != vulkan.VkResult_VK_SUCCESS {
		return d.submitR
	}
	for _, s := range submits {
		d.submits = append(d.submits, submitRecord{
			queue:   queue,
			waits:   append([]vulkan.VkSemaphore(nil), s.WaitSemaphores...),
			buffers: append([]vulkan.VkCommandBuffer(nil), s.CommandBuffers...),
			signals: append([]vulkan.VkSemaphore(nil), s.SignalSemaphores...),
			fence:   fence,
		})
	}
	return vulkan.VkResult_VK_SUCCESS
}

func (d *fakeDriver) queuePresent(queue vulkan.VkQueue, info *vulkan.VkPresentInfoKHR) vulkan.VkResult {
	d.presents = append(d.presents, presentRecord{
		queue:      queue,
		waits:      append([]vulkan.VkSemaphore(nil), info.WaitSemaphores...),
		swapchains: append([]vulkan.VkSwapchainKHR(nil), info.Swapchains...),
		indices:    append([]uint32(nil), info.ImageIndices...),
	})
	r := vulkan.VkResult_VK_SUCCESS
	if len(d.presentResults) > 0 {
		r = d.presentResults[0]
		d.presentResults = d.presentResults[1:]
	}
	if info.Results != nil {
		for i := range info.Results {
			info.Results[i] = r
		}
	}
	return r
}

func (d *fakeDriver) createSwapchain(_ vulkan.VkDevice, _ *vulkan.VkSwapchainCreateInfoKHR, _ *vulkan.VkAllocationCallbacks, out *vulkan.VkSwapchainKHR) vulkan.VkResult {
	d.images = make([]vulkan.VkImage, d.imageCount)
	for i := range d.images {
		d.images[i] = vulkan.VkImage(d.handle())
	}
	*out = vulkan.VkSwapchainKHR(d.handle())
	return vulkan.VkResult_VK_SUCCESS
}

func (d *fakeDriver) acquireNextImage(_ vulkan.VkDevice, _ vulkan.VkSwapchainKHR, _ uint64, _ vulkan.VkSemaphore, _ vulkan.VkFence, imageIndex *uint32) vulkan.VkResult {
	*imageIndex = 0
	return vulkan.VkResult_VK_SUCCESS
}

func (d *fakeDriver) getSwapchainImages(_ vulkan.VkDevice, _ vulkan.VkSwapchainKHR, count *uint32, images []vulkan.VkImage) vulkan.VkResult {
	*count = uint32(len(d.images))
	copy(images, d.images)
	return vulkan.VkResult_VK_SUCCESS
}

func (d *fakeDriver) createCommandPool(_ vulkan.VkDevice, _ *vulkan.VkCommandPoolCreateInfo, _ *vulkan.VkAllocationCallbacks, out *vulkan.VkCommandPool) vulkan.VkResult {
	d.created.pools++
	*out = vulkan.VkCommandPool(d.handle())
	return vulkan.VkResult_VK_SUCCESS
}

func (d *fakeDriver) destroyCommandPool(_ vulkan.VkDevice, _ vulkan.VkCommandPool, _ *vulkan.VkAllocationCallbacks) {
	d.destroyed.pools++
}

func (d *fakeDriver) allocateCommandBuffers(_ vulkan.VkDevice, info *vulkan.VkCommandBufferAllocateInfo, buffers []vulkan.VkCommandBuffer) vulkan.VkResult {
	for i := uint32(0); i < info.CommandBufferCount; i++ {
		d.created.buffers++
		buffers[i] = vulkan.VkCommandBuffer(d.newDispatchable(0))
	}
	return vulkan.VkResult_VK_SUCCESS
}

func (d *fakeDriver) freeCommandBuffers(_ vulkan.VkDevice, _ vulkan.VkCommandPool, buffers []vulkan.VkCommandBuffer) {
	d.destroyed.buffers += len(buffers)
}

func (d *fakeDriver) resetCommandBuffer(vulkan.VkCommandBuffer, uint32) vulkan.VkResult {
	return vulkan.VkResult_VK_SUCCESS
}

func (d *fakeDriver) beginCommandBuffer(vulkan.VkCommandBuffer, *vulkan.VkCommandBufferBeginInfo) vulkan.VkResult {
	return vulkan.VkResult_VK_SUCCESS
}

func (d *fakeDriver) endCommandBuffer(vulkan.VkCommandBuffer) vulkan.VkResult {
	return vulkan.VkResult_VK_SUCCESS
}

func (d *fakeDriver) cmdBeginRenderPass(vulkan.VkCommandBuffer, *vulkan.VkRenderPassBeginInfo, vulkan.VkSubpassContents) {
}

func (d *fakeDriver) cmdEndRenderPass(vulkan.VkCommandBuffer) {}

func (d *fakeDriver) createFence(_ vulkan.VkDevice, _ *vulkan.VkFenceCreateInfo, _ *vulkan.VkAllocationCallbacks, out *vulkan.VkFence) vulkan.VkResult {
	d.created.fences++
	*out = vulkan.VkFence(d.handle())
	return vulkan.VkResult_VK_SUCCESS
}

func (d *fakeDriver) destroyFence(_ vulkan.VkDevice, _ vulkan.VkFence, _ *vulkan.VkAllocationCallbacks) {
	d.destroyed.fences++
}

func (d *fakeDriver) waitForFences(_ vulkan.VkDevice, fences []vulkan.VkFence, _ bool, _ uint64) vulkan.VkResult {
	d.fenceWaits += len(fences)
	return d.fenceWaitR
}

func (d *fakeDriver) resetFences(_ vulkan.VkDevice, _ []vulkan.VkFence) vulkan.VkResult {
	return vulkan.VkResult_VK_SUCCESS
}

func (d *fakeDriver) createSemaphore(_ vulkan.VkDevice, _ *vulkan.VkSemaphoreCreateInfo, _ *vulkan.VkAllocationCallbacks, out *vulkan.VkSemaphore) vulkan.VkResult {
	d.created.semaphores++
	*out = vulkan.VkSemaphore(d.handle())
	return vulkan.VkResult_VK_SUCCESS
}

func (d *fakeDriver) destroySemaphore(_ vulkan.VkDevice, _ vulkan.VkSemaphore, _ *vulkan.VkAllocationCallbacks) {
	d.destroyed.semaphores++
}

func (d *fakeDriver) createRenderPass(_ vulkan.VkDevice, _ *vulkan.VkRenderPassCreateInfo, _ *vulkan.VkAllocationCallbacks, out *vulkan.VkRenderPass) vulkan.VkResult {
	d.created.renderPasses++
	*out = vulkan.VkRenderPass(d.handle())
	return vulkan.VkResult_VK_SUCCESS
}

func (d *fakeDriver) destroyRenderPass(_ vulkan.VkDevice, _ vulkan.VkRenderPass, _ *vulkan.VkAllocationCallbacks) {
	d.destroyed.renderPasses++
}

func (d *fakeDriver) createImageView(_ vulkan.VkDevice, _ *vulkan.VkImageViewCreateInfo, _ *vulkan.VkAllocationCallbacks, out *vulkan.VkImageView) vulkan.VkResult {
	d.created.views++
	*out = vulkan.VkImageView(d.handle())
	return vulkan.VkResult_VK_SUCCESS
}

func (d *fakeDriver) destroyImageView(_ vulkan.VkDevice, _ vulkan.VkImageView, _ *vulkan.VkAllocationCallbacks) {
	d.destroyed.views++
}

func (d *fakeDriver) createFramebuffer(_ vulkan.VkDevice, _ *vulkan.VkFramebufferCreateInfo, _ *vulkan.VkAllocationCallbacks, out *vulkan.VkFramebuffer) vulkan.VkResult {
	d.created.framebuffers++
	*out = vulkan.VkFramebuffer(d.handle())
	return vulkan.VkResult_VK_SUCCESS
}

func (d *fakeDriver) destroyFramebuffer(_ vulkan.VkDevice, _ vulkan.VkFramebuffer, _ *vulkan.VkAllocationCallbacks) {
	d.destroyed.framebuffers++
}

func (d *fakeDriver) createDescriptorPool(_ vulkan.VkDevice, _ *vulkan.VkDescriptorPoolCreateInfo, _ *vulkan.VkAllocationCallbacks, out *vulkan.VkDescriptorPool) vulkan.VkResult {
	d.created.descriptorPools++
	*out = vulkan.VkDescriptorPool(d.handle())
	return vulkan.VkResult_VK_SUCCESS
}

func (d *fakeDriver) destroyDescriptorPool(_ vulkan.VkDevice, _ vulkan.VkDescriptorPool, _ *vulkan.VkAllocationCallbacks) {
	d.destroyed.descriptorPools++
}
