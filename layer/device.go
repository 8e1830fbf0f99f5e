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

package layer

import (
	"github.com/lexisother/ThatSkyLoader/core/log"
	"github.com/lexisother/ThatSkyLoader/vulkan"
)

// CreateDevice intercepts vkCreateDevice. Beyond the chain handling mirrored
// from CreateInstance, it captures the loader data callback, fetches every
// queue the application asked for and registers each with the loader and
// with the dispatch registry. The first queue created becomes the device's
// primary queue, the fallback target for injected rendering.
func (l *Layer) CreateDevice(
	physicalDevice vulkan.VkPhysicalDevice,
	info *vulkan.VkDeviceCreateInfo,
	allocator *vulkan.VkAllocationCallbacks,
	out *vulkan.VkDevice) vulkan.VkResult {

	ctx := l.ctx

	chain := vulkan.FindDeviceChainInfo(info, vulkan.VkLayerFunction_VK_LAYER_LINK_INFO)
	if chain == nil || chain.Layer == nil {
		log.E(ctx, "vkCreateDevice: %v", ErrNoChainContext)
		return vulkan.VkResult_VK_ERROR_INITIALIZATION_FAILED
	}
	gipa := chain.Layer.NextGetInstanceProcAddr
	gdpa := chain.Layer.NextGetDeviceProcAddr
	chain.Layer = chain.Layer.Next

	createDevice, _ := gipa(0, "vkCreateDevice").(vulkan.PFNvkCreateDevice)
	if createDevice == nil {
		log.E(ctx, "vkCreateDevice: next link did not resolve vkCreateDevice")
		return vulkan.VkResult_VK_ERROR_INITIALIZATION_FAILED
	}

	// The loader data callback is mandatory: without it queues fetched by
	// the layer would never be associated with their device and every later
	// dispatch on them would misroute.
	loaderData := vulkan.FindDeviceChainInfo(info, vulkan.VkLayerFunction_VK_LOADER_DATA_CALLBACK)
	if loaderData == nil || loaderData.SetDeviceLoaderData == nil {
		log.E(ctx, "vkCreateDevice: %v", ErrNoLoaderDataCallback)
		return vulkan.VkResult_VK_ERROR_INITIALIZATION_FAILED
	}

	if r := createDevice(physicalDevice, info, allocator, out); r != vulkan.VkResult_VK_SUCCESS {
		log.W(ctx, "vkCreateDevice: downstream creation failed: %v", r)
		return r
	}

	device := *out
	table := vulkan.VkLayerDispatchTable{}
	table.GetDeviceProcAddr = gdpa
	table.DestroyDevice, _ = gdpa(device, "vkDestroyDevice").(vulkan.PFNvkDestroyDevice)
	table.GetDeviceQueue, _ = gdpa(device, "vkGetDeviceQueue").(vulkan.PFNvkGetDeviceQueue)
	table.QueuePresentKHR, _ = gdpa(device, "vkQueuePresentKHR").(vulkan.PFNvkQueuePresentKHR)
	table.CreateSwapchainKHR, _ = gdpa(device, "vkCreateSwapchainKHR").(vulkan.PFNvkCreateSwapchainKHR)
	table.AcquireNextImageKHR, _ = gdpa(device, "vkAcquireNextImageKHR").(vulkan.PFNvkAcquireNextImageKHR)

	// A physical device dispatches through its instance, so its key finds
	// the owning instance state. Missing is survivable: topology queries
	// just degrade to the primary-queue fallback.
	instance, ok := l.registry.InstanceOK(physicalDevice.Key())
	if !ok {
		log.W(ctx, "vkCreateDevice: physical device %#x has no tracked instance", uintptr(physicalDevice))
	}

	dev := &DeviceState{
		Instance:       instance,
		PhysicalDevice: physicalDevice,
		Device:         device,
		Table:          table,
		SetLoaderData:  loaderData.SetDeviceLoaderData,
		frames:         newFrameResources(device),
	}

	if table.GetDeviceQueue == nil {
		log.E(ctx, "vkCreateDevice: next link did not resolve vkGetDeviceQueue")
	} else {
		for _, qci := range info.QueueCreateInfos {
			for i := uint32(0); i < uint32(len(qci.QueuePriorities)); i++ {
				var queue vulkan.VkQueue
				table.GetDeviceQueue(device, qci.QueueFamilyIndex, i, &queue)
				if queue == 0 {
					continue
				}
				if r := dev.SetLoaderData(device, uintptr(queue)); r != vulkan.VkResult_VK_SUCCESS {
					log.W(ctx, "vkCreateDevice: loader data callback failed for queue %#x: %v", uintptr(queue), r)
				}
				qs := &QueueState{
					Device:      dev,
					Queue:       queue,
					FamilyIndex: qci.QueueFamilyIndex,
					Index:       i,
				}
				dev.Queues = append(dev.Queues, qs)
				if dev.Primary == nil {
					dev.Primary = qs
				}
			}
		}
	}

	l.registry.RegisterDevice(dev)
	log.I(ctx, "tracking device %#x with %d queues", uintptr(device), len(dev.Queues))
	return vulkan.VkResult_VK_SUCCESS
}

// DestroyDevice intercepts vkDestroyDevice. All frame resources are drained
// and destroyed before the device goes away, then the registry entry and its
// queues are dropped and the destruction forwarded.
func (l *Layer) DestroyDevice(device vulkan.VkDevice, allocator *vulkan.VkAllocationCallbacks) {
	if device == 0 {
		return
	}
	key := device.Key()
	dev := l.registry.Device(key)
	dev.frames.teardown(l.ctx)
	l.registry.UnregisterDevice(key)
	log.I(l.ctx, "dropped device %#x", uintptr(device))
	if dev.Table.DestroyDevice != nil {
		dev.Table.DestroyDevice(device, allocator)
	}
}
