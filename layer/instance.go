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

// CreateInstance intercepts vkCreateInstance. It extracts the next link from
// the loader's negotiation chain, advances the chain for layers below us,
// forwards the call, and on success captures the instance-level dispatch
// table for the new instance.
func (l *Layer) CreateInstance(
	info *vulkan.VkInstanceCreateInfo,
	allocator *vulkan.VkAllocationCallbacks,
	out *vulkan.VkInstance) vulkan.VkResult {

	ctx := l.ctx

	chain := vulkan.FindInstanceChainInfo(info, vulkan.VkLayerFunction_VK_LAYER_LINK_INFO)
	if chain == nil || chain.Layer == nil {
		log.E(ctx, "vkCreateInstance: %v", ErrNoChainContext)
		return vulkan.VkResult_VK_ERROR_INITIALIZATION_FAILED
	}
	gpa := chain.Layer.NextGetInstanceProcAddr
	// Advance the chain so the next layer finds its own link.
	chain.Layer = chain.Layer.Next

	createInstance, _ := gpa(0, "vkCreateInstance").(vulkan.PFNvkCreateInstance)
	if createInstance == nil {
		log.E(ctx, "vkCreateInstance: next link did not resolve vkCreateInstance")
		return vulkan.VkResult_VK_ERROR_INITIALIZATION_FAILED
	}

	if r := createInstance(info, allocator, out); r != vulkan.VkResult_VK_SUCCESS {
		log.W(ctx, "vkCreateInstance: downstream creation failed: %v", r)
		return r
	}

	instance := *out
	table := vulkan.VkLayerInstanceDispatchTable{}
	table.GetInstanceProcAddr = gpa
	table.DestroyInstance, _ = gpa(instance, "vkDestroyInstance").(vulkan.PFNvkDestroyInstance)
	table.EnumeratePhysicalDevices, _ = gpa(instance, "vkEnumeratePhysicalDevices").(vulkan.PFNvkEnumeratePhysicalDevices)
	table.GetPhysicalDeviceProperties, _ = gpa(instance, "vkGetPhysicalDeviceProperties").(vulkan.PFNvkGetPhysicalDeviceProperties)
	table.GetPhysicalDeviceQueueFamilyProperties, _ = gpa(instance, "vkGetPhysicalDeviceQueueFamilyProperties").(vulkan.PFNvkGetPhysicalDeviceQueueFamilyProperties)
	table.CreateDevice, _ = gpa(instance, "vkCreateDevice").(vulkan.PFNvkCreateDevice)

	l.registry.RegisterInstance(&InstanceState{
		Instance: instance,
		Table:    table,
	})
	log.I(ctx, "tracking instance %#x", uintptr(instance))
	return vulkan.VkResult_VK_SUCCESS
}

// DestroyInstance intercepts vkDestroyInstance, dropping the registry entry
// before forwarding the destruction.
func (l *Layer) DestroyInstance(instance vulkan.VkInstance, allocator *vulkan.VkAllocationCallbacks) {
	if instance == 0 {
		return
	}
	key := instance.Key()
	st := l.registry.Instance(key)
	l.registry.UnregisterInstance(key)
	log.I(l.ctx, "dropped instance %#x", uintptr(instance))
	if st.Table.DestroyInstance != nil {
		st.Table.DestroyInstance(instance, allocator)
	}
}
