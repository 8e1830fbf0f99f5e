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
	"github.com/lexisother/ThatSkyLoader/vulkan"
)

// GetInstanceProcAddr is the layer's vkGetInstanceProcAddr. Intercepted
// names resolve to the layer's own entry points; everything else defers to
// the next link captured for the instance.
func (l *Layer) GetInstanceProcAddr(instance vulkan.VkInstance, name string) vulkan.PFNvkVoidFunction {
	switch name {
	case "vkGetInstanceProcAddr":
		return vulkan.PFNvkGetInstanceProcAddr(l.GetInstanceProcAddr)
	case "vkCreateInstance":
		return vulkan.PFNvkCreateInstance(l.CreateInstance)
	case "vkDestroyInstance":
		return vulkan.PFNvkDestroyInstance(l.DestroyInstance)
	case "vkGetDeviceProcAddr":
		return vulkan.PFNvkGetDeviceProcAddr(l.GetDeviceProcAddr)
	case "vkCreateDevice":
		return vulkan.PFNvkCreateDevice(l.CreateDevice)
	case "vkDestroyDevice":
		return vulkan.PFNvkDestroyDevice(l.DestroyDevice)
	}
	if instance == 0 {
		return nil
	}
	st := l.registry.Instance(instance.Key())
	if st.Table.GetInstanceProcAddr == nil {
		return nil
	}
	return st.Table.GetInstanceProcAddr(instance, name)
}

// GetDeviceProcAddr is the layer's vkGetDeviceProcAddr.
func (l *Layer) GetDeviceProcAddr(device vulkan.VkDevice, name string) vulkan.PFNvkVoidFunction {
	switch name {
	case "vkGetDeviceProcAddr":
		return vulkan.PFNvkGetDeviceProcAddr(l.GetDeviceProcAddr)
	case "vkDestroyDevice":
		return vulkan.PFNvkDestroyDevice(l.DestroyDevice)
	case "vkQueuePresentKHR":
		return vulkan.PFNvkQueuePresentKHR(l.QueuePresent)
	case "vkCreateSwapchainKHR":
		return vulkan.PFNvkCreateSwapchainKHR(l.CreateSwapchain)
	case "vkAcquireNextImageKHR":
		return vulkan.PFNvkAcquireNextImageKHR(l.AcquireNextImage)
	}
	if device == 0 {
		return nil
	}
	st := l.registry.Device(device.Key())
	if st.Table.GetDeviceProcAddr == nil {
		return nil
	}
	return st.Table.GetDeviceProcAddr(device, name)
}
