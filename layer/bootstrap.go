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
	"context"

	"github.com/pkg/errors"

	"github.com/lexisother/ThatSkyLoader/core/log"
	"github.com/lexisother/ThatSkyLoader/vulkan"
)

// Probe is the layer's own view of the GPU, built independently of any
// device the host application creates. It gives overlay resources a home
// before the application's first device exists.
type Probe struct {
	Instance       vulkan.VkInstance
	PhysicalDevice vulkan.VkPhysicalDevice
	Device         vulkan.VkDevice
	QueueFamily    uint32
}

// deviceTypeRank orders physical devices by desirability; lower is better.
func deviceTypeRank(t vulkan.VkPhysicalDeviceType) int {
	switch t {
	case vulkan.VkPhysicalDeviceType_VK_PHYSICAL_DEVICE_TYPE_DISCRETE_GPU:
		return 0
	case vulkan.VkPhysicalDeviceType_VK_PHYSICAL_DEVICE_TYPE_INTEGRATED_GPU:
		return 1
	case vulkan.VkPhysicalDeviceType_VK_PHYSICAL_DEVICE_TYPE_VIRTUAL_GPU:
		return 2
	case vulkan.VkPhysicalDeviceType_VK_PHYSICAL_DEVICE_TYPE_CPU:
		return 3
	default:
		return 4
	}
}

// Bootstrap picks the best physical device visible through instance, finds a
// graphics-capable queue family on it and creates a one-queue device there.
func Bootstrap(ctx context.Context, instance vulkan.VkInstance, table *vulkan.VkLayerInstanceDispatchTable) (*Probe, error) {
	if table.EnumeratePhysicalDevices == nil ||
		table.GetPhysicalDeviceProperties == nil ||
		table.GetPhysicalDeviceQueueFamilyProperties == nil ||
		table.CreateDevice == nil {
		return nil, errors.New("instance dispatch table is incomplete")
	}

	var count uint32
	if r := table.EnumeratePhysicalDevices(instance, &count, nil); r != vulkan.VkResult_VK_SUCCESS {
		return nil, errors.Errorf("enumerating physical devices: %v", r)
	}
	if count == 0 {
		return nil, errors.New("no physical devices")
	}
	gpus := make([]vulkan.VkPhysicalDevice, count)
	if r := table.EnumeratePhysicalDevices(instance, &count, gpus); r != vulkan.VkResult_VK_SUCCESS {
		return nil, errors.Errorf("fetching physical devices: %v", r)
	}

	best, bestRank := vulkan.VkPhysicalDevice(0), int(^uint(0)>>1)
	for _, gpu := range gpus[:count] {
		var props vulkan.VkPhysicalDeviceProperties
		table.GetPhysicalDeviceProperties(gpu, &props)
		log.I(ctx, "visible device: %s (%v)", props.DeviceName, props.DeviceType)
		if rank := deviceTypeRank(props.DeviceType); rank < bestRank {
			best, bestRank = gpu, rank
		}
	}

	var familyCount uint32
	table.GetPhysicalDeviceQueueFamilyProperties(best, &familyCount, nil)
	families := make([]vulkan.VkQueueFamilyProperties, familyCount)
	table.GetPhysicalDeviceQueueFamilyProperties(best, &familyCount, families)
	family, found := uint32(0), false
	for i, f := range families[:familyCount] {
		if f.QueueFlags&vulkan.VkQueueFlagBits_VK_QUEUE_GRAPHICS_BIT != 0 {
			family, found = uint32(i), true
			break
		}
	}
	if !found {
		return nil, errors.New("selected device has no graphics queue family")
	}

	info := vulkan.VkDeviceCreateInfo{
		QueueCreateInfos: []vulkan.VkDeviceQueueCreateInfo{{
			QueueFamilyIndex: family,
			QueuePriorities:  []float32{1},
		}},
		EnabledExtensionNames: []string{"VK_KHR_swapchain"},
	}
	var device vulkan.VkDevice
	if r := table.CreateDevice(best, &info, nil, &device); r != vulkan.VkResult_VK_SUCCESS {
		return nil, errors.Errorf("creating probe device: %v", r)
	}
	log.I(ctx, "probe device %#x on family %d", uintptr(device), family)
	return &Probe{
		Instance:       instance,
		PhysicalDevice: best,
		Device:         device,
		QueueFamily:    family,
	}, nil
}
