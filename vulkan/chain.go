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

// VkLayerFunction discriminates the loader structures found in a creation
// parameter chain.
type VkLayerFunction int32

const (
	// VkLayerFunction_VK_LAYER_LINK_INFO marks the node carrying the link to
	// the next layer in the chain.
	VkLayerFunction_VK_LAYER_LINK_INFO VkLayerFunction = 0
	// VkLayerFunction_VK_LOADER_DATA_CALLBACK marks the node carrying the
	// loader's set-device-loader-data callback.
	VkLayerFunction_VK_LOADER_DATA_CALLBACK VkLayerFunction = 1
)

// VkBaseOutStructure is the common header shared by every structure that can
// appear in a pNext chain. Chain nodes of unknown concrete type are walked
// through this header.
type VkBaseOutStructure struct {
	SType VkStructureType
	Next  unsafe.Pointer
}

// VkLayerInstanceLink is one link of the instance creation chain. Each layer
// consumes the head link and passes the tail to the next layer down.
type VkLayerInstanceLink struct {
	Next                    *VkLayerInstanceLink
	NextGetInstanceProcAddr PFNvkGetInstanceProcAddr
}

// VkLayerDeviceLink is one link of the device creation chain.
type VkLayerDeviceLink struct {
	Next                    *VkLayerDeviceLink
	NextGetInstanceProcAddr PFNvkGetInstanceProcAddr
	NextGetDeviceProcAddr   PFNvkGetDeviceProcAddr
}

// VkLayerInstanceCreateInfo is the loader structure threaded through the
// vkCreateInstance parameter chain.
type VkLayerInstanceCreateInfo struct {
	SType    VkStructureType
	Next     unsafe.Pointer
	Function VkLayerFunction
	// Layer is valid when Function is VK_LAYER_LINK_INFO.
	Layer *VkLayerInstanceLink
}

// VkLayerDeviceCreateInfo is the loader structure threaded through the
// vkCreateDevice parameter chain.
type VkLayerDeviceCreateInfo struct {
	SType    VkStructureType
	Next     unsafe.Pointer
	Function VkLayerFunction
	// Layer is valid when Function is VK_LAYER_LINK_INFO.
	Layer *VkLayerDeviceLink
	// SetDeviceLoaderData is valid when Function is VK_LOADER_DATA_CALLBACK.
	SetDeviceLoaderData PFNvkSetDeviceLoaderData
}

// FindInstanceChainInfo walks the instance creation parameter chain looking
// for the loader structure with the given function marker. Returns nil if
// the chain does not carry one, which means the layer was invoked without
// the loader negotiation it depends on.
func FindInstanceChainInfo(info *VkInstanceCreateInfo, fn VkLayerFunction) *VkLayerInstanceCreateInfo {
	for p := info.Next; p != nil; p = (*VkBaseOutStructure)(p).Next {
		base := (*VkBaseOutStructure)(p)
		if base.SType != VkStructureType_VK_STRUCTURE_TYPE_LOADER_INSTANCE_CREATE_INFO {
			continue
		}
		ci := (*VkLayerInstanceCreateInfo)(p)
		if ci.Function == fn {
			return ci
		}
	}
	return nil
}

// FindDeviceChainInfo walks the device creation parameter chain looking for
// the loader structure with the given function marker.
func FindDeviceChainInfo(info *VkDeviceCreateInfo, fn VkLayerFunction) *VkLayerDeviceCreateInfo {
	for p := info.Next; p != nil; p = (*VkBaseOutStructure)(p).Next {
		base := (*VkBaseOutStructure)(p)
		if base.SType != VkStructureType_VK_STRUCTURE_TYPE_LOADER_DEVICE_CREATE_INFO {
			continue
		}
		ci := (*VkLayerDeviceCreateInfo)(p)
		if ci.Function == fn {
			return ci
		}
	}
	return nil
}
