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

package driver

import (
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/lexisother/ThatSkyLoader/vulkan"
)

// C-ABI mirror structures for the bridged entry points. Field order, sizes
// and padding must match the 64-bit Vulkan headers exactly.

type cApplicationInfo struct {
	sType              uint32
	_                  uint32
	next               unsafe.Pointer
	applicationName    *byte
	applicationVersion uint32
	_                  uint32
	engineName         *byte
	engineVersion      uint32
	apiVersion         uint32
}

type cInstanceCreateInfo struct {
	sType                 uint32
	_                     uint32
	next                  unsafe.Pointer
	flags                 uint32
	_                     uint32
	applicationInfo       *cApplicationInfo
	enabledLayerCount     uint32
	_                     uint32
	enabledLayerNames     **byte
	enabledExtensionCount uint32
	_                     uint32
	enabledExtensionNames **byte
}

type cDeviceQueueCreateInfo struct {
	sType            uint32
	_                uint32
	next             unsafe.Pointer
	flags            uint32
	queueFamilyIndex uint32
	queueCount       uint32
	_                uint32
	queuePriorities  *float32
}

type cDeviceCreateInfo struct {
	sType                 uint32
	_                     uint32
	next                  unsafe.Pointer
	flags                 uint32
	queueCreateInfoCount  uint32
	queueCreateInfos      *cDeviceQueueCreateInfo
	enabledLayerCount     uint32
	_                     uint32
	enabledLayerNames     **byte
	enabledExtensionCount uint32
	_                     uint32
	enabledExtensionNames **byte
	enabledFeatures       unsafe.Pointer
}

type cQueueFamilyProperties struct {
	queueFlags                  uint32
	queueCount                  uint32
	timestampValidBits          uint32
	minImageTransferGranularity [3]uint32
}

// cPhysicalDeviceProperties only declares the header the layer reads back;
// the tail is sized generously so the driver can write the full structure.
type cPhysicalDeviceProperties struct {
	apiVersion        uint32
	driverVersion     uint32
	vendorID          uint32
	deviceID          uint32
	deviceType        uint32
	deviceName        [256]byte
	pipelineCacheUUID [16]byte
	tail              [512]uint64
}

const (
	cStructureTypeApplicationInfo       = 0
	cStructureTypeInstanceCreateInfo    = 1
	cStructureTypeDeviceQueueCreateInfo = 2
	cStructureTypeDeviceCreateInfo      = 3
)

func cString(s string) *byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return &b[0]
}

func cStringArray(ss []string) (**byte, []*byte) {
	if len(ss) == 0 {
		return nil, nil
	}
	arr := make([]*byte, len(ss))
	for i, s := range ss {
		arr[i] = cString(s)
	}
	return &arr[0], arr
}

func goString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

func makeCreateInstance(pfn uintptr) vulkan.PFNvkCreateInstance {
	var raw func(info *cInstanceCreateInfo, allocator unsafe.Pointer, out *uintptr) int32
	purego.RegisterFunc(&raw, pfn)
	return func(info *vulkan.VkInstanceCreateInfo, _ *vulkan.VkAllocationCallbacks, out *vulkan.VkInstance) vulkan.VkResult {
		app := cApplicationInfo{
			sType:           cStructureTypeApplicationInfo,
			applicationName: cString(info.ApplicationName),
			engineName:      cString(info.EngineName),
			apiVersion:      info.APIVersion,
		}
		layers, layerBack := cStringArray(info.EnabledLayerNames)
		exts, extBack := cStringArray(info.EnabledExtensionNames)
		ci := cInstanceCreateInfo{
			sType:                 cStructureTypeInstanceCreateInfo,
			applicationInfo:       &app,
			enabledLayerCount:     uint32(len(info.EnabledLayerNames)),
			enabledLayerNames:     layers,
			enabledExtensionCount: uint32(len(info.EnabledExtensionNames)),
			enabledExtensionNames: exts,
		}
		var handle uintptr
		r := raw(&ci, nil, &handle)
		runtime.KeepAlive(&app)
		runtime.KeepAlive(layerBack)
		runtime.KeepAlive(extBack)
		*out = vulkan.VkInstance(handle)
		return vulkan.VkResult(r)
	}
}

func makeDestroyInstance(pfn uintptr) vulkan.PFNvkDestroyInstance {
	var raw func(instance uintptr, allocator unsafe.Pointer)
	purego.RegisterFunc(&raw, pfn)
	return func(instance vulkan.VkInstance, _ *vulkan.VkAllocationCallbacks) {
		raw(uintptr(instance), nil)
	}
}

func makeEnumeratePhysicalDevices(pfn uintptr) vulkan.PFNvkEnumeratePhysicalDevices {
	var raw func(instance uintptr, count *uint32, devices *uintptr) int32
	purego.RegisterFunc(&raw, pfn)
	return func(instance vulkan.VkInstance, count *uint32, devices []vulkan.VkPhysicalDevice) vulkan.VkResult {
		if devices == nil {
			return vulkan.VkResult(raw(uintptr(instance), count, nil))
		}
		handles := make([]uintptr, len(devices))
		r := raw(uintptr(instance), count, &handles[0])
		for i := range devices {
			devices[i] = vulkan.VkPhysicalDevice(handles[i])
		}
		return vulkan.VkResult(r)
	}
}

func makeGetPhysicalDeviceProperties(pfn uintptr) vulkan.PFNvkGetPhysicalDeviceProperties {
	var raw func(gpu uintptr, props *cPhysicalDeviceProperties)
	purego.RegisterFunc(&raw, pfn)
	return func(gpu vulkan.VkPhysicalDevice, props *vulkan.VkPhysicalDeviceProperties) {
		var c cPhysicalDeviceProperties
		raw(uintptr(gpu), &c)
		props.APIVersion = c.apiVersion
		props.DriverVersion = c.driverVersion
		props.VendorID = c.vendorID
		props.DeviceID = c.deviceID
		props.DeviceType = vulkan.VkPhysicalDeviceType(c.deviceType)
		props.DeviceName = goString(c.deviceName[:])
	}
}

func makeGetPhysicalDeviceQueueFamilyProperties(pfn uintptr) vulkan.PFNvkGetPhysicalDeviceQueueFamilyProperties {
	var raw func(gpu uintptr, count *uint32, props *cQueueFamilyProperties)
	purego.RegisterFunc(&raw, pfn)
	return func(gpu vulkan.VkPhysicalDevice, count *uint32, props []vulkan.VkQueueFamilyProperties) {
		if props == nil {
			raw(uintptr(gpu), count, nil)
			return
		}
		c := make([]cQueueFamilyProperties, len(props))
		raw(uintptr(gpu), count, &c[0])
		for i := range props {
			props[i] = vulkan.VkQueueFamilyProperties{
				QueueFlags:         vulkan.VkQueueFlags(c[i].queueFlags),
				QueueCount:         c[i].queueCount,
				TimestampValidBits: c[i].timestampValidBits,
			}
		}
	}
}

func makeCreateDevice(pfn uintptr) vulkan.PFNvkCreateDevice {
	var raw func(gpu uintptr, info *cDeviceCreateInfo, allocator unsafe.Pointer, out *uintptr) int32
	purego.RegisterFunc(&raw, pfn)
	return func(gpu vulkan.VkPhysicalDevice, info *vulkan.VkDeviceCreateInfo, _ *vulkan.VkAllocationCallbacks, out *vulkan.VkDevice) vulkan.VkResult {
		queues := make([]cDeviceQueueCreateInfo, len(info.QueueCreateInfos))
		priorities := make([][]float32, len(info.QueueCreateInfos))
		for i, qci := range info.QueueCreateInfos {
			priorities[i] = append([]float32(nil), qci.QueuePriorities...)
			queues[i] = cDeviceQueueCreateInfo{
				sType:            cStructureTypeDeviceQueueCreateInfo,
				queueFamilyIndex: qci.QueueFamilyIndex,
				queueCount:       uint32(len(qci.QueuePriorities)),
				queuePriorities:  &priorities[i][0],
			}
		}
		exts, extBack := cStringArray(info.EnabledExtensionNames)
		ci := cDeviceCreateInfo{
			sType:                 cStructureTypeDeviceCreateInfo,
			queueCreateInfoCount:  uint32(len(queues)),
			enabledExtensionCount: uint32(len(info.EnabledExtensionNames)),
			enabledExtensionNames: exts,
		}
		if len(queues) > 0 {
			ci.queueCreateInfos = &queues[0]
		}
		var handle uintptr
		r := raw(uintptr(gpu), &ci, nil, &handle)
		runtime.KeepAlive(queues)
		runtime.KeepAlive(priorities)
		runtime.KeepAlive(extBack)
		*out = vulkan.VkDevice(handle)
		return vulkan.VkResult(r)
	}
}

func makeDestroyDevice(pfn uintptr) vulkan.PFNvkDestroyDevice {
	var raw func(device uintptr, allocator unsafe.Pointer)
	purego.RegisterFunc(&raw, pfn)
	return func(device vulkan.VkDevice, _ *vulkan.VkAllocationCallbacks) {
		raw(uintptr(device), nil)
	}
}

func makeGetDeviceQueue(pfn uintptr) vulkan.PFNvkGetDeviceQueue {
	var raw func(device uintptr, family, index uint32, out *uintptr)
	purego.RegisterFunc(&raw, pfn)
	return func(device vulkan.VkDevice, family, index uint32, queue *vulkan.VkQueue) {
		var handle uintptr
		raw(uintptr(device), family, index, &handle)
		*queue = vulkan.VkQueue(handle)
	}
}
