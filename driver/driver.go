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

// Package driver loads the platform's Vulkan runtime and bridges its raw
// function pointers into the typed functions the dispatch tables hold.
//
// Only the entry points the standalone probe path needs are bridged: when
// the layer runs inside a loader chain the next link hands us Go-callable
// functions directly and none of this marshalling is involved.
package driver

import (
	"context"

	"github.com/ebitengine/purego"
	"github.com/pkg/errors"

	"github.com/lexisother/ThatSkyLoader/core/log"
	"github.com/lexisother/ThatSkyLoader/vulkan"
)

// Library is a loaded Vulkan runtime.
type Library struct {
	name   string
	handle uintptr
	gipa   func(instance uintptr, name string) uintptr
}

// Open loads the platform's Vulkan runtime and resolves its
// vkGetInstanceProcAddr.
func Open(ctx context.Context) (*Library, error) {
	name, handle, sym, err := openLibrary()
	if err != nil {
		return nil, errors.Wrap(err, "loading Vulkan runtime")
	}
	l := &Library{name: name, handle: handle}
	purego.RegisterFunc(&l.gipa, sym)
	log.I(ctx, "loaded Vulkan runtime %s", name)
	return l, nil
}

// Name returns the file name the runtime was loaded from.
func (l *Library) Name() string { return l.name }

// Close unloads the runtime. No Vulkan handle obtained through the library
// may be used afterwards.
func (l *Library) Close() error {
	if l.handle == 0 {
		return nil
	}
	err := closeLibrary(l.handle)
	l.handle = 0
	return err
}

// ProcAddr resolves a raw function pointer through the runtime's
// vkGetInstanceProcAddr.
func (l *Library) ProcAddr(instance vulkan.VkInstance, name string) uintptr {
	return l.gipa(uintptr(instance), name)
}

// InstanceProcAddr returns a typed resolver over the runtime, suitable as
// the bottom link of a dispatch chain. Names outside the bridged set
// resolve to nil.
func (l *Library) InstanceProcAddr() vulkan.PFNvkGetInstanceProcAddr {
	var self vulkan.PFNvkGetInstanceProcAddr
	self = func(instance vulkan.VkInstance, name string) vulkan.PFNvkVoidFunction {
		if name == "vkGetInstanceProcAddr" {
			return self
		}
		pfn := l.ProcAddr(instance, name)
		if pfn == 0 {
			return nil
		}
		switch name {
		case "vkCreateInstance":
			return makeCreateInstance(pfn)
		case "vkDestroyInstance":
			return makeDestroyInstance(pfn)
		case "vkEnumeratePhysicalDevices":
			return makeEnumeratePhysicalDevices(pfn)
		case "vkGetPhysicalDeviceProperties":
			return makeGetPhysicalDeviceProperties(pfn)
		case "vkGetPhysicalDeviceQueueFamilyProperties":
			return makeGetPhysicalDeviceQueueFamilyProperties(pfn)
		case "vkCreateDevice":
			return makeCreateDevice(pfn)
		case "vkDestroyDevice":
			return makeDestroyDevice(pfn)
		case "vkGetDeviceQueue":
			return makeGetDeviceQueue(pfn)
		}
		return nil
	}
	return self
}

// InstanceTable builds the instance dispatch table for an instance created
// through this runtime.
func (l *Library) InstanceTable(instance vulkan.VkInstance) vulkan.VkLayerInstanceDispatchTable {
	gpa := l.InstanceProcAddr()
	t := vulkan.VkLayerInstanceDispatchTable{GetInstanceProcAddr: gpa}
	t.DestroyInstance, _ = gpa(instance, "vkDestroyInstance").(vulkan.PFNvkDestroyInstance)
	t.EnumeratePhysicalDevices, _ = gpa(instance, "vkEnumeratePhysicalDevices").(vulkan.PFNvkEnumeratePhysicalDevices)
	t.GetPhysicalDeviceProperties, _ = gpa(instance, "vkGetPhysicalDeviceProperties").(vulkan.PFNvkGetPhysicalDeviceProperties)
	t.GetPhysicalDeviceQueueFamilyProperties, _ = gpa(instance, "vkGetPhysicalDeviceQueueFamilyProperties").(vulkan.PFNvkGetPhysicalDeviceQueueFamilyProperties)
	t.CreateDevice, _ = gpa(instance, "vkCreateDevice").(vulkan.PFNvkCreateDevice)
	return t
}

// CreateInstance creates an instance through the runtime.
func (l *Library) CreateInstance(info *vulkan.VkInstanceCreateInfo) (vulkan.VkInstance, error) {
	create, _ := l.InstanceProcAddr()(0, "vkCreateInstance").(vulkan.PFNvkCreateInstance)
	if create == nil {
		return 0, errors.New("runtime does not export vkCreateInstance")
	}
	var instance vulkan.VkInstance
	if r := create(info, nil, &instance); r != vulkan.VkResult_VK_SUCCESS {
		return 0, errors.Errorf("vkCreateInstance: %v", r)
	}
	return instance, nil
}
