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
	"fmt"
	"sync"

	"github.com/lexisother/ThatSkyLoader/vulkan"
)

// InstanceState is everything the layer remembers about one instance:
// the handle itself and the next link's instance-level entry points.
type InstanceState struct {
	Instance vulkan.VkInstance
	Table    vulkan.VkLayerInstanceDispatchTable
}

// DeviceState ties a device to its owning instance, its queues and the
// per-device frame resources used for overlay injection.
type DeviceState struct {
	Instance       *InstanceState // nil if the physical device was never seen at instance scope
	PhysicalDevice vulkan.VkPhysicalDevice
	Device         vulkan.VkDevice
	Table          vulkan.VkLayerDispatchTable
	SetLoaderData  vulkan.PFNvkSetDeviceLoaderData
	Queues         []*QueueState
	Primary        *QueueState // first queue the application created; injection fallback

	frames *frameResources
}

// QueueState records where a queue came from.
type QueueState struct {
	Device      *DeviceState
	Queue       vulkan.VkQueue
	FamilyIndex uint32
	Index       uint32
}

// Registry maps dispatchable handles back to the state captured when they
// were created. Instances and devices are keyed by the dispatch key (the
// first machine word of the handle), which is what makes lookups work for
// any handle sharing the object's dispatch table: a physical device keys to
// its instance, a queue keys to its device once the loader data callback
// has run.
//
// A lookup for an instance or device that was never registered is a protocol
// violation, not a recoverable condition, and panics. Queue lookups return
// ok=false instead: presents can legitimately race device teardown.
type Registry struct {
	mu        sync.Mutex
	instances map[uintptr]*InstanceState
	devices   map[uintptr]*DeviceState
	queues    map[vulkan.VkQueue]*QueueState
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		instances: map[uintptr]*InstanceState{},
		devices:   map[uintptr]*DeviceState{},
		queues:    map[vulkan.VkQueue]*QueueState{},
	}
}

// RegisterInstance records s under its dispatch key.
func (r *Registry) RegisterInstance(s *InstanceState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.instances[s.Instance.Key()] = s
}

// Instance returns the state registered under key.
func (r *Registry) Instance(key uintptr) *InstanceState {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.instances[key]
	if !ok {
		panic(fmt.Errorf("no instance registered for dispatch key %#x", key))
	}
	return s
}

// InstanceOK is Instance without the unknown-key panic, for callers that can
// degrade gracefully.
func (r *Registry) InstanceOK(key uintptr) (*InstanceState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.instances[key]
	return s, ok
}

// UnregisterInstance removes the state registered under key.
func (r *Registry) UnregisterInstance(key uintptr) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.instances, key)
}

// RegisterDevice records s under its dispatch key, along with all of its
// queues.
func (r *Registry) RegisterDevice(s *DeviceState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.devices[s.Device.Key()] = s
	for _, q := range s.Queues {
		r.queues[q.Queue] = q
	}
}

// Device returns the state registered under key.
func (r *Registry) Device(key uintptr) *DeviceState {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.devices[key]
	if !ok {
		panic(fmt.Errorf("no device registered for dispatch key %#x", key))
	}
	return s
}

// DeviceOK is Device without the unknown-key panic.
func (r *Registry) DeviceOK(key uintptr) (*DeviceState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.devices[key]
	return s, ok
}

// UnregisterDevice removes the state registered under key and every queue
// belonging to it.
func (r *Registry) UnregisterDevice(key uintptr) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.devices[key]
	if !ok {
		return
	}
	for _, q := range s.Queues {
		delete(r.queues, q.Queue)
	}
	delete(r.devices, key)
}

// Queue returns the state for a queue handle, if it is known.
func (r *Registry) Queue(q vulkan.VkQueue) (*QueueState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.queues[q]
	return s, ok
}
