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
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/lexisother/ThatSkyLoader/core/assert"
	"github.com/lexisother/ThatSkyLoader/core/log"
	"github.com/lexisother/ThatSkyLoader/layer"
	"github.com/lexisother/ThatSkyLoader/vulkan"
)

// quietCtx returns a context that swallows log output, for tests that
// deliberately drive error paths.
func quietCtx() context.Context {
	return log.PutHandler(context.Background(), log.NewHandler(func(*log.Message) {}, nil))
}

func createInstance(ctx context.Context, l *layer.Layer, d *fakeDriver) vulkan.VkInstance {
	var instance vulkan.VkInstance
	if r := l.CreateInstance(d.instanceCreateInfo(), nil, &instance); r != vulkan.VkResult_VK_SUCCESS {
		panic(fmt.Errorf("fake instance creation failed: %v", r))
	}
	return instance
}

func createDevice(ctx context.Context, l *layer.Layer, d *fakeDriver, instance vulkan.VkInstance, queues ...vulkan.VkDeviceQueueCreateInfo) vulkan.VkDevice {
	if len(queues) == 0 {
		queues = []vulkan.VkDeviceQueueCreateInfo{{QueueFamilyIndex: 0, QueuePriorities: []float32{1}}}
	}
	gpu := d.gpus[instance][0]
	var device vulkan.VkDevice
	if r := l.CreateDevice(gpu, d.deviceCreateInfo(true, queues...), nil, &device); r != vulkan.VkResult_VK_SUCCESS {
		panic(fmt.Errorf("fake device creation failed: %v", r))
	}
	return device
}

func TestInstanceLifecycle(t *testing.T) {
	ctx := log.Testing(t)
	d := newFakeDriver()
	l := layer.New(ctx, nil)

	instance := createInstance(ctx, l, d)
	_, tracked := l.Registry().InstanceOK(instance.Key())
	assert.For(ctx, "tracked after create").ThatBoolean(tracked).IsTrue()
	assert.For(ctx, "driver instances").ThatInteger(d.instances).Equals(1)

	l.DestroyInstance(instance, nil)
	_, tracked = l.Registry().InstanceOK(instance.Key())
	assert.For(ctx, "tracked after destroy").ThatBoolean(tracked).IsFalse()
	assert.For(ctx, "destruction forwarded").ThatInteger(d.instancesClosed).Equals(1)
}

func TestCreateInstanceWithoutChain(t *testing.T) {
	ctx := quietCtx()
	d := newFakeDriver()
	l := layer.New(ctx, nil)

	var instance vulkan.VkInstance
	r := l.CreateInstance(&vulkan.VkInstanceCreateInfo{}, nil, &instance)
	assert.To(t).For("result").That(r).Equals(vulkan.VkResult_VK_ERROR_INITIALIZATION_FAILED)
	assert.To(t).For("driver untouched").ThatInteger(d.instances).Equals(0)
}

func TestCreateDeviceWithoutLoaderData(t *testing.T) {
	ctx := quietCtx()
	d := newFakeDriver()
	l := layer.New(ctx, nil)
	instance := createInstance(ctx, l, d)

	gpu := d.gpus[instance][0]
	info := d.deviceCreateInfo(false, vulkan.VkDeviceQueueCreateInfo{QueuePriorities: []float32{1}})
	var device vulkan.VkDevice
	r := l.CreateDevice(gpu, info, nil, &device)
	assert.To(t).For("result").That(r).Equals(vulkan.VkResult_VK_ERROR_INITIALIZATION_FAILED)
	assert.To(t).For("driver untouched").ThatInteger(d.devices).Equals(0)
}

func TestDeviceQueueMapping(t *testing.T) {
	ctx := log.Testing(t)
	d := newFakeDriver()
	d.families = []fakeFamily{
		{flags: vulkan.VkQueueFlagBits_VK_QUEUE_GRAPHICS_BIT, queues: 2},
		{flags: vulkan.VkQueueFlagBits_VK_QUEUE_TRANSFER_BIT, queues: 1},
	}
	l := layer.New(ctx, nil)
	instance := createInstance(ctx, l, d)

	device := createDevice(ctx, l, d, instance,
		vulkan.VkDeviceQueueCreateInfo{QueueFamilyIndex: 0, QueuePriorities: []float32{1, 0.5}},
		vulkan.VkDeviceQueueCreateInfo{QueueFamilyIndex: 1, QueuePriorities: []float32{1}},
	)

	// Every fetched queue went through the loader data callback.
	assert.For(ctx, "loader data calls").ThatInteger(d.loaderDataCalls).Equals(3)

	dev := l.Registry().Device(device.Key())
	assert.For(ctx, "tracked queues").ThatInteger(len(dev.Queues)).Equals(3)
	assert.For(ctx, "primary queue").That(dev.Primary).Equals(dev.Queues[0])
	for i, qs := range dev.Queues {
		_, known := l.Registry().Queue(qs.Queue)
		assert.For(ctx, "queue %d registered", i).ThatBoolean(known).IsTrue()
		assert.For(ctx, "queue %d keyed to device", i).That(qs.Queue.Key()).Equals(device.Key())
	}
}

func TestDeviceLifecycle(t *testing.T) {
	ctx := log.Testing(t)
	d := newFakeDriver()
	l := layer.New(ctx, nil)
	instance := createInstance(ctx, l, d)
	device := createDevice(ctx, l, d, instance)

	dev := l.Registry().Device(device.Key())
	queue := dev.Queues[0].Queue

	l.DestroyDevice(device, nil)
	_, tracked := l.Registry().DeviceOK(device.Key())
	assert.For(ctx, "device dropped").ThatBoolean(tracked).IsFalse()
	_, known := l.Registry().Queue(queue)
	assert.For(ctx, "queue dropped").ThatBoolean(known).IsFalse()
	assert.For(ctx, "destruction forwarded").ThatInteger(d.devicesClosed).Equals(1)
}

func TestRegistryUnknownLookupPanics(t *testing.T) {
	r := layer.NewRegistry()
	defer func() {
		if recover() == nil {
			t.Error("lookup of an unregistered device did not panic")
		}
	}()
	r.Device(0xbad)
}

func TestRegistryConcurrency(t *testing.T) {
	d := newFakeDriver()
	reg := layer.NewRegistry()

	const n = 16
	states := make([]*layer.InstanceState, n)
	for i := range states {
		states[i] = &layer.InstanceState{Instance: vulkan.VkInstance(d.newDispatchable(0))}
	}

	// Registration and lookup racing from many goroutines.
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			reg.RegisterInstance(states[i])
			if _, ok := reg.InstanceOK(states[i].Instance.Key()); !ok {
				t.Errorf("instance %d not visible after registration", i)
			}
		}(i)
	}
	wg.Wait()
	for i := range states {
		if _, ok := reg.InstanceOK(states[i].Instance.Key()); !ok {
			t.Errorf("instance %d lost", i)
		}
	}
}
