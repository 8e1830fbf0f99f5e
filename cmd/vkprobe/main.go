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

// The vkprobe command loads the platform's Vulkan runtime, lists the
// physical devices it exposes and creates a probe device on the best one,
// exercising the same selection path the layer uses in-process.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/lexisother/ThatSkyLoader/core/log"
	"github.com/lexisother/ThatSkyLoader/driver"
	"github.com/lexisother/ThatSkyLoader/layer"
	"github.com/lexisother/ThatSkyLoader/vulkan"
)

var (
	appName = flag.String("app", "vkprobe", "Application name reported to the driver")
	verbose = flag.Bool("v", false, "Show debug output")
)

func main() {
	flag.Parse()
	ctx := log.Background()
	if !*verbose {
		ctx = log.PutFilter(ctx, log.SeverityFilter(log.Info))
	}
	if err := run(ctx); err != nil {
		log.E(ctx, "%v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	lib, err := driver.Open(ctx)
	if err != nil {
		return err
	}
	defer lib.Close()

	instance, err := lib.CreateInstance(&vulkan.VkInstanceCreateInfo{
		ApplicationName: *appName,
		EngineName:      "ThatSkyLoader",
	})
	if err != nil {
		return err
	}
	table := lib.InstanceTable(instance)
	defer func() {
		if table.DestroyInstance != nil {
			table.DestroyInstance(instance, nil)
		}
	}()

	probe, err := layer.Bootstrap(ctx, instance, &table)
	if err != nil {
		return log.Err(ctx, err, "creating probe device")
	}
	log.I(ctx, "probe device ready on queue family %d", probe.QueueFamily)

	destroy, _ := lib.InstanceProcAddr()(instance, "vkDestroyDevice").(vulkan.PFNvkDestroyDevice)
	if destroy != nil {
		destroy(probe.Device, nil)
	}
	return nil
}
