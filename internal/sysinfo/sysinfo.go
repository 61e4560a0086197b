// Package sysinfo produces host telemetry snapshots for the
// application's diagnostics panel: OS name and version, host name, a
// human-readable memory summary, and the network interface list.
// Probes run concurrently; a failed probe degrades its part of the
// snapshot instead of failing the whole collection.
package sysinfo

import (
	"context"
	"fmt"
	"sync"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
	"go.uber.org/zap"
)

const gbInBytes = 1 << 30

// Snapshot is one host telemetry reading.
type Snapshot struct {
	Name     string    `json:"name"`
	Version  string    `json:"version"`
	Host     string    `json:"host"`
	Memory   string    `json:"memory"`
	Networks []Network `json:"networks"`
}

// Network describes one interface. IDs are 1-based in enumeration
// order.
type Network struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	MAC  string `json:"mac"`
}

// Collector gathers host telemetry through gopsutil.
type Collector struct {
	log *zap.Logger
}

// New creates a Collector. A nil logger is replaced with a no-op one.
func New(log *zap.Logger) *Collector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Collector{log: log}
}

// Collect gathers one snapshot. The host, memory, and network probes
// run concurrently; each failure is logged and leaves its fields at
// their zero values.
func (c *Collector) Collect(ctx context.Context) Snapshot {
	var snap Snapshot
	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		info, err := host.InfoWithContext(ctx)
		if err != nil {
			c.log.Warn("Host probe failed", zap.Error(err))
			return
		}
		snap.Name = info.Platform
		snap.Version = info.PlatformVersion
		snap.Host = info.Hostname
	}()
	go func() {
		defer wg.Done()
		vm, err := mem.VirtualMemoryWithContext(ctx)
		if err != nil {
			c.log.Warn("Memory probe failed", zap.Error(err))
			return
		}
		snap.Memory = formatMemory(vm.Used, vm.Total)
	}()
	go func() {
		defer wg.Done()
		ifaces, err := net.InterfacesWithContext(ctx)
		if err != nil {
			c.log.Warn("Network probe failed", zap.Error(err))
			return
		}
		snap.Networks = interfaceList(ifaces)
	}()
	wg.Wait()

	return snap
}

// formatMemory renders used/total bytes as a GiB summary, e.g.
// "6.42 GB / 16.00 GB".
func formatMemory(used, total uint64) string {
	usedGB := float64(used) / gbInBytes
	totalGB := float64(total) / gbInBytes
	return fmt.Sprintf("%.2f GB / %.2f GB", usedGB, totalGB)
}

// interfaceList maps gopsutil interfaces to Networks, numbering them
// from 1 in enumeration order.
func interfaceList(ifaces net.InterfaceStatList) []Network {
	networks := make([]Network, 0, len(ifaces))
	for i, iface := range ifaces {
		networks = append(networks, Network{
			ID:   i + 1,
			Name: iface.Name,
			MAC:  iface.HardwareAddr,
		})
	}
	return networks
}
