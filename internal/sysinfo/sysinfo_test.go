package sysinfo

import (
	"context"
	"strings"
	"testing"

	"github.com/shirou/gopsutil/v3/net"
)

func TestFormatMemory(t *testing.T) {
	tests := []struct {
		name  string
		used  uint64
		total uint64
		want  string
	}{
		{"whole gigabytes", 2 << 30, 8 << 30, "2.00 GB / 8.00 GB"},
		{"fractional", 1<<30 + 1<<29, 4 << 30, "1.50 GB / 4.00 GB"},
		{"zero", 0, 0, "0.00 GB / 0.00 GB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatMemory(tt.used, tt.total); got != tt.want {
				t.Errorf("formatMemory(%d, %d) = %q, want %q", tt.used, tt.total, got, tt.want)
			}
		})
	}
}

func TestInterfaceList(t *testing.T) {
	ifaces := net.InterfaceStatList{
		{Name: "lo", HardwareAddr: ""},
		{Name: "eth0", HardwareAddr: "02:42:ac:11:00:02"},
		{Name: "wlan0", HardwareAddr: "a4:83:e7:12:34:56"},
	}

	networks := interfaceList(ifaces)
	if len(networks) != 3 {
		t.Fatalf("len = %d, want 3", len(networks))
	}
	for i, network := range networks {
		if network.ID != i+1 {
			t.Errorf("networks[%d].ID = %d, want %d", i, network.ID, i+1)
		}
	}
	if networks[1].Name != "eth0" || networks[1].MAC != "02:42:ac:11:00:02" {
		t.Errorf("networks[1] = %+v", networks[1])
	}
}

func TestInterfaceList_Empty(t *testing.T) {
	networks := interfaceList(nil)
	if len(networks) != 0 {
		t.Errorf("len = %d, want 0", len(networks))
	}
}

func TestCollect_LiveSnapshot(t *testing.T) {
	c := New(nil)
	snap := c.Collect(context.Background())

	if snap.Host == "" {
		t.Error("host name is empty")
	}
	if !strings.Contains(snap.Memory, " GB / ") {
		t.Errorf("memory summary = %q, want GiB summary", snap.Memory)
	}
	for i, network := range snap.Networks {
		if network.ID != i+1 {
			t.Errorf("networks[%d].ID = %d, want %d", i, network.ID, i+1)
		}
		if network.Name == "" {
			t.Errorf("networks[%d] has empty name", i)
		}
	}
}
