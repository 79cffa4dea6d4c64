package system

import (
	"fmt"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	gopsnet "github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"
)

// Snapshot holds a one-shot view of local host resource usage
type Snapshot struct {
	CPUPercent float64
	MemUsedGB  float64
	MemTotalGB float64
	MemPercent float64
	LoadAvg1   float64
	NumCPU     int
	TakenAt    time.Time
}

// Collect gathers a host snapshot. Individual collectors failing leave
// their fields zero rather than failing the whole snapshot.
func Collect() Snapshot {
	s := Snapshot{
		NumCPU:  runtime.NumCPU(),
		TakenAt: time.Now(),
	}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		s.CPUPercent = percents[0]
	}

	if vmStat, err := mem.VirtualMemory(); err == nil {
		s.MemTotalGB = float64(vmStat.Total) / 1024 / 1024 / 1024
		s.MemUsedGB = float64(vmStat.Used) / 1024 / 1024 / 1024
		s.MemPercent = vmStat.UsedPercent
	}

	if avgStat, err := load.Avg(); err == nil {
		// Load average is unavailable on Windows; the field stays zero
		s.LoadAvg1 = avgStat.Load1
	}

	return s
}

// ServerProcess describes a local process listening on the orchestrator port
type ServerProcess struct {
	PID  int32
	Name string
}

// FindServerProcess looks for a local process listening on port. The
// orchestrator defaults to loopback, so when the panel points at localhost
// this tells the user whether the server is actually up.
func FindServerProcess(port uint32) (*ServerProcess, error) {
	conns, err := gopsnet.Connections("tcp")
	if err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}

	for _, conn := range conns {
		if conn.Status != "LISTEN" || conn.Laddr.Port != port || conn.Pid == 0 {
			continue
		}
		sp := &ServerProcess{PID: conn.Pid}
		if proc, err := process.NewProcess(conn.Pid); err == nil {
			if name, err := proc.Name(); err == nil {
				sp.Name = name
			}
		}
		return sp, nil
	}

	return nil, nil
}
