// Package runstats samples process resource usage during a generation run and
// writes a small summary report. Intended for profiling dense sampling runs.
package runstats

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v4/process"
)

// Sample is one snapshot of process resource usage.
type Sample struct {
	Elapsed    time.Duration
	HeapAlloc  uint64
	RSS        uint64
	CPUPercent float64
	Goroutines int
}

// Report summarizes a collection run.
type Report struct {
	Started time.Time
	Elapsed time.Duration
	Samples []Sample

	PeakHeapAlloc uint64
	PeakRSS       uint64
	PeakCPU       float64
	AvgCPU        float64
}

// Collector samples runtime stats on a fixed interval until stopped.
type Collector struct {
	mu      sync.Mutex
	samples []Sample

	started  time.Time
	interval time.Duration
	proc     *process.Process

	stop chan struct{}
	done chan struct{}
}

// NewCollector prepares a collector sampling every interval.
func NewCollector(interval time.Duration) (*Collector, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("resolving own process: %w", err)
	}
	return &Collector{
		interval: interval,
		proc:     proc,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

// Start begins sampling in the background.
func (c *Collector) Start() {
	c.started = time.Now()
	go c.loop()
}

func (c *Collector) loop() {
	defer close(c.done)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.sample()
	for {
		select {
		case <-c.stop:
			c.sample()
			return
		case <-ticker.C:
			c.sample()
		}
	}
}

func (c *Collector) sample() {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	s := Sample{
		Elapsed:    time.Since(c.started),
		HeapAlloc:  mem.HeapAlloc,
		Goroutines: runtime.NumGoroutine(),
	}
	if info, err := c.proc.MemoryInfo(); err == nil && info != nil {
		s.RSS = info.RSS
	}
	if cpu, err := c.proc.CPUPercent(); err == nil {
		s.CPUPercent = cpu
	}

	c.mu.Lock()
	c.samples = append(c.samples, s)
	c.mu.Unlock()
}

// Stop halts sampling and returns the summarized report.
func (c *Collector) Stop() Report {
	close(c.stop)
	<-c.done

	c.mu.Lock()
	defer c.mu.Unlock()

	return Summarize(c.started, time.Since(c.started), c.samples)
}

// Summarize computes peak and average figures over samples.
func Summarize(started time.Time, elapsed time.Duration, samples []Sample) Report {
	r := Report{Started: started, Elapsed: elapsed, Samples: samples}

	var totalCPU float64
	for _, s := range samples {
		if s.HeapAlloc > r.PeakHeapAlloc {
			r.PeakHeapAlloc = s.HeapAlloc
		}
		if s.RSS > r.PeakRSS {
			r.PeakRSS = s.RSS
		}
		if s.CPUPercent > r.PeakCPU {
			r.PeakCPU = s.CPUPercent
		}
		totalCPU += s.CPUPercent
	}
	if len(samples) > 0 {
		r.AvgCPU = totalCPU / float64(len(samples))
	}
	return r
}

// WriteFile writes the report as a plain-text summary.
func (r Report) WriteFile(name string) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "run started:    %s\n", r.Started.Format(time.RFC3339))
	fmt.Fprintf(&sb, "run elapsed:    %s\n", r.Elapsed)
	fmt.Fprintf(&sb, "samples:        %d\n", len(r.Samples))
	fmt.Fprintf(&sb, "peak heap:      %s\n", humanize.Bytes(r.PeakHeapAlloc))
	fmt.Fprintf(&sb, "peak rss:       %s\n", humanize.Bytes(r.PeakRSS))
	fmt.Fprintf(&sb, "peak cpu:       %.1f%%\n", r.PeakCPU)
	fmt.Fprintf(&sb, "avg cpu:        %.1f%%\n", r.AvgCPU)

	if err := os.WriteFile(name, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("writing stats report: %w", err)
	}
	return nil
}
