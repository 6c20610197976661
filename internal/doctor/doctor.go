// Package doctor implements the `doctor` CLI command (spec §6): a set of
// environment and dependency diagnostics run before a pipeline attempt,
// extending the teacher's CheckChromeEnvironment browser check with CPU,
// memory, and disk-space reporting.
package doctor

import (
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/disk"
	"github.com/shirou/gopsutil/mem"

	"github.com/rkaplan/x987scout/internal/scraper"
)

// Report is the result of one diagnostic check.
type Report struct {
	Name    string
	OK      bool
	Detail  string
}

// Run executes every diagnostic and returns their reports in a fixed
// order: chrome, cpu, memory, disk. outputDir is checked for available
// disk space since every pipeline run writes CSV/JSON artifacts there.
func Run(chromePath, outputDir string) []Report {
	return []Report{
		checkChrome(chromePath),
		checkCPU(),
		checkMemory(),
		checkDisk(outputDir),
	}
}

func checkChrome(configuredPath string) Report {
	scraper.CheckChromeEnvironment(configuredPath)

	path := configuredPath
	if path == "" {
		path = scraper.FindChromePath()
	}
	if path == "" {
		return Report{Name: "chrome", OK: false, Detail: "no Chrome/Chromium binary found in common locations"}
	}
	return Report{Name: "chrome", OK: true, Detail: fmt.Sprintf("found at %s", path)}
}

func checkCPU() Report {
	count, err := cpu.Counts(true)
	if err != nil {
		return Report{Name: "cpu", OK: false, Detail: fmt.Sprintf("could not read CPU count: %v", err)}
	}
	ok := count >= 1
	return Report{Name: "cpu", OK: ok, Detail: fmt.Sprintf("%d logical cores", count)}
}

func checkMemory() Report {
	stat, err := mem.VirtualMemory()
	if err != nil {
		return Report{Name: "memory", OK: false, Detail: fmt.Sprintf("could not read memory stats: %v", err)}
	}
	availableGB := float64(stat.Available) / (1 << 30)
	ok := availableGB >= 0.5
	return Report{Name: "memory", OK: ok, Detail: fmt.Sprintf("%.1f GiB available (%.0f%% used)", availableGB, stat.UsedPercent)}
}

func checkDisk(outputDir string) Report {
	if outputDir == "" {
		outputDir = "."
	}
	usage, err := disk.Usage(outputDir)
	if err != nil {
		return Report{Name: "disk", OK: false, Detail: fmt.Sprintf("could not read disk usage for %s: %v", outputDir, err)}
	}
	freeGB := float64(usage.Free) / (1 << 30)
	ok := freeGB >= 0.1
	return Report{Name: "disk", OK: ok, Detail: fmt.Sprintf("%.1f GiB free at %s (%.0f%% used)", freeGB, outputDir, usage.UsedPercent)}
}

// Summary renders reports as the plain line-per-check format the CLI
// prints for `doctor`.
func Summary(reports []Report) string {
	var b strings.Builder
	for _, r := range reports {
		status := "OK"
		if !r.OK {
			status = "FAIL"
		}
		fmt.Fprintf(&b, "[%-4s] %-8s %s\n", status, r.Name, r.Detail)
	}
	return b.String()
}

// AllOK reports whether every diagnostic passed.
func AllOK(reports []Report) bool {
	for _, r := range reports {
		if !r.OK {
			return false
		}
	}
	return true
}
