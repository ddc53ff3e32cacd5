package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// LogStats summarizes one day of portal logs
type LogStats struct {
	TotalErrors      int
	PoolJoins        int
	Captures         int
	Declines         int
	ReconcileEvents  int
	EmailFailures    int
	AdminLogins      int
	GroupSubmissions int
	ErrorPatterns    map[string]int
}

func main() {
	// Get today's date for log file names
	today := time.Now().Format("2006-01-02")
	logDir := "./logs"

	stats := &LogStats{
		ErrorPatterns: make(map[string]int),
	}

	analyzeErrorLogs(filepath.Join(logDir, fmt.Sprintf("error-%s.log", today)), stats)
	analyzeInfoLogs(filepath.Join(logDir, fmt.Sprintf("info-%s.log", today)), stats)

	printReport(stats)
}

func analyzeErrorLogs(logFile string, stats *LogStats) {
	file, err := os.Open(logFile)
	if err != nil {
		fmt.Printf("Error opening log file %s: %v\n", logFile, err)
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		stats.TotalErrors++

		switch {
		case strings.Contains(line, "RECONCILE:"):
			stats.ReconcileEvents++
		case strings.Contains(line, "Capture failed"):
			stats.Declines++
		case strings.Contains(line, "Failed to send"):
			stats.EmailFailures++
		}

		// Bucket remaining errors by their leading phrase
		if idx := strings.Index(line, "ERROR: "); idx >= 0 {
			msg := line[idx+len("ERROR: "):]
			if colon := strings.Index(msg, ":"); colon > 0 {
				stats.ErrorPatterns[msg[:colon]]++
			}
		}
	}
}

func analyzeInfoLogs(logFile string, stats *LogStats) {
	file, err := os.Open(logFile)
	if err != nil {
		fmt.Printf("Error opening log file %s: %v\n", logFile, err)
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.Contains(line, "Recorded entry"):
			stats.PoolJoins++
		case strings.Contains(line, "Captured") && strings.Contains(line, "cents"):
			stats.Captures++
		case strings.Contains(line, "Admin login successful"):
			stats.AdminLogins++
		case strings.Contains(line, "submitted for review"):
			stats.GroupSubmissions++
		}
	}
}

func printReport(stats *LogStats) {
	fmt.Println("=== Daily Log Report ===")
	fmt.Printf("Pool entries recorded:   %d\n", stats.PoolJoins)
	fmt.Printf("Card captures:           %d\n", stats.Captures)
	fmt.Printf("Card declines:           %d\n", stats.Declines)
	fmt.Printf("Directory submissions:   %d\n", stats.GroupSubmissions)
	fmt.Printf("Admin logins:            %d\n", stats.AdminLogins)
	fmt.Printf("Email failures:          %d\n", stats.EmailFailures)
	fmt.Printf("Total errors:            %d\n", stats.TotalErrors)

	if stats.ReconcileEvents > 0 {
		fmt.Printf("\n*** %d RECONCILE event(s): payments captured without a matching entry. Check the gateway dashboard. ***\n", stats.ReconcileEvents)
	}

	if len(stats.ErrorPatterns) > 0 {
		fmt.Println("\nTop error patterns:")
		type pattern struct {
			msg   string
			count int
		}
		patterns := make([]pattern, 0, len(stats.ErrorPatterns))
		for msg, count := range stats.ErrorPatterns {
			patterns = append(patterns, pattern{msg, count})
		}
		sort.Slice(patterns, func(i, j int) bool { return patterns[i].count > patterns[j].count })
		for i, p := range patterns {
			if i >= 10 {
				break
			}
			fmt.Printf("  %4d  %s\n", p.count, p.msg)
		}
	}
}
