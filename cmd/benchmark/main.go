package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/limaJavier/parsat/pkg/engine"
	"github.com/limaJavier/parsat/pkg/portfolio"
)

const MB float64 = 1024

type BenchmarkResult struct {
	Test      string
	Threads   int
	Status    engine.Status
	Duration  int64
	Memory    float64
	Conflicts uint64
	Decisions uint64
}

func main() {
	directoryPtr := flag.String("dir", "../../test/cnf/", "Directory holding the DIMACS CNF test files")
	threadsPtr := flag.String("threads", "1,2,4,8", "Comma-separated pool sizes to benchmark")
	seedPtr := flag.Int64("seed", 1, "Base random seed used to diversify the engines")
	timeoutPtr := flag.Int64("timeout", 60, "Per-solve budget in seconds")
	flag.Parse()

	tests := getTests(*directoryPtr)
	threadCounts := parseThreadCounts(*threadsPtr)
	results := make([]BenchmarkResult, 0, len(tests)*len(threadCounts))

	for _, test := range tests {
		for _, threads := range threadCounts {
			fmt.Printf("Benchmarking test \"%v\" with %v threads\n", test, threads)

			result := measure(test, threads, *seedPtr, *timeoutPtr)
			results = append(results, result)
		}
	}

	toCsv(results)
}

func getTests(directory string) []string {
	testFiles, err := os.ReadDir(directory)
	if err != nil {
		log.Fatalf("cannot read directory: %v", err)
	}

	tests := lo.FilterMap(testFiles, func(file os.DirEntry, _ int) (string, bool) {
		return path.Join(directory, file.Name()), strings.HasSuffix(file.Name(), ".cnf")
	})
	if len(tests) == 0 {
		log.Fatalf("no .cnf files found in %v", directory)
	}
	return tests
}

func measure(test string, threads int, seed, timeout int64) BenchmarkResult {
	solver := portfolio.New()
	solver.Configure(portfolio.Config{
		NumThreads: threads,
		RandomSeed: seed,
	})
	defer solver.Release()

	if err := solver.LoadFormula(test); err != nil {
		log.Fatalf("cannot load formula %v: %v", test, err)
	}

	timer := time.AfterFunc(time.Duration(timeout)*time.Second, solver.Interrupt)
	defer timer.Stop()

	start := time.Now()
	status, err := solver.Solve()
	if err != nil {
		log.Fatalf("an error occurred during solving %v: %v", test, err)
	}
	duration := time.Since(start).Milliseconds()

	stats := solver.GetStatistics()
	return BenchmarkResult{
		Test:      test,
		Threads:   threads,
		Status:    status,
		Duration:  duration,
		Memory:    stats.PeakMemoryKB / MB,
		Conflicts: stats.Conflicts,
		Decisions: stats.Decisions,
	}
}

func parseThreadCounts(spec string) []int {
	counts := lo.Map(strings.Split(spec, ","), func(part string, _ int) int {
		count, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || count < 1 {
			log.Fatalf("invalid thread count: %v", part)
		}
		return count
	})
	return counts
}

func toCsv(results []BenchmarkResult) {
	file, err := os.Create("benchmark_results.csv")
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"Test", "Threads", "Status", "Duration(ms)", "Memory(MB)", "Conflicts", "Decisions"}
	if err := writer.Write(header); err != nil {
		log.Panicf("cannot write CSV header: %v", err)
	}

	for _, result := range results {
		record := []string{
			result.Test,
			fmt.Sprintf("%d", result.Threads),
			result.Status.String(),
			fmt.Sprintf("%d", result.Duration),
			fmt.Sprintf("%.1f", result.Memory),
			fmt.Sprintf("%d", result.Conflicts),
			fmt.Sprintf("%d", result.Decisions),
		}
		if err := writer.Write(record); err != nil {
			log.Panicf("cannot write CSV record: %v", err)
		}
	}
}
