package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"

	"github.com/limaJavier/parsat/pkg/engine"
	"github.com/limaJavier/parsat/pkg/portfolio"
)

var (
	configPath   = "config.json"
	validEngines = []string{"gini", "gophersat", "kissat"}
	factories    = map[string]func() engine.Factory{
		"gini": func() engine.Factory {
			return func(ordinal int) (engine.Engine, error) {
				return engine.NewGiniEngine(), nil
			}
		},
		"gophersat": func() engine.Factory {
			return func(ordinal int) (engine.Engine, error) {
				return engine.NewGophersatEngine(), nil
			}
		},
		"kissat": func() engine.Factory {
			kissatPath := getExecutablePath("kissatPath")
			return func(ordinal int) (engine.Engine, error) {
				return engine.NewKissatEngine(kissatPath), nil
			}
		},
	}
)

func main() {
	// Define arguments
	filePathPtr := flag.String("file", "", "Path to the DIMACS CNF input file")
	enginePtr := flag.String("engine", "gini", "Engine to race. Allowed values are: \"gini\", \"gophersat\", \"kissat\", where \"gini\" is the default")
	threadsPtr := flag.Int("threads", 4, "Number of concurrent engines, where 4 is the default")
	seedPtr := flag.Int64("seed", 0, "Base random seed used to diversify the engines; 0 disables seeding")
	timeoutPtr := flag.Int64("timeout", 0, "Solve budget in seconds; 0 disables the budget")
	verbosityPtr := flag.Int("verbosity", 0, "Diagnostic logging level, where 0 (silent) is the default")
	flag.Parse()
	engineStr := strings.ToLower(*enginePtr)
	filePath := *filePathPtr

	// Validate arguments
	if !slices.Contains(validEngines, engineStr) {
		log.Fatalf("%v is not a valid engine", engineStr)
	} else if filePath == "" {
		log.Fatal("an input file must be specified")
	} else if *threadsPtr < 1 {
		log.Fatalf("threads must be at least 1: %v", *threadsPtr)
	}

	if engineStr == "kissat" {
		setConfigPath()
	}

	// Initialize the portfolio
	solver := portfolio.New()
	solver.Configure(portfolio.Config{
		NumThreads: *threadsPtr,
		Timeout:    time.Duration(*timeoutPtr) * time.Second,
		RandomSeed: *seedPtr,
		Verbosity:  *verbosityPtr,
		NewEngine:  factories[engineStr](),
	})
	defer solver.Release()

	if err := solver.LoadFormula(filePath); err != nil {
		log.Fatalf("cannot load formula: %v", err)
	}

	if *timeoutPtr > 0 {
		timer := time.AfterFunc(time.Duration(*timeoutPtr)*time.Second, solver.Interrupt)
		defer timer.Stop()
	}

	start := time.Now()
	status, err := solver.Solve()
	if err != nil {
		log.Fatalf("an error occurred during solving: %v", err)
	}
	elapsed := time.Since(start)

	printResult(solver, status, elapsed)

	// Exit-code of 10 stands for satisfiable and exit-code 20 stands for unsatisfiable
	switch status {
	case engine.Sat:
		os.Exit(10)
	case engine.Unsat:
		os.Exit(20)
	default:
		os.Exit(0)
	}
}

func printResult(solver *portfolio.Solver, status engine.Status, elapsed time.Duration) {
	stats := solver.GetStatistics()
	fmt.Printf("c duration: %v\n", elapsed)
	fmt.Printf("c propagations: %v, decisions: %v, conflicts: %v, restarts: %v\n",
		stats.Propagations, stats.Decisions, stats.Conflicts, stats.Restarts)

	switch status {
	case engine.Sat:
		fmt.Println("s SATISFIABLE")
		printModel(solver.GetModel())
	case engine.Unsat:
		fmt.Println("s UNSATISFIABLE")
	default:
		fmt.Println("s UNKNOWN")
	}
}

// printModel writes the witness as "v" lines, ten literals per line,
// terminated by a 0 literal.
func printModel(model []int) {
	for _, chunk := range lo.Chunk(model, 10) {
		literals := lo.Map(chunk, func(literal int, _ int) string {
			return fmt.Sprint(literal)
		})
		fmt.Printf("v %v\n", strings.Join(literals, " "))
	}
	fmt.Println("v 0")
}

func setConfigPath() {
	execPath, err := os.Executable()
	if err != nil {
		log.Fatalf("cannot determine executable path: %v", err)
	}
	execPath = path.Dir(execPath)

	// Verify config.json exists
	files, err := os.ReadDir(execPath)
	if err != nil {
		log.Fatalf("cannot read executable's directory: %v", err)
	}
	fileNames := lo.Map(files, func(file os.DirEntry, _ int) string { return file.Name() })

	if !slices.Contains(fileNames, "config.json") {
		log.Fatalf("config.json file was not found: %v", fileNames)
	}

	configPath = execPath + "/config.json"
}

func getExecutablePath(solver string) string {
	bytes, _ := os.ReadFile(configPath)
	var inputJson map[string]any
	err := json.Unmarshal(bytes, &inputJson)
	if err != nil {
		log.Fatalf("cannot read config.json file: %v", err)
	}

	var config map[string]string
	mapstructure.Decode(inputJson, &config)

	path, ok := config[solver]
	if !ok {
		log.Panicf("solver \"%v\" is not present in config", solver)
	}
	return path
}
