// Command marsrun loads two or more warrior files and runs a single MARS
// match, printing the outcome. It is deliberately thin: no batch
// tournament runner, no win-count aggregation across rounds (spec.md §1
// Non-goals) — those remain external-collaborator concerns.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lookbusy1344/mars-emulator/mars"
	"github.com/lookbusy1344/mars-emulator/redcode"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to a TOML engine configuration file")
		seed       = flag.Int64("seed", 0, "Seed for Random separation placement (0 = time-based)")
		verbose    = flag.Bool("verbose", false, "Print each step's PC and destination")
	)
	flag.Parse()

	files := flag.Args()
	if len(files) < 2 {
		fmt.Fprintln(os.Stderr, "usage: marsrun [-config file.toml] [-seed n] warrior1.red warrior2.red [...]")
		os.Exit(2)
	}

	cfg := mars.NewEngineConfig()
	if *configPath != "" {
		loaded, err := mars.LoadConfigFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	warriors := make([]*redcode.Warrior, 0, len(files))
	for _, path := range files {
		source, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "reading %s: %v\n", path, err)
			os.Exit(1)
		}
		w, err := redcode.Parse(string(source))
		if err != nil {
			fmt.Fprintf(os.Stderr, "parsing %s: %v\n", path, err)
			os.Exit(1)
		}
		warriors = append(warriors, w)
	}

	builder := mars.NewCoreBuilder(cfg)
	if *seed != 0 {
		builder = builder.WithSeed(*seed)
	}

	engine, err := builder.Build(warriors)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading core: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		engine.SetLogger(stdoutLogger{})
	}

	outcome := engine.Run()
	fmt.Printf("%s after %d cycles\n", outcome.String(), engine.Cycle())
}

// stdoutLogger is a trivial mars.Logger that prints each Continue event,
// useful for -verbose runs without pulling in the visualizer package.
type stdoutLogger struct{}

func (stdoutLogger) Log(event mars.GameEvent) {
	switch event.Kind {
	case mars.EventContinue:
		fmt.Printf("%s: pc=%d dest=%d\n", event.Step.WarriorName, event.Step.PC, event.Step.DestPC)
	case mars.EventWarriorKilled:
		fmt.Printf("%s died\n", event.Warrior)
	case mars.EventGameOver:
		fmt.Printf("game over: %s\n", event.Outcome.String())
	}
}
