package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
	"github.com/mattn/go-isatty"
	"github.com/rhartert/yacp/internal/dimacs"
)

var flagCPUProfile = flag.Bool(
	"cpuprof",
	false,
	"save pprof CPU profile in cpuprof",
)

var flagMemProfile = flag.Bool(
	"memprof",
	false,
	"save pprof memory profile in memprof",
)

var flagGzip = flag.Bool(
	"gzip",
	false,
	"decompress the instance file with gzip before parsing",
)

var flagLenient = flag.Bool(
	"lenient",
	false,
	"treat malformed clause content as the end of the clause instead of an error",
)

var flagMaxClauses = flag.Int(
	"max_clauses",
	-1,
	"maximum number of clauses allowed in the instance (-1 = no maximum)",
)

var flagMaxLiterals = flag.Int(
	"max_literals",
	-1,
	"maximum number of literals allowed in the instance (-1 = no maximum)",
)

var flagCheck = flag.Bool(
	"check",
	false,
	"cross-check the result against the reference line-oriented reader",
)

var flagTop = flag.Int(
	"top",
	5,
	"number of most frequent variables to report",
)

var flagFormat = flag.String(
	"format",
	"text",
	"output format of the summary (text or yaml)",
)

func parseConfig() (*config, error) {
	flag.Parse()

	if flag.NArg() == 0 || flag.Arg(0) == "" {
		return nil, fmt.Errorf("missing instance file")
	}
	if *flagFormat != "text" && *flagFormat != "yaml" {
		return nil, fmt.Errorf("unknown output format %q", *flagFormat)
	}
	return &config{
		instanceFile: flag.Arg(0),
		gzipped:      *flagGzip,
		lenient:      *flagLenient,
		maxClauses:   *flagMaxClauses,
		maxLiterals:  *flagMaxLiterals,
		check:        *flagCheck,
		top:          *flagTop,
		format:       *flagFormat,
		memProfile:   *flagMemProfile,
		cpuProfile:   *flagCPUProfile,
	}, nil
}

type config struct {
	instanceFile string
	gzipped      bool
	lenient      bool
	maxClauses   int
	maxLiterals  int
	check        bool
	top          int
	format       string
	memProfile   bool
	cpuProfile   bool
}

func parserOptions(cfg *config) dimacs.Options {
	options := dimacs.DefaultOptions
	options.Lenient = cfg.lenient
	if cfg.maxClauses >= 0 {
		options.MaxClauses = cfg.maxClauses
	}
	if cfg.maxLiterals >= 0 {
		options.MaxLiterals = cfg.maxLiterals
	}
	return options
}

// crossCheck parses the instance with the reference reader and verifies that
// both readers agree on the problem.
func crossCheck(src []byte, instance *dimacs.Problem) error {
	ref, err := dimacs.ParseReference(bytes.NewReader(src))
	if err != nil {
		return fmt.Errorf("reference reader: %w", err)
	}
	if ref.Variables != instance.Variables {
		return fmt.Errorf("variables mismatch: got %d, reference %d", instance.Variables, ref.Variables)
	}
	if diff := cmp.Diff(ref.Clauses, instance.Clauses); diff != "" {
		return fmt.Errorf("clauses mismatch (-reference, +got):\n%s", diff)
	}
	return nil
}

func run(cfg *config, w io.Writer) error {
	src, err := dimacs.Load(cfg.instanceFile, cfg.gzipped)
	if err != nil {
		return err
	}

	t := time.Now()
	instance, err := dimacs.Parse(src, parserOptions(cfg))
	if err != nil {
		return fmt.Errorf("could not parse instance: %w", err)
	}
	elapsed := time.Since(t)

	if cfg.check {
		if err := crossCheck(src, instance); err != nil {
			return fmt.Errorf("cross-check failed: %w", err)
		}
	}

	stats := dimacs.ComputeStats(instance, cfg.top)
	if cfg.format == "yaml" {
		return writeYAML(w, stats)
	}
	writeText(w, stats, elapsed, useColors(w))
	return nil
}

func main() {
	cfg, err := parseConfig()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.cpuProfile {
		f, err := os.Create("cpuprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	if err := run(cfg, os.Stdout); err != nil {
		log.Fatal(err)
	}

	if cfg.memProfile {
		f, err := os.Create("memprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
		return
	}
}

// useColors returns true if w is a terminal.
func useColors(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func writeYAML(w io.Writer, stats dimacs.Stats) error {
	b, err := yaml.Marshal(stats)
	if err != nil {
		return fmt.Errorf("could not encode summary: %w", err)
	}
	_, err = w.Write(b)
	return err
}

func writeText(w io.Writer, stats dimacs.Stats, elapsed time.Duration, colors bool) {
	ok := fmt.Sprint
	key := fmt.Sprint
	if colors {
		ok = color.New(color.FgGreen, color.Bold).Sprint
		key = color.New(color.FgCyan).Sprint
	}
	line := func(label string, format string, args ...any) {
		fmt.Fprintf(w, "%s %s\n", key(fmt.Sprintf("%-14s", label)), fmt.Sprintf(format, args...))
	}

	fmt.Fprintln(w, ok("c Parsed CNF successfully."))
	line("c variables:", "%d", stats.Variables)
	line("c clauses:", "%d", stats.Clauses)
	line("c literals:", "%d", stats.Literals)
	line("c shapes:", "%d empty, %d unit, %d binary", stats.EmptyClauses, stats.UnitClauses, stats.BinaryClauses)
	line("c sizes:", "%d max, %.2f avg", stats.MaxClauseSize, stats.AvgClauseSize)
	line("c unused vars:", "%d", stats.UnusedVariables)
	for _, vc := range stats.TopVariables {
		line("c top var:", "%d (%d occurrences: %d+ %d-)", vc.Variable, vc.Occurrences, vc.Positive, vc.Negative)
	}
	line("c time (sec):", "%f", elapsed.Seconds())
}
