package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"simbal"
)

func main() {
	var (
		configPath  = flag.String("config", "", "scenario file (yaml); flags below override it")
		processors  = flag.Int("processors", simbal.DEFAULT_N_PROCESSORS, "number of processors")
		policy      = flag.String("policy", simbal.DEFAULT_POLICY, "placement policy: static, dynamic or adaptive")
		threshold   = flag.Int("threshold", simbal.DEFAULT_THRESHOLD, "load spread that triggers migration")
		ticks       = flag.Int("ticks", 100, "ticks to run")
		seed        = flag.Uint64("seed", 1, "workload seed")
		lambda      = flag.Float64("lambda", simbal.DEFAULT_LAMBDA, "expected arrivals per tick")
		interval    = flag.Duration("interval", 0, "wall-clock pause between ticks; 0 runs flat out")
		switchSpec  = flag.String("switch", "", "switch policy mid-run, as tick:policy")
		outDir      = flag.String("out", "", "directory for csv exports")
		traceDir    = flag.String("trace", "", "directory for trace csvs")
		interactive = flag.Bool("interactive", false, "drive the run from stdin")
	)
	flag.Parse()

	cfg := simbal.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = simbal.ReadConfig(*configPath)
		if err != nil {
			die(err)
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "processors":
			cfg.NProcessors = *processors
		case "policy":
			cfg.Policy = *policy
		case "threshold":
			cfg.Threshold = *threshold
		case "ticks":
			cfg.Ticks = *ticks
		case "seed":
			cfg.Seed = *seed
		case "lambda":
			cfg.Lambda = *lambda
		case "trace":
			cfg.TraceDir = *traceDir
		}
	})

	switchTick, switchPolicy, err := parseSwitch(*switchSpec)
	if err != nil {
		die(err)
	}

	w, err := simbal.NewWorld(cfg)
	if err != nil {
		die(err)
	}
	defer w.Close()

	if *interactive {
		repl(w, *interval)
	} else {
		for i := 0; i < cfg.Ticks; i++ {
			if switchPolicy != "" && int(w.CurrTick())+1 == switchTick {
				if err := w.SetPolicy(switchPolicy); err != nil {
					die(err)
				}
			}
			w.Tick()
			if *interval > 0 {
				time.Sleep(*interval)
			}
		}
	}

	simbal.WriteSummary(os.Stdout, w)
	if *outDir != "" {
		if err := export(w, *outDir); err != nil {
			die(err)
		}
	}
}

func die(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func parseSwitch(spec string) (int, string, error) {
	if spec == "" {
		return 0, "", nil
	}
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return 0, "", fmt.Errorf("switch wants tick:policy, got %q", spec)
	}
	tick, err := strconv.Atoi(parts[0])
	if err != nil || tick < 0 {
		return 0, "", fmt.Errorf("switch wants a non-negative tick, got %q", parts[0])
	}
	return tick, parts[1], nil
}

func export(w *simbal.World, dir string) error {
	if err := os.MkdirAll(dir, 0777); err != nil {
		return err
	}
	if err := writeFile(dir, "history.csv", func(out io.Writer) error {
		return simbal.WriteHistoryCSV(out, w.History())
	}); err != nil {
		return err
	}
	if err := writeFile(dir, "roster.csv", func(out io.Writer) error {
		return simbal.WriteRosterCSV(out, w.ProcSnapshots())
	}); err != nil {
		return err
	}
	return writeFile(dir, "processors.csv", func(out io.Writer) error {
		return simbal.WriteProcessorsCSV(out, w.ProcessorSnapshots())
	})
}

func writeFile(dir, name string, write func(io.Writer) error) error {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	defer f.Close()
	return write(f)
}

// repl drives the world off stdin. The pacing timer lives here, not in the
// engine: while running, every ticker fire steps the world once.
func repl(w *simbal.World, interval time.Duration) {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	running := false

	fmt.Println("commands: start pause step add [burst [prio]] policy <name> reset status quit")
	for {
		select {
		case <-ticker.C:
			if running {
				w.Tick()
				fmt.Printf("%v\n", w.Metrics())
			}
		case line, ok := <-lines:
			if !ok {
				return
			}
			fields := strings.Fields(line)
			if len(fields) == 0 {
				continue
			}
			switch fields[0] {
			case "start":
				running = true
			case "pause":
				running = false
			case "step", "s":
				w.Tick()
				fmt.Printf("%v\n", w.Metrics())
			case "add":
				burst, prio := 0, 0
				if len(fields) > 1 {
					burst, _ = strconv.Atoi(fields[1])
				}
				if len(fields) > 2 {
					prio, _ = strconv.Atoi(fields[2])
				}
				id := w.AddProc(simbal.Twork(burst), prio)
				fmt.Printf("added proc %v\n", id)
			case "policy":
				if len(fields) < 2 {
					fmt.Println("policy <static|dynamic|adaptive>")
					continue
				}
				if err := w.SetPolicy(fields[1]); err != nil {
					fmt.Println(err)
				}
			case "reset":
				running = false
				if err := w.Reset(); err != nil {
					fmt.Println(err)
				}
			case "status":
				fmt.Println(w)
			case "quit", "q":
				return
			default:
				fmt.Printf("unknown command %q\n", fields[0])
			}
		}
	}
}
