package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/utkarsh5026/parpool/internal/benchcfg"
	"github.com/utkarsh5026/parpool/pool"
	"golang.org/x/sync/errgroup"
)

var showMetrics bool

// Result is the outcome of one scenario.
type Result struct {
	Scenario string        `yaml:"scenario"`
	Category string        `yaml:"category"`
	Size     int           `yaml:"size"`
	Workers  int           `yaml:"workers"`
	Serial   time.Duration `yaml:"serial"`
	Parallel time.Duration `yaml:"parallel"`
	Speedup  float64       `yaml:"speedup"`
	Match    bool          `yaml:"match"`
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run for-each scenarios",
	Long: `Run every scenario of the config serially and on the pool.

Each scenario is repeated and the fastest run of each kind is reported.
The parallel checksum must equal the serial one.`,
	RunE: runBenchmarks,
}

func init() {
	runCmd.Flags().BoolVar(&showMetrics, "metrics", false, "Print the pool metrics after the run")
	rootCmd.AddCommand(runCmd)
}

func loadConfig() (benchcfg.Config, error) {
	cfg := benchcfg.Default()
	if cfgFile != "" {
		var err error
		if cfg, err = benchcfg.Load(cfgFile); err != nil {
			return cfg, err
		}
	}
	if threads != "" {
		cfg.Threads = threads
	}
	return cfg, cfg.Validate()
}

func runBenchmarks(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	threadOpt, err := benchcfg.ThreadOption(cfg.Threads)
	if err != nil {
		return err
	}

	workloads, err := prepareAll(cfg.Scenarios)
	if err != nil {
		return err
	}

	var reg *prometheus.Registry
	if showMetrics {
		reg = prometheus.NewRegistry()
	}

	quiet := output == "yaml"
	if !quiet {
		_, _ = bold.Printf("Running %d scenarios (%s threads, %d CPUs, %d repeats)\n\n",
			len(workloads), cfg.Threads, runtime.NumCPU(), cfg.Repeat)
	}

	var bar *progressbar.ProgressBar
	if !quiet {
		bar = progressbar.NewOptions(len(workloads)*cfg.Repeat,
			progressbar.OptionSetDescription("Running scenarios"),
			progressbar.OptionSetWidth(50),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionClearOnFinish(),
		)
	}

	results := make([]Result, 0, len(workloads))
	for _, w := range workloads {
		if bar != nil {
			bar.Describe(fmt.Sprintf("Running: %s", w.scenario.Name))
		}

		r, err := runScenario(w, cfg.Repeat, threadOpt, reg, bar)
		if err != nil {
			return fmt.Errorf("scenario %s: %w", w.scenario.Name, err)
		}
		results = append(results, r)
	}
	if bar != nil {
		_ = bar.Finish()
	}

	if err := renderResults(results); err != nil {
		return err
	}
	if reg != nil {
		if err := renderMetrics(reg); err != nil {
			return err
		}
	}

	for _, r := range results {
		if !r.Match {
			return errors.New("parallel results differ from serial results")
		}
	}
	return nil
}

// prepareAll builds the inputs of every scenario concurrently.
func prepareAll(scenarios []benchcfg.Scenario) ([]*workload, error) {
	workloads := make([]*workload, len(scenarios))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, s := range scenarios {
		g.Go(func() error {
			if s.Name == "" {
				s.Name = fmt.Sprintf("scenario-%d", i)
			}
			workloads[i] = prepare(s)
			return nil
		})
	}
	return workloads, g.Wait()
}

func runScenario(
	w *workload,
	repeat int,
	threadOpt pool.Option,
	reg *prometheus.Registry,
	bar *progressbar.ProgressBar,
) (Result, error) {
	opts := []pool.Option{threadOpt, pool.WithName(w.scenario.Name)}
	if w.scenario.ChunkingFactor > 0 {
		opts = append(opts, pool.WithChunkingFactor(w.scenario.ChunkingFactor))
	}
	if reg != nil {
		opts = append(opts, pool.WithPrometheus(reg))
	}

	p := pool.New(opts...)
	defer p.Close()

	r := Result{
		Scenario: w.scenario.Name,
		Category: w.scenario.Category,
		Size:     w.scenario.Size,
		Workers:  p.NumWorkerThreads(),
		Match:    true,
	}

	for range repeat {
		start := time.Now()
		want, err := w.run(pool.Threads(0))
		if err != nil {
			return r, err
		}
		serial := time.Since(start)

		start = time.Now()
		got, err := w.run(p)
		if err != nil {
			return r, err
		}
		parallel := time.Since(start)

		if got != want {
			r.Match = false
		}
		if r.Serial == 0 || serial < r.Serial {
			r.Serial = serial
		}
		if r.Parallel == 0 || parallel < r.Parallel {
			r.Parallel = parallel
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	if r.Parallel > 0 {
		r.Speedup = r.Serial.Seconds() / r.Parallel.Seconds()
	}
	return r, nil
}
