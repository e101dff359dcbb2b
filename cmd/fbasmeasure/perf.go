package main

import (
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cndolo/fbasrank/harness"
	"github.com/cndolo/fbasrank/log"
	"github.com/cndolo/fbasrank/metrics"
)

func perfCmd() *cobra.Command {
	var flags commonFlags
	cmd := &cobra.Command{
		Use:   "perf",
		Short: "Measure the runtime of every ranking algorithm",
		RunE: func(cmd *cobra.Command, args []string) error {
			noQI, _ := cmd.Flags().GetBool("no-quorum-intersection")
			flags.noQI = noQI
			return runPerf(flags)
		},
	}
	registerCommonFlags(cmd, &flags)
	return cmd
}

func runPerf(flags commonFlags) error {
	fbasType, err := parseFbasType(flags.fbasType)
	if err != nil {
		return err
	}

	logger := log.New("info")
	defer logger.Sync()

	m, err := metrics.NewHarness(prometheus.NewRegistry())
	if err != nil {
		return err
	}

	inputs := harness.GenerateInputs(flags.maxSize, flags.runs, fbasType)
	existing := make(map[harness.InputDataPoint]harness.PerfDataPoint)
	if flags.update {
		existing, err = harness.ReadExistingPerfRows(flags.output)
		if err != nil {
			return err
		}
	}
	tasks := harness.BuildPerfTasklist(inputs, existing)

	logger.Info("starting performance measurements",
		zap.String("fbas_type", fbasType.String()),
		zap.Int("max_top_tier_size", flags.maxSize),
		zap.Int("runs", flags.runs),
		zap.Int("tasks", len(tasks)),
	)

	qiCheck := !flags.noQI
	rows := harness.RunPool(tasks, flags.jobs, m, logger, func(task harness.PerfTask) harness.PerfDataPoint {
		return harness.RunPerfTask(task, fbasType, qiCheck, flags.seed, logger)
	})

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TopTierSize != rows[j].TopTierSize {
			return rows[i].TopTierSize < rows[j].TopTierSize
		}
		return rows[i].Run < rows[j].Run
	})
	return harness.WritePerfCSV(flags.output, rows, flags.update)
}
