package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/velopago/riskengine/internal/application/usecase"
	"github.com/velopago/riskengine/internal/domain/service"
	"github.com/velopago/riskengine/internal/infrastructure/config"
	"github.com/velopago/riskengine/pkg/observability"
)

func main() {
	inputPath := flag.String("input", "transactions_examples.csv", "path to the input transactions CSV")
	outputPath := flag.String("output", "decisions.csv", "path to write the scored decisions CSV")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()
	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	scorer := service.NewRiskScorer(cfg.Scoring)
	runner := usecase.NewRunBatch(scorer, logger)

	summary, err := runner.Execute(ctx, *inputPath, *outputPath)
	if err != nil {
		logger.Error("batch scoring failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("scored %d transactions -> %s\n", summary.Rows, *outputPath)
	printPreview(summary)
}

// printPreview writes the first scored rows as an aligned table.
func printPreview(summary *usecase.BatchSummary) {
	if len(summary.Preview) == 0 {
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(summary.Header, "\t"))
	for _, row := range summary.Preview {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
}
