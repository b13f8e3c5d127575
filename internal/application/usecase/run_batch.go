package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/velopago/riskengine/internal/domain/model"
	"github.com/velopago/riskengine/internal/domain/service"
	"github.com/velopago/riskengine/internal/infrastructure/csvio"
)

// previewRows is how many scored rows a batch summary retains for display.
const previewRows = 5

// RunBatch is the use case that scores a CSV of transactions and writes the
// augmented table. Rows are processed sequentially in input order; no row's
// outcome depends on any other row.
type RunBatch struct {
	scorer *service.RiskScorer
	logger *slog.Logger
}

// NewRunBatch creates a new RunBatch use case.
func NewRunBatch(scorer *service.RiskScorer, logger *slog.Logger) *RunBatch {
	return &RunBatch{scorer: scorer, logger: logger}
}

// BatchSummary describes a completed batch run.
type BatchSummary struct {
	// Rows is the number of transactions scored.
	Rows int
	// Decisions counts scored rows per decision value.
	Decisions map[string]int
	// Header and Preview hold the output header and the first scored rows,
	// for display.
	Header  []string
	Preview [][]string
}

// Execute reads the input table, scores every row, and writes the output
// table: all input columns unchanged, plus decision, risk_score and reasons.
// An unreadable input file is fatal; malformed field values inside rows are
// absorbed by lenient decoding and never fail the run.
func (uc *RunBatch) Execute(ctx context.Context, inputPath, outputPath string) (*BatchSummary, error) {
	table, err := csvio.ReadTable(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read input table: %w", err)
	}

	out := &csvio.Table{
		Header: append(append(make([]string, 0, len(table.Header)+3), table.Header...),
			"decision", "risk_score", "reasons"),
		Rows: make([][]string, 0, len(table.Rows)),
	}
	decisions := make(map[string]int)

	for i := range table.Rows {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("batch aborted: %w", err)
		}

		tx := model.TransactionFromRecord(table.Record(i))
		result := uc.scorer.Score(tx)

		row := append(make([]string, 0, len(table.Rows[i])+3), table.Rows[i]...)
		row = append(row, result.Decision.String(), strconv.Itoa(result.Score), strings.Join(result.Reasons, ";"))
		out.Rows = append(out.Rows, row)
		decisions[result.Decision.String()]++
	}

	if err := csvio.WriteTable(outputPath, out); err != nil {
		return nil, fmt.Errorf("failed to write output table: %w", err)
	}

	uc.logger.Info("batch scoring complete",
		slog.String("input", inputPath),
		slog.String("output", outputPath),
		slog.Int("rows", len(out.Rows)),
		slog.Int("rejected", decisions["REJECTED"]),
		slog.Int("in_review", decisions["IN_REVIEW"]),
		slog.Int("accepted", decisions["ACCEPTED"]),
	)

	preview := out.Rows
	if len(preview) > previewRows {
		preview = preview[:previewRows]
	}

	return &BatchSummary{
		Rows:      len(out.Rows),
		Decisions: decisions,
		Header:    out.Header,
		Preview:   preview,
	}, nil
}
