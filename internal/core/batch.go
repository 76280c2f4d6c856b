package core

// batch.go drives a bounded set of rows through a row function.
//
// Rows are processed in fixed-size chunks. Chunks run one after another;
// rows inside a chunk run concurrently, so at most chunkSize storage
// operations are outstanding at once. Each row writes only its own slot in
// a pre-sized outcome slice, which keeps row outcomes isolated without
// locking. Row errors are outcomes, never group errors: one failing row
// cannot cancel its siblings.
//
// Once ctx is done no further rows start. Rows that never started are
// reported as errors so that SuccessRows + ErrorRows == TotalRows holds for
// every batch. Rows persisted before the deadline stay committed.

import (
	"context"
	"fmt"
	"runtime/debug"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/JonMunkholm/vetrecords/internal/logging"
)

// DefaultChunkSize is the number of rows processed concurrently.
const DefaultChunkSize = 5

// Batch is one bounded collection of rows submitted together.
type Batch struct {
	Kind   Kind
	Source string
	Actor  string
	Rows   []RawRow
}

// Engine runs batches with a fixed chunk size.
type Engine struct {
	chunkSize int
	now       func() time.Time
}

// NewEngine returns an engine; chunkSize <= 0 selects DefaultChunkSize.
func NewEngine(chunkSize int) *Engine {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Engine{chunkSize: chunkSize, now: time.Now}
}

// ChunkSize returns the engine's chunk size.
func (e *Engine) ChunkSize() int {
	return e.chunkSize
}

type rowOutcome struct {
	started bool
	record  ImportedRecord
	err     error
}

// Run processes every row of b through fn and aggregates the outcomes.
// The only error returned is ErrNoActingUser; everything else is reported
// per row in the result.
func (e *Engine) Run(ctx context.Context, b Batch, fn RowFunc) (*BatchResult, error) {
	if b.Actor == "" {
		return nil, ErrNoActingUser
	}

	start := e.now()
	result := &BatchResult{
		BatchID:   BatchID(b.Source, b.Kind, start),
		Kind:      b.Kind,
		Source:    b.Source,
		TotalRows: len(b.Rows),
		Imported:  []ImportedRecord{},
		Errors:    []RowError{},
	}

	logger := logging.WithFields(ctx,
		"batch_id", result.BatchID,
		"kind", b.Kind,
		"source", b.Source,
	)
	logger.Info("batch started", "rows", len(b.Rows), "chunk_size", e.chunkSize)

	outcomes := make([]rowOutcome, len(b.Rows))
	for lo := 0; lo < len(b.Rows); lo += e.chunkSize {
		if ctx.Err() != nil {
			break
		}
		hi := min(lo+e.chunkSize, len(b.Rows))

		var g errgroup.Group
		g.SetLimit(e.chunkSize)
		for i := lo; i < hi; i++ {
			g.Go(func() error {
				outcomes[i] = runRow(ctx, i, b.Rows[i], fn)
				return nil
			})
		}
		_ = g.Wait()
	}

	for i, o := range outcomes {
		err := o.err
		if !o.started {
			err = fmt.Errorf("row not processed: %w", contextErr(ctx))
		}
		if err == nil {
			result.Imported = append(result.Imported, o.record)
			continue
		}

		rowErr := RowError{
			Row:     i + 1,
			Field:   errorField(err),
			Message: err.Error(),
			Code:    MapError(err).Code,
			Data:    b.Rows[i],
		}
		result.Errors = append(result.Errors, rowErr)
		logger.Warn("row failed",
			"row", rowErr.Row,
			"field", rowErr.Field,
			"code", rowErr.Code,
			"error", err,
		)
	}

	result.SuccessRows = len(result.Imported)
	result.ErrorRows = len(result.Errors)
	result.Duration = e.now().Sub(start)

	logger.Info("batch completed",
		"total", result.TotalRows,
		"success", result.SuccessRows,
		"errors", result.ErrorRows,
		"duration_ms", result.Duration.Milliseconds(),
	)
	return result, nil
}

// runRow executes fn for one row, converting panics into row errors.
func runRow(ctx context.Context, i int, row RawRow, fn RowFunc) (out rowOutcome) {
	if ctx.Err() != nil {
		return rowOutcome{}
	}
	out.started = true

	defer func() {
		if r := recover(); r != nil {
			logging.FromContext(ctx).Error("panic in row processor",
				"row", i+1,
				"panic", r,
				"stack", string(debug.Stack()),
			)
			out = rowOutcome{started: true, err: fmt.Errorf("internal error processing row: %v", r)}
		}
	}()

	rec, err := fn(ctx, i, row)
	if err != nil {
		return rowOutcome{started: true, err: err}
	}
	rec.Row = i + 1
	return rowOutcome{started: true, record: rec}
}

func contextErr(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return context.Canceled
}

// BatchID formats the identifier reported with a batch result.
func BatchID(source string, kind Kind, at time.Time) string {
	return source + "_" + strconv.FormatInt(at.UnixMilli(), 10) + "_" + string(kind)
}
