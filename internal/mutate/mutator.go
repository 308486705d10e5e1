package mutate

import (
	"context"
	"errors"
	"fmt"

	"github.com/vendora/supplierctl/pkg/logger"
	"gorm.io/gorm"
)

// Sentinel errors for the mutation protocol.
var (
	// ErrConfirmationRequired means the safety gate was not satisfied. No
	// database round-trip has happened when it is returned.
	ErrConfirmationRequired = errors.New("confirmation required: re-run with --yes or set SUPPLIERCTL_ASSUME_YES=true")

	// ErrNotFound means an update target matched zero rows.
	ErrNotFound = errors.New("mutation target not found")

	// ErrTransactionFailed wraps a store error after rollback. The whole
	// operation is safe to retry: rollback guarantees no partial state.
	ErrTransactionFailed = errors.New("transaction failed")
)

// Statement is one named mutating step in a batch.
type Statement struct {
	// Name identifies the statement in logs and errors.
	Name string

	// Table, when set, is existence-checked before execution. A missing
	// table skips the statement with a notice instead of failing the batch.
	Table string

	// Exists optionally replaces the table check with a custom probe
	// (e.g. "does this user row exist").
	Exists func(tx *gorm.DB) (bool, error)

	// Exec runs the statement and reports affected rows.
	Exec func(tx *gorm.DB) (int64, error)

	// Fallback, when set, is retried after a failed Exec. Used for
	// statements referencing optional columns that may not exist in the
	// target schema; the failed attempt is isolated behind a savepoint so
	// the retry runs in a clean transaction state.
	Fallback func(tx *gorm.DB) (int64, error)

	// RequireRows makes zero affected rows an ErrNotFound.
	RequireRows bool
}

// Options controls gating and commit behavior for a mutator run.
type Options struct {
	// Confirmed must be true (explicit flag or environment override) for
	// the batch to execute. Dry runs are exempt: they never commit.
	Confirmed bool

	// DryRun executes the batch and then unconditionally rolls back.
	DryRun bool
}

// Mutator executes statement batches as a single all-or-nothing unit.
// It owns the open transaction handle for the duration of a run.
type Mutator struct {
	db   *gorm.DB
	opts Options
}

func New(db *gorm.DB, opts Options) *Mutator {
	return &Mutator{db: db, opts: opts}
}

// Run applies the statements strictly in declared order inside one
// transaction. Returns the total affected-row count. On any statement error
// the transaction is rolled back before the error propagates; rollback
// failures are logged and never mask the original error.
func (m *Mutator) Run(ctx context.Context, stmts []Statement) (int64, error) {
	if len(stmts) == 0 {
		return 0, nil
	}
	if !m.opts.Confirmed && !m.opts.DryRun {
		return 0, ErrConfirmationRequired
	}

	tx := m.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return 0, fmt.Errorf("%w: begin: %v", ErrTransactionFailed, tx.Error)
	}

	var affected int64
	for i, st := range stmts {
		skip, err := m.shouldSkip(tx, st)
		if err != nil {
			rollback(tx, st.Name)
			return 0, fmt.Errorf("%w: %s: existence check: %v", ErrTransactionFailed, st.Name, err)
		}
		if skip {
			continue
		}

		n, err := m.execute(tx, st, i)
		if err != nil {
			rollback(tx, st.Name)
			return 0, fmt.Errorf("%w: %s: %v", ErrTransactionFailed, st.Name, err)
		}
		if st.RequireRows && n == 0 {
			rollback(tx, st.Name)
			return 0, fmt.Errorf("%w: %s matched no rows", ErrNotFound, st.Name)
		}
		affected += n
	}

	if m.opts.DryRun {
		logger.Info("dry run: rolling back", "statements", len(stmts), "affected", affected)
		rollback(tx, "dry-run")
		return affected, nil
	}

	if err := tx.Commit().Error; err != nil {
		rollback(tx, "commit")
		return 0, fmt.Errorf("%w: commit: %v", ErrTransactionFailed, err)
	}
	return affected, nil
}

// shouldSkip runs the statement's existence check. Missing targets are
// skipped with a notice; the batch continues.
func (m *Mutator) shouldSkip(tx *gorm.DB, st Statement) (bool, error) {
	if st.Exists != nil {
		ok, err := st.Exists(tx)
		if err != nil {
			return false, err
		}
		if !ok {
			logger.Warn("skipping statement: target does not exist", "statement", st.Name)
			return true, nil
		}
		return false, nil
	}
	if st.Table != "" && !tx.Migrator().HasTable(st.Table) {
		logger.Warn("skipping statement: table does not exist", "statement", st.Name, "table", st.Table)
		return true, nil
	}
	return false, nil
}

// execute runs Exec, falling back once to Fallback when present. A failed
// attempt would poison the transaction on Postgres, so statements with a
// fallback run behind a savepoint that the retry rolls back to.
func (m *Mutator) execute(tx *gorm.DB, st Statement, idx int) (int64, error) {
	if st.Fallback == nil {
		return st.Exec(tx)
	}

	sp := fmt.Sprintf("stmt_%d", idx)
	if err := tx.SavePoint(sp).Error; err != nil {
		return 0, err
	}
	n, err := st.Exec(tx)
	if err == nil {
		return n, nil
	}
	logger.Warn("statement failed, retrying without optional column", "statement", st.Name, "error", err)
	if err := tx.RollbackTo(sp).Error; err != nil {
		return 0, err
	}
	return st.Fallback(tx)
}

func rollback(tx *gorm.DB, stage string) {
	if err := tx.Rollback().Error; err != nil {
		// Never let a rollback failure mask the original error.
		logger.Error("rollback failed", "stage", stage, "error", err)
	}
}
