package services

import (
	"context"

	"github.com/vendora/supplierctl/internal/config"
	"github.com/vendora/supplierctl/internal/manifest"
	"github.com/vendora/supplierctl/internal/mutate"
	"github.com/vendora/supplierctl/pkg/logger"
)

// persistManifest enforces the audit-before-commit policy. In dry runs a
// write failure degrades to a warning; before a real commit it aborts unless
// the caller opted out, and then it is logged loudly.
func persistManifest(w *manifest.Writer, cfg *config.Config, m *manifest.ChangeManifest, opts MutationOptions) error {
	path, err := w.Write(m)
	if err == nil {
		logger.Info("manifest written", "path", path, "dry_run", m.DryRun)
		return nil
	}
	if m.DryRun {
		logger.Warn("manifest write failed in dry run", "error", err)
		return nil
	}
	if cfg.RequireManifest && !opts.AllowUnaudited {
		return err
	}
	logger.Error("COMMITTING WITHOUT AUDIT MANIFEST", "operation", m.Operation, "subject", m.SubjectIdentity, "error", err)
	return nil
}

// finishManifest records the transaction outcome on the manifest. Dry runs
// and failures both end rolled back; outcome-file write failures only warn,
// the mutation result stands.
func finishManifest(ctx context.Context, w *manifest.Writer, m *manifest.ChangeManifest, runErr error, dryRun bool) {
	mfsm := manifest.NewManifestFSM(m)
	var err error
	if runErr != nil || dryRun {
		err = mfsm.RollBack(ctx)
	} else {
		err = mfsm.Apply(ctx)
	}
	if err != nil {
		logger.Error("manifest outcome update failed", "manifest", m.ID, "error", err)
		return
	}
	if _, err := w.Write(m); err != nil {
		logger.Warn("could not record manifest outcome", "manifest", m.ID, "error", err)
	}
}

// checkGate rejects unconfirmed mutations before any resource is acquired.
// Dry runs are exempt: they never commit.
func checkGate(opts MutationOptions) error {
	if !opts.Confirmed && !opts.DryRun {
		return mutate.ErrConfirmationRequired
	}
	return nil
}
