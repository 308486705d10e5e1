package manifest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/looplab/fsm"
)

// Outcome states of a change manifest.
const (
	OutcomePending    = "pending"
	OutcomeApplied    = "applied"
	OutcomeRolledBack = "rolled_back"
)

// ChangeManifest is the audit record of a proposed or applied mutation:
// a full before/after snapshot, created before the mutation is attempted.
type ChangeManifest struct {
	ID              string      `json:"id"`
	SubjectID       string      `json:"subject_id"`
	SubjectIdentity string      `json:"subject_identity"`
	Operation       string      `json:"operation"`
	Before          interface{} `json:"before"`
	After           interface{} `json:"after"`
	DryRun          bool        `json:"dry_run"`
	Outcome         string      `json:"outcome"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// New builds a pending manifest for a proposed mutation.
func New(subjectID, subjectIdentity, operation string, before, after interface{}, dryRun bool) *ChangeManifest {
	now := time.Now().UTC()
	return &ChangeManifest{
		ID:              uuid.NewString(),
		SubjectID:       subjectID,
		SubjectIdentity: subjectIdentity,
		Operation:       operation,
		Before:          before,
		After:           after,
		DryRun:          dryRun,
		Outcome:         OutcomePending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Filename is deterministic in shape: subject id plus creation timestamp.
// The short manifest-id suffix keeps two attempts against the same subject
// in the same second from overwriting each other.
func (m *ChangeManifest) Filename() string {
	return fmt.Sprintf("%s_%s_%s.json", m.SubjectID, m.CreatedAt.Format("20060102T150405Z"), m.ID[:8])
}

// ManifestFSM wraps a manifest with its outcome state machine
type ManifestFSM struct {
	manifest *ChangeManifest
	fsm      *fsm.FSM
}

// NewManifestFSM creates the outcome state machine for a manifest.
// Outcomes only move forward: pending → applied or pending → rolled_back.
func NewManifestFSM(m *ChangeManifest) *ManifestFSM {
	mfsm := &ManifestFSM{
		manifest: m,
	}

	mfsm.fsm = fsm.NewFSM(
		m.Outcome,
		fsm.Events{
			{Name: "apply", Src: []string{OutcomePending}, Dst: OutcomeApplied},
			{Name: "roll_back", Src: []string{OutcomePending}, Dst: OutcomeRolledBack},
		},
		fsm.Callbacks{},
	)

	return mfsm
}

// Apply marks the manifest's mutation as committed
func (f *ManifestFSM) Apply(ctx context.Context) error {
	if err := f.fsm.Event(ctx, "apply"); err != nil {
		return fmt.Errorf("cannot mark manifest applied from %s: %w", f.manifest.Outcome, err)
	}
	f.manifest.Outcome = f.fsm.Current()
	f.manifest.UpdatedAt = time.Now().UTC()
	return nil
}

// RollBack marks the manifest's mutation as rolled back
func (f *ManifestFSM) RollBack(ctx context.Context) error {
	if err := f.fsm.Event(ctx, "roll_back"); err != nil {
		return fmt.Errorf("cannot mark manifest rolled back from %s: %w", f.manifest.Outcome, err)
	}
	f.manifest.Outcome = f.fsm.Current()
	f.manifest.UpdatedAt = time.Now().UTC()
	return nil
}

// Current returns the current outcome state
func (f *ManifestFSM) Current() string {
	return f.fsm.Current()
}
