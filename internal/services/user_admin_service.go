package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/vendora/supplierctl/internal/config"
	"github.com/vendora/supplierctl/internal/manifest"
	"github.com/vendora/supplierctl/internal/models"
	"github.com/vendora/supplierctl/internal/mutate"
	"github.com/vendora/supplierctl/internal/repository"
	"github.com/vendora/supplierctl/pkg/logger"
	"gorm.io/gorm"
)

// UserAdminService covers the sensitive account mutations: password resets,
// role changes and country-entitlement edits. Every mutation runs through
// the confirmation gate and leaves a before/after manifest.
type UserAdminService struct {
	repo      repository.UserRepository
	db        *gorm.DB
	manifests *manifest.Writer
	cfg       *config.Config
}

func NewUserAdminService(repo repository.UserRepository, db *gorm.DB, manifests *manifest.Writer, cfg *config.Config) *UserAdminService {
	return &UserAdminService{repo: repo, db: db, manifests: manifests, cfg: cfg}
}

// ResetPassword replaces a user's password hash. The manifest records only
// whether a password was set, never the hash.
func (s *UserAdminService) ResetPassword(ctx context.Context, email, newPassword string, opts MutationOptions) error {
	if newPassword == "" {
		return errors.New("new password must not be empty")
	}
	if err := checkGate(opts); err != nil {
		return err
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	before := user.ToResponse()
	after := before
	after.PasswordSet = true

	stmt := mutate.Statement{
		Name:        "update user password",
		Exists:      userExists(user.ID),
		RequireRows: true,
		Exec: func(tx *gorm.DB) (int64, error) {
			res := tx.Exec("UPDATE users SET encrypted_password = ?, updated_at = NOW() WHERE id = ?", hash, user.ID)
			return res.RowsAffected, res.Error
		},
		// Legacy schemas predate the updated_at column.
		Fallback: func(tx *gorm.DB) (int64, error) {
			res := tx.Exec("UPDATE users SET encrypted_password = ? WHERE id = ?", hash, user.ID)
			return res.RowsAffected, res.Error
		},
	}

	return s.applyWithManifest(ctx, user, "reset_password", before, after, opts, []mutate.Statement{stmt})
}

// UpdateCountries applies add/remove modifiers to the entitlement set.
// The persisted set is always de-duplicated and upper-cased.
func (s *UserAdminService) UpdateCountries(ctx context.Context, email string, add, remove []string, opts MutationOptions) error {
	if len(add) == 0 && len(remove) == 0 {
		return errors.New("nothing to do: specify -add and/or -remove")
	}
	if err := checkGate(opts); err != nil {
		return err
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	before := user.ToResponse()

	updated := *user
	updated.SetCountries(mergeCountries(user.Countries(), add, remove))
	after := updated.ToResponse()

	stmt := mutate.Statement{
		Name:        "update user country entitlements",
		Exists:      userExists(user.ID),
		RequireRows: true,
		Exec: func(tx *gorm.DB) (int64, error) {
			res := tx.Exec("UPDATE users SET allowed_countries = ?, updated_at = NOW() WHERE id = ?", updated.AllowedCountries, user.ID)
			return res.RowsAffected, res.Error
		},
		Fallback: func(tx *gorm.DB) (int64, error) {
			res := tx.Exec("UPDATE users SET allowed_countries = ? WHERE id = ?", updated.AllowedCountries, user.ID)
			return res.RowsAffected, res.Error
		},
	}

	return s.applyWithManifest(ctx, user, "update_countries", before, after, opts, []mutate.Statement{stmt})
}

// SetRole normalizes the requested role (legacy localized aliases included)
// and persists it. Unknown roles fail validation before any resource is
// touched.
func (s *UserAdminService) SetRole(ctx context.Context, email, rawRole string, opts MutationOptions) error {
	role, err := models.NormalizeRole(rawRole)
	if err != nil {
		return err
	}
	if err := checkGate(opts); err != nil {
		return err
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	before := user.ToResponse()
	after := before
	after.Role = role

	stmt := mutate.Statement{
		Name:        "update user role",
		Exists:      userExists(user.ID),
		RequireRows: true,
		Exec: func(tx *gorm.DB) (int64, error) {
			res := tx.Exec("UPDATE users SET role = ?, updated_at = NOW() WHERE id = ?", role, user.ID)
			return res.RowsAffected, res.Error
		},
		Fallback: func(tx *gorm.DB) (int64, error) {
			res := tx.Exec("UPDATE users SET role = ? WHERE id = ?", role, user.ID)
			return res.RowsAffected, res.Error
		},
	}

	return s.applyWithManifest(ctx, user, "set_role", before, after, opts, []mutate.Statement{stmt})
}

// applyWithManifest is the shared mutation protocol: persist the manifest,
// run the batch, update the manifest outcome. Manifest files outlive the
// transaction whatever its outcome.
func (s *UserAdminService) applyWithManifest(ctx context.Context, user *models.User, operation string, before, after models.UserResponse, opts MutationOptions, stmts []mutate.Statement) error {
	m := manifest.New(fmt.Sprint(user.ID), user.Email, operation, before, after, opts.DryRun)
	if err := persistManifest(s.manifests, s.cfg, m, opts); err != nil {
		return err
	}

	mutator := mutate.New(s.db, mutate.Options{Confirmed: opts.Confirmed, DryRun: opts.DryRun})
	affected, runErr := mutator.Run(ctx, stmts)
	finishManifest(ctx, s.manifests, m, runErr, opts.DryRun)

	if runErr != nil {
		return runErr
	}
	logger.Info("mutation complete", "operation", operation, "subject", user.Email, "affected", affected, "dry_run", opts.DryRun, "outcome", m.Outcome)
	return nil
}

// mergeCountries applies add/remove modifiers to an entitlement set with
// set semantics: the result is de-duplicated and upper-cased, removals win
// over additions.
func mergeCountries(existing, add, remove []string) []string {
	removed := make(map[string]struct{}, len(remove))
	for _, c := range models.NormalizeCountries(remove) {
		removed[c] = struct{}{}
	}
	var next []string
	for _, c := range models.NormalizeCountries(append(existing, add...)) {
		if _, drop := removed[c]; drop {
			continue
		}
		next = append(next, c)
	}
	return next
}

// userExists probes for the subject row inside the open transaction.
func userExists(id uint) func(tx *gorm.DB) (bool, error) {
	return func(tx *gorm.DB) (bool, error) {
		var count int64
		err := tx.Model(&models.User{}).Where("id = ?", id).Count(&count).Error
		return count > 0, err
	}
}
