package models

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"
)

// User represents a principal in the access-control table
type User struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Email             string    `gorm:"uniqueIndex;not null" json:"email"`
	Username          string    `json:"username"`
	FullName          string    `json:"full_name"`
	Role              string    `gorm:"default:user" json:"role"`
	Active            bool      `gorm:"default:true" json:"active"`
	AllowedCountries  string    `gorm:"column:allowed_countries" json:"allowed_countries"`
	EncryptedPassword string    `gorm:"column:encrypted_password" json:"-"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// BeforeCreate hook for setting defaults
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

// IsAdmin returns true if user has admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Countries returns the entitlement set as a slice
func (u *User) Countries() []string {
	if u.AllowedCountries == "" {
		return nil
	}
	return strings.Split(u.AllowedCountries, ",")
}

// SetCountries stores the entitlement set normalized: upper-cased,
// de-duplicated, sorted. No raw input shape persists past this boundary.
func (u *User) SetCountries(codes []string) {
	u.AllowedCountries = strings.Join(NormalizeCountries(codes), ",")
}

// Role constants
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleOperator = "operator"
	RoleUser     = "user"
)

// roleAliases maps legacy localized role names onto the closed role set.
var roleAliases = map[string]string{
	"admin":         RoleAdmin,
	"administrador": RoleAdmin,
	"administrator": RoleAdmin,
	"manager":       RoleManager,
	"gerente":       RoleManager,
	"operator":      RoleOperator,
	"operador":      RoleOperator,
	"user":          RoleUser,
	"usuario":       RoleUser,
}

// NormalizeRole maps a raw role string (including legacy localized aliases)
// onto the closed role set. Unknown values are an error: no raw role string
// is ever persisted.
func NormalizeRole(raw string) (string, error) {
	role, ok := roleAliases[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return "", fmt.Errorf("unknown role %q (valid: admin, manager, operator, user)", raw)
	}
	return role, nil
}

// NormalizeCountries upper-cases, de-duplicates and sorts a set of
// two-letter country codes. Empty entries are discarded.
func NormalizeCountries(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// UserResponse is the snapshot format used in change manifests
type UserResponse struct {
	ID               uint      `json:"id"`
	Email            string    `json:"email"`
	Username         string    `json:"username"`
	FullName         string    `json:"full_name"`
	Role             string    `json:"role"`
	Active           bool      `json:"active"`
	AllowedCountries []string  `json:"allowed_countries"`
	PasswordSet      bool      `json:"password_set"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ToResponse converts User to UserResponse. The password hash itself never
// leaves the model; manifests only record whether one is set.
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:               u.ID,
		Email:            u.Email,
		Username:         u.Username,
		FullName:         u.FullName,
		Role:             u.Role,
		Active:           u.Active,
		AllowedCountries: u.Countries(),
		PasswordSet:      u.EncryptedPassword != "",
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}
