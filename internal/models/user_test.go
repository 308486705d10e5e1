package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCountries(t *testing.T) {
	assert.Equal(t, []string{"CA", "US"}, NormalizeCountries([]string{"us", "ca", "CA", " ca "}))
	assert.Empty(t, NormalizeCountries([]string{"", "  "}))
	assert.Empty(t, NormalizeCountries(nil))
}

func TestSetCountriesCollapsesDuplicates(t *testing.T) {
	u := User{}
	u.SetCountries([]string{"US", "ca", "ca"})

	// Order-independent set equality: always de-duplicated and upper-cased.
	assert.ElementsMatch(t, []string{"US", "CA"}, u.Countries())
}

func TestNormalizeRoleAliases(t *testing.T) {
	cases := map[string]string{
		"admin":         RoleAdmin,
		"Administrador": RoleAdmin,
		"GERENTE":       RoleManager,
		"manager":       RoleManager,
		"operador":      RoleOperator,
		"Usuario":       RoleUser,
		" user ":        RoleUser,
	}
	for raw, want := range cases {
		got, err := NormalizeRole(raw)
		require.NoError(t, err, "role %q", raw)
		assert.Equal(t, want, got, "role %q", raw)
	}
}

func TestNormalizeRoleRejectsUnknown(t *testing.T) {
	_, err := NormalizeRole("superuser")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "superuser")
}

func TestToResponseMasksPassword(t *testing.T) {
	u := User{Email: "ops@example.com", EncryptedPassword: "$2a$10$abc"}
	resp := u.ToResponse()
	assert.True(t, resp.PasswordSet)

	u.EncryptedPassword = ""
	assert.False(t, u.ToResponse().PasswordSet)
}

func TestSupplierUploadEligible(t *testing.T) {
	assert.True(t, (&Supplier{Name: "Acme", Category: "Tools"}).UploadEligible())
	assert.False(t, (&Supplier{Name: "Acme"}).UploadEligible())
	assert.False(t, (&Supplier{Category: "Tools"}).UploadEligible())
}
