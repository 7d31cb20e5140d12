package permissions_test

import (
	"net/http"
	"testing"

	"pms/permissions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_EmbeddedPermissions(t *testing.T) {
	data := permissions.Get()

	require.NotNil(t, data)
	assert.False(t, data.Skip)
	assert.NotEmpty(t, data.Endpoints)
}

func TestPermissionData_FindPermissions(t *testing.T) {
	data := permissions.Get()

	t.Run("subrouter root with trailing slash", func(t *testing.T) {
		permission, found := data.FindPermissions("/v1/night-audits/", http.MethodPost)

		require.True(t, found)
		assert.ElementsMatch(t, []string{"superadmin", "admin", "night_auditor"}, permission.Permissions)
	})

	t.Run("front desk cannot run the audit", func(t *testing.T) {
		permission, found := data.FindPermissions("/v1/night-audits", http.MethodPost)

		require.True(t, found)
		assert.False(t, permission.Allows("front_desk"))
		assert.True(t, permission.Allows("night_auditor"))
	})

	t.Run("front desk reads the board and posting status", func(t *testing.T) {
		board, found := data.FindPermissions("/v1/occupancy/", http.MethodGet)
		require.True(t, found)
		assert.True(t, board.Allows("front_desk"))

		posting, found := data.FindPermissions("/v1/bookings/{id}/posting", "get")
		require.True(t, found)
		assert.True(t, posting.Allows("front_desk"))
	})

	t.Run("unknown route", func(t *testing.T) {
		_, found := data.FindPermissions("/v1/unknown", http.MethodGet)

		assert.False(t, found)
	})

	t.Run("known path with another method", func(t *testing.T) {
		_, found := data.FindPermissions("/v1/night-audits/{id}", http.MethodDelete)

		assert.False(t, found)
	})
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr string
	}{
		{
			name: "valid document",
			raw:  `{"endpoints":[{"path":"/v1/occupancy","method":"GET","permissions":["front_desk"]},{"path":"/v1/status","method":"GET","skip":true}]}`,
		},
		{
			name:    "malformed json",
			raw:     `{"endpoints":[`,
			wantErr: "failed to decode permissions",
		},
		{
			name:    "unknown role",
			raw:     `{"endpoints":[{"path":"/v1/occupancy","method":"GET","permissions":["housekeeper"]}]}`,
			wantErr: `unknown role "housekeeper"`,
		},
		{
			name:    "unknown method",
			raw:     `{"endpoints":[{"path":"/v1/occupancy","method":"FETCH","permissions":["admin"]}]}`,
			wantErr: `unknown method "FETCH"`,
		},
		{
			name:    "relative path",
			raw:     `{"endpoints":[{"path":"v1/occupancy","method":"GET","permissions":["admin"]}]}`,
			wantErr: "must start with /",
		},
		{
			name:    "no role granted",
			raw:     `{"endpoints":[{"path":"/v1/occupancy","method":"GET"}]}`,
			wantErr: "grants no role",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := permissions.Parse([]byte(tt.raw))

			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Len(t, data.Endpoints, 2)

				return
			}

			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
