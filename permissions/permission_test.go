package permissions_test

import (
	"hotel/permissions"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)
	assert.NotEmpty(t, data.Endpoints)
}

func TestFindPermissions(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	tests := []struct {
		name      string
		path      string
		method    string
		wantSkip  bool
		wantRoles []string
	}{
		{name: "public booking creation", path: "/v1/bookings/", method: http.MethodPost, wantSkip: true},
		{name: "admin booking list", path: "/v1/bookings/", method: http.MethodGet, wantRoles: []string{"admin"}},
		{name: "own bookings", path: "/v1/bookings/my-bookings", method: http.MethodGet, wantRoles: []string{"admin", "user"}},
		{name: "receipt", path: "/v1/bookings/{id}/receipt", method: http.MethodGet, wantRoles: []string{"admin", "user"}},
		{name: "public contact form", path: "/v1/contacts", method: http.MethodPost, wantSkip: true},
		{name: "unknown route", path: "/v1/unknown", method: http.MethodGet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			permission := data.FindPermissions(tt.path, tt.method)

			assert.Equal(t, tt.wantSkip, permission.Skip)
			assert.Equal(t, tt.wantRoles, permission.Permissions)
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("rejects malformed json", func(t *testing.T) {
		_, err := permissions.Parse([]byte(`{"endpoints":`))
		require.Error(t, err)
	})

	t.Run("rejects duplicate routes", func(t *testing.T) {
		_, err := permissions.Parse([]byte(`{"endpoints":[
			{"path":"/v1/rooms","method":"GET","skip":true},
			{"path":"/v1/rooms/","method":"get","skip":true}
		]}`))
		require.ErrorContains(t, err, "duplicate permission for GET /v1/rooms")
	})

	t.Run("matches method case-insensitively", func(t *testing.T) {
		data, err := permissions.Parse([]byte(`{"endpoints":[{"path":"/v1/rooms/{id}","method":"delete","permissions":["admin"]}]}`))
		require.NoError(t, err)

		assert.Equal(t, []string{"admin"}, data.FindPermissions("/v1/rooms/{id}/", http.MethodDelete).Permissions)
	})
}

func TestPermissionAllows(t *testing.T) {
	adminOnly := permissions.Permission{Permissions: []string{"admin"}}

	assert.True(t, adminOnly.Allows("admin"))
	assert.False(t, adminOnly.Allows("user"))
	assert.False(t, adminOnly.Allows(""))
	assert.True(t, permissions.Permission{}.Allows("user"))
}
