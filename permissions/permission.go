package permissions

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var embedded []byte

// Permission lists the roles allowed on one route. Skip marks the route public.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

// Allows reports whether role may call the route. A route without roles only needs a signed-in caller.
func (p Permission) Allows(role string) bool {
	return len(p.Permissions) == 0 || slices.Contains(p.Permissions, role)
}

type route struct {
	method string
	path   string
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	index map[route]int
}

// Parse decodes a permission table and indexes it by method and route pattern.
func Parse(raw []byte) (*PermissionData, error) {
	var data PermissionData

	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode permissions: %w", err)
	}

	data.index = make(map[route]int, len(data.Endpoints))

	for i, endpoint := range data.Endpoints {
		key := newRoute(endpoint.Path, endpoint.Method)
		if _, ok := data.index[key]; ok {
			return nil, fmt.Errorf("duplicate permission for %s %s", key.method, key.path)
		}

		data.index[key] = i
	}

	return &data, nil
}

// FindPermissions matches a chi route pattern. A trailing slash is not significant.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	if i, ok := r.index[newRoute(path, method)]; ok {
		return r.Endpoints[i]
	}

	return Permission{}
}

func newRoute(path, method string) route {
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	return route{method: strings.ToUpper(method), path: path}
}

// Get loads the table compiled into the binary.
func Get() *PermissionData {
	data, err := Parse(embedded)
	if err != nil {
		log.Err(err).Msg("Failed to load embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(data.Endpoints)).Msg("Successfully loaded embedded permissions")

	return data
}
