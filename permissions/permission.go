package permissions

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"galpao/shared/constant"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

var knownRoles = []string{constant.RoleAdmin, constant.RoleStudent}

// Permission lists the roles allowed on one route pattern. Skip marks public routes.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

// Allows reports whether role may call the route. An empty role list allows any authenticated caller.
func (p Permission) Allows(role string) bool {
	return len(p.Permissions) == 0 || slices.Contains(p.Permissions, role)
}

func (p Permission) validate() error {
	if p.Method == "" || !strings.HasPrefix(p.Path, "/") {
		return fmt.Errorf("endpoint %q %q: method and absolute path are required", p.Method, p.Path)
	}

	for _, role := range p.Permissions {
		if !slices.Contains(knownRoles, role) {
			return fmt.Errorf("endpoint %s %s: unknown role %q", p.Method, p.Path, role)
		}
	}

	return nil
}

// PermissionData is the route table. Skip disables authorization for every route.
type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	index map[string]Permission
}

func routeKey(method, path string) string {
	return strings.ToUpper(method) + " " + path
}

// Find returns the entry for a chi route pattern, or the zero Permission when
// the route is not listed.
func (r *PermissionData) Find(method, path string) Permission {
	return r.index[routeKey(method, path)]
}

func Get() *PermissionData {
	permissions, err := Parse(permissionsData)
	if err != nil {
		log.Error().Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return permissions
}

// Parse decodes a route table and rejects malformed, duplicated or unknown-role entries.
func Parse(data []byte) (*PermissionData, error) {
	var permissions PermissionData

	if err := json.Unmarshal(data, &permissions); err != nil {
		return nil, fmt.Errorf("failed to decode permissions: %w", err)
	}

	permissions.index = make(map[string]Permission, len(permissions.Endpoints))

	for _, endpoint := range permissions.Endpoints {
		if err := endpoint.validate(); err != nil {
			return nil, err
		}

		key := routeKey(endpoint.Method, endpoint.Path)
		if _, dup := permissions.index[key]; dup {
			return nil, fmt.Errorf("endpoint %s listed twice", key)
		}

		permissions.index[key] = endpoint
	}

	return &permissions, nil
}
