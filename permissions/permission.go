package permissions

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"pms/shared/constant"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

var (
	errInvalidEndpoint = errors.New("invalid permission endpoint")
	knownRoles         = []string{constant.RoleSuperAdmin, constant.RoleAdmin, constant.RoleNightAuditor, constant.RoleFrontDesk}
	knownMethods       = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}
)

type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

// Allows reports whether role may call the endpoint.
func (p Permission) Allows(role string) bool {
	return p.Skip || slices.Contains(p.Permissions, role)
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`
}

// FindPermissions matches a chi route pattern. Subrouter roots resolve with a trailing
// slash, so it is ignored on both sides. Routes without an entry are not found and
// must be denied by the caller.
func (r *PermissionData) FindPermissions(path, method string) (Permission, bool) {
	path = strings.TrimSuffix(path, "/")

	idx := slices.IndexFunc(r.Endpoints, func(rp Permission) bool {
		return strings.TrimSuffix(rp.Path, "/") == path && strings.EqualFold(rp.Method, method)
	})

	if idx == -1 {
		return Permission{}, false
	}

	return r.Endpoints[idx], true
}

func (r *PermissionData) validate() error {
	for _, endpoint := range r.Endpoints {
		if !strings.HasPrefix(endpoint.Path, "/") {
			return fmt.Errorf("%w: path %q must start with /", errInvalidEndpoint, endpoint.Path)
		}

		if !slices.Contains(knownMethods, strings.ToUpper(endpoint.Method)) {
			return fmt.Errorf("%w: %s has unknown method %q", errInvalidEndpoint, endpoint.Path, endpoint.Method)
		}

		if !endpoint.Skip && len(endpoint.Permissions) == 0 {
			return fmt.Errorf("%w: %s %s grants no role", errInvalidEndpoint, endpoint.Method, endpoint.Path)
		}

		for _, role := range endpoint.Permissions {
			if !slices.Contains(knownRoles, role) {
				return fmt.Errorf("%w: %s %s grants unknown role %q", errInvalidEndpoint, endpoint.Method, endpoint.Path, role)
			}
		}
	}

	return nil
}

// Parse decodes and validates a permissions document.
func Parse(raw []byte) (*PermissionData, error) {
	var permissions PermissionData

	if err := json.Unmarshal(raw, &permissions); err != nil {
		return nil, fmt.Errorf("failed to decode permissions: %w", err)
	}

	if err := permissions.validate(); err != nil {
		return nil, err
	}

	return &permissions, nil
}

func Get() *PermissionData {
	permissions, err := Parse(permissionsData)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load embedded permissions")
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return permissions
}
