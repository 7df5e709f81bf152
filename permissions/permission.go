// Package permissions holds the route table used by the RBAC middleware.
package permissions

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

var (
	ErrInvalidEndpoint   = errors.New("invalid endpoint")
	ErrDuplicateEndpoint = errors.New("duplicate endpoint")
)

var knownMethods = []string{
	http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete,
}

// Permission lists the roles allowed on a route pattern. Skip marks a public route.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

// Allows reports whether role may call the route. An empty role list admits any signed in caller.
func (p Permission) Allows(role string) bool {
	return p.Skip || len(p.Permissions) == 0 || slices.Contains(p.Permissions, role)
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	index map[string]int
}

func key(path, method string) string {
	return strings.ToUpper(method) + " " + path
}

// FindPermissions returns the entry for a chi route pattern, or the zero Permission
// (authenticated, any role) when the route is not listed.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	idx, ok := r.index[key(path, method)]
	if !ok {
		return Permission{}
	}

	return r.Endpoints[idx]
}

// Parse decodes and checks a route table. Every endpoint needs an absolute path
// and a known method, and a method and path pair may appear once.
func Parse(data []byte) (*PermissionData, error) {
	var permissions PermissionData

	if err := json.Unmarshal(data, &permissions); err != nil {
		return nil, fmt.Errorf("failed to decode permissions: %w", err)
	}

	permissions.index = make(map[string]int, len(permissions.Endpoints))

	for idx, endpoint := range permissions.Endpoints {
		if !strings.HasPrefix(endpoint.Path, "/") || !slices.Contains(knownMethods, strings.ToUpper(endpoint.Method)) {
			return nil, fmt.Errorf("%w: %s %s", ErrInvalidEndpoint, endpoint.Method, endpoint.Path)
		}

		k := key(endpoint.Path, endpoint.Method)
		if _, exists := permissions.index[k]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateEndpoint, k)
		}

		permissions.index[k] = idx
	}

	return &permissions, nil
}

func Get() *PermissionData {
	permissions, err := Parse(permissionsData)
	if err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return permissions
}
