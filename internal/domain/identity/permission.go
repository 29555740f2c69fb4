package identity

import (
	"regexp"
	"sort"
	"strings"

	"github.com/assetops/backend/internal/domain/shared"
)

// Wildcard matches any resource or action
const Wildcard = "*"

// AdminRoleCode is the code of the seeded system role that holds *:*
const AdminRoleCode = "ADMIN"

// Standard actions
const (
	ActionRead   = "read"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

var permissionPart = regexp.MustCompile(`^([a-z][a-z0-9_]*|\*)$`)

// Resources lists every resource guarded by the permission catalog
var Resources = []string{
	"tenant", "user", "role", "department",
	"category", "location", "cost_centre", "asset", "wip_asset",
	"budget", "forex_rate", "depreciation",
	"partner", "contract", "lease",
	"short_url", "qr_code", "report_template", "notification",
}

// Permission represents a functional permission (resource:action pattern)
// It is a value object
type Permission struct {
	Code        string `json:"code"`
	Resource    string `json:"resource"`
	Action      string `json:"action"`
	Description string `json:"description"`
}

// NewPermission creates a new Permission value object
func NewPermission(resource, action string) (Permission, error) {
	resource = strings.ToLower(strings.TrimSpace(resource))
	action = strings.ToLower(strings.TrimSpace(action))
	if !permissionPart.MatchString(resource) {
		return Permission{}, shared.NewDomainError("INVALID_PERMISSION_RESOURCE", "Permission resource must be lowercase letters, digits and underscores, or *")
	}
	if !permissionPart.MatchString(action) {
		return Permission{}, shared.NewDomainError("INVALID_PERMISSION_ACTION", "Permission action must be lowercase letters, digits and underscores, or *")
	}
	return Permission{
		Code:     resource + ":" + action,
		Resource: resource,
		Action:   action,
	}, nil
}

// ParsePermission creates a Permission from a code string (e.g., "asset:create")
func ParsePermission(code string) (Permission, error) {
	resource, action, ok := strings.Cut(code, ":")
	if !ok {
		return Permission{}, shared.NewDomainError("INVALID_PERMISSION_CODE", "Permission code must be in format 'resource:action'")
	}
	return NewPermission(resource, action)
}

// Grants reports whether the permission covers the required resource:action code
func (p Permission) Grants(required string) bool {
	resource, action, ok := strings.Cut(required, ":")
	if !ok {
		return false
	}
	return (p.Resource == Wildcard || p.Resource == resource) &&
		(p.Action == Wildcard || p.Action == action)
}

// Allows reports whether any of the granted codes covers required.
// Malformed granted codes are ignored.
func Allows(granted []string, required string) bool {
	for _, code := range granted {
		p, err := ParsePermission(code)
		if err != nil {
			continue
		}
		if p.Grants(required) {
			return true
		}
	}
	return false
}

// PermissionCatalog returns every grantable resource:action pair, sorted by code
func PermissionCatalog() []Permission {
	actions := []string{ActionRead, ActionCreate, ActionUpdate, ActionDelete}
	catalog := make([]Permission, 0, len(Resources)*len(actions))
	for _, resource := range Resources {
		label := strings.ReplaceAll(resource, "_", " ")
		for _, action := range actions {
			catalog = append(catalog, Permission{
				Code:        resource + ":" + action,
				Resource:    resource,
				Action:      action,
				Description: strings.ToUpper(action[:1]) + action[1:] + " " + label + " records",
			})
		}
	}
	sort.Slice(catalog, func(i, j int) bool { return catalog[i].Code < catalog[j].Code })
	return catalog
}
