// Package navigation decides where a station tablet may go.
package navigation

import (
	"strings"

	"station-request-api-server/internal/models"
)

const (
	Login             = "/login"
	History           = "/history"
	CreateRequest     = "/history/create"
	Checkout          = "/history/checkout"
	ContainerRequest  = "/history/container"
	ContainerCheckout = "/history/container-checkout"
	ReturnTrolley     = "/history/return-trolley"
	Staging           = "/staging"
	Inventory         = "/inventory"
	Approvals         = "/approvals"
	Settings          = "/settings"
	Profile           = "/profile"
)

var authenticated = map[string]bool{
	History:           true,
	CreateRequest:     true,
	Checkout:          true,
	ContainerRequest:  true,
	ContainerCheckout: true,
	ReturnTrolley:     true,
	Staging:           true,
	Inventory:         true,
	Approvals:         true,
	Settings:          true,
	Profile:           true,
}

// Home is the landing route of a role.
func Home(role models.Role) string {
	if role == models.RoleApprover {
		return Approvals
	}
	return History
}

// Resolve returns the route actually shown for path. A nil identity means
// nobody is logged in.
func Resolve(path string, identity *models.Identity) string {
	p := normalize(path)
	if identity == nil {
		return Login
	}
	if p == Login || p == "/" || !authenticated[p] {
		return Home(identity.Role)
	}
	return p
}

// Allowed reports whether path is shown as is.
func Allowed(path string, identity *models.Identity) bool {
	return Resolve(path, identity) == normalize(path)
}

func normalize(path string) string {
	p := strings.TrimSpace(path)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			p = "/"
		}
	}
	return p
}
