package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Role is a closed tag. Authorization decisions intersect role sets rather
// than comparing free-form strings.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

var ErrUnknownRole = errors.New("domain: unknown role")

// ParseRole validates a role tag against the closed set.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// ParseRoles parses a slice of tags, rejecting the set if any tag is
// unknown or the set is empty.
func ParseRoles(tags []string) ([]Role, error) {
	if len(tags) == 0 {
		return nil, fmt.Errorf("%w: empty role set", ErrUnknownRole)
	}

	roles := make([]Role, 0, len(tags))
	for _, tag := range tags {
		role, err := ParseRole(tag)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, nil
}

// RolesToStrings converts a role set for claims and JSON bodies.
func RolesToStrings(roles []Role) []string {
	out := make([]string, 0, len(roles))
	for _, role := range roles {
		out = append(out, string(role))
	}
	return out
}
