package cmd

import (
	"errors"
	"fmt"
)

// ErrContractViolation means a guild-scoped invocation arrived without the
// permission data the platform promises to send. It is not an authorization
// failure and callers should not treat it as one.
var ErrContractViolation = errors.New("permission data missing from guild invocation")

// Permissions is a bit set of platform permission flags.
type Permissions int64

// Has reports whether every bit of required is set.
func (p Permissions) Has(required Permissions) bool { return p&required == required }

// Union returns the bits set in either p or o.
func (p Permissions) Union(o Permissions) Permissions { return p | o }

// Intersect returns the bits set in both p and o.
func (p Permissions) Intersect(o Permissions) Permissions { return p & o }

// Missing returns the bits of required that p does not contain.
func (p Permissions) Missing(required Permissions) Permissions { return required &^ p }

// PermissionsInfo holds the capability sets of the author and the bot. A nil
// field means the set is unknown in this context, which is not the same as an
// empty set.
type PermissionsInfo struct {
	Author *Permissions
	Bot    *Permissions
}

// PermissionSource exposes what an invocation context knows about permissions.
type PermissionSource interface {
	GuildScoped() bool
	AuthorPermissions() (Permissions, bool)
	BotPermissions() (Permissions, bool)
}

// Evaluate extracts the author and bot permission sets from src. Outside a
// guild both are nil. Inside a guild both must be present, otherwise the
// returned error wraps ErrContractViolation.
func Evaluate(src PermissionSource) (PermissionsInfo, error) {
	if src == nil || !src.GuildScoped() {
		return PermissionsInfo{}, nil
	}

	author, ok := src.AuthorPermissions()
	if !ok {
		return PermissionsInfo{}, fmt.Errorf("%w: author permissions", ErrContractViolation)
	}
	bot, ok := src.BotPermissions()
	if !ok {
		return PermissionsInfo{}, fmt.Errorf("%w: bot permissions", ErrContractViolation)
	}
	return PermissionsInfo{Author: &author, Bot: &bot}, nil
}
