package cmd

import "context"

// PrefixFunc computes the prefix for a guild. An empty guildID means a
// direct-message context.
type PrefixFunc func(ctx context.Context, guildID string) (string, error)

// Prefix is either a fixed string or a callback. When both are set, Fixed wins.
type Prefix struct {
	Fixed   string
	Dynamic PrefixFunc
}

// FixedPrefix returns a strategy that always yields p.
func FixedPrefix(p string) Prefix { return Prefix{Fixed: p} }

// DynamicPrefix returns a strategy backed by fn.
func DynamicPrefix(fn PrefixFunc) Prefix { return Prefix{Dynamic: fn} }

// Resolve returns the prefix for guildID. ok is false when no prefix is
// configured, the callback fails or it returns an empty string.
func (p Prefix) Resolve(ctx context.Context, guildID string) (prefix string, ok bool) {
	if p.Fixed != "" {
		return p.Fixed, true
	}
	if p.Dynamic == nil {
		return "", false
	}
	prefix, err := p.Dynamic(ctx, guildID)
	if err != nil || prefix == "" {
		return "", false
	}
	return prefix, true
}
