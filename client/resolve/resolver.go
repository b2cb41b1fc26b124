package resolve

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
)

// ErrInvalidAddress is wrapped by [ParseStatic] when a supplied literal
// does not parse as an IP address.
var ErrInvalidAddress = errors.New("invalid address literal")

// Resolver answers name lookups for the override [Dialer].
// Implementations must be safe for concurrent use.
type Resolver interface {
	Resolve(ctx context.Context, hostname string) ([]netip.Addr, error)
}

// Static is a [Resolver] bound to a fixed, immutable address set. It
// ignores the hostname it is asked about, performs no network I/O, and
// never fails. The same mechanism serves both a per-hostname override and
// a catch-all fallback; only the binding scope on the [Dialer] differs.
type Static struct {
	addrs []netip.Addr
}

// NewStatic returns a Static resolver bound to the given addresses.
func NewStatic(addrs ...netip.Addr) Static {
	bound := make([]netip.Addr, len(addrs))
	copy(bound, addrs)

	return Static{addrs: bound}
}

// ParseStatic parses each literal as an IP address and returns a Static
// resolver bound to the result. Any literal that fails to parse aborts
// with an error naming it; no partial address set is ever bound.
func ParseStatic(literals ...string) (Static, error) {
	addrs := make([]netip.Addr, 0, len(literals))
	for _, lit := range literals {
		addr, err := netip.ParseAddr(lit)
		if err != nil {
			return Static{}, fmt.Errorf("%w %q: %w", ErrInvalidAddress, lit, err)
		}
		addrs = append(addrs, addr)
	}

	return Static{addrs: addrs}, nil
}

// Resolve returns the bound address set. The hostname is ignored.
func (s Static) Resolve(context.Context, string) ([]netip.Addr, error) {
	return s.addrs, nil
}

// Addrs returns a copy of the bound address set.
func (s Static) Addrs() []netip.Addr {
	addrs := make([]netip.Addr, len(s.addrs))
	copy(addrs, s.addrs)

	return addrs
}
