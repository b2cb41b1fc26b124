package resolve

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"strings"
)

// Dialer routes connections through per-hostname resolver bindings before
// handing off to a base [net.Dialer]. Bindings are installed while the
// owning client is being constructed and must not change afterward; a
// fully built Dialer is read-only and safe for concurrent dials.
type Dialer struct {
	base     *net.Dialer
	bindings map[string]Resolver
	fallback Resolver
}

// NewDialer returns a Dialer with no bindings, dialing through base.
func NewDialer(base *net.Dialer) *Dialer {
	return &Dialer{
		base:     base,
		bindings: make(map[string]Resolver),
	}
}

// Bind installs r as the resolver for exactly the given hostname. A bound
// hostname always wins over the fallback; the two are distinct binding
// scopes, not a priority list consulted at lookup time.
func (d *Dialer) Bind(hostname string, r Resolver) {
	d.bindings[canonicalHost(hostname)] = r
}

// SetFallback installs r as the catch-all resolver for every hostname
// without its own binding.
func (d *Dialer) SetFallback(r Resolver) {
	d.fallback = r
}

// Resolve reports the addresses hostname would dial to, or false when no
// binding applies and the system resolver would be used instead.
func (d *Dialer) Resolve(ctx context.Context, hostname string) ([]netip.Addr, bool, error) {
	r, ok := d.lookup(hostname)
	if !ok {
		return nil, false, nil
	}

	addrs, err := r.Resolve(ctx, hostname)

	return addrs, true, err
}

// DialContext implements the transport dial hook. The host part of address
// is remapped through the matching binding, keeping the original port; an
// address that is already a literal or has no binding dials unchanged.
func (d *Dialer) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	host, port, err := net.SplitHostPort(address)
	if err != nil {
		return d.base.DialContext(ctx, network, address)
	}

	// Literal addresses need no resolution and must not be remapped
	// by a catch-all binding.
	if _, err := netip.ParseAddr(host); err == nil {
		return d.base.DialContext(ctx, network, address)
	}

	r, ok := d.lookup(host)
	if !ok {
		return d.base.DialContext(ctx, network, address)
	}

	addrs, err := r.Resolve(ctx, host)
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", host, err)
	}
	if len(addrs) == 0 {
		return nil, fmt.Errorf("resolver returned no addresses for %q", host)
	}

	var firstErr error
	for _, addr := range addrs {
		conn, err := d.base.DialContext(ctx, network, net.JoinHostPort(addr.String(), port))
		if err == nil {
			return conn, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}

	return nil, firstErr
}

func (d *Dialer) lookup(hostname string) (Resolver, bool) {
	if r, ok := d.bindings[canonicalHost(hostname)]; ok {
		return r, true
	}
	if d.fallback != nil {
		return d.fallback, true
	}

	return nil, false
}

// canonicalHost normalizes a hostname the way DNS matching does:
// case-insensitive, trailing root dot ignored.
func canonicalHost(hostname string) string {
	return strings.TrimSuffix(strings.ToLower(hostname), ".")
}
