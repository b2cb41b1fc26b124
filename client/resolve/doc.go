// Package resolve provides static name-resolution overrides for an HTTP
// client's dial path.
//
// A [Static] resolver is bound to a fixed address set at construction time
// and answers every lookup with that set, ignoring the hostname entirely.
// It never queries the network and never fails.
//
// A [Dialer] installs resolvers into a transport: per-hostname bindings
// answer lookups for exactly one hostname, an optional fallback answers
// everything else, and hostnames with no binding at all dial through the
// base dialer unchanged:
//
//	d := resolve.NewDialer(&net.Dialer{})
//	d.Bind("internal.test", resolve.NewStatic(addr))
//	transport := &http.Transport{DialContext: d.DialContext}
//
// Ports are never part of resolution; the port from the dial address is
// reattached to whichever address the resolver produced.
package resolve
