// Package client turns a declarative [ClientSettings] value into a
// ready-to-use HTTP client handle.
//
// # Building a Client
//
// Describe the desired behavior in settings and hand them to [Build]:
//
//	settings := client.DefaultSettings()
//	settings.Redirects = client.NoRedirects()
//	settings.DNS = &client.DNSSettings{
//		Overrides: map[string][]string{"internal.test": {"10.0.0.1"}},
//	}
//
//	rc, err := client.Build(settings)
//
// Every settings group is independently optional; a nil group keeps the
// transport's default behavior. Construction is fail-fast: the first
// value that cannot be applied (an unparsable certificate, an invalid
// address literal, a negative duration) aborts with a descriptive error
// and no client is returned.
//
// # Using the Handle
//
// The returned [RequestClient] is immutable and safe for concurrent use.
// Request-issuing code reaches the configured [net/http.Client] through
// [RequestClient.HTTPClient]; the HTTP version preference and the
// throw-on-status flag are retained on the handle for that code to
// consult. [RequestClient.Clone] is cheap — clones share the connection
// pool and the same [CancelToken], so cancelling through any clone is
// observed by all of them.
//
// # DNS Overrides
//
// DNS settings pin hostnames to literal addresses without consulting the
// system resolver: per-hostname overrides always win for their hostname,
// and an optional fallback address answers everything else. See the
// [github.com/wirehttp/wirehttp/client/resolve] package.
package client
