package client

import "time"

// VersionPref selects how the built client negotiates the HTTP protocol
// version on the wire.
type VersionPref int

const (
	// VersionAll leaves negotiation to the transport (ALPN where TLS is in play).
	VersionAll VersionPref = iota
	// VersionHTTP10 restricts the client to HTTP/1.
	VersionHTTP10
	// VersionHTTP11 restricts the client to HTTP/1.
	VersionHTTP11
	// VersionHTTP2 forces HTTP/2 with prior knowledge: no upgrade
	// negotiation and no ALPN fallback.
	VersionHTTP2
	// VersionHTTP3 forces HTTP/3 with prior knowledge. The net/http
	// transport has no HTTP/3 support, so building with this preference
	// fails with [ErrHTTP3Unsupported].
	VersionHTTP3
)

func (v VersionPref) String() string {
	switch v {
	case VersionAll:
		return "all"
	case VersionHTTP10:
		return "http/1.0"
	case VersionHTTP11:
		return "http/1.1"
	case VersionHTTP2:
		return "http/2"
	case VersionHTTP3:
		return "http/3"
	default:
		return "unknown"
	}
}

// TLSVersion names a TLS protocol version bound.
type TLSVersion int

const (
	TLS12 TLSVersion = iota + 1
	TLS13
)

func (v TLSVersion) String() string {
	switch v {
	case TLS12:
		return "tls1.2"
	case TLS13:
		return "tls1.3"
	default:
		return "unknown"
	}
}

// ClientSettings declares the desired behavior of a client before it is
// built. Every sub-group is independently optional: a nil group means
// "use the transport's default", not "disabled". No field combination is
// invalid at this layer; [Build] validates derived values and rejects
// anything it cannot apply.
type ClientSettings struct {
	HTTPVersion VersionPref `json:"httpVersion"`

	// ThrowOnStatus is retained on the built handle for request-issuing
	// code to decide whether non-2xx responses become errors.
	ThrowOnStatus bool `json:"throwOnStatus"`

	Timeouts  *TimeoutSettings  `json:"timeouts,omitempty"`
	Proxy     *ProxySettings    `json:"proxy,omitempty"`
	Redirects *RedirectSettings `json:"redirects,omitempty"`
	TLS       *TLSSettings      `json:"tls,omitempty"`
	DNS       *DNSSettings      `json:"dns,omitempty"`
	Throttle  *ThrottleSettings `json:"throttle,omitempty"`
}

// DefaultSettings returns the canonical default configuration: all HTTP
// versions, no timeouts, throw-on-status enabled, and no proxy, redirect,
// TLS, DNS, or throttle overrides.
func DefaultSettings() ClientSettings {
	return ClientSettings{
		HTTPVersion:   VersionAll,
		ThrowOnStatus: true,
	}
}

// TimeoutSettings groups the client's timeout and keepalive durations.
// Each is independently optional.
type TimeoutSettings struct {
	// Timeout bounds an entire request, from dial to body close.
	Timeout *time.Duration `json:"timeout,omitempty"`

	// ConnectTimeout bounds the dial of a single connection.
	ConnectTimeout *time.Duration `json:"connectTimeout,omitempty"`

	// KeepAliveTimeout, when strictly positive, sets the TCP keepalive
	// period and additionally enables HTTP/2 keepalive pings on idle
	// connections with the same duration as the ping timeout, so pooled
	// HTTP/2 connections are not silently dropped by intermediaries.
	// A zero duration disables all three effects.
	KeepAliveTimeout *time.Duration `json:"keepAliveTimeout,omitempty"`

	// KeepAlivePing sets the HTTP/2 keepalive ping interval, applied
	// independently of KeepAliveTimeout.
	KeepAlivePing *time.Duration `json:"keepAlivePing,omitempty"`
}

// ProxySettings controls proxy selection. The only mode currently defined
// is NoProxy.
type ProxySettings struct {
	// NoProxy disables all proxying, including proxies the transport
	// would otherwise derive from the environment.
	NoProxy bool `json:"noProxy"`
}

// RedirectSettings controls redirect following.
type RedirectSettings struct {
	// NoRedirect stops on the first redirect response instead of
	// following it.
	NoRedirect bool `json:"noRedirect"`

	// MaxRedirects caps how many redirects are followed when NoRedirect
	// is false. Non-positive values are passed through to the redirect
	// policy uninterpreted; the policy then stops on the first hop.
	MaxRedirects int `json:"maxRedirects"`
}

// NoRedirects returns a RedirectSettings that stops on redirect responses.
func NoRedirects() *RedirectSettings {
	return &RedirectSettings{NoRedirect: true}
}

// LimitedRedirects returns a RedirectSettings following at most n redirects.
func LimitedRedirects(n int) *RedirectSettings {
	return &RedirectSettings{MaxRedirects: n}
}

// TLSSettings groups certificate trust, identity, and protocol bounds.
//
// MinVersion and MaxVersion are passed through without cross-checking;
// an inverted pair (min above max) is rejected by crypto/tls at handshake
// time rather than at construction time.
type TLSSettings struct {
	// TrustRootCertificates controls whether the platform trust store is
	// consulted. When false, only certificates listed in
	// TrustedRootCertificates are trusted.
	TrustRootCertificates bool `json:"trustRootCertificates"`

	// TrustedRootCertificates holds PEM-encoded certificates to trust in
	// addition to (or, with TrustRootCertificates false, instead of) the
	// platform store.
	TrustedRootCertificates [][]byte `json:"trustedRootCertificates,omitempty"`

	// VerifyCertificates set to false disables all certificate
	// validation, hostname checks included. Unsafe on untrusted networks.
	VerifyCertificates bool `json:"verifyCertificates"`

	ClientCertificate *ClientCertificate `json:"clientCertificate,omitempty"`

	MinVersion *TLSVersion `json:"minVersion,omitempty"`
	MaxVersion *TLSVersion `json:"maxVersion,omitempty"`
}

// ClientCertificate is a mutual-TLS identity: a PEM certificate and its
// PEM private key. The two are concatenated with a newline and parsed as
// one combined identity blob during construction.
type ClientCertificate struct {
	Certificate []byte `json:"certificate" validate:"required"`
	PrivateKey  []byte `json:"privateKey" validate:"required"`
}

// DNSSettings pins or remaps hostnames to literal addresses without
// touching the system resolver.
type DNSSettings struct {
	// Overrides maps a hostname to the ordered, non-empty list of literal
	// IP addresses its resolution must return.
	Overrides map[string][]string `json:"overrides,omitempty" validate:"omitempty,dive,gt=0,dive,required"`

	// Fallback, when non-empty, is a literal IP address used to resolve
	// every hostname not listed in Overrides.
	Fallback string `json:"fallback,omitempty"`
}

// ThrottleSettings enables client-side token-bucket rate limiting of
// outbound requests.
type ThrottleSettings struct {
	RPS   int `json:"rps" validate:"gt=0"`
	Burst int `json:"burst" validate:"gt=0"`
}
