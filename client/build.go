package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/net/http2"

	"github.com/wirehttp/wirehttp/client/resolve"
	"github.com/wirehttp/wirehttp/client/throttle"
)

// Build constructs a [RequestClient] from the given settings.
//
// Settings groups are applied in a fixed order: structural validation,
// proxy, redirects, timeouts, TLS, DNS overrides, HTTP version forcing,
// and finally the transport's own HTTP/2 configuration. Version forcing
// comes after everything else so a prior-knowledge mode is the final word
// on the wire protocol.
//
// Build is fail-fast: the first setting that cannot be applied aborts
// construction with a descriptive error, and no partially configured
// client is ever returned.
func Build(settings ClientSettings, optFns ...Option) (*RequestClient, error) {
	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying client option: %w", err)
		}
	}
	if opts.logger == nil {
		opts.logger = slog.Default()
	}
	if opts.tracer == nil {
		opts.tracer = noop.NewTracerProvider().Tracer("no-op tracer")
	}

	_, span := opts.tracer.Start(context.Background(), "client.build",
		trace.WithAttributes(attribute.String("http.version_pref", settings.HTTPVersion.String())))
	defer span.End()

	if err := validateSettings(settings); err != nil {
		span.RecordError(err)
		return nil, err
	}

	hc, err := buildHTTPClient(settings, opts.logger)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	rc := &RequestClient{
		hc:            hc,
		id:            uuid.New(),
		version:       settings.HTTPVersion,
		throwOnStatus: settings.ThrowOnStatus,
		cancel:        NewCancelToken(),
	}

	span.SetAttributes(attribute.String("client.id", rc.id.String()))
	opts.logger.Debug("http client built", "id", rc.id, "version", settings.HTTPVersion.String())

	return rc, nil
}

func buildHTTPClient(settings ClientSettings, logger *slog.Logger) (*http.Client, error) {
	hc := &http.Client{}
	dialer := &net.Dialer{}
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: time.Second,
		ForceAttemptHTTP2:     true,
	}

	if p := settings.Proxy; p != nil && p.NoProxy {
		transport.Proxy = nil
	}

	if r := settings.Redirects; r != nil {
		hc.CheckRedirect = redirectPolicy(r)
	}

	var keepAlive, pingInterval time.Duration
	if t := settings.Timeouts; t != nil {
		var err error
		keepAlive, pingInterval, err = applyTimeouts(t, hc, dialer)
		if err != nil {
			return nil, err
		}
	}

	if ts := settings.TLS; ts != nil {
		tlsConf, err := buildTLSConfig(ts)
		if err != nil {
			return nil, err
		}
		transport.TLSClientConfig = tlsConf
	}

	dial := dialer.DialContext
	if d := settings.DNS; d != nil {
		rd, err := buildOverrideDialer(d, dialer)
		if err != nil {
			return nil, err
		}
		dial = rd.DialContext
	}
	transport.DialContext = dial

	switch settings.HTTPVersion {
	case VersionHTTP10, VersionHTTP11:
		transport.ForceAttemptHTTP2 = false
		transport.TLSNextProto = map[string]func(string, *tls.Conn) http.RoundTripper{}
		hc.Transport = transport
	case VersionHTTP2:
		hc.Transport = priorKnowledgeHTTP2(transport.TLSClientConfig, dial, keepAlive, pingInterval)
	case VersionHTTP3:
		return nil, &BuildError{Group: "version", Err: ErrHTTP3Unsupported}
	case VersionAll:
		h2, err := http2.ConfigureTransports(transport)
		if err != nil {
			return nil, &BuildError{Group: "version", Err: fmt.Errorf("%w: %v", ErrBuildFailed, err)}
		}
		applyH2KeepAlive(h2, keepAlive, pingInterval)
		hc.Transport = transport
	default:
		return nil, &BuildError{Group: "version", Err: fmt.Errorf("unknown http version preference %d", settings.HTTPVersion)}
	}

	if th := settings.Throttle; th != nil {
		rt, err := throttle.NewRoundTripper(throttle.Config{RPS: th.RPS, Burst: th.Burst},
			func() *slog.Logger { return logger }, hc.Transport)
		if err != nil {
			return nil, &BuildError{Group: "throttle", Err: err}
		}
		hc.Transport = rt
	}

	return hc, nil
}

// redirectPolicy maps redirect settings onto a CheckRedirect hook.
// NoRedirect surfaces the redirect response itself; a limit follows up
// to that many redirects and errors on the next one. The via slice
// already holds the initial request, so the count of followed redirects
// is len(via), not len(via)+1. Non-positive limits are passed through
// uninterpreted and therefore stop on the first hop.
func redirectPolicy(r *RedirectSettings) func(*http.Request, []*http.Request) error {
	if r.NoRedirect {
		return func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	maxRedirects := r.MaxRedirects

	return func(req *http.Request, via []*http.Request) error {
		if len(via) > maxRedirects {
			return fmt.Errorf("stopped after %d redirects", maxRedirects)
		}
		return nil
	}
}

// applyTimeouts applies the total and connect timeouts and works out the
// keep-alive coupling: a strictly positive keep-alive timeout sets TCP
// keepalive on the dialer and is reported back so the HTTP/2 transport
// can enable idle pings with the same duration. A zero keep-alive timeout
// touches nothing. The ping interval is reported independently.
func applyTimeouts(t *TimeoutSettings, hc *http.Client, dialer *net.Dialer) (keepAlive, pingInterval time.Duration, err error) {
	if t.Timeout != nil {
		d, err := engineDuration("timeout", *t.Timeout)
		if err != nil {
			return 0, 0, err
		}
		hc.Timeout = d
	}

	if t.ConnectTimeout != nil {
		d, err := engineDuration("connectTimeout", *t.ConnectTimeout)
		if err != nil {
			return 0, 0, err
		}
		dialer.Timeout = d
	}

	if t.KeepAliveTimeout != nil {
		d, err := engineDuration("keepAliveTimeout", *t.KeepAliveTimeout)
		if err != nil {
			return 0, 0, err
		}
		if d > 0 {
			dialer.KeepAlive = d
			keepAlive = d
		}
	}

	if t.KeepAlivePing != nil {
		d, err := engineDuration("keepAlivePing", *t.KeepAlivePing)
		if err != nil {
			return 0, 0, err
		}
		pingInterval = d
	}

	return keepAlive, pingInterval, nil
}

// engineDuration rejects durations the transport cannot represent.
func engineDuration(field string, d time.Duration) (time.Duration, error) {
	if d < 0 {
		return 0, &BuildError{Group: "timeouts", Err: fmt.Errorf("%w: %s must not be negative, got %s", ErrInvalidDuration, field, d)}
	}

	return d, nil
}

// applyH2KeepAlive configures HTTP/2 keepalive pings. The transport only
// sends pings while idle when ReadIdleTimeout is set, so the keep-alive
// timeout doubles as the ping interval unless one was given explicitly.
func applyH2KeepAlive(h2 *http2.Transport, keepAlive, pingInterval time.Duration) {
	if keepAlive > 0 {
		h2.PingTimeout = keepAlive
		h2.ReadIdleTimeout = keepAlive
	}
	if pingInterval > 0 {
		h2.ReadIdleTimeout = pingInterval
	}
}

func buildTLSConfig(ts *TLSSettings) (*tls.Config, error) {
	tlsConf := &tls.Config{}

	var pool *x509.CertPool
	switch {
	case !ts.TrustRootCertificates:
		// An empty, non-nil pool removes the platform trust store from
		// consideration; only explicitly supplied roots remain.
		pool = x509.NewCertPool()
	case len(ts.TrustedRootCertificates) > 0:
		var err error
		pool, err = x509.SystemCertPool()
		if err != nil {
			return nil, &BuildError{Group: "tls", Err: fmt.Errorf("loading system trust store: %w", err)}
		}
	}

	for i, pemBytes := range ts.TrustedRootCertificates {
		if ok := pool.AppendCertsFromPEM(pemBytes); !ok {
			return nil, &BuildError{Group: "tls", Err: fmt.Errorf("adding trusted certificate %d: %w", i, ErrInvalidCertificate)}
		}
	}
	if pool != nil {
		tlsConf.RootCAs = pool
	}

	if !ts.VerifyCertificates {
		tlsConf.InsecureSkipVerify = true
	}

	if cc := ts.ClientCertificate; cc != nil {
		identity := bytes.Join([][]byte{cc.Certificate, cc.PrivateKey}, []byte("\n"))
		pair, err := tls.X509KeyPair(identity, identity)
		if err != nil {
			return nil, &BuildError{Group: "tls", Err: fmt.Errorf("parsing client identity: %w: %v", ErrInvalidCertificate, err)}
		}
		tlsConf.Certificates = []tls.Certificate{pair}
	}

	// Version bounds are passed through 1:1. An inverted pair is not
	// detected here; crypto/tls rejects it at handshake time.
	if ts.MinVersion != nil {
		tlsConf.MinVersion = tlsVersionID(*ts.MinVersion)
	}
	if ts.MaxVersion != nil {
		tlsConf.MaxVersion = tlsVersionID(*ts.MaxVersion)
	}

	return tlsConf, nil
}

func tlsVersionID(v TLSVersion) uint16 {
	switch v {
	case TLS13:
		return tls.VersionTLS13
	default:
		return tls.VersionTLS12
	}
}

// buildOverrideDialer turns DNS settings into resolver bindings: one
// Static resolver per overridden hostname, plus an optional catch-all
// fallback. Any unparsable literal aborts the whole build; a hostname is
// never bound to a partial address set.
func buildOverrideDialer(d *DNSSettings, base *net.Dialer) (*resolve.Dialer, error) {
	rd := resolve.NewDialer(base)

	if d.Fallback != "" {
		r, err := resolve.ParseStatic(d.Fallback)
		if err != nil {
			return nil, &BuildError{Group: "dns", Err: fmt.Errorf("fallback: %w", err)}
		}
		rd.SetFallback(r)
	}

	for hostname, addrs := range d.Overrides {
		r, err := resolve.ParseStatic(addrs...)
		if err != nil {
			return nil, &BuildError{Group: "dns", Err: fmt.Errorf("override for %q: %w", hostname, err)}
		}
		rd.Bind(hostname, r)
	}

	return rd, nil
}

type dialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// priorKnowledgeHTTP2 returns a transport that speaks HTTP/2 exclusively:
// plain-text h2c for http targets, and TLS pinned to the h2 protocol for
// https targets. Neither path negotiates an upgrade or falls back.
func priorKnowledgeHTTP2(tlsConf *tls.Config, dial dialFunc, keepAlive, pingInterval time.Duration) http.RoundTripper {
	h2c := &http2.Transport{
		AllowHTTP: true,
		DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
			return dial(ctx, network, addr)
		},
	}

	h2 := &http2.Transport{
		TLSClientConfig: tlsConf,
		DialTLSContext: func(ctx context.Context, network, addr string, cfg *tls.Config) (net.Conn, error) {
			conn, err := dial(ctx, network, addr)
			if err != nil {
				return nil, err
			}
			tlsConn := tls.Client(conn, cfg)
			if err := tlsConn.HandshakeContext(ctx); err != nil {
				conn.Close()
				return nil, err
			}
			return tlsConn, nil
		},
	}

	applyH2KeepAlive(h2c, keepAlive, pingInterval)
	applyH2KeepAlive(h2, keepAlive, pingInterval)

	return &schemeSplitTransport{clear: h2c, secure: h2}
}

// schemeSplitTransport routes plain http requests to the h2c transport
// and everything else to the TLS transport.
type schemeSplitTransport struct {
	clear  http.RoundTripper
	secure http.RoundTripper
}

func (t *schemeSplitTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	if r.URL.Scheme == "http" {
		return t.clear.RoundTrip(r)
	}

	return t.secure.RoundTrip(r)
}
