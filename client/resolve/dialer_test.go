package resolve_test

import (
	"net"
	"net/netip"
	"strings"
	"testing"

	"github.com/wirehttp/wirehttp/client/resolve"
)

func TestDialer_BindingWinsOverFallback(t *testing.T) {
	d := resolve.NewDialer(&net.Dialer{})
	d.Bind("a.test", resolve.NewStatic(netip.MustParseAddr("10.0.0.1")))
	d.SetFallback(resolve.NewStatic(netip.MustParseAddr("10.0.0.2")))

	addrs, ok, err := d.Resolve(t.Context(), "a.test")
	if err != nil || !ok {
		t.Fatalf("Resolve(a.test) = ok %v, err %v", ok, err)
	}
	if got := addrs[0].String(); got != "10.0.0.1" {
		t.Errorf("a.test resolved to %s, want 10.0.0.1", got)
	}

	for _, hostname := range []string{"b.test", "anything.example", "a.test.other"} {
		addrs, ok, err := d.Resolve(t.Context(), hostname)
		if err != nil || !ok {
			t.Fatalf("Resolve(%q) = ok %v, err %v", hostname, ok, err)
		}
		if got := addrs[0].String(); got != "10.0.0.2" {
			t.Errorf("%s resolved to %s, want fallback 10.0.0.2", hostname, got)
		}
	}
}

func TestDialer_NoBindingNoFallback(t *testing.T) {
	d := resolve.NewDialer(&net.Dialer{})
	d.Bind("a.test", resolve.NewStatic(netip.MustParseAddr("10.0.0.1")))

	_, ok, err := d.Resolve(t.Context(), "unbound.test")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if ok {
		t.Error("expected no binding for an unconfigured hostname without fallback")
	}
}

func TestDialer_HostnameNormalization(t *testing.T) {
	d := resolve.NewDialer(&net.Dialer{})
	d.Bind("Mixed.Case.TEST", resolve.NewStatic(netip.MustParseAddr("10.0.0.3")))

	for _, hostname := range []string{"mixed.case.test", "MIXED.CASE.TEST", "mixed.case.test."} {
		addrs, ok, err := d.Resolve(t.Context(), hostname)
		if err != nil || !ok {
			t.Fatalf("Resolve(%q) = ok %v, err %v", hostname, ok, err)
		}
		if got := addrs[0].String(); got != "10.0.0.3" {
			t.Errorf("%s resolved to %s, want 10.0.0.3", hostname, got)
		}
	}
}

func TestDialer_DialContext_RemapsHost(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	defer ln.Close()

	accepted := make(chan struct{})
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			conn.Close()
		}
		close(accepted)
	}()

	_, port, err := net.SplitHostPort(ln.Addr().String())
	if err != nil {
		t.Fatalf("failed to split listener address: %v", err)
	}

	d := resolve.NewDialer(&net.Dialer{})
	d.Bind("service.test", resolve.NewStatic(netip.MustParseAddr("127.0.0.1")))

	conn, err := d.DialContext(t.Context(), "tcp", net.JoinHostPort("service.test", port))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	conn.Close()

	<-accepted
}

func TestDialer_DialContext_LiteralBypassesFallback(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	defer ln.Close()

	accepted := make(chan struct{})
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			conn.Close()
		}
		close(accepted)
	}()

	d := resolve.NewDialer(&net.Dialer{})
	d.SetFallback(resolve.NewStatic(netip.MustParseAddr("192.0.2.1")))

	conn, err := d.DialContext(t.Context(), "tcp", ln.Addr().String())
	if err != nil {
		t.Fatalf("expected the literal address to dial unchanged, got: %v", err)
	}
	conn.Close()

	<-accepted
}

func TestDialer_DialContext_EmptyAddressSet(t *testing.T) {
	d := resolve.NewDialer(&net.Dialer{})
	d.Bind("empty.test", resolve.NewStatic())

	_, err := d.DialContext(t.Context(), "tcp", "empty.test:80")
	if err == nil {
		t.Fatal("expected error for resolver with no addresses")
	}
	if !strings.Contains(err.Error(), "no addresses") {
		t.Errorf("unexpected error: %v", err)
	}
}
