package resolve_test

import (
	"errors"
	"net/netip"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/wirehttp/wirehttp/client/resolve"
)

func TestStatic_IgnoresHostname(t *testing.T) {
	r, err := resolve.ParseStatic("9.9.9.9")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	want := []netip.Addr{netip.MustParseAddr("9.9.9.9")}

	for _, hostname := range []string{"example.test", "totally.different.test", ""} {
		got, err := r.Resolve(t.Context(), hostname)
		if err != nil {
			t.Fatalf("Resolve(%q): expected no error, got: %v", hostname, err)
		}
		if diff := cmp.Diff(want, got, cmpopts.EquateComparable(netip.Addr{})); diff != "" {
			t.Errorf("Resolve(%q) mismatch (-want +got):\n%s", hostname, diff)
		}
	}
}

func TestParseStatic_PreservesOrder(t *testing.T) {
	r, err := resolve.ParseStatic("10.0.0.1", "10.0.0.2", "fd00::1")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	want := []netip.Addr{
		netip.MustParseAddr("10.0.0.1"),
		netip.MustParseAddr("10.0.0.2"),
		netip.MustParseAddr("fd00::1"),
	}
	if diff := cmp.Diff(want, r.Addrs(), cmpopts.EquateComparable(netip.Addr{})); diff != "" {
		t.Errorf("Addrs mismatch (-want +got):\n%s", diff)
	}
}

func TestParseStatic_InvalidLiteral(t *testing.T) {
	_, err := resolve.ParseStatic("1.2.3.4", "not-an-ip")
	if err == nil {
		t.Fatal("expected error for invalid literal")
	}
	if !errors.Is(err, resolve.ErrInvalidAddress) {
		t.Errorf("expected ErrInvalidAddress, got: %v", err)
	}
	if !strings.Contains(err.Error(), "not-an-ip") {
		t.Errorf("error should name the offending literal, got: %v", err)
	}
}
