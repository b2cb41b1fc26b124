package client

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// RequestClient is the handle returned by [Build]: the configured
// [http.Client], the HTTP version preference and status-throw flag
// retained for request-issuing code, and the client's cancellation token.
//
// A handle is immutable once built and safe for concurrent use. [Clone]
// is cheap: clones share the underlying http.Client (and therefore its
// connection pool) and the same [CancelToken] instance.
type RequestClient struct {
	hc            *http.Client
	id            uuid.UUID
	version       VersionPref
	throwOnStatus bool
	cancel        *CancelToken
}

// NewDefault builds a client from [DefaultSettings]. Default settings
// carry no certificate or address material, so construction cannot fail.
func NewDefault() *RequestClient {
	rc, err := Build(DefaultSettings())
	if err != nil {
		panic(fmt.Sprintf("client: building default settings: %v", err))
	}

	return rc
}

// Clone returns a handle sharing this client's transport, connection
// pool, and cancellation token.
func (c *RequestClient) Clone() *RequestClient {
	cpy := *c

	return &cpy
}

// HTTPClient returns the underlying [http.Client] for issuing requests.
func (c *RequestClient) HTTPClient() *http.Client {
	return c.hc
}

// HTTPVersion returns the version preference the client was built with.
func (c *RequestClient) HTTPVersion() VersionPref {
	return c.version
}

// ThrowOnStatus reports whether request-issuing code should treat non-2xx
// responses as errors.
func (c *RequestClient) ThrowOnStatus() bool {
	return c.throwOnStatus
}

// CancelToken returns the token shared by this handle and all its clones.
func (c *RequestClient) CancelToken() *CancelToken {
	return c.cancel
}

// ID identifies the built client in logs and traces. Clones keep the id
// of the client they were cloned from.
func (c *RequestClient) ID() uuid.UUID {
	return c.id
}
