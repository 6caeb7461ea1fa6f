package backend

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/net/proxy"
)

// HTTPOptions configures the http.Client built by NewHTTPClient.
type HTTPOptions struct {
	// Timeout bounds each request end to end. Zero means no timeout.
	Timeout time.Duration

	// ProxyAddress routes requests through a SOCKS5 proxy ("host:port").
	// Empty means direct connections.
	ProxyAddress string

	// UserAgent is set on every request that does not already carry one.
	UserAgent string
}

// NewHTTPClient creates an HTTP client for talking to the backend.
//
// When ProxyAddress is set, every connection is dialed through the SOCKS5
// proxy. This lets an operator reach a backend on a private network through
// an SSH or Tor SOCKS port without changing the backend origin.
func NewHTTPClient(opts HTTPOptions) (*http.Client, error) {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
	}

	if opts.ProxyAddress != "" {
		if err := ValidateProxyAddress(opts.ProxyAddress); err != nil {
			return nil, err
		}
		// Tor and ssh -D SOCKS ports do not require authentication.
		dialer, err := proxy.SOCKS5("tcp", opts.ProxyAddress, nil, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
		}
		transport.Proxy = nil
		if cd, ok := dialer.(proxy.ContextDialer); ok {
			transport.DialContext = cd.DialContext
		} else {
			transport.DialContext = func(_ context.Context, network, addr string) (net.Conn, error) {
				return dialer.Dial(network, addr)
			}
		}
	}

	var rt http.RoundTripper = transport
	if opts.UserAgent != "" {
		rt = &userAgentTransport{base: transport, userAgent: opts.UserAgent}
	}

	return &http.Client{
		Transport: rt,
		Timeout:   opts.Timeout,
	}, nil
}

// userAgentTransport wraps an http.RoundTripper to set the User-Agent header
// on every request, including redirects.
type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

// RoundTrip implements http.RoundTripper.
func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return t.base.RoundTrip(req)
	}
	// Clone the request to avoid modifying the caller's headers.
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(clone)
}

// ValidateProxyAddress checks for "host:port" with a port in 1..65535.
// It returns ErrInvalidProxyAddress otherwise.
func ValidateProxyAddress(address string) error {
	host, port, err := net.SplitHostPort(address)
	if err != nil || host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidProxyAddress, address)
	}
	n, err := strconv.Atoi(port)
	if err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("%w: %q", ErrInvalidProxyAddress, address)
	}
	return nil
}
