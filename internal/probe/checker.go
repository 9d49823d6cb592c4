package probe

import (
	"context"
	"fmt"
	"net/url"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/rileyhilliard/sitewatch/internal/logger"
)

// DefaultTLSPort is dialed for certificate checks when the URL has no explicit port.
const DefaultTLSPort = "443"

// Checker performs the HTTP and certificate probes for one endpoint.
type Checker struct {
	http  HTTPGetter
	certs CertInspector
	now   func() time.Time
	log   logger.Logger
}

// CheckerOption configures a Checker.
type CheckerOption func(*Checker)

// WithClock overrides the time source used for timestamps and days remaining.
func WithClock(now func() time.Time) CheckerOption {
	return func(c *Checker) { c.now = now }
}

// WithLogger sets the logger used for probe diagnostics.
func WithLogger(l logger.Logger) CheckerOption {
	return func(c *Checker) { c.log = l }
}

// NewChecker creates a Checker from its two collaborators.
func NewChecker(httpGetter HTTPGetter, certs CertInspector, opts ...CheckerOption) *Checker {
	c := &Checker{
		http:  httpGetter,
		certs: certs,
		now:   time.Now,
		log:   logger.Noop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check probes ep and always returns a Result. Every failure is folded into
// the Result as HTTPError or CertFailed; nothing is returned as an error.
// The two probes run concurrently and do not affect each other.
func (c *Checker) Check(ctx context.Context, ep Endpoint, timeout time.Duration) Result {
	result := Result{
		Name:      ep.Name,
		URL:       ep.URL,
		Timestamp: c.now(),
		HTTP:      HTTPStatus{Kind: HTTPUnknown},
		Cert:      CertStatus{Kind: CertUnchecked},
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer c.recoverInto(ep, "http", func() { result.HTTP = StatusError(fmt.Errorf("probe panicked")) })

		start := time.Now()
		code, err := c.http.Get(ctx, ep.URL, timeout)
		if err != nil {
			c.log.Debug("http %s: %v", ep.Name, err)
			result.HTTP = StatusError(err)
			return
		}
		result.HTTP = StatusCode(code)
		result.ResponseTime = time.Since(start)
		result.HasResponseTime = true
	}()

	if IsTLS(ep.URL) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer c.recoverInto(ep, "cert", func() { result.Cert = CertStatus{Kind: CertFailed} })

			result.Cert = c.checkCert(ctx, ep, timeout)
		}()
	}

	wg.Wait()
	return result
}

func (c *Checker) checkCert(ctx context.Context, ep Endpoint, timeout time.Duration) CertStatus {
	host, port, err := TLSAddress(ep.URL)
	if err != nil {
		c.log.Debug("cert %s: %v", ep.Name, err)
		return CertStatus{Kind: CertFailed}
	}

	notAfter, err := c.certs.Expiry(ctx, host, port, timeout)
	if err != nil {
		c.log.Debug("cert %s: %v", ep.Name, err)
		return CertStatus{Kind: CertFailed}
	}
	if notAfter.IsZero() {
		return CertStatus{Kind: CertFailed}
	}
	return CertValidUntil(notAfter, c.now())
}

// recoverInto keeps a misbehaving collaborator from taking down the cycle.
func (c *Checker) recoverInto(ep Endpoint, probe string, fallback func()) {
	if r := recover(); r != nil {
		c.log.Error("%s probe for %s panicked: %v\n%s", probe, ep.Name, r, debug.Stack())
		fallback()
	}
}

// IsTLS reports whether rawURL uses an encrypted scheme.
func IsTLS(rawURL string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(rawURL)), "https://")
}

// TLSAddress extracts the host and port to dial for a certificate check.
func TLSAddress(rawURL string) (string, string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", "", fmt.Errorf("parse %q: %w", rawURL, err)
	}
	host := u.Hostname()
	if host == "" {
		return "", "", fmt.Errorf("no host in %q", rawURL)
	}
	port := u.Port()
	if port == "" {
		port = DefaultTLSPort
	}
	return host, port, nil
}
