package probe

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"time"
)

// CertInspector reads the "not valid after" timestamp of the certificate served at host:port.
type CertInspector interface {
	Expiry(ctx context.Context, host, port string, timeout time.Duration) (time.Time, error)
}

// TLSInspector is the default CertInspector. It completes a TLS handshake with
// SNI set to host and reads the leaf certificate.
//
// The chain is not verified: an expired or self-signed certificate still has
// an expiry date worth showing.
type TLSInspector struct {
	dialer net.Dialer
}

// NewTLSInspector creates a TLSInspector.
func NewTLSInspector() *TLSInspector {
	return &TLSInspector{}
}

// Expiry dials host:port and returns the leaf certificate's NotAfter.
func (i *TLSInspector) Expiry(ctx context.Context, host, port string, timeout time.Duration) (time.Time, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	d := &tls.Dialer{
		NetDialer: &i.dialer,
		Config: &tls.Config{
			ServerName:         host,
			InsecureSkipVerify: true, //nolint:gosec // expiry inspection only, no data is exchanged
		},
	}

	conn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(host, port))
	if err != nil {
		return time.Time{}, fmt.Errorf("tls dial %s: %w", host, err)
	}
	defer conn.Close()

	tlsConn, ok := conn.(*tls.Conn)
	if !ok {
		return time.Time{}, fmt.Errorf("tls dial %s: unexpected connection type %T", host, conn)
	}

	certs := tlsConn.ConnectionState().PeerCertificates
	if len(certs) == 0 {
		return time.Time{}, fmt.Errorf("%s presented no certificate", host)
	}
	return certs[0].NotAfter, nil
}
