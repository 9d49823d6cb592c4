// Package probe checks endpoints for HTTP reachability and TLS certificate expiry.
//
// # Key Components
//
//	Checker     - Runs the HTTP and certificate probes for one endpoint
//	Pool        - Fans a Checker out over all endpoints with bounded concurrency
//	HTTPClient  - Default HTTPGetter (net/http, verified TLS)
//	TLSInspector - Default CertInspector (TLS handshake, leaf NotAfter)
//
// Every failure mode (DNS, refused connections, handshake errors, timeouts)
// is folded into the Result as an HTTPError or CertFailed state. A Checker
// never returns an error and a Pool never drops an endpoint: a check that
// overruns its task timeout is reported as a TimedOut placeholder.
package probe
