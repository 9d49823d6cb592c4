package probe

import (
	"fmt"
	"sort"
	"time"
)

// Endpoint is a named URL to health-check. Two endpoints are the same if their URLs match.
type Endpoint struct {
	Name string
	URL  string
}

// HTTPKind classifies the outcome of the HTTP probe.
type HTTPKind int

const (
	// HTTPUnknown means no probe outcome is available (e.g. the task timed out).
	HTTPUnknown HTTPKind = iota
	// HTTPCode means a response was received; see HTTPStatus.Code.
	HTTPCode
	// HTTPError means the request failed before a response arrived.
	HTTPError
)

// HTTPStatus is the outcome of the HTTP reachability probe.
type HTTPStatus struct {
	Kind HTTPKind
	Code int
	Err  string
}

// StatusCode builds an HTTPStatus for a received response.
func StatusCode(code int) HTTPStatus {
	return HTTPStatus{Kind: HTTPCode, Code: code}
}

// StatusError builds an HTTPStatus for a failed request.
func StatusError(err error) HTTPStatus {
	s := HTTPStatus{Kind: HTTPError}
	if err != nil {
		s.Err = err.Error()
	}
	return s
}

// OK reports a 2xx/3xx response.
func (s HTTPStatus) OK() bool {
	return s.Kind == HTTPCode && s.Code < 400
}

// String returns the short form used in tables: the numeric code, ERROR, or UNKNOWN.
func (s HTTPStatus) String() string {
	switch s.Kind {
	case HTTPCode:
		return fmt.Sprintf("%d", s.Code)
	case HTTPError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// CertKind classifies the outcome of the certificate probe.
type CertKind int

const (
	// CertUnchecked means the endpoint is not served over TLS.
	CertUnchecked CertKind = iota
	// CertFailed means the expiry could not be determined.
	CertFailed
	// CertValid means the expiry was read. DaysRemaining may be negative.
	CertValid
)

// ExpiryLayout is the display format for certificate expiry dates (dd/mm/yy).
const ExpiryLayout = "02/01/06"

// CertStatus is the outcome of the certificate probe.
type CertStatus struct {
	Kind          CertKind
	DaysRemaining int
	Expiry        time.Time
	ExpiryDisplay string
}

// CertValidUntil builds a CertStatus for a certificate expiring at notAfter, seen at now.
// Days are truncated toward zero, so 36 hours left is 1 day and 36 hours past is -1.
func CertValidUntil(notAfter, now time.Time) CertStatus {
	return CertStatus{
		Kind:          CertValid,
		DaysRemaining: int(notAfter.Sub(now) / (24 * time.Hour)),
		Expiry:        notAfter,
		ExpiryDisplay: notAfter.Format(ExpiryLayout),
	}
}

// Expired reports a valid reading whose expiry is not in the future.
func (c CertStatus) Expired() bool {
	return c.Kind == CertValid && c.DaysRemaining <= 0
}

// Result is one endpoint's outcome for one cycle. It is never modified after creation.
type Result struct {
	Name      string
	URL       string
	Timestamp time.Time
	HTTP      HTTPStatus
	// ResponseTime is only meaningful when HasResponseTime is true.
	ResponseTime    time.Duration
	HasResponseTime bool
	Cert            CertStatus
	// TimedOut marks a placeholder emitted by the pool when the check overran its task timeout.
	TimedOut bool
}

// Healthy reports an OK HTTP status and, for TLS endpoints, an unexpired certificate.
func (r Result) Healthy() bool {
	if !r.HTTP.OK() {
		return false
	}
	return r.Cert.Kind != CertValid || r.Cert.DaysRemaining > 0
}

// SortByName stably orders results by endpoint name so presentation is deterministic.
func SortByName(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Name < results[j].Name
	})
}

// Summary counts results for the dashboard header.
type Summary struct {
	Total    int
	HTTPOK   int
	CertOK   int
	Expired  int
	Errors   int
	TimedOut int
}

// Summarize tallies a cycle's results.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.HTTP.Kind == HTTPCode && r.HTTP.Code == 200 {
			s.HTTPOK++
		}
		if r.HTTP.Kind != HTTPCode {
			s.Errors++
		}
		if r.TimedOut {
			s.TimedOut++
		}
		if r.Cert.Kind == CertValid {
			if r.Cert.DaysRemaining > 0 {
				s.CertOK++
			} else {
				s.Expired++
			}
		}
	}
	return s
}
