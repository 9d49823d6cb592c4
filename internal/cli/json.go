package cli

import (
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/rileyhilliard/sitewatch/internal/errors"
	"github.com/rileyhilliard/sitewatch/internal/probe"
)

// JSONEnvelope wraps command output in a consistent structure for machine parsing.
// All --json output should use this envelope.
type JSONEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *JSONError  `json:"error,omitempty"`
}

// JSONError provides structured error information for machine parsing.
type JSONError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Error codes for machine-readable output.
const (
	ErrCodeConfigNotFound = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "CONFIG_INVALID"
	ErrCodeProbeFailed    = "PROBE_FAILED"
	ErrCodeUnknown        = "UNKNOWN"
)

// CheckReport is the --json form of a check run.
type CheckReport struct {
	CheckedAt time.Time    `json:"checked_at"`
	Summary   CheckSummary `json:"summary"`
	Sites     []SiteReport `json:"sites"`
}

// CheckSummary counts sites by outcome.
type CheckSummary struct {
	Total    int `json:"total"`
	Healthy  int `json:"healthy"`
	Down     int `json:"down"`
	Expired  int `json:"expired"`
	TimedOut int `json:"timed_out"`
}

// SiteReport is one site's outcome.
type SiteReport struct {
	Name       string `json:"name"`
	URL        string `json:"url"`
	Healthy    bool   `json:"healthy"`
	Status     string `json:"status"`
	Code       int    `json:"code,omitempty"`
	Error      string `json:"error,omitempty"`
	ResponseMS *int64 `json:"response_ms,omitempty"`
	Cert       string `json:"cert"`
	DaysLeft   *int   `json:"days_left,omitempty"`
	Expiry     string `json:"expiry,omitempty"`
	TimedOut   bool   `json:"timed_out,omitempty"`
}

// NewCheckReport converts a cycle's results into their JSON form.
func NewCheckReport(results []probe.Result, checkedAt time.Time) CheckReport {
	s := probe.Summarize(results)
	report := CheckReport{
		CheckedAt: checkedAt,
		Summary: CheckSummary{
			Total:    s.Total,
			Expired:  s.Expired,
			TimedOut: s.TimedOut,
		},
		Sites: make([]SiteReport, 0, len(results)),
	}

	for _, r := range results {
		site := SiteReport{
			Name:     r.Name,
			URL:      r.URL,
			Healthy:  r.Healthy(),
			Status:   r.HTTP.String(),
			Error:    r.HTTP.Err,
			Cert:     certKindName(r.Cert.Kind),
			TimedOut: r.TimedOut,
		}
		if r.HTTP.Kind == probe.HTTPCode {
			site.Code = r.HTTP.Code
		}
		if r.HasResponseTime {
			ms := r.ResponseTime.Milliseconds()
			site.ResponseMS = &ms
		}
		if r.Cert.Kind == probe.CertValid {
			days := r.Cert.DaysRemaining
			site.DaysLeft = &days
			site.Expiry = r.Cert.Expiry.UTC().Format(time.RFC3339)
		}

		if site.Healthy {
			report.Summary.Healthy++
		} else {
			report.Summary.Down++
		}
		report.Sites = append(report.Sites, site)
	}
	return report
}

func certKindName(k probe.CertKind) string {
	switch k {
	case probe.CertValid:
		return "valid"
	case probe.CertFailed:
		return "failed"
	default:
		return "unchecked"
	}
}

// WriteJSONSuccess writes a successful response with data to the writer.
func WriteJSONSuccess(w io.Writer, data interface{}) error {
	return writeJSONEnvelope(w, JSONEnvelope{
		Success: true,
		Data:    data,
	})
}

// WriteJSONFromError converts a Go error to a JSON error response.
func WriteJSONFromError(w io.Writer, err error) error {
	return writeJSONEnvelope(w, JSONEnvelope{
		Success: false,
		Error:   ErrorToJSON(err),
	})
}

// writeJSONEnvelope writes the envelope with consistent formatting.
func writeJSONEnvelope(w io.Writer, env JSONEnvelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

// ErrorToJSON converts a Go error to a JSONError with appropriate code mapping.
func ErrorToJSON(err error) *JSONError {
	if err == nil {
		return nil
	}

	var swErr *errors.Error
	if errors.As(err, &swErr) {
		return &JSONError{
			Code:       mapErrorCode(swErr.Code, swErr.Message),
			Message:    errors.Message(swErr),
			Suggestion: swErr.Suggestion,
		}
	}

	return &JSONError{
		Code:    ErrCodeUnknown,
		Message: err.Error(),
	}
}

// mapErrorCode maps internal error codes to machine-readable codes.
func mapErrorCode(internalCode, message string) string {
	switch internalCode {
	case errors.ErrConfig:
		msgLower := strings.ToLower(message)
		if strings.Contains(msgLower, "not found") {
			return ErrCodeConfigNotFound
		}
		return ErrCodeConfigInvalid
	case errors.ErrProbe:
		return ErrCodeProbeFailed
	}
	return ErrCodeUnknown
}
