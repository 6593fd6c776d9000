package collector

import "fmt"

// TransportError means the upstream could not be reached or answered with a
// non-success status.
type TransportError struct {
	URL        string
	StatusCode int    // 0 when no response was received
	Body       string // truncated response body
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d, body: %s", e.URL, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// MalformedPayloadError means the upstream answered 2xx but the body is not
// a valid sequence of daily records.
type MalformedPayloadError struct {
	URL  string
	Body string // truncated response body
	Err  error
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("decode %s: %v; body: %s", e.URL, e.Err, e.Body)
}

func (e *MalformedPayloadError) Unwrap() error { return e.Err }

const previewLen = 120

func preview(body []byte) string {
	if len(body) > previewLen {
		return string(body[:previewLen])
	}
	return string(body)
}
