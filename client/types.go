package client

import (
	"encoding/json"
	"fmt"
)

// envelope mirrors the backend's response wrapper:
// { success, data?, message?, error_code?, meta? }.
type envelope struct {
	Success   *bool           `json:"success"`
	Data      json.RawMessage `json:"data"`
	Message   string          `json:"message"`
	ErrorCode string          `json:"error_code"`
	Meta      *Meta           `json:"meta"`
}

// Meta carries pagination details for list responses.
type Meta struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
	Pages   int `json:"pages"`
}

// Result is the normalized outcome of one dispatched call. Success
// mirrors the envelope's success flag, falling back to the HTTP status
// class when the envelope omits it; callers must not infer success from
// the mere absence of a transport error.
type Result struct {
	Success   bool
	Status    int
	Data      json.RawMessage
	Message   string
	ErrorCode string
	Meta      *Meta
}

// Decode unmarshals the result's data payload into v.
func (r *Result) Decode(v any) error {
	if len(r.Data) == 0 {
		return fmt.Errorf("response carried no data payload")
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("failed to decode data payload: %w", err)
	}
	return nil
}

// parseEnvelope builds a Result from a raw response body. A non-JSON
// body on an otherwise readable response is reported as an error with
// the partially filled Result still returned.
func parseEnvelope(status int, body []byte) (*Result, error) {
	res := &Result{
		Status:  status,
		Success: status >= 200 && status < 300,
	}
	if len(body) == 0 {
		return res, nil
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		res.Success = false
		return res, fmt.Errorf("failed to parse response body: %w", err)
	}
	if env.Success != nil {
		res.Success = *env.Success
	}
	res.Data = env.Data
	res.Message = env.Message
	res.ErrorCode = env.ErrorCode
	res.Meta = env.Meta
	return res, nil
}
