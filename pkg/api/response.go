package api

import (
	"encoding/json"
	"net/http"
)

// Envelope is the body of every JSON response.
type Envelope struct {
	Data  any          `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail carries a stable machine code and a human message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Response renders itself to an http.ResponseWriter.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

type jsonResponse struct {
	status int
	body   Envelope
}

func (j jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSON wraps v as {"data": v} with status 200.
func JSON(v any) Response {
	return jsonResponse{status: http.StatusOK, body: Envelope{Data: v}}
}

// JSONError renders err as {"error": {...}}. HTTPError keeps its status and
// code; anything else becomes a 500 internal_error without leaking details.
func JSONError(err error) Response {
	he := asHTTPError(err)
	return jsonResponse{
		status: he.Status,
		body:   Envelope{Error: &ErrorDetail{Code: he.Code, Message: he.Message}},
	}
}
