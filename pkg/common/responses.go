package common

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// MaxBodyBytes bounds request bodies, matching the 10mb JSON limit of the site backend
const MaxBodyBytes int64 = 10 << 20

// APIResponse is the envelope used by the contact and mindscape endpoints
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RespondJSON wraps data in the success envelope
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	WriteJSON(w, status, APIResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	})
}

// RespondMessage sends {success, message}
func RespondMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, APIResponse{
		Success: status >= 200 && status < 300,
		Message: message,
	})
}

// RespondError sends {success:false, error}
func RespondError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, APIResponse{Error: message})
}

// WriteJSON writes body as is. Used by the media endpoints, whose clients expect
// flat payloads without the envelope.
func WriteJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// ErrEmptyBody is returned by ParseJSONBody for a request without a body
var ErrEmptyBody = errors.New("request body is empty")

// ParseJSONBody decodes a JSON body of at most maxBytes into v
func ParseJSONBody(w http.ResponseWriter, r *http.Request, v interface{}, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}
	return nil
}
