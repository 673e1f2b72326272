package shared

import (
	"encoding/json"
	"net/http"
)

// DecodeJSON decodes the request body into the given struct.
func DecodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
