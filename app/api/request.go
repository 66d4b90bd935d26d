package api

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// maxBodyBytes caps the size of JSON request bodies.
const maxBodyBytes = 1 << 20

// DecodeJSON reads the request body into dst.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return BadRequest("Invalid JSON body")
	}
	return nil
}

// QueryID parses a positive integer identifier from the query string.
func QueryID(r *http.Request, name string) (uint, error) {
	return parseID(r.URL.Query().Get(name), name)
}

// PathID parses a positive integer identifier from a path wildcard.
func PathID(r *http.Request, name string) (uint, error) {
	return parseID(r.PathValue(name), name)
}

func parseID(raw, name string) (uint, error) {
	if raw == "" {
		return 0, BadRequest("Missing " + name)
	}
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || id == 0 {
		return 0, BadRequest("Invalid " + name)
	}
	return uint(id), nil
}
