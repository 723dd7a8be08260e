package httpserver

import (
	"encoding/json"
	"net/http"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		data = []byte(`{"error":"internal error"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// decodeCredentials reads the request body. A missing, oversized or
// malformed body yields empty credentials.
func decodeCredentials(w http.ResponseWriter, r *http.Request) credentialsRequest {
	var req credentialsRequest
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return credentialsRequest{}
	}
	return req
}

func statusBody(s string) map[string]string { return map[string]string{"status": s} }

func errorBody(s string) map[string]string { return map[string]string{"error": s} }
