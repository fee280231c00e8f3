package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Message writes a successful JSON response. Fields are added next to
// "success".
func Message(w http.ResponseWriter, status int, message string, fields map[string]any) {
	body := map[string]any{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range fields {
		body[k] = v
	}
	writeJSON(w, status, body)
}

func Error(w http.ResponseWriter, status int, message string, err error, details ...any) {
	response := struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
		Reason  string `json:"reason,omitempty"`
		Details []any  `json:"details,omitempty"`
	}{
		Error:   message,
		Details: details,
	}
	if err != nil {
		response.Reason = err.Error()
	}
	writeJSON(w, status, response)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprintf(w, `{"success": false, "error": %q}`, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
