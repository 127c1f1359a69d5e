package httputil

import (
	"encoding/json"
	"mime"
	"net/http"
	"strings"
)

const (
	ErrorInvalidRequest = "invalid_request"
	ErrorInternal       = "server_error"
	ErrorBadGateway     = "bad_gateway"
)

type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

func AllowCORS(w http.ResponseWriter, r *http.Request, allowMethods []string, allowCredentials bool) {
	var origin = r.Header.Get("Origin")
	if origin == "" {
		return
	}
	w.Header().Set("Access-Control-Allow-Origin", origin)
	w.Header().Set("Access-Control-Allow-Methods", strings.Join(allowMethods, ", "))
	w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type")
	w.Header().Add("Vary", "Origin")
	if allowCredentials {
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
}

func IsJSON(contentType string) bool {
	var mediaType, _, err = mime.ParseMediaType(contentType)
	return err == nil && (mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"))
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	var bytes, err = json.Marshal(v)
	if err != nil {
		Error(w, ErrorInternal, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	w.Write(bytes)
}

func Error(w http.ResponseWriter, error, description string, code int) {
	var bytes, _ = json.Marshal(ErrorResponse{Error: error, ErrorDescription: description})
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	w.Write(bytes)
}
