package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/WA-DEPS/WADEPS-Header-Tool/internal/logging"
)

// writeError writes a JSON error response and logs it with the request's
// logger. The message is client-facing; internal detail belongs in the log
// call at the handler, not here.
func writeError(ctx context.Context, w http.ResponseWriter, status int, message string) {
	logging.FromContext(ctx).Warn("request failed", "status", status, "message", message)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"error":%q}`, message)
}

// writeJSON encodes v and writes it to w. Encoding errors are logged only,
// since headers have already been sent.
func writeJSON(ctx context.Context, w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(ctx).Error("json encode failed", "error", err)
	}
}
