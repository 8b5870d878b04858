package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", slog.String("error", err.Error()))
	}
}

type errResponse struct {
	Error string `json:"error"`
}

func errorBody(msg string) errResponse {
	return errResponse{Error: msg}
}

func withAuthed(ctx context.Context, authed bool) context.Context {
	return context.WithValue(ctx, authedKey, authed)
}

func isAuthed(ctx context.Context) bool {
	v, _ := ctx.Value(authedKey).(bool)
	return v
}
