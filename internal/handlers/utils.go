package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/quiz-me/apiserver/internal/apierr"
	"github.com/quiz-me/apiserver/types"
)

type contextKey string

const contextUserKey contextKey = "user"

// Envelope is the wire shape of every response: the status code mirrored in
// the body, an error message or null, and a data object or null.
type Envelope struct {
	Code  int     `json:"code"`
	Error *string `json:"error"`
	Data  any     `json:"data"`
}

func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Envelope{Code: status, Data: data})
}

func writeErr(w http.ResponseWriter, err error) {
	classified := apierr.From(err)
	message := classified.Message
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(classified.Code)
	_ = json.NewEncoder(w).Encode(Envelope{Code: classified.Code, Error: &message})
}

func withUser(ctx context.Context, user types.User) context.Context {
	return context.WithValue(ctx, contextUserKey, user)
}

func userFromContext(ctx context.Context) (types.User, bool) {
	user, ok := ctx.Value(contextUserKey).(types.User)
	return user, ok
}
