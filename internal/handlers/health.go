package handlers

import (
	"context"
	"net/http"
)

// Healthz returns a liveness handler that runs the given store probe.
func Healthz(probe func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if probe != nil {
			if err := probe(r.Context()); err != nil {
				writeErr(w, err)
				return
			}
		}
		writeData(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
