package api

import (
	"encoding/json"
	"net/http"

	"github.com/mbratke/buergertest/internal/errors"
	"github.com/mbratke/buergertest/internal/logger"
)

func respondJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.NewBadRequestError("invalid request body: " + err.Error())
	}
	return nil
}

// langParam is the response language for translated question text. Empty
// means German only.
func langParam(r *http.Request) string {
	return r.URL.Query().Get("lang")
}
