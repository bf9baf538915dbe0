package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"studentrecords/internal/service"
	"studentrecords/internal/store"

	"github.com/gorilla/mux"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps service and store errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrEmptyStore):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrDuplicateRoll):
		status = http.StatusConflict
	case errors.Is(err, service.ErrInvalidRecord), errors.Is(err, errBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrNoDatabase):
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

var errBadRequest = errors.New("bad request")

func badRequest(msg string, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %s: %v", errBadRequest, msg, err)
	}
	return fmt.Errorf("%w: %s", errBadRequest, msg)
}

func rollVar(r *http.Request) (int, error) {
	roll, err := strconv.Atoi(mux.Vars(r)["roll"])
	if err != nil {
		return 0, badRequest("invalid roll number", err)
	}
	return roll, nil
}
