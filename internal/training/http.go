package training

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// HTTPStatus maps domain errors to response status codes.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrConstraintViolation):
		return http.StatusConflict
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// WriteError logs err and responds with its mapped status. Internal errors
// are reported as msg only, the rest carry the error text.
func WriteError(w http.ResponseWriter, err error, msg string) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Errorf("%s: %s", msg, err)
		http.Error(w, msg, status)
		return
	}
	log.Debugf("%s: %s", msg, err)
	http.Error(w, msg+": "+err.Error(), status)
}

// PathID parses the named mux path variable as an id.
func PathID(r *http.Request, name string) (int, bool) {
	idStr := mux.Vars(r)[name]
	if idStr == "" {
		return 0, false
	}
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
