package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"beach-review/models"
	"beach-review/store"
	"beach-review/utils"

	log "github.com/sirupsen/logrus"
)

// flexID accepts a positive integer given either as a JSON number or as a
// numeric string.
type flexID uint

func (f *flexID) UnmarshalJSON(b []byte) error {
	raw := strings.Trim(string(b), `"`)
	if raw == "" || raw == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", raw)
	}
	*f = flexID(n)
	return nil
}

var _ json.Unmarshaler = (*flexID)(nil)

// queryID reads a positive integer query parameter.
func queryID(r *http.Request, name string) (uint, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// respondStoreError maps store errors to HTTP statuses. what names the
// resource for the client message.
func respondStoreError(w http.ResponseWriter, err error, what string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: what + " not found"})
	case errors.Is(err, store.ErrForbidden):
		utils.RespondWithError(w, http.StatusForbidden, models.Error{Message: "You can only modify your own " + strings.ToLower(what)})
	case errors.Is(err, store.ErrConflict):
		utils.RespondWithError(w, http.StatusConflict, models.Error{Message: what + " was modified concurrently, please retry"})
	default:
		log.Errorf("Store error (%s): %v", what, err)
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error"})
	}
}

func respondDecodeError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	if errors.Is(err, utils.ErrBodyTooLarge) {
		status = http.StatusRequestEntityTooLarge
	}
	utils.RespondWithError(w, status, models.Error{Message: err.Error()})
}
