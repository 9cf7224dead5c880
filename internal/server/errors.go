package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/resume-autofill/internal/client"
	"github.com/jonathan/resume-autofill/internal/profile"
	"github.com/jonathan/resume-autofill/internal/store"
)

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	var pathErr *profile.UnknownPathError
	var storageErr *store.StorageError
	var contractErr *client.ContractError
	var transportErr *client.TransportError

	switch {
	case errors.As(err, &pathErr):
		return http.StatusBadRequest
	case errors.As(err, &contractErr):
		return http.StatusBadGateway
	case errors.As(err, &transportErr):
		return http.StatusBadGateway
	case errors.As(err, &storageErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
