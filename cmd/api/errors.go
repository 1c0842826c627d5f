package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kerickkkkk/love-in-no-words-back-end-sub000/internal/domain"
)

var ErrInvalidID = errors.New("invalid ID format")

func (app *application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("internal error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	app.writeJsonError(w, http.StatusInternalServerError, "the server encountered a problem")
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("bad request", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	app.writeJsonError(w, http.StatusBadRequest, err.Error())
}

func (app *application) notFoundError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("not found", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	app.writeJsonError(w, http.StatusNotFound, err.Error())
}

func (app *application) conflictResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("conflict", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	app.writeJsonError(w, http.StatusConflict, err.Error())
}

// errorResponse maps domain error kinds to distinct status codes:
// validation and stock problems are the caller's fault (400), missing
// references are 404, duplicate numbers and taken slots are 409.
func (app *application) errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *domain.ValidationError
	var stockErr *domain.InsufficientStockError

	switch {
	case errors.As(err, &validationErr), errors.As(err, &stockErr):
		app.badRequestResponse(w, r, err)
	case errors.Is(err, domain.ErrNotFound):
		app.notFoundError(w, r, err)
	case errors.Is(err, domain.ErrConflict):
		app.conflictResponse(w, r, err)
	default:
		app.internalServerError(w, r, err)
	}
}

// validationMessage aggregates every invalid field into one message
// instead of failing on the first.
func validationMessage(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	problems := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		field := strings.ToLower(fieldErr.Field()[:1]) + fieldErr.Field()[1:]
		switch fieldErr.Tag() {
		case "required":
			problems = append(problems, fmt.Sprintf("%s is required", field))
		case "gt":
			problems = append(problems, fmt.Sprintf("%s must be greater than %s", field, fieldErr.Param()))
		case "min":
			problems = append(problems, fmt.Sprintf("%s must have at least %s items", field, fieldErr.Param()))
		default:
			problems = append(problems, fmt.Sprintf("%s is invalid", field))
		}
	}

	return domain.NewValidationError(problems...)
}
