package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/trinhdvt/storefront/internal/apperr"
	"github.com/trinhdvt/storefront/internal/http/apierr"
)

// maxBodyBytes bounds request bodies so a client cannot exhaust memory.
const maxBodyBytes = 1 << 20 // 1 MB

// responder centralizes response writing and error translation for all
// handlers. Failure at any step short-circuits to Error.
type responder struct {
	logger *slog.Logger
}

func (re responder) JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		re.logger.ErrorContext(r.Context(), "error encoding response",
			slog.Any("error", err))
	}
}

func (re responder) Error(w http.ResponseWriter, r *http.Request, err error) {
	res := apierr.New(err)

	logLevel := slog.LevelInfo
	if res.StatusCode >= 500 {
		logLevel = slog.LevelError
	} else if res.StatusCode >= 400 {
		logLevel = slog.LevelWarn
	}
	re.logger.Log(r.Context(), logLevel, "http response error", slog.Any("error", err))

	re.JSON(w, r, res.StatusCode, res)
}

// decodeBody decodes a JSON request body into v. A malformed body is a
// validation failure, not an internal error.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(v); err != nil && err != io.EOF {
		return apperr.ErrRequestPayloadNotValid.WrapParent(err)
	}

	return nil
}

// idParam parses the {id} route parameter as a UUID.
func idParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.UUID{}, apperr.ErrRequestPayloadNotValid.WrapParent(err)
	}

	return id, nil
}
