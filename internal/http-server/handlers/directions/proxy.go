package directions

import (
	"SchoolPick/entity"
	"SchoolPick/impl/core"
	"SchoolPick/internal/lib/sl"
	"SchoolPick/internal/service/directions"
	"encoding/json"
	"errors"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

const (
	msgRequired = "Origin and destinations array are required"
	msgInvalid  = "Origin and destinations must be valid coordinates of known schools"
	msgFailed   = "Failed to fetch directions"
)

// message is the error body of the proxy. Unlike the rest of the API the
// proxy answers with a bare array on success.
type message struct {
	Message string `json:"message"`
}

// Proxy handles GET /api/directions?origin=<JSON>&destinations=<JSON>.
func Proxy(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.directions")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		q := r.URL.Query()
		origin, destinations := q.Get("origin"), q.Get("destinations")
		if origin == "" || destinations == "" {
			fail(w, r, http.StatusBadRequest, msgRequired)
			return
		}

		var query entity.DirectionsQuery
		if err := json.Unmarshal([]byte(origin), &query.Origin); err != nil {
			logger.Debug("parse origin", sl.Err(err))
			fail(w, r, http.StatusBadRequest, msgRequired)
			return
		}
		if err := json.Unmarshal([]byte(destinations), &query.Destinations); err != nil {
			logger.Debug("parse destinations", sl.Err(err))
			fail(w, r, http.StatusBadRequest, msgRequired)
			return
		}
		if err := query.Validate(); err != nil {
			logger.Debug("invalid directions query", sl.Err(err))
			fail(w, r, http.StatusBadRequest, msgInvalid)
			return
		}

		results, err := handler.Directions(r.Context(), &query)
		if errors.Is(err, core.ErrUnknownSchool) || errors.Is(err, directions.ErrInvalidRequest) {
			logger.Debug("directions rejected", sl.Err(err))
			fail(w, r, http.StatusBadRequest, msgInvalid)
			return
		}
		if err != nil {
			logger.Error("fetch directions", sl.Err(err))
			fail(w, r, http.StatusInternalServerError, msgFailed)
			return
		}

		render.JSON(w, r, results)
	}
}

func fail(w http.ResponseWriter, r *http.Request, code int, msg string) {
	render.Status(r, code)
	render.JSON(w, r, message{Message: msg})
}
