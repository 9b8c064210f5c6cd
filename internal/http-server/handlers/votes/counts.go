package votes

import (
	"SchoolPick/impl/core"
	"SchoolPick/internal/lib/api/response"
	"SchoolPick/internal/lib/sl"
	"errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

// Counts returns the raw counts of one bucket, keyed by school code.
func Counts(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.votes")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		bucket := chi.URLParam(r, "bucket")
		counts, err := handler.Counts(r.Context(), bucket)
		if errors.Is(err, core.ErrUnknownBucket) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("Unknown vote bucket"))
			return
		}
		if err != nil {
			logger.Error("read counts", slog.String("bucket", bucket), sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to read votes"))
			return
		}

		render.JSON(w, r, response.Ok(counts))
	}
}
