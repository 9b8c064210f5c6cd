package school

import (
	"SchoolPick/internal/lib/api/response"
	"SchoolPick/internal/lib/sl"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

// GetSchool returns the detail of one school, shown in the info modal.
func GetSchool(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.school")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		code := chi.URLParam(r, "code")
		school, err := handler.School(code)
		if err != nil {
			logger.Debug("school not found", slog.String("code", code))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("School not found"))
			return
		}

		render.JSON(w, r, response.Ok(school))
	}
}
