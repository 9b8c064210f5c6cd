package ballot

import (
	"SchoolPick/internal/lib/api/cont"
	"SchoolPick/internal/lib/api/response"
	"SchoolPick/internal/lib/sl"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

// Form serves the ballot form data. A visitor who already voted is sent to
// resultsPath instead.
func Form(log *slog.Logger, handler Core, resultsPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.ballot")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		form, redirect, err := handler.BallotForm(r.Context(), cont.GetVisitor(r.Context()))
		if err != nil {
			logger.Error("load ballot form", sl.Err(err))
			code, msg := status(err)
			render.Status(r, code)
			render.JSON(w, r, response.Error(msg))
			return
		}
		if redirect {
			logger.Debug("already voted, redirecting")
			http.Redirect(w, r, resultsPath, http.StatusSeeOther)
			return
		}

		render.JSON(w, r, response.Ok(form))
	}
}
