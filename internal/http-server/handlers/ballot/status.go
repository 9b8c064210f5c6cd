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

func Status(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.ballot")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		b, err := handler.BallotStatus(r.Context(), cont.GetVisitor(r.Context()))
		if err != nil {
			logger.Error("load ballot", sl.Err(err))
			code, msg := status(err)
			render.Status(r, code)
			render.JSON(w, r, response.Error(msg))
			return
		}

		render.JSON(w, r, response.Ok(b))
	}
}
