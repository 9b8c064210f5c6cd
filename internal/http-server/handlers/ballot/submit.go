package ballot

import (
	"SchoolPick/entity"
	"SchoolPick/internal/lib/api/cont"
	"SchoolPick/internal/lib/api/response"
	"SchoolPick/internal/lib/sl"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

func Submit(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.ballot")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req entity.BallotRequest
		if err := render.Bind(r, &req); err != nil {
			logger.Debug("incomplete ballot", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(msgIncomplete))
			return
		}

		b, err := handler.SubmitBallot(r.Context(), cont.GetVisitor(r.Context()), req.School, req.Reason)
		if err != nil {
			code, msg := status(err)
			if code >= http.StatusInternalServerError {
				logger.Error("submit ballot", sl.Err(err))
			} else {
				logger.Debug("ballot rejected", sl.Err(err))
			}
			render.Status(r, code)
			render.JSON(w, r, response.Error(msg))
			return
		}

		render.JSON(w, r, response.Ok(b))
	}
}
