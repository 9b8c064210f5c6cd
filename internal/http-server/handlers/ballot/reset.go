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

// Reset takes the visitor's vote back. On failure the vote stays in place
// and the visitor may retry.
func Reset(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.ballot")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		b, err := handler.ResetBallot(r.Context(), cont.GetVisitor(r.Context()))
		if err != nil {
			code, msg := status(err)
			if code >= http.StatusInternalServerError {
				logger.Error("reset ballot", sl.Err(err))
			} else {
				logger.Debug("reset rejected", sl.Err(err))
			}
			render.Status(r, code)
			render.JSON(w, r, response.Error(msg))
			return
		}

		logger.Debug("ballot reset")
		render.JSON(w, r, response.Ok(b))
	}
}
