package school

import (
	"SchoolPick/internal/lib/api/response"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

func ListReasons(_ *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, response.Ok(handler.Reasons()))
	}
}
