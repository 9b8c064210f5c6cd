package share

import (
	"SchoolPick/internal/lib/api/response"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

// ClientConfig hands the browser what it needs to draw the map.
func ClientConfig(_ *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, response.Ok(handler.ClientConfig()))
	}
}
