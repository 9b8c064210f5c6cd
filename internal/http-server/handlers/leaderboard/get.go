package leaderboard

import (
	"SchoolPick/entity"
	"SchoolPick/internal/geo"
	"SchoolPick/internal/lib/api/response"
	"SchoolPick/internal/lib/sl"
	"SchoolPick/internal/ranking"
	"errors"
	"fmt"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
	"strconv"
)

// Get ranks the schools for ?mode=. lat and lng give the visitor location;
// when either is missing distance mode returns every school unresolved.
func Get(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.leaderboard")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		q := r.URL.Query()
		origin, err := parseOrigin(q.Get("lat"), q.Get("lng"))
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		board, err := handler.Leaderboard(r.Context(), q.Get("mode"), origin, q.Get("source"))
		if errors.Is(err, ranking.ErrUnknownMode) || errors.Is(err, ranking.ErrUnknownSource) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Unknown sort mode or distance source"))
			return
		}
		if err != nil {
			logger.Error("build leaderboard", slog.String("mode", q.Get("mode")), sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to load results, please try again"))
			return
		}

		render.JSON(w, r, response.Ok(board))
	}
}

func parseOrigin(lat, lng string) (*entity.Location, error) {
	if lat == "" || lng == "" {
		return nil, nil
	}
	la, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid lat")
	}
	ln, err := strconv.ParseFloat(lng, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid lng")
	}
	origin := &entity.Location{Lat: la, Lng: ln}
	if !geo.Valid(*origin) {
		return nil, fmt.Errorf("location out of range")
	}
	return origin, nil
}
