package leaderboard

import (
	"SchoolPick/internal/ws"
	"log/slog"
	"net/http"
)

// Live upgrades to a websocket that receives the board on every change.
func Live(log *slog.Logger, hub *ws.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWs(hub, log, w, r)
	}
}
