package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/a-bouts/nav-calculator/api/model"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// same policy as the CORS handler in front of the API
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ws answers every navigation request received on the socket, so a form can
// recalculate as the pilot types
func (s *server) ws(w http.ResponseWriter, req *http.Request) {
	fields := log.Fields{
		"action": "ws",
	}
	if ip, err := getIp(req); err == nil {
		fields["IP"] = ip
	}
	requestLogger := log.WithFields(fields)

	conn, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		requestLogger.WithError(err).Warn("Websocket upgrade failed")
		return
	}
	defer conn.Close()

	requestLogger.Debug("Websocket opened")

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				requestLogger.WithError(err).Warn("Websocket closed")
			}
			return
		}

		var body interface{}
		var n model.Navigation
		if err := json.Unmarshal(message, &n); err != nil {
			body = model.Errors{Errors: []string{"Malformed request"}}
		} else {
			_, body = s.calculate(n, "ws", requestLogger)
		}

		if err := conn.WriteJSON(body); err != nil {
			requestLogger.WithError(err).Warn("Websocket write failed")
			return
		}
	}
}
