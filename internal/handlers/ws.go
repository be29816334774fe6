package handlers

import (
	"log"
	"net/http"

	"github.com/Muaaviya-cxd4t/hal-4.0manager/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	hub *ws.Hub
}

func NewWSHandler(hub *ws.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleFeed godoc
// @Summary      WebSocket feed of served meals
// @Description  Connect via WebSocket to watch redemptions as they happen
// @Tags         websocket
// @Router       /ws/feed [get]
func (h *WSHandler) HandleFeed(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	topic := c.DefaultQuery("topic", "redemptions")
	h.hub.AddConnection(topic, conn)
	defer h.hub.RemoveConnection(topic, conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
