package controllers

import (
	"net/http"

	"github.com/foodhubapp/foodhub/live"
	"github.com/foodhubapp/foodhub/models"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// DashboardStream upgrades admin connections to a websocket fed by the live
// hub. The connection stays registered until the client disconnects.
func DashboardStream(c *gin.Context) {
	role := c.GetString("role")
	if role != models.RoleRestaurantAdmin && role != models.RoleSuperAdmin {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	live.RegisterClient(ws, role)

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	live.UnregisterClient(ws)
}
