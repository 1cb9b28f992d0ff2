package ws

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/nccabhyas/ncc-training-backend/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // same permissive origin policy as the REST surface
	},
}

func queueJSON(client *Client, data interface{}) {
	msg, err := json.Marshal(data)
	if err != nil {
		log.Println("JSON marshal error:", err)
		return
	}
	select {
	case client.Send <- msg:
	default:
	}
}

// HandlePDFWebSocket streams processing-status updates for one uploaded
// document. Browsers cannot set headers on ws dials, so the token rides the
// query string.
func HandlePDFWebSocket(c *gin.Context) {
	pdfID := c.Param("id")
	token := c.Query("token")

	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No authorization token"})
		return
	}
	claims, err := utils.VerifyToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("ws upgrade failed:", err)
		return
	}
	client := H.Register(pdfID, conn)

	log.Printf("pdf ws connected: pdfID=%s userID=%s", pdfID, claims.UserID)
	queueJSON(client, gin.H{"type": "connected", "message": "Connected to document " + pdfID})

	<-client.Done
}

// HandleStatusWebSocket is the global channel used by the material list page.
func HandleStatusWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No authorization token"})
		return
	}
	claims, err := utils.VerifyToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("ws upgrade failed:", err)
		return
	}
	client := H.RegisterGlobal(conn)

	log.Printf("status ws connected: userID=%s", claims.UserID)
	queueJSON(client, gin.H{"type": "connected", "message": "Connected to status channel"})

	<-client.Done
}
