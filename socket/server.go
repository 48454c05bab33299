package socket

import (
	"log"

	"blindmail_server/models"

	socketio "github.com/googollee/go-socket.io"
)

// Server is the change-notification side channel. Clients join a room per
// match and receive matchUpdated and newMessage broadcasts; the core never
// depends on delivery for correctness.
type Server struct {
	*socketio.Server
}

// NewSocketServer initializes and returns a new Socket.IO server
func NewSocketServer() *Server {
	server := socketio.NewServer(nil)

	server.OnConnect("/", func(c socketio.Conn) error {
		log.Println("Socket connected:", c.ID())
		return nil
	})

	server.OnEvent("/", "join", func(c socketio.Conn, matchID string) {
		if matchID == "" {
			log.Println("Invalid matchId in join request")
			return
		}
		log.Printf("Socket %s joined match %s\n", c.ID(), matchID)
		c.Join(matchID)
	})

	server.OnEvent("/", "leave", func(c socketio.Conn, matchID string) {
		c.Leave(matchID)
	})

	server.OnError("/", func(c socketio.Conn, err error) {
		log.Println("Socket error:", err)
	})

	server.OnDisconnect("/", func(c socketio.Conn, reason string) {
		log.Println("Socket disconnected:", reason)
	})

	return &Server{Server: server}
}

// MatchUpdated broadcasts a status change to everyone in the match room
func (s *Server) MatchUpdated(matchID, status string) {
	s.BroadcastToRoom("/", matchID, "matchUpdated", map[string]string{
		"matchId": matchID,
		"status":  status,
	})
}

// NewMessage broadcasts a freshly stored message to the match room
func (s *Server) NewMessage(message models.Message) {
	s.BroadcastToRoom("/", message.MatchID, "newMessage", message)
}
