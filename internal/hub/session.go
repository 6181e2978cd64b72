package hub

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Buffer of the per-session forward channel. Large enough to absorb a
	// full history replay burst without dropping.
	forwardBufferSize = 256

	pongWriteWait = 10 * time.Second
)

// Conn is the subset of *websocket.Conn a chat session needs, so tests can
// drive a session with a scripted connection.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	SetPingHandler(h func(appData string) error)
	Close() error
}

// ChatSession bridges one websocket connection to the hub. It holds no
// shared state, only its own identity and the hub reference.
type ChatSession struct {
	id       uint64
	chatID   uint
	senderID uint
	hub      *Hub
	conn     Conn
	forward  chan ForwardMessage
	done     chan struct{}
}

func NewChatSession(h *Hub, conn Conn, chatID, senderID uint) *ChatSession {
	return &ChatSession{
		chatID:   chatID,
		senderID: senderID,
		hub:      h,
		conn:     conn,
		forward:  make(chan ForwardMessage, forwardBufferSize),
		done:     make(chan struct{}),
	}
}

// Run connects the session to the hub and pumps frames until the connection
// is closed from either side. It blocks for the lifetime of the connection
// and always releases the transport before returning. The returned error is
// non-nil only when the hub connection could not be established.
func (cs *ChatSession) Run() error {
	id, err := cs.hub.Connect(cs.forward, cs.chatID)
	if err != nil {
		_ = cs.conn.Close()
		return err
	}
	cs.id = id

	go cs.writeLoop()
	cs.readLoop()

	// Fire-and-forget: the hub removal needs no acknowledgment.
	cs.hub.Disconnect(cs.id, cs.chatID)
	close(cs.done)
	_ = cs.conn.Close()
	return nil
}

// readLoop forwards inbound text frames to the hub. Any frame of an
// unsupported shape is a protocol violation and ends the session.
func (cs *ChatSession) readLoop() {
	cs.conn.SetPingHandler(func(appData string) error {
		return cs.conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(pongWriteWait))
	})

	for {
		messageType, data, err := cs.conn.ReadMessage()
		if err != nil {
			return
		}
		switch messageType {
		case websocket.TextMessage:
			cs.hub.SendMessage(cs.id, cs.chatID, cs.senderID, strings.TrimSpace(string(data)))
		default:
			log.Printf("Unexpected message type %d received, dropping the connection", messageType)
			return
		}
	}
}

// writeLoop serializes forwarded messages and writes them to the socket.
func (cs *ChatSession) writeLoop() {
	for {
		select {
		case <-cs.done:
			return
		case msg := <-cs.forward:
			payload, err := json.Marshal(msg)
			if err != nil {
				log.Printf("Error marshalling forward message: %v", err)
				continue
			}
			if err := cs.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				// Force the read loop to bail out as well.
				_ = cs.conn.Close()
				return
			}
		}
	}
}
