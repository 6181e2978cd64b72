// Package hub routes live chat messages between websocket sessions. A single
// goroutine owns the session registry and the chat membership sets; sessions
// talk to it only through typed requests on its channels, so the maps need no
// locking.
package hub

import (
	"log"
	"math/rand"
	"sync"
	"time"

	"chatStream/internal/errs"
)

const defaultHistoryLimit = 50

type Hub struct {
	store        MessageStore
	historyLimit int

	connect    chan connectRequest
	disconnect chan disconnectRequest
	messages   chan clientMessage

	// Owned exclusively by the Run goroutine.
	sessions map[uint64]chan<- ForwardMessage
	chats    map[uint]map[uint64]struct{}

	done      chan struct{}
	closeOnce sync.Once
}

func NewHub(store MessageStore, historyLimit int) *Hub {
	if historyLimit <= 0 {
		historyLimit = defaultHistoryLimit
	}
	return &Hub{
		store:        store,
		historyLimit: historyLimit,
		connect:      make(chan connectRequest),
		disconnect:   make(chan disconnectRequest),
		messages:     make(chan clientMessage),
		sessions:     make(map[uint64]chan<- ForwardMessage),
		chats:        make(map[uint]map[uint64]struct{}),
		done:         make(chan struct{}),
	}
}

// Run processes requests until Close is called. It should be started in its
// own goroutine before any session connects.
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			return
		case req := <-h.connect:
			req.reply <- h.handleConnect(req)
		case req := <-h.disconnect:
			h.handleDisconnect(req)
		case msg := <-h.messages:
			h.handleClientMessage(msg)
		}
	}
}

// Close stops the hub loop. Connect calls made afterwards fail with
// ErrHubClosed, Disconnect and SendMessage become no-ops.
func (h *Hub) Close() {
	h.closeOnce.Do(func() {
		close(h.done)
	})
}

// Connect registers the handle under a freshly generated session id and
// returns that id. The recent history of the chat is fetched concurrently
// and delivered to the new handle only, oldest first.
func (h *Hub) Connect(handle chan<- ForwardMessage, chatID uint) (uint64, error) {
	req := connectRequest{
		handle: handle,
		chatID: chatID,
		reply:  make(chan uint64, 1),
	}
	select {
	case h.connect <- req:
	case <-h.done:
		return 0, errs.ErrHubClosed
	}
	select {
	case id := <-req.reply:
		return id, nil
	case <-h.done:
		return 0, errs.ErrHubClosed
	}
}

// Disconnect removes the session from the registry and its chat. Unknown ids
// are ignored, so disconnecting twice is harmless.
func (h *Hub) Disconnect(id uint64, chatID uint) {
	select {
	case h.disconnect <- disconnectRequest{id: id, chatID: chatID}:
	case <-h.done:
	}
}

// SendMessage broadcasts the content to every other session of the chat and
// persists it concurrently. Broadcast delivery never waits for the store.
func (h *Hub) SendMessage(sessionID uint64, chatID, senderID uint, content string) {
	msg := clientMessage{
		sessionID: sessionID,
		chatID:    chatID,
		senderID:  senderID,
		content:   content,
	}
	select {
	case h.messages <- msg:
	case <-h.done:
	}
}

func (h *Hub) handleConnect(req connectRequest) uint64 {
	// Retry until the id is unused; collisions are practically unreachable
	// in a 64 bit id space.
	id := rand.Uint64()
	for {
		if _, taken := h.sessions[id]; !taken {
			break
		}
		id = rand.Uint64()
	}
	h.sessions[id] = req.handle

	members, ok := h.chats[req.chatID]
	if !ok {
		members = make(map[uint64]struct{})
		h.chats[req.chatID] = members
	}
	members[id] = struct{}{}

	go h.replayHistory(req.chatID, req.handle)

	return id
}

func (h *Hub) handleDisconnect(req disconnectRequest) {
	if _, ok := h.sessions[req.id]; !ok {
		return
	}
	delete(h.sessions, req.id)

	members, ok := h.chats[req.chatID]
	if !ok {
		return
	}
	delete(members, req.id)
	if len(members) == 0 {
		delete(h.chats, req.chatID)
	}
}

func (h *Hub) handleClientMessage(msg clientMessage) {
	h.broadcastMessage(msg)

	go func() {
		if _, err := h.store.AppendMessage(msg.chatID, msg.senderID, msg.content); err != nil {
			log.Printf("Error adding chat message for chat %d: %v", msg.chatID, err)
		}
	}()
}

// broadcastMessage delivers the client message to all the sessions that
// participate on the chat, except the sender itself.
func (h *Hub) broadcastMessage(msg clientMessage) {
	members, ok := h.chats[msg.chatID]
	if !ok {
		return
	}
	fwd := ForwardMessage{
		Message:  msg.content,
		SenderID: msg.senderID,
		SentAt:   time.Now().Unix(),
	}
	for id := range members {
		if id == msg.sessionID {
			continue
		}
		handle, ok := h.sessions[id]
		if !ok {
			continue
		}
		deliver(handle, fwd)
	}
}

// replayHistory fetches the recent chat history and delivers it to the newly
// connected handle. Runs detached from the hub loop, so a slow store never
// blocks routing.
func (h *Hub) replayHistory(chatID uint, handle chan<- ForwardMessage) {
	stored, err := h.store.RecentMessages(chatID, h.historyLimit)
	if err != nil {
		log.Printf("Error retrieving the chat history for chat %d: %v", chatID, err)
		return
	}
	for _, msg := range stored {
		deliver(handle, ForwardMessage{
			Message:  msg.Content,
			SenderID: msg.SenderID,
			SentAt:   msg.CreatedAt.Unix(),
		})
	}
}

// deliver hands the message to a session handle without blocking. A session
// that is mid-teardown or hopelessly behind simply misses the message.
func deliver(handle chan<- ForwardMessage, msg ForwardMessage) {
	select {
	case handle <- msg:
	default:
	}
}
