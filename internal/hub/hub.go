package hub

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	EventJoinRequestCreated  = "join_request_created"
	EventJoinRequestResolved = "join_request_resolved"
	EventMemberJoined        = "member_joined"
	EventChatMessage         = "chat_message"
	EventPresenceUpdate      = "presence_update"
)

type Event struct {
	Type   string     `json:"type"`
	TeamID *uuid.UUID `json:"team_id,omitempty"`
	Data   any        `json:"data,omitempty"`
}

type JoinRequestCreatedData struct {
	RequestID     uuid.UUID `json:"request_id"`
	RequesterID   uuid.UUID `json:"requester_id"`
	RequesterName string    `json:"requester_name"`
	Role          string    `json:"role"`
}

type JoinRequestResolvedData struct {
	RequestID   uuid.UUID `json:"request_id"`
	RequesterID uuid.UUID `json:"requester_id"`
	Status      string    `json:"status"`
	ResolvedBy  uuid.UUID `json:"resolved_by"`
}

type MemberJoinedData struct {
	ProfileID uuid.UUID `json:"profile_id"`
	Name      string    `json:"name"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
}

type ChatMessageData struct {
	ID              uuid.UUID `json:"id"`
	SenderID        uuid.UUID `json:"sender_id"`
	SenderName      string    `json:"sender_name"`
	SenderAvatarURL *string   `json:"sender_avatar_url,omitempty"`
	Text            string    `json:"text"`
	OriginalText    string    `json:"original_text"`
	CreatedAt       time.Time `json:"created_at"`
}

type OnlineMember struct {
	ProfileID uuid.UUID `json:"profile_id"`
	Name      string    `json:"name"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
}

type PresenceUpdateData struct {
	Online []OnlineMember `json:"online"`
}

// Client is one live connection. Teams is guarded by the hub's lock once the client is registered.
type Client struct {
	ID        string
	ProfileID uuid.UUID
	Name      string
	AvatarURL *string
	Teams     map[uuid.UUID]bool
	Send      chan []byte
}

type TeamMessage struct {
	TeamID uuid.UUID
	Event  Event
}

type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan *TeamMessage
	done       chan struct{}
	mu         sync.RWMutex
	log        zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		log:        log.With().Str("component", "hub").Logger(),
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *TeamMessage, 256),
		done:       make(chan struct{}),
	}
}

// Run dispatches registrations and broadcasts until ctx is cancelled, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer h.shutdown()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			teams := subscribedTeams(client)
			h.mu.Unlock()

			for _, teamID := range teams {
				h.broadcastPresence(teamID)
			}

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				teams := subscribedTeams(client)
				delete(h.clients, client.ID)
				close(client.Send)
				h.mu.Unlock()

				for _, teamID := range teams {
					h.broadcastPresence(teamID)
				}
			} else {
				h.mu.Unlock()
			}

		case msg := <-h.broadcast:
			data, err := json.Marshal(msg.Event)
			if err != nil {
				h.log.Error().Err(err).Str("event", msg.Event.Type).Msg("failed to encode hub event")
				continue
			}
			h.deliver(msg.TeamID, msg.Event.Type, data)
		}
	}
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	close(h.done)
	for id, client := range h.clients {
		delete(h.clients, id)
		close(client.Send)
	}
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.Send)
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Subscribe adds a team to a client owned by profileID. It reports false when the client is unknown
// or belongs to another profile.
func (h *Hub) Subscribe(clientID string, profileID, teamID uuid.UUID) bool {
	h.mu.Lock()
	client, ok := h.clients[clientID]
	ok = ok && client.ProfileID == profileID
	if ok {
		client.Teams[teamID] = true
	}
	h.mu.Unlock()

	if ok {
		h.broadcastPresence(teamID)
	}
	return ok
}

func (h *Hub) Unsubscribe(clientID string, profileID, teamID uuid.UUID) bool {
	h.mu.Lock()
	client, ok := h.clients[clientID]
	ok = ok && client.ProfileID == profileID
	if ok {
		delete(client.Teams, teamID)
	}
	h.mu.Unlock()

	if ok {
		h.broadcastPresence(teamID)
	}
	return ok
}

func (h *Hub) IsSubscribed(clientID string, teamID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	client, ok := h.clients[clientID]
	return ok && client.Teams[teamID]
}

func (h *Hub) BroadcastJoinRequestCreated(teamID uuid.UUID, data JoinRequestCreatedData) {
	h.publish(teamID, EventJoinRequestCreated, data)
}

func (h *Hub) BroadcastJoinRequestResolved(teamID uuid.UUID, data JoinRequestResolvedData) {
	h.publish(teamID, EventJoinRequestResolved, data)
}

func (h *Hub) BroadcastMemberJoined(teamID, profileID uuid.UUID, name string, avatarURL *string) {
	h.publish(teamID, EventMemberJoined, MemberJoinedData{
		ProfileID: profileID,
		Name:      name,
		AvatarURL: avatarURL,
	})
}

func (h *Hub) BroadcastChatMessage(teamID uuid.UUID, data ChatMessageData) {
	h.publish(teamID, EventChatMessage, data)
}

func (h *Hub) publish(teamID uuid.UUID, eventType string, data any) {
	msg := &TeamMessage{
		TeamID: teamID,
		Event: Event{
			Type:   eventType,
			TeamID: &teamID,
			Data:   data,
		},
	}

	select {
	case h.broadcast <- msg:
	case <-h.done:
	}
}

// deliver never blocks: a client whose buffer is full misses the event.
func (h *Hub) deliver(teamID uuid.UUID, eventType string, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		if !client.Teams[teamID] {
			continue
		}
		select {
		case client.Send <- data:
		default:
			h.log.Debug().Str("client_id", client.ID).Str("event", eventType).Msg("client buffer full, event dropped")
		}
	}
}

func (h *Hub) broadcastPresence(teamID uuid.UUID) {
	h.mu.RLock()
	seen := make(map[uuid.UUID]bool)
	online := []OnlineMember{}
	for _, client := range h.clients {
		if client.Teams[teamID] && !seen[client.ProfileID] {
			seen[client.ProfileID] = true
			online = append(online, OnlineMember{
				ProfileID: client.ProfileID,
				Name:      client.Name,
				AvatarURL: client.AvatarURL,
			})
		}
	}
	h.mu.RUnlock()

	data, err := json.Marshal(Event{
		Type:   EventPresenceUpdate,
		TeamID: &teamID,
		Data:   PresenceUpdateData{Online: online},
	})
	if err != nil {
		return
	}
	h.deliver(teamID, EventPresenceUpdate, data)
}

func subscribedTeams(client *Client) []uuid.UUID {
	teams := make([]uuid.UUID, 0, len(client.Teams))
	for teamID := range client.Teams {
		teams = append(teams, teamID)
	}
	return teams
}
