package hub

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	h := NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go h.Run(ctx)
	return h
}

func newClient(id string, teams ...uuid.UUID) *Client {
	c := &Client{
		ID:        id,
		ProfileID: uuid.New(),
		Name:      "Ada",
		Teams:     make(map[uuid.UUID]bool),
		Send:      make(chan []byte, 16),
	}
	for _, teamID := range teams {
		c.Teams[teamID] = true
	}
	return c
}

func isRegistered(h *Hub, clientID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[clientID]
	return ok
}

func receiveEvent(t *testing.T, c *Client, eventType string) Event {
	t.Helper()
	deadline := time.After(200 * time.Millisecond)
	for {
		select {
		case msg, ok := <-c.Send:
			require.True(t, ok, "send channel closed")
			var event Event
			require.NoError(t, json.Unmarshal(msg, &event))
			if event.Type == eventType {
				return event
			}
		case <-deadline:
			t.Fatalf("did not receive %s", eventType)
		}
	}
}

func assertNoEvent(t *testing.T, c *Client, eventType string) {
	t.Helper()
	timeout := time.After(50 * time.Millisecond)
	for {
		select {
		case msg := <-c.Send:
			var event Event
			require.NoError(t, json.Unmarshal(msg, &event))
			assert.NotEqual(t, eventType, event.Type)
		case <-timeout:
			return
		}
	}
}

func decodeData(t *testing.T, event Event, out any) {
	t.Helper()
	raw, err := json.Marshal(event.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

func TestHub_RegisterAndUnregister(t *testing.T) {
	h := startHub(t)
	client := newClient("client-1")

	h.Register(client)
	require.Eventually(t, func() bool { return isRegistered(h, client.ID) }, time.Second, 5*time.Millisecond)

	h.Unregister(client)
	require.Eventually(t, func() bool { return !isRegistered(h, client.ID) }, time.Second, 5*time.Millisecond)

	_, ok := <-client.Send
	assert.False(t, ok)
}

func TestHub_UnregisterUnknownClient(t *testing.T) {
	h := startHub(t)

	h.Unregister(newClient("nobody"))
	assert.False(t, h.Subscribe("nobody", uuid.New(), uuid.New()))
	assert.False(t, h.Unsubscribe("nobody", uuid.New(), uuid.New()))

	assert.False(t, h.IsSubscribed("nobody", uuid.New()))
}

func TestHub_RegisterAnnouncesPresence(t *testing.T) {
	h := startHub(t)
	teamID := uuid.New()
	client := newClient("client-1", teamID)

	h.Register(client)

	event := receiveEvent(t, client, EventPresenceUpdate)
	assert.Equal(t, teamID, *event.TeamID)

	var data PresenceUpdateData
	decodeData(t, event, &data)
	require.Len(t, data.Online, 1)
	assert.Equal(t, client.ProfileID, data.Online[0].ProfileID)
}

func TestHub_SubscribeAndUnsubscribe(t *testing.T) {
	h := startHub(t)
	teamID := uuid.New()
	client := newClient("client-1")

	h.Register(client)
	require.Eventually(t, func() bool { return isRegistered(h, client.ID) }, time.Second, 5*time.Millisecond)

	require.True(t, h.Subscribe(client.ID, client.ProfileID, teamID))
	assert.True(t, h.IsSubscribed(client.ID, teamID))
	receiveEvent(t, client, EventPresenceUpdate)

	require.True(t, h.Unsubscribe(client.ID, client.ProfileID, teamID))
	assert.False(t, h.IsSubscribed(client.ID, teamID))
}

func TestHub_SubscribeRejectsForeignClient(t *testing.T) {
	h := startHub(t)
	teamID := uuid.New()
	client := newClient("client-1")

	h.Register(client)
	require.Eventually(t, func() bool { return isRegistered(h, client.ID) }, time.Second, 5*time.Millisecond)

	assert.False(t, h.Subscribe(client.ID, uuid.New(), teamID))
	assert.False(t, h.IsSubscribed(client.ID, teamID))
}

func TestHub_BroadcastIsTeamScoped(t *testing.T) {
	h := startHub(t)
	teamID := uuid.New()
	member := newClient("member", teamID)
	outsider := newClient("outsider", uuid.New())

	h.Register(member)
	h.Register(outsider)
	receiveEvent(t, member, EventPresenceUpdate)

	data := JoinRequestCreatedData{
		RequestID:     uuid.New(),
		RequesterID:   uuid.New(),
		RequesterName: "Grace",
		Role:          "Designer",
	}
	h.BroadcastJoinRequestCreated(teamID, data)

	event := receiveEvent(t, member, EventJoinRequestCreated)
	var got JoinRequestCreatedData
	decodeData(t, event, &got)
	assert.Equal(t, data, got)

	assertNoEvent(t, outsider, EventJoinRequestCreated)
}

func TestHub_BroadcastResolvedAndMemberJoined(t *testing.T) {
	h := startHub(t)
	teamID := uuid.New()
	client := newClient("client-1", teamID)
	h.Register(client)

	requestID, requesterID, creatorID := uuid.New(), uuid.New(), uuid.New()
	h.BroadcastJoinRequestResolved(teamID, JoinRequestResolvedData{
		RequestID:   requestID,
		RequesterID: requesterID,
		Status:      "approved",
		ResolvedBy:  creatorID,
	})
	h.BroadcastMemberJoined(teamID, requesterID, "Grace", nil)

	resolved := receiveEvent(t, client, EventJoinRequestResolved)
	var resolvedData JoinRequestResolvedData
	decodeData(t, resolved, &resolvedData)
	assert.Equal(t, "approved", resolvedData.Status)
	assert.Equal(t, creatorID, resolvedData.ResolvedBy)

	joined := receiveEvent(t, client, EventMemberJoined)
	var joinedData MemberJoinedData
	decodeData(t, joined, &joinedData)
	assert.Equal(t, requesterID, joinedData.ProfileID)
	assert.Equal(t, "Grace", joinedData.Name)
}

func TestHub_BroadcastChatMessage(t *testing.T) {
	h := startHub(t)
	teamID := uuid.New()
	client := newClient("client-1", teamID)
	h.Register(client)

	h.BroadcastChatMessage(teamID, ChatMessageData{
		ID:           uuid.New(),
		SenderID:     uuid.New(),
		SenderName:   "Ada",
		Text:         "hello team",
		OriginalText: "hola equipo",
		CreatedAt:    time.Now(),
	})

	event := receiveEvent(t, client, EventChatMessage)
	var data ChatMessageData
	decodeData(t, event, &data)
	assert.Equal(t, "hello team", data.Text)
	assert.Equal(t, "hola equipo", data.OriginalText)
}

func TestHub_FullBufferDropsEvent(t *testing.T) {
	h := startHub(t)
	teamID := uuid.New()
	client := newClient("client-1")
	client.Send = make(chan []byte, 1)

	h.Register(client)
	require.Eventually(t, func() bool { return isRegistered(h, client.ID) }, time.Second, 5*time.Millisecond)
	h.mu.Lock()
	client.Teams[teamID] = true
	h.mu.Unlock()

	client.Send <- []byte("fill")
	h.BroadcastMemberJoined(teamID, uuid.New(), "Grace", nil)
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, []byte("fill"), <-client.Send)
	select {
	case <-client.Send:
		t.Fatal("should not receive dropped event")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_PresenceDeduplicatesProfiles(t *testing.T) {
	h := startHub(t)
	teamID := uuid.New()
	first := newClient("tab-1", teamID)
	second := newClient("tab-2", teamID)
	second.ProfileID = first.ProfileID

	h.Register(first)
	h.Register(second)
	require.Eventually(t, func() bool { return isRegistered(h, second.ID) }, time.Second, 5*time.Millisecond)

	h.Subscribe(second.ID, second.ProfileID, teamID)
	event := receiveEvent(t, second, EventPresenceUpdate)
	var data PresenceUpdateData
	decodeData(t, event, &data)
	assert.Len(t, data.Online, 1)
}

func TestHub_ShutdownClosesClients(t *testing.T) {
	h := NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(stopped)
	}()

	client := newClient("client-1")
	h.Register(client)
	require.Eventually(t, func() bool { return isRegistered(h, client.ID) }, time.Second, 5*time.Millisecond)

	cancel()
	<-stopped

	_, ok := <-client.Send
	assert.False(t, ok)

	late := newClient("late")
	h.Register(late)
	_, ok = <-late.Send
	assert.False(t, ok)

	h.Unregister(client)
	h.BroadcastMemberJoined(uuid.New(), uuid.New(), "Grace", nil)
}

func TestHub_LogsDroppedEvents(t *testing.T) {
	buf := &lockedBuffer{}
	h := NewHub(zerolog.New(buf).Level(zerolog.DebugLevel))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go h.Run(ctx)

	teamID := uuid.New()
	client := newClient("slow", teamID)
	client.Send = make(chan []byte, 1)

	// The presence update on register fills the single-slot buffer.
	h.Register(client)
	require.Eventually(t, func() bool { return len(client.Send) == 1 }, time.Second, 5*time.Millisecond)

	h.BroadcastChatMessage(teamID, ChatMessageData{ID: uuid.New(), Text: "hi"})

	require.Eventually(t, func() bool {
		return strings.Contains(buf.String(), "event dropped")
	}, time.Second, 5*time.Millisecond)
	assert.Contains(t, buf.String(), `"component":"hub"`)
	assert.Contains(t, buf.String(), `"client_id":"slow"`)
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
