package handlers

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/websocket"
	"github.com/obj8899/studio/internal/hub"
	"github.com/obj8899/studio/internal/middleware"
	"github.com/obj8899/studio/internal/models"
	"github.com/obj8899/studio/internal/services"
	"github.com/obj8899/studio/pkg/dto"
	"github.com/rs/zerolog"
)

type ChatHandler struct {
	chatService    ChatServiceInterface
	teamService    TeamServiceInterface
	profileService ProfileServiceInterface
	hub            HubInterface
}

func NewChatHandler(chatService ChatServiceInterface, teamService TeamServiceInterface, profileService ProfileServiceInterface, hub HubInterface) *ChatHandler {
	return &ChatHandler{
		chatService:    chatService,
		teamService:    teamService,
		profileService: profileService,
		hub:            hub,
	}
}

func (h *ChatHandler) History(c *drift.Context) {
	profileID := middleware.GetProfileID(c)
	if profileID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid team id")
		return
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil || limit < 1 {
			badRequest(c, "limit must be a positive integer")
			return
		}
	}

	messages, err := h.chatService.History(c.Request.Context(), teamID, profileID, limit)
	if err != nil {
		respondError(c, err, "failed to get messages")
		return
	}

	response := make([]dto.MessageResponse, len(messages))
	for i := range messages {
		response[i] = toMessageResponse(&messages[i])
	}

	_ = c.JSON(200, response)
}

func (h *ChatHandler) Send(c *drift.Context) {
	profileID := middleware.GetProfileID(c)
	if profileID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid team id")
		return
	}

	var req dto.SendMessageRequest
	if err := c.BindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	msg, err := h.send(c.Request.Context(), teamID, profileID, req.Text)
	if err != nil {
		respondError(c, err, "failed to send message")
		return
	}

	_ = c.JSON(201, toMessageResponse(msg))
}

func (h *ChatHandler) send(ctx context.Context, teamID, profileID uuid.UUID, text string) (*models.Message, error) {
	msg, err := h.chatService.Send(ctx, teamID, profileID, text)
	if err != nil {
		return nil, err
	}

	h.hub.BroadcastChatMessage(teamID, hub.ChatMessageData{
		ID:              msg.ID,
		SenderID:        msg.SenderID,
		SenderName:      msg.SenderName,
		SenderAvatarURL: msg.SenderAvatarURL,
		Text:            msg.Text,
		OriginalText:    msg.OriginalText,
		CreatedAt:       msg.CreatedAt,
	})
	return msg, nil
}

// Connect upgrades to a websocket for one team. Incoming {"text": ...} frames are sent as chat
// messages; every hub event for the team is pushed back out.
func (h *ChatHandler) Connect(c *drift.Context) {
	profileID := middleware.GetProfileID(c)
	if profileID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid team id")
		return
	}

	ctx := c.Request.Context()
	logger := zerolog.Ctx(ctx)

	isMember, err := h.teamService.IsMember(ctx, teamID, profileID)
	if err != nil {
		respondError(c, err, "failed to check membership")
		return
	}
	if !isMember {
		respondError(c, services.ErrNotTeamMember, "")
		return
	}

	profile, err := h.profileService.GetByID(ctx, profileID)
	if err != nil {
		respondError(c, err, "failed to get profile")
		return
	}

	conn, err := websocket.Upgrade(c)
	if err != nil {
		logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	var writeMu sync.Mutex
	writeJSON := func(v any) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(v)
	}

	client := &hub.Client{
		ID:        uuid.New().String(),
		ProfileID: profileID,
		Name:      profile.Name,
		AvatarURL: profile.AvatarURL,
		Teams:     map[uuid.UUID]bool{teamID: true},
		Send:      make(chan []byte, 256),
	}
	h.hub.Register(client)

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for msg := range client.Send {
			writeMu.Lock()
			err := conn.WriteText(string(msg))
			writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}()

	defer func() {
		h.hub.Unregister(client)
		<-writerDone
		if err := conn.Close(websocket.CloseNormalClosure, ""); err != nil {
			logger.Debug().Err(err).Msg("websocket close error")
		}
	}()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			logger.Debug().Err(err).Msg("websocket read ended")
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		var req dto.SendMessageRequest
		if err := json.Unmarshal(data, &req); err != nil {
			if writeJSON(errorFrame("validation_failed", "invalid message frame")) != nil {
				return
			}
			continue
		}

		if _, err := h.send(ctx, teamID, profileID, req.Text); err != nil {
			_, code := classify(err)
			message := err.Error()
			if code == "internal" {
				logger.Error().Err(err).Msg("failed to send chat message")
				message = "failed to send message"
			}
			if writeJSON(errorFrame(code, message)) != nil {
				return
			}
		}
	}
}

func errorFrame(code, message string) map[string]any {
	return map[string]any{
		"type":  "error",
		"error": dto.ErrorBody{Code: code, Message: message},
	}
}
