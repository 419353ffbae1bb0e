package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/obj8899/studio/internal/assistant"
	"github.com/obj8899/studio/internal/database"
	"github.com/obj8899/studio/internal/models"
)

const messageColumns = `id, team_id, sender_id, sender_name, sender_avatar_url, text, original_text, created_at`

type Moderator interface {
	ModerateAndTranslate(ctx context.Context, message string) (*assistant.Moderation, error)
}

// PassthroughModerator stores messages as written. main uses it when no assistant is configured.
type PassthroughModerator struct{}

func (PassthroughModerator) ModerateAndTranslate(_ context.Context, message string) (*assistant.Moderation, error) {
	return &assistant.Moderation{TranslatedText: message}, nil
}

type ChatService struct {
	db           *database.DB
	teams        *TeamService
	profiles     *ProfileService
	moderator    Moderator
	historyLimit int
}

func NewChatService(db *database.DB, teams *TeamService, profiles *ProfileService, moderator Moderator, historyLimit int) *ChatService {
	if historyLimit <= 0 {
		historyLimit = 100
	}
	return &ChatService{
		db:           db,
		teams:        teams,
		profiles:     profiles,
		moderator:    moderator,
		historyLimit: historyLimit,
	}
}

// Send moderates and translates text, then stores it for the team. Flagged messages are not stored.
func (s *ChatService) Send(ctx context.Context, teamID, senderID uuid.UUID, text string) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, validationError("message text is required")
	}

	isMember, err := s.teams.IsMember(ctx, teamID, senderID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrNotTeamMember
	}

	sender, err := s.profiles.GetByID(ctx, senderID)
	if err != nil {
		return nil, err
	}

	moderation, err := s.moderator.ModerateAndTranslate(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: moderation: %w", ErrUnavailable, err)
	}
	if moderation.IsProfane {
		return nil, ErrMessageBlocked
	}

	ctx, cancel := s.db.WithTimeout(ctx)
	defer cancel()

	msg, err := scanMessage(s.db.Pool.QueryRow(ctx, `
		INSERT INTO team_messages (team_id, sender_id, sender_name, sender_avatar_url, text, original_text)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+messageColumns,
		teamID, senderID, sender.Name, sender.AvatarURL, moderation.TranslatedText, text))
	if err != nil {
		return nil, fmt.Errorf("failed to store message: %w", storeError(err, nil))
	}
	return msg, nil
}

// History returns up to limit of the team's latest messages, oldest first.
func (s *ChatService) History(ctx context.Context, teamID, viewerID uuid.UUID, limit int) ([]models.Message, error) {
	if limit <= 0 || limit > s.historyLimit {
		limit = s.historyLimit
	}

	isMember, err := s.teams.IsMember(ctx, teamID, viewerID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrNotTeamMember
	}

	ctx, cancel := s.db.WithTimeout(ctx)
	defer cancel()

	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+messageColumns+` FROM (
			SELECT `+messageColumns+` FROM team_messages
			WHERE team_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2
		) latest
		ORDER BY created_at, id
	`, teamID, limit)
	if err != nil {
		return nil, storeError(err, nil)
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, *m)
	}
	return messages, storeError(rows.Err(), nil)
}

func scanMessage(row pgx.Row) (*models.Message, error) {
	var m models.Message
	err := row.Scan(&m.ID, &m.TeamID, &m.SenderID, &m.SenderName, &m.SenderAvatarURL, &m.Text, &m.OriginalText, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
