package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/obj8899/studio/internal/config"
	"github.com/obj8899/studio/internal/database"
	"github.com/obj8899/studio/internal/models"
	"github.com/rs/zerolog"
)

const joinRequestColumns = `jr.id, jr.team_id, jr.requester_id, jr.requester_name, jr.requester_avatar_url,
	jr.requester_email, jr.role, jr.skills_summary, jr.status, jr.created_at, jr.resolved_at, jr.resolved_by`

type JoinRequestService struct {
	db       *database.DB
	teams    *TeamService
	profiles *ProfileService
	cfg      config.WorkflowConfig
	log      zerolog.Logger
}

func NewJoinRequestService(db *database.DB, teams *TeamService, profiles *ProfileService, cfg config.WorkflowConfig, log zerolog.Logger) *JoinRequestService {
	return &JoinRequestService{
		db:       db,
		teams:    teams,
		profiles: profiles,
		cfg:      cfg,
		log:      log.With().Str("component", "join_requests").Logger(),
	}
}

// Submit records a pending request from requesterID to join teamID.
// At most one pending request may exist per (team, requester).
func (s *JoinRequestService) Submit(ctx context.Context, requesterID, teamID uuid.UUID, role, skillsSummary string) (*models.JoinRequest, error) {
	role = strings.TrimSpace(role)
	skillsSummary = strings.TrimSpace(skillsSummary)
	if role == "" {
		return nil, validationError("role is required")
	}
	if skillsSummary == "" {
		return nil, validationError("skills summary is required")
	}

	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	requester, err := s.profiles.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	if team.HasMember(requesterID) {
		return nil, ErrAlreadyMember
	}
	if !team.HasOpenRole(role) {
		if s.cfg.RolePolicy == config.RolePolicyStrict {
			return nil, validationError("role %q is not open on this team", role)
		}
		s.log.Warn().
			Str("team_id", teamID.String()).
			Str("requester_id", requesterID.String()).
			Str("role", role).
			Msg("join request for a role that is not open")
	}

	ctx, cancel := s.db.WithTimeout(ctx)
	defer cancel()

	req, err := scanJoinRequest(s.db.Pool.QueryRow(ctx, `
		INSERT INTO join_requests AS jr
			(team_id, requester_id, requester_name, requester_avatar_url, requester_email, role, skills_summary, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+joinRequestColumns,
		teamID, requesterID, requester.Name, requester.AvatarURL, requester.Email, role, skillsSummary, models.JoinRequestPending))
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return nil, ErrDuplicatePending
		}
		return nil, fmt.Errorf("failed to create join request: %w", storeError(err, nil))
	}

	s.log.Info().
		Str("request_id", req.ID.String()).
		Str("team_id", teamID.String()).
		Str("requester_id", requesterID.String()).
		Msg("join request submitted")

	return req, nil
}

func (s *JoinRequestService) GetByID(ctx context.Context, requestID uuid.UUID) (*models.JoinRequest, error) {
	ctx, cancel := s.db.WithTimeout(ctx)
	defer cancel()

	req, err := scanJoinRequest(s.db.Pool.QueryRow(ctx, `
		SELECT `+joinRequestColumns+` FROM join_requests jr WHERE jr.id = $1
	`, requestID))
	if err != nil {
		return nil, storeError(err, ErrJoinRequestNotFound)
	}
	return req, nil
}

// ListForTeam returns every request for the team, oldest first.
func (s *JoinRequestService) ListForTeam(ctx context.Context, teamID uuid.UUID) ([]models.JoinRequest, error) {
	return s.queryJoinRequests(ctx, `
		SELECT `+joinRequestColumns+` FROM join_requests jr
		WHERE jr.team_id = $1
		ORDER BY jr.created_at, jr.id
	`, teamID)
}

// ListForTeams returns the requests of several teams, grouped by team and oldest first within a team.
func (s *JoinRequestService) ListForTeams(ctx context.Context, teamIDs []uuid.UUID) ([]models.JoinRequest, error) {
	if len(teamIDs) == 0 {
		return []models.JoinRequest{}, nil
	}
	return s.queryJoinRequests(ctx, `
		SELECT `+joinRequestColumns+` FROM join_requests jr
		WHERE jr.team_id = ANY($1)
		ORDER BY jr.team_id, jr.created_at, jr.id
	`, teamIDs)
}

func (s *JoinRequestService) ListForRequester(ctx context.Context, requesterID uuid.UUID) ([]models.JoinRequest, error) {
	return s.queryJoinRequests(ctx, `
		SELECT `+joinRequestColumns+` FROM join_requests jr
		WHERE jr.requester_id = $1
		ORDER BY jr.created_at, jr.id
	`, requesterID)
}

// ListIncoming returns the requests for every team ownerID created.
func (s *JoinRequestService) ListIncoming(ctx context.Context, ownerID uuid.UUID) ([]models.JoinRequest, error) {
	return s.queryJoinRequests(ctx, `
		SELECT `+joinRequestColumns+` FROM join_requests jr
		JOIN teams t ON t.id = jr.team_id
		WHERE t.creator_id = $1
		ORDER BY jr.team_id, jr.created_at, jr.id
	`, ownerID)
}

// Resolve moves a pending request to approved or rejected. Only the team creator may resolve.
// Approval adds the requester to the team and bumps their pulse index in the same transaction,
// so a retry after a timeout either finds the request resolved or applies everything once.
func (s *JoinRequestService) Resolve(ctx context.Context, requestID, actorID uuid.UUID, decision models.JoinRequestStatus) (*models.JoinRequest, error) {
	if !decision.IsTerminal() {
		return nil, validationError("decision must be %q or %q", models.JoinRequestApproved, models.JoinRequestRejected)
	}

	ctx, cancel := s.db.WithTimeout(ctx)
	defer cancel()

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", storeError(err, nil))
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var (
		teamID, requesterID, creatorID uuid.UUID
		status                         models.JoinRequestStatus
	)
	err = tx.QueryRow(ctx, `
		SELECT jr.team_id, jr.requester_id, jr.status, t.creator_id
		FROM join_requests jr
		JOIN teams t ON t.id = jr.team_id
		WHERE jr.id = $1
		FOR UPDATE OF jr
	`, requestID).Scan(&teamID, &requesterID, &status, &creatorID)
	if err != nil {
		return nil, storeError(err, ErrJoinRequestNotFound)
	}

	if creatorID != actorID {
		return nil, ErrNotTeamCreator
	}
	if status != models.JoinRequestPending {
		return nil, ErrRequestNotPending
	}

	req, err := scanJoinRequest(tx.QueryRow(ctx, `
		UPDATE join_requests AS jr
		SET status = $1, resolved_at = NOW(), resolved_by = $2
		WHERE jr.id = $3 AND jr.status = $4
		RETURNING `+joinRequestColumns,
		decision, actorID, requestID, models.JoinRequestPending))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRequestNotPending
		}
		return nil, fmt.Errorf("failed to update join request: %w", storeError(err, nil))
	}

	if decision == models.JoinRequestApproved {
		if err := addMember(ctx, tx, teamID, requesterID); err != nil {
			return nil, fmt.Errorf("failed to add member: %w", err)
		}
		if err := incrementPulse(ctx, tx, requesterID, s.cfg.ApprovalIncrement); err != nil {
			return nil, fmt.Errorf("failed to update pulse index: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", storeError(err, nil))
	}

	s.log.Info().
		Str("request_id", requestID.String()).
		Str("team_id", teamID.String()).
		Str("requester_id", requesterID.String()).
		Str("status", string(decision)).
		Msg("join request resolved")

	return req, nil
}

func (s *JoinRequestService) queryJoinRequests(ctx context.Context, sql string, args ...any) ([]models.JoinRequest, error) {
	ctx, cancel := s.db.WithTimeout(ctx)
	defer cancel()

	rows, err := s.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, storeError(err, nil)
	}
	defer rows.Close()

	requests := []models.JoinRequest{}
	for rows.Next() {
		req, err := scanJoinRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, storeError(rows.Err(), nil)
}

func scanJoinRequest(row pgx.Row) (*models.JoinRequest, error) {
	var r models.JoinRequest
	err := row.Scan(
		&r.ID, &r.TeamID, &r.RequesterID, &r.RequesterName, &r.RequesterAvatarURL,
		&r.RequesterEmail, &r.Role, &r.SkillsSummary, &r.Status, &r.CreatedAt,
		&r.ResolvedAt, &r.ResolvedBy,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
