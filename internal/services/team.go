package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/obj8899/studio/internal/database"
	"github.com/obj8899/studio/internal/models"
)

// teamSelect returns teams with their member ids in join order. Callers append WHERE and ORDER BY
// around the GROUP BY placeholder.
const teamSelect = `
	SELECT t.id, t.name, t.project_description, t.open_roles, t.required_skills, t.creator_id, t.created_at,
		COALESCE(
			array_agg(m.profile_id ORDER BY m.joined_at, m.profile_id) FILTER (WHERE m.profile_id IS NOT NULL),
			'{}'
		) AS member_ids
	FROM teams t
	LEFT JOIN team_members m ON m.team_id = t.id`

type TeamService struct {
	db       *database.DB
	profiles *ProfileService
}

func NewTeamService(db *database.DB, profiles *ProfileService) *TeamService {
	return &TeamService{db: db, profiles: profiles}
}

// Create inserts the team and its creator's membership in one transaction.
func (s *TeamService) Create(ctx context.Context, creatorID uuid.UUID, in models.TeamInput) (*models.Team, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, validationError("name is required")
	}
	openRoles := compactList(in.OpenRoles)
	requiredSkills := compactList(in.RequiredSkills)

	ctx, cancel := s.db.WithTimeout(ctx)
	defer cancel()

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", storeError(err, nil))
	}
	defer func() { _ = tx.Rollback(ctx) }()

	team := models.Team{
		Name:               name,
		ProjectDescription: strings.TrimSpace(in.ProjectDescription),
		OpenRoles:          openRoles,
		RequiredSkills:     requiredSkills,
		CreatorID:          creatorID,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO teams (name, project_description, open_roles, required_skills, creator_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, team.Name, team.ProjectDescription, team.OpenRoles, team.RequiredSkills, creatorID).Scan(&team.ID, &team.CreatedAt)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to create team: %w", storeError(err, nil))
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO team_members (team_id, profile_id)
		VALUES ($1, $2)
	`, team.ID, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to add creator as member: %w", storeError(err, nil))
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", storeError(err, nil))
	}

	team.MemberIDs = []uuid.UUID{creatorID}
	return &team, nil
}

func (s *TeamService) GetByID(ctx context.Context, teamID uuid.UUID) (*models.Team, error) {
	ctx, cancel := s.db.WithTimeout(ctx)
	defer cancel()

	team, err := scanTeam(s.db.Pool.QueryRow(ctx, teamSelect+`
		WHERE t.id = $1
		GROUP BY t.id
	`, teamID))
	if err != nil {
		return nil, storeError(err, ErrTeamNotFound)
	}
	return team, nil
}

// List returns every team, newest first.
func (s *TeamService) List(ctx context.Context) ([]models.Team, error) {
	return s.queryTeams(ctx, teamSelect+`
		GROUP BY t.id
		ORDER BY t.created_at DESC, t.id
	`)
}

func (s *TeamService) TeamsOwnedBy(ctx context.Context, profileID uuid.UUID) ([]models.Team, error) {
	return s.queryTeams(ctx, teamSelect+`
		WHERE t.creator_id = $1
		GROUP BY t.id
		ORDER BY t.created_at, t.id
	`, profileID)
}

func (s *TeamService) TeamsJoinedBy(ctx context.Context, profileID uuid.UUID) ([]models.Team, error) {
	return s.queryTeams(ctx, teamSelect+`
		WHERE t.id IN (SELECT team_id FROM team_members WHERE profile_id = $1)
		GROUP BY t.id
		ORDER BY t.created_at, t.id
	`, profileID)
}

// AddMember is a set-add: adding an existing member is a no-op.
func (s *TeamService) AddMember(ctx context.Context, teamID, profileID uuid.UUID) error {
	ctx, cancel := s.db.WithTimeout(ctx)
	defer cancel()

	return addMember(ctx, s.db.Pool, teamID, profileID)
}

func (s *TeamService) IsCreator(ctx context.Context, teamID, profileID uuid.UUID) (bool, error) {
	ctx, cancel := s.db.WithTimeout(ctx)
	defer cancel()

	var isCreator bool
	err := s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM teams WHERE id = $1 AND creator_id = $2)
	`, teamID, profileID).Scan(&isCreator)
	return isCreator, storeError(err, nil)
}

func (s *TeamService) IsMember(ctx context.Context, teamID, profileID uuid.UUID) (bool, error) {
	ctx, cancel := s.db.WithTimeout(ctx)
	defer cancel()

	var isMember bool
	err := s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM team_members WHERE team_id = $1 AND profile_id = $2)
	`, teamID, profileID).Scan(&isMember)
	return isMember, storeError(err, nil)
}

// ResolveMembers returns the member profiles in member order. Ids with no profile are skipped.
func (s *TeamService) ResolveMembers(ctx context.Context, team *models.Team) ([]models.Profile, error) {
	byID, err := s.profiles.GetByIDs(ctx, team.MemberIDs)
	if err != nil {
		return nil, err
	}

	members := make([]models.Profile, 0, len(byID))
	for _, id := range team.MemberIDs {
		if p, ok := byID[id]; ok {
			members = append(members, *p)
		}
	}
	return members, nil
}

func (s *TeamService) queryTeams(ctx context.Context, sql string, args ...any) ([]models.Team, error) {
	ctx, cancel := s.db.WithTimeout(ctx)
	defer cancel()

	rows, err := s.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, storeError(err, nil)
	}
	defer rows.Close()

	teams := []models.Team{}
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, *team)
	}
	return teams, storeError(rows.Err(), nil)
}

func addMember(ctx context.Context, q execer, teamID, profileID uuid.UUID) error {
	_, err := q.Exec(ctx, `
		INSERT INTO team_members (team_id, profile_id)
		VALUES ($1, $2)
		ON CONFLICT (team_id, profile_id) DO NOTHING
	`, teamID, profileID)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return ErrTeamNotFound
		}
		return storeError(err, nil)
	}
	return nil
}

func scanTeam(row pgx.Row) (*models.Team, error) {
	var t models.Team
	err := row.Scan(
		&t.ID, &t.Name, &t.ProjectDescription, &t.OpenRoles, &t.RequiredSkills,
		&t.CreatorID, &t.CreatedAt, &t.MemberIDs,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// compactList trims entries and drops blanks, keeping order and returning a non-nil slice.
func compactList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
