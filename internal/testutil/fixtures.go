package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/obj8899/studio/internal/database"
	"github.com/obj8899/studio/internal/models"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateProfile inserts a profile with default values
func (f *Fixtures) CreateProfile(t *testing.T, opts ...ProfileOption) *models.Profile {
	t.Helper()
	f.counter++

	p := &models.Profile{
		ID:     uuid.New(),
		Email:  fmt.Sprintf("student%d@campus.edu", f.counter),
		Name:   fmt.Sprintf("Student %d", f.counter),
		Skills: []string{"Go"},
	}
	for _, opt := range opts {
		opt(p)
	}

	err := f.db.Pool.QueryRow(context.Background(), `
		INSERT INTO profiles (id, email, name, skills, pulse_index)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`, p.ID, p.Email, p.Name, p.Skills, p.PulseIndex).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}

	return p
}

// ProfileOption configures a test profile
type ProfileOption func(*models.Profile)

func WithProfileName(name string) ProfileOption {
	return func(p *models.Profile) {
		p.Name = name
	}
}

func WithPulseIndex(n int) ProfileOption {
	return func(p *models.Profile) {
		p.PulseIndex = n
	}
}

// CreateTeam inserts a team whose only member is its creator
func (f *Fixtures) CreateTeam(t *testing.T, creator *models.Profile, opts ...TeamOption) *models.Team {
	t.Helper()
	f.counter++

	team := &models.Team{
		Name:               fmt.Sprintf("Team %d", f.counter),
		ProjectDescription: "Test project",
		OpenRoles:          []string{"Designer"},
		RequiredSkills:     []string{"Figma"},
		CreatorID:          creator.ID,
	}
	for _, opt := range opts {
		opt(team)
	}

	ctx := context.Background()
	tx, err := f.db.Pool.Begin(ctx)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO teams (name, project_description, open_roles, required_skills, creator_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, team.Name, team.ProjectDescription, team.OpenRoles, team.RequiredSkills, team.CreatorID).Scan(&team.ID, &team.CreatedAt)
	if err != nil {
		t.Fatalf("failed to create team: %v", err)
	}

	if _, err := tx.Exec(ctx, `INSERT INTO team_members (team_id, profile_id) VALUES ($1, $2)`, team.ID, creator.ID); err != nil {
		t.Fatalf("failed to add creator as member: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("failed to commit transaction: %v", err)
	}

	team.MemberIDs = []uuid.UUID{creator.ID}
	return team
}

// TeamOption configures a test team
type TeamOption func(*models.Team)

func WithTeamName(name string) TeamOption {
	return func(t *models.Team) {
		t.Name = name
	}
}

func WithOpenRoles(roles ...string) TeamOption {
	return func(t *models.Team) {
		t.OpenRoles = roles
	}
}

// AddTeamMember adds a member id directly. The id need not belong to a profile.
func (f *Fixtures) AddTeamMember(t *testing.T, team *models.Team, profileID uuid.UUID) {
	t.Helper()

	_, err := f.db.Pool.Exec(context.Background(), `
		INSERT INTO team_members (team_id, profile_id)
		VALUES ($1, $2)
		ON CONFLICT (team_id, profile_id) DO NOTHING
	`, team.ID, profileID)
	if err != nil {
		t.Fatalf("failed to add team member: %v", err)
	}
}

// PulseIndex reads a profile's current pulse index
func (f *Fixtures) PulseIndex(t *testing.T, profileID uuid.UUID) int {
	t.Helper()

	var n int
	if err := f.db.Pool.QueryRow(context.Background(), `SELECT pulse_index FROM profiles WHERE id = $1`, profileID).Scan(&n); err != nil {
		t.Fatalf("failed to read pulse index: %v", err)
	}
	return n
}
