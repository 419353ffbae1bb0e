package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/obj8899/studio/internal/database"
	"github.com/obj8899/studio/internal/models"
)

const profileColumns = `id, email, name, avatar_url, skills, passion, availability, languages, interests,
	experience, social_links, pulse_index, created_at, updated_at`

const (
	minNameLength    = 2
	minPassionLength = 10
)

type ProfileService struct {
	db *database.DB
}

func NewProfileService(db *database.DB) *ProfileService {
	return &ProfileService{db: db}
}

func (s *ProfileService) Create(ctx context.Context, id uuid.UUID, email, name string) (*models.Profile, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	if email == "" {
		return nil, validationError("email is required")
	}
	if utf8.RuneCountInString(name) < minNameLength {
		return nil, validationError("name must be at least %d characters", minNameLength)
	}

	ctx, cancel := s.db.WithTimeout(ctx)
	defer cancel()

	profile, err := scanProfile(s.db.Pool.QueryRow(ctx, `
		INSERT INTO profiles (id, email, name)
		VALUES ($1, $2, $3)
		RETURNING `+profileColumns,
		id, email, name))
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return nil, ErrProfileExists
		}
		return nil, fmt.Errorf("failed to create profile: %w", storeError(err, nil))
	}
	return profile, nil
}

func (s *ProfileService) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	ctx, cancel := s.db.WithTimeout(ctx)
	defer cancel()

	profile, err := scanProfile(s.db.Pool.QueryRow(ctx, `
		SELECT `+profileColumns+` FROM profiles WHERE id = $1
	`, id))
	if err != nil {
		return nil, storeError(err, ErrProfileNotFound)
	}
	return profile, nil
}

// GetByIDs returns the profiles that exist among ids, keyed by id.
func (s *ProfileService) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.Profile, error) {
	result := make(map[uuid.UUID]*models.Profile, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	ctx, cancel := s.db.WithTimeout(ctx)
	defer cancel()

	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+profileColumns+` FROM profiles WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return nil, storeError(err, nil)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		result[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(err, nil)
	}
	return result, nil
}

func (s *ProfileService) List(ctx context.Context) ([]models.Profile, error) {
	ctx, cancel := s.db.WithTimeout(ctx)
	defer cancel()

	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+profileColumns+` FROM profiles ORDER BY created_at, id
	`)
	if err != nil {
		return nil, storeError(err, nil)
	}
	defer rows.Close()

	profiles := []models.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, storeError(rows.Err(), nil)
}

// Update applies the non-nil fields of u. List fields are trimmed and de-duplicated.
func (s *ProfileService) Update(ctx context.Context, id uuid.UUID, u models.ProfileUpdate) (*models.Profile, error) {
	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		if utf8.RuneCountInString(name) < minNameLength {
			return nil, validationError("name must be at least %d characters", minNameLength)
		}
		u.Name = &name
	}
	if u.Passion != nil {
		passion := strings.TrimSpace(*u.Passion)
		if utf8.RuneCountInString(passion) < minPassionLength {
			return nil, validationError("passion must be at least %d characters", minPassionLength)
		}
		u.Passion = &passion
	}
	u.Skills = normalizeList(u.Skills)
	u.Languages = normalizeList(u.Languages)
	u.Interests = normalizeList(u.Interests)
	u.SocialLinks = normalizeList(u.SocialLinks)

	ctx, cancel := s.db.WithTimeout(ctx)
	defer cancel()

	profile, err := scanProfile(s.db.Pool.QueryRow(ctx, `
		UPDATE profiles SET
			name = COALESCE($2, name),
			avatar_url = COALESCE($3, avatar_url),
			skills = COALESCE($4, skills),
			passion = COALESCE($5, passion),
			availability = COALESCE($6, availability),
			languages = COALESCE($7, languages),
			interests = COALESCE($8, interests),
			experience = COALESCE($9, experience),
			social_links = COALESCE($10, social_links),
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+profileColumns,
		id, u.Name, u.AvatarURL, u.Skills, u.Passion, u.Availability,
		u.Languages, u.Interests, u.Experience, u.SocialLinks))
	if err != nil {
		return nil, storeError(err, ErrProfileNotFound)
	}
	return profile, nil
}

// IncrementReputation adds delta to the profile's pulse index in a single statement.
func (s *ProfileService) IncrementReputation(ctx context.Context, id uuid.UUID, delta int) error {
	ctx, cancel := s.db.WithTimeout(ctx)
	defer cancel()

	return incrementPulse(ctx, s.db.Pool, id, delta)
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func incrementPulse(ctx context.Context, q execer, id uuid.UUID, delta int) error {
	result, err := q.Exec(ctx, `
		UPDATE profiles SET pulse_index = pulse_index + $1, updated_at = NOW()
		WHERE id = $2
	`, delta, id)
	if err != nil {
		return storeError(err, nil)
	}
	if result.RowsAffected() == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var p models.Profile
	err := row.Scan(
		&p.ID, &p.Email, &p.Name, &p.AvatarURL, &p.Skills, &p.Passion, &p.Availability,
		&p.Languages, &p.Interests, &p.Experience, &p.SocialLinks, &p.PulseIndex,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// normalizeList trims entries, drops blanks and duplicates, and keeps nil as nil.
func normalizeList(items []string) []string {
	if items == nil {
		return nil
	}
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}
