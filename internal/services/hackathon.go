package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/obj8899/studio/internal/database"
	"github.com/obj8899/studio/internal/models"
)

type HackathonService struct {
	db  *database.DB
	now func() time.Time
}

func NewHackathonService(db *database.DB) *HackathonService {
	return &HackathonService{db: db, now: time.Now}
}

// HackathonListing is a hackathon with its live flag evaluated at listing time.
type HackathonListing struct {
	models.Hackathon
	Live bool `json:"live"`
}

func (s *HackathonService) Create(ctx context.Context, in models.HackathonInput) (*models.Hackathon, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, validationError("name is required")
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return nil, validationError("start and end dates are required")
	}
	if in.EndDate.Before(in.StartDate) {
		return nil, validationError("end date is before start date")
	}

	ctx, cancel := s.db.WithTimeout(ctx)
	defer cancel()

	h, err := scanHackathon(s.db.Pool.QueryRow(ctx, `
		INSERT INTO hackathons (name, description, category, start_date, end_date, registration_link)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, description, category, start_date, end_date, registration_link, created_at
	`, in.Name, strings.TrimSpace(in.Description), strings.TrimSpace(in.Category), in.StartDate, in.EndDate, strings.TrimSpace(in.RegistrationLink)))
	if err != nil {
		return nil, fmt.Errorf("failed to create hackathon: %w", storeError(err, nil))
	}
	return h, nil
}

func (s *HackathonService) List(ctx context.Context) ([]HackathonListing, error) {
	ctx, cancel := s.db.WithTimeout(ctx)
	defer cancel()

	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, name, description, category, start_date, end_date, registration_link, created_at
		FROM hackathons
		ORDER BY start_date, id
	`)
	if err != nil {
		return nil, storeError(err, nil)
	}
	defer rows.Close()

	now := s.now()
	listings := []HackathonListing{}
	for rows.Next() {
		h, err := scanHackathon(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, HackathonListing{Hackathon: *h, Live: h.IsLive(now)})
	}
	return listings, storeError(rows.Err(), nil)
}

func scanHackathon(row pgx.Row) (*models.Hackathon, error) {
	var h models.Hackathon
	err := row.Scan(&h.ID, &h.Name, &h.Description, &h.Category, &h.StartDate, &h.EndDate, &h.RegistrationLink, &h.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &h, nil
}
