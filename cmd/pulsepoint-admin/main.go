package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/obj8899/studio/internal/config"
	"github.com/obj8899/studio/internal/database"
	"github.com/obj8899/studio/internal/logger"
	"github.com/obj8899/studio/internal/models"
	"github.com/obj8899/studio/internal/services"
	"github.com/rs/zerolog"
)

const usage = `Usage: pulsepoint-admin <command> [args]

Commands:
  migrate                                    apply database migrations
  token <profile-id> <email>                 mint an access token for a profile
  add-hackathon <name> <start> <end> [category] [registration-link]
                                             dates are YYYY-MM-DD or RFC3339
  requests <team-id> [team-id...]            list join requests for teams
  profiles                                   list every profile with its pulse index
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	l := logger.Configure(logger.Config{Level: cfg.LogLevel, Pretty: true, Output: os.Stderr})

	if err := run(context.Background(), cfg, l, os.Args[1], os.Args[2:]); err != nil {
		l.Fatal().Err(err).Str("command", os.Args[1]).Msg("command failed")
	}
}

func run(ctx context.Context, cfg *config.Config, l zerolog.Logger, command string, args []string) error {
	if command == "token" {
		return mintToken(cfg, args)
	}

	db, err := database.New(ctx, cfg.DatabaseURL, cfg.Workflow.StoreTimeout)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	switch command {
	case "migrate":
		if err := db.Migrate(ctx); err != nil {
			return err
		}
		fmt.Println("Migrations applied")
		return nil
	case "add-hackathon":
		return addHackathon(ctx, services.NewHackathonService(db), args)
	case "requests":
		profiles := services.NewProfileService(db)
		teams := services.NewTeamService(db, profiles)
		return listRequests(ctx, services.NewJoinRequestService(db, teams, profiles, cfg.Workflow, l), args)
	case "profiles":
		return listProfiles(ctx, services.NewProfileService(db))
	default:
		fmt.Print(usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func mintToken(cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: token <profile-id> <email>")
	}
	profileID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid profile id: %w", err)
	}

	token, err := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry).GenerateAccessToken(profileID, args[1])
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}

func addHackathon(ctx context.Context, hackathons *services.HackathonService, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: add-hackathon <name> <start> <end> [category] [registration-link]")
	}

	start, err := parseDate(args[1])
	if err != nil {
		return fmt.Errorf("invalid start date: %w", err)
	}
	end, err := parseDate(args[2])
	if err != nil {
		return fmt.Errorf("invalid end date: %w", err)
	}

	in := models.HackathonInput{Name: args[0], StartDate: start, EndDate: end}
	if len(args) > 3 {
		in.Category = args[3]
	}
	if len(args) > 4 {
		in.RegistrationLink = args[4]
	}

	h, err := hackathons.Create(ctx, in)
	if err != nil {
		return err
	}
	fmt.Printf("Created hackathon %s (%s)\n", h.Name, h.ID)
	return nil
}

// parseDate accepts a plain date, read as midnight UTC, or a full RFC3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func listRequests(ctx context.Context, joinRequests *services.JoinRequestService, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: requests <team-id> [team-id...]")
	}

	teamIDs := make([]uuid.UUID, len(args))
	for i, arg := range args {
		id, err := uuid.Parse(arg)
		if err != nil {
			return fmt.Errorf("invalid team id %q: %w", arg, err)
		}
		teamIDs[i] = id
	}

	requests, err := joinRequests.ListForTeams(ctx, teamIDs)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TEAM\tREQUEST\tREQUESTER\tROLE\tSTATUS\tCREATED")
	for _, r := range requests {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.TeamID, r.ID, r.RequesterName, r.Role, r.Status, r.CreatedAt.Format(time.RFC3339))
	}
	return w.Flush()
}

func listProfiles(ctx context.Context, profiles *services.ProfileService) error {
	all, err := profiles.List(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPULSE\tSKILLS")
	for _, p := range all {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", p.ID, p.Name, p.Email, p.PulseIndex, strings.Join(p.Skills, ", "))
	}
	return w.Flush()
}
