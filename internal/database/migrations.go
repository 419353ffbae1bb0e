package database

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,

	`CREATE TABLE IF NOT EXISTS profiles (
		id UUID PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		name VARCHAR(255) NOT NULL,
		avatar_url TEXT,
		skills TEXT[] NOT NULL DEFAULT '{}',
		passion TEXT NOT NULL DEFAULT '',
		availability TEXT NOT NULL DEFAULT '',
		languages TEXT[] NOT NULL DEFAULT '{}',
		interests TEXT[] NOT NULL DEFAULT '{}',
		experience TEXT NOT NULL DEFAULT '',
		social_links TEXT[] NOT NULL DEFAULT '{}',
		pulse_index INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS teams (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		project_description TEXT NOT NULL DEFAULT '',
		open_roles TEXT[] NOT NULL DEFAULT '{}',
		required_skills TEXT[] NOT NULL DEFAULT '{}',
		creator_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_teams_creator ON teams(creator_id)`,

	`CREATE TABLE IF NOT EXISTS team_members (
		team_id UUID NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		profile_id UUID NOT NULL,
		joined_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (team_id, profile_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_team_members_profile ON team_members(profile_id)`,

	`CREATE TABLE IF NOT EXISTS join_requests (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		team_id UUID NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		requester_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		requester_name VARCHAR(255) NOT NULL,
		requester_avatar_url TEXT,
		requester_email VARCHAR(255) NOT NULL,
		role VARCHAR(255) NOT NULL,
		skills_summary TEXT NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'approved', 'rejected')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		resolved_at TIMESTAMPTZ,
		resolved_by UUID
	)`,

	`CREATE INDEX IF NOT EXISTS idx_join_requests_team ON join_requests(team_id, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_join_requests_requester ON join_requests(requester_id, created_at)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_join_requests_one_pending
		ON join_requests(team_id, requester_id) WHERE status = 'pending'`,

	`CREATE TABLE IF NOT EXISTS team_messages (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		team_id UUID NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		sender_id UUID NOT NULL,
		sender_name VARCHAR(255) NOT NULL,
		sender_avatar_url TEXT,
		text TEXT NOT NULL,
		original_text TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_team_messages_team ON team_messages(team_id, created_at)`,

	`CREATE TABLE IF NOT EXISTS hackathons (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category VARCHAR(100) NOT NULL DEFAULT '',
		start_date TIMESTAMPTZ NOT NULL,
		end_date TIMESTAMPTZ NOT NULL,
		registration_link TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CHECK (end_date >= start_date)
	)`,
}

func (db *DB) Migrate(ctx context.Context) error {
	for i, migration := range migrations {
		if _, err := db.Pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
