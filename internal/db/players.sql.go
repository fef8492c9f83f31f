package db

import (
	"context"
	"time"
)

const playerColumns = `puuid, display_name, region, tier, division, league_points, profile_icon_id, main_role, is_shadow_eligible, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPlayer(row rowScanner) (Player, error) {
	var i Player
	err := row.Scan(
		&i.Puuid,
		&i.DisplayName,
		&i.Region,
		&i.Tier,
		&i.Division,
		&i.LeaguePoints,
		&i.ProfileIconID,
		&i.MainRole,
		&i.IsShadowEligible,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getPlayerByPuuid = `-- name: GetPlayerByPuuid :one
SELECT ` + playerColumns + ` FROM players WHERE puuid = ?
`

func (q *Queries) GetPlayerByPuuid(ctx context.Context, puuid string) (Player, error) {
	row := q.db.QueryRowContext(ctx, getPlayerByPuuid, puuid)
	return scanPlayer(row)
}

const getPlayerByDisplayName = `-- name: GetPlayerByDisplayName :one
SELECT ` + playerColumns + ` FROM players WHERE display_name = ? COLLATE NOCASE
ORDER BY updated_at DESC
LIMIT 1
`

func (q *Queries) GetPlayerByDisplayName(ctx context.Context, displayName string) (Player, error) {
	row := q.db.QueryRowContext(ctx, getPlayerByDisplayName, displayName)
	return scanPlayer(row)
}

const upsertPlayer = `-- name: UpsertPlayer :exec
INSERT INTO players (
    puuid, display_name, region, tier, division, league_points, profile_icon_id, main_role, is_shadow_eligible, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (puuid) DO UPDATE SET
    display_name = excluded.display_name,
    region = excluded.region,
    tier = excluded.tier,
    division = excluded.division,
    league_points = excluded.league_points,
    profile_icon_id = excluded.profile_icon_id,
    main_role = excluded.main_role,
    is_shadow_eligible = excluded.is_shadow_eligible,
    updated_at = excluded.updated_at
`

type UpsertPlayerParams struct {
	Puuid            string
	DisplayName      string
	Region           string
	Tier             string
	Division         string
	LeaguePoints     int64
	ProfileIconID    int64
	MainRole         string
	IsShadowEligible bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (q *Queries) UpsertPlayer(ctx context.Context, arg UpsertPlayerParams) error {
	_, err := q.db.ExecContext(ctx, upsertPlayer,
		arg.Puuid,
		arg.DisplayName,
		arg.Region,
		arg.Tier,
		arg.Division,
		arg.LeaguePoints,
		arg.ProfileIconID,
		arg.MainRole,
		arg.IsShadowEligible,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const searchPlayers = `-- name: SearchPlayers :many
SELECT ` + playerColumns + ` FROM players
WHERE display_name LIKE ? ESCAPE '\'
ORDER BY display_name COLLATE NOCASE ASC, puuid ASC
LIMIT ?
`

type SearchPlayersParams struct {
	DisplayName string
	Limit       int64
}

func (q *Queries) SearchPlayers(ctx context.Context, arg SearchPlayersParams) ([]Player, error) {
	rows, err := q.db.QueryContext(ctx, searchPlayers, arg.DisplayName, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Player
	for rows.Next() {
		i, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
