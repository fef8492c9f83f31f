package db

import (
	"context"
	"time"
)

const listTopShadows = `-- name: ListTopShadows :many
SELECT id, user_puuid, shadow_puuid, similarity_score, role, shared_champions, user_weakness, shadow_strength, reasoning, computed_at
FROM shadow_recommendations
WHERE user_puuid = ?
ORDER BY similarity_score DESC, shadow_puuid ASC
LIMIT ?
`

type ListTopShadowsParams struct {
	UserPuuid string
	Limit     int64
}

func (q *Queries) ListTopShadows(ctx context.Context, arg ListTopShadowsParams) ([]ShadowRecommendation, error) {
	rows, err := q.db.QueryContext(ctx, listTopShadows, arg.UserPuuid, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ShadowRecommendation
	for rows.Next() {
		var i ShadowRecommendation
		if err := rows.Scan(
			&i.ID,
			&i.UserPuuid,
			&i.ShadowPuuid,
			&i.SimilarityScore,
			&i.Role,
			&i.SharedChampions,
			&i.UserWeakness,
			&i.ShadowStrength,
			&i.Reasoning,
			&i.ComputedAt,
		); err != nil {
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

const countShadowRuns = `-- name: CountShadowRuns :one
SELECT COUNT(*) FROM shadow_runs WHERE user_puuid = ?
`

func (q *Queries) CountShadowRuns(ctx context.Context, userPuuid string) (int64, error) {
	row := q.db.QueryRowContext(ctx, countShadowRuns, userPuuid)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const getShadowRun = `-- name: GetShadowRun :one
SELECT user_puuid, run_id, candidate_count, computed_at FROM shadow_runs WHERE user_puuid = ?
`

func (q *Queries) GetShadowRun(ctx context.Context, userPuuid string) (ShadowRun, error) {
	row := q.db.QueryRowContext(ctx, getShadowRun, userPuuid)
	var i ShadowRun
	err := row.Scan(
		&i.UserPuuid,
		&i.RunID,
		&i.CandidateCount,
		&i.ComputedAt,
	)
	return i, err
}

const deleteShadowsForUser = `-- name: DeleteShadowsForUser :exec
DELETE FROM shadow_recommendations WHERE user_puuid = ?
`

func (q *Queries) DeleteShadowsForUser(ctx context.Context, userPuuid string) error {
	_, err := q.db.ExecContext(ctx, deleteShadowsForUser, userPuuid)
	return err
}

const insertShadow = `-- name: InsertShadow :exec
INSERT INTO shadow_recommendations (
    id, user_puuid, shadow_puuid, similarity_score, role, shared_champions, user_weakness, shadow_strength, reasoning, computed_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type InsertShadowParams struct {
	ID              string
	UserPuuid       string
	ShadowPuuid     string
	SimilarityScore float64
	Role            string
	SharedChampions string
	UserWeakness    string
	ShadowStrength  string
	Reasoning       string
	ComputedAt      time.Time
}

func (q *Queries) InsertShadow(ctx context.Context, arg InsertShadowParams) error {
	_, err := q.db.ExecContext(ctx, insertShadow,
		arg.ID,
		arg.UserPuuid,
		arg.ShadowPuuid,
		arg.SimilarityScore,
		arg.Role,
		arg.SharedChampions,
		arg.UserWeakness,
		arg.ShadowStrength,
		arg.Reasoning,
		arg.ComputedAt,
	)
	return err
}

const upsertShadowRun = `-- name: UpsertShadowRun :exec
INSERT INTO shadow_runs (user_puuid, run_id, candidate_count, computed_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (user_puuid) DO UPDATE SET
    run_id = excluded.run_id,
    candidate_count = excluded.candidate_count,
    computed_at = excluded.computed_at
`

type UpsertShadowRunParams struct {
	UserPuuid      string
	RunID          string
	CandidateCount int64
	ComputedAt     time.Time
}

func (q *Queries) UpsertShadowRun(ctx context.Context, arg UpsertShadowRunParams) error {
	_, err := q.db.ExecContext(ctx, upsertShadowRun,
		arg.UserPuuid,
		arg.RunID,
		arg.CandidateCount,
		arg.ComputedAt,
	)
	return err
}
