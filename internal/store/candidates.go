package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nimblehire/sift/internal/candidate"
)

// StoredCandidate is the listing projection of a persisted candidate.
type StoredCandidate struct {
	ID        uuid.UUID `json:"id"`
	TeamID    uuid.UUID `json:"team_id"`
	FileName  string    `json:"file_name"`
	Name      string    `json:"name"`
	Position  string    `json:"position"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// SaveCandidate writes one analyzed candidate across the candidate tables.
// Tables: candidates, candidate_skills, candidate_education, candidate_work,
// candidate_analysis.
func (s *Store) SaveCandidate(ctx context.Context, teamID uuid.UUID, fileName string, c *candidate.Candidate) (uuid.UUID, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	candidateID := uuid.New()
	_, err = tx.Exec(ctx, `
		INSERT INTO candidates (id, team_id, file_name, name, email, phone, position, experience_years, score, summary, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())`,
		candidateID, teamID, fileName, c.Name, c.Email, c.Phone, c.Position, c.Experience, c.Score, c.Summary,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert candidate: %w", err)
	}

	for i, skill := range c.Skills {
		_, err = tx.Exec(ctx, `
			INSERT INTO candidate_skills (id, candidate_id, ordinal, skill)
			VALUES ($1, $2, $3, $4)`,
			uuid.New(), candidateID, i, skill,
		)
		if err != nil {
			return uuid.Nil, fmt.Errorf("insert skill: %w", err)
		}
	}

	for _, e := range c.Education {
		_, err = tx.Exec(ctx, `
			INSERT INTO candidate_education (id, candidate_id, degree, institution, year, field)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			uuid.New(), candidateID, e.Degree, e.Institution, e.Year, e.Field,
		)
		if err != nil {
			return uuid.Nil, fmt.Errorf("insert education: %w", err)
		}
	}

	for _, w := range c.Work {
		_, err = tx.Exec(ctx, `
			INSERT INTO candidate_work (id, candidate_id, company, position, start_date, end_date, duration, description)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			uuid.New(), candidateID, w.Company, w.Position, w.StartDate, w.EndDate, w.Duration, w.Description,
		)
		if err != nil {
			return uuid.Nil, fmt.Errorf("insert work: %w", err)
		}
	}

	a := c.Analysis
	_, err = tx.Exec(ctx, `
		INSERT INTO candidate_analysis (id, candidate_id, skills_match, experience_level, strengths, weaknesses, key_highlights, recommendation)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		uuid.New(), candidateID, a.SkillsMatch, a.ExperienceLevel, a.Strengths, a.Weaknesses, a.KeyHighlights, a.Recommendation,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert analysis: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("commit: %w", err)
	}

	return candidateID, nil
}

// ListByTeam returns a team's candidates, newest first.
func (s *Store) ListByTeam(ctx context.Context, teamID uuid.UUID, limit int) ([]StoredCandidate, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, team_id, file_name, name, position, score, created_at
		FROM candidates
		WHERE team_id = $1
		ORDER BY created_at DESC
		LIMIT $2`,
		teamID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}
	defer rows.Close()

	out := []StoredCandidate{}
	for rows.Next() {
		var sc StoredCandidate
		if err := rows.Scan(&sc.ID, &sc.TeamID, &sc.FileName, &sc.Name, &sc.Position, &sc.Score, &sc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}
