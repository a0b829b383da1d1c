package parser

import (
	"fmt"

	"github.com/nimblehire/sift/internal/candidate"
)

// Normalize converts a raw Record into a fully-populated Candidate. All
// defaulting lives here so no downstream consumer ever branches on whether a
// field is present. Normalizing an already-normalized record is a no-op.
func Normalize(rec *Record, fileName string) *candidate.Candidate {
	c := &candidate.Candidate{
		Name:       rec.Name,
		Email:      rec.Email,
		Phone:      rec.Phone,
		Position:   rec.Position,
		Experience: rec.Experience,
		Score:      clamp(rec.Score, 0, 100),
		Summary:    rec.Summary,
		Skills:     append([]string{}, rec.Skills...),
		Education:  append([]candidate.Education{}, rec.Education...),
		Work:       append([]candidate.Work{}, rec.Work...),
	}

	if c.Name == "" {
		c.Name = candidate.DefaultName
	}
	if c.Position == "" {
		c.Position = candidate.DefaultPosition
	}
	if c.Experience < 0 {
		c.Experience = 0
	}
	if c.Summary == "" {
		c.Summary = fmt.Sprintf("No summary extracted from %s", fileName)
	}

	if rec.Analysis == nil {
		c.Analysis = candidate.DefaultAnalysis()
		return c
	}

	a := *rec.Analysis
	a.SkillsMatch = clamp(a.SkillsMatch, 0, 100)
	if !candidate.IsExperienceLevel(a.ExperienceLevel) {
		a.ExperienceLevel = candidate.LevelMid
	}
	if a.Strengths == nil {
		a.Strengths = []string{}
	}
	if a.Weaknesses == nil {
		a.Weaknesses = []string{}
	}
	if a.KeyHighlights == nil {
		a.KeyHighlights = []string{}
	}
	if a.Recommendation == "" {
		a.Recommendation = candidate.DefaultRecommendation
	}
	c.Analysis = a
	return c
}

// Warnings reports advisory gaps in a parsed record. They are surfaced to the
// caller and the logs but never block normalization.
func Warnings(rec *Record) []string {
	var warns []string
	if rec.Name == "" {
		warns = append(warns, "missing candidate name")
	}
	if rec.Email == "" {
		warns = append(warns, "missing email address")
	}
	if rec.Position == "" {
		warns = append(warns, "missing position")
	}
	if rec.Score < 0 || rec.Score > 100 {
		warns = append(warns, fmt.Sprintf("score %d outside 0-100", rec.Score))
	}
	if len(rec.Skills) == 0 {
		warns = append(warns, "no skills listed")
	}
	return warns
}
