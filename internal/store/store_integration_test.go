//go:build integration

package store

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/nimblehire/sift/internal/candidate"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	s, err := New(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}

	t.Cleanup(func() {
		s.Close()
	})
	return s
}

func TestIntegration_SaveAndListCandidate(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	teamID := uuid.New()

	c := &candidate.Candidate{
		Name:       "Integration Test Candidate",
		Email:      "integration@example.com",
		Position:   "Backend Engineer",
		Experience: 6,
		Score:      77,
		Summary:    "Integration test summary.",
		Skills:     []string{"Go", "Postgres"},
		Education: []candidate.Education{
			{Degree: "BSc", Institution: "Test University", Year: 2018, Field: "CS"},
		},
		Work: []candidate.Work{
			{Company: "Initech", Position: "Engineer", StartDate: "2019-01", EndDate: "Present"},
		},
		Analysis: candidate.Analysis{
			SkillsMatch:     80,
			ExperienceLevel: candidate.LevelSenior,
			Strengths:       []string{"Systems design"},
			Weaknesses:      []string{},
			KeyHighlights:   []string{},
			Recommendation:  "Hire",
		},
	}

	id, err := s.SaveCandidate(ctx, teamID, "integration.pdf", c)
	if err != nil {
		t.Fatalf("SaveCandidate failed: %v", err)
	}
	if id == uuid.Nil {
		t.Fatal("expected non-nil candidate ID")
	}

	listed, err := s.ListByTeam(ctx, teamID, 10)
	if err != nil {
		t.Fatalf("ListByTeam failed: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(listed))
	}
	got := listed[0]
	if got.ID != id {
		t.Errorf("listed ID = %s, want %s", got.ID, id)
	}
	if got.Name != c.Name || got.Position != c.Position || got.Score != c.Score {
		t.Errorf("listed candidate = %+v", got)
	}
	if got.FileName != "integration.pdf" {
		t.Errorf("file name = %q", got.FileName)
	}
}

func TestIntegration_ListByTeamEmpty(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	listed, err := s.ListByTeam(ctx, uuid.New(), 10)
	if err != nil {
		t.Fatalf("ListByTeam failed: %v", err)
	}
	if len(listed) != 0 {
		t.Errorf("expected no candidates for fresh team, got %d", len(listed))
	}
}
