package parser

import (
	"strings"
	"time"

	"github.com/nimblehire/sift/internal/candidate"
)

// applySection converts the accumulated lines of a closed section per that
// section's grammar. Unknown section names are dropped wholesale.
func applySection(rec *Record, name string, lines []string) {
	switch name {
	case "SKILLS":
		// One skill per line, verbatim.
		rec.Skills = append(rec.Skills, lines...)
	case "EDUCATION":
		for _, line := range lines {
			if e, ok := parseEducationLine(line); ok {
				rec.Education = append(rec.Education, e)
			}
		}
	case "WORK":
		for _, line := range lines {
			if w, ok := parseWorkLine(line); ok {
				rec.Work = append(rec.Work, w)
			}
		}
	case "ANALYSIS":
		rec.Analysis = parseAnalysis(lines)
	}
}

// parseEducationLine reads one pipe-delimited education entry. Lines that
// produce neither a degree nor an institution are dropped.
func parseEducationLine(line string) (candidate.Education, bool) {
	e := candidate.Education{Year: time.Now().Year()}
	for _, part := range strings.Split(line, "|") {
		part = strings.TrimSpace(part)
		switch {
		case strings.HasPrefix(part, "DEGREE:"):
			e.Degree = strings.TrimSpace(strings.TrimPrefix(part, "DEGREE:"))
		case strings.HasPrefix(part, "INSTITUTION:"):
			e.Institution = strings.TrimSpace(strings.TrimPrefix(part, "INSTITUTION:"))
		case strings.HasPrefix(part, "YEAR:"):
			e.Year = parseInt(strings.TrimSpace(strings.TrimPrefix(part, "YEAR:")), time.Now().Year())
		case strings.HasPrefix(part, "FIELD:"):
			e.Field = strings.TrimSpace(strings.TrimPrefix(part, "FIELD:"))
		}
	}
	if e.Degree == "" && e.Institution == "" {
		return candidate.Education{}, false
	}
	return e, true
}

// parseWorkLine reads one pipe-delimited work entry. Lines with neither a
// company nor a position are dropped.
func parseWorkLine(line string) (candidate.Work, bool) {
	var w candidate.Work
	for _, part := range strings.Split(line, "|") {
		part = strings.TrimSpace(part)
		switch {
		case strings.HasPrefix(part, "COMPANY:"):
			w.Company = strings.TrimSpace(strings.TrimPrefix(part, "COMPANY:"))
		case strings.HasPrefix(part, "POSITION:"):
			w.Position = strings.TrimSpace(strings.TrimPrefix(part, "POSITION:"))
		case strings.HasPrefix(part, "START:"):
			w.StartDate = strings.TrimSpace(strings.TrimPrefix(part, "START:"))
		case strings.HasPrefix(part, "END:"):
			w.EndDate = strings.TrimSpace(strings.TrimPrefix(part, "END:"))
		case strings.HasPrefix(part, "DURATION:"):
			w.Duration = strings.TrimSpace(strings.TrimPrefix(part, "DURATION:"))
		case strings.HasPrefix(part, "DESC:"):
			w.Description = strings.TrimSpace(strings.TrimPrefix(part, "DESC:"))
		}
	}
	if w.Company == "" && w.Position == "" {
		return candidate.Work{}, false
	}
	return w, true
}

// parseAnalysis reads the ANALYSIS section, where each line is a standalone
// KEY: value pair and list values are pipe-delimited. Fields start at their
// defaults so a partial section still yields a complete analysis.
func parseAnalysis(lines []string) *candidate.Analysis {
	a := candidate.DefaultAnalysis()
	for _, line := range lines {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.TrimSpace(key) {
		case "SKILLS_MATCH":
			a.SkillsMatch = clamp(parseInt(value, 0), 0, 100)
		case "EXPERIENCE_LEVEL":
			if candidate.IsExperienceLevel(value) {
				a.ExperienceLevel = value
			}
		case "STRENGTHS":
			a.Strengths = splitList(value)
		case "WEAKNESSES":
			a.Weaknesses = splitList(value)
		case "HIGHLIGHTS":
			a.KeyHighlights = splitList(value)
		case "RECOMMENDATION":
			if value != "" {
				a.Recommendation = value
			}
		}
	}
	return &a
}

func splitList(value string) []string {
	items := []string{}
	for _, item := range strings.Split(value, "|") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
