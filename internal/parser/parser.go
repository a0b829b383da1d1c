package parser

import (
	"errors"
	"strconv"
	"strings"

	"github.com/nimblehire/sift/internal/candidate"
)

// Sentinels delimiting the structured portion of a model response. Everything
// outside them — conversational preamble, trailing notes — is discarded.
const (
	StartSentinel = "===CANDIDATE_DATA_START==="
	EndSentinel   = "===CANDIDATE_DATA_END==="
)

// ErrMissingDelimiters is returned when a response lacks either sentinel.
// Such a response is unusable as a whole; nothing is salvaged from it.
var ErrMissingDelimiters = errors.New("response missing candidate data delimiters")

// Record is the raw output of Parse. Every field is optional at this stage —
// the source text may omit or corrupt any of them — so nothing here may be
// consumed without going through Normalize.
type Record struct {
	Name       string
	Email      string
	Phone      string
	Position   string
	Experience int
	Score      int
	Summary    string

	Skills    []string
	Education []candidate.Education
	Work      []candidate.Work
	Analysis  *candidate.Analysis
}

const (
	startSuffix = "_START:"
	endSuffix   = "_END:"
	noneValue   = "NONE"
)

// Parse extracts a Record from one raw model response. The format is a
// line-delimited text protocol rather than JSON, because structured JSON from
// the model proved unreliable. Malformed content inside the sentinels
// degrades field by field; only missing sentinels fail the parse.
func Parse(raw string) (*Record, error) {
	start := strings.Index(raw, StartSentinel)
	if start == -1 {
		return nil, ErrMissingDelimiters
	}
	rest := raw[start+len(StartSentinel):]
	end := strings.Index(rest, EndSentinel)
	if end == -1 {
		return nil, ErrMissingDelimiters
	}

	rec := &Record{}

	// Single-level section state: either no section is open, or lines are
	// being accumulated for the named section. Sections do not nest.
	section := ""
	var buf []string

	for _, line := range strings.Split(rest[:end], "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if section != "" {
			// The first end marker closes whichever section is open,
			// even if its name disagrees with the opener.
			if strings.HasSuffix(line, endSuffix) {
				applySection(rec, section, buf)
				section = ""
				buf = nil
				continue
			}
			buf = append(buf, line)
			continue
		}

		if strings.HasSuffix(line, startSuffix) {
			section = strings.TrimSuffix(line, startSuffix)
			continue
		}

		if key, value, ok := strings.Cut(line, ":"); ok {
			applyScalar(rec, strings.TrimSpace(key), strings.TrimSpace(value))
		}
	}

	// A section still open at the end sentinel is converted anyway rather
	// than dropped.
	if section != "" {
		applySection(rec, section, buf)
	}

	return rec, nil
}

func applyScalar(rec *Record, key, value string) {
	switch key {
	case "NAME":
		rec.Name = value
	case "EMAIL":
		if value != noneValue {
			rec.Email = value
		}
	case "PHONE":
		if value != noneValue {
			rec.Phone = value
		}
	case "POSITION":
		rec.Position = value
	case "EXPERIENCE_YEARS":
		rec.Experience = parseInt(value, 0)
	case "SCORE":
		rec.Score = clamp(parseInt(value, 0), 0, 100)
	case "SUMMARY":
		rec.Summary = value
	}
	// Unrecognized keys are ignored so the model can grow the format
	// without breaking older parsers.
}

// parseInt is best-effort: an unparseable token never aborts the parse, it
// falls back. Fractional values are truncated.
func parseInt(s string, fallback int) int {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return fallback
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
