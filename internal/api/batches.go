package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/nimblehire/sift/internal/batch"
	"github.com/nimblehire/sift/internal/events"
	"github.com/nimblehire/sift/internal/processor"
)

const maxBatchMemory = 64 << 20

// ItemReport is the per-file entry in a batch response.
type ItemReport struct {
	FileName     string         `json:"file_name"`
	Success      bool           `json:"success"`
	CandidateID  string         `json:"candidate_id,omitempty"`
	ErrorKind    processor.Kind `json:"error_kind,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty"`
	Warnings     []string       `json:"warnings,omitempty"`
}

// BatchReport is the response body for POST /api/v1/batches.
type BatchReport struct {
	Total     int          `json:"total"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Results   []ItemReport `json:"results"`
}

// analyzeBatch handles POST /api/v1/batches. The request is multipart form
// data: a team_id field and one or more files under "files". Files are
// processed synchronously and the full report is returned.
func (s *Server) analyzeBatch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxBatchMemory); err != nil {
		http.Error(w, fmt.Sprintf(`{"error":"invalid multipart form: %v"}`, err), http.StatusBadRequest)
		return
	}

	teamID, err := uuid.Parse(r.FormValue("team_id"))
	if err != nil {
		http.Error(w, `{"error":"missing or invalid team_id"}`, http.StatusBadRequest)
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		http.Error(w, `{"error":"no files provided"}`, http.StatusBadRequest)
		return
	}

	items := make([]batch.Item, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			http.Error(w, fmt.Sprintf(`{"error":"open %s: %v"}`, fh.Filename, err), http.StatusBadRequest)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			http.Error(w, fmt.Sprintf(`{"error":"read %s: %v"}`, fh.Filename, err), http.StatusBadRequest)
			return
		}
		items = append(items, batch.Item{FileName: fh.Filename, Data: data})
	}

	outcomes := s.scheduler.Run(r.Context(), items)

	report := BatchReport{Total: len(outcomes), Results: make([]ItemReport, 0, len(outcomes))}
	for _, o := range outcomes {
		item := ItemReport{
			FileName:     o.FileName,
			Success:      o.OK,
			ErrorKind:    o.ErrKind,
			ErrorMessage: o.ErrMessage,
			Warnings:     o.Warnings,
		}
		if o.OK {
			report.Succeeded++
			id, err := s.store.SaveCandidate(r.Context(), teamID, o.FileName, o.Candidate)
			if err != nil {
				s.logger.Warn("save candidate failed", "file", o.FileName, "error", err)
			} else {
				item.CandidateID = id.String()
				if err := s.events.Publish(events.SubjectCandidateStored, events.CandidateStored{
					CandidateID: id.String(),
					TeamID:      teamID.String(),
					FileName:    o.FileName,
					Score:       o.Candidate.Score,
					Timestamp:   time.Now().UTC(),
				}); err != nil {
					s.logger.Warn("publish candidate event failed", "error", err)
				}
			}
		} else {
			report.Failed++
		}
		report.Results = append(report.Results, item)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

// listCandidates handles GET /api/v1/candidates?team_id=...&limit=...
func (s *Server) listCandidates(w http.ResponseWriter, r *http.Request) {
	teamID, err := uuid.Parse(r.URL.Query().Get("team_id"))
	if err != nil {
		http.Error(w, `{"error":"missing or invalid team_id"}`, http.StatusBadRequest)
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			http.Error(w, `{"error":"invalid limit"}`, http.StatusBadRequest)
			return
		}
	}

	candidates, err := s.store.ListByTeam(r.Context(), teamID, limit)
	if err != nil {
		s.logger.Error("list candidates failed", "team_id", teamID, "error", err)
		http.Error(w, `{"error":"query failed"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(candidates)
}
