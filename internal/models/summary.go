package models

import (
	"encoding/json"

	"github.com/myrjola/interrogation-room/internal/errors"
)

// Statement is a witness statement recorded in the incident summary.
type Statement struct {
	Name      string `json:"name"`
	Relation  string `json:"relation"`
	Statement string `json:"statement"`
}

// Evidence is a piece of physical evidence recorded in the incident summary.
type Evidence struct {
	EvidenceNumber string `json:"evidenceNumber"`
	Type           string `json:"type"`
	FoundLocation  string `json:"foundLocation"`
	Remarks        string `json:"remarks"`
}

// AnalysisResult is a forensic analysis result, e.g. fingerprints or DNA.
type AnalysisResult struct {
	Type   string `json:"type"`
	Result string `json:"result"`
}

// SuspectInfo describes a suspect named in the incident summary.
type SuspectInfo struct {
	Name           string `json:"name"`
	CriminalRecord string `json:"criminalRecord"`
	Alibi          string `json:"alibi"`
}

// Summary is an immutable generated incident description. Cases reference it
// by SummaryID and only ever read it.
type Summary struct {
	SummaryID        string           `json:"summaryId"`
	SummaryName      string           `json:"summaryName"`
	DateOfIncident   string           `json:"dateOfIncident"`
	Overview         string           `json:"overview"`
	Category         string           `json:"category"`
	Statements       []Statement      `json:"statements"`
	PhysicalEvidence []Evidence       `json:"physicalEvidence"`
	AnalysisResults  []AnalysisResult `json:"analysisResults"`
	SuspectInfo      []SuspectInfo    `json:"suspectInfo"`
}

// JSON serializes the summary for use as model context. The encoding is
// deterministic: the same summary always yields the same bytes, which keeps
// replayed conversation contexts reproducible.
func (s Summary) JSON() (string, error) {
	out, err := json.Marshal(s)
	if err != nil {
		return "", errors.Wrap(err, "marshal summary")
	}
	return string(out), nil
}
