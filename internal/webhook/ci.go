// Package webhook handles incoming CI webhook events.
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/JerrySanjuJoanes/chaincred/pkg/analysis"
)

// VerifySignature validates the X-Hub-Signature-256 header against the payload.
func VerifySignature(payload []byte, signature string, secret []byte) error {
	if !strings.HasPrefix(signature, "sha256=") {
		return fmt.Errorf("invalid signature format")
	}
	sig, err := hex.DecodeString(signature[7:])
	if err != nil {
		return fmt.Errorf("decode signature: %w", err)
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	expected := mac.Sum(nil)

	if !hmac.Equal(sig, expected) {
		return fmt.Errorf("signature mismatch")
	}
	return nil
}

// CandidateEvent registers a candidate and the repositories they work in.
type CandidateEvent struct {
	Action       string           `json:"action"`
	Candidate    CandidatePayload `json:"candidate"`
	Repositories []RepoPayload    `json:"repositories"`
}

// CandidatePayload identifies the candidate the event belongs to.
type CandidatePayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RepoPayload describes one repository tracked for a candidate.
type RepoPayload struct {
	FullName      string  `json:"full_name"`
	CloneURL      *string `json:"clone_url,omitempty"`
	DefaultBranch string  `json:"default_branch"`
}

// AnalysisEvent carries a batch of repository analyses produced by a CI job.
type AnalysisEvent struct {
	Candidate    CandidatePayload        `json:"candidate"`
	Technologies []string                `json:"technologies,omitempty"`
	Analyses     []analysis.RepoAnalysis `json:"analyses"`
}

// ParseEvent parses a webhook payload based on the event type.
func ParseEvent(eventType string, payload []byte) (interface{}, error) {
	switch eventType {
	case "candidate":
		var e CandidateEvent
		if err := json.Unmarshal(payload, &e); err != nil {
			return nil, fmt.Errorf("parse candidate event: %w", err)
		}
		return &e, nil
	case "analysis":
		var e AnalysisEvent
		if err := json.Unmarshal(payload, &e); err != nil {
			return nil, fmt.Errorf("parse analysis event: %w", err)
		}
		return &e, nil
	default:
		return nil, fmt.Errorf("unsupported event type: %s", eventType)
	}
}
