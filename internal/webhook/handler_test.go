package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/JerrySanjuJoanes/chaincred/pkg/analysis"
	"github.com/JerrySanjuJoanes/chaincred/pkg/gitlog"
)

func computeHMAC(payload, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	secret := []byte("webhook-secret-123")
	payload := []byte(`{"action":"registered"}`)

	tests := []struct {
		name      string
		payload   []byte
		signature string
		secret    []byte
		wantErr   bool
	}{
		{
			name:      "valid signature",
			payload:   payload,
			signature: computeHMAC(payload, secret),
			secret:    secret,
			wantErr:   false,
		},
		{
			name:      "wrong secret",
			payload:   payload,
			signature: computeHMAC(payload, []byte("wrong-secret")),
			secret:    secret,
			wantErr:   true,
		},
		{
			name:      "tampered payload",
			payload:   []byte(`{"action":"removed"}`),
			signature: computeHMAC(payload, secret),
			secret:    secret,
			wantErr:   true,
		},
		{
			name:      "missing sha256= prefix",
			payload:   payload,
			signature: "not-a-valid-sig",
			secret:    secret,
			wantErr:   true,
		},
		{
			name:      "invalid hex after prefix",
			payload:   payload,
			signature: "sha256=zzzz",
			secret:    secret,
			wantErr:   true,
		},
		{
			name:      "empty signature",
			payload:   payload,
			signature: "",
			secret:    secret,
			wantErr:   true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := VerifySignature(tc.payload, tc.signature, tc.secret)
			if tc.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestParseEvent_Candidate(t *testing.T) {
	cloneURL := "https://example.com/octocat/web-app.git"
	payload := CandidateEvent{
		Action: "registered",
		Candidate: CandidatePayload{
			Name:  "Grace Hopper",
			Email: "grace@example.com",
		},
		Repositories: []RepoPayload{
			{FullName: "octocat/web-app", CloneURL: &cloneURL, DefaultBranch: "main"},
			{FullName: "octocat/api", DefaultBranch: "develop"},
		},
	}

	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	event, err := ParseEvent("candidate", data)
	if err != nil {
		t.Fatalf("ParseEvent: %v", err)
	}

	ce, ok := event.(*CandidateEvent)
	if !ok {
		t.Fatalf("expected *CandidateEvent, got %T", event)
	}

	if ce.Candidate.Email != "grace@example.com" {
		t.Errorf("email = %q, want %q", ce.Candidate.Email, "grace@example.com")
	}
	if len(ce.Repositories) != 2 {
		t.Fatalf("repositories = %d, want 2", len(ce.Repositories))
	}
	if ce.Repositories[0].CloneURL == nil || *ce.Repositories[0].CloneURL != cloneURL {
		t.Errorf("clone URL not preserved")
	}
	if ce.Repositories[1].DefaultBranch != "develop" {
		t.Errorf("default branch = %q, want %q", ce.Repositories[1].DefaultBranch, "develop")
	}
}

func TestParseEvent_Analysis(t *testing.T) {
	payload := AnalysisEvent{
		Candidate: CandidatePayload{
			Name:  "Grace Hopper",
			Email: "grace@example.com",
		},
		Technologies: []string{"React", "TypeScript"},
		Analyses: []analysis.RepoAnalysis{
			{
				ID:       "an-1",
				RepoName: "web-app",
				Changes: []gitlog.CommitLineChange{
					{
						CommitSHA:  "abc123",
						LinesAdded: 40,
					},
				},
			},
		},
	}

	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	event, err := ParseEvent("analysis", data)
	if err != nil {
		t.Fatalf("ParseEvent: %v", err)
	}

	ae, ok := event.(*AnalysisEvent)
	if !ok {
		t.Fatalf("expected *AnalysisEvent, got %T", event)
	}

	if ae.Candidate.Name != "Grace Hopper" {
		t.Errorf("name = %q, want %q", ae.Candidate.Name, "Grace Hopper")
	}
	if len(ae.Technologies) != 2 {
		t.Errorf("technologies = %d, want 2", len(ae.Technologies))
	}
	if len(ae.Analyses) != 1 {
		t.Fatalf("analyses = %d, want 1", len(ae.Analyses))
	}
	if ae.Analyses[0].RepoName != "web-app" {
		t.Errorf("repo name = %q, want %q", ae.Analyses[0].RepoName, "web-app")
	}
	if ae.Analyses[0].Changes[0].LinesAdded != 40 {
		t.Errorf("lines added = %d, want 40", ae.Analyses[0].Changes[0].LinesAdded)
	}
}

func TestParseEvent_UnsupportedType(t *testing.T) {
	_, err := ParseEvent("unknown_event", []byte(`{}`))
	if err == nil {
		t.Error("expected error for unsupported event type, got nil")
	}
}

func TestParseEvent_InvalidJSON(t *testing.T) {
	types := []string{"candidate", "analysis"}
	for _, eventType := range types {
		t.Run(eventType, func(t *testing.T) {
			_, err := ParseEvent(eventType, []byte(`{invalid json`))
			if err == nil {
				t.Errorf("expected error parsing invalid JSON for %s, got nil", eventType)
			}
		})
	}
}
