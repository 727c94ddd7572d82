package api

import (
	"net/http"
)

type candidateResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	CreatedAt   string `json:"created_at"`
}

type repoResponse struct {
	ID            string  `json:"id"`
	FullName      string  `json:"full_name"`
	CloneURL      *string `json:"clone_url,omitempty"`
	DefaultBranch string  `json:"default_branch"`
}

func (h *Handler) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.candidateSvc.ListCandidates(r.Context())
	if err != nil {
		writeJSON(w, http.StatusOK, []candidateResponse{})
		return
	}

	var result []candidateResponse
	for _, c := range candidates {
		result = append(result, candidateResponse{
			ID:          c.ID,
			DisplayName: c.DisplayName,
			Email:       c.Email,
			CreatedAt:   c.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}

	if result == nil {
		result = []candidateResponse{}
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	candidateID := r.PathValue("candidateID")

	c, err := h.candidateSvc.GetCandidate(r.Context(), candidateID)
	if err != nil {
		writeError(w, http.StatusNotFound, "candidate not found")
		return
	}

	writeJSON(w, http.StatusOK, candidateResponse{
		ID:          c.ID,
		DisplayName: c.DisplayName,
		Email:       c.Email,
		CreatedAt:   c.CreatedAt.Format("2006-01-02T15:04:05Z"),
	})
}

func (h *Handler) handleListRepos(w http.ResponseWriter, r *http.Request) {
	candidateID := r.PathValue("candidateID")

	repos, err := h.candidateSvc.ListRepositories(r.Context(), candidateID)
	if err != nil {
		writeJSON(w, http.StatusOK, []repoResponse{})
		return
	}

	var result []repoResponse
	for _, repo := range repos {
		result = append(result, repoResponse{
			ID:            repo.ID,
			FullName:      repo.FullName,
			CloneURL:      repo.CloneURL,
			DefaultBranch: repo.DefaultBranch,
		})
	}

	if result == nil {
		result = []repoResponse{}
	}
	writeJSON(w, http.StatusOK, result)
}
