package internal

import (
	"context"
	"net/http"
	"strconv"
)

// Session is a server-side conversational context grouping related
// analysis jobs.
type Session struct {
	ID                      string `json:"id"`
	Name                    string `json:"name"`
	OutputLanguage          string `json:"output_language,omitempty"`
	JobMode                 string `json:"job_mode,omitempty"`
	MaxContextualJobHistory int    `json:"max_contextual_job_history,omitempty"`
	AgentID                 string `json:"agent_id,omitempty"`
}

// SessionPage is one page of a session listing.
type SessionPage struct {
	PageNumber int       `json:"page_number"`
	PageSize   int       `json:"page_size"`
	TotalItems int       `json:"total_items"`
	Records    []Session `json:"records"`
}

// SessionParams configures CreateSession. Zero values take the API
// defaults (AUTO language and mode, 10 jobs of context).
type SessionParams struct {
	Name                    string
	OutputLanguage          string
	JobMode                 string
	MaxContextualJobHistory int
}

func (p SessionParams) withDefaults() SessionParams {
	if p.OutputLanguage == "" {
		p.OutputLanguage = "AUTO"
	}
	if p.JobMode == "" {
		p.JobMode = "AUTO"
	}
	if p.MaxContextualJobHistory <= 0 {
		p.MaxContextualJobHistory = 10
	}
	return p
}

// ListSessions lists sessions in the team space.
func (c *Client) ListSessions(ctx context.Context, opts ListOptions) (*SessionPage, error) {
	opts = opts.withDefaults()
	q := c.userQuery()
	q.Set("page_number", strconv.Itoa(opts.PageNumber))
	q.Set("page_size", strconv.Itoa(opts.PageSize))
	if opts.Search != "" {
		q.Set("search", opts.Search)
	}

	var page SessionPage
	if err := c.doJSON(ctx, http.MethodGet, "/v2/team/sessions", q, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateSession creates a new analysis session.
func (c *Client) CreateSession(ctx context.Context, params SessionParams) (*Session, error) {
	params = params.withDefaults()
	payload := map[string]any{
		"name":                       params.Name,
		"user_id":                    c.cfg.UserID,
		"output_language":            params.OutputLanguage,
		"job_mode":                   params.JobMode,
		"max_contextual_job_history": params.MaxContextualJobHistory,
		"agent_id":                   "DATA_ANALYSIS_AGENT",
	}

	var s Session
	if err := c.doJSON(ctx, http.MethodPost, "/v2/team/sessions", nil, payload, &s); err != nil {
		return nil, err
	}
	if s.Name == "" {
		s.Name = params.Name
	}
	return &s, nil
}

// DeleteSession deletes a session and its job history.
func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	payload := map[string]any{"user_id": c.cfg.UserID}
	return c.doJSON(ctx, http.MethodDelete, "/v2/team/sessions/"+sessionID, nil, payload, nil)
}
