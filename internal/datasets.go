package internal

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
)

// Dataset is a server-side container of uploaded files available for
// analysis. All identifiers are opaque strings minted by the server.
type Dataset struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// DatasetPage is one page of a dataset listing.
type DatasetPage struct {
	PageNumber int       `json:"page_number"`
	PageSize   int       `json:"page_size"`
	TotalItems int       `json:"total_items"`
	Records    []Dataset `json:"records"`
}

// DatasetStatus aggregates sync counts across the dataset's data sources.
type DatasetStatus struct {
	SynchedCount  int `json:"synched_count"`
	SynchingCount int `json:"synching_count"`
	InvalidCount  int `json:"invalid_count"`
}

// DatasetOverview is the server-generated summary of an indexed dataset.
type DatasetOverview struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	Description          string   `json:"description,omitempty"`
	Summary              string   `json:"summary,omitempty"`
	ExplorationQuestions []string `json:"exploration_questions,omitempty"`
	Keywords             []string `json:"keywords,omitempty"`
}

// ListOptions controls pagination and search for listing endpoints.
type ListOptions struct {
	PageNumber int
	PageSize   int
	Search     string
}

func (o ListOptions) withDefaults() ListOptions {
	if o.PageNumber <= 0 {
		o.PageNumber = 1
	}
	if o.PageSize <= 0 {
		o.PageSize = 10
	}
	return o
}

// ListDatasets lists datasets in the team space.
func (c *Client) ListDatasets(ctx context.Context, opts ListOptions) (*DatasetPage, error) {
	opts = opts.withDefaults()
	q := c.userQuery()
	q.Set("page_number", strconv.Itoa(opts.PageNumber))
	q.Set("page_size", strconv.Itoa(opts.PageSize))
	if opts.Search != "" {
		q.Set("search", opts.Search)
	}

	var page DatasetPage
	if err := c.doJSON(ctx, http.MethodGet, "/v2/team/datasets", q, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateDataset creates an empty dataset and returns it with its new id.
func (c *Client) CreateDataset(ctx context.Context, name, description string) (*Dataset, error) {
	payload := map[string]any{
		"name":    name,
		"user_id": c.cfg.UserID,
	}
	if description != "" {
		payload["description"] = description
	}

	var ds Dataset
	if err := c.doJSON(ctx, http.MethodPost, "/v2/team/datasets", nil, payload, &ds); err != nil {
		return nil, err
	}
	if ds.Name == "" {
		ds.Name = name
	}
	return &ds, nil
}

// DatasetOverview fetches the server-generated overview for a dataset. The
// overview is only meaningful once the dataset's sources have synced.
func (c *Client) DatasetOverview(ctx context.Context, datasetID string) (*DatasetOverview, error) {
	var ov DatasetOverview
	path := fmt.Sprintf("/v2/team/datasets/%s/overview", datasetID)
	if err := c.doJSON(ctx, http.MethodGet, path, c.userQuery(), nil, &ov); err != nil {
		return nil, err
	}
	return &ov, nil
}

// DatasetStatus fetches the current data-source sync counts for a dataset.
func (c *Client) DatasetStatus(ctx context.Context, datasetID string) (*DatasetStatus, error) {
	var st DatasetStatus
	path := fmt.Sprintf("/v2/team/datasets/%s/status", datasetID)
	if err := c.doJSON(ctx, http.MethodGet, path, c.userQuery(), nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// DeleteDataset deletes a dataset and everything in it.
func (c *Client) DeleteDataset(ctx context.Context, datasetID string) error {
	payload := map[string]any{"user_id": c.cfg.UserID}
	return c.doJSON(ctx, http.MethodDelete, "/v2/team/datasets/"+datasetID, nil, payload, nil)
}
