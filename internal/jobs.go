package internal

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// BlockType classifies one unit of a job response.
type BlockType string

const (
	BlockMessage   BlockType = "MESSAGE"
	BlockCode      BlockType = "CODE"
	BlockTable     BlockType = "TABLE"
	BlockImage     BlockType = "IMAGE"
	BlockSources   BlockType = "SOURCES"
	BlockQuestions BlockType = "QUESTIONS"
	BlockChartInfo BlockType = "CHART_INFO"
)

// BlockURLValidity is roughly how long the API keeps TABLE and IMAGE block
// URLs fetchable. The client can surface the window but cannot refresh an
// expired URL.
const BlockURLValidity = 6 * 24 * time.Hour

// Block is one typed unit of a job response. Content stays raw: MESSAGE
// blocks carry a JSON string, TABLE/IMAGE blocks a FileRef object, and the
// remaining kinds server-defined structures.
type Block struct {
	Type      BlockType       `json:"type"`
	GroupID   string          `json:"group_id,omitempty"`
	GroupName string          `json:"group_name,omitempty"`
	Stage     string          `json:"stage,omitempty"`
	Content   json.RawMessage `json:"content"`
}

// FileRef is the content of a TABLE or IMAGE block: a generated artifact
// behind an expiring URL.
type FileRef struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	ExpiredAt string `json:"expired_at,omitempty"`
}

// FileRef decodes the block content as a FileRef. ok is false when the
// content is not an object carrying url and name.
func (b Block) FileRef() (ref FileRef, ok bool) {
	if err := json.Unmarshal(b.Content, &ref); err != nil {
		return FileRef{}, false
	}
	return ref, ref.URL != "" && ref.Name != ""
}

// Text decodes the block content as a plain string.
func (b Block) Text() string {
	var s string
	if err := json.Unmarshal(b.Content, &s); err != nil {
		return ""
	}
	return s
}

// JobResult is the parsed outcome of one analysis job: the accumulated
// MESSAGE text plus the ordered list of structured blocks.
type JobResult struct {
	JobID  string  `json:"job_id"`
	Text   string  `json:"text,omitempty"`
	Blocks []Block `json:"blocks,omitempty"`
}

// JobParams configures CreateJob.
type JobParams struct {
	SessionID      string
	Question       string
	DatasetID      string
	DataSourceIDs  []string
	Stream         bool
	OutputLanguage string
	JobMode        string
}

func (p JobParams) payload(userID string) map[string]any {
	if p.OutputLanguage == "" {
		p.OutputLanguage = "AUTO"
	}
	if p.JobMode == "" {
		p.JobMode = "AUTO"
	}
	payload := map[string]any{
		"session_id":      p.SessionID,
		"user_id":         userID,
		"question":        p.Question,
		"stream":          p.Stream,
		"output_language": p.OutputLanguage,
		"job_mode":        p.JobMode,
	}
	if p.DatasetID != "" {
		payload["dataset_id"] = p.DatasetID
	}
	if len(p.DataSourceIDs) > 0 {
		payload["datasource_ids"] = p.DataSourceIDs
	}
	return payload
}

// CreateJob runs one natural-language analysis query. With Stream set the
// SSE response is parsed incrementally; otherwise the complete block list
// arrives in one envelope. Either way the result carries the concatenated
// MESSAGE text and the ordered blocks.
func (c *Client) CreateJob(ctx context.Context, params JobParams) (*JobResult, error) {
	if !params.Stream {
		var data struct {
			JobID  string  `json:"job_id"`
			Blocks []Block `json:"blocks"`
		}
		if err := c.doJSON(ctx, http.MethodPost, "/v2/team/jobs", nil, params.payload(c.cfg.UserID), &data); err != nil {
			return nil, err
		}

		result := &JobResult{JobID: data.JobID}
		for _, b := range data.Blocks {
			if b.Type == BlockMessage {
				result.Text += b.Text()
			}
			result.Blocks = append(result.Blocks, b)
		}
		return result, nil
	}

	body, err := c.postStream(ctx, "/v2/team/jobs", params.payload(c.cfg.UserID))
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return parseStream(body)
}

// Analyze runs a single analysis question against a dataset. Thin wrapper
// around CreateJob.
func (c *Client) Analyze(ctx context.Context, sessionID, datasetID, question string, stream bool) (*JobResult, error) {
	return c.CreateJob(ctx, JobParams{
		SessionID: sessionID,
		DatasetID: datasetID,
		Question:  question,
		Stream:    stream,
	})
}
