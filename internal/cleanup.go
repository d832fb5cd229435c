package internal

import "context"

// CleanupSession deletes a session, logging failure instead of returning
// it, so a caller tearing down several resources can always try them all.
func (c *Client) CleanupSession(ctx context.Context, sessionID string) {
	if err := c.DeleteSession(ctx, sessionID); err != nil {
		LogWarn("Could not delete session %s: %v", sessionID, err)
		return
	}
	LogInfo("Session %s deleted.", sessionID)
}

// CleanupDataset deletes a dataset, logging failure instead of returning it.
func (c *Client) CleanupDataset(ctx context.Context, datasetID string) {
	if err := c.DeleteDataset(ctx, datasetID); err != nil {
		LogWarn("Could not delete dataset %s: %v", datasetID, err)
		return
	}
	LogInfo("Dataset %s deleted.", datasetID)
}

// Cleanup deletes the session and/or dataset after an analysis run. Empty
// ids are skipped; one side failing never blocks the other.
func (c *Client) Cleanup(ctx context.Context, sessionID, datasetID string) {
	if sessionID != "" {
		c.CleanupSession(ctx, sessionID)
	}
	if datasetID != "" {
		c.CleanupDataset(ctx, datasetID)
	}
}
