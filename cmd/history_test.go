package cmd

import (
	"path/filepath"
	"testing"
	"time"

	"pdrill/internal"
)

func TestOpenHistoryRespectsNoHistory(t *testing.T) {
	origNo, origPath := noHistory, historyPath
	defer func() { noHistory, historyPath = origNo, origPath }()

	noHistory = true
	if h := openHistory(); h != nil {
		h.Close()
		t.Error("openHistory must return nil when history is disabled")
	}
}

func TestRecordAndForgetHistory(t *testing.T) {
	origNo, origPath := noHistory, historyPath
	defer func() { noHistory, historyPath = origNo, origPath }()

	noHistory = false
	historyPath = filepath.Join(t.TempDir(), "history.db")

	recordHistory(internal.HistoryDataset, "ds-1", "sales")

	h := openHistory()
	if h == nil {
		t.Fatal("openHistory returned nil for a valid path")
	}
	entry, err := h.LastByKind(internal.HistoryDataset)
	h.Close()
	if err != nil {
		t.Fatalf("LastByKind failed: %v", err)
	}
	if entry == nil || entry.RemoteID != "ds-1" {
		t.Fatalf("recorded entry not found, got %+v", entry)
	}

	forgetHistory("ds-1")

	h = openHistory()
	entry, err = h.LastByKind(internal.HistoryDataset)
	h.Close()
	if err != nil {
		t.Fatalf("LastByKind failed: %v", err)
	}
	if entry != nil {
		t.Errorf("entry should be gone after forgetHistory, got %+v", entry)
	}
}

func TestDisplayHistory(t *testing.T) {
	displayHistory(nil)
	displayHistory([]internal.HistoryEntry{
		{ID: 1, Kind: internal.HistoryDataset, RemoteID: "ds-1", Name: "sales", CreatedAt: time.Now()},
		{ID: 2, Kind: internal.HistorySession, RemoteID: "sess-1", Name: "exploration", CreatedAt: time.Now()},
	})
}
