package internal

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"pdrill/testutil"
)

func TestCreateJobNonStreaming(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/team/jobs" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var payload map[string]any
		testutil.DecodeBody(t, r, &payload)
		if payload["stream"] != false {
			t.Errorf("expected stream false, got %v", payload["stream"])
		}
		if payload["question"] != "count rows" {
			t.Errorf("expected question in payload, got %v", payload["question"])
		}
		if payload["dataset_id"] != "ds-1" {
			t.Errorf("expected dataset_id ds-1, got %v", payload["dataset_id"])
		}
		if payload["output_language"] != "AUTO" {
			t.Errorf("expected output_language AUTO, got %v", payload["output_language"])
		}
		testutil.WriteEnvelope(t, w, 0, "", map[string]any{
			"job_id": "job-1",
			"blocks": []map[string]any{
				{"type": "MESSAGE", "content": "The dataset has 42 rows."},
				{"type": "TABLE", "content": map[string]string{"name": "result.csv", "url": "https://files.example.com/result.csv"}},
			},
		})
	}))
	defer server.Close()

	client := testClient(server.URL)
	result, err := client.CreateJob(context.Background(), JobParams{
		SessionID: "sess-1",
		Question:  "count rows",
		DatasetID: "ds-1",
	})
	if err != nil {
		t.Fatalf("CreateJob failed: %v", err)
	}

	if result.JobID != "job-1" {
		t.Errorf("expected job id job-1, got %q", result.JobID)
	}
	if result.Text != "The dataset has 42 rows." {
		t.Errorf("MESSAGE text not extracted, got %q", result.Text)
	}
	types := blockTypes(result.Blocks)
	if !types[BlockMessage] || !types[BlockTable] {
		t.Errorf("expected MESSAGE and TABLE blocks, got %v", types)
	}
}

func TestCreateJobStreaming(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		testutil.DecodeBody(t, r, &payload)
		if payload["stream"] != true {
			t.Errorf("expected stream true, got %v", payload["stream"])
		}

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, sampleStream)
	}))
	defer server.Close()

	client := testClient(server.URL)
	result, err := client.CreateJob(context.Background(), JobParams{
		SessionID: "sess-1",
		Question:  "count rows",
		DatasetID: "ds-1",
		Stream:    true,
	})
	if err != nil {
		t.Fatalf("streaming CreateJob failed: %v", err)
	}
	if result.Text != "The dataset has 42 rows." {
		t.Errorf("expected accumulated text, got %q", result.Text)
	}
}

// Streamed and non-streamed runs of the same question must surface the
// same block kinds; only accumulation order may differ.
func TestCreateJobStreamParity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		testutil.DecodeBody(t, r, &payload)

		if payload["stream"] == true {
			w.Header().Set("Content-Type", "text/event-stream")
			fmt.Fprint(w, sampleStream)
			return
		}
		testutil.WriteEnvelope(t, w, 0, "", map[string]any{
			"job_id": "job-1",
			"blocks": []map[string]any{
				{"type": "TABLE", "content": map[string]string{"name": "result.csv", "url": "https://files.example.com/result.csv"}},
				{"type": "IMAGE", "content": map[string]string{"name": "plot.png", "url": "https://files.example.com/plot.png"}},
				{"type": "MESSAGE", "content": "The dataset has 42 rows."},
			},
		})
	}))
	defer server.Close()

	client := testClient(server.URL)
	params := JobParams{SessionID: "sess-1", Question: "count rows", DatasetID: "ds-1"}

	plain, err := client.CreateJob(context.Background(), params)
	if err != nil {
		t.Fatalf("non-streaming CreateJob failed: %v", err)
	}
	params.Stream = true
	streamed, err := client.CreateJob(context.Background(), params)
	if err != nil {
		t.Fatalf("streaming CreateJob failed: %v", err)
	}

	plainTypes, streamedTypes := blockTypes(plain.Blocks), blockTypes(streamed.Blocks)
	if len(plainTypes) != len(streamedTypes) {
		t.Fatalf("block kind sets differ: %v vs %v", plainTypes, streamedTypes)
	}
	for kind := range plainTypes {
		if !streamedTypes[kind] {
			t.Errorf("kind %s missing from streamed result", kind)
		}
	}
	if plain.Text != streamed.Text {
		t.Errorf("text differs: %q vs %q", plain.Text, streamed.Text)
	}
}

func TestAnalyze(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		testutil.DecodeBody(t, r, &payload)
		if payload["session_id"] != "sess-1" || payload["dataset_id"] != "ds-1" {
			t.Errorf("unexpected payload: %v", payload)
		}
		testutil.WriteEnvelope(t, w, 0, "", map[string]any{
			"job_id": "job-9",
			"blocks": []map[string]any{{"type": "MESSAGE", "content": "done"}},
		})
	}))
	defer server.Close()

	client := testClient(server.URL)
	result, err := client.Analyze(context.Background(), "sess-1", "ds-1", "count rows", false)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if result.JobID != "job-9" {
		t.Errorf("expected job id job-9, got %q", result.JobID)
	}
}
