package internal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"pdrill/testutil"
)

func TestListDatasets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/team/datasets" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("page_number"); got != "2" {
			t.Errorf("expected page_number 2, got %q", got)
		}
		if got := r.URL.Query().Get("page_size"); got != "5" {
			t.Errorf("expected page_size 5, got %q", got)
		}
		if got := r.URL.Query().Get("search"); got != "sales" {
			t.Errorf("expected search sales, got %q", got)
		}
		testutil.WriteEnvelope(t, w, 0, "", DatasetPage{
			PageNumber: 2,
			PageSize:   5,
			TotalItems: 11,
			Records: []Dataset{
				{ID: "ds-1", Name: "sales-q1"},
				{ID: "ds-2", Name: "sales-q2", Description: "second quarter"},
			},
		})
	}))
	defer server.Close()

	client := testClient(server.URL)
	page, err := client.ListDatasets(context.Background(), ListOptions{PageNumber: 2, PageSize: 5, Search: "sales"})
	if err != nil {
		t.Fatalf("ListDatasets failed: %v", err)
	}
	if len(page.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(page.Records))
	}
	if page.Records[1].Description != "second quarter" {
		t.Errorf("description not decoded, got %q", page.Records[1].Description)
	}
	if page.TotalItems != 11 {
		t.Errorf("expected total 11, got %d", page.TotalItems)
	}
}

func TestListDatasetsDefaults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("page_number"); got != "1" {
			t.Errorf("expected default page_number 1, got %q", got)
		}
		if got := r.URL.Query().Get("page_size"); got != "10" {
			t.Errorf("expected default page_size 10, got %q", got)
		}
		if r.URL.Query().Has("search") {
			t.Error("empty search must not be sent")
		}
		testutil.WriteEnvelope(t, w, 0, "", DatasetPage{})
	}))
	defer server.Close()

	client := testClient(server.URL)
	if _, err := client.ListDatasets(context.Background(), ListOptions{}); err != nil {
		t.Fatalf("ListDatasets failed: %v", err)
	}
}

func TestCreateDataset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		var payload map[string]any
		testutil.DecodeBody(t, r, &payload)
		if payload["name"] != "T1" {
			t.Errorf("expected name T1, got %v", payload["name"])
		}
		if payload["user_id"] != "user-1" {
			t.Errorf("expected user_id in body, got %v", payload["user_id"])
		}
		if _, ok := payload["description"]; ok {
			t.Error("empty description must be omitted")
		}
		testutil.WriteEnvelope(t, w, 0, "", map[string]string{"id": "ds-new"})
	}))
	defer server.Close()

	client := testClient(server.URL)
	ds, err := client.CreateDataset(context.Background(), "T1", "")
	if err != nil {
		t.Fatalf("CreateDataset failed: %v", err)
	}
	if ds.ID != "ds-new" {
		t.Errorf("expected id ds-new, got %q", ds.ID)
	}
	if ds.Name != "T1" {
		t.Errorf("expected name backfilled to T1, got %q", ds.Name)
	}
}

func TestDeleteDataset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		if r.URL.Path != "/v2/team/datasets/ds-1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var payload map[string]any
		testutil.DecodeBody(t, r, &payload)
		if payload["user_id"] != "user-1" {
			t.Errorf("expected user_id in delete body, got %v", payload["user_id"])
		}
		testutil.WriteEnvelope(t, w, 0, "", nil)
	}))
	defer server.Close()

	client := testClient(server.URL)
	if err := client.DeleteDataset(context.Background(), "ds-1"); err != nil {
		t.Fatalf("DeleteDataset failed: %v", err)
	}
}

func TestDatasetOverview(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/team/datasets/ds-1/overview" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		testutil.WriteEnvelope(t, w, 0, "", DatasetOverview{
			ID:                   "ds-1",
			Name:                 "sales",
			Summary:              "Quarterly sales figures",
			ExplorationQuestions: []string{"What was the best month?"},
		})
	}))
	defer server.Close()

	client := testClient(server.URL)
	ov, err := client.DatasetOverview(context.Background(), "ds-1")
	if err != nil {
		t.Fatalf("DatasetOverview failed: %v", err)
	}
	if ov.Summary != "Quarterly sales figures" {
		t.Errorf("summary not decoded, got %q", ov.Summary)
	}
	if len(ov.ExplorationQuestions) != 1 {
		t.Errorf("expected 1 exploration question, got %d", len(ov.ExplorationQuestions))
	}
}
