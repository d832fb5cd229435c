package internal

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pdrill/testutil"
)

func TestCreateDataSourceFromKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/team/datasets/ds-1/datasources" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var payload map[string]any
		testutil.DecodeBody(t, r, &payload)
		if payload["type"] != "FILE" {
			t.Errorf("expected type FILE, got %v", payload["type"])
		}
		if payload["file_object_key"] != "key-123" {
			t.Errorf("expected file_object_key key-123, got %v", payload["file_object_key"])
		}
		if _, ok := payload["url"]; ok {
			t.Error("url must not be sent alongside file_object_key")
		}
		testutil.WriteEnvelope(t, w, 0, "", map[string]string{"id": "src-1", "name": "data.csv"})
	}))
	defer server.Close()

	client := testClient(server.URL)
	ds, err := client.CreateDataSource(context.Background(), "ds-1", "data.csv",
		DataSourceOrigin{FileObjectKey: "key-123"})
	if err != nil {
		t.Fatalf("CreateDataSource failed: %v", err)
	}
	if ds.ID != "src-1" {
		t.Errorf("expected id src-1, got %q", ds.ID)
	}
	if ds.DatasetID != "ds-1" {
		t.Errorf("expected dataset id backfilled, got %q", ds.DatasetID)
	}
}

func TestCreateDataSourceFromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		testutil.DecodeBody(t, r, &payload)
		if payload["url"] != "https://example.com/data.csv" {
			t.Errorf("expected url in payload, got %v", payload["url"])
		}
		testutil.WriteEnvelope(t, w, 0, "", map[string]string{"id": "src-2"})
	}))
	defer server.Close()

	client := testClient(server.URL)
	if _, err := client.CreateDataSource(context.Background(), "ds-1", "data.csv",
		DataSourceOrigin{URL: "https://example.com/data.csv"}); err != nil {
		t.Fatalf("CreateDataSource failed: %v", err)
	}
}

func TestCreateDataSourceNoOrigin(t *testing.T) {
	client := testClient("http://localhost:0")
	_, err := client.CreateDataSource(context.Background(), "ds-1", "data.csv", DataSourceOrigin{})
	if !errors.Is(err, errNoOrigin) {
		t.Errorf("expected errNoOrigin, got %v", err)
	}
}

func TestListDataSourcesStatusFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("status"); got != DataSourceInvalid {
			t.Errorf("expected status filter invalid, got %q", got)
		}
		testutil.WriteEnvelope(t, w, 0, "", DataSourcePage{
			TotalItems: 1,
			Records:    []DataSource{{ID: "src-1", Name: "broken.csv", Status: DataSourceInvalid}},
		})
	}))
	defer server.Close()

	client := testClient(server.URL)
	page, err := client.ListDataSources(context.Background(), "ds-1",
		DataSourceListOptions{Status: DataSourceInvalid})
	if err != nil {
		t.Fatalf("ListDataSources failed: %v", err)
	}
	if len(page.Records) != 1 || page.Records[0].Status != DataSourceInvalid {
		t.Errorf("unexpected page: %+v", page)
	}
}
