package cmd

import (
	"bytes"
	"testing"

	"pdrill/internal"
)

func TestUploadFileRequiresBothArgs(t *testing.T) {
	rootCmd.SetArgs([]string{"upload-file", "ds-1"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})

	if err := rootCmd.Execute(); err == nil {
		t.Error("upload-file without a file path must fail")
	}
}

func TestWaitSyncFlagDefaults(t *testing.T) {
	flags := waitSyncCmd.Flags()

	attempts, err := flags.GetInt("max-attempts")
	if err != nil || attempts != internal.DefaultSyncAttempts {
		t.Errorf("expected default max-attempts %d, got %d (%v)", internal.DefaultSyncAttempts, attempts, err)
	}
	delay, err := flags.GetDuration("delay")
	if err != nil || delay != internal.DefaultSyncDelay {
		t.Errorf("expected default delay %s, got %s (%v)", internal.DefaultSyncDelay, delay, err)
	}
}

func TestCreateDataSourceRequiresOneOrigin(t *testing.T) {
	t.Setenv("POWERDRILL_USER_ID", "u")
	t.Setenv("POWERDRILL_PROJECT_API_KEY", "k")

	origURL, origKey := createDataSourceURL, createDataSourceKey
	defer func() { createDataSourceURL, createDataSourceKey = origURL, origKey }()

	// Neither origin.
	rootCmd.SetArgs([]string{"create-data-source", "ds-1"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	if err := rootCmd.Execute(); err == nil {
		t.Error("create-data-source without an origin must fail")
	}

	// Both origins.
	rootCmd.SetArgs([]string{
		"create-data-source", "ds-1",
		"--url", "https://example.com/a.csv",
		"--file-object-key", "key-1",
	})
	if err := rootCmd.Execute(); err == nil {
		t.Error("create-data-source with both origins must fail")
	}
}

func TestDisplayDataSources(t *testing.T) {
	displayDataSources(&internal.DataSourcePage{})
	displayDataSources(&internal.DataSourcePage{
		TotalItems: 3,
		Records: []internal.DataSource{
			{ID: "src-1", Name: "q1.csv", Status: internal.DataSourceSynched, Size: 12345},
			{ID: "src-2", Name: "q2.csv", Status: internal.DataSourceSynching},
			{ID: "src-3", Name: "broken.csv", Status: internal.DataSourceInvalid},
		},
	})
}
