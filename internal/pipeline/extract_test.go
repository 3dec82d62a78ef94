package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maelle/smartcv/internal/extraction"
	"github.com/maelle/smartcv/internal/ingestion"
	"github.com/maelle/smartcv/internal/language"
	"github.com/maelle/smartcv/internal/llm"
)

// mockClient implements llm.Client for pipeline tests. The mutex keeps the
// counters safe under batch concurrency; delay holds a call open long enough
// for overlapping calls to register in maxInflight.
type mockClient struct {
	mu              sync.Mutex
	jsonResponse    string
	jsonErr         error
	contentResponse string
	contentErr      error
	delay           time.Duration

	jsonCalls    int
	contentCalls int
	inflight     int
	maxInflight  int
}

func (m *mockClient) GenerateContent(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contentCalls++
	if m.contentErr != nil {
		return "", m.contentErr
	}
	return m.contentResponse, nil
}

func (m *mockClient) GenerateJSON(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	m.mu.Lock()
	m.jsonCalls++
	m.inflight++
	if m.inflight > m.maxInflight {
		m.maxInflight = m.inflight
	}
	delay := m.delay
	m.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.inflight--
	if m.jsonErr != nil {
		return "", m.jsonErr
	}
	return m.jsonResponse, nil
}

func (m *mockClient) GetModel(_ llm.ModelTier) string { return "mock-model" }

func (m *mockClient) Close() error { return nil }

const extractedRecordJSON = `{
  "personal": {"name": "Nora Vance", "email": "nora@example.com", "phone": "555-0142", "summary": "Platform engineer."},
  "education": [{"institution": "ETH Zurich", "degree": "MSc", "field": "Computer Science", "start": "2013", "end": "2015"}],
  "experience": [{"employer": "Helvetia Cloud", "title": "Platform Engineer", "start": "2016", "end": "present", "bullets": ["Ran the container fleet"]}],
  "skills": [{"category": "Languages", "items": ["Go", "Rust"]}],
  "language": "english"
}`

const extractedRecordNoSummaryJSON = `{
  "personal": {"name": "Nora Vance", "email": "nora@example.com"},
  "experience": [{"employer": "Helvetia Cloud", "title": "Platform Engineer", "bullets": ["Ran the container fleet"]}],
  "language": "english"
}`

func TestExtractResume_InlineText(t *testing.T) {
	client := &mockClient{jsonResponse: extractedRecordJSON}

	result, err := ExtractResume(context.Background(), ExtractOptions{
		Text:   "Nora Vance\nPlatform Engineer at Helvetia Cloud since 2016.",
		Client: client,
	})
	require.NoError(t, err)

	assert.Equal(t, "Nora Vance", result.Record.Personal.Name)
	assert.Equal(t, language.English, result.Language)
	assert.Equal(t, "english", result.Record.Language)
	assert.Nil(t, result.Source)
	assert.NotNil(t, result.Warnings)
	assert.Equal(t, 1, client.jsonCalls)
	assert.Equal(t, 0, client.contentCalls)
}

func TestExtractResume_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	content := "Nora Vance\n\nEXPERIENCE\nPlatform Engineer, Helvetia Cloud\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	client := &mockClient{jsonResponse: extractedRecordJSON}
	result, err := ExtractResume(context.Background(), ExtractOptions{Path: path, Client: client})
	require.NoError(t, err)

	require.NotNil(t, result.Source)
	assert.Equal(t, "resume.txt", result.Source.Source)
	assert.Equal(t, ingestion.KindText, result.Source.Kind)
	assert.Len(t, result.Source.Hash, 64)
}

func TestExtractResume_FromUploadedBytes(t *testing.T) {
	client := &mockClient{jsonResponse: extractedRecordJSON}

	result, err := ExtractResume(context.Background(), ExtractOptions{
		Data:     []byte("Nora Vance\nPlatform Engineer at Helvetia Cloud."),
		Filename: "upload.txt",
		Client:   client,
	})
	require.NoError(t, err)

	require.NotNil(t, result.Source)
	assert.Equal(t, "upload.txt", result.Source.Source)
	assert.Equal(t, ingestion.KindText, result.Source.Kind)
}

func TestExtractResume_FromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><body><main>Nora Vance. Platform Engineer at Helvetia Cloud with nine years of experience running large container fleets in production.</main></body></html>`)
	}))
	defer server.Close()

	client := &mockClient{jsonResponse: extractedRecordJSON}
	result, err := ExtractResume(context.Background(), ExtractOptions{URL: server.URL, Client: client})
	require.NoError(t, err)

	require.NotNil(t, result.Source)
	assert.Equal(t, ingestion.KindHTML, result.Source.Kind)
	assert.Equal(t, server.URL, result.Source.Source)
}

func TestExtractResume_NoInput(t *testing.T) {
	_, err := ExtractResume(context.Background(), ExtractOptions{Client: &mockClient{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no input")
}

func TestExtractResume_WhitespaceTextIsNoInput(t *testing.T) {
	_, err := ExtractResume(context.Background(), ExtractOptions{
		Text:   "   \n\t  \n",
		Client: &mockClient{},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no input")
}

func TestExtractResume_FileBeatsURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Nora Vance, Platform Engineer."), 0644))

	client := &mockClient{jsonResponse: extractedRecordJSON}
	result, err := ExtractResume(context.Background(), ExtractOptions{
		Path:   path,
		URL:    "http://localhost:1/should-not-be-fetched",
		Client: client,
	})
	require.NoError(t, err)
	assert.Equal(t, "resume.txt", result.Source.Source)
}

func TestExtractResume_LanguageHintOverridesRecord(t *testing.T) {
	client := &mockClient{jsonResponse: extractedRecordJSON}

	result, err := ExtractResume(context.Background(), ExtractOptions{
		Text:         "Nora Vance, Platform Engineer.",
		LanguageHint: "fr",
		Client:       client,
	})
	require.NoError(t, err)

	assert.Equal(t, language.French, result.Language)
	assert.Equal(t, "french", result.Record.Language)
}

func TestExtractResume_UnrecognizedHintWarns(t *testing.T) {
	client := &mockClient{jsonResponse: extractedRecordJSON}

	result, err := ExtractResume(context.Background(), ExtractOptions{
		Text:         "Nora Vance, Platform Engineer.",
		LanguageHint: "klingon",
		Client:       client,
	})
	require.NoError(t, err)

	assert.Equal(t, language.English, result.Language)
	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[0], `unrecognized language "klingon"`)
}

func TestExtractResume_DraftSummaryFillsEmptySummary(t *testing.T) {
	client := &mockClient{
		jsonResponse:    extractedRecordNoSummaryJSON,
		contentResponse: "Platform engineer with nine years of container infrastructure experience.",
	}

	result, err := ExtractResume(context.Background(), ExtractOptions{
		Text:         "Nora Vance, Platform Engineer.",
		DraftSummary: true,
		Client:       client,
	})
	require.NoError(t, err)

	assert.Equal(t, "Platform engineer with nine years of container infrastructure experience.", result.Record.Personal.Summary)
	assert.Equal(t, 1, client.contentCalls)
}

func TestExtractResume_DraftSummarySkippedWhenPresent(t *testing.T) {
	client := &mockClient{jsonResponse: extractedRecordJSON}

	result, err := ExtractResume(context.Background(), ExtractOptions{
		Text:         "Nora Vance, Platform Engineer.",
		DraftSummary: true,
		Client:       client,
	})
	require.NoError(t, err)

	assert.Equal(t, "Platform engineer.", result.Record.Personal.Summary)
	assert.Equal(t, 0, client.contentCalls)
}

func TestExtractResume_DraftSummaryFailureIsWarning(t *testing.T) {
	client := &mockClient{
		jsonResponse: extractedRecordNoSummaryJSON,
		contentErr:   errors.New("quota exhausted"),
	}

	result, err := ExtractResume(context.Background(), ExtractOptions{
		Text:         "Nora Vance, Platform Engineer.",
		DraftSummary: true,
		Client:       client,
	})
	require.NoError(t, err)

	assert.Empty(t, result.Record.Personal.Summary)
	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[len(result.Warnings)-1], "summary drafting failed")
}

func TestExtractResume_ModelFailure(t *testing.T) {
	client := &mockClient{jsonErr: errors.New("503 backend unavailable")}

	_, err := ExtractResume(context.Background(), ExtractOptions{
		Text:   "Nora Vance, Platform Engineer.",
		Client: client,
	})
	require.Error(t, err)

	var extractErr *extraction.ExtractionError
	require.ErrorAs(t, err, &extractErr)
	assert.Equal(t, extraction.KindUpstreamUnavailable, extractErr.Kind)
}

func TestExtractResume_NoClientNoKey(t *testing.T) {
	_, err := ExtractResume(context.Background(), ExtractOptions{
		Text: "Nora Vance, Platform Engineer.",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create model client")
}

func TestExtractResume_UnreadableFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.bin")
	require.NoError(t, os.WriteFile(path, []byte{0x00, 0x01, 0xff, 0xfe}, 0644))

	client := &mockClient{jsonResponse: extractedRecordJSON}
	_, err := ExtractResume(context.Background(), ExtractOptions{Path: path, Client: client})
	require.Error(t, err)

	var unreadable *ingestion.UnreadableError
	assert.ErrorAs(t, err, &unreadable)
	assert.Equal(t, 0, client.jsonCalls)
}
