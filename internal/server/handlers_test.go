package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hyperjump/youyaku/internal/cluster"
	"github.com/hyperjump/youyaku/internal/config"
	"github.com/hyperjump/youyaku/internal/embedding"
	"github.com/hyperjump/youyaku/internal/frequency"
	"github.com/hyperjump/youyaku/internal/models"
	"github.com/hyperjump/youyaku/internal/sentence"
	"github.com/hyperjump/youyaku/internal/summarizer"
)

const handlerTestBody = "Sentence one is long enough to pass the filter here. Sentence two also passes the filter nicely."

func newTestServer(t *testing.T, maxTokens int) *Server {
	t.Helper()
	seg, err := sentence.NewSegmenter()
	if err != nil {
		t.Fatalf("NewSegmenter: %v", err)
	}
	sum := summarizer.New(
		embedding.NewMockProvider(4, 8, maxTokens),
		seg,
		summarizer.Defaults{
			Ratio:     0.2,
			MinLength: 10,
			MaxLength: 100,
			UseFirst:  true,
			Algorithm: cluster.AlgorithmKMeans,
			Seed:      12345,
			Layer:     -2,
			Reduce:    embedding.ReductionMean,
		},
		100,
		zap.NewNop(),
	)
	fallback, err := frequency.New(zap.NewNop())
	if err != nil {
		t.Fatalf("frequency.New: %v", err)
	}
	return NewServer(sum, fallback, &config.ServerConfig{Host: "localhost", Port: 0}, zap.NewNop())
}

func doJSON(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestHandleSummarize(t *testing.T) {
	srv := newTestServer(t, 0)
	rec := doJSON(t, srv, http.MethodPost, "/api/v1/summaries", models.SummaryRequest{
		Text:         handlerTestBody,
		NumSentences: 1,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp models.SummaryResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Summary == "" {
		t.Error("expected non-empty summary")
	}
	if resp.SentenceCount < 1 {
		t.Errorf("sentence_count = %d", resp.SentenceCount)
	}
	if _, err := uuid.Parse(resp.ID); err != nil {
		t.Errorf("id %q is not a uuid: %v", resp.ID, err)
	}
}

func TestHandleSummarize_BadRequests(t *testing.T) {
	srv := newTestServer(t, 0)
	ratio := 1.5
	tests := []struct {
		name string
		req  models.SummaryRequest
	}{
		{"missing text", models.SummaryRequest{NumSentences: 1}},
		{"ratio out of range", models.SummaryRequest{Text: handlerTestBody, Ratio: &ratio}},
		{"negative num sentences", models.SummaryRequest{Text: handlerTestBody, NumSentences: -1}},
		{"unknown algorithm", models.SummaryRequest{Text: handlerTestBody, Algorithm: "spectral"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, srv, http.MethodPost, "/api/v1/summaries", tt.req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestHandleSummarize_MalformedBody(t *testing.T) {
	srv := newTestServer(t, 0)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/summaries", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleSummarize_TooLongSentenceIsUnprocessable(t *testing.T) {
	srv := newTestServer(t, 5)
	rec := doJSON(t, srv, http.MethodPost, "/api/v1/summaries", models.SummaryRequest{
		Text: handlerTestBody,
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

func TestHandleEmbeddings(t *testing.T) {
	srv := newTestServer(t, 0)
	rec := doJSON(t, srv, http.MethodPost, "/api/v1/summaries/embeddings", models.SummaryRequest{
		Text:         handlerTestBody,
		NumSentences: 1,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp models.EmbeddingResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Vectors) == 0 {
		t.Fatal("expected per-sentence vectors")
	}
	if resp.Dimensions != 8 {
		t.Errorf("dimensions = %d, want 8", resp.Dimensions)
	}
	if resp.Vector != nil {
		t.Error("vector should be empty without an aggregate")
	}
}

func TestHandleEmbeddings_Aggregate(t *testing.T) {
	srv := newTestServer(t, 0)
	rec := doJSON(t, srv, http.MethodPost, "/api/v1/summaries/embeddings", models.SummaryRequest{
		Text:      handlerTestBody,
		Aggregate: "mean",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp models.EmbeddingResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Vector) != 8 {
		t.Errorf("aggregated vector has %d dimensions, want 8", len(resp.Vector))
	}
	if resp.Vectors != nil {
		t.Error("vectors should be omitted when an aggregate was requested")
	}
}

func TestHandleEmbeddings_InvalidAggregate(t *testing.T) {
	srv := newTestServer(t, 0)
	rec := doJSON(t, srv, http.MethodPost, "/api/v1/summaries/embeddings", models.SummaryRequest{
		Text:      handlerTestBody,
		Aggregate: "sum",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleFrequency(t *testing.T) {
	srv := newTestServer(t, 0)
	rec := doJSON(t, srv, http.MethodPost, "/api/v1/summaries/frequency", models.FrequencyRequest{
		Text:         "The cat sat. The cat ran. The dog slept.",
		MaxSentences: 2,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp models.FrequencyResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Sentences) != 2 {
		t.Errorf("got %d sentences, want 2", len(resp.Sentences))
	}
}

func TestHandleFrequency_BadRequests(t *testing.T) {
	srv := newTestServer(t, 0)
	tests := []struct {
		name string
		req  models.FrequencyRequest
	}{
		{"missing text", models.FrequencyRequest{MaxSentences: 2}},
		{"non-positive max", models.FrequencyRequest{Text: "Some text.", MaxSentences: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, srv, http.MethodPost, "/api/v1/summaries/frequency", tt.req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t, 0)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("status field = %q", resp["status"])
	}
}
