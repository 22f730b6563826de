package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// embeddingServer fakes an OpenAI-compatible /embeddings endpoint
func embeddingServer(t *testing.T, handler http.HandlerFunc) (*OpenAIEmbedding, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc, err := NewOpenAIEmbedding("sk-test", "", srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc.(*OpenAIEmbedding), srv
}

func TestNewOpenAIEmbedding_Defaults(t *testing.T) {
	if _, err := NewOpenAIEmbedding("", "", ""); err == nil {
		t.Error("expected an error for a missing API key")
	}

	svc, err := NewOpenAIEmbedding("sk-test", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	emb := svc.(*OpenAIEmbedding)
	// The default must line up with DefaultRetrievalSettings
	if emb.model != "text-embedding-large" {
		t.Errorf("expected the settings default model, got %s", emb.model)
	}
	if emb.baseURL != "https://api.openai.com/v1" {
		t.Errorf("expected the OpenAI base URL, got %s", emb.baseURL)
	}
}

func TestOpenAIEmbedding_Dimensions(t *testing.T) {
	tests := []struct {
		model string
		want  int
	}{
		{"text-embedding-large", 1536},
		{"text-embedding-small", 1536},
		{"text-embedding-3-large", 3072},
		{"text-embedding-ada-002", 1536},
		{"some-future-model", 1536}, // falls back to the default width
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			svc, err := NewOpenAIEmbedding("sk-test", tt.model, "")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if svc.Dimensions() != tt.want {
				t.Errorf("expected %d, got %d", tt.want, svc.Dimensions())
			}
			if svc.Model() != tt.model {
				t.Errorf("expected model %s, got %s", tt.model, svc.Model())
			}
		})
	}
}

func TestOpenAIEmbedding_Embed(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	svc, _ := embeddingServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		// Out of order on purpose: Embed must restore input order
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"index": 1, "embedding": []float32{0.3, 0.4}},
				{"index": 0, "embedding": []float32{0.1, 0.2}},
			},
		})
	})

	vectors, err := svc.Embed(context.Background(), []string{"granite is igneous", "shale is sedimentary"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vectors) != 2 {
		t.Fatalf("expected 2 vectors, got %d", len(vectors))
	}
	if vectors[0][0] != 0.1 || vectors[1][0] != 0.3 {
		t.Errorf("expected vectors in input order, got %v", vectors)
	}

	if gotAuth != "Bearer sk-test" {
		t.Errorf("expected the bearer header, got %q", gotAuth)
	}
	if gotBody["model"] != "text-embedding-large" {
		t.Errorf("expected the configured model in the request, got %v", gotBody["model"])
	}
}

func TestOpenAIEmbedding_Embed_EmptyBatch(t *testing.T) {
	svc, _ := NewOpenAIEmbedding("sk-test", "", "http://unused.invalid")

	vectors, err := svc.Embed(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vectors != nil {
		t.Errorf("expected no vectors for an empty batch, got %v", vectors)
	}
}

func TestOpenAIEmbedding_Embed_IndexOutOfRange(t *testing.T) {
	svc, _ := embeddingServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"index": 5, "embedding": []float32{0.1}},
			},
		})
	})

	if _, err := svc.Embed(context.Background(), []string{"one"}); err == nil {
		t.Error("expected an error for a response index outside the batch")
	}
}

func TestOpenAIEmbedding_Embed_APIError(t *testing.T) {
	svc, _ := embeddingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "bad key", "type": "invalid_request_error"},
		})
	})

	_, err := svc.Embed(context.Background(), []string{"text"})
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "bad key") {
		t.Errorf("expected the upstream message to surface, got %v", err)
	}
}

func TestOpenAIEmbedding_Embed_BadStatusWithoutBody(t *testing.T) {
	svc, _ := embeddingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("{}"))
	})

	_, err := svc.Embed(context.Background(), []string{"text"})
	if err == nil || !strings.Contains(err.Error(), "502") {
		t.Errorf("expected the status code to surface, got %v", err)
	}
}

func TestOpenAIEmbedding_EmbedQuery(t *testing.T) {
	svc, _ := embeddingServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"index": 0, "embedding": []float32{0.5, 0.6}},
			},
		})
	})

	vector, err := svc.EmbedQuery(context.Background(), "what is basalt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vector) != 2 || vector[0] != 0.5 {
		t.Errorf("unexpected vector: %v", vector)
	}
}

func TestOpenAIEmbedding_EmbedQuery_EmptyResponse(t *testing.T) {
	svc, _ := embeddingServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []map[string]any{}})
	})

	if _, err := svc.EmbedQuery(context.Background(), "query"); err == nil {
		t.Error("expected an error when the API returns no embedding")
	}
}

func TestOpenAIEmbedding_HealthCheck(t *testing.T) {
	svc, _ := embeddingServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"index": 0, "embedding": []float32{0.1}},
			},
		})
	})

	if err := svc.HealthCheck(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := svc.Close(); err != nil {
		t.Errorf("unexpected error on close: %v", err)
	}
}
