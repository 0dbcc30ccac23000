package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEmbedder(server *httptest.Server) *CustomEmbedder {
	return &CustomEmbedder{
		baseURL:    server.URL,
		httpClient: server.Client(),
	}
}

func TestCustomEmbedder_Embed(t *testing.T) {
	var gotPath string
	var gotReq customEmbeddingRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(customEmbeddingResponse{Embedding: []float32{0.1, 0.2, 0.3}})
	}))
	defer server.Close()

	embedder := newTestEmbedder(server)
	vec, err := embedder.Embed(context.Background(), "amor de Dios", TaskTypeQuery)
	require.NoError(t, err)

	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
	assert.Equal(t, "/embed", gotPath)
	assert.Equal(t, "amor de Dios", gotReq.Text)
	assert.Equal(t, taskTypeToInstruction[TaskTypeQuery], gotReq.Instruction)
}

func TestCustomEmbedder_EmbedBatch(t *testing.T) {
	var gotPath string
	var gotReq customBatchEmbeddingRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(customBatchEmbeddingResponse{
			Embeddings: [][]float32{{1, 0}, {0, 1}},
		})
	}))
	defer server.Close()

	embedder := newTestEmbedder(server)
	vecs, err := embedder.EmbedBatch(context.Background(), []string{"Ἐν ἀρχῇ", "En el principio"}, TaskTypeDocument)
	require.NoError(t, err)

	assert.Equal(t, [][]float32{{1, 0}, {0, 1}}, vecs)
	assert.Equal(t, "/embed/batch", gotPath)
	assert.Equal(t, []string{"Ἐν ἀρχῇ", "En el principio"}, gotReq.Texts)
	assert.Equal(t, taskTypeToInstruction[TaskTypeDocument], gotReq.Instruction)
}

func TestCustomEmbedder_EmbedBatchEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for an empty batch")
	}))
	defer server.Close()

	embedder := newTestEmbedder(server)
	vecs, err := embedder.EmbedBatch(context.Background(), nil, TaskTypeDocument)
	require.NoError(t, err)
	assert.Empty(t, vecs)
}

func TestCustomEmbedder_ServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	embedder := newTestEmbedder(server)
	_, err := embedder.Embed(context.Background(), "texto", TaskTypeQuery)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embedding service error")
}

func TestInstructionFor_UnknownTaskType(t *testing.T) {
	assert.Equal(t, taskTypeToInstruction[TaskTypeDocument], instructionFor(TaskType("SOMETHING_ELSE")))
}
