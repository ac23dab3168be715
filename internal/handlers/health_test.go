package handlers

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"syscatalog/internal/config"
	"syscatalog/internal/services"
	"syscatalog/internal/store"
)

func TestRoot_Probe(t *testing.T) {
	catalog := services.NewCatalogService(store.New(filepath.Join(t.TempDir(), "db_data.json")))
	chat := services.NewChatService(config.DefaultConfig())

	r := gin.New()
	r.GET("/", NewHealthHandler(catalog, chat).Root)

	w := doJSON(r, "GET", "/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["message"] != "Enterprise Systems Catalog API" {
		t.Errorf("unexpected message %q", body["message"])
	}
	if body["version"] != "1.0.0" {
		t.Errorf("unexpected version %q", body["version"])
	}
}

func TestCheckHealth_DegradedPipeline(t *testing.T) {
	catalog := services.NewCatalogService(store.New(filepath.Join(t.TempDir(), "db_data.json")))
	chat := services.NewChatService(config.DefaultConfig())

	r := gin.New()
	r.GET("/health", NewHealthHandler(catalog, chat).CheckHealth)

	w := doJSON(r, "GET", "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		Status     string `json:"status"`
		Components struct {
			CatalogRecords int    `json:"catalog_records"`
			RAGPipeline    string `json:"rag_pipeline"`
		} `json:"components"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" {
		t.Errorf("unexpected status %q", body.Status)
	}
	if body.Components.RAGPipeline != "degraded" {
		t.Errorf("expected degraded pipeline without API key, got %q", body.Components.RAGPipeline)
	}
}
