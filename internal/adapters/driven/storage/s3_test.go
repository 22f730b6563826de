package storage

import (
	"strings"
	"testing"
	"time"
)

func TestNew_RequiresEndpoint(t *testing.T) {
	_, err := New(Config{Bucket: "docs"})
	if err == nil {
		t.Error("expected error for missing endpoint")
	}
}

func TestNew_RequiresBucket(t *testing.T) {
	_, err := New(Config{Endpoint: "s3.example.com"})
	if err == nil {
		t.Error("expected error for missing bucket")
	}
}

func testStore(t *testing.T) *S3Store {
	t.Helper()
	store, err := New(Config{
		Endpoint:  "storage.example.com",
		AccessKey: "access",
		SecretKey: "secret",
		Bucket:    "docs",
		Region:    "us-east-1",
		UseSSL:    true,
	})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return store
}

func TestS3Store_PresignPut(t *testing.T) {
	store := testStore(t)

	signed, err := store.PresignPut("projects/p1/documents/d1.pdf", "application/pdf", 15*time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(signed, "https://") {
		t.Errorf("expected https URL, got %s", signed)
	}
	if !strings.Contains(signed, "projects/p1/documents/d1.pdf") {
		t.Errorf("expected object key in URL, got %s", signed)
	}
	if !strings.Contains(signed, "X-Amz-Signature=") {
		t.Errorf("expected signature query parameter, got %s", signed)
	}
	if !strings.Contains(signed, "X-Amz-Expires=900") {
		t.Errorf("expected 900s expiry, got %s", signed)
	}
}

func TestS3Store_PresignGet(t *testing.T) {
	store := testStore(t)

	signed, err := store.PresignGet("projects/p1/documents/d1.pdf", 10*time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(signed, "X-Amz-Signature=") {
		t.Errorf("expected signature query parameter, got %s", signed)
	}
	if !strings.Contains(signed, "X-Amz-Expires=600") {
		t.Errorf("expected 600s expiry, got %s", signed)
	}
}

func TestS3Store_PresignedURLsDiffer(t *testing.T) {
	store := testStore(t)

	put, err := store.PresignPut("k", "text/plain", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	get, err := store.PresignGet("k", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if put == get {
		t.Error("expected distinct signatures for PUT and GET")
	}
}
