package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func openFixture(t *testing.T) *os.File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.jpg")
	if err := os.WriteFile(path, []byte("fake image data"), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open fixture: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestDiskClientUploadAndDelete(t *testing.T) {
	baseDir := t.TempDir()
	client := NewDiskClient(baseDir)

	url, err := client.UploadProductImage(openFixture(t), "photo.JPG", "image/jpeg")
	if err != nil {
		t.Fatalf("UploadProductImage returned error: %v", err)
	}
	if !strings.HasPrefix(url, URLPrefix+"/products/") {
		t.Errorf("Expected URL under %s/products/, got %s", URLPrefix, url)
	}
	if !strings.HasSuffix(url, ".jpg") {
		t.Errorf("Expected lowercased extension, got %s", url)
	}

	// The file exists on disk at the matching path
	rel := strings.TrimPrefix(url, URLPrefix+"/")
	stored := filepath.Join(baseDir, rel)
	if _, err := os.Stat(stored); err != nil {
		t.Fatalf("Expected stored file at %s: %v", stored, err)
	}

	if err := client.DeleteFile(url); err != nil {
		t.Fatalf("DeleteFile returned error: %v", err)
	}
	if _, err := os.Stat(stored); !os.IsNotExist(err) {
		t.Errorf("Expected file removed after DeleteFile")
	}
}

func TestDiskClientUploadBannerSubdir(t *testing.T) {
	client := NewDiskClient(t.TempDir())

	url, err := client.UploadBannerImage(openFixture(t), "promo.png", "image/png")
	if err != nil {
		t.Fatalf("UploadBannerImage returned error: %v", err)
	}
	if !strings.HasPrefix(url, URLPrefix+"/banners/") {
		t.Errorf("Expected URL under %s/banners/, got %s", URLPrefix, url)
	}
}

func TestDiskClientDeleteMissingFile(t *testing.T) {
	client := NewDiskClient(t.TempDir())

	if err := client.DeleteFile(URLPrefix + "/products/never-existed.jpg"); err != nil {
		t.Errorf("Expected missing file delete to succeed, got %v", err)
	}
}

func TestDiskClientDeleteRejectsTraversal(t *testing.T) {
	client := NewDiskClient(t.TempDir())

	cases := []string{
		"/uploads/../etc/passwd",
		"/uploads/products/../../secret",
		"/elsewhere/file.jpg",
	}
	for _, url := range cases {
		if err := client.DeleteFile(url); err == nil {
			t.Errorf("Expected error for URL %q", url)
		}
	}
}
