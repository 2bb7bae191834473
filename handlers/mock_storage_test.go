package handlers

import (
	"fmt"
	"mime/multipart"
)

// mockStorage implements storage.Client for handler tests, recording every
// upload and delete instead of touching the filesystem.
type mockStorage struct {
	uploads []string
	deletes []string
	failAll bool
}

func newMockStorage() *mockStorage {
	return &mockStorage{}
}

func (m *mockStorage) UploadProductImage(file multipart.File, filename, contentType string) (string, error) {
	if m.failAll {
		return "", fmt.Errorf("mock storage failure")
	}
	url := fmt.Sprintf("/uploads/products/mock-%d.jpg", len(m.uploads))
	m.uploads = append(m.uploads, url)
	return url, nil
}

func (m *mockStorage) UploadBannerImage(file multipart.File, filename, contentType string) (string, error) {
	if m.failAll {
		return "", fmt.Errorf("mock storage failure")
	}
	url := fmt.Sprintf("/uploads/banners/mock-%d.jpg", len(m.uploads))
	m.uploads = append(m.uploads, url)
	return url, nil
}

func (m *mockStorage) DeleteFile(url string) error {
	if m.failAll {
		return fmt.Errorf("mock storage failure")
	}
	m.deletes = append(m.deletes, url)
	return nil
}
