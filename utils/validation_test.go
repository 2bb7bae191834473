package utils

import (
	"errors"
	"mime/multipart"
	"net/textproto"
	"testing"
)

func fileHeader(size int64, contentType string) *multipart.FileHeader {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Type", contentType)
	return &multipart.FileHeader{
		Filename: "upload.jpg",
		Size:     size,
		Header:   h,
	}
}

func TestValidateFileUpload(t *testing.T) {
	if err := ValidateFileUpload(fileHeader(1024, "image/jpeg")); err != nil {
		t.Errorf("Expected jpeg upload to pass, got %v", err)
	}
	if err := ValidateFileUpload(fileHeader(1024, "image/webp")); err != nil {
		t.Errorf("Expected webp upload to pass, got %v", err)
	}
}

func TestValidateFileUploadTooLarge(t *testing.T) {
	if err := ValidateFileUpload(fileHeader(MaxUploadSize+1, "image/jpeg")); err == nil {
		t.Errorf("Expected error for oversized file")
	}
}

func TestValidateFileUploadBadContentType(t *testing.T) {
	cases := []string{"application/pdf", "text/html", "image/svg+xml", ""}
	for _, ct := range cases {
		if err := ValidateFileUpload(fileHeader(1024, ct)); err == nil {
			t.Errorf("Expected error for content type %q", ct)
		}
	}
}

func TestSanitizeValidationErrorNonValidator(t *testing.T) {
	msg := SanitizeValidationError(errors.New("unexpected EOF"))
	if msg != "Invalid request body" {
		t.Errorf("Expected generic message for non-validator error, got %q", msg)
	}
}

func TestSanitizeValidationErrorNil(t *testing.T) {
	if msg := SanitizeValidationError(nil); msg != "" {
		t.Errorf("Expected empty message for nil error, got %q", msg)
	}
}
