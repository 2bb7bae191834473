package storage

import (
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// URLPrefix is where the router serves uploaded files from.
const URLPrefix = "/uploads"

// DiskClient stores uploads on the local filesystem under baseDir, mirroring
// the layout served statically at /uploads.
type DiskClient struct {
	baseDir string
}

func NewDiskClient(baseDir string) *DiskClient {
	if baseDir == "" {
		baseDir = "uploads"
	}
	return &DiskClient{baseDir: baseDir}
}

func (d *DiskClient) UploadProductImage(file multipart.File, filename, contentType string) (string, error) {
	return d.save(file, "products", filename)
}

func (d *DiskClient) UploadBannerImage(file multipart.File, filename, contentType string) (string, error) {
	return d.save(file, "banners", filename)
}

// save writes the file under baseDir/subdir with a unique name
// (timestamp-random.ext) and returns the public URL path.
func (d *DiskClient) save(file multipart.File, subdir, filename string) (string, error) {
	dir := filepath.Join(d.baseDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := fmt.Sprintf("%d-%d%s", time.Now().UnixMilli(), rand.Intn(1_000_000_000), strings.ToLower(filepath.Ext(filename)))

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}

	return path.Join(URLPrefix, subdir, name), nil
}

// DeleteFile removes a previously uploaded file given its public URL path.
// Unknown or already-removed files are not an error.
func (d *DiskClient) DeleteFile(url string) error {
	rel, ok := strings.CutPrefix(url, URLPrefix+"/")
	if !ok {
		return fmt.Errorf("invalid upload URL: %s", url)
	}
	rel = filepath.Clean(rel)
	if rel == "." || strings.HasPrefix(rel, "..") {
		return fmt.Errorf("invalid upload URL: %s", url)
	}

	err := os.Remove(filepath.Join(d.baseDir, rel))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
