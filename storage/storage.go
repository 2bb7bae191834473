package storage

import "mime/multipart"

// Client abstracts blob storage for uploaded images so handlers can be tested
// with a mock and the disk backend can be swapped for a cloud bucket. Uploads
// return the public URL path that gets persisted on the record.
type Client interface {
	UploadProductImage(file multipart.File, filename, contentType string) (string, error)
	UploadBannerImage(file multipart.File, filename, contentType string) (string, error)
	DeleteFile(url string) error
}
