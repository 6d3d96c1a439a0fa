package dto

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
)

// FileUpload is an optional attachment handed from a handler to a service.
type FileUpload struct {
	Name string
	Size int64
	File io.ReadCloser
}

// NewFileUpload opens fh. A nil header yields a nil upload.
func NewFileUpload(fh *multipart.FileHeader) (*FileUpload, error) {
	if fh == nil {
		return nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	return &FileUpload{Name: fh.Filename, Size: fh.Size, File: f}, nil
}

func (u *FileUpload) Close() error {
	if u == nil || u.File == nil {
		return nil
	}
	return u.File.Close()
}

// FormFileUpload returns the optional file part named field. Requests that
// are not multipart or carry no such part yield a nil upload.
func FormFileUpload(c *gin.Context, field string) (*FileUpload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	return NewFileUpload(fh)
}
