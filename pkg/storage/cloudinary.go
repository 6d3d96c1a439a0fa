package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type cloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryStorage creates a Cloudinary backed FileStorage. Credentials
// come from CLOUDINARY_URL, or from the explicit cloud name / key / secret
// when all three are given.
func NewCloudinaryStorage(cloudName, apiKey, apiSecret, folder string) (FileStorage, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	if cloudName != "" && apiKey != "" && apiSecret != "" {
		cld, err = cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	} else {
		// cloudinary.New() reads CLOUDINARY_URL from the environment.
		cld, err = cloudinary.New()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary client: %w", err)
	}

	cld.Config.URL.Secure = true

	return &cloudinaryStorage{cld: cld, folder: folder}, nil
}

func (s *cloudinaryStorage) Save(ctx context.Context, r io.Reader, area, fileName string) (string, error) {
	if !validArea(area) {
		return "", fmt.Errorf("unknown storage area %q", area)
	}
	if err := ValidateFileName(fileName); err != nil {
		return "", err
	}

	key := StorageKey(fileName)
	resourceType := resourceTypeFor(fileName)
	publicID := key
	if resourceType == "image" {
		publicID = strings.TrimSuffix(key, filepath.Ext(key))
	}

	params := uploader.UploadParams{
		Folder:       joinFolder(s.folder, area),
		PublicID:     publicID,
		ResourceType: resourceType,
		Overwrite:    api.Bool(false),
	}
	if resourceType == "image" {
		params.Transformation = "q_auto"
	}

	resp, err := s.cld.Upload.Upload(ctx, r, params)
	if err != nil {
		return "", fmt.Errorf("failed to upload file to cloudinary: %w", err)
	}

	if resp.SecureURL == "" {
		return "", fmt.Errorf("cloudinary upload succeeded but secure URL is empty")
	}

	return resp.SecureURL, nil
}

func (s *cloudinaryStorage) Delete(ctx context.Context, fileURL string) error {
	publicID, resourceType := extractPublicID(fileURL)
	if publicID == "" {
		return fmt.Errorf("could not extract public ID from URL: %s", fileURL)
	}

	resp, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceType,
		Invalidate:   api.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from cloudinary: %w", err)
	}

	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("cloudinary destroy api returned result: %s", resp.Result)
	}

	return nil
}

func (s *cloudinaryStorage) Open(ctx context.Context, fileURL string) (io.ReadCloser, error) {
	return nil, ErrRemoteFile
}

func resourceTypeFor(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".jpg", ".jpeg", ".png", ".gif":
		return "image"
	}
	return "raw"
}

func joinFolder(parts ...string) string {
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, strings.Trim(p, "/"))
		}
	}
	return strings.Join(out, "/")
}

// extractPublicID pulls the public ID and resource type out of a delivery URL.
// https://res.cloudinary.com/demo/image/upload/v123/folder/sample.jpg -> folder/sample, image
// Raw files keep their extension in the public ID.
func extractPublicID(fileURL string) (string, string) {
	u, err := url.Parse(fileURL)
	if err != nil {
		return "", ""
	}

	parts := strings.Split(u.Path, "/")
	uploadIndex := -1
	for i, p := range parts {
		if p == "upload" {
			uploadIndex = i
			break
		}
	}

	if uploadIndex < 1 || uploadIndex+1 >= len(parts) {
		return "", ""
	}
	resourceType := parts[uploadIndex-1]

	relevantParts := parts[uploadIndex+1:]
	if len(relevantParts) > 1 && isVersion(relevantParts[0]) {
		relevantParts = relevantParts[1:]
	}

	publicID := strings.Join(relevantParts, "/")
	if resourceType == "image" {
		publicID = strings.TrimSuffix(publicID, filepath.Ext(publicID))
	}
	return publicID, resourceType
}

func isVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
