package media

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/url"
	"path"
	"strings"
	"time"

	"blog-app/config"
	"blog-app/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStorage uploads images to the configured Cloudinary account.
type CloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryStorage connects to Cloudinary and verifies the credentials with a ping.
func NewCloudinaryStorage(ctx context.Context, cfg config.Cloudinary) (*CloudinaryStorage, error) {
	if !cfg.Configured() {
		return nil, errors.New("cloudinary environment variables are not set")
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("initialising cloudinary: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := cld.Admin.Ping(ctx); err != nil {
		return nil, fmt.Errorf("checking cloudinary connection: %w", err)
	}

	utils.LogSuccess("Cloudinary initialised, cloud " + cfg.CloudName)
	return &CloudinaryStorage{cld: cld, folder: cfg.Folder}, nil
}

func boolPointer(b bool) *bool {
	return &b
}

func (s *CloudinaryStorage) Save(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if err := validate(file, remoteExtensions); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("opening upload: %w", err)
	}
	defer src.Close()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	result, err := s.cld.Upload.Upload(ctx, src, uploader.UploadParams{
		Folder:         s.folder,
		UseFilename:    boolPointer(true),
		UniqueFilename: boolPointer(true),
		ResourceType:   "image",
	})
	if err != nil {
		return "", fmt.Errorf("uploading to cloudinary: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("uploading to cloudinary: %s", result.Error.Message)
	}
	if result.SecureURL == "" {
		return "", errors.New("cloudinary returned an empty secure url")
	}

	utils.LogInfo("Image uploaded to cloudinary: " + result.PublicID)
	return result.SecureURL, nil
}

func (s *CloudinaryStorage) Remove(ctx context.Context, ref string) error {
	publicID, ok := publicIDFromURL(ref)
	if !ok {
		return fmt.Errorf("not a cloudinary url: %s", ref)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}

// publicIDFromURL extracts "folder/name" from
// https://res.cloudinary.com/<cloud>/image/upload/v1712/folder/name.jpg.
func publicIDFromURL(ref string) (string, bool) {
	u, err := url.Parse(ref)
	if err != nil || u.Host == "" {
		return "", false
	}
	_, rest, found := strings.Cut(u.Path, "/upload/")
	if !found || rest == "" {
		return "", false
	}

	parts := strings.Split(rest, "/")
	if len(parts) > 1 && isVersion(parts[0]) {
		parts = parts[1:]
	}
	id := strings.Join(parts, "/")
	id = strings.TrimSuffix(id, path.Ext(id))
	return id, id != ""
}

func isVersion(segment string) bool {
	if len(segment) < 2 || segment[0] != 'v' {
		return false
	}
	for _, r := range segment[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
