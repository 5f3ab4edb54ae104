package media

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"blog-app/utils"

	"github.com/google/uuid"
)

// LocalStorage writes images under Dir and serves them under URLPrefix.
type LocalStorage struct {
	Dir       string
	URLPrefix string
}

func NewLocalStorage(dir, urlPrefix string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return &LocalStorage{Dir: dir, URLPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

func (l *LocalStorage) Save(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if err := validate(file, localExtensions); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("opening upload: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
	dst, err := os.Create(filepath.Join(l.Dir, name))
	if err != nil {
		return "", fmt.Errorf("creating image file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", fmt.Errorf("writing image file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("closing image file: %w", err)
	}

	utils.LogInfo("Image stored locally: " + name)
	return l.URLPrefix + "/" + name, nil
}

// Remove deletes a file previously returned by Save. References it did not produce are ignored.
func (l *LocalStorage) Remove(ctx context.Context, ref string) error {
	if !strings.HasPrefix(ref, l.URLPrefix+"/") {
		return nil
	}
	err := os.Remove(filepath.Join(l.Dir, filepath.Base(ref)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
