// Package media stores uploaded post images, either on local disk or on Cloudinary.
package media

import (
	"mime/multipart"
	"path/filepath"
	"strings"

	"blog-app/blog"
)

const MaxImageSize = 10 * 1024 * 1024

// localExtensions leaves out SVG: local files are served from the app's own origin
// and an SVG can carry script.
var (
	localExtensions  = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp"}
	remoteExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".svg"}
)

func isValidImageType(filename string, allowed []string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, valid := range allowed {
		if ext == valid {
			return true
		}
	}
	return false
}

// validate rejects files the user has to fix; the messages end up in a flash.
func validate(file *multipart.FileHeader, allowed []string) error {
	if !isValidImageType(file.Filename, allowed) {
		return &blog.ValidationError{Message: "Unsupported image format. Use " + formatList(allowed) + "."}
	}
	if file.Size > MaxImageSize {
		return &blog.ValidationError{Message: "Image is too large. Maximum 10MB allowed."}
	}
	return nil
}

func formatList(exts []string) string {
	names := make([]string, 0, len(exts))
	for _, ext := range exts {
		if ext == ".jpeg" {
			continue
		}
		names = append(names, strings.ToUpper(strings.TrimPrefix(ext, ".")))
	}
	return strings.Join(names, ", ")
}
