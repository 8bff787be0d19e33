package images

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/kstarostin/campfire-store-api/internal/models"

	"github.com/nanorand/nanorand"
	"go.uber.org/zap"
)

// FileStore writes image variants below a base directory mirroring the public
// /img/... path layout.
type FileStore struct {
	baseDir string
	log     *zap.Logger
}

func NewFileStore(baseDir string, log *zap.Logger) *FileStore {
	return &FileStore{baseDir: baseDir, log: log}
}

// RandomName generates a collision-safe logical file name for an upload.
func RandomName(prefix string) (string, error) {
	suffix, err := nanorand.Gen(10)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%s", prefix, strings.ToLower(suffix)), nil
}

// FormatFor maps an allowed mime type to its file extension.
func FormatFor(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return "jpeg"
	case "image/png":
		return "png"
	case "image/webp":
		return "webp"
	}
	if exts, err := mime.ExtensionsByType(mimeType); err == nil && len(exts) > 0 {
		return strings.TrimPrefix(exts[0], ".")
	}
	return "bin"
}

// Save writes the uploaded bytes at every variant path for the resource and
// returns the stored container. Resizing is delegated to an external
// collaborator; the store itself only guarantees the path contract.
func (fs *FileStore) Save(resource, name, mimeType, altText string, data []byte) (*models.ImageContainer, error) {
	format := FormatFor(mimeType)
	container := &models.ImageContainer{ID: name}

	for _, size := range SizesFor(resource) {
		publicPath, err := BuildPath(resource, size, name, format)
		if err != nil {
			return nil, err
		}
		diskPath := filepath.Join(fs.baseDir, strings.TrimPrefix(publicPath, "/img/"))
		if err := os.MkdirAll(filepath.Dir(diskPath), 0o755); err != nil {
			return nil, err
		}
		if err := os.WriteFile(diskPath, data, 0o644); err != nil {
			return nil, err
		}
		img := &models.Image{URL: publicPath, AltText: altText, MimeType: mimeType}
		switch size {
		case "thumbnail":
			container.Thumbnail = img
		case "small":
			container.Small = img
		case "medium":
			container.Medium = img
		case "large":
			container.Large = img
		case "original":
			container.Original = img
		}
		fs.log.Debug("image variant stored", zap.String("path", diskPath))
	}
	return container, nil
}

// Placeholder returns the default photo container assigned at signup.
func Placeholder(altText string) *models.ImageContainer {
	container := &models.ImageContainer{ID: PlaceholderName}
	for _, size := range SizesFor("user") {
		url, err := BuildPath("user", size, PlaceholderName, "png")
		if err != nil {
			continue
		}
		img := &models.Image{URL: url, AltText: altText, MimeType: "image/png"}
		if size == "thumbnail" {
			container.Thumbnail = img
		} else {
			container.Small = img
		}
	}
	return container
}
