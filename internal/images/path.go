// Package images builds deterministic file paths for stored image variants
// and writes uploaded files to disk. Actual resizing/encoding is the job of an
// external collaborator; this package only places bytes at predictable paths.
package images

import (
	"fmt"
	"net/http"

	"github.com/kstarostin/campfire-store-api/internal/service"
)

const PlaceholderName = "user_photo_placeholder"

var supportedResources = []string{"user", "product"}

// Size tag → side length in pixels (images are assumed square).
var sizeDimensions = map[string]string{
	"thumbnail": "200",
	"small":     "500",
	"medium":    "1000",
	"large":     "2000",
	"original":  "original",
}

// SizesFor returns the variant tags generated for a resource type.
func SizesFor(resource string) []string {
	if resource == "user" {
		return []string{"thumbnail", "small"}
	}
	return []string{"thumbnail", "small", "medium", "large", "original"}
}

// BuildPath constructs the public path of one image variant, e.g.
// /img/users/small/user_photo_placeholder_500.png.
func BuildPath(resource, size, name, format string) (string, error) {
	if !contains(supportedResources, resource) {
		return "", service.NewAppError(http.StatusBadRequest,
			"This resource is not supported. Image path can be build only for the following resources %v", supportedResources)
	}
	dimension, ok := sizeDimensions[size]
	if !ok {
		return "", service.NewAppError(http.StatusBadRequest,
			"This size is not supported. Image path can be build only for the following sizes %v", sizeKeys())
	}
	if name == "" {
		name = PlaceholderName
	}
	if format == "" {
		format = "png"
	}
	return fmt.Sprintf("/img/%ss/%s/%s_%s.%s", resource, size, name, dimension, format), nil
}

func sizeKeys() []string {
	keys := make([]string, 0, len(sizeDimensions))
	for k := range sizeDimensions {
		keys = append(keys, k)
	}
	return keys
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
