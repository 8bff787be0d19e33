package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/kstarostin/campfire-store-api/config"
	"github.com/kstarostin/campfire-store-api/internal/images"
	"github.com/kstarostin/campfire-store-api/internal/models"
	"github.com/kstarostin/campfire-store-api/internal/sanitize"
	"github.com/kstarostin/campfire-store-api/internal/service"
	"github.com/kstarostin/campfire-store-api/internal/transport/http/dto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CatalogHandler covers the product and category operations the generic
// factory can't: validated writes, restricted deletes and image uploads.
type CatalogHandler struct {
	catalog   *service.CatalogService
	files     *images.FileStore
	locale    config.Locale
	maxImages int
	responder *Responder

	productWhitelist  []string
	categoryWhitelist []string
}

func NewCatalogHandler(catalog *service.CatalogService, files *images.FileStore, locale config.Locale, maxImages int, r *Responder) *CatalogHandler {
	return &CatalogHandler{
		catalog:   catalog,
		files:     files,
		locale:    locale,
		maxImages: maxImages,
		responder: r,
		productWhitelist: []string{
			"name", "descriptionI18n", "manufacturer", "prices", "category",
		},
		categoryWhitelist: []string{
			"code", "nameI18n", "parentCategory",
		},
	}
}

func bindProduct(c *gin.Context, whitelist []string) (*models.Product, error) {
	body := map[string]any{}
	if err := c.ShouldBindJSON(&body); err != nil {
		return nil, service.NewAppError(http.StatusBadRequest, "Invalid request body: %v", err)
	}
	raw, err := json.Marshal(sanitize.Body(body, whitelist))
	if err != nil {
		return nil, err
	}
	var p models.Product
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, service.NewAppError(http.StatusBadRequest, "Invalid request body: %v", err)
	}
	return &p, nil
}

func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	p, err := bindProduct(c, h.productWhitelist)
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	created, err := h.catalog.CreateProduct(c.Request.Context(), p)
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	s := sessionSanitizer(c)
	c.JSON(http.StatusCreated, dto.NewData("product", s.Product(created)))
}

func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.responder.Error(c, service.ErrNotFound)
		return
	}
	changes, err := bindProduct(c, h.productWhitelist)
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	updated, err := h.catalog.UpdateProduct(c.Request.Context(), id, changes)
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	s := sessionSanitizer(c)
	c.JSON(http.StatusOK, dto.NewData("product", s.Product(updated)))
}

// UploadProductImages accepts up to five files in the "images" multipart
// field and appends a variant container per file.
func (h *CatalogHandler) UploadProductImages(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.responder.Error(c, service.ErrNotFound)
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		h.responder.BadRequest(c, "Invalid multipart form: %v", err)
		return
	}
	files := form.File["images"]
	if len(files) == 0 {
		h.responder.BadRequest(c, "Please provide files in the images field.")
		return
	}
	if len(files) > h.maxImages {
		h.responder.BadRequest(c, "At most %d images can be uploaded at once.", h.maxImages)
		return
	}

	var containers models.ImageContainers
	for _, file := range files {
		mime := file.Header.Get("Content-Type")
		if !config.Contains(h.locale.AllowedImageMimes, mime) {
			h.responder.BadRequest(c, "Unsupported image type %s. Allowed types are %v.", mime, h.locale.AllowedImageMimes)
			return
		}
		f, err := file.Open()
		if err != nil {
			h.responder.Error(c, err)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			h.responder.Error(c, err)
			return
		}
		name, err := images.RandomName("product")
		if err != nil {
			h.responder.Error(c, err)
			return
		}
		container, err := h.files.Save("product", name, mime, name, data)
		if err != nil {
			h.responder.Error(c, err)
			return
		}
		containers = append(containers, *container)
	}

	product, err := h.catalog.AttachProductImages(c.Request.Context(), id, containers)
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	s := sessionSanitizer(c)
	c.JSON(http.StatusOK, dto.NewData("product", s.Product(product)))
}

// DeleteCategory refuses to delete categories that still have subcategories
// or products.
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.responder.Error(c, service.ErrNotFound)
		return
	}
	if err := h.catalog.DeleteCategory(c.Request.Context(), id); err != nil {
		h.responder.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) CategoryWhitelist() []string { return h.categoryWhitelist }
