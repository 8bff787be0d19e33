package handlers

import (
	"io"
	"net/http"

	"github.com/kstarostin/campfire-store-api/config"
	"github.com/kstarostin/campfire-store-api/internal/images"
	"github.com/kstarostin/campfire-store-api/internal/models"
	"github.com/kstarostin/campfire-store-api/internal/service"
	"github.com/kstarostin/campfire-store-api/internal/transport/http/dto"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users     *service.UserService
	files     *images.FileStore
	locale    config.Locale
	responder *Responder
}

func NewUserHandler(users *service.UserService, files *images.FileStore, locale config.Locale, r *Responder) *UserHandler {
	return &UserHandler{users: users, files: files, locale: locale, responder: r}
}

func (h *UserHandler) GetOne(c *gin.Context) {
	user, err := h.users.GetByIDOrEmail(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewData("user", user))
}

type userUpdateRequest struct {
	Name              *string          `json:"name"`
	Email             *string          `json:"email"`
	Password          *string          `json:"password"`
	Roles             models.Roles     `json:"roles"`
	DeliveryAddresses models.Addresses `json:"deliveryAddresses"`
	BillingAddresses  models.Addresses `json:"billingAddresses"`
}

func (h *UserHandler) Update(c *gin.Context) {
	var req userUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, "Invalid request body: %v", err)
		return
	}
	user, err := h.users.Update(c.Request.Context(), c.Param("userId"), service.UserUpdate{
		Name:              req.Name,
		Email:             req.Email,
		Password:          req.Password,
		Roles:             req.Roles,
		DeliveryAddresses: req.DeliveryAddresses,
		BillingAddresses:  req.BillingAddresses,
	})
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewData("user", user))
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("userId")); err != nil {
		h.responder.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// readUpload pulls one multipart file and validates its mime type against the
// configured allow-list.
func (h *UserHandler) readUpload(c *gin.Context, field string) (data []byte, mime string, err error) {
	file, err := c.FormFile(field)
	if err != nil {
		return nil, "", service.NewAppError(http.StatusBadRequest, "Please provide a file in the %s field.", field)
	}
	mime = file.Header.Get("Content-Type")
	if !config.Contains(h.locale.AllowedImageMimes, mime) {
		return nil, "", service.NewAppError(http.StatusBadRequest,
			"Unsupported image type %s. Allowed types are %v.", mime, h.locale.AllowedImageMimes)
	}
	f, err := file.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	data, err = io.ReadAll(f)
	return data, mime, err
}

func (h *UserHandler) UploadPhoto(c *gin.Context) {
	data, mime, err := h.readUpload(c, "photo")
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	name, err := images.RandomName("user")
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	container, err := h.files.Save("user", name, mime, name, data)
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	user, err := h.users.AttachPhoto(c.Request.Context(), c.Param("userId"), container)
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewData("user", user))
}

func (h *UserHandler) DeletePhoto(c *gin.Context) {
	user, err := h.users.DeletePhoto(c.Request.Context(), c.Param("userId"), c.Param("photoId"))
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewData("user", user))
}
