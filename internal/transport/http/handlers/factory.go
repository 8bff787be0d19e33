package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/kstarostin/campfire-store-api/internal/repository"
	"github.com/kstarostin/campfire-store-api/internal/sanitize"
	"github.com/kstarostin/campfire-store-api/internal/service"
	"github.com/kstarostin/campfire-store-api/internal/transport/http/dto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Resource wires one entity into the generic CRUD handlers. Anything a
// resource needs beyond plain CRUD gets its own handler next to it.
type Resource[T any] struct {
	Name   string // singular json key, e.g. "product"
	Plural string // plural json key, e.g. "products"

	Crud      *repository.Crud[T]
	Whitelist []string // body keys kept on create/update; empty keeps all
	Columns   []string // columns accepted in filter/sort/fields
	Preloads  []string
	MaxLimit  int

	// BaseFilter scopes every query, e.g. to the resolved cart or user.
	BaseFilter func(c *gin.Context) repository.Filter

	SanitizeOne  func(*sanitize.Sanitizer, *T) *T
	SanitizeMany func(*sanitize.Sanitizer, []T) []T

	Responder *Responder
}

func sessionSanitizer(c *gin.Context) *sanitize.Sanitizer {
	ctx := c.Request.Context()
	return sanitize.New(service.LanguageFromContext(ctx, ""), service.CurrencyFromContext(ctx, ""))
}

func (r *Resource[T]) baseFilter(c *gin.Context) repository.Filter {
	if r.BaseFilter == nil {
		return repository.Filter{}
	}
	return r.BaseFilter(c)
}

func (r *Resource[T]) allowedColumn(name string) bool {
	for _, col := range r.Columns {
		if col == name {
			return true
		}
	}
	return false
}

// parseListOptions validates page/limit/sort/fields/filter query parameters
// against the resource's column set.
func (r *Resource[T]) parseListOptions(c *gin.Context) (repository.ListOptions, repository.Filter, error) {
	opts := repository.ListOptions{Page: 1, Limit: 50}
	if r.MaxLimit > 0 && opts.Limit > r.MaxLimit {
		opts.Limit = r.MaxLimit
	}
	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return opts, nil, service.NewAppError(http.StatusBadRequest, "Invalid page: %s", raw)
		}
		opts.Page = page
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return opts, nil, service.NewAppError(http.StatusBadRequest, "Invalid limit: %s", raw)
		}
		if r.MaxLimit > 0 && limit > r.MaxLimit {
			limit = r.MaxLimit
		}
		opts.Limit = limit
	}
	if raw := c.Query("sort"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			s = strings.TrimSpace(s)
			col := strings.TrimPrefix(s, "-")
			if !r.allowedColumn(col) {
				return opts, nil, service.NewAppError(http.StatusBadRequest, "Can not sort by %s", col)
			}
			opts.Sort = append(opts.Sort, s)
		}
	}
	if raw := c.Query("fields"); raw != "" {
		for _, f := range strings.Split(raw, ",") {
			f = strings.TrimSpace(f)
			if !r.allowedColumn(f) {
				return opts, nil, service.NewAppError(http.StatusBadRequest, "Unknown field %s", f)
			}
			opts.Fields = append(opts.Fields, f)
		}
	}

	filter := repository.Filter{}
	if raw := c.Query("filter"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &filter); err != nil {
			return opts, nil, service.NewAppError(http.StatusBadRequest, "Invalid filter: %s", raw)
		}
		for key := range filter {
			if !r.allowedColumn(key) {
				return opts, nil, service.NewAppError(http.StatusBadRequest, "Can not filter by %s", key)
			}
		}
	}
	return opts, filter, nil
}

// bindWhitelisted reads the JSON body, drops non-whitelisted keys and decodes
// the rest into the entity type.
func (r *Resource[T]) bindWhitelisted(c *gin.Context) (*T, error) {
	body := map[string]any{}
	if err := c.ShouldBindJSON(&body); err != nil {
		return nil, service.NewAppError(http.StatusBadRequest, "Invalid request body: %v", err)
	}
	body = sanitize.Body(body, r.Whitelist)
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	var doc T
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, service.NewAppError(http.StatusBadRequest, "Invalid request body: %v", err)
	}
	return &doc, nil
}

func (r *Resource[T]) GetAll(c *gin.Context) {
	opts, filter, err := r.parseListOptions(c)
	if err != nil {
		r.Responder.Error(c, err)
		return
	}
	merged := r.baseFilter(c).Merge(filter)

	ctx := c.Request.Context()
	docs, err := r.Crud.GetAll(ctx, merged, opts, r.Preloads...)
	if err != nil {
		r.Responder.Error(c, err)
		return
	}
	total, err := r.Crud.Count(ctx, merged)
	if err != nil {
		r.Responder.Error(c, err)
		return
	}
	if r.SanitizeMany != nil {
		docs = r.SanitizeMany(sessionSanitizer(c), docs)
	}

	pages := (total + int64(opts.Limit) - 1) / int64(opts.Limit)
	c.JSON(http.StatusOK, dto.ListResponse{
		Status:         "success",
		ResultsFound:   len(docs),
		ResultsPerPage: opts.Limit,
		ResultsTotal:   total,
		CurrentPage:    opts.Page,
		Pages:          pages,
		Data:           map[string]any{r.Plural: docs},
	})
}

func (r *Resource[T]) GetOne(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		r.Responder.Error(c, service.ErrNotFound)
		return
	}
	doc, err := r.Crud.GetOne(c.Request.Context(), r.baseFilter(c).Merge(repository.Filter{"id": id}), r.Preloads...)
	if err != nil {
		r.Responder.Error(c, err)
		return
	}
	if doc == nil {
		r.Responder.Error(c, service.ErrNotFound)
		return
	}
	if r.SanitizeOne != nil {
		doc = r.SanitizeOne(sessionSanitizer(c), doc)
	}
	c.JSON(http.StatusOK, dto.NewData(r.Name, doc))
}

func (r *Resource[T]) CreateOne(c *gin.Context) {
	doc, err := r.bindWhitelisted(c)
	if err != nil {
		r.Responder.Error(c, err)
		return
	}
	if err := r.Crud.CreateOne(c.Request.Context(), doc); err != nil {
		r.Responder.Error(c, err)
		return
	}
	if r.SanitizeOne != nil {
		doc = r.SanitizeOne(sessionSanitizer(c), doc)
	}
	c.JSON(http.StatusCreated, dto.NewData(r.Name, doc))
}

func (r *Resource[T]) UpdateOne(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		r.Responder.Error(c, service.ErrNotFound)
		return
	}
	changes, err := r.bindWhitelisted(c)
	if err != nil {
		r.Responder.Error(c, err)
		return
	}
	doc, err := r.Crud.UpdateOne(c.Request.Context(), r.baseFilter(c).Merge(repository.Filter{"id": id}), changes, r.Preloads...)
	if err != nil {
		r.Responder.Error(c, err)
		return
	}
	if doc == nil {
		r.Responder.Error(c, service.ErrNotFound)
		return
	}
	if r.SanitizeOne != nil {
		doc = r.SanitizeOne(sessionSanitizer(c), doc)
	}
	c.JSON(http.StatusOK, dto.NewData(r.Name, doc))
}

func (r *Resource[T]) DeleteOne(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		r.Responder.Error(c, service.ErrNotFound)
		return
	}
	deleted, err := r.Crud.DeleteOne(c.Request.Context(), r.baseFilter(c).Merge(repository.Filter{"id": id}))
	if err != nil {
		r.Responder.Error(c, err)
		return
	}
	if !deleted {
		r.Responder.Error(c, service.ErrNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}
