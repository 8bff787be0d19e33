package service

import (
	"context"
	"net/http"

	"github.com/kstarostin/campfire-store-api/internal/models"
	"github.com/kstarostin/campfire-store-api/internal/repository"

	"go.uber.org/zap"
)

// LookupService covers the small reference catalogs: currencies, languages
// and titles. Validation is minimal, everything else is plain crud.
type LookupService struct {
	currencies *repository.Crud[models.Currency]
	languages  *repository.Crud[models.Language]
	titles     *repository.Crud[models.Title]
	log        *zap.Logger
}

func NewLookupService(
	currencies *repository.Crud[models.Currency],
	languages *repository.Crud[models.Language],
	titles *repository.Crud[models.Title],
	log *zap.Logger,
) *LookupService {
	return &LookupService{currencies: currencies, languages: languages, titles: titles, log: log}
}

func (s *LookupService) Currencies() *repository.Crud[models.Currency] { return s.currencies }
func (s *LookupService) Languages() *repository.Crud[models.Language]  { return s.languages }
func (s *LookupService) Titles() *repository.Crud[models.Title]        { return s.titles }

func (s *LookupService) CreateCurrency(ctx context.Context, c *models.Currency) (*models.Currency, error) {
	if len(c.Code) != 3 {
		return nil, NewAppError(http.StatusBadRequest, "Currency code must be a 3-letter ISO code.")
	}
	if err := s.currencies.CreateOne(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *LookupService) CreateLanguage(ctx context.Context, l *models.Language) (*models.Language, error) {
	if len(l.Code) != 2 {
		return nil, NewAppError(http.StatusBadRequest, "Language code must be a 2-letter ISO code.")
	}
	if err := s.languages.CreateOne(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}
