package main

import (
	"context"
	"os"

	"github.com/kstarostin/campfire-store-api/config"
	"github.com/kstarostin/campfire-store-api/internal/hashing"
	"github.com/kstarostin/campfire-store-api/internal/images"
	"github.com/kstarostin/campfire-store-api/internal/models"
	"github.com/kstarostin/campfire-store-api/internal/repository"
	"github.com/kstarostin/campfire-store-api/pkg/database"
	"github.com/kstarostin/campfire-store-api/pkg/logger"

	"github.com/gosimple/slug"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Development fixtures: reference data, a small catalog and an admin user.
// Safe to re-run, existing codes are skipped.
func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)
	db := database.ConnectDB(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	ctx := context.Background()
	repos := repository.New(db)

	for _, l := range []models.Language{
		{Code: "en", NameI18n: models.LocalizedText{"en": "English", "de": "Englisch"}},
		{Code: "de", NameI18n: models.LocalizedText{"en": "German", "de": "Deutsch"}},
	} {
		existing, err := repos.Languages.GetOne(ctx, repository.Filter{"code": l.Code})
		if err != nil {
			log.Fatal("seed failed", zap.Error(err))
		}
		if existing == nil {
			if err := repos.Languages.CreateOne(ctx, &l); err != nil {
				log.Fatal("seed failed", zap.Error(err))
			}
		}
	}

	for _, c := range []models.Currency{
		{Code: "USD", NameI18n: models.LocalizedText{"en": "US Dollar", "de": "US-Dollar"}},
		{Code: "EUR", NameI18n: models.LocalizedText{"en": "Euro", "de": "Euro"}},
	} {
		existing, err := repos.Currencies.GetOne(ctx, repository.Filter{"code": c.Code})
		if err != nil {
			log.Fatal("seed failed", zap.Error(err))
		}
		if existing == nil {
			if err := repos.Currencies.CreateOne(ctx, &c); err != nil {
				log.Fatal("seed failed", zap.Error(err))
			}
		}
	}

	for _, t := range []models.Title{
		{Code: "mr", NameI18n: models.LocalizedText{"en": "Mr.", "de": "Herr"}},
		{Code: "mrs", NameI18n: models.LocalizedText{"en": "Mrs.", "de": "Frau"}},
	} {
		existing, err := repos.Titles.GetOne(ctx, repository.Filter{"code": t.Code})
		if err != nil {
			log.Fatal("seed failed", zap.Error(err))
		}
		if existing == nil {
			if err := repos.Titles.CreateOne(ctx, &t); err != nil {
				log.Fatal("seed failed", zap.Error(err))
			}
		}
	}

	tents := models.Category{
		Code:     "tents",
		NameI18n: models.LocalizedText{"en": "Tents", "de": "Zelte"},
	}
	existing, err := repos.Categories.Crud().GetOne(ctx, repository.Filter{"code": tents.Code})
	if err != nil {
		log.Fatal("seed failed", zap.Error(err))
	}
	if existing == nil {
		if err := repos.Categories.Crud().CreateOne(ctx, &tents); err != nil {
			log.Fatal("seed failed", zap.Error(err))
		}
		existing = &tents
	}

	for _, name := range []string{"Trekking Tent Alpine 2", "Family Tent Meadow 4"} {
		productSlug := slug.Make(name)
		found, err := repos.Products.Crud().GetOne(ctx, repository.Filter{"slug": productSlug})
		if err != nil {
			log.Fatal("seed failed", zap.Error(err))
		}
		if found != nil {
			continue
		}
		p := models.Product{
			Name:         name,
			Slug:         productSlug,
			Manufacturer: "Campfire",
			DescriptionI18n: models.LocalizedText{
				"en": "A reliable companion for every season.",
				"de": "Ein zuverlässiger Begleiter für jede Jahreszeit.",
			},
			Prices: models.Prices{
				{Currency: "USD", Value: decimal.NewFromFloat(249.99)},
				{Currency: "EUR", Value: decimal.NewFromFloat(229.99)},
			},
			CategoryID: &existing.ID,
		}
		if err := repos.Products.Create(ctx, &p); err != nil {
			log.Fatal("seed failed", zap.Error(err))
		}
	}

	adminEmail := getSeedEnv("SEED_ADMIN_EMAIL", "admin@campfire.dev")
	adminUser, err := repos.Users.GetByEmail(ctx, adminEmail)
	if err != nil {
		log.Fatal("seed failed", zap.Error(err))
	}
	if adminUser == nil {
		hash, err := hashing.NewBcrypt(12).Hash(getSeedEnv("SEED_ADMIN_PASSWORD", "changeme123"))
		if err != nil {
			log.Fatal("seed failed", zap.Error(err))
		}
		admin := models.User{
			Name:     "Admin",
			Email:    adminEmail,
			Password: hash,
			Roles:    models.Roles{"user", "admin"},
			Photo:    images.Placeholder("Admin"),
		}
		if err := repos.Users.Create(ctx, &admin); err != nil {
			log.Fatal("seed failed", zap.Error(err))
		}
	}

	log.Info("Seed completed")
}

func getSeedEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
