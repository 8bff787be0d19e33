package repository

import (
	"github.com/kstarostin/campfire-store-api/internal/models"

	"gorm.io/gorm"
)

type Repository struct {
	DB         *gorm.DB
	Users      UserRepo
	Categories CategoryRepo
	Products   ProductRepo
	Orders     GenericOrderRepo
	Entries    EntryRepo
	Currencies *Crud[models.Currency]
	Languages  *Crud[models.Language]
	Titles     *Crud[models.Title]
}

func New(db *gorm.DB) *Repository {
	return &Repository{
		DB:         db,
		Users:      NewUserRepo(db),
		Categories: NewCategoryRepo(db),
		Products:   NewProductRepo(db),
		Orders:     NewGenericOrderRepo(db),
		Entries:    NewEntryRepo(db),
		Currencies: NewCrud[models.Currency](db, "currencies"),
		Languages:  NewCrud[models.Language](db, "languages"),
		Titles:     NewCrud[models.Title](db, "titles"),
	}
}
