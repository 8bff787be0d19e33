// Package sanitize strips localized and currency-tagged variants a caller did
// not ask for before documents are serialized. The traversal is an explicit,
// typed visitor per entity: recursion follows the populated schema graph and
// is finite by construction, there is no depth counter.
package sanitize

import (
	"github.com/kstarostin/campfire-store-api/internal/models"
)

// Sanitizer carries the resolved session language and currency of one request.
type Sanitizer struct {
	SessionLanguage string
	SessionCurrency string
}

func New(language, currency string) *Sanitizer {
	return &Sanitizer{SessionLanguage: language, SessionCurrency: currency}
}

func (s *Sanitizer) text(t models.LocalizedText) models.LocalizedText {
	if t == nil {
		return nil
	}
	if v, ok := t[s.SessionLanguage]; ok {
		return models.LocalizedText{s.SessionLanguage: v}
	}
	return models.LocalizedText{}
}

func (s *Sanitizer) prices(ps models.Prices) models.Prices {
	if ps == nil {
		return nil
	}
	out := make(models.Prices, 0, 1)
	for _, p := range ps {
		if p.Currency == s.SessionCurrency {
			out = append(out, p)
		}
	}
	return out
}

func (s *Sanitizer) User(u *models.User) *models.User {
	return u
}

func (s *Sanitizer) Users(list []models.User) []models.User {
	return list
}

func (s *Sanitizer) Category(c *models.Category) *models.Category {
	if c == nil {
		return nil
	}
	c.NameI18n = s.text(c.NameI18n)
	if c.Parent != nil {
		s.Category(c.Parent)
	}
	for i := range c.SubCategories {
		s.Category(&c.SubCategories[i])
	}
	return c
}

func (s *Sanitizer) Categories(list []models.Category) []models.Category {
	for i := range list {
		s.Category(&list[i])
	}
	return list
}

func (s *Sanitizer) Product(p *models.Product) *models.Product {
	if p == nil {
		return nil
	}
	p.DescriptionI18n = s.text(p.DescriptionI18n)
	p.Prices = s.prices(p.Prices)
	s.Category(p.Category)
	return p
}

func (s *Sanitizer) Products(list []models.Product) []models.Product {
	for i := range list {
		s.Product(&list[i])
	}
	return list
}

func (s *Sanitizer) Entry(e *models.GenericOrderEntry) *models.GenericOrderEntry {
	if e == nil {
		return nil
	}
	s.Product(e.ProductData)
	return e
}

func (s *Sanitizer) Entries(list []models.GenericOrderEntry) []models.GenericOrderEntry {
	for i := range list {
		s.Entry(&list[i])
	}
	return list
}

func (s *Sanitizer) GenericOrder(o *models.GenericOrder) *models.GenericOrder {
	if o == nil {
		return nil
	}
	s.Entries(o.Entries)
	return o
}

func (s *Sanitizer) GenericOrders(list []models.GenericOrder) []models.GenericOrder {
	for i := range list {
		s.GenericOrder(&list[i])
	}
	return list
}

func (s *Sanitizer) Currency(c *models.Currency) *models.Currency {
	if c == nil {
		return nil
	}
	c.NameI18n = s.text(c.NameI18n)
	return c
}

func (s *Sanitizer) Currencies(list []models.Currency) []models.Currency {
	for i := range list {
		s.Currency(&list[i])
	}
	return list
}

func (s *Sanitizer) Language(l *models.Language) *models.Language {
	if l == nil {
		return nil
	}
	l.NameI18n = s.text(l.NameI18n)
	return l
}

func (s *Sanitizer) Languages(list []models.Language) []models.Language {
	for i := range list {
		s.Language(&list[i])
	}
	return list
}

func (s *Sanitizer) Title(t *models.Title) *models.Title {
	if t == nil {
		return nil
	}
	t.NameI18n = s.text(t.NameI18n)
	return t
}

func (s *Sanitizer) Titles(list []models.Title) []models.Title {
	for i := range list {
		s.Title(&list[i])
	}
	return list
}
