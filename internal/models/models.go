package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderKind — дискриминатор generic_orders: корзина или заказ.
type OrderKind string

const (
	KindCart  OrderKind = "Cart"
	KindOrder OrderKind = "Order"
)

type OrderStatus string

const (
	OrderStatusOpen      OrderStatus = "open"
	OrderStatusProgress  OrderStatus = "progress"
	OrderStatusDelivered OrderStatus = "delivered"
)

type User struct {
	ID                uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name              string          `gorm:"type:text;not null" json:"name"`
	Email             string          `gorm:"type:text;not null;uniqueIndex:ux_users_email" json:"email"`
	Password          string          `gorm:"type:text;not null" json:"-"`
	PasswordChangedAt *time.Time      `json:"-"`
	Roles             Roles           `gorm:"type:jsonb;serializer:json;not null;default:'[\"user\"]'" json:"roles"`
	Photo             *ImageContainer `gorm:"type:jsonb;serializer:json" json:"photo,omitempty"`
	DeliveryAddresses Addresses       `gorm:"type:jsonb;serializer:json" json:"deliveryAddresses,omitempty"`
	BillingAddresses  Addresses       `gorm:"type:jsonb;serializer:json" json:"billingAddresses,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// PasswordChangedAfter reports whether the password changed after the token
// was issued at the given moment.
func (u *User) PasswordChangedAfter(issuedAt time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return issuedAt.Before(*u.PasswordChangedAt)
}

type Category struct {
	ID               uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code             string        `gorm:"type:text;not null;uniqueIndex:ux_categories_code" json:"code"`
	NameI18n         LocalizedText `gorm:"type:jsonb;serializer:json;not null" json:"nameI18n"`
	ParentCategoryID *uuid.UUID    `gorm:"type:uuid;index" json:"parentCategory,omitempty"`

	Parent        *Category  `gorm:"foreignKey:ParentCategoryID" json:"parent,omitempty"`
	SubCategories []Category `gorm:"foreignKey:ParentCategoryID" json:"subCategories,omitempty"`
	Root          bool       `gorm:"-" json:"root"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (Category) TableName() string { return "categories" }

func (c *Category) AfterFind(*gorm.DB) error {
	c.Root = c.ParentCategoryID == nil
	return nil
}

type Product struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name            string          `gorm:"type:text;not null" json:"name"`
	Slug            string          `gorm:"type:text;not null;index" json:"slug"`
	DescriptionI18n LocalizedText   `gorm:"type:jsonb;serializer:json" json:"descriptionI18n,omitempty"`
	Manufacturer    string          `gorm:"type:text" json:"manufacturer,omitempty"`
	Prices          Prices          `gorm:"type:jsonb;serializer:json;not null" json:"prices"`
	CategoryID      *uuid.UUID      `gorm:"type:uuid;index" json:"category,omitempty"`
	Images          ImageContainers `gorm:"type:jsonb;serializer:json" json:"images,omitempty"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"categoryData,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (Product) TableName() string { return "products" }

// GenericOrder is the single cart/order record, discriminated by Kind.
// Placing an order flips Kind in place, the id stays the same.
type GenericOrder struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Kind            OrderKind       `gorm:"type:text;not null;index" json:"kind"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"user"`
	Currency        string          `gorm:"type:char(3);not null" json:"currency"`
	Total           decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"total"`
	Status          OrderStatus     `gorm:"type:text" json:"status,omitempty"`
	DeliveryAddress *Address        `gorm:"type:jsonb;serializer:json" json:"deliveryAddress,omitempty"`
	BillingAddress  *Address        `gorm:"type:jsonb;serializer:json" json:"billingAddress,omitempty"`
	DeliveryNote    string          `gorm:"type:text" json:"deliveryNote,omitempty"`

	Owner   *User               `gorm:"foreignKey:UserID" json:"userData,omitempty"`
	Entries []GenericOrderEntry `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"entries,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (GenericOrder) TableName() string { return "generic_orders" }

// GenericOrderEntry is a cart/order line item. Price is the unit price
// snapshot in the parent's currency, rewritten only on currency switch.
type GenericOrderEntry struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ParentID  uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:ux_entries_parent_product" json:"parent"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:ux_entries_parent_product" json:"product"`
	Quantity  int             `gorm:"type:int;not null;default:1" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`

	ProductData *Product `gorm:"foreignKey:ProductID" json:"productData,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (GenericOrderEntry) TableName() string { return "generic_order_entries" }

// LineTotal is price × quantity.
func (e *GenericOrderEntry) LineTotal() decimal.Decimal {
	return e.Price.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

type Currency struct {
	ID       uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code     string        `gorm:"type:text;not null;uniqueIndex:ux_currencies_code" json:"code"`
	NameI18n LocalizedText `gorm:"type:jsonb;serializer:json;not null" json:"nameI18n"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (Currency) TableName() string { return "currencies" }

type Language struct {
	ID       uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code     string        `gorm:"type:text;not null;uniqueIndex:ux_languages_code" json:"code"`
	NameI18n LocalizedText `gorm:"type:jsonb;serializer:json;not null" json:"nameI18n"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (Language) TableName() string { return "languages" }

type Title struct {
	ID       uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code     string        `gorm:"type:text;not null;uniqueIndex:ux_titles_code" json:"code"`
	NameI18n LocalizedText `gorm:"type:jsonb;serializer:json;not null" json:"nameI18n"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (Title) TableName() string { return "titles" }
