package migrate

import (
	"context"

	"github.com/kstarostin/campfire-store-api/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MigrateOptions struct {
	CreateExtensions       bool // pgcrypto
	CreateChecks           bool // CHECK-constraints
	CreateIndexes          bool // индексы и UNIQUE
	CreateFKsViaSQL        bool // FK поверх GORM-constraint
	CreateUpdatedAtTrigger bool
}

func DefaultMigrateOptions() MigrateOptions {
	return MigrateOptions{
		CreateExtensions:       true,
		CreateChecks:           true,
		CreateIndexes:          true,
		CreateFKsViaSQL:        true,
		CreateUpdatedAtTrigger: true,
	}
}

// MigrateStoreDB creates the storefront schema: tables, constraints and the
// storage-level uniqueness guarantees the services rely on.
func MigrateStoreDB(ctx context.Context, db *gorm.DB, log *zap.Logger, opt MigrateOptions) error {
	log.Info("starting storefront schema migration")

	if opt.CreateExtensions {
		if err := db.WithContext(ctx).Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
			log.Error("failed to enable pgcrypto", zap.Error(err))
			return err
		}
	}

	if err := db.WithContext(ctx).AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.GenericOrder{},
		&models.GenericOrderEntry{},
		&models.Currency{},
		&models.Language{},
		&models.Title{},
	); err != nil {
		log.Error("failed to create tables", zap.Error(err))
		return err
	}

	if opt.CreateUpdatedAtTrigger {
		if err := db.WithContext(ctx).Exec(`
CREATE OR REPLACE FUNCTION set_updated_at() RETURNS trigger AS $$
BEGIN NEW.updated_at = now(); RETURN NEW; END; $$ LANGUAGE plpgsql;

DROP TRIGGER IF EXISTS trg_generic_orders_updated ON generic_orders;
CREATE TRIGGER trg_generic_orders_updated
BEFORE UPDATE ON generic_orders
FOR EACH ROW EXECUTE FUNCTION set_updated_at();
`).Error; err != nil {
			log.Error("failed to create updated_at trigger", zap.Error(err))
			return err
		}
	}

	if opt.CreateChecks {
		checks := []string{
			`ALTER TABLE generic_orders
  DROP CONSTRAINT IF EXISTS chk_generic_orders_kind_allowed;
ALTER TABLE generic_orders
  ADD CONSTRAINT chk_generic_orders_kind_allowed
  CHECK (kind IN ('Cart','Order'));`,
			`ALTER TABLE generic_orders
  DROP CONSTRAINT IF EXISTS chk_generic_orders_status_allowed;
ALTER TABLE generic_orders
  ADD CONSTRAINT chk_generic_orders_status_allowed
  CHECK (status IS NULL OR status IN ('', 'open','progress','delivered'));`,
			`ALTER TABLE generic_orders
  DROP CONSTRAINT IF EXISTS chk_generic_orders_currency_len;
ALTER TABLE generic_orders
  ADD CONSTRAINT chk_generic_orders_currency_len
  CHECK (char_length(currency) = 3);`,
			`ALTER TABLE generic_orders
  DROP CONSTRAINT IF EXISTS chk_generic_orders_total_non_negative;
ALTER TABLE generic_orders
  ADD CONSTRAINT chk_generic_orders_total_non_negative
  CHECK (total >= 0);`,
			`ALTER TABLE generic_order_entries
  DROP CONSTRAINT IF EXISTS chk_entries_quantity_gt_zero;
ALTER TABLE generic_order_entries
  ADD CONSTRAINT chk_entries_quantity_gt_zero
  CHECK (quantity > 0);`,
			`ALTER TABLE generic_order_entries
  DROP CONSTRAINT IF EXISTS chk_entries_price_positive;
ALTER TABLE generic_order_entries
  ADD CONSTRAINT chk_entries_price_positive
  CHECK (price > 0);`,
		}
		for _, stmt := range checks {
			if err := db.WithContext(ctx).Exec(stmt).Error; err != nil {
				log.Error("failed to create CHECK constraint", zap.Error(err))
				return err
			}
		}
	}

	if opt.CreateIndexes {
		indexes := []string{
			// Одна корзина на пользователя — гарантия на уровне хранилища,
			// а не гонко-опасной предварительной проверки.
			`CREATE UNIQUE INDEX IF NOT EXISTS ux_generic_orders_one_cart_per_user
ON generic_orders (user_id) WHERE kind = 'Cart';`,
			`CREATE UNIQUE INDEX IF NOT EXISTS ux_entries_parent_product
ON generic_order_entries (parent_id, product_id);`,
			`CREATE INDEX IF NOT EXISTS ix_generic_orders_user_created
ON generic_orders (user_id, created_at DESC);`,
			`CREATE INDEX IF NOT EXISTS ix_products_category_created
ON products (category_id, created_at DESC);`,
		}
		for _, stmt := range indexes {
			if err := db.WithContext(ctx).Exec(stmt).Error; err != nil {
				log.Error("failed to create index", zap.Error(err))
				return err
			}
		}
	}

	if opt.CreateFKsViaSQL {
		fks := []string{
			`ALTER TABLE generic_orders
  DROP CONSTRAINT IF EXISTS fk_generic_orders_user,
  ADD CONSTRAINT fk_generic_orders_user
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE;`,
			`ALTER TABLE generic_order_entries
  DROP CONSTRAINT IF EXISTS fk_entries_parent,
  ADD CONSTRAINT fk_entries_parent
    FOREIGN KEY (parent_id) REFERENCES generic_orders(id) ON DELETE CASCADE;`,
			`ALTER TABLE generic_order_entries
  DROP CONSTRAINT IF EXISTS fk_entries_product,
  ADD CONSTRAINT fk_entries_product
    FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE RESTRICT;`,
			// Категории: RESTRICT — удаление категории, на которую ссылаются,
			// отклоняется (решение по открытому вопросу источника).
			`ALTER TABLE categories
  DROP CONSTRAINT IF EXISTS fk_categories_parent,
  ADD CONSTRAINT fk_categories_parent
    FOREIGN KEY (parent_category_id) REFERENCES categories(id) ON DELETE RESTRICT;`,
			`ALTER TABLE products
  DROP CONSTRAINT IF EXISTS fk_products_category,
  ADD CONSTRAINT fk_products_category
    FOREIGN KEY (category_id) REFERENCES categories(id) ON DELETE RESTRICT;`,
		}
		for _, stmt := range fks {
			if err := db.WithContext(ctx).Exec(stmt).Error; err != nil {
				log.Error("failed to create foreign key", zap.Error(err))
				return err
			}
		}
	}

	log.Info("storefront schema migration finished")
	return nil
}
