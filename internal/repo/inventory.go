package repo

import (
	"gorm.io/gorm"

	"github.com/Skotchmaster/inventory_admin/internal/models"
)

// Store groups the repositories of every entity over a single connection pool.
type Store struct {
	DB        *gorm.DB
	Products  *GormRepo[models.Product, *models.Product]
	Suppliers *GormRepo[models.Supplier, *models.Supplier]
	Roles     *GormRepo[models.Role, *models.Role]
	Users     *GormRepo[models.User, *models.User]
	Purchases *GormRepo[models.Purchase, *models.Purchase]
	Sales     *GormRepo[models.Sale, *models.Sale]
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		DB: db,
		Products: New[models.Product](db).WithReferences(
			Reference{Model: &models.Purchase{}, Column: "product_id", Name: "purchases"},
			Reference{Model: &models.Sale{}, Column: "product_id", Name: "sales"},
		),
		Suppliers: New[models.Supplier](db).WithReferences(
			Reference{Model: &models.Purchase{}, Column: "supplier_id", Name: "purchases"},
		),
		Roles: New[models.Role](db).WithReferences(
			Reference{Model: &models.User{}, Column: "role_id", Name: "users"},
		),
		Users:     New[models.User](db).WithPreloads("Role"),
		Purchases: New[models.Purchase](db).WithPreloads("Product", "Supplier"),
		Sales:     New[models.Sale](db).WithPreloads("Product"),
	}
}
