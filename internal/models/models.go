package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultRoleID is assigned to users created without an explicit role.
const DefaultRoleID uint = 2

// Record holds the columns every table shares: the store-assigned key and
// the row version used for optimistic concurrency.
type Record struct {
	ID      uint  `gorm:"primaryKey;autoIncrement" json:"id"`
	Version int64 `gorm:"not null;default:1"       json:"version"`
}

func (r *Record) Meta() *Record { return r }

// Entity is implemented by pointers to every persisted model.
type Entity interface {
	Meta() *Record
}

type Product struct {
	Record
	Name        string          `gorm:"type:varchar(50);not null"   json:"name"        validate:"required,max=50"`
	Description string          `gorm:"type:varchar(50)"            json:"description" validate:"max=50"`
	Price       decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price"       validate:"money"`
	Quantity    int             `gorm:"not null;default:0"          json:"quantity"    validate:"gte=0"`
}

func (Product) TableName() string { return "products" }

type Supplier struct {
	Record
	Name    string `gorm:"type:varchar(50);not null" json:"name"    validate:"required,max=50"`
	Phone   string `gorm:"type:varchar(50)"          json:"phone"   validate:"max=50"`
	Country string `gorm:"type:varchar(50)"          json:"country" validate:"max=50"`
}

func (Supplier) TableName() string { return "suppliers" }

type Role struct {
	Record
	Name string `gorm:"type:varchar(50);not null" json:"name" validate:"required,max=50"`
}

func (Role) TableName() string { return "roles" }

type User struct {
	Record
	Name     string `gorm:"type:varchar(50);not null"  json:"name"    validate:"required,max=50"`
	Password string `gorm:"type:varchar(100);not null" json:"-"       validate:"-"`
	RoleID   *uint  `gorm:"index"                      json:"role_id"`
	Role     *Role  `gorm:"foreignKey:RoleID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"role,omitempty" validate:"-"`
}

func (User) TableName() string { return "users" }

type Purchase struct {
	Record
	Title      string          `gorm:"type:varchar(50);not null"   json:"title"       validate:"required,max=50"`
	Date       time.Time       `gorm:"type:date;not null"          json:"date"        validate:"required"`
	Total      decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"total"       validate:"money"`
	ProductID  uint            `gorm:"index;not null"              json:"product_id"  validate:"required"`
	Product    *Product        `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"  json:"product,omitempty"  validate:"-"`
	SupplierID uint            `gorm:"index;not null"              json:"supplier_id" validate:"required"`
	Supplier   *Supplier       `gorm:"foreignKey:SupplierID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"supplier,omitempty" validate:"-"`
}

func (Purchase) TableName() string { return "purchases" }

type Sale struct {
	Record
	Title     string          `gorm:"type:varchar(50);not null"   json:"title"      validate:"required,max=50"`
	Customer  string          `gorm:"type:varchar(50)"            json:"customer"   validate:"max=50"`
	Date      time.Time       `gorm:"type:date;not null"          json:"date"       validate:"required"`
	Total     decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"total"      validate:"money"`
	ProductID uint            `gorm:"index;not null"              json:"product_id" validate:"required"`
	Product   *Product        `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"product,omitempty" validate:"-"`
}

func (Sale) TableName() string { return "sales" }

// All lists every model in migration order.
func All() []any {
	return []any{&Role{}, &User{}, &Product{}, &Supplier{}, &Purchase{}, &Sale{}}
}
