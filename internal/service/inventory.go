package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/inventory_admin/internal/hash"
	"github.com/Skotchmaster/inventory_admin/internal/models"
	"github.com/Skotchmaster/inventory_admin/internal/mykafka"
	"github.com/Skotchmaster/inventory_admin/internal/repo"
)

const maxPasswordLen = 50

type (
	ProductService  = CrudService[models.Product, *models.Product]
	SupplierService = CrudService[models.Supplier, *models.Supplier]
	RoleService     = CrudService[models.Role, *models.Role]
	UserService     = CrudService[models.User, *models.User]
	PurchaseService = CrudService[models.Purchase, *models.Purchase]
	SaleService     = CrudService[models.Sale, *models.Sale]
)

// Services wires one CRUD service per entity plus the select-list lookups.
type Services struct {
	Products  *ProductService
	Suppliers *SupplierService
	Roles     *RoleService
	Users     *UserService
	Purchases *PurchaseService
	Sales     *SaleService
	Lookups   *Lookups
}

func New(store *repo.Store, hasher hash.Hasher, events mykafka.Publisher) *Services {
	s := &Services{
		Products:  NewCrud[models.Product]("product", store.Products, events),
		Suppliers: NewCrud[models.Supplier]("supplier", store.Suppliers, events),
		Roles:     NewCrud[models.Role]("role", store.Roles, events),
		Users:     NewCrud[models.User]("user", store.Users, events),
		Purchases: NewCrud[models.Purchase]("purchase", store.Purchases, events),
		Sales:     NewCrud[models.Sale]("sale", store.Sales, events),
		Lookups:   &Lookups{DB: store.DB},
	}

	s.Users.Hooks = userHooks(s.Roles, hasher)
	s.Purchases.Hooks = Hooks[models.Purchase]{
		Prepare: func(_ context.Context, p, _ *models.Purchase) error {
			p.Date = dateOnly(p.Date)
			return nil
		},
		Check: func(ctx context.Context, p *models.Purchase) error {
			if err := mustExist(ctx, s.Products, "product", p.ProductID); err != nil {
				return err
			}
			return mustExist(ctx, s.Suppliers, "supplier", p.SupplierID)
		},
	}
	s.Sales.Hooks = Hooks[models.Sale]{
		Prepare: func(_ context.Context, sale, _ *models.Sale) error {
			sale.Date = dateOnly(sale.Date)
			return nil
		},
		Check: func(ctx context.Context, sale *models.Sale) error {
			return mustExist(ctx, s.Products, "product", sale.ProductID)
		},
	}
	return s
}

func userHooks(roles *RoleService, hasher hash.Hasher) Hooks[models.User] {
	return Hooks[models.User]{
		Prepare: func(_ context.Context, u, current *models.User) error {
			u.Role = nil
			if u.RoleID == nil {
				if current != nil {
					u.RoleID = current.RoleID
				} else {
					id := models.DefaultRoleID
					u.RoleID = &id
				}
			}

			// an empty password on edit keeps the stored one
			if current != nil && u.Password == "" {
				u.Password = current.Password
				return nil
			}

			ve := &ValidationError{}
			switch {
			case u.Password == "":
				ve.Add("password", "is required")
			case len(u.Password) > maxPasswordLen:
				ve.Add("password", fmt.Sprintf("must be at most %d characters", maxPasswordLen))
			}
			if !ve.Empty() {
				return ve
			}
			return nil
		},
		Check: func(ctx context.Context, u *models.User) error {
			if u.RoleID == nil {
				return nil
			}
			return mustExist(ctx, roles, "role", *u.RoleID)
		},
		BeforeWrite: func(_ context.Context, u, current *models.User) error {
			if current != nil && u.Password == current.Password {
				return nil
			}
			hashed, err := hasher.Hash(u.Password)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			u.Password = hashed
			return nil
		},
	}
}

type existence interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

func mustExist(ctx context.Context, set existence, name string, id uint) error {
	ok, err := set.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s %d", ErrNotFound, name, id)
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Lookups feeds the select lists of the user, purchase and sale forms.
type Lookups struct {
	DB *gorm.DB
}

func (l *Lookups) Roles(ctx context.Context) ([]repo.Option, error) {
	return l.options(ctx, &models.Role{})
}

func (l *Lookups) Products(ctx context.Context) ([]repo.Option, error) {
	return l.options(ctx, &models.Product{})
}

func (l *Lookups) Suppliers(ctx context.Context) ([]repo.Option, error) {
	return l.options(ctx, &models.Supplier{})
}

func (l *Lookups) options(ctx context.Context, model any) ([]repo.Option, error) {
	opts, err := repo.Options(ctx, l.DB, model)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return opts, nil
}
