package transport

import (
	"strconv"

	"github.com/Skotchmaster/inventory_admin/internal/models"
)

// Forms keep the raw submitted strings so a rejected form is shown back to
// the user exactly as typed. Model parses them; a non-nil error is a
// *service.ValidationError listing the fields that did not parse.

type ProductForm struct {
	ID          string `form:"id"          json:"id"`
	Version     string `form:"version"     json:"version"`
	Name        string `form:"name"        json:"name"`
	Description string `form:"description" json:"description"`
	Price       string `form:"price"       json:"price"`
	Quantity    string `form:"quantity"    json:"quantity"`
}

func (f ProductForm) Model() (*models.Product, error) {
	var p parser
	m := &models.Product{
		Record:      models.Record{ID: p.id("id", f.ID), Version: p.version(f.Version)},
		Name:        f.Name,
		Description: f.Description,
		Price:       p.money("price", f.Price),
		Quantity:    p.integer("quantity", f.Quantity),
	}
	return m, p.err()
}

func ProductFormFrom(m *models.Product) ProductForm {
	return ProductForm{
		ID:          formatID(m.ID),
		Version:     formatVersion(m.Version),
		Name:        m.Name,
		Description: m.Description,
		Price:       formatMoney(m.Price),
		Quantity:    strconv.Itoa(m.Quantity),
	}
}

type SupplierForm struct {
	ID      string `form:"id"      json:"id"`
	Version string `form:"version" json:"version"`
	Name    string `form:"name"    json:"name"`
	Phone   string `form:"phone"   json:"phone"`
	Country string `form:"country" json:"country"`
}

func (f SupplierForm) Model() (*models.Supplier, error) {
	var p parser
	m := &models.Supplier{
		Record:  models.Record{ID: p.id("id", f.ID), Version: p.version(f.Version)},
		Name:    f.Name,
		Phone:   f.Phone,
		Country: f.Country,
	}
	return m, p.err()
}

func SupplierFormFrom(m *models.Supplier) SupplierForm {
	return SupplierForm{
		ID:      formatID(m.ID),
		Version: formatVersion(m.Version),
		Name:    m.Name,
		Phone:   m.Phone,
		Country: m.Country,
	}
}

type RoleForm struct {
	ID      string `form:"id"      json:"id"`
	Version string `form:"version" json:"version"`
	Name    string `form:"name"    json:"name"`
}

func (f RoleForm) Model() (*models.Role, error) {
	var p parser
	m := &models.Role{
		Record: models.Record{ID: p.id("id", f.ID), Version: p.version(f.Version)},
		Name:   f.Name,
	}
	return m, p.err()
}

func RoleFormFrom(m *models.Role) RoleForm {
	return RoleForm{ID: formatID(m.ID), Version: formatVersion(m.Version), Name: m.Name}
}

// UserForm never echoes a stored password back; on edit an empty password
// keeps the current one.
type UserForm struct {
	ID       string `form:"id"       json:"id"`
	Version  string `form:"version"  json:"version"`
	Name     string `form:"name"     json:"name"`
	Password string `form:"password" json:"-"`
	RoleID   string `form:"role_id"  json:"role_id"`
}

func (f UserForm) Model() (*models.User, error) {
	var p parser
	m := &models.User{
		Record:   models.Record{ID: p.id("id", f.ID), Version: p.version(f.Version)},
		Name:     f.Name,
		Password: f.Password,
		RoleID:   p.optionalID("role_id", f.RoleID),
	}
	return m, p.err()
}

func UserFormFrom(m *models.User) UserForm {
	return UserForm{
		ID:      formatID(m.ID),
		Version: formatVersion(m.Version),
		Name:    m.Name,
		RoleID:  formatOptionalID(m.RoleID),
	}
}

type PurchaseForm struct {
	ID         string `form:"id"          json:"id"`
	Version    string `form:"version"     json:"version"`
	Title      string `form:"title"       json:"title"`
	Date       string `form:"date"        json:"date"`
	Total      string `form:"total"       json:"total"`
	ProductID  string `form:"product_id"  json:"product_id"`
	SupplierID string `form:"supplier_id" json:"supplier_id"`
}

func (f PurchaseForm) Model() (*models.Purchase, error) {
	var p parser
	m := &models.Purchase{
		Record:     models.Record{ID: p.id("id", f.ID), Version: p.version(f.Version)},
		Title:      f.Title,
		Date:       p.date("date", f.Date),
		Total:      p.money("total", f.Total),
		ProductID:  p.id("product_id", f.ProductID),
		SupplierID: p.id("supplier_id", f.SupplierID),
	}
	return m, p.err()
}

func PurchaseFormFrom(m *models.Purchase) PurchaseForm {
	return PurchaseForm{
		ID:         formatID(m.ID),
		Version:    formatVersion(m.Version),
		Title:      m.Title,
		Date:       formatDate(m.Date),
		Total:      formatMoney(m.Total),
		ProductID:  formatID(m.ProductID),
		SupplierID: formatID(m.SupplierID),
	}
}

type SaleForm struct {
	ID        string `form:"id"         json:"id"`
	Version   string `form:"version"    json:"version"`
	Title     string `form:"title"      json:"title"`
	Customer  string `form:"customer"   json:"customer"`
	Date      string `form:"date"       json:"date"`
	Total     string `form:"total"      json:"total"`
	ProductID string `form:"product_id" json:"product_id"`
}

func (f SaleForm) Model() (*models.Sale, error) {
	var p parser
	m := &models.Sale{
		Record:    models.Record{ID: p.id("id", f.ID), Version: p.version(f.Version)},
		Title:     f.Title,
		Customer:  f.Customer,
		Date:      p.date("date", f.Date),
		Total:     p.money("total", f.Total),
		ProductID: p.id("product_id", f.ProductID),
	}
	return m, p.err()
}

func SaleFormFrom(m *models.Sale) SaleForm {
	return SaleForm{
		ID:        formatID(m.ID),
		Version:   formatVersion(m.Version),
		Title:     m.Title,
		Customer:  m.Customer,
		Date:      formatDate(m.Date),
		Total:     formatMoney(m.Total),
		ProductID: formatID(m.ProductID),
	}
}

// LoginForm is shared by the login and registration pages.
type LoginForm struct {
	Name     string `form:"name"     json:"name"`
	Password string `form:"password" json:"-"`
}
