package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/Skotchmaster/inventory_admin/internal/logging"
	"github.com/Skotchmaster/inventory_admin/internal/middleware/auth"
	"github.com/Skotchmaster/inventory_admin/internal/middleware/csrf"
	"github.com/Skotchmaster/inventory_admin/internal/models"
	"github.com/Skotchmaster/inventory_admin/internal/repo"
	"github.com/Skotchmaster/inventory_admin/internal/service"
	"github.com/Skotchmaster/inventory_admin/internal/transport"
)

type Deps struct {
	DB        *gorm.DB
	Services  *service.Services
	Auth      *service.AuthService
	Dashboard *service.DashboardService

	SessionSecret []byte
	CookieSecure  bool

	// LoginRate and LoginBurst throttle POST /Login per client IP.
	LoginRate  float64
	LoginBurst int
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", live)
	e.GET("/health/ready", ready(d.DB))

	csrfCfg := csrf.DefaultConfig()
	csrfCfg.Secure = d.CookieSecure
	csrfMW := csrf.Middleware(csrfCfg)
	secured := []echo.MiddlewareFunc{csrfMW, auth.RequireLogin(d.SessionSecret, d.Services.Users)}

	authHTTP := &AuthHTTP{Svc: d.Auth, CookieSecure: d.CookieSecure}
	login := e.Group(auth.LoginPath, csrfMW)
	login.GET("", authHTTP.LoginPage)
	login.GET("/Index", authHTTP.LoginPage)
	login.POST("", authHTTP.Login, loginLimiter(d.LoginRate, d.LoginBurst))
	login.GET("/Registrar", authHTTP.RegisterPage)
	login.POST("/Registrar", authHTTP.Register)
	login.POST("/Logout", authHTTP.Logout)

	dash := &DashboardHTTP{Svc: d.Dashboard}
	e.GET("/", func(c echo.Context) error { return c.Redirect(http.StatusFound, "/Dashboard") })
	e.GET("/Dashboard", dash.Index, secured...)

	s := d.Services
	lk := s.Lookups

	(&Resource[models.Product, *models.Product, transport.ProductForm]{
		Name:   "Products",
		Svc:    s.Products,
		ToForm: transport.ProductFormFrom,
	}).Mount(e.Group("/Products", secured...))

	(&Resource[models.Supplier, *models.Supplier, transport.SupplierForm]{
		Name:   "Suppliers",
		Svc:    s.Suppliers,
		ToForm: transport.SupplierFormFrom,
	}).Mount(e.Group("/Suppliers", secured...))

	(&Resource[models.Role, *models.Role, transport.RoleForm]{
		Name:   "Roles",
		Svc:    s.Roles,
		ToForm: transport.RoleFormFrom,
	}).Mount(e.Group("/Roles", secured...))

	(&Resource[models.User, *models.User, transport.UserForm]{
		Name:    "Users",
		Svc:     s.Users,
		ToForm:  transport.UserFormFrom,
		Options: selectLists(map[string]lookup{"roles": lk.Roles}),
	}).Mount(e.Group("/Users", secured...))

	(&Resource[models.Purchase, *models.Purchase, transport.PurchaseForm]{
		Name:    "Purchases",
		Svc:     s.Purchases,
		ToForm:  transport.PurchaseFormFrom,
		Options: selectLists(map[string]lookup{"products": lk.Products, "suppliers": lk.Suppliers}),
	}).Mount(e.Group("/Purchases", secured...))

	(&Resource[models.Sale, *models.Sale, transport.SaleForm]{
		Name:    "Sales",
		Svc:     s.Sales,
		ToForm:  transport.SaleFormFrom,
		Options: selectLists(map[string]lookup{"products": lk.Products}),
	}).Mount(e.Group("/Sales", secured...))
}

type lookup func(ctx context.Context) ([]repo.Option, error)

func selectLists(sources map[string]lookup) OptionsFunc {
	return func(ctx context.Context) (map[string][]repo.Option, error) {
		out := make(map[string][]repo.Option, len(sources))
		for name, load := range sources {
			opts, err := load(ctx)
			if err != nil {
				return nil, err
			}
			out[name] = opts
		}
		return out, nil
	}
}

func loginLimiter(rps float64, burst int) echo.MiddlewareFunc {
	if rps <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(rps),
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, id string, err error) error {
			logging.FromContext(c.Request().Context()).Warn("login_throttled", "status", 429, "remote_ip", id)
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts")
		},
	})
}
