// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/cart"
	"github.com/your-org/pos-backend/internal/domain/catalog"
	"github.com/your-org/pos-backend/internal/domain/checkout"
	"github.com/your-org/pos-backend/internal/domain/customer"
	"github.com/your-org/pos-backend/internal/domain/order"
	"github.com/your-org/pos-backend/internal/domain/report"
	"github.com/your-org/pos-backend/internal/domain/user"
	"github.com/your-org/pos-backend/internal/interfaces/http/handlers"
	"github.com/your-org/pos-backend/internal/interfaces/http/middleware"
	"github.com/your-org/pos-backend/internal/pkg/auth"
	"github.com/your-org/pos-backend/internal/pkg/pdf"
)

// Dependencies are the services the API is built from
type Dependencies struct {
	Catalog   *catalog.Service
	Carts     *cart.Service
	Checkout  *checkout.Service
	Customers *customer.Service
	Orders    *order.Service
	Users     *user.Service
	Reports   *report.Service
	Receipts  *pdf.Service
	Tokens    *auth.TokenInspector
}

const (
	roleAdmin   = "admin"
	roleManager = "manager"
	roleCashier = "cashier"
)

// SetupRoutes registers every API route on rg. All of them require a bearer
// token, which is forwarded to the bookkeeping API.
func SetupRoutes(rg *gin.RouterGroup, deps *Dependencies, cfg *config.Config) {
	rg.Use(middleware.Auth(deps.Tokens))

	SetupCatalogRoutes(rg, deps)
	SetupSaleRoutes(rg, deps, cfg)
	SetupCustomerRoutes(rg, deps)
	SetupOrderRoutes(rg, deps)
	SetupUserRoutes(rg, deps)
	SetupReportRoutes(rg, deps)
}

// SetupCatalogRoutes sets up catalog and product routes
func SetupCatalogRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	catalogHandler := handlers.NewCatalogHandler(deps.Catalog)

	catalogRoutes := rg.Group("/catalog")
	{
		catalogRoutes.GET("", catalogHandler.Search)
		catalogRoutes.POST("/refresh", catalogHandler.Refresh)
	}

	products := rg.Group("/products")
	{
		products.GET("/sku", catalogHandler.GenerateSKU)
		products.GET("/:id/history", catalogHandler.History)

		// Inventory management
		managed := products.Group("")
		managed.Use(middleware.RequireRole(roleAdmin, roleManager))
		{
			managed.POST("", catalogHandler.CreateProduct)
			managed.PUT("/:id", catalogHandler.UpdateProduct)
		}
	}
}

// SetupSaleRoutes sets up the session scoped cart and checkout routes
func SetupSaleRoutes(rg *gin.RouterGroup, deps *Dependencies, cfg *config.Config) {
	cartHandler := handlers.NewCartHandler(deps.Carts)
	checkoutHandler := handlers.NewCheckoutHandler(deps.Checkout)

	sale := rg.Group("")
	sale.Use(middleware.Session(cfg.Cart.TTL, cfg.Security.SecureCookies))

	cartRoutes := sale.Group("/cart")
	{
		cartRoutes.GET("", cartHandler.GetCart)
		cartRoutes.DELETE("", cartHandler.ClearCart)
		cartRoutes.POST("/items", cartHandler.AddToCart)
		cartRoutes.PATCH("/items/:lineId", cartHandler.UpdateQuantity)
		cartRoutes.DELETE("/items/:lineId", cartHandler.RemoveFromCart)
	}

	checkoutRoutes := sale.Group("/checkout")
	{
		checkoutRoutes.GET("", checkoutHandler.GetSummary)
		checkoutRoutes.POST("", checkoutHandler.Submit)
		checkoutRoutes.DELETE("", checkoutHandler.Reset)
		checkoutRoutes.PUT("/customer", checkoutHandler.SelectCustomer)
		checkoutRoutes.PUT("/payment-method", checkoutHandler.SelectPaymentMethod)
		checkoutRoutes.POST("/customers", checkoutHandler.QuickAddCustomer)
	}
}

// SetupCustomerRoutes sets up customer routes
func SetupCustomerRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	customerHandler := handlers.NewCustomerHandler(deps.Customers)

	customers := rg.Group("/customers")
	{
		customers.GET("", customerHandler.List)
		customers.POST("", customerHandler.Create)
	}
}

// SetupOrderRoutes sets up sales history, receipt and return routes
func SetupOrderRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	orderHandler := handlers.NewOrderHandler(deps.Orders, deps.Receipts)

	orders := rg.Group("/orders")
	{
		orders.GET("", orderHandler.GetOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.GET("/:id/receipt", orderHandler.GetReceipt)
	}

	rg.POST("/returns", middleware.RequireRole(roleAdmin, roleManager, roleCashier), orderHandler.CreateReturn)
}

// SetupUserRoutes sets up staff management routes
func SetupUserRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	userHandler := handlers.NewUserHandler(deps.Users)

	users := rg.Group("/users")
	users.Use(middleware.RequireRole(roleAdmin))
	{
		users.GET("", userHandler.List)
		users.POST("", userHandler.Create)
		users.DELETE("/:id", userHandler.Delete)
	}
}

// SetupReportRoutes sets up financial report routes
func SetupReportRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	reportHandler := handlers.NewReportHandler(deps.Reports)

	reports := rg.Group("/reports")
	reports.Use(middleware.RequireRole(roleAdmin, roleManager))
	{
		reports.GET("/profit-loss", reportHandler.ProfitLoss)
		reports.GET("/balance-sheet", reportHandler.BalanceSheet)
		reports.GET("/summary", reportHandler.Summary)
	}

	accounting := rg.Group("/accounting")
	accounting.Use(middleware.RequireRole(roleAdmin, roleManager))
	{
		accounting.GET("/accounts", reportHandler.Accounts)
		accounting.GET("/ledger", reportHandler.Ledger)
	}
}
