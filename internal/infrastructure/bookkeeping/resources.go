// internal/infrastructure/bookkeeping/resources.go
package bookkeeping

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/your-org/pos-backend/internal/domain/catalog"
	"github.com/your-org/pos-backend/internal/domain/customer"
	"github.com/your-org/pos-backend/internal/domain/order"
	"github.com/your-org/pos-backend/internal/domain/report"
	"github.com/your-org/pos-backend/internal/domain/user"
	"github.com/your-org/pos-backend/internal/pkg/types"
)

// Products

// ListProducts fetches the whole catalog
func (c *Client) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	return list[catalog.Product](ctx, c, request{
		op:       "bookkeeping.ListProducts",
		path:     "products",
		fallback: "Failed to load products",
	})
}

// CreateProduct creates a product with its variants
func (c *Client) CreateProduct(ctx context.Context, input *catalog.ProductInput) (*catalog.Product, error) {
	return send[catalog.Product](ctx, c, request{
		op:       "bookkeeping.CreateProduct",
		method:   http.MethodPost,
		path:     "products",
		body:     input,
		fallback: "Failed to create product",
	})
}

// UpdateProduct replaces a product and its variants
func (c *Client) UpdateProduct(ctx context.Context, id types.ID, input *catalog.ProductInput) (*catalog.Product, error) {
	return send[catalog.Product](ctx, c, request{
		op:       "bookkeeping.UpdateProduct",
		method:   http.MethodPut,
		path:     "products/" + url.PathEscape(id.String()),
		body:     input,
		fallback: "Failed to update product",
	})
}

// ProductHistory fetches the audit trail of a product
func (c *Client) ProductHistory(ctx context.Context, id types.ID) ([]catalog.HistoryRecord, error) {
	return list[catalog.HistoryRecord](ctx, c, request{
		op:       "bookkeeping.ProductHistory",
		path:     "products/" + url.PathEscape(id.String()) + "/history",
		fallback: "Failed to load product history",
	})
}

// Customers

// ListCustomers fetches customers, filtered by name when given
func (c *Client) ListCustomers(ctx context.Context, name string) ([]customer.Customer, error) {
	query := url.Values{}
	if name != "" {
		query.Set("filter[name]", name)
	}
	return list[customer.Customer](ctx, c, request{
		op:       "bookkeeping.ListCustomers",
		path:     "customers",
		query:    query,
		fallback: "Failed to load customers",
	})
}

// CreateCustomer creates a customer
func (c *Client) CreateCustomer(ctx context.Context, req *customer.CreateRequest) (*customer.Customer, error) {
	return send[customer.Customer](ctx, c, request{
		op:       "bookkeeping.CreateCustomer",
		method:   http.MethodPost,
		path:     "customers",
		body:     req,
		fallback: "Failed to create customer",
	})
}

// Orders

// ListOrders fetches orders
func (c *Client) ListOrders(ctx context.Context) ([]order.Order, error) {
	return list[order.Order](ctx, c, request{
		op:       "bookkeeping.ListOrders",
		path:     "orders",
		fallback: "Failed to load orders",
	})
}

// GetOrder fetches one order with its items
func (c *Client) GetOrder(ctx context.Context, id types.ID) (*order.Order, error) {
	return get[order.Order](ctx, c, request{
		op:       "bookkeeping.GetOrder",
		path:     "orders/" + url.PathEscape(id.String()),
		fallback: "Failed to load order",
	})
}

// CreateOrder submits a sale
func (c *Client) CreateOrder(ctx context.Context, req *order.CreateRequest) (*order.Order, error) {
	return send[order.Order](ctx, c, request{
		op:       "bookkeeping.CreateOrder",
		method:   http.MethodPost,
		path:     "orders",
		body:     req,
		fallback: "Failed to process sale",
	})
}

// CreateReturn submits a return against an order
func (c *Client) CreateReturn(ctx context.Context, req *order.ReturnRequest) (*order.ReturnResult, error) {
	return send[order.ReturnResult](ctx, c, request{
		op:       "bookkeeping.CreateReturn",
		method:   http.MethodPost,
		path:     "returns",
		body:     req,
		fallback: "Failed to process return",
	})
}

// Users

// ListUsers fetches staff accounts
func (c *Client) ListUsers(ctx context.Context) ([]user.User, error) {
	return list[user.User](ctx, c, request{
		op:       "bookkeeping.ListUsers",
		path:     "users",
		fallback: "Failed to load users",
	})
}

// CreateUser creates a staff account
func (c *Client) CreateUser(ctx context.Context, req *user.CreateRequest) (*user.User, error) {
	return send[user.User](ctx, c, request{
		op:       "bookkeeping.CreateUser",
		method:   http.MethodPost,
		path:     "users",
		body:     req,
		fallback: "Failed to create user",
	})
}

// DeleteUser removes a staff account
func (c *Client) DeleteUser(ctx context.Context, id types.ID) error {
	_, err := c.do(ctx, request{
		op:       "bookkeeping.DeleteUser",
		method:   http.MethodDelete,
		path:     "users/" + url.PathEscape(id.String()),
		fallback: "Failed to delete user",
	})
	return err
}

// Reports

// ProfitLoss fetches the income statement
func (c *Client) ProfitLoss(ctx context.Context) (*report.ProfitLoss, error) {
	return get[report.ProfitLoss](ctx, c, request{
		op:       "bookkeeping.ProfitLoss",
		path:     "reports/profit-loss",
		fallback: "Failed to load profit and loss",
	})
}

// BalanceSheet fetches the balance sheet
func (c *Client) BalanceSheet(ctx context.Context) (*report.BalanceSheet, error) {
	return get[report.BalanceSheet](ctx, c, request{
		op:       "bookkeeping.BalanceSheet",
		path:     "reports/balance-sheet",
		fallback: "Failed to load balance sheet",
	})
}

// Accounts fetches the chart of accounts
func (c *Client) Accounts(ctx context.Context) ([]report.Account, error) {
	return list[report.Account](ctx, c, request{
		op:       "bookkeeping.Accounts",
		path:     "accounting/accounts",
		fallback: "Failed to load accounts",
	})
}

// Ledger fetches a single page of the general ledger
func (c *Client) Ledger(ctx context.Context, perPage int) ([]report.LedgerEntry, error) {
	r := request{
		op:       "bookkeeping.Ledger",
		method:   http.MethodGet,
		path:     "accounting/ledger",
		query:    url.Values{"per_page": {strconv.Itoa(perPage)}},
		fallback: "Failed to load ledger",
	}
	data, err := c.do(ctx, r)
	if err != nil {
		return nil, err
	}
	return decodeList[report.LedgerEntry](c, r.op, unwrap(data))
}
