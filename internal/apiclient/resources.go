package apiclient

import (
	"context"
	"net/http"

	"github.com/miniapartment/e2e/internal/rental"
)

// RoomInput is the writable subset of a room.
type RoomInput struct {
	Name        string `json:"name"`
	Address     string `json:"address,omitempty"`
	Description string `json:"description,omitempty"`
	Price       int64  `json:"price"`
	Status      string `json:"status,omitempty"`
}

// GetRooms fetches one page of rooms.
func (c *Client) GetRooms(ctx context.Context, sess *Session, q ListQuery) (ListResult[rental.Room], error) {
	var out ListResult[rental.Room]
	err := c.do(ctx, sess, http.MethodGet, "/rooms"+q.encode(), nil, &out, "fetch rooms")
	return out, err
}

// GetRoom fetches a single room.
func (c *Client) GetRoom(ctx context.Context, sess *Session, id string) (rental.Room, error) {
	var out rental.Room
	err := c.do(ctx, sess, http.MethodGet, "/rooms/"+id, nil, &out, "fetch room")
	return out, err
}

// CreateRoom creates a room.
func (c *Client) CreateRoom(ctx context.Context, sess *Session, in RoomInput) (rental.Room, error) {
	var out rental.Room
	err := c.do(ctx, sess, http.MethodPost, "/rooms", in, &out, "create room")
	return out, err
}

// UpdateRoom replaces a room's mutable fields.
func (c *Client) UpdateRoom(ctx context.Context, sess *Session, id string, in RoomInput) (rental.Room, error) {
	var out rental.Room
	err := c.do(ctx, sess, http.MethodPut, "/rooms/"+id, in, &out, "update room")
	return out, err
}

// DeleteRoom removes a room.
func (c *Client) DeleteRoom(ctx context.Context, sess *Session, id string) error {
	return c.do(ctx, sess, http.MethodDelete, "/rooms/"+id, nil, nil, "delete room")
}

// AssetInput is the writable subset of an asset.
type AssetInput struct {
	Name      string `json:"name"`
	Condition string `json:"condition,omitempty"`
	RoomID    string `json:"roomId,omitempty"`
}

// GetAssets fetches one page of assets.
func (c *Client) GetAssets(ctx context.Context, sess *Session, q ListQuery) (ListResult[rental.Asset], error) {
	var out ListResult[rental.Asset]
	err := c.do(ctx, sess, http.MethodGet, "/assets"+q.encode(), nil, &out, "fetch assets")
	return out, err
}

// CreateAsset creates an asset.
func (c *Client) CreateAsset(ctx context.Context, sess *Session, in AssetInput) (rental.Asset, error) {
	var out rental.Asset
	err := c.do(ctx, sess, http.MethodPost, "/assets", in, &out, "create asset")
	return out, err
}

// UpdateAsset replaces an asset's mutable fields.
func (c *Client) UpdateAsset(ctx context.Context, sess *Session, id string, in AssetInput) (rental.Asset, error) {
	var out rental.Asset
	err := c.do(ctx, sess, http.MethodPut, "/assets/"+id, in, &out, "update asset")
	return out, err
}

// DeleteAsset removes an asset.
func (c *Client) DeleteAsset(ctx context.Context, sess *Session, id string) error {
	return c.do(ctx, sess, http.MethodDelete, "/assets/"+id, nil, nil, "delete asset")
}

// InvoiceInput carries the meter readings for an invoice. Charges are
// computed server-side.
type InvoiceInput struct {
	RoomID           string `json:"roomId"`
	MonthYear        string `json:"monthYear"`
	ElectricityStart int64  `json:"electricityStart"`
	ElectricityEnd   int64  `json:"electricityEnd"`
	WaterStart       int64  `json:"waterStart"`
	WaterEnd         int64  `json:"waterEnd"`
}

// GetInvoices fetches one page of invoices.
func (c *Client) GetInvoices(ctx context.Context, sess *Session, q ListQuery) (ListResult[rental.Invoice], error) {
	var out ListResult[rental.Invoice]
	err := c.do(ctx, sess, http.MethodGet, "/invoices"+q.encode(), nil, &out, "fetch invoices")
	return out, err
}

// CreateInvoice creates an invoice from meter readings.
func (c *Client) CreateInvoice(ctx context.Context, sess *Session, in InvoiceInput) (rental.Invoice, error) {
	var out rental.Invoice
	err := c.do(ctx, sess, http.MethodPost, "/invoices", in, &out, "create invoice")
	return out, err
}

// UpdateInvoice replaces an unpaid invoice's meter readings.
func (c *Client) UpdateInvoice(ctx context.Context, sess *Session, id string, in InvoiceInput) (rental.Invoice, error) {
	var out rental.Invoice
	err := c.do(ctx, sess, http.MethodPut, "/invoices/"+id, in, &out, "update invoice")
	return out, err
}

// PayInvoice marks an invoice paid.
func (c *Client) PayInvoice(ctx context.Context, sess *Session, id string) (rental.Invoice, error) {
	var out rental.Invoice
	err := c.do(ctx, sess, http.MethodPost, "/invoices/"+id+"/pay", nil, &out, "pay invoice")
	return out, err
}

// DeleteInvoice removes an unpaid invoice.
func (c *Client) DeleteInvoice(ctx context.Context, sess *Session, id string) error {
	return c.do(ctx, sess, http.MethodDelete, "/invoices/"+id, nil, nil, "delete invoice")
}

// NotificationInput is the writable subset of a notification.
type NotificationInput struct {
	Title    string `json:"title"`
	Body     string `json:"body,omitempty"`
	Audience string `json:"audience,omitempty"`
}

// GetNotifications fetches one page of notifications visible to the session's
// role.
func (c *Client) GetNotifications(ctx context.Context, sess *Session, q ListQuery) (ListResult[rental.Notification], error) {
	var out ListResult[rental.Notification]
	err := c.do(ctx, sess, http.MethodGet, "/notifications"+q.encode(), nil, &out, "fetch notifications")
	return out, err
}

// CreateNotification publishes an announcement.
func (c *Client) CreateNotification(ctx context.Context, sess *Session, in NotificationInput) (rental.Notification, error) {
	var out rental.Notification
	err := c.do(ctx, sess, http.MethodPost, "/notifications", in, &out, "create notification")
	return out, err
}

// DeleteNotification removes an announcement.
func (c *Client) DeleteNotification(ctx context.Context, sess *Session, id string) error {
	return c.do(ctx, sess, http.MethodDelete, "/notifications/"+id, nil, nil, "delete notification")
}

// GetUsers fetches the landlord-only account listing.
func (c *Client) GetUsers(ctx context.Context, sess *Session, q ListQuery) (ListResult[rental.User], error) {
	var out ListResult[rental.User]
	err := c.do(ctx, sess, http.MethodGet, "/admin/users"+q.encode(), nil, &out, "fetch users")
	return out, err
}
