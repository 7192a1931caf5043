// Package rental holds the apartment-management domain model and its sqlite
// store: rooms, assets, utility invoices, notifications, and the paginated
// listing contract every API response follows.
package rental

import "time"

// Room statuses.
const (
	RoomAvailable   = "AVAILABLE"
	RoomOccupied    = "OCCUPIED"
	RoomMaintenance = "MAINTENANCE"
)

// Invoice statuses.
const (
	InvoiceUnpaid = "UNPAID"
	InvoicePaid   = "PAID"
)

// Room is a rentable unit.
type Room struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Description string    `json:"description"`
	Price       int64     `json:"price"` // monthly rent in VND
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Asset is a physical item, optionally assigned to a room.
type Asset struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Condition string    `json:"condition"`
	RoomID    string    `json:"roomId,omitempty"` // empty = unassigned
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Invoice is a monthly electricity/water bill for a room.
// Charges are computed server-side from meter readings; clients never
// submit amounts.
type Invoice struct {
	ID                string     `json:"id"`
	RoomID            string     `json:"roomId"`
	MonthYear         string     `json:"monthYear"` // MM/YYYY
	ElectricityStart  int64      `json:"electricityStart"`
	ElectricityEnd    int64      `json:"electricityEnd"`
	WaterStart        int64      `json:"waterStart"`
	WaterEnd          int64      `json:"waterEnd"`
	ElectricityCharge int64      `json:"electricityCharge"`
	WaterCharge       int64      `json:"waterCharge"`
	Total             int64      `json:"total"`
	Status            string     `json:"status"`
	PaidAt            *time.Time `json:"paidAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// Notification is an announcement shown to one audience or all tenants.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Audience  string    `json:"audience"` // ALL, LANDLORD, RENTER
	CreatedAt time.Time `json:"createdAt"`
}

// Pagination describes one page of a listed result set.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// MaxPageLimit caps the page size a client may request.
const MaxPageLimit = 100

// ListParams are the query parameters accepted by every list operation.
type ListParams struct {
	Page      int
	Limit     int
	SortBy    string // name, price, createdAt
	SortOrder string // asc, desc
	Status    string
	Search    string
}

// NewPagination computes pagination metadata for a page of a result set.
// TotalPages is zero for an empty set, matching the UI's empty state.
func NewPagination(page, limit, total int) Pagination {
	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
