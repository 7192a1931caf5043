package pages

import (
	"fmt"
	"strconv"

	"github.com/playwright-community/playwright-go"
)

// RoomManagementPage drives the room list and its create/delete forms.
type RoomManagementPage struct {
	*BasePage
}

// NewRoomManagementPage creates the room management page object.
func NewRoomManagementPage(page playwright.Page, baseURL string) *RoomManagementPage {
	return &RoomManagementPage{BasePage: NewBasePage(page, baseURL)}
}

// Open navigates to /room.
func (p *RoomManagementPage) Open() error {
	return p.Navigate("/room")
}

// WaitLoaded waits for the room table.
func (p *RoomManagementPage) WaitLoaded() error {
	_, err := p.WaitVisible(`[data-testid="room-table"]`, "table")
	return err
}

// RoomInput is what the create form needs.
type RoomInput struct {
	Name        string
	Address     string
	Description string
	Price       int64
	Status      string
}

// CreateRoom fills and submits the add-room form, then waits for the list to
// reload.
func (p *RoomManagementPage) CreateRoom(in RoomInput) error {
	if err := p.Fill(in.Name, `[data-testid="room-name"]`, "input#name", `input[name="name"]`); err != nil {
		return err
	}
	if err := p.Fill(in.Address, `[data-testid="room-address"]`, "input#address", `input[name="address"]`); err != nil {
		return err
	}
	if err := p.Fill(in.Description, `[data-testid="room-description"]`, "input#description", `input[name="description"]`); err != nil {
		return err
	}
	if err := p.Fill(strconv.FormatInt(in.Price, 10), `[data-testid="room-price"]`, "input#price", `input[name="price"]`); err != nil {
		return err
	}
	if in.Status != "" {
		if err := p.SelectOption(in.Status, `[data-testid="room-status"]`, `select[name="status"]`); err != nil {
			return err
		}
	}
	if err := p.Click(`[data-testid="room-create-submit"]`, `form[action="/room/create"] button[type="submit"]`); err != nil {
		return err
	}
	return p.WaitForURL("**/room")
}

// RowByName returns the table row for a room name.
func (p *RoomManagementPage) RowByName(name string) playwright.Locator {
	return p.Page.Locator(`tr[data-testid="room-row"]`, playwright.PageLocatorOptions{
		HasText: name,
	})
}

// HasRoom reports whether a room with the given name is visible in the list.
func (p *RoomManagementPage) HasRoom(name string) (bool, error) {
	count, err := p.RowByName(name).Count()
	if err != nil {
		return false, fmt.Errorf("count rows for %q: %w", name, err)
	}
	return count > 0, nil
}

// DeleteRoom clicks the delete button in the named room's row. The caller
// must register a dialog handler before calling: deletion asks for
// confirmation.
func (p *RoomManagementPage) DeleteRoom(name string) error {
	row := p.RowByName(name)
	if err := row.Locator(`[data-testid="room-delete"]`).Click(); err != nil {
		return fmt.Errorf("click delete for %q: %w", name, err)
	}
	return p.WaitForURL("**/room")
}

// Search submits the search form and waits for the filtered list.
func (p *RoomManagementPage) Search(term string) error {
	if err := p.Fill(term, `[data-testid="room-search"]`, `input[name="search"]`); err != nil {
		return err
	}
	if err := p.Click(`form[action="/room"] button[type="submit"]`); err != nil {
		return err
	}
	return p.WaitForURL("**/room?*")
}

// PageInfo returns the pagination summary text, e.g. "Trang 1 / 3 (25 mục)".
func (p *RoomManagementPage) PageInfo() (string, error) {
	loc, err := p.WaitVisible(`[data-testid="page-info"]`)
	if err != nil {
		return "", err
	}
	return loc.TextContent()
}

// NextPage follows the pagination "next" link.
func (p *RoomManagementPage) NextPage() error {
	return p.Click(`[data-testid="next-page"]`)
}
