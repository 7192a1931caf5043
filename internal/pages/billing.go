package pages

import (
	"fmt"
	"strconv"

	"github.com/playwright-community/playwright-go"
)

// BillingPage drives the invoice list and the create-invoice form.
type BillingPage struct {
	*BasePage
}

// NewBillingPage creates the billing page object.
func NewBillingPage(page playwright.Page, baseURL string) *BillingPage {
	return &BillingPage{BasePage: NewBasePage(page, baseURL)}
}

// Open navigates to /billing.
func (p *BillingPage) Open() error {
	return p.Navigate("/billing")
}

// WaitLoaded waits for the invoice table.
func (p *BillingPage) WaitLoaded() error {
	_, err := p.WaitVisible(`[data-testid="invoice-table"]`, "table")
	return err
}

// InvoiceInput is what the create form needs. Charges are computed by the
// server; the form has no editable amount fields.
type InvoiceInput struct {
	RoomID        string
	MonthYear     string
	StartElectric int64
	EndElectric   int64
	StartWater    int64
	EndWater      int64
}

// CreateInvoice fills the meter readings and submits.
func (p *BillingPage) CreateInvoice(in InvoiceInput) error {
	if err := p.SelectOption(in.RoomID, `[data-testid="invoice-room"]`, `select[name="roomId"]`); err != nil {
		return err
	}
	if err := p.Fill(in.MonthYear, `[data-testid="invoice-month"]`, `input[name="monthYear"]`); err != nil {
		return err
	}
	for _, f := range []struct {
		value      int64
		strategies []string
	}{
		{in.StartElectric, []string{`[data-testid="start-electric"]`, `input[name="startElectric"]`}},
		{in.EndElectric, []string{`[data-testid="end-electric"]`, `input[name="endElectric"]`}},
		{in.StartWater, []string{`[data-testid="start-water"]`, `input[name="startWater"]`}},
		{in.EndWater, []string{`[data-testid="end-water"]`, `input[name="endWater"]`}},
	} {
		if err := p.Fill(strconv.FormatInt(f.value, 10), f.strategies...); err != nil {
			return err
		}
	}
	if err := p.Click(`[data-testid="invoice-create-submit"]`, `form[action="/billing/create"] button[type="submit"]`); err != nil {
		return err
	}
	return p.WaitForURL("**/billing")
}

// RowByMonth returns the invoice row for a billing month.
func (p *BillingPage) RowByMonth(monthYear string) playwright.Locator {
	return p.Page.Locator(`tr[data-testid="invoice-row"]`, playwright.PageLocatorOptions{
		HasText: monthYear,
	})
}

// HasInvoice reports whether an invoice for the month is listed.
func (p *BillingPage) HasInvoice(monthYear string) (bool, error) {
	count, err := p.RowByMonth(monthYear).Count()
	if err != nil {
		return false, fmt.Errorf("count invoice rows for %q: %w", monthYear, err)
	}
	return count > 0, nil
}

// PayInvoice clicks the pay button in the month's row.
func (p *BillingPage) PayInvoice(monthYear string) error {
	row := p.RowByMonth(monthYear)
	if err := row.Locator(`[data-testid="invoice-pay"]`).Click(); err != nil {
		return fmt.Errorf("click pay for %q: %w", monthYear, err)
	}
	return p.WaitForURL("**/billing")
}

// TariffHeadings returns the h2 headings of the price tables.
func (p *BillingPage) TariffHeadings() ([]string, error) {
	return p.Page.Locator("h2").AllTextContents()
}
