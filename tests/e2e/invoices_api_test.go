package e2e

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miniapartment/e2e/internal/apiclient"
	"github.com/miniapartment/e2e/internal/rental"
	"github.com/miniapartment/e2e/tests/e2e/testutil"
)

func seedRoom(t *testing.T, env *testutil.APITestEnv, sess *apiclient.Session) rental.Room {
	t.Helper()
	room, err := env.Client.CreateRoom(context.Background(), sess, apiclient.RoomInput{
		Name:  "Phòng hóa đơn",
		Price: 3_000_000,
	})
	require.NoError(t, err)
	return room
}

func TestInvoiceChargesComputedFromReadings(t *testing.T) {
	env := testutil.SetupAPITestEnv(t)
	ctx := context.Background()
	sess := landlordSession(t, env)
	room := seedRoom(t, env, sess)

	inv, err := env.Client.CreateInvoice(ctx, sess, apiclient.InvoiceInput{
		RoomID:           room.ID,
		MonthYear:        "02/2026",
		ElectricityStart: 100,
		ElectricityEnd:   150,
		WaterStart:       20,
		WaterEnd:         28,
	})
	require.NoError(t, err)

	assert.Positive(t, inv.ElectricityCharge, "50 kWh must be billed")
	assert.Positive(t, inv.WaterCharge, "8 m3 must be billed")
	assert.Equal(t, rental.TariffCharge(rental.ElectricityTariff, 50), inv.ElectricityCharge)
	assert.Equal(t, rental.TariffCharge(rental.WaterTariff, 8), inv.WaterCharge)
	assert.Equal(t, inv.ElectricityCharge+inv.WaterCharge, inv.Total)
	assert.Equal(t, rental.InvoiceUnpaid, inv.Status)
	assert.Nil(t, inv.PaidAt)
}

func TestInvoiceTieredElectricityRates(t *testing.T) {
	env := testutil.SetupAPITestEnv(t)
	ctx := context.Background()
	sess := landlordSession(t, env)
	room := seedRoom(t, env, sess)

	// 120 kWh crosses three bands: 50@1678 + 50@1734 + 20@2014.
	inv, err := env.Client.CreateInvoice(ctx, sess, apiclient.InvoiceInput{
		RoomID:         room.ID,
		MonthYear:      "03/2026",
		ElectricityEnd: 120,
	})
	require.NoError(t, err)
	want := int64(50*1678 + 50*1734 + 20*2014)
	assert.Equal(t, want, inv.ElectricityCharge)
}

func TestInvoiceRejectsDecreasingReadings(t *testing.T) {
	env := testutil.SetupAPITestEnv(t)
	ctx := context.Background()
	sess := landlordSession(t, env)
	room := seedRoom(t, env, sess)

	_, err := env.Client.CreateInvoice(ctx, sess, apiclient.InvoiceInput{
		RoomID:           room.ID,
		MonthYear:        "04/2026",
		ElectricityStart: 100,
		ElectricityEnd:   90,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "must not be lower than start")

	_, err = env.Client.CreateInvoice(ctx, sess, apiclient.InvoiceInput{
		RoomID:     room.ID,
		MonthYear:  "04/2026",
		WaterStart: 30,
		WaterEnd:   20,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestInvoiceRequiresExistingRoom(t *testing.T) {
	env := testutil.SetupAPITestEnv(t)
	sess := landlordSession(t, env)

	_, err := env.Client.CreateInvoice(context.Background(), sess, apiclient.InvoiceInput{
		RoomID:    "no-such-room",
		MonthYear: "05/2026",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestPaidInvoiceIsImmutable(t *testing.T) {
	env := testutil.SetupAPITestEnv(t)
	ctx := context.Background()
	sess := landlordSession(t, env)
	room := seedRoom(t, env, sess)

	inv, err := env.Client.CreateInvoice(ctx, sess, apiclient.InvoiceInput{
		RoomID:         room.ID,
		MonthYear:      "06/2026",
		ElectricityEnd: 40,
		WaterEnd:       4,
	})
	require.NoError(t, err)

	paid, err := env.Client.PayInvoice(ctx, sess, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, rental.InvoicePaid, paid.Status)
	require.NotNil(t, paid.PaidAt)

	// Update rejected.
	_, err = env.Client.UpdateInvoice(ctx, sess, inv.ID, apiclient.InvoiceInput{
		RoomID:         room.ID,
		MonthYear:      "06/2026",
		ElectricityEnd: 999,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "409")
	assert.Contains(t, err.Error(), "paid invoice cannot be modified")

	// Double pay rejected.
	_, err = env.Client.PayInvoice(ctx, sess, inv.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "409")

	// Delete rejected.
	err = env.Client.DeleteInvoice(ctx, sess, inv.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "409")
}

func TestUnpaidInvoiceUpdateRecomputes(t *testing.T) {
	env := testutil.SetupAPITestEnv(t)
	ctx := context.Background()
	sess := landlordSession(t, env)
	room := seedRoom(t, env, sess)

	inv, err := env.Client.CreateInvoice(ctx, sess, apiclient.InvoiceInput{
		RoomID:         room.ID,
		MonthYear:      "07/2026",
		ElectricityEnd: 30,
	})
	require.NoError(t, err)

	updated, err := env.Client.UpdateInvoice(ctx, sess, inv.ID, apiclient.InvoiceInput{
		RoomID:         room.ID,
		MonthYear:      "07/2026",
		ElectricityEnd: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, rental.TariffCharge(rental.ElectricityTariff, 60), updated.ElectricityCharge)
	assert.True(t, updated.UpdatedAt.After(inv.UpdatedAt))
}

func TestInvoiceListStatusFilter(t *testing.T) {
	env := testutil.SetupAPITestEnv(t)
	ctx := context.Background()
	sess := landlordSession(t, env)
	room := seedRoom(t, env, sess)

	first, err := env.Client.CreateInvoice(ctx, sess, apiclient.InvoiceInput{
		RoomID: room.ID, MonthYear: "08/2026", ElectricityEnd: 10,
	})
	require.NoError(t, err)
	_, err = env.Client.CreateInvoice(ctx, sess, apiclient.InvoiceInput{
		RoomID: room.ID, MonthYear: "09/2026", ElectricityEnd: 10,
	})
	require.NoError(t, err)

	_, err = env.Client.PayInvoice(ctx, sess, first.ID)
	require.NoError(t, err)

	unpaid, err := env.Client.GetInvoices(ctx, sess, apiclient.ListQuery{Status: rental.InvoiceUnpaid})
	require.NoError(t, err)
	require.Len(t, unpaid.Data, 1)
	assert.Equal(t, "09/2026", unpaid.Data[0].MonthYear)
}
