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

func TestAdminUsersLandlordOnly(t *testing.T) {
	env := testutil.SetupAPITestEnv(t)
	ctx := context.Background()

	landlord := landlordSession(t, env)
	result, err := env.Client.GetUsers(ctx, landlord, testutil.DefaultQuery())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Pagination.Total, "both seeded accounts are listed")

	emails := map[string]string{}
	for _, u := range result.Data {
		emails[u.Email] = u.Role
	}
	assert.Equal(t, rental.RoleLandlord, emails[env.Config.AdminEmail])
	assert.Equal(t, rental.RoleRenter, emails[env.Config.UserEmail])

	renter := renterSession(t, env)
	_, err = env.Client.GetUsers(ctx, renter, testutil.DefaultQuery())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")

	_, err = env.Client.GetUsers(ctx, nil, testutil.DefaultQuery())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestRenterCannotMutateRooms(t *testing.T) {
	env := testutil.SetupAPITestEnv(t)
	ctx := context.Background()
	landlord := landlordSession(t, env)
	renter := renterSession(t, env)

	room, err := env.Client.CreateRoom(ctx, landlord, apiclient.RoomInput{Name: "Phòng RBAC"})
	require.NoError(t, err)

	_, err = env.Client.CreateRoom(ctx, renter, apiclient.RoomInput{Name: "Không được phép"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")

	_, err = env.Client.UpdateRoom(ctx, renter, room.ID, apiclient.RoomInput{Name: "Đổi tên"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")

	err = env.Client.DeleteRoom(ctx, renter, room.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")

	// Read access is shared.
	_, err = env.Client.GetRooms(ctx, renter, testutil.DefaultQuery())
	assert.NoError(t, err)
}

func TestRenterCannotMutateInvoices(t *testing.T) {
	env := testutil.SetupAPITestEnv(t)
	ctx := context.Background()
	landlord := landlordSession(t, env)
	renter := renterSession(t, env)

	room, err := env.Client.CreateRoom(ctx, landlord, apiclient.RoomInput{Name: "Phòng RBAC 2"})
	require.NoError(t, err)

	_, err = env.Client.CreateInvoice(ctx, renter, apiclient.InvoiceInput{
		RoomID: room.ID, MonthYear: "10/2026",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")

	// Renters can pay their own invoices.
	inv, err := env.Client.CreateInvoice(ctx, landlord, apiclient.InvoiceInput{
		RoomID: room.ID, MonthYear: "10/2026", ElectricityEnd: 5,
	})
	require.NoError(t, err)
	paid, err := env.Client.PayInvoice(ctx, renter, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, rental.InvoicePaid, paid.Status)
}
