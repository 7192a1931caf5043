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

func renterSession(t *testing.T, env *testutil.APITestEnv) *apiclient.Session {
	t.Helper()
	sess, err := env.Client.Authenticate(context.Background(), env.Config.UserEmail, env.Config.UserPassword)
	require.NoError(t, err)
	return sess
}

func TestNotificationAudienceFiltering(t *testing.T) {
	env := testutil.SetupAPITestEnv(t)
	ctx := context.Background()
	landlord := landlordSession(t, env)
	renter := renterSession(t, env)

	for _, n := range []apiclient.NotificationInput{
		{Title: "Bảo trì thang máy", Audience: "ALL"},
		{Title: "Lịch thu tiền", Audience: rental.RoleRenter},
		{Title: "Báo cáo nội bộ", Audience: rental.RoleLandlord},
	} {
		_, err := env.Client.CreateNotification(ctx, landlord, n)
		require.NoError(t, err)
	}

	renterView, err := env.Client.GetNotifications(ctx, renter, testutil.DefaultQuery())
	require.NoError(t, err)
	titles := make([]string, 0, len(renterView.Data))
	for _, n := range renterView.Data {
		titles = append(titles, n.Title)
	}
	assert.ElementsMatch(t, []string{"Bảo trì thang máy", "Lịch thu tiền"}, titles,
		"renter sees ALL and RENTER audiences only")

	landlordView, err := env.Client.GetNotifications(ctx, landlord, testutil.DefaultQuery())
	require.NoError(t, err)
	assert.Len(t, landlordView.Data, 2, "landlord sees ALL and LANDLORD audiences")
}

func TestNotificationCreateRequiresLandlord(t *testing.T) {
	env := testutil.SetupAPITestEnv(t)
	renter := renterSession(t, env)

	_, err := env.Client.CreateNotification(context.Background(), renter, apiclient.NotificationInput{
		Title: "Thử nghiệm",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestNotificationDelete(t *testing.T) {
	env := testutil.SetupAPITestEnv(t)
	ctx := context.Background()
	landlord := landlordSession(t, env)

	n, err := env.Client.CreateNotification(ctx, landlord, apiclient.NotificationInput{
		Title: "Sắp gỡ", Audience: "ALL",
	})
	require.NoError(t, err)

	require.NoError(t, env.Client.DeleteNotification(ctx, landlord, n.ID))

	err = env.Client.DeleteNotification(ctx, landlord, n.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
