package e2e

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miniapartment/e2e/internal/apiclient"
	"github.com/miniapartment/e2e/tests/e2e/testutil"
)

func TestAssetCRUDRoundTrip(t *testing.T) {
	env := testutil.SetupAPITestEnv(t)
	ctx := context.Background()
	sess := landlordSession(t, env)

	created, err := env.Client.CreateAsset(ctx, sess, apiclient.AssetInput{
		Name:      "Máy lạnh Daikin",
		Condition: "Mới",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Empty(t, created.RoomID, "asset starts unassigned")

	updated, err := env.Client.UpdateAsset(ctx, sess, created.ID, apiclient.AssetInput{
		Name:      "Máy lạnh Daikin",
		Condition: "Đã qua sử dụng",
	})
	require.NoError(t, err)
	assert.Equal(t, "Đã qua sử dụng", updated.Condition)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	require.NoError(t, env.Client.DeleteAsset(ctx, sess, created.ID))
}

func TestAssignedAssetCannotBeDeleted(t *testing.T) {
	env := testutil.SetupAPITestEnv(t)
	ctx := context.Background()
	sess := landlordSession(t, env)

	room, err := env.Client.CreateRoom(ctx, sess, apiclient.RoomInput{Name: "Phòng tài sản"})
	require.NoError(t, err)

	asset, err := env.Client.CreateAsset(ctx, sess, apiclient.AssetInput{
		Name:   "Tủ lạnh",
		RoomID: room.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, room.ID, asset.RoomID)

	err = env.Client.DeleteAsset(ctx, sess, asset.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "409")
	assert.Contains(t, err.Error(), "assigned to a room")

	// Unassign, then deletion succeeds.
	_, err = env.Client.UpdateAsset(ctx, sess, asset.ID, apiclient.AssetInput{Name: "Tủ lạnh"})
	require.NoError(t, err)
	require.NoError(t, env.Client.DeleteAsset(ctx, sess, asset.ID))
}

func TestAssetCreateRejectsUnknownRoom(t *testing.T) {
	env := testutil.SetupAPITestEnv(t)
	sess := landlordSession(t, env)

	_, err := env.Client.CreateAsset(context.Background(), sess, apiclient.AssetInput{
		Name:   "Bàn học",
		RoomID: "missing-room",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestAssetSearchByName(t *testing.T) {
	env := testutil.SetupAPITestEnv(t)
	ctx := context.Background()
	sess := landlordSession(t, env)

	for _, name := range []string{"Quạt trần", "Quạt đứng", "Đèn bàn"} {
		_, err := env.Client.CreateAsset(ctx, sess, apiclient.AssetInput{Name: name})
		require.NoError(t, err)
	}

	result, err := env.Client.GetAssets(ctx, sess, apiclient.ListQuery{Search: "Quạt"})
	require.NoError(t, err)
	assert.Len(t, result.Data, 2)
	assert.Equal(t, 2, result.Pagination.Total)
}
