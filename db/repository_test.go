package db_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/bariqpay/bariq-cli/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestRepo(t *testing.T) db.CredentialRepository {
	t.Helper()
	conn, err := db.Open(filepath.Join(t.TempDir(), "bariq.db"))
	require.NoError(t, err, "Open should not return an error")
	t.Cleanup(func() {
		require.NoError(t, db.Close(conn), "Close should not return an error")
	})
	return db.NewCredentialRepository(conn)
}

func TestCredentialRepository_GetWhenEmpty(t *testing.T) {
	repo := openTestRepo(t)

	rec, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, rec, "no record should yield nil, not an error")
}

func TestCredentialRepository_PutGetRoundtrip(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	in := &db.Credential{
		AccessToken:  "A1",
		RefreshToken: "R1",
		User:         `{"full_name":"Sara"}`,
		Role:         "customer",
	}
	require.NoError(t, repo.Put(ctx, in))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "A1", got.AccessToken)
	assert.Equal(t, "R1", got.RefreshToken)
	assert.Equal(t, `{"full_name":"Sara"}`, got.User)
	assert.Equal(t, "customer", got.Role)
}

func TestCredentialRepository_PutReplacesAllFields(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, &db.Credential{
		AccessToken: "A1", RefreshToken: "R1", User: `{"full_name":"Sara"}`, Role: "customer",
	}))
	require.NoError(t, repo.Put(ctx, &db.Credential{
		AccessToken: "B1", RefreshToken: "S1", User: `{"full_name":"Omar"}`, Role: "merchant",
	}))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "B1", got.AccessToken)
	assert.Equal(t, "S1", got.RefreshToken)
	assert.Equal(t, "merchant", got.Role)
}

func TestCredentialRepository_UpdateAccessToken(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, &db.Credential{
		AccessToken: "A1", RefreshToken: "R1", User: `{"full_name":"Sara"}`, Role: "customer",
	}))
	require.NoError(t, repo.UpdateAccessToken(ctx, "A2"))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A2", got.AccessToken)
	assert.Equal(t, "R1", got.RefreshToken, "only the access token column may move")
	assert.Equal(t, "customer", got.Role)
}

func TestCredentialRepository_UpdateAccessTokenWithoutRecord(t *testing.T) {
	repo := openTestRepo(t)
	require.Error(t, repo.UpdateAccessToken(context.Background(), "A2"))
}

func TestCredentialRepository_Clear(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, &db.Credential{AccessToken: "A1", RefreshToken: "R1"}))
	require.NoError(t, repo.Clear(ctx))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got, "no stored field may remain retrievable after a clear")
}
