package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirasaad/ledgerbook/pkg/domain"
	"github.com/amirasaad/ledgerbook/pkg/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockRepo(t *testing.T) (*repository, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDb.Close() })
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return &repository{db: db}, mock
}

func TestAccountRepository_Create(t *testing.T) {
	t.Parallel()
	require := require.New(t)
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "accounts" \("name","type","created_at"\) VALUES \(\$1,\$2,\$3\) RETURNING "id"`).
		WithArgs("Cash", "asset", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectCommit()

	acct, err := repo.Create(context.Background(), dto.AccountCreate{Name: "Cash", Type: domain.AccountTypeAsset})
	require.NoError(err)
	require.Equal(int64(7), acct.ID)
	require.Equal("Cash", acct.Name)
	require.Equal(domain.AccountTypeAsset, acct.Type)
	require.False(acct.CreatedAt.IsZero())

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "accounts" (.+) VALUES (.+) RETURNING "id"`).
		WillReturnError(errors.New("create error"))
	mock.ExpectRollback()

	_, err = repo.Create(context.Background(), dto.AccountCreate{Name: "Bank", Type: domain.AccountTypeAsset})
	require.ErrorIs(err, domain.ErrStorageUnavailable)
	require.NoError(mock.ExpectationsWereMet())
}

func TestAccountRepository_Get(t *testing.T) {
	t.Parallel()
	require := require.New(t)
	repo, mock := newMockRepo(t)
	createdAt := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = \$1 ORDER BY "accounts"\."id" LIMIT \$2`).
		WithArgs(int64(3), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type", "created_at"}).
			AddRow(3, "Revenue", "income", createdAt))

	acct, err := repo.Get(context.Background(), 3)
	require.NoError(err)
	require.Equal(int64(3), acct.ID)
	require.Equal(domain.AccountTypeIncome, acct.Type)
	require.True(createdAt.Equal(acct.CreatedAt))

	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type", "created_at"}))
	_, err = repo.Get(context.Background(), 99)
	require.ErrorIs(err, domain.ErrNotFound)
}

func TestAccountRepository_ListOrdersByName(t *testing.T) {
	t.Parallel()
	require := require.New(t)
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT \* FROM "accounts" ORDER BY name ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type", "created_at"}).
			AddRow(2, "Bank", "asset", now).
			AddRow(1, "Cash", "asset", now))

	accts, err := repo.List(context.Background())
	require.NoError(err)
	require.Len(accts, 2)
	assert.Equal(t, "Bank", accts[0].Name)
	assert.Equal(t, "Cash", accts[1].Name)
}

func TestAccountRepository_UpdateAppliesOnlySetFields(t *testing.T) {
	t.Parallel()
	require := require.New(t)
	repo, mock := newMockRepo(t)
	name := "Checking"

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "accounts" SET "name"=\$1 WHERE id = \$2`).
		WithArgs("Checking", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	require.NoError(repo.Update(context.Background(), 5, dto.AccountUpdate{Name: &name}))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "accounts" SET "name"=\$1 WHERE id = \$2`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	require.ErrorIs(repo.Update(context.Background(), 6, dto.AccountUpdate{Name: &name}), domain.ErrNotFound)

	// nothing to update, no statement issued
	require.NoError(repo.Update(context.Background(), 5, dto.AccountUpdate{}))
	require.NoError(mock.ExpectationsWereMet())
}

func TestAccountRepository_DeleteMissing(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "accounts" WHERE id = \$1`).
		WithArgs(int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), 8)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAccountRepository_Count(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "accounts"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}
