package transaction

import (
	"context"
	"time"

	"github.com/amirasaad/ledgerbook/infra/repository/dberr"
	"github.com/amirasaad/ledgerbook/pkg/domain"
	"github.com/amirasaad/ledgerbook/pkg/dto"
	repo "github.com/amirasaad/ledgerbook/pkg/repository/transaction"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a transaction repository bound to db (usually a transaction session).
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// Create implements transaction.Repository.
func (r *repository) Create(
	ctx context.Context,
	create dto.TransactionCreate,
) (*dto.TransactionRead, error) {
	tx := mapCreateDTOToModel(create, r.db.NowFunc())
	if err := r.db.WithContext(ctx).Create(&tx).Error; err != nil {
		return nil, dberr.MapGormErrorToDomain(err)
	}
	return mapModelToDTO(&tx), nil
}

// Update implements transaction.Repository.
func (r *repository) Update(
	ctx context.Context,
	id int64,
	update dto.TransactionUpdate,
) error {
	updates := mapUpdateDTOToModel(update)
	if len(updates) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).
		Model(&Transaction{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return dberr.MapGormErrorToDomain(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Get implements transaction.Repository.
func (r *repository) Get(ctx context.Context, id int64) (*dto.TransactionRead, error) {
	var tx Transaction
	if err := r.db.WithContext(ctx).First(&tx, "id = ?", id).Error; err != nil {
		return nil, dberr.MapGormErrorToDomain(err)
	}
	return mapModelToDTO(&tx), nil
}

// List implements transaction.Repository.
func (r *repository) List(
	ctx context.Context,
	filter dto.TransactionFilter,
) ([]*dto.TransactionRead, error) {
	query := r.db.WithContext(ctx).Model(&Transaction{})
	if filter.AccountID != nil {
		query = query.Where("account_id = ?", *filter.AccountID)
	}
	var txs []Transaction
	if err := query.
		Order("date DESC").
		Order("id DESC").
		Limit(filter.Limit).
		Find(&txs).Error; err != nil {
		return nil, dberr.MapGormErrorToDomain(err)
	}
	result := make([]*dto.TransactionRead, 0, len(txs))
	for i := range txs {
		result = append(result, mapModelToDTO(&txs[i]))
	}
	return result, nil
}

// ListSince implements transaction.Repository.
func (r *repository) ListSince(ctx context.Context, since time.Time) ([]dto.DatedAmount, error) {
	var txs []Transaction
	if err := r.db.WithContext(ctx).
		Select("date", "amount_cents").
		Where("date >= ?", since.UTC()).
		Order("date ASC").
		Order("id ASC").
		Find(&txs).Error; err != nil {
		return nil, dberr.MapGormErrorToDomain(err)
	}
	result := make([]dto.DatedAmount, 0, len(txs))
	for i := range txs {
		result = append(result, dto.DatedAmount{
			Date:   txs[i].Date.UTC(),
			Amount: domain.CentsToAmount(txs[i].AmountCents),
		})
	}
	return result, nil
}

// Delete implements transaction.Repository.
func (r *repository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Transaction{})
	if result.Error != nil {
		return dberr.MapGormErrorToDomain(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteByAccount implements transaction.Repository.
func (r *repository) DeleteByAccount(ctx context.Context, accountID int64) (int64, error) {
	result := r.db.WithContext(ctx).Where("account_id = ?", accountID).Delete(&Transaction{})
	return result.RowsAffected, dberr.MapGormErrorToDomain(result.Error)
}

// Count implements transaction.Repository.
func (r *repository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&Transaction{}).Count(&n).Error; err != nil {
		return 0, dberr.MapGormErrorToDomain(err)
	}
	return n, nil
}

// Sum implements transaction.Repository.
func (r *repository) Sum(ctx context.Context) (decimal.Decimal, error) {
	var cents int64
	if err := r.db.WithContext(ctx).
		Model(&Transaction{}).
		Select("CAST(COALESCE(SUM(amount_cents), 0) AS BIGINT)").
		Scan(&cents).Error; err != nil {
		return decimal.Zero, dberr.MapGormErrorToDomain(err)
	}
	return domain.CentsToAmount(cents), nil
}

// mapCreateDTOToModel maps TransactionCreate DTO to GORM model.
func mapCreateDTOToModel(create dto.TransactionCreate, now time.Time) Transaction {
	date := now
	if create.Date != nil {
		date = *create.Date
	}
	return Transaction{
		AccountID:   create.AccountID,
		Date:        date.UTC(),
		Description: create.Description,
		AmountCents: domain.AmountToCents(create.Amount),
	}
}

// mapUpdateDTOToModel maps TransactionUpdate DTO to a map for GORM Updates.
func mapUpdateDTOToModel(update dto.TransactionUpdate) map[string]any {
	updates := make(map[string]any)
	if update.Date != nil {
		updates["date"] = update.Date.UTC()
	}
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if update.Amount != nil {
		updates["amount_cents"] = domain.AmountToCents(*update.Amount)
	}
	return updates
}

// mapModelToDTO maps a GORM model to a read-optimized DTO.
func mapModelToDTO(tx *Transaction) *dto.TransactionRead {
	return &dto.TransactionRead{
		ID:          tx.ID,
		AccountID:   tx.AccountID,
		Date:        tx.Date.UTC(),
		Description: tx.Description,
		Amount:      domain.CentsToAmount(tx.AmountCents),
		CreatedAt:   tx.CreatedAt.UTC(),
	}
}
