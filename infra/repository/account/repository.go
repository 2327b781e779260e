package account

import (
	"context"

	"github.com/amirasaad/ledgerbook/infra/repository/dberr"
	"github.com/amirasaad/ledgerbook/pkg/domain"
	"github.com/amirasaad/ledgerbook/pkg/dto"
	repo "github.com/amirasaad/ledgerbook/pkg/repository/account"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates an account repository bound to db (usually a transaction session).
// Storage errors are mapped to domain errors before they are returned.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// Create implements account.Repository.
func (r *repository) Create(ctx context.Context, create dto.AccountCreate) (*dto.AccountRead, error) {
	acct := mapCreateDTOToModel(create)
	if err := r.db.WithContext(ctx).Create(&acct).Error; err != nil {
		return nil, dberr.MapGormErrorToDomain(err)
	}
	return mapModelToDTO(&acct), nil
}

// Update implements account.Repository.
func (r *repository) Update(ctx context.Context, id int64, update dto.AccountUpdate) error {
	updates := mapUpdateDTOToModel(update)
	if len(updates) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&Account{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return dberr.MapGormErrorToDomain(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Get implements account.Repository.
func (r *repository) Get(ctx context.Context, id int64) (*dto.AccountRead, error) {
	var acct Account
	if err := r.db.WithContext(ctx).First(&acct, "id = ?", id).Error; err != nil {
		return nil, dberr.MapGormErrorToDomain(err)
	}
	return mapModelToDTO(&acct), nil
}

// GetByName implements account.Repository.
func (r *repository) GetByName(ctx context.Context, name string) (*dto.AccountRead, error) {
	var acct Account
	if err := r.db.WithContext(ctx).Where("name = ?", name).Take(&acct).Error; err != nil {
		return nil, dberr.MapGormErrorToDomain(err)
	}
	return mapModelToDTO(&acct), nil
}

// List implements account.Repository.
func (r *repository) List(ctx context.Context) ([]*dto.AccountRead, error) {
	var accts []Account
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&accts).Error; err != nil {
		return nil, dberr.MapGormErrorToDomain(err)
	}
	result := make([]*dto.AccountRead, 0, len(accts))
	for i := range accts {
		result = append(result, mapModelToDTO(&accts[i]))
	}
	return result, nil
}

// Delete implements account.Repository.
func (r *repository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Account{})
	if result.Error != nil {
		return dberr.MapGormErrorToDomain(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Count implements account.Repository.
func (r *repository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&Account{}).Count(&n).Error; err != nil {
		return 0, dberr.MapGormErrorToDomain(err)
	}
	return n, nil
}

// mapCreateDTOToModel maps AccountCreate DTO to GORM model.
func mapCreateDTOToModel(create dto.AccountCreate) Account {
	return Account{
		Name: create.Name,
		Type: create.Type.String(),
	}
}

// mapUpdateDTOToModel maps AccountUpdate DTO to a map for GORM Updates.
func mapUpdateDTOToModel(update dto.AccountUpdate) map[string]any {
	updates := make(map[string]any)
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Type != nil {
		updates["type"] = update.Type.String()
	}
	return updates
}

// mapModelToDTO maps a GORM model to a read-optimized DTO.
func mapModelToDTO(acct *Account) *dto.AccountRead {
	return &dto.AccountRead{
		ID:        acct.ID,
		Name:      acct.Name,
		Type:      domain.AccountType(acct.Type),
		CreatedAt: acct.CreatedAt.UTC(),
	}
}
