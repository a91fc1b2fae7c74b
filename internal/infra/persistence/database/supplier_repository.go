package database

import (
	"context"

	"backoffice/internal/domain/entity"
	domainerrors "backoffice/internal/domain/errors"
	"backoffice/internal/domain/repository"
	"backoffice/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// supplierRepository implements the repository.SupplierRepository interface.
type supplierRepository struct {
	db *gorm.DB
}

// NewSupplierRepository is the constructor for supplierRepository.
func NewSupplierRepository(db *gorm.DB) repository.SupplierRepository {
	return &supplierRepository{db: db}
}

// Create persists a new supplier.
func (repo *supplierRepository) Create(ctx context.Context, supplier *entity.Supplier) error {
	supplierM := fromSupplierDomain(supplier)
	if err := repo.db.WithContext(ctx).Create(supplierM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateSupplier
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create supplier")
	}

	supplier.CreatedAt = supplierM.CreatedAt
	supplier.UpdatedAt = supplierM.UpdatedAt

	return nil
}

// FindByID retrieves a supplier by its identifier.
func (repo *supplierRepository) FindByID(ctx context.Context, id string) (*entity.Supplier, error) {
	var supplierM model.SupplierModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&supplierM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSupplierNotFound
		}

		return nil, errors.Wrap(err, "failed to find supplier by ID")
	}

	return toSupplierDomain(&supplierM), nil
}

// Update overwrites the business fields of a supplier.
func (repo *supplierRepository) Update(ctx context.Context, supplier *entity.Supplier) error {
	result := repo.db.WithContext(ctx).
		Model(&model.SupplierModel{}).
		Where("id = ?", supplier.ID).
		Updates(map[string]any{
			"name":           supplier.Name,
			"contact_person": nullIfBlank(supplier.ContactPerson),
			"email":          nullIfBlank(supplier.Email),
			"phone":          supplier.Phone,
			"address":        nullIfBlank(supplier.Address),
			"notes":          nullIfBlank(supplier.Notes),
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update supplier")
	}
	if result.RowsAffected == 0 {
		return repository.ErrSupplierNotFound
	}

	return nil
}

// List retrieves every supplier ordered by name.
func (repo *supplierRepository) List(ctx context.Context) ([]*entity.Supplier, error) {
	var supplierModels []*model.SupplierModel
	if err := repo.db.WithContext(ctx).Order("name").Order("id").Find(&supplierModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list suppliers")
	}

	suppliers := make([]*entity.Supplier, 0, len(supplierModels))
	for _, supplierM := range supplierModels {
		suppliers = append(suppliers, toSupplierDomain(supplierM))
	}

	return suppliers, nil
}

// FindByNameAndEmail looks for a supplier with the same name whose email
// matches or is missing.
func (repo *supplierRepository) FindByNameAndEmail(ctx context.Context, name, email string) (*entity.Supplier, error) {
	var supplierM model.SupplierModel
	if err := repo.db.WithContext(ctx).
		Where("name = ?", name).
		Where("(email = ? OR email IS NULL)", nullIfBlank(email)).
		Order("id").
		First(&supplierM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSupplierNotFound
		}

		return nil, errors.Wrap(err, "failed to find supplier by name and email")
	}

	return toSupplierDomain(&supplierM), nil
}

func fromSupplierDomain(s *entity.Supplier) *model.SupplierModel {
	return &model.SupplierModel{
		ID:            s.ID,
		Name:          s.Name,
		ContactPerson: nullIfBlank(s.ContactPerson),
		Email:         nullIfBlank(s.Email),
		Phone:         s.Phone,
		Address:       nullIfBlank(s.Address),
		Notes:         nullIfBlank(s.Notes),
	}
}

func toSupplierDomain(m *model.SupplierModel) *entity.Supplier {
	return &entity.Supplier{
		ID:            m.ID,
		Name:          m.Name,
		ContactPerson: deref(m.ContactPerson),
		Email:         deref(m.Email),
		Phone:         m.Phone,
		Address:       deref(m.Address),
		Notes:         deref(m.Notes),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
