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

// customerRepository implements the repository.CustomerRepository interface.
type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository is the constructor for customerRepository.
func NewCustomerRepository(db *gorm.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

// Create persists a new customer.
func (repo *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	customerM := fromCustomerDomain(customer)

	if err := repo.db.WithContext(ctx).Create(customerM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateCustomer
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create customer")
	}

	customer.CreatedAt = customerM.CreatedAt
	customer.UpdatedAt = customerM.UpdatedAt

	return nil
}

// FindByID retrieves a customer by its identifier.
func (repo *customerRepository) FindByID(ctx context.Context, id string) (*entity.Customer, error) {
	var customerM model.CustomerModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&customerM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCustomerNotFound
		}

		return nil, errors.Wrap(err, "failed to find customer by ID")
	}

	return toCustomerDomain(&customerM), nil
}

// Update overwrites the business fields of a customer.
func (repo *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CustomerModel{}).
		Where("id = ?", customer.ID).
		Updates(map[string]any{
			"first_name": customer.FirstName,
			"last_name":  customer.LastName,
			"phone":      customer.Phone,
			"email":      customer.Email,
			"address":    customer.Address,
			"type":       customer.Type,
			"status":     customer.Status,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update customer")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCustomerNotFound
	}

	return nil
}

// List retrieves customers matching the filter, newest first.
func (repo *customerRepository) List(ctx context.Context, filter entity.CustomerFilter) ([]*entity.Customer, error) {
	query := repo.db.WithContext(ctx).Model(&model.CustomerModel{})
	if !matchesAll(filter.Type) {
		query = query.Where("type = ?", filter.Type)
	}
	if !matchesAll(filter.Status) {
		query = query.Where("status = ?", filter.Status)
	}

	var customerModels []*model.CustomerModel
	if err := query.Order("created_at DESC").Order("id DESC").Find(&customerModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list customers")
	}

	customers := make([]*entity.Customer, 0, len(customerModels))
	for _, customerM := range customerModels {
		customers = append(customers, toCustomerDomain(customerM))
	}

	return customers, nil
}

// FindByNameAndPhone retrieves the first customer with the given name and phone.
func (repo *customerRepository) FindByNameAndPhone(ctx context.Context, firstName, lastName, phone string) (*entity.Customer, error) {
	var customerM model.CustomerModel
	if err := repo.db.WithContext(ctx).
		Where("first_name = ? AND last_name = ? AND phone = ?", firstName, lastName, phone).
		Order("id").
		First(&customerM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCustomerNotFound
		}

		return nil, errors.Wrap(err, "failed to find customer by name and phone")
	}

	return toCustomerDomain(&customerM), nil
}

func fromCustomerDomain(c *entity.Customer) *model.CustomerModel {
	return &model.CustomerModel{
		ID:         c.ID,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		Phone:      c.Phone,
		Email:      c.Email,
		Address:    c.Address,
		Type:       c.Type,
		Status:     c.Status,
		DateJoined: c.DateJoined.String(),
	}
}

func toCustomerDomain(m *model.CustomerModel) *entity.Customer {
	return &entity.Customer{
		ID:         m.ID,
		FirstName:  m.FirstName,
		LastName:   m.LastName,
		Phone:      m.Phone,
		Email:      m.Email,
		Address:    m.Address,
		Type:       m.Type,
		Status:     m.Status,
		DateJoined: entity.Date(m.DateJoined),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
