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

// billerRepository implements the repository.BillerRepository interface.
type billerRepository struct {
	db *gorm.DB
}

// NewBillerRepository is the constructor for billerRepository.
func NewBillerRepository(db *gorm.DB) repository.BillerRepository {
	return &billerRepository{db: db}
}

// Create persists a new biller.
func (repo *billerRepository) Create(ctx context.Context, biller *entity.Biller) error {
	billerM := fromBillerDomain(biller)

	if err := repo.db.WithContext(ctx).Omit("Contacts").Create(billerM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateBiller
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create biller")
	}

	biller.CreatedAt = billerM.CreatedAt
	biller.UpdatedAt = billerM.UpdatedAt

	return nil
}

// FindByID retrieves a biller by its identifier.
func (repo *billerRepository) FindByID(ctx context.Context, id string) (*entity.Biller, error) {
	var billerM model.BillerModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&billerM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBillerNotFound
		}

		return nil, errors.Wrap(err, "failed to find biller by ID")
	}

	return toBillerDomain(&billerM), nil
}

// Update overwrites the business fields of a biller.
func (repo *billerRepository) Update(ctx context.Context, biller *entity.Biller) error {
	result := repo.db.WithContext(ctx).
		Model(&model.BillerModel{}).
		Where("id = ?", biller.ID).
		Updates(map[string]any{
			"company_name": biller.CompanyName,
			"email":        biller.Email,
			"phone":        biller.Phone,
			"address":      biller.Address,
			"status":       biller.Status,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update biller")
	}
	if result.RowsAffected == 0 {
		return repository.ErrBillerNotFound
	}

	return nil
}

// List retrieves every biller by company name, each with its primary contact.
func (repo *billerRepository) List(ctx context.Context) ([]*entity.Biller, error) {
	var billerModels []*model.BillerModel
	if err := repo.db.WithContext(ctx).
		Preload("Contacts", "position = ?", entity.ContactPrimary).
		Order("company_name").
		Find(&billerModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list billers")
	}

	billers := make([]*entity.Biller, 0, len(billerModels))
	for _, billerM := range billerModels {
		biller := toBillerDomain(billerM)
		if len(billerM.Contacts) > 0 {
			biller.PrimaryContactName = billerM.Contacts[0].Name
			biller.PrimaryContactMobile = billerM.Contacts[0].Mobile
		}
		billers = append(billers, biller)
	}

	return billers, nil
}

// FindByCompanyAndEmail retrieves a biller by company name and email.
func (repo *billerRepository) FindByCompanyAndEmail(ctx context.Context, companyName, email string) (*entity.Biller, error) {
	var billerM model.BillerModel
	if err := repo.db.WithContext(ctx).
		Where("company_name = ? AND email = ?", companyName, email).
		First(&billerM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBillerNotFound
		}

		return nil, errors.Wrap(err, "failed to find biller by company and email")
	}

	return toBillerDomain(&billerM), nil
}

// CreateContact persists a new contact for a biller.
func (repo *billerRepository) CreateContact(ctx context.Context, contact *entity.BillerContact) error {
	contactM := fromContactDomain(contact)

	if err := repo.db.WithContext(ctx).Create(contactM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrBillerNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create biller contact")
	}

	contact.ID = contactM.ID

	return nil
}

// FindContactByID retrieves a contact by its identifier.
func (repo *billerRepository) FindContactByID(ctx context.Context, id uint64) (*entity.BillerContact, error) {
	var contactM model.BillerContactModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&contactM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrContactNotFound
		}

		return nil, errors.Wrap(err, "failed to find biller contact by ID")
	}

	return toContactDomain(&contactM), nil
}

// UpdateContact overwrites a contact.
func (repo *billerRepository) UpdateContact(ctx context.Context, contact *entity.BillerContact) error {
	result := repo.db.WithContext(ctx).
		Model(&model.BillerContactModel{}).
		Where("id = ?", contact.ID).
		Updates(map[string]any{
			"name":     contact.Name,
			"mobile":   contact.Mobile,
			"status":   contact.Status,
			"position": contact.Position,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update biller contact")
	}
	if result.RowsAffected == 0 {
		return repository.ErrContactNotFound
	}

	return nil
}

// ListContacts retrieves the contacts of a biller, primary first.
func (repo *billerRepository) ListContacts(ctx context.Context, billerID string) ([]*entity.BillerContact, error) {
	var contactModels []*model.BillerContactModel
	if err := repo.db.WithContext(ctx).
		Where("biller_id = ?", billerID).
		Order("CASE WHEN position = 'Primary' THEN 0 ELSE 1 END").
		Order("id").
		Find(&contactModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list biller contacts")
	}

	contacts := make([]*entity.BillerContact, 0, len(contactModels))
	for _, contactM := range contactModels {
		contacts = append(contacts, toContactDomain(contactM))
	}

	return contacts, nil
}

func fromBillerDomain(b *entity.Biller) *model.BillerModel {
	return &model.BillerModel{
		ID:          b.ID,
		CompanyName: b.CompanyName,
		Email:       b.Email,
		Phone:       b.Phone,
		Address:     b.Address,
		Status:      b.Status,
	}
}

func toBillerDomain(m *model.BillerModel) *entity.Biller {
	return &entity.Biller{
		ID:          m.ID,
		CompanyName: m.CompanyName,
		Email:       m.Email,
		Phone:       m.Phone,
		Address:     m.Address,
		Status:      m.Status,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func fromContactDomain(c *entity.BillerContact) *model.BillerContactModel {
	return &model.BillerContactModel{
		ID:       c.ID,
		BillerID: c.BillerID,
		Name:     c.Name,
		Mobile:   c.Mobile,
		Status:   c.Status,
		Position: c.Position,
	}
}

func toContactDomain(m *model.BillerContactModel) *entity.BillerContact {
	return &entity.BillerContact{
		ID:       m.ID,
		BillerID: m.BillerID,
		Name:     m.Name,
		Mobile:   m.Mobile,
		Status:   m.Status,
		Position: m.Position,
	}
}
