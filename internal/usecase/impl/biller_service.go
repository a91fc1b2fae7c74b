package impl

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"backoffice/internal/domain/entity"
	"backoffice/internal/domain/repository"
	"backoffice/internal/domain/service"
	"backoffice/internal/infra/tabular"
	"backoffice/internal/usecase"
)

var billerExportHeaders = []string{"Biller ID", "Company Name", "Email", "Phone", "Address", "Status"}

type billerService struct {
	base
}

// NewBillerService creates a new biller service instance
func NewBillerService(params ServiceParams) usecase.BillerUsecase {
	return &billerService{base: newBase(params)}
}

// Create stores a new biller under the next B- identifier of the UTC day
func (srv *billerService) Create(ctx context.Context, input *usecase.BillerInput) (*entity.Result, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	biller := &entity.Biller{}
	applyBillerInput(biller, input)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return srv.create(ctx, repoFactory, biller)
	})
	if err != nil {
		return nil, translate(err)
	}

	srv.getLogger(ctx).InfoContext(ctx, "Biller created", slog.String("biller_id", biller.ID))

	return entity.Succeeded(biller.ID, "Biller added"), nil
}

// create stores biller, allocating an identifier unless it carries one.
func (srv *billerService) create(ctx context.Context, repoFactory repository.RepositoryFactory, biller *entity.Biller) error {
	if biller.ID == "" {
		id, err := repoFactory.NewSequenceRepository().Next(ctx, srv.schemes.Biller.At(srv.clock.Now()))
		if err != nil {
			return err
		}
		biller.ID = id
	}

	return repoFactory.NewBillerRepository().Create(ctx, biller)
}

func applyBillerInput(biller *entity.Biller, input *usecase.BillerInput) {
	biller.CompanyName = strings.TrimSpace(input.CompanyName)
	biller.Email = strings.TrimSpace(input.Email)
	biller.Phone = strings.TrimSpace(input.Phone)
	biller.Address = strings.TrimSpace(input.Address)
	biller.Status = orDefault(input.Status, entity.StatusActive)
}

// Get returns the biller with all of its contacts
func (srv *billerService) Get(ctx context.Context, id string) (*entity.BillerDetail, error) {
	detail := &entity.BillerDetail{}
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		repo := repoFactory.NewBillerRepository()

		var err error
		if detail.Biller, err = repo.FindByID(ctx, id); err != nil {
			return err
		}
		detail.Contacts, err = repo.ListContacts(ctx, id)

		return err
	})
	if err != nil {
		return nil, translate(err)
	}

	return detail, nil
}

func (srv *billerService) List(ctx context.Context) ([]*entity.Biller, error) {
	var billers []*entity.Biller
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		billers, err = repoFactory.NewBillerRepository().List(ctx)

		return err
	})
	if err != nil {
		return nil, translate(err)
	}

	return billers, nil
}

func (srv *billerService) Update(ctx context.Context, id string, input *usecase.BillerInput) (*entity.Result, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var event *service.ChangeEvent
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		biller, err := repoFactory.NewBillerRepository().FindByID(ctx, id)
		if err != nil {
			return err
		}

		event, err = srv.update(ctx, repoFactory, biller, input)

		return err
	})
	if err != nil {
		return nil, translate(err)
	}

	srv.recorder.publish(ctx, event)

	return entity.Succeeded(id, "Biller updated"), nil
}

func (srv *billerService) update(ctx context.Context, repoFactory repository.RepositoryFactory, biller *entity.Biller, input *usecase.BillerInput) (*service.ChangeEvent, error) {
	before := biller.Snapshot()
	applyBillerInput(biller, input)
	if err := repoFactory.NewBillerRepository().Update(ctx, biller); err != nil {
		return nil, err
	}

	return srv.recorder.record(ctx, repoFactory, billerTracker,
		target(entity.NamespaceBillers, biller.ID), before, biller.Snapshot())
}

func (srv *billerService) AddContact(ctx context.Context, billerID string, input *usecase.ContactInput) (*entity.Result, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	contact := &entity.BillerContact{BillerID: billerID}
	applyContactInput(contact, input)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		repo := repoFactory.NewBillerRepository()
		if _, err := repo.FindByID(ctx, billerID); err != nil {
			return err
		}

		return repo.CreateContact(ctx, contact)
	})
	if err != nil {
		return nil, translate(err)
	}

	return entity.Succeeded(strconv.FormatUint(contact.ID, 10), "Contact added"), nil
}

// UpdateContacts applies every edit or none. Contact changes are logged
// under the biller with the contact as subject.
func (srv *billerService) UpdateContacts(ctx context.Context, billerID string, updates []*usecase.ContactUpdate) (*entity.Result, error) {
	for _, update := range updates {
		if err := validateInput(update); err != nil {
			return nil, err
		}
	}

	var events []*service.ChangeEvent
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		repo := repoFactory.NewBillerRepository()
		if _, err := repo.FindByID(ctx, billerID); err != nil {
			return err
		}

		for _, update := range updates {
			contact, err := repo.FindContactByID(ctx, update.ID)
			if err != nil {
				return err
			}
			if contact.BillerID != billerID {
				return repository.ErrContactNotFound
			}

			before := contact.Snapshot()
			applyContactInput(contact, &update.ContactInput)
			if err := repo.UpdateContact(ctx, contact); err != nil {
				return err
			}

			event, err := srv.recorder.record(ctx, repoFactory, contactTracker, changeTarget{
				namespace: entity.NamespaceBillers,
				entityID:  billerID,
				subjectID: strconv.FormatUint(contact.ID, 10),
			}, before, contact.Snapshot())
			if err != nil {
				return err
			}
			events = append(events, event)
		}

		return nil
	})
	if err != nil {
		return nil, translate(err)
	}

	srv.recorder.publish(ctx, events...)

	return entity.Succeeded(billerID, "Contacts updated"), nil
}

func applyContactInput(contact *entity.BillerContact, input *usecase.ContactInput) {
	contact.Name = strings.TrimSpace(input.Name)
	contact.Mobile = strings.TrimSpace(input.Mobile)
	contact.Status = orDefault(input.Status, entity.StatusActive)
	contact.Position = orDefault(input.Position, entity.ContactSecondary)
}

func (srv *billerService) Contacts(ctx context.Context, billerID string) ([]*entity.BillerContact, error) {
	var contacts []*entity.BillerContact
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		contacts, err = repoFactory.NewBillerRepository().ListContacts(ctx, billerID)

		return err
	})
	if err != nil {
		return nil, translate(err)
	}

	return contacts, nil
}

func (srv *billerService) Logs(ctx context.Context, id string) ([]*entity.ChangeLogEntry, error) {
	return srv.logs(ctx, entity.NamespaceBillers, id)
}

// Import overwrites billers whose Biller ID is already on file and adds the
// rest unless the company name and email pair is taken. Rows missing a
// company name, phone or address are skipped.
func (srv *billerService) Import(ctx context.Context, rows usecase.Rows) (*entity.ImportSummary, error) {
	return srv.runImport(ctx, entity.NamespaceBillers, rows, func(ctx context.Context, repoFactory repository.RepositoryFactory, row rowValues) (rowResult, error) {
		input := &usecase.BillerInput{
			CompanyName: row.get("Company Name", "company_name"),
			Email:       row.get("Email", "email"),
			Phone:       row.get("Phone", "phone"),
			Address:     row.get("Address", "address"),
			Status:      row.get("Status", "status"),
		}
		if input.CompanyName == "" || input.Phone == "" || input.Address == "" {
			return skipped("company_name, phone and address are required"), nil
		}

		repo := repoFactory.NewBillerRepository()
		id := importedID(srv.schemes.Biller, row.get("Biller ID", "biller_id", "id"))
		if id != "" {
			existing, err := repo.FindByID(ctx, id)
			if err == nil {
				event, err := srv.update(ctx, repoFactory, existing, input)
				if err != nil {
					return rowResult{}, err
				}

				return updated(event), nil
			}
			if !isNotFound(err) {
				return rowResult{}, err
			}
		}

		_, err := repo.FindByCompanyAndEmail(ctx, input.CompanyName, input.Email)
		if err == nil {
			return skipped("biller already exists"), nil
		}
		if !isNotFound(err) {
			return rowResult{}, err
		}

		biller := &entity.Biller{ID: id}
		applyBillerInput(biller, input)
		if err := srv.create(ctx, repoFactory, biller); err != nil {
			return rowResult{}, err
		}

		return added(), nil
	})
}

func (srv *billerService) Export(ctx context.Context, format string) (*usecase.Export, error) {
	billers, err := srv.List(ctx)
	if err != nil {
		return nil, err
	}

	table := tabular.NewTable(billerExportHeaders...)
	for _, b := range billers {
		table.Append(b.ID, b.CompanyName, b.Email, b.Phone, b.Address, b.Status)
	}

	return srv.exporter.render(ctx, entity.NamespaceBillers, format, table)
}

// orDefault returns the trimmed value, or fallback when it is blank.
func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}

	return fallback
}
