package impl

import (
	"context"
	"log/slog"
	"strings"

	"backoffice/internal/domain/entity"
	"backoffice/internal/domain/repository"
	"backoffice/internal/domain/service"
	"backoffice/internal/infra/tabular"
	"backoffice/internal/usecase"
)

var supplierExportHeaders = []string{
	"Supplier ID", "Supplier Name", "Contact Person", "Email", "Phone Number", "Address", "Notes",
}

type supplierService struct {
	base
}

// NewSupplierService creates a new supplier service instance
func NewSupplierService(params ServiceParams) usecase.SupplierUsecase {
	return &supplierService{base: newBase(params)}
}

func (srv *supplierService) List(ctx context.Context) ([]*entity.Supplier, error) {
	var suppliers []*entity.Supplier
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		suppliers, err = repoFactory.NewSupplierRepository().List(ctx)

		return err
	})
	if err != nil {
		return nil, translate(err)
	}

	return suppliers, nil
}

func (srv *supplierService) Get(ctx context.Context, id string) (*entity.Supplier, error) {
	var supplier *entity.Supplier
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		supplier, err = repoFactory.NewSupplierRepository().FindByID(ctx, id)

		return err
	})
	if err != nil {
		return nil, translate(err)
	}

	return supplier, nil
}

// Create stores a new supplier under the next S- identifier of today
func (srv *supplierService) Create(ctx context.Context, input *usecase.SupplierInput) (*entity.Result, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	supplier := &entity.Supplier{}
	applySupplierInput(supplier, input)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return srv.create(ctx, repoFactory, supplier)
	})
	if err != nil {
		return nil, translate(err)
	}

	srv.getLogger(ctx).InfoContext(ctx, "Supplier created", slog.String("supplier_id", supplier.ID))

	return entity.Succeeded(supplier.ID, "Supplier added"), nil
}

// create stores supplier, allocating an identifier unless it carries one.
func (srv *supplierService) create(ctx context.Context, repoFactory repository.RepositoryFactory, supplier *entity.Supplier) error {
	if supplier.ID == "" {
		id, err := repoFactory.NewSequenceRepository().Next(ctx, srv.schemes.Supplier.At(srv.clock.Now()))
		if err != nil {
			return err
		}
		supplier.ID = id
	}

	return repoFactory.NewSupplierRepository().Create(ctx, supplier)
}

func applySupplierInput(supplier *entity.Supplier, input *usecase.SupplierInput) {
	supplier.Name = strings.TrimSpace(input.Name)
	supplier.ContactPerson = strings.TrimSpace(input.ContactPerson)
	supplier.Email = strings.TrimSpace(input.Email)
	supplier.Phone = strings.TrimSpace(input.Phone)
	supplier.Address = strings.TrimSpace(input.Address)
	supplier.Notes = strings.TrimSpace(input.Notes)
}

func (srv *supplierService) Update(ctx context.Context, id string, input *usecase.SupplierInput) (*entity.Result, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var event *service.ChangeEvent
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		supplier, err := repoFactory.NewSupplierRepository().FindByID(ctx, id)
		if err != nil {
			return err
		}

		event, err = srv.update(ctx, repoFactory, supplier, input)

		return err
	})
	if err != nil {
		return nil, translate(err)
	}

	srv.recorder.publish(ctx, event)

	return entity.Succeeded(id, "Supplier updated"), nil
}

func (srv *supplierService) update(ctx context.Context, repoFactory repository.RepositoryFactory, supplier *entity.Supplier, input *usecase.SupplierInput) (*service.ChangeEvent, error) {
	before := supplier.Snapshot()
	applySupplierInput(supplier, input)
	if err := repoFactory.NewSupplierRepository().Update(ctx, supplier); err != nil {
		return nil, err
	}

	return srv.recorder.record(ctx, repoFactory, supplierTracker,
		target(entity.NamespaceSuppliers, supplier.ID), before, supplier.Snapshot())
}

func (srv *supplierService) Logs(ctx context.Context, id string) ([]*entity.ChangeLogEntry, error) {
	return srv.logs(ctx, entity.NamespaceSuppliers, id)
}

// Import overwrites suppliers whose Supplier ID is already on file and adds
// the rest unless they are known by name and email
func (srv *supplierService) Import(ctx context.Context, rows usecase.Rows) (*entity.ImportSummary, error) {
	return srv.runImport(ctx, entity.NamespaceSuppliers, rows, func(ctx context.Context, repoFactory repository.RepositoryFactory, row rowValues) (rowResult, error) {
		input := &usecase.SupplierInput{
			Name:          row.get("Supplier Name", "name"),
			ContactPerson: row.get("Contact Person", "contact_person"),
			Email:         row.get("Email", "email"),
			Phone:         row.get("Phone Number", "Phone", "phone"),
			Address:       row.get("Address", "address"),
			Notes:         row.get("Notes", "notes"),
		}
		if err := validateInput(input); err != nil {
			return rowResult{}, err
		}

		repo := repoFactory.NewSupplierRepository()
		id := importedID(srv.schemes.Supplier, row.get("Supplier ID", "supplier_id", "id"))
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

		_, err := repo.FindByNameAndEmail(ctx, input.Name, input.Email)
		if err == nil {
			return skipped("supplier already exists"), nil
		}
		if !isNotFound(err) {
			return rowResult{}, err
		}

		supplier := &entity.Supplier{ID: id}
		applySupplierInput(supplier, input)
		if err := srv.create(ctx, repoFactory, supplier); err != nil {
			return rowResult{}, err
		}

		return added(), nil
	})
}

func (srv *supplierService) Export(ctx context.Context, format string) (*usecase.Export, error) {
	suppliers, err := srv.List(ctx)
	if err != nil {
		return nil, err
	}

	table := tabular.NewTable(supplierExportHeaders...)
	for _, s := range suppliers {
		table.Append(s.ID, s.Name, s.ContactPerson, s.Email, s.Phone, s.Address, s.Notes)
	}

	return srv.exporter.render(ctx, entity.NamespaceSuppliers, format, table)
}
