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

	"github.com/shopspring/decimal"
)

const (
	defaultCustomerType   = "Regular"
	defaultCustomerStatus = "Active"
)

var customerExportHeaders = []string{
	"Customer ID", "First Name", "Last Name", "Phone", "Email", "Address", "Type", "Status", "Date Joined",
}

type customerService struct {
	base
}

// NewCustomerService creates a new customer service instance
func NewCustomerService(params ServiceParams) usecase.CustomerUsecase {
	return &customerService{base: newBase(params)}
}

// Create stores a new customer under the next C- identifier of today
func (srv *customerService) Create(ctx context.Context, input *usecase.CustomerInput) (*entity.Result, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	joined, err := parseDate("date_joined", input.DateJoined)
	if err != nil {
		return nil, err
	}
	if joined.IsZero() {
		joined = srv.today()
	}

	customer := &entity.Customer{DateJoined: joined}
	applyCustomerInput(customer, input)

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return srv.create(ctx, repoFactory, customer)
	})
	if err != nil {
		return nil, translate(err)
	}

	srv.getLogger(ctx).InfoContext(ctx, "Customer created", slog.String("customer_id", customer.ID))

	return entity.Succeeded(customer.ID, "Customer added"), nil
}

// create stores customer, allocating an identifier unless it carries one.
func (srv *customerService) create(ctx context.Context, repoFactory repository.RepositoryFactory, customer *entity.Customer) error {
	if customer.ID == "" {
		id, err := repoFactory.NewSequenceRepository().Next(ctx, srv.schemes.Customer.At(srv.clock.Now()))
		if err != nil {
			return err
		}
		customer.ID = id
	}

	return repoFactory.NewCustomerRepository().Create(ctx, customer)
}

// Update overwrites a customer and logs every changed field
func (srv *customerService) Update(ctx context.Context, id string, input *usecase.CustomerInput) (*entity.Result, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var event *service.ChangeEvent
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		customer, err := repoFactory.NewCustomerRepository().FindByID(ctx, id)
		if err != nil {
			return err
		}

		event, err = srv.update(ctx, repoFactory, customer, input)

		return err
	})
	if err != nil {
		return nil, translate(err)
	}

	srv.recorder.publish(ctx, event)

	return entity.Succeeded(id, "Customer updated"), nil
}

func (srv *customerService) update(ctx context.Context, repoFactory repository.RepositoryFactory, customer *entity.Customer, input *usecase.CustomerInput) (*service.ChangeEvent, error) {
	before := customer.Snapshot()
	applyCustomerInput(customer, input)
	if err := repoFactory.NewCustomerRepository().Update(ctx, customer); err != nil {
		return nil, err
	}

	return srv.recorder.record(ctx, repoFactory, customerTracker,
		target(entity.NamespaceCustomers, customer.ID), before, customer.Snapshot())
}

func applyCustomerInput(customer *entity.Customer, input *usecase.CustomerInput) {
	customer.FirstName = strings.TrimSpace(input.FirstName)
	customer.LastName = strings.TrimSpace(input.LastName)
	customer.Phone = strings.TrimSpace(input.Phone)
	customer.Email = strings.TrimSpace(input.Email)
	customer.Address = strings.TrimSpace(input.Address)
	customer.Type = strings.TrimSpace(input.Type)
	customer.Status = strings.TrimSpace(input.Status)
}

func (srv *customerService) Get(ctx context.Context, id string) (*entity.Customer, error) {
	var customer *entity.Customer
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		customer, err = repoFactory.NewCustomerRepository().FindByID(ctx, id)

		return err
	})
	if err != nil {
		return nil, translate(err)
	}

	return customer, nil
}

func (srv *customerService) List(ctx context.Context, filter entity.CustomerFilter) ([]*entity.Customer, error) {
	var customers []*entity.Customer
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		customers, err = repoFactory.NewCustomerRepository().List(ctx, filter)

		return err
	})
	if err != nil {
		return nil, translate(err)
	}

	return customers, nil
}

func (srv *customerService) Logs(ctx context.Context, id string) ([]*entity.ChangeLogEntry, error) {
	return srv.logs(ctx, entity.NamespaceCustomers, id)
}

// PointsEquivalent divides the value of everything the customer earned by
// the points earned. Customers without earnings get the default rate.
func (srv *customerService) PointsEquivalent(ctx context.Context, id string) (*entity.PointsEquivalent, error) {
	var totals *entity.EarnedTotals
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.NewCustomerRepository().FindByID(ctx, id); err != nil {
			return err
		}

		var err error
		totals, err = repoFactory.NewLedgerRepository().EarnedTotals(ctx, id)

		return err
	})
	if err != nil {
		return nil, translate(err)
	}

	result := &entity.PointsEquivalent{CustomerID: id, Rate: entity.DefaultPointsRate}
	if totals.Points != 0 && !totals.Value.IsZero() {
		result.Rate = totals.Value.Div(decimal.NewFromInt(totals.Points)).InexactFloat64()
	}

	return result, nil
}

// Import overwrites customers whose Customer ID is already on file and adds
// the rest unless first name, last name and phone match a known customer.
// Rows without a well-formed id get a new one.
func (srv *customerService) Import(ctx context.Context, rows usecase.Rows) (*entity.ImportSummary, error) {
	return srv.runImport(ctx, entity.NamespaceCustomers, rows, func(ctx context.Context, repoFactory repository.RepositoryFactory, row rowValues) (rowResult, error) {
		input := &usecase.CustomerInput{
			FirstName:  row.get("First Name", "first_name"),
			LastName:   row.get("Last Name", "last_name"),
			Phone:      row.get("Phone", "phone"),
			Email:      row.get("Email", "email"),
			Address:    row.get("Address", "address"),
			Type:       row.get("Type", "type"),
			Status:     row.get("Status", "status"),
			DateJoined: row.get("Date Joined", "date_joined"),
		}
		if input.Type == "" {
			input.Type = defaultCustomerType
		}
		if input.Status == "" {
			input.Status = defaultCustomerStatus
		}
		if err := validateInput(input); err != nil {
			return rowResult{}, err
		}

		joined, err := row.dateValue("date_joined", "Date Joined", "date_joined")
		if err != nil {
			return rowResult{}, err
		}
		if joined.IsZero() {
			joined = srv.today()
		}

		repo := repoFactory.NewCustomerRepository()
		id := importedID(srv.schemes.Customer, row.get("Customer ID", "customer_id", "id"))
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

		if _, err := repo.FindByNameAndPhone(ctx, input.FirstName, input.LastName, input.Phone); err == nil {
			return skipped("customer already exists"), nil
		} else if !isNotFound(err) {
			return rowResult{}, err
		}

		customer := &entity.Customer{ID: id, DateJoined: joined}
		applyCustomerInput(customer, input)
		if err := srv.create(ctx, repoFactory, customer); err != nil {
			return rowResult{}, err
		}

		return added(), nil
	})
}

func (srv *customerService) Export(ctx context.Context, format string) (*usecase.Export, error) {
	customers, err := srv.List(ctx, entity.CustomerFilter{})
	if err != nil {
		return nil, err
	}

	table := tabular.NewTable(customerExportHeaders...)
	for _, c := range customers {
		table.Append(c.ID, c.FirstName, c.LastName, c.Phone, c.Email, c.Address, c.Type, c.Status, c.DateJoined.String())
	}

	return srv.exporter.render(ctx, entity.NamespaceCustomers, format, table)
}
