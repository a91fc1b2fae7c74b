package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"backoffice/internal/domain/entity"
	domainerrors "backoffice/internal/domain/errors"
	"backoffice/internal/domain/repository"
	"backoffice/internal/domain/sequence"
	"backoffice/internal/domain/service"
	"backoffice/internal/infra/tabular"
	"backoffice/internal/usecase"
)

var itemExportHeaders = []string{
	"Item ID", "Item Name", "Description", "Unit Price", "Current Stock", "Reorder Level", "Barcode", "Item Group", "Status",
}

type inventoryService struct {
	base
}

// NewInventoryService creates a new inventory service instance
func NewInventoryService(params ServiceParams) usecase.InventoryUsecase {
	return &inventoryService{base: newBase(params)}
}

func (srv *inventoryService) ListGroups(ctx context.Context) ([]*entity.ItemGroup, error) {
	var groups []*entity.ItemGroup
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		groups, err = repoFactory.NewItemRepository().ListGroups(ctx)

		return err
	})
	if err != nil {
		return nil, translate(err)
	}

	return groups, nil
}

func (srv *inventoryService) CreateGroup(ctx context.Context, input *usecase.ItemGroupInput) (*entity.Result, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if !sequence.ValidGroupCode(input.ID) {
		return nil, translate(sequence.ErrInvalidGroupCode)
	}

	group := &entity.ItemGroup{ID: input.ID, Name: strings.TrimSpace(input.Name)}
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.NewItemRepository().CreateGroup(ctx, group)
	})
	if err != nil {
		return nil, translate(err)
	}

	return entity.Succeeded(group.ID, "Group added"), nil
}

func (srv *inventoryService) UpdateGroup(ctx context.Context, id, name string) (*entity.Result, error) {
	if strings.TrimSpace(name) == "" {
		return nil, invalid("name is required")
	}

	var event *service.ChangeEvent
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		repo := repoFactory.NewItemRepository()

		group, err := repo.FindGroupByID(ctx, id)
		if err != nil {
			return err
		}

		before := group.Snapshot()
		group.Name = strings.TrimSpace(name)
		if err := repo.UpdateGroup(ctx, group); err != nil {
			return err
		}

		event, err = srv.recorder.record(ctx, repoFactory, itemGroupTracker,
			target(entity.NamespaceItemGroups, id), before, group.Snapshot())

		return err
	})
	if err != nil {
		return nil, translate(err)
	}

	srv.recorder.publish(ctx, event)

	return entity.Succeeded(id, "Group updated"), nil
}

func (srv *inventoryService) DeleteGroup(ctx context.Context, id string) (*entity.Result, error) {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		repo := repoFactory.NewItemRepository()

		count, err := repo.CountItemsInGroup(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return domainerrors.ErrGroupHasItems
		}

		return repo.DeleteGroup(ctx, id)
	})
	if err != nil {
		return nil, translate(err)
	}

	srv.getLogger(ctx).InfoContext(ctx, "Item group deleted", slog.String("group_id", id))

	return entity.Succeeded(id, "Group deleted"), nil
}

func (srv *inventoryService) List(ctx context.Context, filter entity.ItemFilter) ([]*entity.Item, error) {
	var items []*entity.Item
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		items, err = repoFactory.NewItemRepository().List(ctx, filter)

		return err
	})
	if err != nil {
		return nil, translate(err)
	}

	return items, nil
}

func (srv *inventoryService) Get(ctx context.Context, id string) (*entity.Item, error) {
	var item *entity.Item
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		item, err = repoFactory.NewItemRepository().FindByID(ctx, id)

		return err
	})
	if err != nil {
		return nil, translate(err)
	}

	return item, nil
}

// Create stores an active item under the next identifier of its group
func (srv *inventoryService) Create(ctx context.Context, input *usecase.ItemInput) (*entity.Result, error) {
	if err := validateItemInput(input); err != nil {
		return nil, err
	}

	item := &entity.Item{GroupID: input.GroupID}
	applyItemInput(item, input)
	item.Status = entity.ItemStatusActive

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.NewItemRepository().FindGroupByID(ctx, item.GroupID); err != nil {
			return err
		}

		return srv.create(ctx, repoFactory, item)
	})
	if err != nil {
		return nil, translate(err)
	}

	srv.getLogger(ctx).InfoContext(ctx, "Item created", slog.String("item_id", item.ID))

	return entity.Succeeded(item.ID, "Item added"), nil
}

// create stores item, allocating the next identifier of its group unless
// it carries one.
func (srv *inventoryService) create(ctx context.Context, repoFactory repository.RepositoryFactory, item *entity.Item) error {
	key, err := srv.schemes.Item.Group(item.GroupID)
	if err != nil {
		return err
	}

	if item.ID == "" {
		if item.ID, err = repoFactory.NewSequenceRepository().Next(ctx, key); err != nil {
			return err
		}
	}

	return repoFactory.NewItemRepository().Create(ctx, item)
}

func validateItemInput(input *usecase.ItemInput) error {
	if err := validateInput(input); err != nil {
		return err
	}
	if !sequence.ValidGroupCode(input.GroupID) {
		return translate(sequence.ErrInvalidGroupCode)
	}
	if input.UnitPrice.IsNegative() {
		return invalid("unit_price must be at least 0")
	}

	return nil
}

func applyItemInput(item *entity.Item, input *usecase.ItemInput) {
	item.Name = strings.TrimSpace(input.Name)
	item.Description = strings.TrimSpace(input.Description)
	item.UnitPrice = input.UnitPrice
	item.Stock = input.Stock
	item.ReorderLevel = input.ReorderLevel
	item.Barcode = strings.TrimSpace(input.Barcode)
	item.Status = orDefault(input.Status, item.Status)
}

// Update overwrites an item and logs every changed field. The group of an
// item never changes.
func (srv *inventoryService) Update(ctx context.Context, id string, input *usecase.ItemInput) (*entity.Result, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if input.UnitPrice.IsNegative() {
		return nil, invalid("unit_price must be at least 0")
	}

	return srv.modify(ctx, id, "Item updated", func(item *entity.Item) {
		applyItemInput(item, input)
	})
}

// Archive sets the item status to Archived
func (srv *inventoryService) Archive(ctx context.Context, id string) (*entity.Result, error) {
	return srv.modify(ctx, id, "Item archived", func(item *entity.Item) {
		item.Status = entity.ItemStatusArchived
	})
}

func (srv *inventoryService) modify(ctx context.Context, id, message string, apply func(item *entity.Item)) (*entity.Result, error) {
	var event *service.ChangeEvent
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		item, err := repoFactory.NewItemRepository().FindByID(ctx, id)
		if err != nil {
			return err
		}

		event, err = srv.update(ctx, repoFactory, item, apply)

		return err
	})
	if err != nil {
		return nil, translate(err)
	}

	srv.recorder.publish(ctx, event)

	return entity.Succeeded(id, message), nil
}

func (srv *inventoryService) update(ctx context.Context, repoFactory repository.RepositoryFactory, item *entity.Item, apply func(item *entity.Item)) (*service.ChangeEvent, error) {
	before := item.Snapshot()
	apply(item)
	if err := repoFactory.NewItemRepository().Update(ctx, item); err != nil {
		return nil, err
	}

	return srv.recorder.record(ctx, repoFactory, itemTracker,
		target(entity.NamespaceItems, item.ID), before, item.Snapshot())
}

// NextID previews the next identifier of a group without reserving it
func (srv *inventoryService) NextID(ctx context.Context, groupID string) (string, error) {
	key, err := srv.schemes.Item.Group(groupID)
	if err != nil {
		return "", translate(err)
	}

	var id string
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		id, err = repoFactory.NewSequenceRepository().Peek(ctx, key)

		return err
	})
	if err != nil {
		return "", translate(err)
	}

	return id, nil
}

func (srv *inventoryService) Logs(ctx context.Context, id string) ([]*entity.ChangeLogEntry, error) {
	return srv.logs(ctx, entity.NamespaceItems, id)
}

func (srv *inventoryService) GroupLogs(ctx context.Context, id string) ([]*entity.ChangeLogEntry, error) {
	return srv.logs(ctx, entity.NamespaceItemGroups, id)
}

// Import overwrites items whose Item ID is already on file and adds the rest
// unless they are known by group, name and barcode. An Item ID outside the
// row's group is ignored. Unknown groups are created on the fly. Rows with
// a missing or malformed number fail.
func (srv *inventoryService) Import(ctx context.Context, rows usecase.Rows) (*entity.ImportSummary, error) {
	return srv.runImport(ctx, entity.NamespaceItems, rows, func(ctx context.Context, repoFactory repository.RepositoryFactory, row rowValues) (rowResult, error) {
		groupID, groupName := importGroup(row)
		name := row.get("Item Name", "name")
		if groupID == "" || name == "" {
			return rowResult{}, rejectRow("item group and item name are required")
		}
		if !sequence.ValidGroupCode(groupID) {
			return rowResult{}, rejectRow(fmt.Sprintf("item group %q must be exactly two characters", groupID))
		}

		for _, header := range []string{"Unit Price", "Current Stock", "Reorder Level"} {
			if row.get(header) == "" {
				return rowResult{}, rejectRow(strings.ToLower(header) + " is required")
			}
		}
		price, err := row.decimalValue("unit_price", "Unit Price")
		if err != nil {
			return rowResult{}, err
		}
		stock, err := row.intValue("current_stock", "Current Stock")
		if err != nil {
			return rowResult{}, err
		}
		reorder, err := row.intValue("reorder_level", "Reorder Level")
		if err != nil {
			return rowResult{}, err
		}
		if price.IsNegative() || stock < 0 || reorder < 0 {
			return rowResult{}, rejectRow("unit price, stock and reorder level must not be negative")
		}

		repo := repoFactory.NewItemRepository()
		if _, err := repo.FindGroupByID(ctx, groupID); err != nil {
			if !isNotFound(err) {
				return rowResult{}, err
			}
			if err := repo.CreateGroup(ctx, &entity.ItemGroup{ID: groupID, Name: groupName}); err != nil {
				return rowResult{}, err
			}
		}

		barcode := row.get("Barcode", "barcode")
		description := row.get("Description", "description")
		status := row.get("Status", "status")

		id := importedID(srv.schemes.Item, row.get("Item ID", "item_id", "id"))
		if !strings.HasPrefix(id, groupID) {
			id = ""
		}
		if id != "" {
			existing, err := repo.FindByID(ctx, id)
			if err == nil {
				event, err := srv.update(ctx, repoFactory, existing, func(item *entity.Item) {
					item.Name = name
					item.Description = description
					item.UnitPrice = *price
					item.Stock = stock
					item.ReorderLevel = reorder
					item.Barcode = barcode
					item.Status = orDefault(status, item.Status)
				})
				if err != nil {
					return rowResult{}, err
				}

				return updated(event), nil
			}
			if !isNotFound(err) {
				return rowResult{}, err
			}
		}

		if _, err := repo.FindDuplicate(ctx, groupID, name, barcode); err == nil {
			return skipped("item already exists"), nil
		} else if !isNotFound(err) {
			return rowResult{}, err
		}

		item := &entity.Item{
			ID:           id,
			GroupID:      groupID,
			Name:         name,
			Description:  description,
			UnitPrice:    *price,
			Stock:        stock,
			ReorderLevel: reorder,
			Barcode:      barcode,
			Status:       orDefault(status, entity.ItemStatusActive),
		}
		if err := srv.create(ctx, repoFactory, item); err != nil {
			return rowResult{}, err
		}

		return added(), nil
	})
}

// importGroup reads the group of an import row, either from an "Item Group
// ID" column or from an exported "Item Group" column shaped "Name (ID)".
func importGroup(row rowValues) (id, name string) {
	if id = row.get("Item Group ID", "group_id"); id != "" {
		return id, entity.UnnamedGroup
	}

	label := row.get("Item Group")
	open := strings.LastIndex(label, "(")
	if open < 0 || !strings.HasSuffix(label, ")") {
		return label, entity.UnnamedGroup
	}

	id = strings.TrimSpace(label[open+1 : len(label)-1])
	name = strings.TrimSpace(label[:open])
	if name == "" {
		name = entity.UnnamedGroup
	}

	return id, name
}

func (srv *inventoryService) Export(ctx context.Context, format string) (*usecase.Export, error) {
	items, err := srv.List(ctx, entity.ItemFilter{})
	if err != nil {
		return nil, err
	}

	table := tabular.NewTable(itemExportHeaders...)
	for _, i := range items {
		table.Append(
			i.ID, i.Name, i.Description, i.UnitPrice.String(),
			fmt.Sprint(i.Stock), fmt.Sprint(i.ReorderLevel), i.Barcode,
			fmt.Sprintf("%s (%s)", i.GroupName, i.GroupID), i.Status,
		)
	}

	return srv.exporter.render(ctx, entity.NamespaceItems, format, table)
}
