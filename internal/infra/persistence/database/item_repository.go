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

// itemRow is an item joined with the name of its group.
type itemRow struct {
	model.ItemModel `gorm:"embedded"`
	GroupName       *string
}

// itemRepository implements the repository.ItemRepository interface.
type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository is the constructor for itemRepository.
func NewItemRepository(db *gorm.DB) repository.ItemRepository {
	return &itemRepository{db: db}
}

// ListGroups retrieves every item group ordered by code.
func (repo *itemRepository) ListGroups(ctx context.Context) ([]*entity.ItemGroup, error) {
	var groupModels []*model.ItemGroupModel
	if err := repo.db.WithContext(ctx).Order("id").Find(&groupModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list item groups")
	}

	groups := make([]*entity.ItemGroup, 0, len(groupModels))
	for _, groupM := range groupModels {
		groups = append(groups, &entity.ItemGroup{ID: groupM.ID, Name: groupM.Name})
	}

	return groups, nil
}

// FindGroupByID retrieves an item group by its code.
func (repo *itemRepository) FindGroupByID(ctx context.Context, id string) (*entity.ItemGroup, error) {
	var groupM model.ItemGroupModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&groupM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrItemGroupNotFound
		}

		return nil, errors.Wrap(err, "failed to find item group by ID")
	}

	return &entity.ItemGroup{ID: groupM.ID, Name: groupM.Name}, nil
}

// CreateGroup persists a new item group.
func (repo *itemRepository) CreateGroup(ctx context.Context, group *entity.ItemGroup) error {
	groupM := &model.ItemGroupModel{ID: group.ID, Name: group.Name}
	if err := repo.db.WithContext(ctx).Create(groupM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateItemGroup
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create item group")
	}

	return nil
}

// UpdateGroup renames an item group.
func (repo *itemRepository) UpdateGroup(ctx context.Context, group *entity.ItemGroup) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ItemGroupModel{}).
		Where("id = ?", group.ID).
		Update("name", group.Name)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update item group")
	}
	if result.RowsAffected == 0 {
		return repository.ErrItemGroupNotFound
	}

	return nil
}

// DeleteGroup removes an item group. Callers check for member items first.
func (repo *itemRepository) DeleteGroup(ctx context.Context, id string) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ItemGroupModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete item group")
	}
	if result.RowsAffected == 0 {
		return repository.ErrItemGroupNotFound
	}

	return nil
}

// CountItemsInGroup counts items of any status in a group.
func (repo *itemRepository) CountItemsInGroup(ctx context.Context, groupID string) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).
		Model(&model.ItemModel{}).
		Where("group_id = ?", groupID).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count items in group")
	}

	return count, nil
}

// Create persists a new item.
func (repo *itemRepository) Create(ctx context.Context, item *entity.Item) error {
	itemM := fromItemDomain(item)
	if err := repo.db.WithContext(ctx).Create(itemM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateItem
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrItemGroupNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create item")
	}

	item.CreatedAt = itemM.CreatedAt
	item.UpdatedAt = itemM.UpdatedAt

	return nil
}

// FindByID retrieves an item with its group name.
func (repo *itemRepository) FindByID(ctx context.Context, id string) (*entity.Item, error) {
	var rows []*itemRow
	if err := repo.joined(ctx).Where("items.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find item by ID")
	}
	if len(rows) == 0 {
		return nil, repository.ErrItemNotFound
	}

	return toItemDomain(rows[0]), nil
}

// Update overwrites the editable fields of an item.
func (repo *itemRepository) Update(ctx context.Context, item *entity.Item) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ItemModel{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{
			"name":          item.Name,
			"description":   item.Description,
			"unit_price":    item.UnitPrice,
			"stock":         item.Stock,
			"reorder_level": item.ReorderLevel,
			"barcode":       nullIfBlank(item.Barcode),
			"status":        item.Status,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update item")
	}
	if result.RowsAffected == 0 {
		return repository.ErrItemNotFound
	}

	return nil
}

// List retrieves items matching the filter ordered by id.
func (repo *itemRepository) List(ctx context.Context, filter entity.ItemFilter) ([]*entity.Item, error) {
	query := repo.joined(ctx)
	if filter.Search != "" {
		query = query.Where(likeAny("items.id", "items.name", "COALESCE(items.barcode, '')"),
			repeatArg(likeContains(filter.Search), 3)...)
	}
	if !matchesAll(filter.GroupID) {
		query = query.Where("items.group_id = ?", filter.GroupID)
	}
	if !matchesAll(filter.Status) {
		query = query.Where("items.status = ?", filter.Status)
	}

	var rows []*itemRow
	if err := query.Order("items.id").Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list items")
	}

	items := make([]*entity.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, toItemDomain(row))
	}

	return items, nil
}

// FindDuplicate looks for an item with the same group and name whose barcode
// matches or is missing.
func (repo *itemRepository) FindDuplicate(ctx context.Context, groupID, name, barcode string) (*entity.Item, error) {
	var itemM model.ItemModel
	if err := repo.db.WithContext(ctx).
		Where("group_id = ? AND name = ?", groupID, name).
		Where("(barcode = ? OR barcode IS NULL)", nullIfBlank(barcode)).
		Order("id").
		First(&itemM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find duplicate item")
	}

	return toItemDomain(&itemRow{ItemModel: itemM}), nil
}

func (repo *itemRepository) joined(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).
		Table("items").
		Select("items.*, item_groups.name AS group_name").
		Joins("LEFT JOIN item_groups ON item_groups.id = items.group_id")
}

func fromItemDomain(i *entity.Item) *model.ItemModel {
	return &model.ItemModel{
		ID:           i.ID,
		GroupID:      i.GroupID,
		Name:         i.Name,
		Description:  i.Description,
		UnitPrice:    i.UnitPrice,
		Stock:        i.Stock,
		ReorderLevel: i.ReorderLevel,
		Barcode:      nullIfBlank(i.Barcode),
		Status:       i.Status,
	}
}

func toItemDomain(row *itemRow) *entity.Item {
	return &entity.Item{
		ID:           row.ID,
		GroupID:      row.GroupID,
		GroupName:    deref(row.GroupName),
		Name:         row.Name,
		Description:  row.Description,
		UnitPrice:    row.UnitPrice,
		Stock:        row.Stock,
		ReorderLevel: row.ReorderLevel,
		Barcode:      deref(row.Barcode),
		Status:       row.Status,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
