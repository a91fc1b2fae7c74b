package repository

import (
	"context"

	"backoffice/internal/domain/entity"
	"backoffice/internal/errors"
)

var (
	// ErrItemNotFound is returned when an item is not found.
	ErrItemNotFound = errors.New("item not found")
	// ErrDuplicateItem is returned when an item id is already taken.
	ErrDuplicateItem = errors.New("item already exists")
	// ErrItemGroupNotFound is returned when an item group is not found.
	ErrItemGroupNotFound = errors.New("item group not found")
	// ErrDuplicateItemGroup is returned when a group code is already taken.
	ErrDuplicateItemGroup = errors.New("item group already exists")
)

// ItemRepository defines persistence of items and item groups.
type ItemRepository interface {
	ListGroups(ctx context.Context) ([]*entity.ItemGroup, error)
	FindGroupByID(ctx context.Context, id string) (*entity.ItemGroup, error)
	CreateGroup(ctx context.Context, group *entity.ItemGroup) error
	UpdateGroup(ctx context.Context, group *entity.ItemGroup) error
	DeleteGroup(ctx context.Context, id string) error
	CountItemsInGroup(ctx context.Context, groupID string) (int64, error)

	Create(ctx context.Context, item *entity.Item) error
	FindByID(ctx context.Context, id string) (*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	// List returns items ordered by id with their group name filled in.
	List(ctx context.Context, filter entity.ItemFilter) ([]*entity.Item, error)
	// FindDuplicate looks an item up by group, name and barcode. An empty
	// barcode also matches items stored without one.
	FindDuplicate(ctx context.Context, groupID, name, barcode string) (*entity.Item, error)
}
