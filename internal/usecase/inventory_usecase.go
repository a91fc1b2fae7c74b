package usecase

import (
	"context"

	"backoffice/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// ItemGroupInput carries an item group
type ItemGroupInput struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}

// ItemInput carries the editable fields of an item
type ItemInput struct {
	GroupID      string          `json:"group_id"` // Required on create, fixed afterwards
	Name         string          `json:"name" validate:"required"`
	Description  string          `json:"description"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Stock        int             `json:"stock" validate:"gte=0"`
	ReorderLevel int             `json:"reorder_level" validate:"gte=0"`
	Barcode      string          `json:"barcode"`
	Status       string          `json:"status" validate:"omitempty,oneof=Active Archived"`
}

// InventoryUsecase defines the item and item group use cases
type InventoryUsecase interface {
	ListGroups(ctx context.Context) ([]*entity.ItemGroup, error)
	CreateGroup(ctx context.Context, input *ItemGroupInput) (*entity.Result, error)
	UpdateGroup(ctx context.Context, id, name string) (*entity.Result, error)

	// DeleteGroup removes an empty group. Groups still holding items are kept.
	DeleteGroup(ctx context.Context, id string) (*entity.Result, error)

	List(ctx context.Context, filter entity.ItemFilter) ([]*entity.Item, error)
	Get(ctx context.Context, id string) (*entity.Item, error)

	// Create stores a new item under the next identifier of its group
	Create(ctx context.Context, input *ItemInput) (*entity.Result, error)

	Update(ctx context.Context, id string, input *ItemInput) (*entity.Result, error)

	// Archive hides an item from sale; items are never hard deleted
	Archive(ctx context.Context, id string) (*entity.Result, error)

	// NextID previews the identifier the next item of a group would get
	NextID(ctx context.Context, groupID string) (string, error)

	Logs(ctx context.Context, id string) ([]*entity.ChangeLogEntry, error)
	GroupLogs(ctx context.Context, id string) ([]*entity.ChangeLogEntry, error)
	Import(ctx context.Context, rows Rows) (*entity.ImportSummary, error)
	Export(ctx context.Context, format string) (*Export, error)
}
