package impl

import (
	"context"
	"log/slog"

	deliverycontext "backoffice/internal/delivery/context"
	"backoffice/internal/domain/changelog"
	"backoffice/internal/domain/entity"
	"backoffice/internal/domain/repository"
	"backoffice/internal/domain/service"
)

// Tracked fields per kind of record. Generated keys and derived columns are
// never tracked.
var (
	customerTracker = changelog.NewTracker("customer",
		"first_name", "last_name", "email", "phone", "address", "type", "status")
	billerTracker = changelog.NewTracker("biller",
		"company_name", "email", "phone", "address", "status")
	contactTracker   = changelog.NewTracker("contact", "name", "mobile", "status", "position")
	itemGroupTracker = changelog.NewTracker("item_group", "name")
	itemTracker      = changelog.NewTracker("item",
		"name", "description", "unit_price", "stock", "reorder_level", "barcode", "status")
	supplierTracker = changelog.NewTracker("supplier",
		"name", "contact_person", "email", "phone", "address", "notes")
	promoTracker = changelog.NewTracker("promo",
		"start_date", "end_date", "max_redemptions", "note", "status")
	voucherTracker    = changelog.NewTracker("voucher", "refill", "start_date", "end_date", "status")
	rewardRuleTracker = changelog.NewTracker("reward_rule", "start_date", "end_date", "status", "note")
	ledgerTracker     = changelog.NewTracker("ledger_entry", "notes")
)

// changeRecorder writes change-log entries and announces them once committed.
type changeRecorder struct {
	clock     service.Clock
	publisher service.EventPublisher
	logger    *slog.Logger
}

// changeTarget names the record a diff belongs to.
type changeTarget struct {
	namespace string
	entityID  string // root entity the entries are listed under
	subjectID string // record that changed, the root itself unless it is a child
}

func target(namespace, id string) changeTarget {
	return changeTarget{namespace: namespace, entityID: id, subjectID: id}
}

// record diffs before and after and appends one entry per changed field
// through the transaction's repositories. It returns the event to publish
// after commit, nil when nothing changed.
func (r *changeRecorder) record(ctx context.Context, repoFactory repository.RepositoryFactory, tracker changelog.Tracker, at changeTarget, before, after map[string]any) (*service.ChangeEvent, error) {
	changes := tracker.Diff(before, after)
	if len(changes) == 0 {
		return nil, nil
	}

	now := r.clock.Now().UTC()
	entries := make([]*entity.ChangeLogEntry, 0, len(changes))
	fields := make([]service.FieldChange, 0, len(changes))
	for _, change := range changes {
		entries = append(entries, &entity.ChangeLogEntry{
			Namespace: at.namespace,
			EntityID:  at.entityID,
			Subject:   tracker.Subject,
			SubjectID: at.subjectID,
			Field:     change.Field,
			From:      change.From,
			To:        change.To,
			Timestamp: now,
		})
		fields = append(fields, service.FieldChange{Field: change.Field, From: change.From, To: change.To})
	}

	if err := repoFactory.NewChangeLogRepository().Append(ctx, entries); err != nil {
		return nil, err
	}

	return &service.ChangeEvent{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		Namespace: at.namespace,
		EntityID:  at.entityID,
		Subject:   tracker.Subject,
		SubjectID: at.subjectID,
		Changes:   fields,
		Timestamp: now,
	}, nil
}

// publish sends committed change events. Failures are logged; the change
// log in the store stays authoritative.
func (r *changeRecorder) publish(ctx context.Context, events ...*service.ChangeEvent) {
	if r.publisher == nil {
		return
	}

	logger := deliverycontext.GetLoggerOrDefault(ctx, r.logger)
	for _, event := range events {
		if event == nil {
			continue
		}
		if err := r.publisher.PublishChangeEvent(ctx, event); err != nil {
			logger.WarnContext(ctx, "Failed to publish change event",
				slog.String("namespace", event.Namespace),
				slog.String("entity_id", event.EntityID),
				slog.Any("error", err),
			)
		}
	}
}
