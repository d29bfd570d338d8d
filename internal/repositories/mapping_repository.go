package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/probationsupervision/appointments-api/internal/models"
	"go.uber.org/zap"
)

type mappingRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMappingRepository creates a new repository for the delius_outlook_mappings table
func NewMappingRepository(db *sql.DB, logger *zap.Logger) *mappingRepository {
	return &mappingRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert stores the Outlook event id for a supervision appointment.
//
// The URN is unique, so saving an already-mapped appointment replaces its Outlook id
// and bumps updated_at instead of adding a second row.
func (r *mappingRepository) Upsert(ctx context.Context, supervisionAppointmentURN, outlookID string) error {
	query := `
		INSERT INTO delius_outlook_mappings (supervision_appointment_urn, outlook_id)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE outlook_id = VALUES(outlook_id), updated_at = CURRENT_TIMESTAMP(6)
	`

	if _, err := r.db.ExecContext(ctx, query, supervisionAppointmentURN, outlookID); err != nil {
		r.logger.Error("failed to upsert delius outlook mapping",
			zap.Error(err),
			zap.String("supervision_appointment_urn", supervisionAppointmentURN),
		)
		return fmt.Errorf("failed to save mapping: %w", err)
	}

	return nil
}

// FindBySupervisionAppointmentURN returns the mapping for a URN, or nil if there is none
func (r *mappingRepository) FindBySupervisionAppointmentURN(ctx context.Context, supervisionAppointmentURN string) (*models.DeliusOutlookMapping, error) {
	query := `
		SELECT id, supervision_appointment_urn, outlook_id, created_at, updated_at
		FROM delius_outlook_mappings
		WHERE supervision_appointment_urn = ?
		LIMIT 1
	`

	return r.findOne(ctx, query, supervisionAppointmentURN)
}

// FindByOutlookID returns the mapping for an Outlook event id, or nil if there is none
func (r *mappingRepository) FindByOutlookID(ctx context.Context, outlookID string) (*models.DeliusOutlookMapping, error) {
	query := `
		SELECT id, supervision_appointment_urn, outlook_id, created_at, updated_at
		FROM delius_outlook_mappings
		WHERE outlook_id = ?
		ORDER BY updated_at DESC
		LIMIT 1
	`

	return r.findOne(ctx, query, outlookID)
}

func (r *mappingRepository) findOne(ctx context.Context, query string, arg string) (*models.DeliusOutlookMapping, error) {
	var m models.DeliusOutlookMapping
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&m.ID,
		&m.SupervisionAppointmentURN,
		&m.OutlookID,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("failed to query delius outlook mapping", zap.Error(err))
		return nil, fmt.Errorf("failed to query mapping: %w", err)
	}

	return &m, nil
}
