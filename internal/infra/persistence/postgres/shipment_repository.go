package postgres

import (
	"context"

	"cargomatch/internal/domain/entity"
	domainerrors "cargomatch/internal/domain/errors"
	"cargomatch/internal/domain/repository"
	"cargomatch/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// shipmentRepository implements the repository.ShipmentRepository interface.
type shipmentRepository struct {
	db *gorm.DB
}

// NewShipmentRepository is the constructor for shipmentRepository.
func NewShipmentRepository(db *gorm.DB) repository.ShipmentRepository {
	return &shipmentRepository{
		db: db,
	}
}

// Create persists a new shipment.
func (repo *shipmentRepository) Create(ctx context.Context, shipment *entity.Shipment) error {
	shipmentM := fromShipmentDomain(shipment)

	if err := repo.db.WithContext(ctx).Omit("Booking").Create(shipmentM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrShipmentExists
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrBookingNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create shipment")
	}

	shipment.ID = shipmentM.ID
	shipment.CreatedAt = shipmentM.CreatedAt
	shipment.UpdatedAt = shipmentM.UpdatedAt

	return nil
}

// FindByID retrieves a shipment with its booking.
func (repo *shipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Shipment, error) {
	return repo.findOne(ctx, "id = ?", id)
}

// FindByBookingID retrieves the shipment of a booking.
func (repo *shipmentRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Shipment, error) {
	return repo.findOne(ctx, "booking_id = ?", bookingID)
}

// FindByTrackingNumber retrieves a shipment by tracking number.
func (repo *shipmentRepository) FindByTrackingNumber(ctx context.Context, trackingNumber string) (*entity.Shipment, error) {
	return repo.findOne(ctx, "tracking_number = ?", trackingNumber)
}

func (repo *shipmentRepository) findOne(ctx context.Context, cond string, arg any) (*entity.Shipment, error) {
	var shipmentM model.ShipmentModel

	if err := repo.db.WithContext(ctx).
		Preload("Booking").
		Preload("Booking.Container").
		Where(cond, arg).
		First(&shipmentM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrShipmentNotFound
		}

		return nil, errors.Wrap(err, "failed to find shipment")
	}

	return toShipmentDomain(&shipmentM), nil
}

// List returns a page of shipments, newest first.
func (repo *shipmentRepository) List(ctx context.Context, filter repository.ShipmentFilter) ([]*entity.Shipment, int64, error) {
	query := repo.db.WithContext(ctx).
		Model(&model.ShipmentModel{}).
		Joins("Booking")
	if filter.LSPID != nil {
		query = query.Where(`"Booking".lsp_id = ?`, *filter.LSPID)
	}
	if filter.TraderID != nil {
		query = query.Where(`"Booking".trader_id = ?`, *filter.TraderID)
	}
	if filter.Status != nil {
		query = query.Where("shipments.status = ?", string(*filter.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count shipments")
	}

	page := filter.Page.Normalize()
	var shipmentModels []*model.ShipmentModel
	if err := query.
		Order("shipments.created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&shipmentModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list shipments")
	}

	shipments := make([]*entity.Shipment, 0, len(shipmentModels))
	for _, shipmentM := range shipmentModels {
		shipments = append(shipments, toShipmentDomain(shipmentM))
	}

	return shipments, total, nil
}

// UpdateStatus moves a shipment from one status to another.
func (repo *shipmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.ShipmentStatus, location string) error {
	updates := map[string]any{"status": string(to)}
	if location != "" {
		updates["current_location"] = location
	}

	result := repo.db.WithContext(ctx).
		Model(&model.ShipmentModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(updates)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update shipment status")
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := repo.db.WithContext(ctx).Model(&model.ShipmentModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return errors.Wrap(err, "failed to check shipment existence")
		}
		if count == 0 {
			return repository.ErrShipmentNotFound
		}

		return repository.ErrStatusConflict
	}

	return nil
}

// AppendHistory adds an entry to a shipment's status log.
func (repo *shipmentRepository) AppendHistory(ctx context.Context, entry *entity.ShipmentStatusHistory) error {
	historyM := &model.ShipmentStatusHistoryModel{
		ShipmentID: entry.ShipmentID,
		Status:     string(entry.Status),
		Location:   entry.Location,
		Notes:      entry.Notes,
		ChangedBy:  entry.ChangedBy,
		CreatedAt:  entry.CreatedAt,
	}

	if err := repo.db.WithContext(ctx).Create(historyM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrShipmentNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to append shipment history")
	}

	entry.ID = historyM.ID
	entry.CreatedAt = historyM.CreatedAt

	return nil
}

// ListHistory returns a shipment's status log oldest first.
func (repo *shipmentRepository) ListHistory(ctx context.Context, shipmentID uuid.UUID) ([]*entity.ShipmentStatusHistory, error) {
	var historyModels []*model.ShipmentStatusHistoryModel

	if err := repo.db.WithContext(ctx).
		Where("shipment_id = ?", shipmentID).
		Order("created_at ASC").
		Find(&historyModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list shipment history")
	}

	history := make([]*entity.ShipmentStatusHistory, 0, len(historyModels))
	for _, h := range historyModels {
		history = append(history, &entity.ShipmentStatusHistory{
			ID:         h.ID,
			ShipmentID: h.ShipmentID,
			Status:     entity.ShipmentStatus(h.Status),
			Location:   h.Location,
			Notes:      h.Notes,
			ChangedBy:  h.ChangedBy,
			CreatedAt:  h.CreatedAt,
		})
	}

	return history, nil
}

// CountActive counts shipments that are not closed.
func (repo *shipmentRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).
		Model(&model.ShipmentModel{}).
		Where("status <> ?", string(entity.ShipmentStatusClosed)).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count active shipments")
	}

	return count, nil
}

// --- Mapper Functions ---

func toShipmentDomain(data *model.ShipmentModel) *entity.Shipment {
	if data == nil {
		return nil
	}

	return &entity.Shipment{
		ID:               data.ID,
		BookingID:        data.BookingID,
		TrackingNumber:   data.TrackingNumber,
		Status:           entity.ShipmentStatus(data.Status),
		CurrentLocation:  data.CurrentLocation,
		EstimatedArrival: data.EstimatedArrival,
		Booking:          toBookingDomain(data.Booking),
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
}

func fromShipmentDomain(data *entity.Shipment) *model.ShipmentModel {
	if data == nil {
		return nil
	}

	return &model.ShipmentModel{
		ID:               data.ID,
		BookingID:        data.BookingID,
		TrackingNumber:   data.TrackingNumber,
		Status:           string(data.Status),
		CurrentLocation:  data.CurrentLocation,
		EstimatedArrival: data.EstimatedArrival,
	}
}
