package postgres

import (
	"context"
	"time"

	"cargomatch/internal/domain/entity"
	domainerrors "cargomatch/internal/domain/errors"
	"cargomatch/internal/domain/repository"
	"cargomatch/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// bookingRepository implements the repository.BookingRepository interface.
type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository is the constructor for bookingRepository.
func NewBookingRepository(db *gorm.DB) repository.BookingRepository {
	return &bookingRepository{
		db: db,
	}
}

// Create persists a new booking.
func (repo *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	bookingM := fromBookingDomain(booking)

	if err := repo.db.WithContext(ctx).Omit("Container").Create(bookingM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrContainerNotFound
		}
		if isUniqueConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "booking number collision")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create booking")
	}

	booking.ID = bookingM.ID
	booking.CreatedAt = bookingM.CreatedAt
	booking.UpdatedAt = bookingM.UpdatedAt

	return nil
}

// FindByID retrieves a booking with its container.
func (repo *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	var bookingM model.BookingModel

	if err := repo.db.WithContext(ctx).
		Preload("Container").
		Preload("Container.ContainerType").
		Where("id = ?", id).
		First(&bookingM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBookingNotFound
		}

		return nil, errors.Wrap(err, "failed to find booking")
	}

	return toBookingDomain(&bookingM), nil
}

// List returns a page of bookings matching the filter, newest first.
func (repo *bookingRepository) List(ctx context.Context, filter repository.BookingFilter) ([]*entity.Booking, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.BookingModel{})
	if filter.TraderID != nil {
		query = query.Where("trader_id = ?", *filter.TraderID)
	}
	if filter.LSPID != nil {
		query = query.Where("lsp_id = ?", *filter.LSPID)
	}
	if filter.ContainerID != nil {
		query = query.Where("container_id = ?", *filter.ContainerID)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", statusStrings(filter.Statuses))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count bookings")
	}

	page := filter.Page.Normalize()
	var bookingModels []*model.BookingModel
	if err := query.
		Preload("Container").
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&bookingModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list bookings")
	}

	return toBookingDomains(bookingModels), total, nil
}

// Approve moves a pending booking to approved.
func (repo *bookingRepository) Approve(ctx context.Context, id uuid.UUID, notes string, at time.Time) error {
	updates := map[string]any{
		"status":      string(entity.BookingStatusApproved),
		"approved_at": at,
	}
	if notes != "" {
		updates["notes"] = notes
	}

	return repo.transition(ctx, id, entity.PendingBookingStatuses, updates, "approve")
}

// Reject moves a pending booking to rejected and stores the reason as its notes.
func (repo *bookingRepository) Reject(ctx context.Context, id uuid.UUID, reason string) error {
	updates := map[string]any{
		"status": string(entity.BookingStatusRejected),
		"notes":  reason,
	}

	return repo.transition(ctx, id, entity.PendingBookingStatuses, updates, "reject")
}

// Cancel moves a pending booking to cancelled.
func (repo *bookingRepository) Cancel(ctx context.Context, id uuid.UUID, at time.Time) error {
	updates := map[string]any{
		"status":       string(entity.BookingStatusCancelled),
		"cancelled_at": at,
	}

	return repo.transition(ctx, id, entity.PendingBookingStatuses, updates, "cancel")
}

// Close moves a booking from the status the caller observed to closed. The
// status and closed_at IS NULL guards make a second close of the same
// booking lose, whichever path runs it.
func (repo *bookingRepository) Close(ctx context.Context, id uuid.UUID, from entity.BookingStatus, closedBy string, at time.Time) error {
	if from == entity.BookingStatusClosed {
		return repository.ErrStatusConflict
	}

	result := repo.db.WithContext(ctx).
		Model(&model.BookingModel{}).
		Where("id = ? AND status = ? AND closed_at IS NULL", id, string(from)).
		Updates(map[string]any{
			"status":    string(entity.BookingStatusClosed),
			"closed_at": at,
			"closed_by": closedBy,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to close booking")
	}
	if result.RowsAffected == 0 {
		return repo.missingOrConflict(ctx, id)
	}

	return nil
}

func (repo *bookingRepository) transition(ctx context.Context, id uuid.UUID, from []entity.BookingStatus, updates map[string]any, action string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.BookingModel{}).
		Where("id = ? AND status IN ?", id, statusStrings(from)).
		Updates(updates)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to "+action+" booking")
	}
	if result.RowsAffected == 0 {
		return repo.missingOrConflict(ctx, id)
	}

	return nil
}

func (repo *bookingRepository) missingOrConflict(ctx context.Context, id uuid.UUID) error {
	var count int64
	if err := repo.db.WithContext(ctx).
		Model(&model.BookingModel{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return errors.Wrap(err, "failed to check booking existence")
	}
	if count == 0 {
		return repository.ErrBookingNotFound
	}

	return repository.ErrStatusConflict
}

// FindDueForClosure returns approved, unclosed bookings whose container departs on departureDay.
func (repo *bookingRepository) FindDueForClosure(ctx context.Context, departureDay time.Time) ([]*entity.Booking, error) {
	var bookingModels []*model.BookingModel

	if err := repo.db.WithContext(ctx).
		Joins("Container").
		Where("bookings.status = ? AND bookings.closed_at IS NULL", string(entity.BookingStatusApproved)).
		Where(`"Container".departure_date = ?`, departureDay.Format(time.DateOnly)).
		Order("bookings.created_at ASC").
		Find(&bookingModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find bookings due for closure")
	}

	return toBookingDomains(bookingModels), nil
}

// CountByStatus counts bookings grouped by status.
func (repo *bookingRepository) CountByStatus(ctx context.Context) (map[entity.BookingStatus]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	if err := repo.db.WithContext(ctx).
		Model(&model.BookingModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count bookings by status")
	}

	counts := make(map[entity.BookingStatus]int64, len(rows))
	for _, row := range rows {
		counts[entity.BookingStatus(row.Status)] = row.Count
	}

	return counts, nil
}

// CountByContainer counts bookings of a container in the given statuses. No statuses counts all.
func (repo *bookingRepository) CountByContainer(ctx context.Context, containerID uuid.UUID, statuses []entity.BookingStatus) (int64, error) {
	query := repo.db.WithContext(ctx).
		Model(&model.BookingModel{}).
		Where("container_id = ?", containerID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statusStrings(statuses))
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count bookings of container")
	}

	return count, nil
}

func statusStrings(statuses []entity.BookingStatus) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}

	return out
}

// --- Mapper Functions ---

func toBookingDomains(bookingModels []*model.BookingModel) []*entity.Booking {
	bookings := make([]*entity.Booking, 0, len(bookingModels))
	for _, bookingM := range bookingModels {
		bookings = append(bookings, toBookingDomain(bookingM))
	}

	return bookings
}

func toBookingDomain(data *model.BookingModel) *entity.Booking {
	if data == nil {
		return nil
	}

	return &entity.Booking{
		ID:             data.ID,
		BookingNumber:  data.BookingNumber,
		ContainerID:    data.ContainerID,
		TraderID:       data.TraderID,
		LSPID:          data.LSPID,
		CargoDetails:   data.CargoDetails.Data(),
		CargoType:      data.CargoType,
		VolumeCBM:      data.VolumeCBM,
		WeightKg:       data.WeightKg,
		TotalPrice:     data.TotalPrice,
		Currency:       data.Currency,
		Status:         entity.BookingStatus(data.Status),
		IsAutoApproved: data.IsAutoApproved,
		Notes:          data.Notes,
		NoteLinks:      entity.ExtractNoteLinks(data.Notes),
		Documents:      []entity.DocumentRef(data.Documents),
		ApprovedAt:     data.ApprovedAt,
		ClosedAt:       data.ClosedAt,
		ClosedBy:       data.ClosedBy,
		CancelledAt:    data.CancelledAt,
		Container:      toContainerDomain(data.Container),
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

func fromBookingDomain(data *entity.Booking) *model.BookingModel {
	if data == nil {
		return nil
	}

	return &model.BookingModel{
		ID:             data.ID,
		BookingNumber:  data.BookingNumber,
		ContainerID:    data.ContainerID,
		TraderID:       data.TraderID,
		LSPID:          data.LSPID,
		CargoDetails:   datatypes.NewJSONType(data.CargoDetails),
		CargoType:      data.CargoType,
		VolumeCBM:      data.VolumeCBM,
		WeightKg:       data.WeightKg,
		TotalPrice:     data.TotalPrice,
		Currency:       data.Currency,
		Status:         string(data.Status),
		IsAutoApproved: data.IsAutoApproved,
		Notes:          data.Notes,
		Documents:      datatypes.JSONSlice[entity.DocumentRef](data.Documents),
		ApprovedAt:     data.ApprovedAt,
		ClosedAt:       data.ClosedAt,
		ClosedBy:       data.ClosedBy,
		CancelledAt:    data.CancelledAt,
	}
}
