package impl

import (
	"context"
	"testing"

	"cargomatch/internal/domain/entity"
	domainerrors "cargomatch/internal/domain/errors"
	"cargomatch/internal/domain/repository"
	mockRepo "cargomatch/internal/mocks/repository"
	mockService "cargomatch/internal/mocks/service"
	"cargomatch/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestComplaintService(t *testing.T) (usecase.ComplaintUsecase, *mockRepo.MockRepositoryFactory, *mockService.MockEventPublisher) {
	factory, txManager := newTestRepos(t)
	publisher := mockService.NewMockEventPublisher(t)

	svc := NewComplaintService(ComplaintServiceParams{
		TxManager:     txManager,
		ComplaintRepo: factory.Complaints,
		BookingRepo:   factory.Bookings,
		Publisher:     publisher,
		Logger:        newDiscardLogger(),
	})
	svc.(*complaintService).now = fixedClock

	return svc, factory, publisher
}

func statusPtr(s entity.ComplaintStatus) *entity.ComplaintStatus { return &s }

func TestComplaintService_FileComplaint_DerivesFromBooking(t *testing.T) {
	svc, repos, _ := createTestComplaintService(t)
	ctx := context.Background()
	booking := pendingBooking(uuid.New())

	repos.Bookings.EXPECT().FindByID(ctx, booking.ID).Return(booking, nil)
	repos.Complaints.EXPECT().
		Create(ctx, mock.MatchedBy(func(c *entity.Complaint) bool {
			return *c.LSPID == booking.LSPID &&
				*c.ContainerID == booking.ContainerID &&
				c.Status == entity.ComplaintStatusOpen &&
				c.Priority == entity.ComplaintPriorityMedium &&
				c.ComplaintNumber[:4] == "CMP-"
		})).
		Return(nil)

	_, err := svc.FileComplaint(ctx, booking.TraderID, &usecase.FileComplaintInput{
		BookingID:   &booking.ID,
		Subject:     "Damaged cargo",
		Description: "Two pallets arrived crushed",
	})
	require.NoError(t, err)
}

func TestComplaintService_FileComplaint_ForeignBooking(t *testing.T) {
	svc, repos, _ := createTestComplaintService(t)
	ctx := context.Background()
	booking := pendingBooking(uuid.New())

	repos.Bookings.EXPECT().FindByID(ctx, booking.ID).Return(booking, nil)

	_, err := svc.FileComplaint(ctx, uuid.New(), &usecase.FileComplaintInput{
		BookingID:   &booking.ID,
		Subject:     "s",
		Description: "d",
	})
	assert.ErrorIs(t, err, domainerrors.ErrBookingNotFound)
}

func TestComplaintService_UpdateComplaintByLSP(t *testing.T) {
	tests := []struct {
		name    string
		from    entity.ComplaintStatus
		to      entity.ComplaintStatus
		wantErr error
	}{
		{"open to in progress", entity.ComplaintStatusOpen, entity.ComplaintStatusInProgress, nil},
		{"in progress to resolved", entity.ComplaintStatusInProgress, entity.ComplaintStatusResolved, nil},
		{"lsp cannot close", entity.ComplaintStatusResolved, entity.ComplaintStatusClosed, domainerrors.ErrComplaintStatusConflict},
		{"lsp cannot reopen", entity.ComplaintStatusInProgress, entity.ComplaintStatusOpen, domainerrors.ErrComplaintStatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repos, publisher := createTestComplaintService(t)
			ctx := context.Background()
			lspID := uuid.New()
			complaint := &entity.Complaint{ID: uuid.New(), TraderID: uuid.New(), LSPID: &lspID, Status: tt.from}

			repos.Complaints.EXPECT().FindByID(ctx, complaint.ID).Return(complaint, nil)
			if tt.wantErr == nil {
				repos.Complaints.EXPECT().Update(ctx, mock.Anything, tt.from).Return(nil)
				repos.Notifications.EXPECT().Create(ctx, mock.Anything).Return(nil)
				publisher.EXPECT().PublishNotificationEvent(ctx, mock.Anything).Return(nil)
			}

			updated, err := svc.UpdateComplaintByLSP(ctx, lspID, complaint.ID, &usecase.UpdateComplaintInput{Status: statusPtr(tt.to)})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, updated.Status)
			if tt.to == entity.ComplaintStatusResolved {
				require.NotNil(t, updated.ResolvedAt)
				assert.Equal(t, fixedNow, *updated.ResolvedAt)
			}
		})
	}
}

func TestComplaintService_UpdateComplaintByLSP_OtherLSP(t *testing.T) {
	svc, repos, _ := createTestComplaintService(t)
	ctx := context.Background()
	owner := uuid.New()
	complaint := &entity.Complaint{ID: uuid.New(), LSPID: &owner, Status: entity.ComplaintStatusOpen}

	repos.Complaints.EXPECT().FindByID(ctx, complaint.ID).Return(complaint, nil)

	_, err := svc.UpdateComplaintByLSP(ctx, uuid.New(), complaint.ID, &usecase.UpdateComplaintInput{Status: statusPtr(entity.ComplaintStatusInProgress)})
	assert.ErrorIs(t, err, domainerrors.ErrComplaintNotFound)
}

func TestComplaintService_UpdateComplaintByAdmin(t *testing.T) {
	t.Run("closed is terminal", func(t *testing.T) {
		svc, repos, _ := createTestComplaintService(t)
		ctx := context.Background()
		complaint := &entity.Complaint{ID: uuid.New(), Status: entity.ComplaintStatusClosed}

		repos.Complaints.EXPECT().FindByID(ctx, complaint.ID).Return(complaint, nil)

		_, err := svc.UpdateComplaintByAdmin(ctx, complaint.ID, &usecase.UpdateComplaintInput{Status: statusPtr(entity.ComplaintStatusOpen)})
		assert.ErrorIs(t, err, domainerrors.ErrComplaintStatusConflict)
	})

	t.Run("priority only does not notify", func(t *testing.T) {
		svc, repos, _ := createTestComplaintService(t)
		ctx := context.Background()
		complaint := &entity.Complaint{ID: uuid.New(), Status: entity.ComplaintStatusOpen, Priority: entity.ComplaintPriorityLow}
		high := entity.ComplaintPriorityHigh

		repos.Complaints.EXPECT().FindByID(ctx, complaint.ID).Return(complaint, nil)
		repos.Complaints.EXPECT().
			Update(ctx, mock.MatchedBy(func(c *entity.Complaint) bool { return c.Priority == high }), entity.ComplaintStatusOpen).
			Return(nil)

		updated, err := svc.UpdateComplaintByAdmin(ctx, complaint.ID, &usecase.UpdateComplaintInput{Priority: &high})
		require.NoError(t, err)
		assert.Equal(t, high, updated.Priority)
	})

	t.Run("concurrent change is a conflict", func(t *testing.T) {
		svc, repos, _ := createTestComplaintService(t)
		ctx := context.Background()
		complaint := &entity.Complaint{ID: uuid.New(), Status: entity.ComplaintStatusOpen}

		repos.Complaints.EXPECT().FindByID(ctx, complaint.ID).Return(complaint, nil)
		repos.Complaints.EXPECT().Update(ctx, mock.Anything, entity.ComplaintStatusOpen).Return(repository.ErrStatusConflict)

		_, err := svc.UpdateComplaintByAdmin(ctx, complaint.ID, &usecase.UpdateComplaintInput{Status: statusPtr(entity.ComplaintStatusClosed)})
		assert.ErrorIs(t, err, domainerrors.ErrComplaintStatusConflict)
	})
}
