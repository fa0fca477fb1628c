package impl

import (
	domainerrors "cargomatch/internal/domain/errors"
	"cargomatch/internal/domain/repository"

	"github.com/pkg/errors"
)

// repoErrorMapping translates repository sentinels into application errors.
type repoErrorMapping map[error]error

// mapRepoError returns the mapped application error for a known sentinel and
// wraps anything else with msg.
func mapRepoError(err error, mapping repoErrorMapping, msg string) error {
	if err == nil {
		return nil
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return err
	}

	for sentinel, mapped := range mapping {
		if errors.Is(err, sentinel) {
			return mapped
		}
	}

	return errors.Wrap(err, msg)
}

var (
	bookingErrors = repoErrorMapping{
		repository.ErrBookingNotFound:   domainerrors.ErrBookingNotFound,
		repository.ErrStatusConflict:    domainerrors.ErrBookingStatusConflict,
		repository.ErrContainerNotFound: domainerrors.ErrContainerNotFound,
	}

	containerErrors = repoErrorMapping{
		repository.ErrContainerNotFound:     domainerrors.ErrContainerNotFound,
		repository.ErrContainerNumberTaken:  domainerrors.ErrContainerNumberExists,
		repository.ErrContainerImmutable:    domainerrors.ErrContainerImmutable,
		repository.ErrContainerHasBookings:  domainerrors.ErrContainerHasBookings,
		repository.ErrContainerTypeNotFound: domainerrors.ErrContainerTypeNotFound,
		repository.ErrStatusConflict:        domainerrors.ErrContainerStatusConflict,
	}

	containerTypeErrors = repoErrorMapping{
		repository.ErrContainerTypeNotFound:  domainerrors.ErrContainerTypeNotFound,
		repository.ErrContainerTypeNameTaken: domainerrors.ErrContainerTypeExists,
		repository.ErrContainerTypeInUse:     domainerrors.ErrContainerTypeInUse,
	}

	shipmentErrors = repoErrorMapping{
		repository.ErrShipmentNotFound: domainerrors.ErrShipmentNotFound,
		repository.ErrShipmentExists:   domainerrors.ErrShipmentExists,
		repository.ErrStatusConflict:   domainerrors.ErrShipmentStatusConflict,
		repository.ErrBookingNotFound:  domainerrors.ErrBookingNotFound,
	}

	complaintErrors = repoErrorMapping{
		repository.ErrComplaintNotFound: domainerrors.ErrComplaintNotFound,
		repository.ErrStatusConflict:    domainerrors.ErrComplaintStatusConflict,
	}

	lspErrors = repoErrorMapping{
		repository.ErrLSPProfileNotFound: domainerrors.ErrLSPNotFound,
		repository.ErrStatusConflict:     domainerrors.ErrLSPAlreadyDecided,
		repository.ErrUserNotFound:       domainerrors.ErrUserNotFound,
	}

	userErrors = repoErrorMapping{
		repository.ErrUserNotFound:   domainerrors.ErrUserNotFound,
		repository.ErrUserEmailTaken: domainerrors.ErrUserAlreadyExists,
	}

	notificationErrors = repoErrorMapping{
		repository.ErrNotificationNotFound: domainerrors.ErrNotificationNotFound,
	}
)
