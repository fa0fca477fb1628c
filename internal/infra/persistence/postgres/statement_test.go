package postgres

import (
	"context"
	"testing"
	"time"

	"cargomatch/internal/domain/entity"
	"cargomatch/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// statementLog collects the SQL gorm builds in dry-run mode, with the bind
// variables inlined the way the postgres dialector explains them.
type statementLog struct {
	statements []string
}

func (l *statementLog) record(tx *gorm.DB) {
	if tx.Statement.SQL.Len() == 0 {
		return
	}
	l.statements = append(l.statements, tx.Dialector.Explain(tx.Statement.SQL.String(), tx.Statement.Vars...))
}

// first returns the first statement, the guarded write of each operation.
func (l *statementLog) first(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, l.statements)

	return l.statements[0]
}

func newDryRunDB(t *testing.T) (*gorm.DB, *statementLog) {
	t.Helper()

	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{
		DSN: "host=localhost user=cargomatch dbname=cargomatch sslmode=disable",
	}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)

	log := &statementLog{}
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("cargomatch:record_query", log.record))
	require.NoError(t, db.Callback().Update().After("gorm:update").Register("cargomatch:record_update", log.record))
	require.NoError(t, db.Callback().Delete().After("gorm:delete").Register("cargomatch:record_delete", log.record))

	return db, log
}

func TestBookingCloseStatement(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	at := time.Date(2026, 3, 14, 6, 0, 0, 0, time.UTC)

	t.Run("guards on the observed status and an unset closed_at", func(t *testing.T) {
		db, log := newDryRunDB(t)

		// Dry runs affect no rows, so the call falls through to the existence check.
		_ = NewBookingRepository(db).Close(ctx, id, entity.BookingStatusPending, "admin", at)

		stmt := log.first(t)
		assert.Contains(t, stmt, `UPDATE "bookings" SET`)
		assert.Contains(t, stmt, `"status"='closed'`)
		assert.Contains(t, stmt, `"closed_by"='admin'`)
		assert.Contains(t, stmt, `"closed_at"=`)
		assert.Contains(t, stmt, "id = '"+id.String()+"' AND status = 'pending' AND closed_at IS NULL")
		require.Len(t, log.statements, 2)
		assert.Contains(t, log.statements[1], `SELECT count(*) FROM "bookings" WHERE id = '`+id.String()+"'")
	})

	t.Run("a closed booking never reaches the database", func(t *testing.T) {
		db, log := newDryRunDB(t)

		err := NewBookingRepository(db).Close(ctx, id, entity.BookingStatusClosed, "scheduler", at)

		assert.ErrorIs(t, err, repository.ErrStatusConflict)
		assert.Empty(t, log.statements)
	})
}

func TestBookingPendingGuards(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	at := time.Date(2026, 3, 14, 6, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		run  func(repository.BookingRepository) error
		set  string
	}{
		{name: "approve", run: func(r repository.BookingRepository) error { return r.Approve(ctx, id, "", at) }, set: `"status"='approved'`},
		{name: "reject", run: func(r repository.BookingRepository) error { return r.Reject(ctx, id, "no space") }, set: `"status"='rejected'`},
		{name: "cancel", run: func(r repository.BookingRepository) error { return r.Cancel(ctx, id, at) }, set: `"status"='cancelled'`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, log := newDryRunDB(t)

			_ = tt.run(NewBookingRepository(db))

			stmt := log.first(t)
			assert.Contains(t, stmt, tt.set)
			assert.Contains(t, stmt, "id = '"+id.String()+"' AND status IN ('pending','pending_approval')")
		})
	}
}

func TestFindDueForClosureStatement(t *testing.T) {
	db, log := newDryRunDB(t)

	_, err := NewBookingRepository(db).FindDueForClosure(context.Background(), time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	stmt := log.first(t)
	assert.Contains(t, stmt, `LEFT JOIN "containers" "Container" ON "bookings"."container_id" = "Container"."id"`)
	assert.Contains(t, stmt, "bookings.status = 'approved' AND bookings.closed_at IS NULL")
	assert.Contains(t, stmt, `"Container".departure_date = '2026-03-15'`)
}

func TestContainerImmutableGuards(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	lspID := uuid.New()

	t.Run("update", func(t *testing.T) {
		db, log := newDryRunDB(t)

		_ = NewContainerRepository(db).UpdateUnapproved(ctx, &entity.Container{ID: id, LSPID: lspID, ContainerNumber: "MSCU1234567"})

		stmt := log.first(t)
		assert.Contains(t, stmt, `UPDATE "containers" SET`)
		assert.Contains(t, stmt, `"container_approval_status"='pending'`)
		assert.Contains(t, stmt, "id = '"+id.String()+"' AND lsp_id = '"+lspID.String()+"'")
		assert.Contains(t, stmt, "container_approval_status <> 'approved'")
	})

	t.Run("delete", func(t *testing.T) {
		db, log := newDryRunDB(t)

		_ = NewContainerRepository(db).DeleteUnapproved(ctx, id, lspID)

		stmt := log.first(t)
		assert.Contains(t, stmt, `DELETE FROM "containers"`)
		assert.Contains(t, stmt, "container_approval_status <> 'approved'")
	})

	t.Run("a guarded miss is told apart by owner", func(t *testing.T) {
		db, log := newDryRunDB(t)

		_ = NewContainerRepository(db).DeleteUnapproved(ctx, id, lspID)

		require.Len(t, log.statements, 2)
		assert.Contains(t, log.statements[1], "id = '"+id.String()+"' AND lsp_id = '"+lspID.String()+"'")
	})
}

func TestReviewAndDecideGuardOnPending(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	adminID := uuid.New()
	at := time.Date(2026, 3, 14, 6, 0, 0, 0, time.UTC)

	t.Run("container review", func(t *testing.T) {
		db, log := newDryRunDB(t)

		_ = NewContainerRepository(db).Review(ctx, id, repository.ContainerReview{
			Status:     entity.ContainerApprovalRejected,
			Reason:     "documents expired",
			ReviewedBy: adminID,
			ReviewedAt: at,
		})

		stmt := log.first(t)
		assert.Contains(t, stmt, `"container_approval_status"='rejected'`)
		assert.Contains(t, stmt, `"rejection_reason"='documents expired'`)
		assert.Contains(t, stmt, "id = '"+id.String()+"' AND container_approval_status = 'pending'")
	})

	t.Run("lsp decision", func(t *testing.T) {
		db, log := newDryRunDB(t)

		_ = NewLSPProfileRepository(db).Decide(ctx, id, repository.VerificationDecision{
			Status:    entity.VerificationStatusApproved,
			DecidedBy: adminID,
			DecidedAt: at,
		})

		stmt := log.first(t)
		assert.Contains(t, stmt, `UPDATE "lsp_profiles" SET`)
		assert.Contains(t, stmt, `"is_verified"=true`)
		assert.Contains(t, stmt, "id = '"+id.String()+"' AND verification_status = 'pending'")
	})
}

func TestSearchOnlyBookableContainers(t *testing.T) {
	db, log := newDryRunDB(t)

	_, err := NewContainerRepository(db).Search(context.Background(), repository.ContainerSearch{
		Now:    time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Origin: "Nhava_Sheva",
	})
	require.NoError(t, err)

	stmt := log.first(t)
	assert.Contains(t, stmt, "container_approval_status = 'approved' AND is_available = true AND departure_date > ")
	assert.Contains(t, stmt, `origin ILIKE '%Nhava\_Sheva%'`)
}
