package postgres

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestConstraintViolationDetection(t *testing.T) {
	wrap := func(code, constraint string) error {
		return fmt.Errorf("exec: %w", &pgconn.PgError{Code: code, ConstraintName: constraint})
	}

	tests := []struct {
		name       string
		err        error
		unique     bool
		foreignKey bool
		notNull    bool
		check      bool
	}{
		{name: "unique pg code", err: wrap(pgCodeUniqueViolation, "idx_users_email"), unique: true},
		{name: "gorm duplicated key", err: gorm.ErrDuplicatedKey, unique: true},
		{name: "foreign key pg code", err: wrap(pgCodeForeignKeyViolation, "fk_bookings_container"), foreignKey: true},
		{name: "gorm foreign key", err: gorm.ErrForeignKeyViolated, foreignKey: true},
		{name: "not null pg code", err: wrap(pgCodeNotNullViolation, ""), notNull: true},
		{name: "check pg code", err: wrap(pgCodeCheckViolation, "chk_volume"), check: true},
		{name: "message mentioning duplicate is not a violation", err: fmt.Errorf("duplicate key value violates unique constraint")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.unique, isUniqueConstraintViolation(tt.err))
			assert.Equal(t, tt.foreignKey, isForeignKeyConstraintViolation(tt.err))
			assert.Equal(t, tt.notNull, isNotNullConstraintViolation(tt.err))
			assert.Equal(t, tt.check, isCheckConstraintViolation(tt.err))
		})
	}
}

func TestViolatedConstraint(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgCodeUniqueViolation, ConstraintName: "idx_containers_number"})
	assert.Equal(t, "idx_containers_number", violatedConstraint(err))
	assert.Empty(t, violatedConstraint(gorm.ErrDuplicatedKey))
}
