package postgres

import (
	"context"

	"gorm.io/gorm"

	"storerating/internal/errors"
	"storerating/internal/infra/persistence/model"
)

// migrateLockID is the pg advisory lock key guarding schema changes across instances.
const migrateLockID int64 = 0x5354524154494e47

// Migrate creates or updates the accounts, stores and ratings tables.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return withMigrationLock(ctx, db, func(tx *gorm.DB) error {
		if err := tx.AutoMigrate(&model.AccountModel{}, &model.StoreModel{}, &model.RatingModel{}); err != nil {
			return errors.Wrap(err, "auto migrate")
		}

		return nil
	})
}

func withMigrationLock(ctx context.Context, db *gorm.DB, fn func(*gorm.DB) error) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "get sql db")
	}

	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return errors.Wrap(err, "open sql conn")
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "SELECT pg_advisory_lock($1)", migrateLockID); err != nil {
		return errors.Wrap(err, "acquire migrate lock")
	}
	defer func() {
		_, _ = conn.ExecContext(context.WithoutCancel(ctx), "SELECT pg_advisory_unlock($1)", migrateLockID)
	}()

	return fn(db.WithContext(ctx))
}
