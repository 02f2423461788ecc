package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go_climb_keep/internal/config"
	"go_climb_keep/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
	slogGorm "github.com/orandin/slog-gorm" // slogGormはエイリアス
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// inProgressIndexSQL はユーザーごとに進行中セッションを1件に制限する部分ユニークインデックスです。
// Postgres と SQLite の両方で同じ構文が使えます。
const inProgressIndexSQL = `CREATE UNIQUE INDEX IF NOT EXISTS uq_sessions_user_in_progress ON sessions(user_id) WHERE status = 'inProgress'`

// NewDB は設定に応じたドライバでDBに接続します。
// ハンドルは呼び出し側 (serve コマンド) が所有し、終了時に Close します。
func NewDB(dbCfg config.DatabaseConfig, env string, appLogger *slog.Logger) (*gorm.DB, error) {
	var gormLogLevel gormlogger.LogLevel
	if env == config.EnvDev {
		gormLogLevel = gormlogger.Info
	} else {
		gormLogLevel = gormlogger.Warn
	}

	slogGormLogger := slogGorm.New(
		slogGorm.WithHandler(appLogger.Handler()),
		slogGorm.WithTraceAll(),
		slogGorm.WithSlowThreshold(500*time.Millisecond),
	)

	dialector, err := openDialector(dbCfg)
	if err != nil {
		appLogger.Error("Unsupported database driver", slog.String("driver", dbCfg.Driver))
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: slogGormLogger.LogMode(gormLogLevel),
		// 重複キーを gorm.ErrDuplicatedKey に変換する
		TranslateError: true,
	})
	if err != nil {
		appLogger.Error("Failed to connect to database with GORM", slog.Any("error", err))
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		appLogger.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		return nil, err
	}

	if err = sqlDB.Ping(); err != nil {
		appLogger.Error("Error pinging database", slog.Any("error", err))
		sqlDB.Close()
		return nil, err
	}

	if dbCfg.Driver == config.DriverSQLite {
		// SQLite は書き込みが直列なので接続を1本にする
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	appLogger.Info("Database connection established with GORM", slog.String("driver", dbCfg.Driver))
	return db, nil
}

func openDialector(dbCfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch dbCfg.Driver {
	case config.DriverPostgres, "":
		return postgres.Open(dbCfg.URL), nil
	case config.DriverSQLite:
		return sqlite.Open(dbCfg.URL), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", dbCfg.Driver)
	}
}

// Migrate はテーブルと部分ユニークインデックスを作成します
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(
		&model.User{},
		&model.Identity{},
		&model.UserVerificationToken{},
		&model.Session{},
		&model.Project{},
	); err != nil {
		return fmt.Errorf("repository.Migrate: auto migrate: %w", err)
	}
	if err := db.WithContext(ctx).Exec(inProgressIndexSQL).Error; err != nil {
		return fmt.Errorf("repository.Migrate: create index: %w", err)
	}
	return nil
}

// Close は基盤の sql.DB を閉じます
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping はヘルスチェック用の疎通確認です
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// isDuplicateKeyError は一意制約違反かどうかを判定します
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
