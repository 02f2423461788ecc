// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "ClimbKeep"
	AppVersion = "0.3.0"
)

const (
	EnvDev        = "dev"
	EnvProduction = "production"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// デフォルト設定値
const (
	DefaultServerPort     = ":8080"
	DefaultLogLevel       = "info"
	DefaultDatabaseDriver = DriverPostgres
	DefaultSQLiteURL      = "file:climbkeep.db?_foreign_keys=on"
	DefaultCookieName     = "sb"
	DefaultSessionTTL     = 7 * 24 * time.Hour

	// 開発環境でのみ使う署名キー。本番では LoadConfig がエラーにする
	DevSessionSecret = "wow-this-is-so-secret"
)
