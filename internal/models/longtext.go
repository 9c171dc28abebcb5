package models

import (
	"database/sql/driver"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// LongText is a string column sized for multi-megabyte payloads on every
// supported database driver. MySQL's default TEXT caps at 64KB, which is
// too small for a base64-encoded 10MiB upload.
type LongText string

// Value implements the driver.Valuer interface
func (t LongText) Value() (driver.Value, error) {
	return string(t), nil
}

// Scan implements the sql.Scanner interface
func (t *LongText) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = ""
	case string:
		*t = LongText(v)
	case []byte:
		*t = LongText(v)
	default:
		return fmt.Errorf("LongText: unsupported scan type %T", value)
	}
	return nil
}

// GormDBDataType ensures a large-enough text type is used for each database driver.
func (LongText) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "LONGTEXT"
	case "postgres":
		return "TEXT"
	case "sqlserver", "mssql":
		return "NVARCHAR(MAX)"
	case "sqlite":
		return "TEXT"
	}
	return "TEXT"
}
