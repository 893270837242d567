package audit

import (
	"time"

	"gorm.io/datatypes"
)

// OperationLog represents the operation_log table: one append-only row per
// mutating operation (checkout, receipt, catalog edit, expense).
type OperationLog struct {
	LogID     uint           `gorm:"column:log_id;primaryKey;autoIncrement" json:"log_id,omitempty"`
	Entity    string         `gorm:"column:entity;type:varchar(32);not null;index" json:"entity"`
	Action    string         `gorm:"column:action;type:varchar(32);not null" json:"action"`
	Payload   datatypes.JSON `gorm:"column:payload" json:"payload,omitempty"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (OperationLog) TableName() string {
	return "operation_log"
}
