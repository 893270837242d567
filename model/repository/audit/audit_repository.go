package audit

import (
	"encoding/json"
	"log"

	"gorm.io/gorm"

	auditEntity "tillpoint/model/entity/audit"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Record appends an operation log row. Audit must never fail the operation it
// describes, so marshal or insert errors are logged and swallowed.
func (r *AuditRepository) Record(entity, action string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("audit: marshal %s/%s: %v", entity, action, err)
		return
	}
	row := auditEntity.OperationLog{Entity: entity, Action: action, Payload: data}
	if err := r.db.Create(&row).Error; err != nil {
		log.Printf("audit: record %s/%s: %v", entity, action, err)
	}
}

// List returns log rows newest first.
func (r *AuditRepository) List(limit int) ([]auditEntity.OperationLog, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []auditEntity.OperationLog
	err := r.db.Order("log_id DESC").Limit(limit).Find(&rows).Error
	return rows, err
}
