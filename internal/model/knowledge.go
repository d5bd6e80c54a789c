// Package model 包含了应用的数据模型定义。
package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Category 是知识库文档的分类，取值为固定的封闭集合。
type Category string

const (
	CategoryFAQ            Category = "FAQ"
	CategoryCourseMaterial Category = "CourseMaterial"
	CategoryAssignment     Category = "Assignment"
	CategoryGeneral        Category = "General"
	CategoryUploaded       Category = "Uploaded"
)

// Valid 判断分类是否属于合法的枚举值。
// 枚举在领域边界校验，而不是依赖存储层的约束。
func (c Category) Valid() bool {
	switch c {
	case CategoryFAQ, CategoryCourseMaterial, CategoryAssignment, CategoryGeneral, CategoryUploaded:
		return true
	}
	return false
}

// KeywordList 以 JSON 数组的形式存储在数据库的 json 列中。
type KeywordList []string

// Value 实现了 driver.Valuer 接口。
func (k KeywordList) Value() (driver.Value, error) {
	if k == nil {
		k = KeywordList{}
	}
	return json.Marshal(k)
}

// Scan 实现了 sql.Scanner 接口。
func (k *KeywordList) Scan(value interface{}) error {
	if value == nil {
		*k = KeywordList{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported type for KeywordList")
	}
	return json.Unmarshal(data, k)
}

// DocumentMetadata 是知识库文档的自由元数据字段。
type DocumentMetadata struct {
	Subject    string `gorm:"type:varchar(100)" json:"subject,omitempty"`
	Difficulty string `gorm:"type:varchar(50)" json:"difficulty,omitempty"`
	Source     string `gorm:"type:varchar(255)" json:"source,omitempty"`
	UploadedBy string `gorm:"type:varchar(64)" json:"uploadedBy,omitempty"`
}

// KnowledgeDocument 对应于数据库中的 'knowledge_documents' 表。
// 文档一经创建不再修改；content 永不为空，keywords 无重复且不含停用词。
type KnowledgeDocument struct {
	ID       string           `gorm:"type:varchar(36);primaryKey" json:"id"`
	Category Category         `gorm:"type:varchar(32);not null" json:"category"`
	Question string           `gorm:"type:varchar(512)" json:"question,omitempty"`
	Content  string           `gorm:"type:text;not null" json:"content"`
	Keywords KeywordList      `gorm:"type:json" json:"keywords"`
	Metadata DocumentMetadata `gorm:"embedded;embeddedPrefix:meta_" json:"metadata"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (KnowledgeDocument) TableName() string {
	return "knowledge_documents"
}

// EsKnowledgeDocument 定义了知识库文档在 Elasticsearch 中的镜像结构。
// MySQL 是权威存储，ES 只承担全文检索，命中后按 doc_id 回表。
type EsKnowledgeDocument struct {
	DocID    string   `json:"doc_id"`
	Category string   `json:"category"`
	Question string   `json:"question"`
	Content  string   `json:"content"`
	Keywords []string `json:"keywords"`
}
