// Package tasks 定义了发送到 Kafka 的任务结构。
package tasks

// DocumentIndexTask 表示一个待索引到 Elasticsearch 的知识库文档。
// 任务只携带文档 ID，消费者按 ID 回表读取权威内容。
type DocumentIndexTask struct {
	DocumentID string `json:"document_id"`
}
