// Package pipeline 实现了文档索引任务的异步处理。
// 消费者从 Kafka 拉取任务，把数据库中的文档同步到 Elasticsearch 索引。
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"educhat-go/internal/model"
	"educhat-go/internal/repository"
	"educhat-go/pkg/es"
	"educhat-go/pkg/log"
	"educhat-go/pkg/tasks"

	"gorm.io/gorm"
)

// IndexProcessor 把知识库文档写入 Elasticsearch 镜像索引。
type IndexProcessor struct {
	knowledgeRepo repository.KnowledgeRepository
	indexName     string
}

// NewIndexProcessor 创建一个新的 IndexProcessor 实例。
func NewIndexProcessor(knowledgeRepo repository.KnowledgeRepository, indexName string) *IndexProcessor {
	return &IndexProcessor{
		knowledgeRepo: knowledgeRepo,
		indexName:     indexName,
	}
}

// Process 处理一条索引任务。
// 文档已被删除时直接视为成功，避免消费者对不存在的文档反复重试。
func (p *IndexProcessor) Process(ctx context.Context, task tasks.DocumentIndexTask) error {
	doc, err := p.knowledgeRepo.FindByID(ctx, task.DocumentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warnf("[IndexProcessor] 文档不存在，跳过索引, documentID: %s", task.DocumentID)
			return nil
		}
		return fmt.Errorf("加载文档失败: %w", err)
	}

	esDoc := model.EsKnowledgeDocument{
		DocID:    doc.ID,
		Category: string(doc.Category),
		Question: doc.Question,
		Content:  doc.Content,
		Keywords: doc.Keywords,
	}
	if err := es.IndexDocument(ctx, p.indexName, esDoc); err != nil {
		return fmt.Errorf("写入索引失败: %w", err)
	}

	log.Infof("[IndexProcessor] 文档索引完成, documentID: %s", doc.ID)
	return nil
}
