// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"
	"strings"

	"educhat-go/internal/model"
	"educhat-go/internal/repository"
	"educhat-go/pkg/log"
	"educhat-go/pkg/tasks"

	"github.com/google/uuid"
)

const (
	// maxContentChars 是文档内容在入库时的截断长度（按字符计）。
	maxContentChars = 5000
	// maxKnowledgeList 是知识库列表接口返回条数的上限。
	maxKnowledgeList = 50
)

// IndexTaskProducer 将文档索引任务投递到消息队列。
// 以函数类型注入，便于在测试中替换 Kafka 生产者。
type IndexTaskProducer func(task tasks.DocumentIndexTask) error

// AddDocumentInput 是新建知识库文档的入参。
type AddDocumentInput struct {
	Category model.Category
	Question string
	Content  string
	Metadata model.DocumentMetadata
}

// KnowledgeService 定义了知识库文档的业务操作。
type KnowledgeService interface {
	AddDocument(ctx context.Context, input AddDocumentInput) (*model.KnowledgeDocument, error)
	ListDocuments(ctx context.Context) ([]model.KnowledgeDocument, error)
}

type knowledgeService struct {
	knowledgeRepo repository.KnowledgeRepository
	produceTask   IndexTaskProducer
}

// NewKnowledgeService 创建一个新的 KnowledgeService 实例。
func NewKnowledgeService(knowledgeRepo repository.KnowledgeRepository, produceTask IndexTaskProducer) KnowledgeService {
	return &knowledgeService{
		knowledgeRepo: knowledgeRepo,
		produceTask:   produceTask,
	}
}

// AddDocument 创建一个新的知识库文档。
// 内容截断到 5000 字符，关键词自动提取；文档入库后投递索引任务，
// 索引失败不影响入库结果（检索端会相应降级）。
func (s *knowledgeService) AddDocument(ctx context.Context, input AddDocumentInput) (*model.KnowledgeDocument, error) {
	if !input.Category.Valid() {
		return nil, ErrInvalidCategory
	}
	trimmed := strings.TrimSpace(input.Content)
	if trimmed == "" {
		return nil, ErrEmptyContent
	}

	content := truncateRunes(input.Content, maxContentChars)
	keywords := extractKeywords(content)

	// 文件名暗示是简历时，额外注入 "resume" 关键词
	if strings.Contains(strings.ToLower(input.Metadata.Source), "resume") {
		keywords = appendUnique(keywords, "resume")
	}

	doc := &model.KnowledgeDocument{
		ID:       uuid.NewString(),
		Category: input.Category,
		Question: input.Question,
		Content:  content,
		Keywords: keywords,
		Metadata: input.Metadata,
	}

	if err := s.knowledgeRepo.Create(ctx, doc); err != nil {
		log.Errorf("[KnowledgeService] 创建知识库文档失败: %v", err)
		return nil, err
	}

	if err := s.produceTask(tasks.DocumentIndexTask{DocumentID: doc.ID}); err != nil {
		log.Errorf("[KnowledgeService] 投递索引任务失败, documentID: %s, error: %v", doc.ID, err)
	}

	log.Infof("[KnowledgeService] 知识库文档创建成功, id: %s, category: %s, keywords: %d",
		doc.ID, doc.Category, len(doc.Keywords))
	return doc, nil
}

// ListDocuments 返回最新入库的文档，最多 50 条。
func (s *knowledgeService) ListDocuments(ctx context.Context) ([]model.KnowledgeDocument, error) {
	return s.knowledgeRepo.FindRecent(ctx, maxKnowledgeList)
}

// appendUnique 在保持去重不变式的前提下追加一个关键词。
func appendUnique(keywords []string, word string) []string {
	for _, k := range keywords {
		if k == word {
			return keywords
		}
	}
	return append(keywords, word)
}
