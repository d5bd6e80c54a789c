// Package service 包含了应用的业务逻辑层。
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"educhat-go/internal/model"
	"educhat-go/internal/repository"
	"educhat-go/pkg/log"

	"github.com/elastic/go-elasticsearch/v8"
)

// DefaultTopK 是检索结果数量的默认上限。
const DefaultTopK = 3

// RetrievalService 定义了知识库检索策略。
// 检索永远不会让一轮对话失败：任何存储错误都在内部记录并降级为零结果。
type RetrievalService interface {
	Retrieve(ctx context.Context, query string, topK int) []model.KnowledgeDocument
}

type retrievalService struct {
	esClient      *elasticsearch.Client
	indexName     string
	knowledgeRepo repository.KnowledgeRepository
}

// NewRetrievalService 创建一个新的 RetrievalService 实例。
func NewRetrievalService(esClient *elasticsearch.Client, indexName string, knowledgeRepo repository.KnowledgeRepository) RetrievalService {
	return &retrievalService{
		esClient:      esClient,
		indexName:     indexName,
		knowledgeRepo: knowledgeRepo,
	}
}

// Retrieve 执行两步检索。
// 第一步：对 question/content/keywords 做相关性排序的全文检索，取前 topK。
// 第二步（仅在第一步零命中时）：对 content 与 metadata source 做大小写不敏感的子串兜底匹配。
// 空结果不是错误，表示"没有相关上下文"，由调用方的策略决定后续行为。
func (s *retrievalService) Retrieve(ctx context.Context, query string, topK int) []model.KnowledgeDocument {
	if topK <= 0 {
		topK = DefaultTopK
	}

	docs, err := s.primarySearch(ctx, query, topK)
	if err != nil {
		log.Errorf("[RetrievalService] 全文检索失败，按零结果处理: %v", err)
		return nil
	}
	if len(docs) > 0 {
		log.Infof("[RetrievalService] 全文检索命中 %d 条, query: '%s'", len(docs), query)
		return docs
	}

	// 兜底只在主检索零命中时走一次
	fallbackDocs, err := s.knowledgeRepo.SearchFallback(ctx, query, topK)
	if err != nil {
		log.Errorf("[RetrievalService] 兜底检索失败，按零结果处理: %v", err)
		return nil
	}
	log.Infof("[RetrievalService] 兜底检索命中 %d 条, query: '%s'", len(fallbackDocs), query)
	return fallbackDocs
}

// primarySearch 向 Elasticsearch 发起 multi_match 查询，命中后按排序回表。
func (s *retrievalService) primarySearch(ctx context.Context, query string, topK int) ([]model.KnowledgeDocument, error) {
	esQuery := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"question^2", "content", "keywords"},
			},
		},
		"size": topK,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(esQuery); err != nil {
		return nil, fmt.Errorf("failed to encode es query: %w", err)
	}

	res, err := s.esClient.Search(
		s.esClient.Search.WithContext(ctx),
		s.esClient.Search.WithIndex(s.indexName),
		s.esClient.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch search failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		bodyBytes, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("elasticsearch returned an error: %s, body: %s", res.Status(), string(bodyBytes))
	}

	var esResponse struct {
		Hits struct {
			Hits []struct {
				Source model.EsKnowledgeDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&esResponse); err != nil {
		return nil, fmt.Errorf("failed to decode es response: %w", err)
	}

	if len(esResponse.Hits.Hits) == 0 {
		return nil, nil
	}

	// ES 返回的顺序即相关性排序，回表时必须保持
	ids := make([]string, 0, len(esResponse.Hits.Hits))
	for _, hit := range esResponse.Hits.Hits {
		ids = append(ids, hit.Source.DocID)
	}
	docs, err := s.knowledgeRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load documents by ids: %w", err)
	}
	return docs, nil
}
