// Package repository 定义了与数据库进行数据交换的接口和实现。
package repository

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"educhat-go/internal/model"
	"educhat-go/pkg/log"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const (
	// knowledgeListCacheKey 是最近文档列表在 Redis 中的缓存键。
	knowledgeListCacheKey = "kb:recent"
	// knowledgeListCacheTTL 控制列表缓存的过期时间。
	knowledgeListCacheTTL = 5 * time.Minute
)

// KnowledgeRepository 接口定义了知识库文档的持久化操作。
type KnowledgeRepository interface {
	Create(ctx context.Context, doc *model.KnowledgeDocument) error
	FindByID(ctx context.Context, id string) (*model.KnowledgeDocument, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.KnowledgeDocument, error)
	SearchFallback(ctx context.Context, query string, limit int) ([]model.KnowledgeDocument, error)
	FindRecent(ctx context.Context, limit int) ([]model.KnowledgeDocument, error)
	DeleteAll(ctx context.Context) error
}

// knowledgeRepository 是 KnowledgeRepository 接口的 GORM+Redis 实现。
// MySQL 是权威存储，Redis 只缓存最近文档列表。
type knowledgeRepository struct {
	db          *gorm.DB
	redisClient *redis.Client
}

// NewKnowledgeRepository 创建一个新的 KnowledgeRepository 实例。
func NewKnowledgeRepository(db *gorm.DB, redisClient *redis.Client) KnowledgeRepository {
	return &knowledgeRepository{db: db, redisClient: redisClient}
}

// Create 在数据库中创建一个新的知识库文档，并使列表缓存失效。
func (r *knowledgeRepository) Create(ctx context.Context, doc *model.KnowledgeDocument) error {
	if err := r.db.WithContext(ctx).Create(doc).Error; err != nil {
		return err
	}
	r.invalidateListCache(ctx)
	return nil
}

// FindByID 根据文档 ID 查找单个知识库文档。
func (r *knowledgeRepository) FindByID(ctx context.Context, id string) (*model.KnowledgeDocument, error) {
	var doc model.KnowledgeDocument
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// FindByIDs 批量查找文档，返回结果保持入参 ids 的顺序。
// 入参顺序即检索的相关性排序，不能被数据库的返回顺序打乱。
func (r *knowledgeRepository) FindByIDs(ctx context.Context, ids []string) ([]model.KnowledgeDocument, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var docs []model.KnowledgeDocument
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&docs).Error
	if err != nil {
		return nil, err
	}
	byID := make(map[string]model.KnowledgeDocument, len(docs))
	for _, d := range docs {
		byID[d.ID] = d
	}
	ordered := make([]model.KnowledgeDocument, 0, len(ids))
	for _, id := range ids {
		if d, ok := byID[id]; ok {
			ordered = append(ordered, d)
		}
	}
	return ordered, nil
}

// likeEscaper 转义 LIKE 模式中的通配符，查询串只按字面子串匹配。
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchFallback 对 content 与 metadata source 做大小写不敏感的子串匹配。
// 它只在全文检索零命中时被调用，结果上限为 limit。
func (r *knowledgeRepository) SearchFallback(ctx context.Context, query string, limit int) ([]model.KnowledgeDocument, error) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
	var docs []model.KnowledgeDocument
	err := r.db.WithContext(ctx).
		Where("LOWER(content) LIKE ? OR LOWER(meta_source) LIKE ?", pattern, pattern).
		Limit(limit).
		Find(&docs).Error
	return docs, err
}

// FindRecent 返回最新创建的文档，最多 limit 条，带 Redis 读穿缓存。
func (r *knowledgeRepository) FindRecent(ctx context.Context, limit int) ([]model.KnowledgeDocument, error) {
	if cached, err := r.redisClient.Get(ctx, knowledgeListCacheKey).Result(); err == nil {
		var docs []model.KnowledgeDocument
		if err := json.Unmarshal([]byte(cached), &docs); err == nil {
			return docs, nil
		}
		// 缓存内容损坏时直接回源
		log.Warnf("[KnowledgeRepository] 列表缓存内容无法解析，回源查询")
	} else if err != redis.Nil {
		log.Warnf("[KnowledgeRepository] 读取列表缓存失败: %v", err)
	}

	var docs []model.KnowledgeDocument
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Find(&docs).Error
	if err != nil {
		return nil, err
	}

	if data, merr := json.Marshal(docs); merr == nil {
		if serr := r.redisClient.Set(ctx, knowledgeListCacheKey, data, knowledgeListCacheTTL).Err(); serr != nil {
			log.Warnf("[KnowledgeRepository] 写入列表缓存失败: %v", serr)
		}
	}
	return docs, nil
}

// DeleteAll 清空知识库（供种子导入使用），并使列表缓存失效。
func (r *knowledgeRepository) DeleteAll(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Where("1 = 1").Delete(&model.KnowledgeDocument{}).Error; err != nil {
		return err
	}
	r.invalidateListCache(ctx)
	return nil
}

func (r *knowledgeRepository) invalidateListCache(ctx context.Context) {
	if err := r.redisClient.Del(ctx, knowledgeListCacheKey).Err(); err != nil {
		log.Warnf("[KnowledgeRepository] 使列表缓存失效失败: %v", err)
	}
}
