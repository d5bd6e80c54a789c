package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"educhat-go/internal/config"
	"educhat-go/internal/model"
	"educhat-go/pkg/log"
	"educhat-go/pkg/storage"

	"github.com/google/uuid"
)

// extractFailedPlaceholder 是文本提取失败或格式不支持时的兜底内容，
// 保证文档仍然入库，只是检索价值有限。
const extractFailedPlaceholder = "Content extraction not available for this file type."

// TextExtractor 从文件流中提取纯文本。
type TextExtractor interface {
	ExtractText(fileReader io.Reader, fileName string) (string, error)
}

// UploadResult 是文件上传入库的结果。
type UploadResult struct {
	DocumentID string
	Filename   string
	Category   model.Category
}

// UploadService 负责把上传的文件转换为知识库文档。
type UploadService interface {
	UploadDocument(ctx context.Context, fileName string, size int64, fileReader io.Reader, uploadedBy string) (*UploadResult, error)
}

type uploadService struct {
	knowledgeService KnowledgeService
	extractor        TextExtractor
	uploadCfg        config.UploadConfig
	bucketName       string
}

// NewUploadService 创建一个新的 UploadService 实例。
func NewUploadService(knowledgeService KnowledgeService, extractor TextExtractor, uploadCfg config.UploadConfig, bucketName string) UploadService {
	return &uploadService{
		knowledgeService: knowledgeService,
		extractor:        extractor,
		uploadCfg:        uploadCfg,
		bucketName:       bucketName,
	}
}

// UploadDocument 处理一次文件上传：
// 校验后先把原始文件写入 MinIO 临时对象，再读回提取文本并入库。
// 临时对象在任何退出路径上都会被清理。提取失败不算上传失败，
// 文档以占位内容入库。
func (s *uploadService) UploadDocument(ctx context.Context, fileName string, size int64, fileReader io.Reader, uploadedBy string) (*UploadResult, error) {
	if err := s.validate(fileName, size); err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("uploads/tmp/%s-%s", uuid.NewString(), filepath.Base(fileName))
	if err := storage.PutObject(ctx, s.bucketName, objectName, fileReader, size); err != nil {
		log.Errorf("[UploadService] 写入临时对象失败, object: %s, error: %v", objectName, err)
		return nil, err
	}
	defer func() {
		if err := storage.RemoveObject(ctx, s.bucketName, objectName); err != nil {
			log.Errorf("[UploadService] 清理临时对象失败, object: %s, error: %v", objectName, err)
		}
	}()

	data, err := storage.GetObject(ctx, s.bucketName, objectName)
	if err != nil {
		log.Errorf("[UploadService] 读取临时对象失败, object: %s, error: %v", objectName, err)
		return nil, err
	}

	content := s.extractContent(data, fileName)

	doc, err := s.knowledgeService.AddDocument(ctx, s.documentInput(fileName, content, uploadedBy))
	if err != nil {
		return nil, err
	}

	log.Infof("[UploadService] 文件上传入库完成, document: %s, file: %s, size: %d", doc.ID, fileName, size)
	return &UploadResult{
		DocumentID: doc.ID,
		Filename:   fileName,
		Category:   doc.Category,
	}, nil
}

// documentInput 构造上传文档的入库参数。
// 上传的文档没有问句，question 留空，检索命中靠 content 和 keywords。
func (s *uploadService) documentInput(fileName, content, uploadedBy string) AddDocumentInput {
	return AddDocumentInput{
		Category: model.CategoryUploaded,
		Content:  content,
		Metadata: model.DocumentMetadata{
			Source:     fileName,
			UploadedBy: uploadedBy,
		},
	}
}

// validate 检查文件大小和扩展名是否在允许范围内。
func (s *uploadService) validate(fileName string, size int64) error {
	if size <= 0 || size > s.uploadCfg.MaxSizeBytes {
		return fmt.Errorf("%w: 文件大小超出限制 (最大 %d 字节)", ErrInvalidFile, s.uploadCfg.MaxSizeBytes)
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	for _, allowed := range s.uploadCfg.AllowedExtensions {
		if ext == allowed {
			return nil
		}
	}
	return fmt.Errorf("%w: 不支持的文件类型 %q", ErrInvalidFile, ext)
}

// extractContent 按文件类型提取文本。纯文本直接读取，
// PDF 和 Word 走 Tika，其余类型或提取失败时使用占位内容。
func (s *uploadService) extractContent(data []byte, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".txt":
		return string(data)
	case ".pdf", ".doc", ".docx":
		text, err := s.extractor.ExtractText(bytes.NewReader(data), fileName)
		if err != nil {
			log.Errorf("[UploadService] 文本提取失败, file: %s, error: %v", fileName, err)
			return extractFailedPlaceholder
		}
		if strings.TrimSpace(text) == "" {
			return extractFailedPlaceholder
		}
		return text
	default:
		return extractFailedPlaceholder
	}
}
