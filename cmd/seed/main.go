// Package main 是知识库种子数据导入工具。
// 清空知识库后写入一组示例文档，并投递索引任务，由服务端消费者同步到 ES。
package main

import (
	"context"

	"educhat-go/internal/config"
	"educhat-go/internal/model"
	"educhat-go/internal/repository"
	"educhat-go/pkg/database"
	"educhat-go/pkg/kafka"
	"educhat-go/pkg/log"
	"educhat-go/pkg/tasks"

	"github.com/google/uuid"
)

// sampleDocuments 是内置的示例文档，关键词为人工整理，不走自动提取。
var sampleDocuments = []model.KnowledgeDocument{
	{
		Category: model.CategoryFAQ,
		Question: "What is machine learning?",
		Content:  "Machine learning is a subset of artificial intelligence that enables systems to learn and improve from experience without being explicitly programmed. It uses algorithms to parse data, learn from it, and make informed decisions.",
		Keywords: model.KeywordList{"machine learning", "AI", "algorithms", "artificial intelligence"},
		Metadata: model.DocumentMetadata{Subject: "Computer Science", Difficulty: "Beginner"},
	},
	{
		Category: model.CategoryCourseMaterial,
		Question: "Explain calculus derivatives",
		Content:  "A derivative represents the rate of change of a function at a given point. In calculus, if f(x) is a function, its derivative f'(x) measures how fast f(x) changes as x changes. The derivative is fundamental to understanding motion, optimization, and many other applications in mathematics and physics.",
		Keywords: model.KeywordList{"calculus", "derivatives", "mathematics", "rate of change"},
		Metadata: model.DocumentMetadata{Subject: "Mathematics", Difficulty: "Intermediate"},
	},
	{
		Category: model.CategoryFAQ,
		Question: "How do I prepare for exams?",
		Content:  "Effective exam preparation includes: 1) Start early and create a study schedule, 2) Break material into manageable chunks, 3) Use active recall and practice testing, 4) Take regular breaks, 5) Get adequate sleep, 6) Review past papers and practice questions, 7) Study in a distraction-free environment.",
		Keywords: model.KeywordList{"exam preparation", "study tips", "academic success"},
		Metadata: model.DocumentMetadata{Subject: "General", Difficulty: "Beginner"},
	},
	{
		Category: model.CategoryCourseMaterial,
		Question: "What is photosynthesis?",
		Content:  "Photosynthesis is the process by which plants convert light energy into chemical energy. Plants use sunlight, carbon dioxide, and water to produce glucose and oxygen. The equation is: 6CO2 + 6H2O + light energy → C6H12O6 + 6O2. This process occurs primarily in the chloroplasts of plant cells.",
		Keywords: model.KeywordList{"photosynthesis", "biology", "plants", "chloroplast"},
		Metadata: model.DocumentMetadata{Subject: "Biology", Difficulty: "Beginner"},
	},
	{
		Category: model.CategoryAssignment,
		Question: "How to write a research paper?",
		Content:  "Writing a research paper involves several steps: 1) Choose a topic and conduct preliminary research, 2) Develop a thesis statement, 3) Create an outline, 4) Write the first draft with proper citations, 5) Revise for clarity and coherence, 6) Proofread for grammar and formatting, 7) Include a bibliography with all sources in the required citation style.",
		Keywords: model.KeywordList{"research paper", "writing", "academic writing", "thesis"},
		Metadata: model.DocumentMetadata{Subject: "General", Difficulty: "Intermediate"},
	},
	{
		Category: model.CategoryCourseMaterial,
		Question: "Explain Newton's Laws of Motion",
		Content:  "Newton's Three Laws of Motion are fundamental principles in physics: 1) First Law (Inertia): An object at rest stays at rest, and an object in motion stays in motion unless acted upon by an external force. 2) Second Law (F=ma): Force equals mass times acceleration. 3) Third Law: For every action, there is an equal and opposite reaction.",
		Keywords: model.KeywordList{"physics", "newton", "motion", "force", "laws"},
		Metadata: model.DocumentMetadata{Subject: "Physics", Difficulty: "Intermediate"},
	},
}

func main() {
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync()

	database.InitMySQL(cfg.Database.MySQL.DSN)
	database.InitRedis(cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)
	kafka.InitProducer(cfg.Kafka)

	if err := database.DB.AutoMigrate(&model.KnowledgeDocument{}); err != nil {
		log.Fatalf("数据表迁移失败: %v", err)
	}

	ctx := context.Background()
	knowledgeRepo := repository.NewKnowledgeRepository(database.DB, database.RDB)

	if err := knowledgeRepo.DeleteAll(ctx); err != nil {
		log.Fatalf("清空知识库失败: %v", err)
	}
	log.Info("已清空现有知识库")

	for i := range sampleDocuments {
		doc := sampleDocuments[i]
		doc.ID = uuid.NewString()
		if err := knowledgeRepo.Create(ctx, &doc); err != nil {
			log.Fatalf("写入示例文档失败: %v", err)
		}
		if err := kafka.ProduceIndexTask(tasks.DocumentIndexTask{DocumentID: doc.ID}); err != nil {
			log.Errorf("投递索引任务失败, documentID: %s, error: %v", doc.ID, err)
		}
		log.Infof("示例文档已入库: %s (%s)", doc.Question, doc.ID)
	}

	log.Infof("种子数据导入完成，共 %d 条", len(sampleDocuments))
}
