// Package main 是应用程序的入口点。
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"educhat-go/internal/config"
	"educhat-go/internal/handler"
	"educhat-go/internal/middleware"
	"educhat-go/internal/model"
	"educhat-go/internal/pipeline"
	"educhat-go/internal/repository"
	"educhat-go/internal/service"
	"educhat-go/pkg/database"
	"educhat-go/pkg/es"
	"educhat-go/pkg/kafka"
	"educhat-go/pkg/llm"
	"educhat-go/pkg/log"
	"educhat-go/pkg/storage"
	"educhat-go/pkg/tika"
	"educhat-go/pkg/token"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. 初始化配置
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	// 2. 初始化日志记录器
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync()
	log.Info("日志记录器初始化成功")

	// 3. 初始化基础设施客户端
	database.InitMySQL(cfg.Database.MySQL.DSN)
	database.InitRedis(cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)
	storage.InitMinIO(cfg.MinIO)
	if err := es.InitES(cfg.Elasticsearch); err != nil {
		log.Fatalf("es 初始化失败: %v", err)
	}
	kafka.InitProducer(cfg.Kafka)

	// 4. 自动迁移数据表
	if err := database.DB.AutoMigrate(
		&model.User{},
		&model.Conversation{},
		&model.Message{},
		&model.KnowledgeDocument{},
	); err != nil {
		log.Fatalf("数据表迁移失败: %v", err)
	}

	// 5. 初始化 Repository
	userRepo := repository.NewUserRepository(database.DB)
	conversationRepo := repository.NewConversationRepository(database.DB)
	knowledgeRepo := repository.NewKnowledgeRepository(database.DB, database.RDB)

	// 6. 初始化 Service (依赖注入)
	jwtManager := token.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpireHours, cfg.JWT.RefreshTokenExpireDays)
	tikaClient := tika.NewClient(cfg.Tika)
	llmClient := llm.NewClient(cfg.LLM)
	userService := service.NewUserService(userRepo, jwtManager)
	knowledgeService := service.NewKnowledgeService(knowledgeRepo, kafka.ProduceIndexTask)
	uploadService := service.NewUploadService(knowledgeService, tikaClient, cfg.Upload, cfg.MinIO.BucketName)
	retrievalService := service.NewRetrievalService(es.ESClient, cfg.Elasticsearch.IndexName, knowledgeRepo)
	conversationService := service.NewConversationService(conversationRepo)
	chatService := service.NewChatService(conversationRepo, retrievalService, llmClient, cfg.RAG.TopK)

	// 7. 启动后台 Kafka 消费者处理索引任务
	processor := pipeline.NewIndexProcessor(knowledgeRepo, cfg.Elasticsearch.IndexName)
	go kafka.StartConsumer(cfg.Kafka, processor)

	// 8. 设置 Gin 模式并创建路由引擎
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())

	// 9. 注册路由
	userHandler := handler.NewUserHandler(userService)
	chatHandler := handler.NewChatHandler(chatService, conversationService)
	ragHandler := handler.NewRagHandler(uploadService, knowledgeService)
	modelHandler := handler.NewModelHandler(llmClient)
	authRequired := middleware.AuthMiddleware(jwtManager, userService)

	apiV1 := r.Group("/api/v1")
	{
		apiV1.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now()})
		})

		users := apiV1.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)

			authed := users.Group("/")
			authed.Use(authRequired)
			{
				authed.GET("/me", userHandler.Me)
			}
		}

		chat := apiV1.Group("/chat")
		chat.Use(authRequired)
		{
			chat.POST("/message", chatHandler.SendMessage)
			chat.GET("/conversations", chatHandler.ListConversations)
			chat.GET("/conversations/:id", chatHandler.GetConversation)
			chat.DELETE("/conversations/:id", chatHandler.DeleteConversation)
		}

		rag := apiV1.Group("/rag")
		rag.Use(authRequired)
		{
			rag.POST("/upload", ragHandler.Upload)
			rag.GET("/knowledge-base", ragHandler.ListKnowledgeBase)
		}

		models := apiV1.Group("/models")
		models.Use(authRequired)
		{
			models.GET("", modelHandler.ListModels)
		}
	}

	// 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	// 等待中断信号以实现优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP 服务器关闭失败: %v", err)
	}

	log.Info("服务已优雅关闭")
}
