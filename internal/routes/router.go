// Package routesはroutingを行います。
package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ixd-system-design/todo-mongo-prisma/internal/handlers"
	"github.com/ixd-system-design/todo-mongo-prisma/internal/metrics"
	"github.com/ixd-system-design/todo-mongo-prisma/internal/repositories"
	"github.com/ixd-system-design/todo-mongo-prisma/internal/services"
	"github.com/ixd-system-design/todo-mongo-prisma/web"
)

const healthTimeout = 2 * time.Second

// SetupRouter はGinルーターをセットアップし、すべてのエンドポイントを登録します。
func SetupRouter(client *mongo.Client, db *mongo.Database) *gin.Engine {
	r := gin.Default()

	// CORS対策
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"http://localhost:3000", "http://localhost:8080"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	r.Use(cors.New(config))

	r.Use(metrics.Middleware())

	// リポジトリ
	todoRepo := repositories.NewTodoRepository(db)

	// サービス
	todoService := services.NewTodoService(todoRepo)

	// ハンドラー
	todoHandler := handlers.NewTodoHandler(todoService)

	// ルーティング
	r.GET("/healthz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()
		if err := client.Ping(ctx, nil); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database connection failed", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Database connection is healthy"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	r.POST("/todo", todoHandler.CreateTodoHandler)
	r.GET("/todos", todoHandler.GetTodosHandler)
	r.PUT("/todo/:id", todoHandler.UpdateTodoHandler)
	r.DELETE("/todo/:id", todoHandler.DeleteTodoHandler)

	// 埋め込みフロントエンド（/ と静的アセット）
	r.NoRoute(gin.WrapH(http.FileServer(web.FS())))

	return r
}
