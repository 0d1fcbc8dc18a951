package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ixd-system-design/todo-mongo-prisma/internal/models"
	"github.com/ixd-system-design/todo-mongo-prisma/internal/repositories"
	"github.com/ixd-system-design/todo-mongo-prisma/internal/routes"
)

const connectTimeout = 5 * time.Second

// SetupTestDB はテスト用のデータベース接続を確立し、コレクションを初期化します。
// テスト用データベースに接続できない場合はテストをスキップします。
func SetupTestDB(t *testing.T) (*mongo.Client, *gin.Engine, *repositories.TodoRepository) {
	t.Helper()

	_ = godotenv.Load("../../.env")

	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		uri = "mongodb://127.0.0.1:27017"
	}
	dbName := os.Getenv("TEST_MONGO_DB")
	if dbName == "" {
		dbName = "todo_test"
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Skipf("Skipping: failed to open test database connection: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		t.Skipf("Skipping: test database is unreachable: %v", err)
	}

	db := client.Database(dbName)

	// テストのたびにクリーンな状態にするため、コレクションを削除
	if err := db.Collection("todos").Drop(ctx); err != nil {
		t.Fatalf("Failed to drop todos collection: %v", err)
	}

	gin.SetMode(gin.TestMode)
	router := routes.SetupRouter(client, db)
	todoRepo := repositories.NewTodoRepository(db)

	t.Cleanup(func() {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cleanupCancel()
		_ = client.Disconnect(cleanupCtx)
	})

	return client, router, todoRepo
}

// CreateTestTodo はAPI経由でテスト用のTODOを作成します。
func CreateTestTodo(t *testing.T, router *gin.Engine, content string) *models.Todo {
	t.Helper()

	payload := map[string]interface{}{
		"content": content,
	}
	body, _ := json.Marshal(payload)

	req, _ := http.NewRequest(http.MethodPost, "/todo", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code, "TODO作成に失敗しました: %s", resp.Body.String())

	var createdTodo models.Todo
	err := json.Unmarshal(resp.Body.Bytes(), &createdTodo)
	require.NoError(t, err)
	return &createdTodo
}

// CreateTestTodoWithDate は日付を指定してテスト用のTODOを作成します。ソート順の検証に使用します。
func CreateTestTodoWithDate(t *testing.T, router *gin.Engine, content string, date time.Time) *models.Todo {
	t.Helper()

	payload := map[string]interface{}{
		"content": content,
		"date":    date.Format(time.RFC3339Nano),
	}
	body, _ := json.Marshal(payload)

	req, _ := http.NewRequest(http.MethodPost, "/todo", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code, "TODO作成に失敗しました: %s", resp.Body.String())

	var createdTodo models.Todo
	err := json.Unmarshal(resp.Body.Bytes(), &createdTodo)
	require.NoError(t, err)
	return &createdTodo
}
