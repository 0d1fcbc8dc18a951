package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ixd-system-design/todo-mongo-prisma/internal/models"
	"github.com/ixd-system-design/todo-mongo-prisma/testutil"
)

// TestEndToEndScenario は作成→一覧→更新→削除→一覧の一連の流れを検証します。
func TestEndToEndScenario(t *testing.T) {
	_, router, _ := testutil.SetupTestDB(t)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		t.Helper()
		var req *http.Request
		if body == "" {
			req, _ = http.NewRequest(method, path, nil)
		} else {
			req, _ = http.NewRequest(method, path, strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	// POST /todo
	w := do(http.MethodPost, "/todo", `{"content": "buy milk"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var created models.Todo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, "buy milk", created.Content)
	require.False(t, created.ID.IsZero())
	require.False(t, created.Date.IsZero())

	// GET /todos
	w = do(http.MethodGet, "/todos", "")
	require.Equal(t, http.StatusOK, w.Code)
	var todos []*models.Todo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &todos))
	require.Len(t, todos, 1)
	require.Equal(t, created.ID, todos[0].ID)
	require.Equal(t, "buy milk", todos[0].Content)

	// PUT /todo/:id
	w = do(http.MethodPut, fmt.Sprintf("/todo/%s", created.ID.Hex()), `{"content": "buy oat milk"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.Todo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, "buy oat milk", updated.Content)

	// DELETE /todo/:id は削除前のスナップショットを返す
	w = do(http.MethodDelete, fmt.Sprintf("/todo/%s", created.ID.Hex()), "")
	require.Equal(t, http.StatusOK, w.Code)
	var deleted models.Todo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &deleted))
	require.Equal(t, created.ID, deleted.ID)
	require.Equal(t, "buy oat milk", deleted.Content)

	// GET /todos は空の配列に戻る
	w = do(http.MethodGet, "/todos", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

// TestFrontendServed は埋め込みフロントエンドがルートから配信されることを検証します。
func TestFrontendServed(t *testing.T) {
	_, router, _ := testutil.SetupTestDB(t)

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "<title>Todo</title>")
	require.Contains(t, w.Body.String(), `id="notices"`)
}

// TestMetricsEndpoint は/metricsがPrometheus形式で応答することを検証します。
func TestMetricsEndpoint(t *testing.T) {
	_, router, _ := testutil.SetupTestDB(t)

	// 少なくとも1リクエストを記録してから取得する
	listReq, _ := http.NewRequest(http.MethodGet, "/todos", nil)
	listW := httptest.NewRecorder()
	router.ServeHTTP(listW, listReq)

	req, _ := http.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "todo_http_requests_total")
}
