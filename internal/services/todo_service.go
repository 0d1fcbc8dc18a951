// Package servicesはビジネスロジックを扱います。
package services

import (
	"context"

	"github.com/ixd-system-design/todo-mongo-prisma/internal/models"
	"github.com/ixd-system-design/todo-mongo-prisma/internal/repositories"
)

// TodoService はTodo関連のビジネスロジックを扱います。
type TodoService struct {
	todoRepo *repositories.TodoRepository
}

// NewTodoService は新しいTodoServiceを作成します。
func NewTodoService(todoRepo *repositories.TodoRepository) *TodoService {
	return &TodoService{todoRepo: todoRepo}
}

// CreateTodo は新しいTodoを作成します。
func (s *TodoService) CreateTodo(ctx context.Context, in *models.TodoInput) (*models.Todo, error) {
	return s.todoRepo.Create(ctx, in)
}

// GetTodos はすべてのTodoをdate降順で取得します。
func (s *TodoService) GetTodos(ctx context.Context) ([]*models.Todo, error) {
	return s.todoRepo.FindAll(ctx)
}

// UpdateTodo は指定IDのTodoを更新します。
func (s *TodoService) UpdateTodo(ctx context.Context, id string, in *models.TodoInput) (*models.Todo, error) {
	return s.todoRepo.Update(ctx, id, in)
}

// DeleteTodo は指定IDのTodoを削除し、削除前のスナップショットを返します。
func (s *TodoService) DeleteTodo(ctx context.Context, id string) (*models.Todo, error) {
	return s.todoRepo.Delete(ctx, id)
}
