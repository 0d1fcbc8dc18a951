// Package repositoriesはデータベース操作を行います。
package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ixd-system-design/todo-mongo-prisma/internal/models"
)

// ErrTodoNotFound はTODOが見つからない場合のエラーです。
var ErrTodoNotFound = errors.New("todo not found")

// TodoRepository はtodosコレクションに対する操作を行うための構造体です。
type TodoRepository struct {
	coll *mongo.Collection
}

// NewTodoRepository は新しいTodoRepositoryインスタンスを作成します。
func NewTodoRepository(db *mongo.Database) *TodoRepository {
	return &TodoRepository{coll: db.Collection("todos")}
}

// Create は新しいTodoタスクをコレクションに挿入します。
// dateが未指定の場合は挿入時刻がデフォルトとして設定されます。
func (r *TodoRepository) Create(ctx context.Context, in *models.TodoInput) (*models.Todo, error) {
	t := &models.Todo{Date: time.Now()}
	if in.Content != nil {
		t.Content = *in.Content
	}
	if in.Date != nil {
		t.Date = *in.Date
	}

	// _id は omitempty のため、未設定ならドライバーが採番します。
	result, err := r.coll.InsertOne(ctx, t)
	if err != nil {
		log.Printf("Failed to insert todo: %v", err)
		return nil, fmt.Errorf("could not insert todo: %w", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected inserted ID type %T", result.InsertedID)
	}
	t.ID = oid

	return t, nil
}

// FindAll はすべてのTodoタスクをdate降順で取得します。
func (r *TodoRepository) FindAll(ctx context.Context) ([]*models.Todo, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		log.Printf("Failed to query todos: %v", err)
		return nil, fmt.Errorf("could not query todos: %w", err)
	}
	defer cursor.Close(ctx)

	// 0件でも JSON では [] になるよう、nil ではなく空スライスを返します。
	todos := []*models.Todo{}
	if err := cursor.All(ctx, &todos); err != nil {
		log.Printf("Failed to decode todos: %v", err)
		return nil, fmt.Errorf("could not decode todos: %w", err)
	}
	if todos == nil {
		todos = []*models.Todo{}
	}

	return todos, nil
}

// Update は指定されたIDのTodoタスクを更新し、更新後のドキュメントを返します。
// bodyに含まれるフィールドのみを$setでマージし、それ以外は変更しません。
func (r *TodoRepository) Update(ctx context.Context, id string, in *models.TodoInput) (*models.Todo, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid todo id %q: %w", id, err)
	}

	set := bson.M{}
	if in.Content != nil {
		set["content"] = *in.Content
	}
	if in.Date != nil {
		set["date"] = *in.Date
	}

	var t models.Todo
	if len(set) == 0 {
		// 空の$setはエンジンが拒否するため、変更なしの場合は現状のドキュメントを返します。
		err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&t)
	} else {
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&t)
	}
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTodoNotFound
		}
		log.Printf("Failed to update todo: %v", err)
		return nil, fmt.Errorf("could not update todo: %w", err)
	}

	return &t, nil
}

// Delete は指定されたIDのTodoタスクを削除し、削除前のスナップショットを返します。
func (r *TodoRepository) Delete(ctx context.Context, id string) (*models.Todo, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid todo id %q: %w", id, err)
	}

	var t models.Todo
	err = r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTodoNotFound
		}
		log.Printf("Failed to delete todo: %v", err)
		return nil, fmt.Errorf("could not delete todo: %w", err)
	}

	return &t, nil
}
