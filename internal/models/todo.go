// Package modelsはTodoを定義します。
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Todo struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"` // 主キー（ストレージエンジンが採番）
	Content string             `bson:"content" json:"content"`  // タスクの内容
	Date    time.Time          `bson:"date" json:"date"`        // 作成日時（降順ソートに使用）
}

// TodoInput はリクエストボディから受け取るフィールドの部分集合です。
// nil のフィールドは「指定なし」を意味し、更新時にはマージ対象になりません。
type TodoInput struct {
	Content *string    `json:"content"`
	Date    *time.Time `json:"date"`
}
