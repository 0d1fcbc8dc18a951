// Package databaseはMongoDB接続のライフサイクルを管理します。
package database

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

// GetURI は環境変数からMongoDB接続文字列を取得します。
func GetURI() string {
	// main.go で godotenv.Load() が呼び出されるため、ここでは省略
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://127.0.0.1:27017"
	}
	return uri
}

// GetDBName は環境変数からデータベース名を取得します。
func GetDBName() string {
	name := os.Getenv("MONGO_DB")
	if name == "" {
		name = "todo"
	}
	return name
}

// InitDB はデータベース接続を初期化します。
// 接続はプロセス全体で共有されるため、起動時に一度だけ呼び出します。
func InitDB() (*mongo.Client, *mongo.Database) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(GetURI()))
	if err != nil {
		log.Fatalf("Fatal: Failed to open database connection: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("Fatal: Failed to ping database: %v", err)
	}
	log.Println("Successfully connected to MongoDB!")
	return client, client.Database(GetDBName())
}

// CloseDB はデータベース接続を明示的に切断します。終了シグナル受信時に呼び出されます。
func CloseDB(client *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := client.Disconnect(ctx); err != nil {
		log.Printf("Failed to disconnect from database: %v", err)
		return
	}
	log.Println("Database connection closed")
}
