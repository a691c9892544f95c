package main

import (
	"log"

	"docucortex-be/internal/config"
	"docucortex-be/internal/model"
	"docucortex-be/pkg/database"
)

func main() {
	cfg := config.Load()

	db, err := database.NewGormDB(database.GormConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting GORM migration...")

	// 1. Extensions GORM AutoMigrate does not manage.
	log.Println("Step 1: Setting up extensions...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
		`CREATE EXTENSION IF NOT EXISTS vector;`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 2. AutoMigrate the schema.
	log.Println("Step 2: Running AutoMigrate...")

	models := []interface{}{
		&model.ConversationRecord{},
		&model.Document{},
		&model.DocumentEmbedding{},
		&model.Equipment{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 3. The ANN index for cosine search. AutoMigrate cannot express it.
	log.Println("Step 3: Creating vector index...")

	postMigrationSQL := []string{
		`CREATE INDEX IF NOT EXISTS idx_document_embeddings_cosine
		 ON document_embeddings USING ivfflat (embedding_value vector_cosine_ops) WITH (lists = 100);`,
	}
	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
