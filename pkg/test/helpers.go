package test

import (
	"context"
	"fmt"
	"log"
	"testing"

	"github.com/google/uuid"

	"activityapp/internal/adapter/database"
)

// InitTestDB opens a private in-memory database with every migration applied.
// The single connection keeps the database alive for the lifetime of the handle.
func InitTestDB() *database.DB {
	dsn := fmt.Sprintf("file:test_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := database.NewSQLite(context.Background(), dsn, database.Options{
		Name:         "activityapp_test",
		MaxOpenConns: 1,
	})

	if err != nil {
		log.Fatal(err)
	}

	return db
}

type TestSetup[T any] struct {
	DB   *database.DB
	Repo T
}

func SetupTest[T any](t *testing.T, build func(db *database.DB) T) *TestSetup[T] {
	db := InitTestDB()

	t.Cleanup(func() {
		db.Close()
	})

	return &TestSetup[T]{
		DB:   db,
		Repo: build(db),
	}
}

// ActivityTypeID returns the internal id of a seeded activity type.
func ActivityTypeID(t *testing.T, db *database.DB, name string) int {
	var id int

	if err := db.QueryRow("SELECT id FROM activity_types WHERE name = ?", name).Scan(&id); err != nil {
		t.Fatalf("activity type %s not found: %v", name, err)
	}

	return id
}

// ActivityTypeUUID returns the public id of a seeded activity type.
func ActivityTypeUUID(t *testing.T, db *database.DB, name string) string {
	var id string

	if err := db.QueryRow("SELECT uuid FROM activity_types WHERE name = ?", name).Scan(&id); err != nil {
		t.Fatalf("activity type %s not found: %v", name, err)
	}

	return id
}
