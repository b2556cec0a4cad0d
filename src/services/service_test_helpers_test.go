package services

import (
	"database/sql"
	"os"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/username/taxmate/backend/src/logger"
	"github.com/username/taxmate/backend/src/models"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}

// newTestDB opens an isolated in-memory database with the production schema.
// MaxOpenConns is pinned to 1 so the pool cannot hand out a second in-memory
// connection with no tables in it.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("opening in-memory database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	schema := `
	CREATE TABLE users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE business_profiles (
		user_id INTEGER PRIMARY KEY,
		business_type TEXT NOT NULL DEFAULT 'personal',
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE tax_records (
		id TEXT NOT NULL,
		user_id INTEGER NOT NULL,
		type TEXT NOT NULL,
		sub_type TEXT NOT NULL DEFAULT '',
		vendor TEXT NOT NULL,
		date TEXT NOT NULL,
		description TEXT,
		total_amount REAL NOT NULL,
		vat_amount REAL NOT NULL,
		timestamp INTEGER NOT NULL,
		PRIMARY KEY(user_id, id)
	);
	CREATE TABLE filings (
		id TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL,
		type TEXT NOT NULL,
		period INTEGER NOT NULL,
		amount REAL NOT NULL,
		reference TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE invoices (
		id TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL,
		record_id TEXT NOT NULL,
		amount REAL NOT NULL,
		vat REAL NOT NULL,
		date TEXT NOT NULL,
		description TEXT,
		status TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("creating test schema: %v", err)
	}
	return db
}

func insertTestUser(t *testing.T, db *sql.DB, username, email string) int64 {
	t.Helper()
	res, err := db.Exec(`INSERT INTO users (username, password, email) VALUES (?, ?, ?)`,
		username, "not-a-real-hash", email)
	if err != nil {
		t.Fatalf("inserting test user: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("reading test user id: %v", err)
	}
	return id
}

func incomeRecord(amount, vat float64) models.TransactionRecord {
	return models.TransactionRecord{
		Type:        models.RecordTypeIncome,
		Vendor:      "Client Ltd",
		TotalAmount: amount,
		VATAmount:   vat,
	}
}

func expenseRecord(vendor string, amount, vat float64) models.TransactionRecord {
	return models.TransactionRecord{
		Type:        models.RecordTypeExpense,
		Vendor:      vendor,
		TotalAmount: amount,
		VATAmount:   vat,
	}
}
