package database

import (
	"database/sql"
	stdlog "log"

	"github.com/username/taxmate/backend/src/logger"
	_ "modernc.org/sqlite"
)

var DB *sql.DB

func InitDB(databasePath string) {
	db, err := sql.Open("sqlite", databasePath)
	if err != nil {
		stdlog.Fatalf("failed to open database at %s: %v", databasePath, err)
	}

	DB = db

	if logger.L != nil {
		logger.L.Info("Checking database migrations", "databasePath", databasePath)
	}
	migrateTaxRecordsTable()

	createTableStatement := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		token TEXT NOT NULL,
		refresh_token TEXT NOT NULL,
		user_agent TEXT,
		client_ip TEXT,
		is_blocked BOOLEAN DEFAULT FALSE,
		expires_at TIMESTAMP,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(user_id) REFERENCES users(id)
	);

	CREATE TABLE IF NOT EXISTS business_profiles (
		user_id INTEGER PRIMARY KEY,
		business_type TEXT NOT NULL DEFAULT 'personal',
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(user_id) REFERENCES users(id)
	);

	CREATE TABLE IF NOT EXISTS tax_records (
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
		PRIMARY KEY(user_id, id),
		FOREIGN KEY(user_id) REFERENCES users(id)
	);

	CREATE TABLE IF NOT EXISTS filings (
		id TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL,
		type TEXT NOT NULL,
		period INTEGER NOT NULL,
		amount REAL NOT NULL,
		reference TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(user_id) REFERENCES users(id)
	);

	CREATE TABLE IF NOT EXISTS invoices (
		id TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL,
		record_id TEXT NOT NULL,
		amount REAL NOT NULL,
		vat REAL NOT NULL,
		date TEXT NOT NULL,
		description TEXT,
		status TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(user_id) REFERENCES users(id)
	);
	`

	_, err = DB.Exec(createTableStatement)
	if err != nil {
		if logger.L != nil {
			logger.L.Error("failed to create tables", "error", err)
		}
		stdlog.Fatalf("failed to create tables: %v", err)
	}
	if logger.L != nil {
		logger.L.Info("Database tables ensured/created.")
	}
}

// migrateTaxRecordsTable adds columns introduced after the first release to
// existing databases. SQLite has no ADD COLUMN IF NOT EXISTS, so the schema
// is inspected via PRAGMA first.
func migrateTaxRecordsTable() {
	var tableName string
	err := DB.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='tax_records'").Scan(&tableName)
	if err != nil {
		if err == sql.ErrNoRows {
			return
		}
		if logger.L != nil {
			logger.L.Error("Error checking for tax_records table", "error", err)
		}
		return
	}

	rows, err := DB.Query("PRAGMA table_info(tax_records)")
	if err != nil {
		if logger.L != nil {
			logger.L.Error("Error querying table schema for tax_records", "error", err)
		}
		return
	}
	defer rows.Close()

	columnExists := make(map[string]bool)
	for rows.Next() {
		var cid, pk int
		var name, dataType string
		var notnullVal int
		var dfltValue interface{}
		if err := rows.Scan(&cid, &name, &dataType, &notnullVal, &dfltValue, &pk); err != nil {
			if logger.L != nil {
				logger.L.Error("Error scanning column info for tax_records", "error", err)
			}
			return
		}
		columnExists[name] = true
	}
	if err = rows.Err(); err != nil {
		if logger.L != nil {
			logger.L.Error("Error iterating over column info for tax_records", "error", err)
		}
		return
	}

	if _, ok := columnExists["description"]; !ok {
		if _, err := DB.Exec("ALTER TABLE tax_records ADD COLUMN description TEXT"); err != nil {
			logger.L.Error("Error adding 'description' column to 'tax_records' table", "error", err)
		} else {
			logger.L.Info("Added 'description' column to 'tax_records' table")
		}
	}
}
