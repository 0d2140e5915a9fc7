package database

import (
	"database/sql"
	"fmt"
	stdlog "log"

	"github.com/username/honorarios/src/logger"
	_ "modernc.org/sqlite"
)

var DB *sql.DB

const schema = `
	CREATE TABLE IF NOT EXISTS profiles (
		user_id TEXT PRIMARY KEY,
		uid TEXT NOT NULL,
		email TEXT,
		currency TEXT,
		role TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS transactions (
		id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		team_id TEXT,
		fecha_operacion TEXT,
		fecha_captacion TEXT,
		fecha_reserva TEXT,
		direccion_reserva TEXT,
		numero_casa TEXT,
		realizador_venta TEXT,
		tipo_operacion TEXT NOT NULL,
		estado TEXT NOT NULL,
		valor_reserva REAL DEFAULT 0,
		porcentaje_honorarios_broker REAL DEFAULT 0,
		porcentaje_honorarios_asesor REAL DEFAULT 0,
		porcentaje_honorarios_asesor_adicional REAL DEFAULT 0,
		porcentaje_punta_compradora REAL DEFAULT 0,
		porcentaje_punta_vendedora REAL DEFAULT 0,
		porcentaje_compartido REAL DEFAULT 0,
		porcentaje_referido REAL DEFAULT 0,
		porcentaje_franquicia REAL DEFAULT 0,
		reparticion_honorarios_asesor REAL DEFAULT 0,
		honorarios_broker REAL DEFAULT 0,
		honorarios_asesor REAL DEFAULT 0,
		user_uid TEXT,
		user_uid_adicional TEXT,
		punta_compradora BOOLEAN DEFAULT FALSE,
		punta_vendedora BOOLEAN DEFAULT FALSE,
		exclusiva BOOLEAN DEFAULT FALSE,
		no_exclusiva BOOLEAN DEFAULT FALSE,
		captacion_no_es_mia BOOLEAN DEFAULT FALSE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (user_id, id)
	);

	CREATE INDEX IF NOT EXISTS idx_transactions_user_estado ON transactions(user_id, estado);
	`

// InitDB opens the database at databasePath into DB, exiting on failure.
func InitDB(databasePath string) {
	db, err := Open(databasePath)
	if err != nil {
		stdlog.Fatalf("failed to initialise database at %s: %v", databasePath, err)
	}
	DB = db
}

// Open connects to a SQLite file (or "file::memory:") and ensures the schema.
func Open(databasePath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", databasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", databasePath, err)
	}
	// SQLite serializes writers anyway, and an in-memory database only lives
	// on its own connection.
	db.SetMaxOpenConns(1)

	logger.L.Info("Checking database migrations", "databasePath", databasePath)
	if err := migrateTransactionsTable(db); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		logger.L.Error("failed to create tables", "error", err)
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	logger.L.Info("Database tables ensured/created.")
	return db, nil
}

// migrateTransactionsTable adds columns introduced after the first schema to an
// existing transactions table.
func migrateTransactionsTable(db *sql.DB) error {
	var tableName string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='transactions'").Scan(&tableName)
	if err != nil {
		if err == sql.ErrNoRows {
			logger.L.Info("transactions table does not exist, no migration needed as table will be created.")
			return nil
		}
		return fmt.Errorf("checking for transactions table: %w", err)
	}

	columnExists, err := tableColumns(db, "transactions")
	if err != nil {
		return err
	}

	added := []struct{ name, ddl string }{
		{"porcentaje_honorarios_asesor_adicional", "ALTER TABLE transactions ADD COLUMN porcentaje_honorarios_asesor_adicional REAL DEFAULT 0"},
		{"porcentaje_franquicia", "ALTER TABLE transactions ADD COLUMN porcentaje_franquicia REAL DEFAULT 0"},
		{"captacion_no_es_mia", "ALTER TABLE transactions ADD COLUMN captacion_no_es_mia BOOLEAN DEFAULT FALSE"},
		{"team_id", "ALTER TABLE transactions ADD COLUMN team_id TEXT"},
		{"reparticion_honorarios_asesor", "ALTER TABLE transactions ADD COLUMN reparticion_honorarios_asesor REAL DEFAULT 0"},
	}
	for _, col := range added {
		if columnExists[col.name] {
			continue
		}
		if _, err := db.Exec(col.ddl); err != nil {
			logger.L.Error("Error adding column to transactions table", "column", col.name, "error", err)
			continue
		}
		logger.L.Info("Added column to transactions table", "column", col.name)
	}
	return nil
}

func tableColumns(db *sql.DB, table string) (map[string]bool, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, fmt.Errorf("querying table schema for %s: %w", table, err)
	}
	defer rows.Close()

	columnExists := make(map[string]bool)
	for rows.Next() {
		var cid, pk int
		var name, dataType string
		var notnullVal int
		var dfltValue interface{}
		if err := rows.Scan(&cid, &name, &dataType, &notnullVal, &dfltValue, &pk); err != nil {
			return nil, fmt.Errorf("scanning column info for %s: %w", table, err)
		}
		columnExists[name] = true
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating over column info for %s: %w", table, err)
	}
	return columnExists, nil
}
