package database

import (
	"database/sql"
	stdlog "log"

	"github.com/username/cafeanalyst/backend/src/logger"
	"github.com/username/cafeanalyst/backend/src/models"
	_ "modernc.org/sqlite"
)

var DB *sql.DB

// InitDB opens the sqlite database and ensures the analyses audit table
// exists. The table holds per-request operational metadata only; computed
// metrics are never read back from it.
func InitDB(databasePath string) {
	db, err := sql.Open("sqlite", databasePath)
	if err != nil {
		stdlog.Fatalf("failed to open database at %s: %v", databasePath, err)
	}

	DB = db

	createTableStatement := `
	CREATE TABLE IF NOT EXISTS analyses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		source_format TEXT NOT NULL,
		rows_processed INTEGER NOT NULL,
		total_revenue REAL NOT NULL DEFAULT 0,
		net_profit REAL NOT NULL DEFAULT 0
	);
	`

	if _, err = DB.Exec(createTableStatement); err != nil {
		if logger.L != nil {
			logger.L.Error("failed to create tables", "error", err)
		}
		stdlog.Fatalf("failed to create tables: %v", err)
	}
	if logger.L != nil {
		logger.L.Info("Database tables ensured/created.", "databasePath", databasePath)
	} else {
		stdlog.Println("Database tables ensured/created.")
	}
}

// InsertAnalysis records one audit row. A nil DB (audit disabled, or tests)
// is a silent no-op.
func InsertAnalysis(sourceFormat string, rowsProcessed int, totalRevenue, netProfit float64) error {
	if DB == nil {
		return nil
	}
	_, err := DB.Exec(
		`INSERT INTO analyses (source_format, rows_processed, total_revenue, net_profit) VALUES (?, ?, ?, ?)`,
		sourceFormat, rowsProcessed, totalRevenue, netProfit,
	)
	return err
}

// ListRecentAnalyses returns the newest audit rows, most recent first.
func ListRecentAnalyses(limit int) ([]models.AnalysisRecord, error) {
	if DB == nil {
		return []models.AnalysisRecord{}, nil
	}
	rows, err := DB.Query(
		`SELECT id, created_at, source_format, rows_processed, total_revenue, net_profit FROM analyses ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.AnalysisRecord
	for rows.Next() {
		var rec models.AnalysisRecord
		if err := rows.Scan(&rec.ID, &rec.CreatedAt, &rec.SourceFormat, &rec.RowsProcessed, &rec.TotalRevenue, &rec.NetProfit); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
