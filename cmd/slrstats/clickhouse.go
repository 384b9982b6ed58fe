package main

import (
	"database/sql"
	"fmt"

	_ "github.com/ClickHouse/clickhouse-go"
	"github.com/jmoiron/sqlx"

	"slrcore"
)

// normalPointRow is one persisted Normal-Point record: sqlx over
// the ClickHouse driver, a MergeTree table, one row per bin and
// statistic phase.
type normalPointRow struct {
	SessionID   string
	BinIndex    int
	Accepted    int
	Rejected    int
	MeanPs      float64
	RMSPs       float64
	Skew        float64
	ExcessKurt  float64
	PeakPs      float64
	Iterations  int
	AcceptedPct float64
	Phase       string // "rfrms" | "onerms"
}

func openClickHouse(cfg *SessionConfig) (*sqlx.DB, error) {
	tcpInfo := fmt.Sprintf(
		"http://%s/?username=%s&password=%s&database=%s&read_timeout=5&write_timeout=5&alt_hosts=%s",
		cfg.ClickHouse.Host, cfg.ClickHouse.User, cfg.ClickHouse.Password, cfg.ClickHouse.Database, cfg.ClickHouse.AltHost,
	)
	db, err := sqlx.Open("clickhouse", tcpInfo)
	if err != nil {
		return nil, fmt.Errorf("open clickhouse: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(20)
	return db, nil
}

const createNormalPointsTable = `
CREATE TABLE IF NOT EXISTS normal_points (
	session_id    String,
	bin_index     Int32,
	phase         String,
	accepted      Int32,
	rejected      Int32,
	mean_ps       Float64,
	rms_ps        Float64,
	skew          Float64,
	excess_kurt   Float64,
	peak_ps       Float64,
	iterations    Int32,
	accepted_pct  Float64
) ENGINE = MergeTree() ORDER BY (session_id, bin_index, phase)
`

// writeBinResults persists both statistic phases of every bin to
// ClickHouse in one transaction, mirroring rtkrcv's
// tx := client.Begin(); stmt := tx.Prepare(...); stmt.Exec(...); tx.Commit() shape.
func writeBinResults(db *sqlx.DB, sessionID string, results []slrcore.BinResult) error {
	if _, err := db.Exec(createNormalPointsTable); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	stmt, err := tx.Prepare(`insert into normal_points
		(session_id, bin_index, phase, accepted, rejected, mean_ps, rms_ps, skew, excess_kurt, peak_ps, iterations, accepted_pct)
		values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}

	for i, br := range results {
		if err := execBinStats(stmt, sessionID, i, "rfrms", br.RFRMS); err != nil {
			tx.Rollback()
			return err
		}
		if err := execBinStats(stmt, sessionID, i, "onerms", br.OneRMS); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

func execBinStats(stmt *sql.Stmt, sessionID string, binIndex int, phase string, bs slrcore.BinStats) error {
	_, err := stmt.Exec(sessionID, binIndex, phase, bs.Accepted, bs.Rejected, bs.Mean, bs.RMS, bs.Skew, bs.ExcessKurtosis, bs.Peak, bs.Iterations, bs.AcceptedPct)
	return err
}
