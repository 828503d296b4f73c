package internal

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// OpenDatabase opens a SQLite database in read-only mode
func OpenDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return nil, &StoreError{Path: path, Op: "open", Err: err}
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &StoreError{Path: path, Op: "open", Err: err}
	}

	return db, nil
}

// ConversationRow is one row of the conversations key/value table. The rowid
// doubles as the record's ordinal for timestamp estimation.
type ConversationRow struct {
	Ordinal int64
	Key     string
	Value   string
}

// QueryConversations reads every row of the conversations table in rowid
// order, which is the stable input order for tie-breaking downstream.
func QueryConversations(db *sql.DB) ([]ConversationRow, error) {
	rows, err := db.Query("SELECT rowid, key, value FROM conversations WHERE value IS NOT NULL ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var result []ConversationRow
	for rows.Next() {
		var row ConversationRow
		var value sql.NullString
		if err := rows.Scan(&row.Ordinal, &row.Key, &value); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		if value.Valid {
			row.Value = value.String
			result = append(result, row)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
