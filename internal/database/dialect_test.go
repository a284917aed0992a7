package database

import (
	"strings"
	"testing"
)

func TestDialects(t *testing.T) {
	tests := []struct {
		name             string
		dialect          Dialect
		driver           string
		lastInsertID     bool
		migrationsSubdir string
		lockClause       string
	}{
		{name: "sqlite", dialect: NewSQLiteDialect(), driver: "sqlite3", lastInsertID: true, migrationsSubdir: "sqlite", lockClause: ""},
		{name: "postgres", dialect: NewPostgresDialect(), driver: "postgres", lastInsertID: false, migrationsSubdir: "postgres", lockClause: " FOR UPDATE"},
		{name: "mysql", dialect: NewMySQLDialect(), driver: "mysql", lastInsertID: true, migrationsSubdir: "mysql", lockClause: " FOR UPDATE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dialect.DriverName(); got != tt.driver {
				t.Errorf("DriverName() = %v, want %v", got, tt.driver)
			}
			if got := tt.dialect.SupportsLastInsertId(); got != tt.lastInsertID {
				t.Errorf("SupportsLastInsertId() = %v, want %v", got, tt.lastInsertID)
			}
			if got := tt.dialect.MigrationsSubdir(); got != tt.migrationsSubdir {
				t.Errorf("MigrationsSubdir() = %v, want %v", got, tt.migrationsSubdir)
			}
			if got := tt.dialect.LockClause(); got != tt.lockClause {
				t.Errorf("LockClause() = %q, want %q", got, tt.lockClause)
			}
			if !strings.Contains(tt.dialect.CreateMigrationsTableQuery(), "migrations") {
				t.Error("CreateMigrationsTableQuery() should create the migrations table")
			}
		})
	}
}

func TestDSN(t *testing.T) {
	t.Run("sqlite sets busy timeout and immediate locking", func(t *testing.T) {
		dsn := NewSQLiteDialect().DSN(DialectConfig{Path: "/tmp/binakata.db"})
		if !strings.HasPrefix(dsn, "/tmp/binakata.db?") {
			t.Errorf("DSN() = %q, want path prefix", dsn)
		}
		for _, opt := range []string{"_busy_timeout=5000", "_txlock=immediate", "_foreign_keys=on"} {
			if !strings.Contains(dsn, opt) {
				t.Errorf("DSN() = %q, missing %s", dsn, opt)
			}
		}
	})

	t.Run("postgres passes URL through", func(t *testing.T) {
		url := "postgres://u:p@localhost/binakata?sslmode=disable"
		if got := NewPostgresDialect().DSN(DialectConfig{URL: url}); got != url {
			t.Errorf("DSN() = %q, want %q", got, url)
		}
	})

	t.Run("mysql forces parseTime", func(t *testing.T) {
		dsn := NewMySQLDialect().DSN(DialectConfig{URL: "u:p@tcp(localhost:3306)/binakata"})
		if !strings.Contains(dsn, "parseTime=true") {
			t.Errorf("DSN() = %q, want parseTime=true", dsn)
		}
	})
}

func TestRewriteQuery(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		query    string
		expected string
	}{
		{
			name:     "SQLite no change",
			dialect:  NewSQLiteDialect(),
			query:    "SELECT * FROM children WHERE id = ?",
			expected: "SELECT * FROM children WHERE id = ?",
		},
		{
			name:     "PostgreSQL single placeholder",
			dialect:  NewPostgresDialect(),
			query:    "SELECT * FROM children WHERE id = ?",
			expected: "SELECT * FROM children WHERE id = $1",
		},
		{
			name:     "PostgreSQL multiple placeholders",
			dialect:  NewPostgresDialect(),
			query:    "UPDATE assessments SET risk_score = ?, recommendation = ? WHERE id = ? AND submitted_at IS NULL",
			expected: "UPDATE assessments SET risk_score = $1, recommendation = $2 WHERE id = $3 AND submitted_at IS NULL",
		},
		{
			name:     "MySQL no change",
			dialect:  NewMySQLDialect(),
			query:    "SELECT * FROM learning_progress WHERE child_id = ? AND module_type = ? FOR UPDATE",
			expected: "SELECT * FROM learning_progress WHERE child_id = ? AND module_type = ? FOR UPDATE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.dialect.RewriteQuery(tt.query)
			if result != tt.expected {
				t.Errorf("RewriteQuery() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestSplitStatements(t *testing.T) {
	content := `-- leading comment
CREATE TABLE a (id INTEGER);

-- second
CREATE INDEX idx_a ON a(id);
`
	stmts := splitStatements(content)
	if len(stmts) != 2 {
		t.Fatalf("splitStatements() returned %d statements, want 2: %q", len(stmts), stmts)
	}
	if stmts[0] != "CREATE TABLE a (id INTEGER)" {
		t.Errorf("first statement = %q", stmts[0])
	}
	if stmts[1] != "CREATE INDEX idx_a ON a(id)" {
		t.Errorf("second statement = %q", stmts[1])
	}
}
