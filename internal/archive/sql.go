package archive

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/preston-bernstein/esports-sim/internal/domain/matches"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationFS embed.FS

// Dialect names a supported SQL backend.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

const (
	defaultLimit = 50
	pingTimeout  = 10 * time.Second
)

// SQLArchive stores results through database/sql.
type SQLArchive struct {
	dialect Dialect
	db      *sql.DB
	now     func() time.Time
}

// Open connects to the backend, applies pending migrations, and returns the archive.
func Open(ctx context.Context, dialect Dialect, dsn string) (*SQLArchive, error) {
	var driverName string
	switch dialect {
	case DialectSQLite:
		driverName = "sqlite"
		if dsn == "" {
			return nil, errors.New("archive: sqlite requires a database path")
		}
		if dir := filepath.Dir(dsn); dir != "." && !strings.HasPrefix(dsn, "file:") {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite directory: %w", err)
			}
		}
	case DialectPostgres:
		driverName = "pgx"
		if dsn == "" {
			return nil, errors.New("archive: postgres requires a DSN")
		}
	default:
		return nil, fmt.Errorf("unsupported archive dialect %q", dialect)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", dialect, err)
	}
	if dialect == DialectSQLite {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s database: %w", dialect, err)
	}

	a := &SQLArchive{dialect: dialect, db: db, now: time.Now}
	if err := a.applyMigrations(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return a, nil
}

func (a *SQLArchive) Close() error {
	return a.db.Close()
}

func (a *SQLArchive) bind(pos int) string {
	if a.dialect == DialectPostgres {
		return fmt.Sprintf("$%d", pos)
	}
	return "?"
}

func (a *SQLArchive) placeholders(n int) string {
	ph := make([]string, n)
	for i := range ph {
		ph[i] = a.bind(i + 1)
	}
	return strings.Join(ph, ", ")
}

func (a *SQLArchive) applyMigrations(ctx context.Context) error {
	create := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL
		)
	`
	if _, err := a.db.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	applied := map[string]bool{}
	rows, err := a.db.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return fmt.Errorf("read schema_migrations: %w", err)
	}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			rows.Close()
			return fmt.Errorf("scan schema migration: %w", err)
		}
		applied[v] = true
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("iterate schema migrations: %w", err)
	}
	rows.Close()

	files, err := fs.Glob(migrationFS, fmt.Sprintf("migrations/%s/*.sql", a.dialect))
	if err != nil {
		return fmt.Errorf("glob migrations: %w", err)
	}
	sort.Strings(files)
	for _, file := range files {
		base := filepath.Base(file)
		if applied[base] {
			continue
		}
		body, err := migrationFS.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}
		tx, err := a.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin migration tx %s: %w", file, err)
		}
		if _, err := tx.ExecContext(ctx, string(body)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration %s: %w", file, err)
		}
		q := fmt.Sprintf("INSERT INTO schema_migrations (version, applied_at) VALUES (%s)", a.placeholders(2))
		if _, err := tx.ExecContext(ctx, q, base, a.now().UTC()); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %s: %w", file, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", file, err)
		}
	}
	return nil
}

// Record inserts the result. Results are immutable, so a repeated ID is ignored.
func (a *SQLArchive) Record(ctx context.Context, season int, result matches.MatchResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode match %s: %w", result.ID, err)
	}
	s := summarize(season, result)
	q := fmt.Sprintf(`INSERT INTO matches
		(match_id, season, day, team_a, team_b, map_id, score_a, score_b, winner_id, overtime_blocks, payload, archived_at)
		VALUES (%s)
		ON CONFLICT (match_id) DO NOTHING`, a.placeholders(12))
	_, err = a.db.ExecContext(ctx, q,
		s.MatchID, s.Season, s.Day, s.TeamA, s.TeamB, s.MapID,
		s.ScoreA, s.ScoreB, s.WinnerID, s.OvertimeBlocks, string(payload), a.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("archive match %s: %w", result.ID, err)
	}
	return nil
}

// Get returns the full archived result.
func (a *SQLArchive) Get(ctx context.Context, matchID string) (matches.MatchResult, bool, error) {
	q := fmt.Sprintf("SELECT payload FROM matches WHERE match_id = %s", a.bind(1))
	var payload string
	if err := a.db.QueryRowContext(ctx, q, matchID).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return matches.MatchResult{}, false, nil
		}
		return matches.MatchResult{}, false, fmt.Errorf("load match %s: %w", matchID, err)
	}
	var out matches.MatchResult
	if err := json.Unmarshal([]byte(payload), &out); err != nil {
		return matches.MatchResult{}, false, fmt.Errorf("decode match %s: %w", matchID, err)
	}
	return out, true, nil
}

// ByTeam lists a team's maps, most recent first.
func (a *SQLArchive) ByTeam(ctx context.Context, teamID string, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	q := fmt.Sprintf(`SELECT match_id, season, day, team_a, team_b, map_id, score_a, score_b, winner_id, overtime_blocks
		FROM matches
		WHERE team_a = %s OR team_b = %s
		ORDER BY season DESC, day DESC, match_id DESC
		LIMIT %s`, a.bind(1), a.bind(2), a.bind(3))
	rows, err := a.db.QueryContext(ctx, q, teamID, teamID, limit)
	if err != nil {
		return nil, fmt.Errorf("query team %s: %w", teamID, err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.MatchID, &s.Season, &s.Day, &s.TeamA, &s.TeamB, &s.MapID,
			&s.ScoreA, &s.ScoreB, &s.WinnerID, &s.OvertimeBlocks); err != nil {
			return nil, fmt.Errorf("scan team %s: %w", teamID, err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
