package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SvachutaGollavilli/jobs-scrapper/internal/domain"
)

func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}

	if v >= 1 {
		return tx.Commit()
	}

	// ---- Schema v1 ----

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS postings (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  unique_id TEXT NOT NULL,
  source TEXT NOT NULL,
  external_id TEXT NOT NULL DEFAULT '',
  title TEXT NOT NULL,
  company TEXT NOT NULL,
  location TEXT NOT NULL DEFAULT '',
  salary TEXT NOT NULL DEFAULT '',
  job_type TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  keywords TEXT NOT NULL DEFAULT '[]',
  experience_level TEXT NOT NULL DEFAULT '',
  remote_friendly INTEGER NOT NULL DEFAULT 0,
  priority_score INTEGER NOT NULL DEFAULT 0,
  url TEXT NOT NULL DEFAULT '',
  apply_url TEXT NOT NULL DEFAULT '',
  easy_apply INTEGER NOT NULL DEFAULT 0,
  application_method TEXT NOT NULL DEFAULT '',
  application_complexity TEXT NOT NULL DEFAULT '',
  auto_apply_eligible INTEGER NOT NULL DEFAULT 0,
  application_status TEXT NOT NULL DEFAULT 'Not Applied',
  notes TEXT NOT NULL DEFAULT '',
  posted_at TEXT,
  scraped_at TEXT NOT NULL,
  applied_at TEXT,
  follow_up_at TEXT
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_postings_unique_id
ON postings(unique_id);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_postings_scraped_at
ON postings(scraped_at);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_postings_score
ON postings(priority_score);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}

	return tx.Commit()
}

// InsertPostingIgnore inserts a posting if its unique_id has not been seen.
// Returns added=false when the unique index swallowed the row.
func InsertPostingIgnore(db *sql.DB, p domain.Posting) (added bool, err error) {
	kwJSON, _ := json.Marshal(p.Keywords)
	if p.Keywords == nil {
		kwJSON = []byte("[]")
	}

	_, err = db.Exec(`
INSERT OR IGNORE INTO postings (
  unique_id, source, external_id, title, company, location, salary, job_type,
  description, keywords, experience_level, remote_friendly, priority_score,
  url, apply_url, easy_apply, application_method, application_complexity,
  auto_apply_eligible, application_status, notes,
  posted_at, scraped_at, applied_at, follow_up_at
) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?);`,
		p.UniqueID, string(p.Source), p.ExternalID, p.Title, p.Company, p.Location, p.Salary, p.JobType,
		p.Description, string(kwJSON), string(p.ExperienceLevel), boolInt(p.RemoteFriendly), p.PriorityScore,
		p.URL, p.ApplyURL, boolInt(p.EasyApplyAvailable), string(p.ApplicationMethod), string(p.ApplicationComplexity),
		boolInt(p.AutoApplyEligible), string(p.ApplicationStatus), p.Notes,
		timePtrText(p.PostedAt), p.ScrapedAt.UTC().Format(time.RFC3339), timePtrText(p.AppliedAt), timePtrText(p.FollowUpAt),
	)
	if err != nil {
		return false, fmt.Errorf("insert posting: %w", err)
	}

	// SQLite doesn't report rows affected reliably with IGNORE across drivers,
	// so ask the connection how many rows the last statement changed.
	var changes int
	if e := db.QueryRow(`SELECT changes();`).Scan(&changes); e == nil {
		return changes > 0, nil
	}
	return true, nil
}

func GetByUniqueID(ctx context.Context, db *sql.DB, uniqueID string) (domain.Posting, bool, error) {
	row := db.QueryRowContext(ctx, postingColumns+`
FROM postings
WHERE unique_id = ?
LIMIT 1;`, uniqueID)

	p, err := scanPosting(row)
	if err == sql.ErrNoRows {
		return domain.Posting{}, false, nil
	}
	if err != nil {
		return domain.Posting{}, false, err
	}
	return p, true, nil
}

// UpdateStatus persists a lifecycle transition made by the tracker.
func UpdateStatus(db *sql.DB, p domain.Posting) error {
	_, err := db.Exec(`
UPDATE postings
SET application_status = ?, notes = ?, applied_at = ?, follow_up_at = ?
WHERE unique_id = ?;`,
		string(p.ApplicationStatus), p.Notes, timePtrText(p.AppliedAt), timePtrText(p.FollowUpAt), p.UniqueID,
	)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	return nil
}

type ListOpts struct {
	Sort   string // score | scraped | company | title
	Window string // 24h | 7d | all
	Limit  int
}

func ListPostings(ctx context.Context, db *sql.DB, opts ListOpts) ([]domain.Posting, error) {
	if opts.Sort == "" {
		opts.Sort = "score"
	}
	if opts.Window == "" {
		opts.Window = "7d"
	}
	if opts.Limit <= 0 || opts.Limit > 2000 {
		opts.Limit = 500
	}

	// whitelist sort columns (prevents SQL injection)
	sortCol, order := "priority_score", "DESC"
	switch opts.Sort {
	case "score":
	case "scraped":
		sortCol = "scraped_at"
	case "company":
		sortCol, order = "company", "ASC"
	case "title":
		sortCol, order = "title", "ASC"
	}

	where := ""
	switch opts.Window {
	case "24h":
		where = "WHERE scraped_at >= datetime('now','-24 hours')"
	case "all":
	default:
		where = "WHERE scraped_at >= datetime('now','-7 days')"
	}

	query := fmt.Sprintf(`%s
FROM postings
%s
ORDER BY %s %s
LIMIT ?;`, postingColumns, where, sortCol, order)

	rows, err := db.QueryContext(ctx, query, opts.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Posting
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListEligible returns auto-apply candidates best score first. Only postings
// still in "Not Applied" qualify, so a runner never re-applies.
func ListEligible(ctx context.Context, db *sql.DB, minScore, limit int) ([]domain.Posting, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.QueryContext(ctx, postingColumns+`
FROM postings
WHERE auto_apply_eligible = 1
  AND application_status = ?
  AND priority_score >= ?
ORDER BY priority_score DESC
LIMIT ?;`, string(domain.StatusNotApplied), minScore, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Posting
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func CleanupOld(db *sql.DB) (deleted int64, err error) {
	res, err := db.Exec(`
DELETE FROM postings
WHERE scraped_at < datetime('now', '-3 months')
  AND application_status IN (?, ?);`,
		string(domain.StatusNotApplied), string(domain.StatusRejected))
	if err != nil {
		return 0, fmt.Errorf("cleanup old postings: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

const postingColumns = `
SELECT unique_id, source, external_id, title, company, location, salary, job_type,
  description, keywords, experience_level, remote_friendly, priority_score,
  url, apply_url, easy_apply, application_method, application_complexity,
  auto_apply_eligible, application_status, notes,
  posted_at, scraped_at, applied_at, follow_up_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPosting(r rowScanner) (domain.Posting, error) {
	var (
		p                      domain.Posting
		source, exp            string
		method, complexity     string
		status                 string
		kwJSON                 string
		remote, easy, eligible int
		postedAt, appliedAt    sql.NullString
		followUpAt             sql.NullString
		scrapedAt              string
	)
	err := r.Scan(
		&p.UniqueID, &source, &p.ExternalID, &p.Title, &p.Company, &p.Location, &p.Salary, &p.JobType,
		&p.Description, &kwJSON, &exp, &remote, &p.PriorityScore,
		&p.URL, &p.ApplyURL, &easy, &method, &complexity,
		&eligible, &status, &p.Notes,
		&postedAt, &scrapedAt, &appliedAt, &followUpAt,
	)
	if err != nil {
		return domain.Posting{}, err
	}
	p.Source = domain.Source(source)
	p.ExperienceLevel = domain.ExperienceLevel(exp)
	p.ApplicationMethod = domain.ApplicationMethod(method)
	p.ApplicationComplexity = domain.ApplicationComplexity(complexity)
	p.ApplicationStatus = domain.ApplicationStatus(status)
	p.RemoteFriendly = remote != 0
	p.EasyApplyAvailable = easy != 0
	p.AutoApplyEligible = eligible != 0
	_ = json.Unmarshal([]byte(kwJSON), &p.Keywords)
	p.ScrapedAt, _ = time.Parse(time.RFC3339, scrapedAt)
	p.PostedAt = textTimePtr(postedAt)
	p.AppliedAt = textTimePtr(appliedAt)
	p.FollowUpAt = textTimePtr(followUpAt)
	return p, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func timePtrText(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func textTimePtr(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil
	}
	return &t
}
