package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/SvachutaGollavilli/jobs-scrapper/internal/domain"
)

// BackupSink drops every session's postings into a timestamped JSON file
// so a bad sheet export never loses data.
type BackupSink struct {
	Dir string

	now func() time.Time // test seam
}

func NewBackupSink(dir string) *BackupSink {
	return &BackupSink{Dir: dir, now: time.Now}
}

func (s *BackupSink) Name() string { return "backup" }

func (s *BackupSink) Write(ctx context.Context, postings []domain.Posting) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}

	nowFn := s.now
	if nowFn == nil {
		nowFn = time.Now
	}
	name := fmt.Sprintf("postings_%s.json", nowFn().UTC().Format("20060102_150405"))
	path := filepath.Join(s.Dir, name)

	data, err := json.MarshalIndent(backupFile{Postings: toRecords(postings)}, "", "  ")
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

type backupFile struct {
	Postings []backupRecord `json:"postings"`
}

// backupRecord pins the JSON shape so domain refactors don't silently
// change what old backup files mean.
type backupRecord struct {
	UniqueID        string   `json:"unique_id"`
	Source          string   `json:"source"`
	Title           string   `json:"title"`
	Company         string   `json:"company"`
	Location        string   `json:"location"`
	Salary          string   `json:"salary"`
	Score           int      `json:"score"`
	Keywords        []string `json:"keywords"`
	ExperienceLevel string   `json:"experience_level"`
	RemoteFriendly  bool     `json:"remote_friendly"`
	EasyApply       bool     `json:"easy_apply"`
	Method          string   `json:"application_method"`
	Eligible        bool     `json:"auto_apply_eligible"`
	Status          string   `json:"application_status"`
	URL             string   `json:"url"`
	ScrapedAt       string   `json:"scraped_at"`
}

func toRecords(postings []domain.Posting) []backupRecord {
	out := make([]backupRecord, 0, len(postings))
	for _, p := range postings {
		out = append(out, backupRecord{
			UniqueID:        p.UniqueID,
			Source:          string(p.Source),
			Title:           p.Title,
			Company:         p.Company,
			Location:        p.Location,
			Salary:          p.Salary,
			Score:           p.PriorityScore,
			Keywords:        p.Keywords,
			ExperienceLevel: string(p.ExperienceLevel),
			RemoteFriendly:  p.RemoteFriendly,
			EasyApply:       p.EasyApplyAvailable,
			Method:          string(p.ApplicationMethod),
			Eligible:        p.AutoApplyEligible,
			Status:          string(p.ApplicationStatus),
			URL:             p.URL,
			ScrapedAt:       p.ScrapedAt.UTC().Format(time.RFC3339),
		})
	}
	return out
}
