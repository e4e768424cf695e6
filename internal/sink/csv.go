package sink

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/SvachutaGollavilli/jobs-scrapper/internal/domain"
)

var csvHeader = []string{
	"Scraped", "Source", "Title", "Company", "Location", "Salary",
	"Score", "Keywords", "Experience", "Remote", "Easy Apply",
	"Method", "Complexity", "Auto Eligible", "Status", "Notes",
	"URL", "Unique ID",
}

// CSVSink appends admitted postings to a single spreadsheet-shaped CSV.
// The header is written once when the file is created.
type CSVSink struct {
	Path string
}

func (s *CSVSink) Name() string { return "csv" }

func (s *CSVSink) Write(ctx context.Context, postings []domain.Posting) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return err
	}

	_, statErr := os.Stat(s.Path)
	fresh := os.IsNotExist(statErr)

	f, err := os.OpenFile(s.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if fresh {
		if err := w.Write(csvHeader); err != nil {
			return err
		}
	}
	for _, p := range postings {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := w.Write(csvRow(p)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func csvRow(p domain.Posting) []string {
	return []string{
		p.ScrapedAt.UTC().Format(time.RFC3339),
		string(p.Source),
		p.Title,
		p.Company,
		p.Location,
		p.Salary,
		strconv.Itoa(p.PriorityScore),
		strings.Join(p.Keywords, ", "),
		string(p.ExperienceLevel),
		yesNo(p.RemoteFriendly),
		yesNo(p.EasyApplyAvailable),
		string(p.ApplicationMethod),
		string(p.ApplicationComplexity),
		yesNo(p.AutoApplyEligible),
		string(p.ApplicationStatus),
		p.Notes,
		p.URL,
		p.UniqueID,
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
