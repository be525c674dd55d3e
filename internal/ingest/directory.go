package ingest

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"schoolscout-engine/internal/config"
	"schoolscout-engine/internal/domain"
)

// DirectoryConnector scrapes a curated program-directory page. Each program
// is a row carrying a data-program-id attribute, with per-field cells:
//
//	<tr data-program-id="uab-crna">
//	  <td class="name">...</td> <td class="city">...</td>
//	  <td class="state">AL</td> <td class="tuition">$68,500</td>
//	  <td class="gre">required|waivable|none</td>
//	  <td class="deadline">2026-10-01</td>
//	</tr>
//
// Fields the page does not carry stay at their zero value; scoring treats
// absent thresholds as "no criterion", so partial rows are still useful.
type DirectoryConnector struct {
	Dir     config.Directory
	Limiter *HostLimiter
	Client  *http.Client
}

func NewDirectoryConnector(dir config.Directory, limiter *HostLimiter) *DirectoryConnector {
	return &DirectoryConnector{
		Dir:     dir,
		Limiter: limiter,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (d *DirectoryConnector) Name() string { return "directory:" + d.Dir.Name }

func (d *DirectoryConnector) ListPrograms(ctx context.Context) ([]domain.School, error) {
	if d.Limiter != nil {
		if err := d.Limiter.WaitURL(ctx, d.Dir.URL); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.Dir.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "schoolscout-engine/1.0")

	resp, err := d.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch directory %s: %w", d.Dir.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("directory %s: upstream status %s", d.Dir.Name, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse directory %s: %w", d.Dir.Name, err)
	}

	var out []domain.School
	doc.Find("tr[data-program-id]").Each(func(_ int, row *goquery.Selection) {
		id, _ := row.Attr("data-program-id")
		id = strings.TrimSpace(id)
		name := text(row, ".name")
		if id == "" || name == "" {
			return
		}

		s := domain.School{
			ID:    id,
			Name:  name,
			City:  text(row, ".city"),
			State: strings.ToUpper(text(row, ".state")),
		}

		if t := parseMoney(text(row, ".tuition")); t != nil {
			s.TuitionInState = t
		}
		switch strings.ToLower(text(row, ".gre")) {
		case "required":
			s.GRERequired = true
		case "waivable":
			s.GRERequired = true
			w := "see program site"
			s.GREWaiver = &w
		}
		if dl := text(row, ".deadline"); dl != "" {
			if t, err := time.Parse("2006-01-02", dl); err == nil {
				s.ApplicationDeadline = &t
			}
		}

		out = append(out, s)
	})
	return out, nil
}

func text(row *goquery.Selection, sel string) string {
	return strings.TrimSpace(row.Find(sel).First().Text())
}

// parseMoney reads "$68,500" style cells; anything unreadable is nil.
func parseMoney(s string) *float64 {
	s = strings.TrimPrefix(strings.TrimSpace(s), "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}
