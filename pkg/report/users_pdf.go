package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/sefazor/starclub-backend/internal/models"
)

type UserReport struct {
	GeneratedAt time.Time
	Filter      string
	Total       int
	Users       []models.User
}

type column struct {
	title string
	width float64
	value func(u *models.User) string
}

var columns = []column{
	{"Name", 45, func(u *models.User) string { return u.Name }},
	{"Email", 60, func(u *models.User) string { return u.Email }},
	{"Tier", 22, func(u *models.User) string { return string(u.Tier) }},
	{"Stars", 18, func(u *models.User) string { return fmt.Sprintf("%d", u.TotalStars) }},
	{"Visits", 18, func(u *models.User) string { return fmt.Sprintf("%d", u.TotalVisits) }},
	{"Status", 22, func(u *models.User) string { return string(u.Status) }},
	{"Last visit", 30, func(u *models.User) string {
		if u.LastVisit.IsZero() {
			return "-"
		}
		return u.LastVisit.Format("2006-01-02")
	}},
}

// BuildUsersPDF renders the admin user list as a landscape A4 table.
func BuildUsersPDF(r UserReport) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Star Club Members", false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Star Club Members")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Generated: %s", r.GeneratedAt.Format("2006-01-02 15:04 MST")))
	pdf.Ln(6)
	if r.Filter != "" {
		pdf.Cell(0, 7, tr("Filter: "+r.Filter))
		pdf.Ln(6)
	}
	pdf.Cell(0, 7, fmt.Sprintf("Matching members: %d (showing %d)", r.Total, len(r.Users)))
	pdf.Ln(10)

	header := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(245, 158, 11)
		for _, c := range columns {
			pdf.CellFormat(c.width, 7, c.title, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
	}
	header()

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for i := range r.Users {
		if pdf.GetY()+6 > pageHeight-bottom-10 {
			pdf.AddPage()
			header()
		}
		u := &r.Users[i]
		for _, c := range columns {
			pdf.CellFormat(c.width, 6, tr(c.value(u)), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render user report: %w", err)
	}
	return buf.Bytes(), nil
}
