package handlers

import (
	"html/template"
	"time"

	"github.com/BruksfildServices01/staff-manager/internal/models"
	"github.com/BruksfildServices01/staff-manager/internal/timezone"
)

// --------------------------------------------------
// Display helpers: timestamps are stored in UTC and shown in the
// application timezone.
// --------------------------------------------------

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(timezone.Current()).Format("2006-01-02 15:04")
}

func formatDecided(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return formatDateTime(*t)
}

func formatDate(d *models.Date) string {
	if d == nil {
		return "-"
	}
	return d.String()
}

func inputDate(d *models.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}

// TemplateFuncs is installed on the engine before the web templates are parsed.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"datetime":  formatDateTime,
		"decided":   formatDecided,
		"date":      formatDate,
		"inputDate": inputDate,
	}
}
