package usecase

import (
	"strings"
	"time"

	"github.com/xavierca1/formapro-console/internal/entity"
)

// period is an inclusive range of calendar days.
type period struct {
	start, end time.Time
}

func (p period) contains(d time.Time) bool {
	return !d.Before(p.start) && !d.After(p.end)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func dayPeriod(now time.Time) period {
	d := startOfDay(now)
	return period{d, d}
}

// weekPeriod runs from Sunday to Saturday.
func weekPeriod(now time.Time) period {
	start := startOfDay(now).AddDate(0, 0, -int(now.Weekday()))
	return period{start, start.AddDate(0, 0, 6)}
}

func monthPeriod(now time.Time) period {
	y, m, _ := now.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
	return period{start, start.AddDate(0, 1, -1)}
}

// ComputeStats rescans the whole collection. Appointments with a malformed
// date are counted in Total and by status, never in a period.
func ComputeStats(list []entity.RendezVous, now time.Time) entity.RendezVousStats {
	today, week, month := dayPeriod(now), weekPeriod(now), monthPeriod(now)

	stats := entity.RendezVousStats{Total: len(list)}
	for _, rv := range list {
		switch rv.Status {
		case entity.StatutEnAttente:
			stats.EnAttente++
		case entity.StatutConfirme:
			stats.Confirmes++
		case entity.StatutAnnule:
			stats.Annules++
		case entity.StatutTermine:
			stats.Termines++
		case entity.StatutReporte:
			stats.Reportes++
		}

		day, ok := rv.Day(now.Location())
		if !ok {
			continue
		}
		if today.contains(day) {
			stats.AujourdHui++
		}
		if week.contains(day) {
			stats.CetteSemaine++
		}
		if month.contains(day) {
			stats.CeMois++
		}
	}
	return stats
}

// FilterRendezVous keeps the appointments matching every criterion of f.
func FilterRendezVous(list []entity.RendezVous, f entity.RendezVousFilters) []entity.RendezVous {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]entity.RendezVous, 0, len(list))
	for _, rv := range list {
		if !matchesEnum(f.Statut, string(rv.Status)) ||
			!matchesEnum(f.Type, string(rv.Type)) ||
			!matchesEnum(f.Lieu, string(rv.Lieu)) {
			continue
		}
		if f.ProgrammeID != "" && rv.ProgrammeID != f.ProgrammeID {
			continue
		}
		// YYYY-MM-DD compares lexically in calendar order
		if f.DateDebut != "" && rv.Date < f.DateDebut {
			continue
		}
		if f.DateFin != "" && rv.Date > f.DateFin {
			continue
		}
		if search != "" && !matchesSearch(rv, search) {
			continue
		}
		out = append(out, rv)
	}
	return out
}

func matchesEnum(filter, value string) bool {
	return filter == "" || filter == "all" || filter == value
}

func matchesSearch(rv entity.RendezVous, needle string) bool {
	for _, hay := range []string{rv.Client.Nom, rv.Client.Prenom, rv.Client.Email, rv.ProgrammeTitre} {
		if strings.Contains(strings.ToLower(hay), needle) {
			return true
		}
	}
	return false
}

func inPeriod(list []entity.RendezVous, p period, loc *time.Location) []entity.RendezVous {
	out := make([]entity.RendezVous, 0)
	for _, rv := range list {
		if day, ok := rv.Day(loc); ok && p.contains(day) {
			out = append(out, rv)
		}
	}
	return out
}
