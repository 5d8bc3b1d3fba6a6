package report

import (
	"time"

	"github.com/julianstephens/chorewheel/internal/constants"
	apperrors "github.com/julianstephens/chorewheel/internal/errors"
	"github.com/julianstephens/chorewheel/internal/models"
)

// Grade is the coarse completion bucket shown next to a person in reports.
type Grade string

const (
	GradeNone Grade = "none"
	GradeZero Grade = "zero"
	GradeLow  Grade = "low"
	GradeHalf Grade = "half"
	GradeMost Grade = "most"
	GradeDone Grade = "done"
)

var badges = map[Grade]string{
	GradeNone: "➖",
	GradeZero: "🔴",
	GradeLow:  "🟠",
	GradeHalf: "🟡",
	GradeMost: "🟢",
	GradeDone: "✅",
}

func (g Grade) Badge() string {
	return badges[g]
}

// Bucket maps a completion count onto a Grade. The ladder is checked in order:
// no tasks, nothing done, under half, exactly half, everything, anything else.
// Integer comparisons keep the half and full thresholds exact.
func Bucket(completed, total int) Grade {
	switch {
	case total == 0:
		return GradeNone
	case completed == 0:
		return GradeZero
	case 2*completed < total:
		return GradeLow
	case 2*completed == total:
		return GradeHalf
	case completed == total:
		return GradeDone
	default:
		return GradeMost
	}
}

// PersonSummary totals one person's stat rows over a period.
type PersonSummary struct {
	PersonID  int64
	Name      string
	Completed int
	Total     int
	Days      []models.StatRow
}

func (p PersonSummary) Ratio() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Completed) / float64(p.Total)
}

func (p PersonSummary) Grade() Grade {
	return Bucket(p.Completed, p.Total)
}

// Summarize groups stat rows by person, keeping the order people first appear in.
func Summarize(rows []models.StatRow) []PersonSummary {
	var out []PersonSummary
	index := make(map[int64]int)
	for _, r := range rows {
		i, ok := index[r.PersonID]
		if !ok {
			i = len(out)
			index[r.PersonID] = i
			out = append(out, PersonSummary{PersonID: r.PersonID, Name: r.Name})
		}
		out[i].Completed += r.Completed
		out[i].Total += r.Total
		out[i].Days = append(out[i].Days, r)
	}
	return out
}

// Period is an inclusive range of calendar days.
type Period struct {
	Label string
	Start time.Time
	End   time.Time
}

// Range returns the bounds as YYYY-MM-DD strings for the store.
func (p Period) Range() (string, string) {
	return p.Start.Format(constants.DateFormat), p.End.Format(constants.DateFormat)
}

func Day(date time.Time) Period {
	d := truncate(date)
	return Period{Label: d.Format(constants.DateFormat), Start: d, End: d}
}

// Week is the Monday..Sunday week containing date.
func Week(date time.Time) Period {
	d := truncate(date)
	offset := (int(d.Weekday()) + 6) % 7
	monday := d.AddDate(0, 0, -offset)
	return Period{
		Label: "week of " + monday.Format(constants.DateFormat),
		Start: monday,
		End:   monday.AddDate(0, 0, 6),
	}
}

func Month(date time.Time) Period {
	d := truncate(date)
	first := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
	return Period{
		Label: first.Format("January 2006"),
		Start: first,
		End:   first.AddDate(0, 1, -1),
	}
}

// ParsePeriod resolves "day", "week" or "month" around date.
func ParsePeriod(name string, date time.Time) (Period, error) {
	switch name {
	case "day", "":
		return Day(date), nil
	case "week":
		return Week(date), nil
	case "month":
		return Month(date), nil
	default:
		return Period{}, apperrors.Configf("unknown report period %q (want day, week or month)", name)
	}
}

func truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
