package tax

import (
	"fmt"
	"time"
)

// maxDeadlineShift bounds the workday roll-forward. A longer run of
// non-workdays means the holiday table is broken, not a real calendar.
const maxDeadlineShift = 15

// CalendarConfig carries the year-specific filing calendar data. The
// gazetted holiday list changes every year and must be refreshed, so it
// is injected rather than hard-coded into the calendar logic.
type CalendarConfig struct {
	// Holidays are gazetted holiday dates in "2006-01-02" form.
	Holidays []string
	// SpecialDeadlines overrides the base filing day for a given
	// "2006-01" year-month (e.g. a month stretched by a holiday run).
	SpecialDeadlines map[string]int
	// DeadlineDay is the base filing day of each month.
	DeadlineDay int
}

// Filing items shown to the user each period. These are the exact
// strings from the tax bureau checklist.
var (
	MonthlyFilingItems = []string{
		"增值税纳税申报表",
		"个人所得税扣缴申报表",
		"印花税申报",
	}
	QuarterlyFilingItems = []string{
		"增值税纳税申报表",
		"企业所得税预缴申报表",
		"个人所得税扣缴申报表",
		"财务报表（资产负债表、利润表）",
	}
)

// quarterlyMonths are the months in which quarterly filings are due.
var quarterlyMonths = map[time.Month]bool{
	time.January: true,
	time.April:   true,
	time.July:    true,
	time.October: true,
}

type Calendar struct {
	holidays    map[string]bool
	special     map[string]int
	deadlineDay int
}

func NewCalendar(cfg CalendarConfig) *Calendar {
	holidays := make(map[string]bool, len(cfg.Holidays))
	for _, d := range cfg.Holidays {
		holidays[d] = true
	}
	day := cfg.DeadlineDay
	if day == 0 {
		day = 15
	}
	return &Calendar{
		holidays:    holidays,
		special:     cfg.SpecialDeadlines,
		deadlineDay: day,
	}
}

// DefaultCalendar returns the calendar for the 2026 filing year.
func DefaultCalendar() *Calendar {
	return NewCalendar(CalendarConfig{
		Holidays:         holidays2026,
		SpecialDeadlines: specialDeadlines2026,
		DeadlineDay:      15,
	})
}

// holidays2026 are the gazetted holidays for 2026. Refresh annually.
var holidays2026 = []string{
	// 元旦
	"2026-01-01", "2026-01-02", "2026-01-03",
	// 春节
	"2026-01-29", "2026-01-30", "2026-01-31",
	"2026-02-01", "2026-02-02", "2026-02-03", "2026-02-04",
	// 清明节
	"2026-04-04", "2026-04-05", "2026-04-06",
	// 劳动节
	"2026-05-01", "2026-05-02", "2026-05-03", "2026-05-04", "2026-05-05",
	// 端午节
	"2026-06-25", "2026-06-26", "2026-06-27",
	// 中秋节
	"2026-09-26", "2026-09-27", "2026-09-28",
	// 国庆节
	"2026-10-01", "2026-10-02", "2026-10-03", "2026-10-04",
	"2026-10-05", "2026-10-06", "2026-10-07",
}

// 2月因春节假期延长至24日
var specialDeadlines2026 = map[string]int{
	"2026-02": 24,
}

func (c *Calendar) IsHoliday(date time.Time) bool {
	return c.holidays[date.Format("2006-01-02")]
}

func (c *Calendar) IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func (c *Calendar) IsWorkday(date time.Time) bool {
	return !c.IsWeekend(date) && !c.IsHoliday(date)
}

// TaxDeadline returns the filing deadline for the given month: the base
// day (or the special override for that year-month), rolled forward to
// the next workday. An excessive roll-forward is reported as an error
// since it indicates a malformed holiday table.
func (c *Calendar) TaxDeadline(year int, month time.Month) (time.Time, error) {
	day := c.deadlineDay
	if override, ok := c.special[fmt.Sprintf("%04d-%02d", year, month)]; ok {
		day = override
	}

	deadline := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	for shift := 0; !c.IsWorkday(deadline); shift++ {
		if shift >= maxDeadlineShift {
			return time.Time{}, fmt.Errorf("no workday found within %d days of %04d-%02d-%02d, holiday table is likely wrong",
				maxDeadlineShift, year, month, day)
		}
		deadline = deadline.AddDate(0, 0, 1)
	}
	return deadline, nil
}

// Quarter describes the fixed calendar quarter a date falls in.
type Quarter struct {
	Number int // 1-4
	Name   string
	Start  time.Time
	End    time.Time
}

func QuarterInfo(date time.Time) Quarter {
	startMonth := time.Month((int(date.Month())-1)/3*3 + 1)
	num := (int(date.Month())-1)/3 + 1
	start := time.Date(date.Year(), startMonth, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 3, -1)
	return Quarter{
		Number: num,
		Name:   fmt.Sprintf("Q%d", num),
		Start:  start,
		End:    end,
	}
}

// CurrentFilingItems returns the filing checklist for the date's month:
// the quarterly set in Jan/Apr/Jul/Oct, the monthly set otherwise.
func CurrentFilingItems(date time.Time) []string {
	if quarterlyMonths[date.Month()] {
		return QuarterlyFilingItems
	}
	return MonthlyFilingItems
}
