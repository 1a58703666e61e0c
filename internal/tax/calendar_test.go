package tax

import (
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
)

func TestTaxDeadline_PlainWorkday(t *testing.T) {
	cal := DefaultCalendar()

	// 2026-04-15 is a Wednesday, no holiday
	deadline, err := cal.TaxDeadline(2026, time.April)
	assert.NoError(t, err)
	assert.Equal(t, "2026-04-15", deadline.Format("2006-01-02"))
}

func TestTaxDeadline_RollsOverWeekend(t *testing.T) {
	cal := DefaultCalendar()

	// 2026-03-15 is a Sunday, deadline moves to Monday
	deadline, err := cal.TaxDeadline(2026, time.March)
	assert.NoError(t, err)
	assert.Equal(t, "2026-03-16", deadline.Format("2006-01-02"))
	assert.Equal(t, time.Monday, deadline.Weekday())
}

func TestTaxDeadline_SpecialOverrideForFebruary(t *testing.T) {
	cal := DefaultCalendar()

	// 2月受春节假期影响，申报期延长至24日（周二）
	deadline, err := cal.TaxDeadline(2026, time.February)
	assert.NoError(t, err)
	assert.Equal(t, "2026-02-24", deadline.Format("2006-01-02"))
}

func TestTaxDeadline_RollsOverHolidays(t *testing.T) {
	cal := NewCalendar(CalendarConfig{
		Holidays:    []string{"2026-03-16", "2026-03-17"},
		DeadlineDay: 15,
	})

	// Sunday the 15th, then two holidays, lands on Wednesday
	deadline, err := cal.TaxDeadline(2026, time.March)
	assert.NoError(t, err)
	assert.Equal(t, "2026-03-18", deadline.Format("2006-01-02"))
}

func TestTaxDeadline_ErrorsOnBrokenHolidayTable(t *testing.T) {
	var holidays []string
	day := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 40; i++ {
		holidays = append(holidays, day.AddDate(0, 0, i).Format("2006-01-02"))
	}
	cal := NewCalendar(CalendarConfig{Holidays: holidays, DeadlineDay: 15})

	_, err := cal.TaxDeadline(2026, time.June)
	assert.Error(t, err)
}

func TestNewCalendar_DefaultsDeadlineDay(t *testing.T) {
	cal := NewCalendar(CalendarConfig{})

	// 2026-07-15 is a Wednesday
	deadline, err := cal.TaxDeadline(2026, time.July)
	assert.NoError(t, err)
	assert.Equal(t, "2026-07-15", deadline.Format("2006-01-02"))
}

func TestIsWorkday(t *testing.T) {
	cal := DefaultCalendar()

	tests := []struct {
		name string
		date string
		want bool
	}{
		{"regular weekday", "2026-03-18", true},
		{"saturday", "2026-03-14", false},
		{"sunday", "2026-03-15", false},
		{"national day", "2026-10-01", false},
		{"spring festival", "2026-02-02", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, err := time.Parse("2006-01-02", tt.date)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, cal.IsWorkday(date))
		})
	}
}

func TestQuarterInfo(t *testing.T) {
	tests := []struct {
		date   string
		number int
		name   string
		start  string
		end    string
	}{
		{"2026-01-01", 1, "Q1", "2026-01-01", "2026-03-31"},
		{"2026-05-20", 2, "Q2", "2026-04-01", "2026-06-30"},
		{"2026-08-31", 3, "Q3", "2026-07-01", "2026-09-30"},
		{"2026-12-31", 4, "Q4", "2026-10-01", "2026-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			date, err := time.Parse("2006-01-02", tt.date)
			assert.NoError(t, err)

			q := QuarterInfo(date)
			assert.Equal(t, tt.number, q.Number)
			assert.Equal(t, tt.name, q.Name)
			assert.Equal(t, tt.start, q.Start.Format("2006-01-02"))
			assert.Equal(t, tt.end, q.End.Format("2006-01-02"))
		})
	}
}

func TestCurrentFilingItems(t *testing.T) {
	april := time.Date(2026, time.April, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, QuarterlyFilingItems, CurrentFilingItems(april))

	may := time.Date(2026, time.May, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, MonthlyFilingItems, CurrentFilingItems(may))
}

func TestFilingItemLists(t *testing.T) {
	assert.Equal(t, []string{
		"增值税纳税申报表",
		"个人所得税扣缴申报表",
		"印花税申报",
	}, MonthlyFilingItems)

	assert.Equal(t, []string{
		"增值税纳税申报表",
		"企业所得税预缴申报表",
		"个人所得税扣缴申报表",
		"财务报表（资产负债表、利润表）",
	}, QuarterlyFilingItems)
}
