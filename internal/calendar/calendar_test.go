package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNormalizeDate(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "naive midnight unchanged",
			in:   day(2023, time.January, 10),
			want: day(2023, time.January, 10),
		},
		{
			name: "naive intraday truncated",
			in:   time.Date(2023, time.January, 10, 23, 59, 0, 0, time.UTC),
			want: day(2023, time.January, 10),
		},
		{
			name: "exchange-local open",
			in:   time.Date(2023, time.June, 1, 9, 30, 0, 0, referenceLocation),
			want: day(2023, time.June, 1),
		},
		{
			name: "aware timestamp converted before truncation",
			in:   time.Date(2023, time.June, 2, 8, 0, 0, 0, tokyo),
			want: day(2023, time.June, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDate(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, NormalizeDate(got))
		})
	}
}

func TestFromUnix(t *testing.T) {
	// 2023-12-29 09:30 New York
	ts := time.Date(2023, time.December, 29, 14, 30, 0, 0, time.UTC).Unix()
	assert.Equal(t, day(2023, time.December, 29), FromUnix(ts))

	// 2024-01-01 02:00 UTC is still Dec 31 in New York
	ts = time.Date(2024, time.January, 1, 2, 0, 0, 0, time.UTC).Unix()
	assert.Equal(t, day(2023, time.December, 31), FromUnix(ts))
}

func TestYearBounds(t *testing.T) {
	start, end := YearBounds(2024)
	assert.Equal(t, day(2024, time.January, 1), start)
	assert.Equal(t, day(2024, time.December, 31), end)
}

func TestQuarterOf(t *testing.T) {
	want := map[time.Month]Quarter{
		time.January: Q1, time.February: Q1, time.March: Q1,
		time.April: Q2, time.May: Q2, time.June: Q2,
		time.July: Q3, time.August: Q3, time.September: Q3,
		time.October: Q4, time.November: Q4, time.December: Q4,
	}
	for m, q := range want {
		assert.Equal(t, q, QuarterOf(day(2023, m, 15)), m.String())
	}
	assert.Equal(t, Q1, QuarterOf(day(2023, time.March, 31)))
	assert.Equal(t, Q2, QuarterOf(day(2023, time.April, 1)))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "2023-01-10", want: day(2023, time.January, 10)},
		{in: " 2023-1-9 ", want: day(2023, time.January, 9)},
		{in: "2023-01-10 00:00:00", want: day(2023, time.January, 10)},
		{in: "1/10/2023", want: day(2023, time.January, 10)},
		{in: "2023-01-10T03:00:00Z", want: day(2023, time.January, 9)},
		{in: "2023-01-10T12:00:00+05:30", want: day(2023, time.January, 10)},
		{in: "", wantErr: true},
		{in: "not a date", wantErr: true},
		{in: "2023-13-40", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
