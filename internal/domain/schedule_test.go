package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/matutevip/ginecoschedule-sub001/pkg/types"
)

func weeklyConfig() *ScheduleConfig {
	return &ScheduleConfig{
		ID:        1,
		Workdays:  []Weekday{Monday, Wednesday, Friday},
		OpenTime:  "09:00",
		CloseTime: "12:00",
	}
}

func TestResolveDayTypeRegularWorkday(t *testing.T) {
	// 2025-06-02 is a Monday.
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	day := ResolveDayType(monday, weeklyConfig(), nil, nil, nil)
	assert.Equal(t, DayRegularWorkday, day.Kind)
	assert.Equal(t, types.TimeString("09:00"), day.OpenTime)
	assert.Equal(t, types.TimeString("12:00"), day.CloseTime)
	assert.True(t, day.IsOpen())
}

func TestResolveDayTypeNonWorkday(t *testing.T) {
	tuesday := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

	day := ResolveDayType(tuesday, weeklyConfig(), nil, nil, nil)
	assert.Equal(t, DayNonWorkday, day.Kind)
	assert.False(t, day.IsOpen())
}

func TestResolveDayTypeBlockedWinsOverWorkday(t *testing.T) {
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	blocked := &BlockedDay{ID: 1, Date: monday, Reason: "congreso"}

	day := ResolveDayType(monday, weeklyConfig(), blocked, nil, nil)
	assert.Equal(t, DayBlocked, day.Kind)
	assert.False(t, day.IsOpen())
}

func TestResolveDayTypeBlockedWinsOverOccasional(t *testing.T) {
	tuesday := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	blocked := &BlockedDay{ID: 1, Date: tuesday}
	occasional := &OccasionalWorkday{ID: 1, Date: tuesday}

	day := ResolveDayType(tuesday, weeklyConfig(), blocked, nil, occasional)
	assert.Equal(t, DayBlocked, day.Kind)
}

func TestResolveDayTypeVacationClosesWorkday(t *testing.T) {
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	vacation := &VacationPeriod{
		ID:        1,
		StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC),
	}

	day := ResolveDayType(monday, weeklyConfig(), nil, vacation, nil)
	assert.Equal(t, DayBlocked, day.Kind)
}

func TestResolveDayTypeOccasionalDefaultHours(t *testing.T) {
	saturday := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)
	occasional := &OccasionalWorkday{ID: 1, Date: saturday}

	day := ResolveDayType(saturday, weeklyConfig(), nil, nil, occasional)
	assert.Equal(t, DayOccasionalWorkday, day.Kind)
	assert.Equal(t, types.TimeString("09:00"), day.OpenTime)
	assert.Equal(t, types.TimeString("12:00"), day.CloseTime)
}

func TestResolveDayTypeOccasionalOwnHours(t *testing.T) {
	saturday := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)
	open := types.TimeString("10:00")
	close := types.TimeString("13:00")
	occasional := &OccasionalWorkday{ID: 1, Date: saturday, OpenTime: &open, CloseTime: &close}

	day := ResolveDayType(saturday, weeklyConfig(), nil, nil, occasional)
	assert.Equal(t, DayOccasionalWorkday, day.Kind)
	assert.Equal(t, open, day.OpenTime)
	assert.Equal(t, close, day.CloseTime)
}

func TestVacationCovers(t *testing.T) {
	v := &VacationPeriod{
		StartDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, v.Covers(time.Date(2025, 7, 1, 10, 30, 0, 0, time.UTC)))
	assert.True(t, v.Covers(time.Date(2025, 7, 15, 23, 0, 0, 0, time.UTC)))
	assert.False(t, v.Covers(time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)))
	assert.False(t, v.Covers(time.Date(2025, 7, 16, 0, 0, 0, 0, time.UTC)))
}

func TestDayOfPreservesLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/Montevideo")
	assert.NoError(t, err)

	at := time.Date(2025, 6, 2, 18, 45, 12, 0, loc)
	day := DayOf(at)
	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, loc), day)
	assert.Equal(t, loc, day.Location())
}

func TestServiceTypeFromLabel(t *testing.T) {
	assert.Equal(t, ServiceIUDPlacement, ServiceTypeFromLabel("Colocacion de DIU"))
	assert.Equal(t, ServiceIUDPlacement, ServiceTypeFromLabel("colocación de diu"))
	assert.Equal(t, ServicePapSmear, ServiceTypeFromLabel("PAP y Colposcopia"))
	assert.Equal(t, ServiceConsultation, ServiceTypeFromLabel("algo desconocido"))
}

func TestServiceDuration(t *testing.T) {
	assert.Equal(t, 20, ServiceConsultation.Duration(false))
	assert.Equal(t, 20, ServiceConsultation.Duration(true))
	assert.Equal(t, 20, ServicePapSmear.Duration(false))
	assert.Equal(t, 30, ServicePapSmear.Duration(true))
	assert.Equal(t, 40, ServiceIUDPlacement.Duration(false))
	assert.Equal(t, 40, ServiceRegenerativeTherapy.Duration(true))
}
