package service

import (
	"testing"
	"time"

	"shift-roster/internal/apperr"
	"shift-roster/internal/models"

	"github.com/stretchr/testify/require"
)

func (env *testEnv) seedRoster(t *testing.T) *models.Roster {
	t.Helper()

	template := env.seedTemplate(t, 1, "09:00", "17:30", 30)
	roster, err := env.rosters.Create(CreateRosterInput{
		CompanyID:       1,
		CompanyUserID:   10,
		LocationID:      5,
		ShiftTemplateID: template.ID,
		DutyDate:        date(2024, time.June, 10),
	})
	require.NoError(t, err)
	return roster
}

func TestCheckInRequiresRoster(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.attendance.CheckIn(999, nil, nil, nil)
	require.True(t, apperr.IsNotFound(err))
}

func TestCheckInCreatesThenOverwrites(t *testing.T) {
	env := newTestEnv(t)
	roster := env.seedRoster(t)

	lat, lng := 51.5074, -0.1278
	photo := "https://storage/checkin-1.jpg"

	attendance, err := env.attendance.CheckIn(roster.ID, &lat, &lng, &photo)
	require.NoError(t, err)
	require.NotZero(t, attendance.ID)
	require.NotNil(t, attendance.CheckInTime)
	require.Equal(t, lat, *attendance.CheckInLat)

	// A repeat check-in corrects the same row instead of adding one.
	lat2 := 48.8566
	again, err := env.attendance.CheckIn(roster.ID, &lat2, &lng, &photo)
	require.NoError(t, err)
	require.Equal(t, attendance.ID, again.ID)
	require.Equal(t, lat2, *again.CheckInLat)

	all, err := env.attendance.FindAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	env := newTestEnv(t)
	roster := env.seedRoster(t)

	_, err := env.attendance.CheckOut(roster.ID, nil)
	require.True(t, apperr.IsNotFound(err))
}

func TestCheckOutPushesActualMinutes(t *testing.T) {
	env := newTestEnv(t)
	roster := env.seedRoster(t)

	checkIn := time.Now().Add(-90*time.Minute - 30*time.Second)
	_, err := env.attendance.Create(CreateAttendanceInput{
		RosterID:    roster.ID,
		CheckInTime: &checkIn,
	})
	require.NoError(t, err)

	photo := "https://storage/checkout-1.jpg"
	attendance, err := env.attendance.CheckOut(roster.ID, &photo)
	require.NoError(t, err)
	require.True(t, attendance.IsCheckedOut())
	require.Equal(t, photo, *attendance.CheckOutPhoto)

	reloaded, err := env.rosters.FindOne(roster.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.ActualMinutes)
	require.Equal(t, 90, *reloaded.ActualMinutes)
}

func TestAdminCreatePushesOnlyWhenComplete(t *testing.T) {
	env := newTestEnv(t)
	roster := env.seedRoster(t)

	checkIn := date(2024, time.June, 10).Add(9 * time.Hour)
	checkOut := checkIn.Add(8 * time.Hour)

	_, err := env.attendance.Create(CreateAttendanceInput{
		RosterID:     roster.ID,
		CheckInTime:  &checkIn,
		CheckOutTime: &checkOut,
	})
	require.NoError(t, err)

	reloaded, err := env.rosters.FindOne(roster.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.ActualMinutes)
	require.Equal(t, 480, *reloaded.ActualMinutes)
}

func TestAdminCreateWithoutCheckOutLeavesRosterUntouched(t *testing.T) {
	env := newTestEnv(t)
	roster := env.seedRoster(t)

	checkIn := date(2024, time.June, 10).Add(9 * time.Hour)
	_, err := env.attendance.Create(CreateAttendanceInput{
		RosterID:    roster.ID,
		CheckInTime: &checkIn,
	})
	require.NoError(t, err)

	reloaded, err := env.rosters.FindOne(roster.ID)
	require.NoError(t, err)
	require.Nil(t, reloaded.ActualMinutes)
}

func TestAdminUpdateRecomputesActualMinutes(t *testing.T) {
	env := newTestEnv(t)
	roster := env.seedRoster(t)

	checkIn := date(2024, time.June, 10).Add(9 * time.Hour)
	checkOut := checkIn.Add(8 * time.Hour)
	attendance, err := env.attendance.Create(CreateAttendanceInput{
		RosterID:     roster.ID,
		CheckInTime:  &checkIn,
		CheckOutTime: &checkOut,
	})
	require.NoError(t, err)

	corrected := checkIn.Add(2 * time.Hour)
	_, err = env.attendance.Update(attendance.ID, UpdateAttendanceInput{CheckOutTime: &corrected})
	require.NoError(t, err)

	reloaded, err := env.rosters.FindOne(roster.ID)
	require.NoError(t, err)
	require.Equal(t, 120, *reloaded.ActualMinutes)
}

func TestAttendanceFindByCompanyUserWindow(t *testing.T) {
	env := newTestEnv(t)
	template := env.seedTemplate(t, 1, "09:00", "17:00", 0)

	for _, day := range []int{5, 10, 25} {
		roster, err := env.rosters.Create(CreateRosterInput{
			CompanyID:       1,
			CompanyUserID:   10,
			LocationID:      5,
			ShiftTemplateID: template.ID,
			DutyDate:        date(2024, time.June, day),
		})
		require.NoError(t, err)

		checkIn := date(2024, time.June, day).Add(9 * time.Hour)
		_, err = env.attendance.Create(CreateAttendanceInput{RosterID: roster.ID, CheckInTime: &checkIn})
		require.NoError(t, err)
	}

	records, err := env.attendance.FindByCompanyUser(10, nil, nil)
	require.NoError(t, err)
	require.Len(t, records, 3)

	records, err = env.attendance.FindByCompanyUser(10, datePtr(2024, time.June, 8), datePtr(2024, time.June, 12))
	require.NoError(t, err)
	require.Len(t, records, 1)

	records, err = env.attendance.FindByCompanyUser(999, nil, nil)
	require.NoError(t, err)
	require.Empty(t, records)
}
