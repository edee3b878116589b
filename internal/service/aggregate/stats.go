// Package aggregate turns flat booking/invitation slices into dashboard
// statistics and chart-ready datasets. Everything here is pure and
// deterministic: the reference clock is passed in, no I/O happens, and the
// same input always yields the same output.
package aggregate

import (
	"time"

	"github.com/AnsarMahir/doc4all-dashboard/internal/domain/models"
)

const dateLayout = "2006-01-02"

// weekWindowDays is the length of the forward-looking window used by the
// weekly statistic and the time-series chart: [today, today+7).
const weekWindowDays = 7

// DoctorStats derives the doctor dashboard counters. Weekly appointments
// count only realized (confirmed or completed) bookings dated within
// [today, today+7); pending and cancelled ones are not yet actual visits.
func DoctorStats(bookings []models.Booking, invitations []models.Invitation, now time.Time) models.DoctorStats {
	patients := map[string]struct{}{}
	dispensaries := map[string]struct{}{}
	weekly := 0

	todayKey, weekEndKey := weekWindow(now)

	for _, b := range bookings {
		if b.PatientName != "" {
			patients[b.PatientName] = struct{}{}
		}
		if key := entityKey(b.DispensaryID, b.DispensaryName); key != "" {
			dispensaries[key] = struct{}{}
		}
		if b.Status.Realized() && b.AppointmentDate >= todayKey && b.AppointmentDate < weekEndKey {
			weekly++
		}
	}

	return models.DoctorStats{
		TotalPatients:      len(patients),
		ActiveDispensaries: len(dispensaries),
		WeeklyAppointments: weekly,
		PendingInvitations: PendingInvitations(invitations),
	}
}

// DispensaryStats derives the dispensary dashboard counters. Today's
// appointments count every status; the booking exists on the calendar
// whether or not it is confirmed yet.
func DispensaryStats(bookings []models.Booking, invitations []models.Invitation, now time.Time) models.DispensaryStats {
	doctors := map[string]struct{}{}
	today := 0
	todayKey := now.Format(dateLayout)

	for _, b := range bookings {
		if key := entityKey(b.DoctorID, b.DoctorName); key != "" {
			doctors[key] = struct{}{}
		}
		if b.AppointmentDate == todayKey {
			today++
		}
	}

	return models.DispensaryStats{
		ActiveDoctors:      len(doctors),
		PendingInvitations: PendingInvitations(invitations),
		TotalBookings:      len(bookings),
		TodayAppointments:  today,
	}
}

// PatientStats derives the patient dashboard counters.
func PatientStats(bookings []models.Booking) models.PatientStats {
	stats := models.PatientStats{TotalAppointments: len(bookings)}
	for _, b := range bookings {
		switch b.Status {
		case models.StatusCompleted:
			stats.CompletedAppointments++
		case models.StatusCancelled:
			stats.CancelledAppointments++
		}
	}
	return stats
}

// PendingInvitations counts invitations whose status is exactly PENDING.
func PendingInvitations(invitations []models.Invitation) int {
	n := 0
	for _, inv := range invitations {
		if inv.Status == models.InvitationPending {
			n++
		}
	}
	return n
}

// entityKey groups by the backend's stable identifier when one exists and
// falls back to the display name otherwise. Two distinct entities sharing
// a display name merge only in the fallback case.
func entityKey(id, name string) string {
	if id != "" {
		return "id:" + id
	}
	return name
}

func weekWindow(now time.Time) (todayKey, weekEndKey string) {
	todayKey = now.Format(dateLayout)
	weekEndKey = now.AddDate(0, 0, weekWindowDays).Format(dateLayout)
	return todayKey, weekEndKey
}
