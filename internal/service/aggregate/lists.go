package aggregate

import (
	"sort"
	"time"

	"github.com/AnsarMahir/doc4all-dashboard/internal/domain/models"
)

const (
	recentBookingLimit     = 5
	upcomingBookingLimit   = 5
	nearbyDispensaryLimit  = 5
	invitationPreviewLimit = 3
)

// RecentBookings returns the latest bookings by appointment date,
// descending, capped at five. The input slice is left untouched.
func RecentBookings(bookings []models.Booking) []models.Booking {
	sorted := make([]models.Booking, len(bookings))
	copy(sorted, bookings)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AppointmentDate > sorted[j].AppointmentDate
	})

	if len(sorted) > recentBookingLimit {
		sorted = sorted[:recentBookingLimit]
	}
	return sorted
}

// UpcomingAppointments returns up to five bookings dated today or later
// that are still live (confirmed or pending), in input order.
func UpcomingAppointments(bookings []models.Booking, now time.Time) []models.Booking {
	todayKey := now.Format(dateLayout)

	upcoming := make([]models.Booking, 0, upcomingBookingLimit)
	for _, b := range bookings {
		if b.Status != models.StatusConfirmed && b.Status != models.StatusPending {
			continue
		}
		if b.AppointmentDate < todayKey {
			continue
		}
		upcoming = append(upcoming, b)
		if len(upcoming) == upcomingBookingLimit {
			break
		}
	}
	return upcoming
}

// NearbyDispensaries returns up to five rated dispensaries in input order.
// Unrated listings are skipped.
func NearbyDispensaries(dispensaries []models.Dispensary) []models.Dispensary {
	nearby := make([]models.Dispensary, 0, nearbyDispensaryLimit)
	for _, d := range dispensaries {
		if d.Rating == nil {
			continue
		}
		nearby = append(nearby, d)
		if len(nearby) == nearbyDispensaryLimit {
			break
		}
	}
	return nearby
}

// InvitationPreview returns the first three invitations for the dashboard
// sidebar.
func InvitationPreview(invitations []models.Invitation) []models.Invitation {
	if len(invitations) > invitationPreviewLimit {
		invitations = invitations[:invitationPreviewLimit]
	}
	preview := make([]models.Invitation, len(invitations))
	copy(preview, invitations)
	return preview
}
