package models

// BookingStatus enumerates the lifecycle states a booking can be in.
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCancelled BookingStatus = "CANCELLED"
	StatusCompleted BookingStatus = "COMPLETED"
)

// StatusOrder is the fixed presentation order of the known statuses.
// Status-distribution charts always emit all four, in this order.
var StatusOrder = []BookingStatus{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted}

// Known reports whether the status is one of the four enumerated values.
// Anything else is dropped from status distributions.
func (s BookingStatus) Known() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Realized reports whether the booking counts as an actual visit for
// forward-looking statistics. Pending and cancelled bookings do not.
func (s BookingStatus) Realized() bool {
	return s == StatusConfirmed || s == StatusCompleted
}

// Booking is one scheduled appointment between a patient and a doctor at a
// dispensary, as returned by the platform API. The appointment date is an
// ISO calendar date string (2006-01-02).
type Booking struct {
	ID              int64         `json:"bookingId"`
	PatientName     string        `json:"patientName"`
	DoctorID        string        `json:"doctorId,omitempty"`
	DoctorName      string        `json:"doctorName"`
	DispensaryID    string        `json:"dispensaryId,omitempty"`
	DispensaryName  string        `json:"dispensaryName"`
	AppointmentDate string        `json:"appointmentDate"`
	AppointmentTime string        `json:"appointmentTime"`
	Status          BookingStatus `json:"status"`
}

// Invitation is an offer for a doctor to affiliate with a dispensary.
type Invitation struct {
	ID             int64  `json:"invitationId"`
	DoctorName     string `json:"doctorName,omitempty"`
	DispensaryName string `json:"dispensaryName,omitempty"`
	Status         string `json:"status"`
	CreatedAt      string `json:"createdAt,omitempty"`
}

// InvitationPending is the status value counted as an open invitation.
const InvitationPending = "PENDING"

// Dispensary is a registered dispensary listing shown on the patient
// dashboard. Rating is nil until at least one review exists.
type Dispensary struct {
	ID            int64    `json:"dispensaryId"`
	Name          string   `json:"name"`
	Address       string   `json:"address"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	ContactNumber string   `json:"contactNumber"`
	Rating        *float64 `json:"rating"`
	Type          string   `json:"type"`
}
