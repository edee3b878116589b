package models

import "time"

// SnapshotState tells the presentation layer what to render.
type SnapshotState string

const (
	// StateReady means statistics and charts are populated.
	StateReady SnapshotState = "ready"
	// StateProfileIncomplete means the user must complete their profile
	// before the dashboard is available. Stats and charts are omitted.
	StateProfileIncomplete SnapshotState = "profile_incomplete"
)

// DoctorStats are the headline counters of the doctor dashboard.
type DoctorStats struct {
	TotalPatients      int `json:"totalPatients"`
	ActiveDispensaries int `json:"activeDispensaries"`
	WeeklyAppointments int `json:"weeklyAppointments"`
	PendingInvitations int `json:"pendingInvitations"`
}

// DispensaryStats are the headline counters of the dispensary dashboard.
type DispensaryStats struct {
	ActiveDoctors      int `json:"activeDoctors"`
	PendingInvitations int `json:"pendingInvitations"`
	TotalBookings      int `json:"totalBookings"`
	TodayAppointments  int `json:"todayAppointments"`
}

// PatientStats are the headline counters of the patient dashboard.
type PatientStats struct {
	TotalAppointments     int `json:"totalAppointments"`
	CompletedAppointments int `json:"completedAppointments"`
	CancelledAppointments int `json:"cancelledAppointments"`
}

// DoctorCharts groups the chart datasets of the doctor dashboard.
type DoctorCharts struct {
	AppointmentsByDay        ChartDataset `json:"appointmentsByDay"`
	AppointmentsByDispensary ChartDataset `json:"appointmentsByDispensary"`
	AppointmentsByStatus     ChartDataset `json:"appointmentsByStatus"`
}

// DispensaryCharts groups the chart datasets of the dispensary dashboard.
type DispensaryCharts struct {
	BookingsByDoctor  ChartDataset `json:"bookingsByDoctor"`
	BookingsByStatus  ChartDataset `json:"bookingsByStatus"`
	AppointmentsByDay ChartDataset `json:"appointmentsByDay"`
}

// PatientCharts groups the chart datasets of the patient dashboard.
type PatientCharts struct {
	AppointmentsByStatus ChartDataset `json:"appointmentsByStatus"`
	AppointmentsByDoctor ChartDataset `json:"appointmentsByDoctor"`
	AppointmentsByDay    ChartDataset `json:"appointmentsByDay"`
}

// DoctorSnapshot is the full dashboard payload for a doctor. Rebuilt from
// scratch on every request; Degraded lists the sources that fell back to
// empty defaults because their fetch failed.
type DoctorSnapshot struct {
	ID             string        `json:"snapshotId"`
	State          SnapshotState `json:"state"`
	Stats          DoctorStats   `json:"stats"`
	RecentBookings []Booking     `json:"recentBookings"`
	Invitations    []Invitation  `json:"invitations"`
	Charts         DoctorCharts  `json:"chartData"`
	Degraded       []string      `json:"degraded,omitempty"`
	GeneratedAt    time.Time     `json:"generatedAt"`
}

// DispensarySnapshot is the full dashboard payload for a dispensary.
type DispensarySnapshot struct {
	ID             string            `json:"snapshotId"`
	State          SnapshotState     `json:"state"`
	Stats          DispensaryStats   `json:"stats"`
	RecentBookings []Booking         `json:"recentBookings"`
	Invitations    []Invitation      `json:"invitations"`
	Charts         DispensaryCharts  `json:"chartData"`
	DispensaryInfo DispensaryProfile `json:"dispensaryInfo"`
	Degraded       []string          `json:"degraded,omitempty"`
	GeneratedAt    time.Time         `json:"generatedAt"`
}

// PatientSnapshot is the full dashboard payload for a patient.
type PatientSnapshot struct {
	ID                   string        `json:"snapshotId"`
	State                SnapshotState `json:"state"`
	Stats                PatientStats  `json:"stats"`
	UpcomingAppointments []Booking     `json:"upcomingAppointments"`
	NearbyDispensaries   []Dispensary  `json:"nearbyDispensaries"`
	Charts               PatientCharts `json:"chartData"`
	Degraded             []string      `json:"degraded,omitempty"`
	GeneratedAt          time.Time     `json:"generatedAt"`
}

// SnapshotRecord is the archived trace of one generated snapshot, stored
// in MongoDB for operational reporting.
type SnapshotRecord struct {
	SnapshotID    string    `bson:"snapshot_id" json:"snapshot_id"`
	Role          string    `bson:"role" json:"role"`
	UserID        string    `bson:"user_id" json:"user_id"`
	State         string    `bson:"state" json:"state"`
	Degraded      []string  `bson:"degraded,omitempty" json:"degraded,omitempty"`
	TotalBookings int       `bson:"total_bookings" json:"total_bookings"`
	GeneratedAt   time.Time `bson:"generated_at" json:"generated_at"`
}

// OpsSummary aggregates archived snapshot activity since a point in time.
type OpsSummary struct {
	Since    time.Time
	Total    int
	ByRole   map[string]int
	Degraded int
}
