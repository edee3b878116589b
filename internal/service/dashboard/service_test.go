package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AnsarMahir/doc4all-dashboard/internal/auth"
	"github.com/AnsarMahir/doc4all-dashboard/internal/domain/models"
	"github.com/AnsarMahir/doc4all-dashboard/internal/service/fetcher"
)

var errUpstream = errors.New("upstream unavailable")

var testNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func doctorIdent() auth.Identity {
	return auth.Identity{UserID: "u-1", Email: "doc@example.com", Role: auth.RoleDoctor, Token: "tok"}
}

// stubAPI fakes the platform client; zero value answers everything empty
// with a complete profile.
type stubAPI struct {
	bookings     []models.Booking
	invitations  []models.Invitation
	statusErr    error
	incomplete   bool
	bookingsErr  error
	dispProfile  models.DispensaryProfile
	dispensaries []models.Dispensary
}

func (s *stubAPI) ListDoctorBookings(context.Context, string) ([]models.Booking, error) {
	return s.bookings, s.bookingsErr
}

func (s *stubAPI) ListDoctorInvitations(context.Context, string) ([]models.Invitation, error) {
	return s.invitations, nil
}

func (s *stubAPI) DoctorProfileStatus(context.Context, string) (models.ProfileStatus, error) {
	if s.statusErr != nil {
		return models.ProfileStatus{}, s.statusErr
	}
	return models.ProfileStatus{IsComplete: !s.incomplete}, nil
}

func (s *stubAPI) CompleteDoctorProfile(context.Context, string, models.DoctorProfilePayload) error {
	return nil
}

func (s *stubAPI) ListDispensaryBookings(context.Context, string) ([]models.Booking, error) {
	return s.bookings, s.bookingsErr
}

func (s *stubAPI) ListDispensaryInvitations(context.Context, string) ([]models.Invitation, error) {
	return s.invitations, nil
}

func (s *stubAPI) GetDispensaryProfile(context.Context, string) (models.DispensaryProfile, error) {
	return s.dispProfile, nil
}

func (s *stubAPI) DispensaryProfileStatus(context.Context, string, string) (models.ProfileStatus, error) {
	return models.ProfileStatus{IsComplete: !s.incomplete}, nil
}

func (s *stubAPI) CompleteDispensaryProfile(context.Context, string, models.DispensaryProfileSubmission) error {
	return nil
}

func (s *stubAPI) ListPatientBookings(context.Context, string) ([]models.Booking, error) {
	return s.bookings, s.bookingsErr
}

func (s *stubAPI) ListDispensaries(context.Context, string) ([]models.Dispensary, error) {
	return s.dispensaries, nil
}

type recordingArchiver struct {
	records chan models.SnapshotRecord
}

func (a *recordingArchiver) SaveSnapshotRecord(_ context.Context, record models.SnapshotRecord) error {
	a.records <- record
	return nil
}

func newService(api *stubAPI, archive Archiver) *Service {
	svc := NewService(fetcher.New(api, nil), api, archive, nil)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestDoctor_ProfileIncompleteGatesDashboard(t *testing.T) {
	api := &stubAPI{
		incomplete: true,
		bookings:   []models.Booking{{ID: 1, Status: models.StatusConfirmed}},
	}
	svc := newService(api, nil)

	snap, err := svc.Doctor(context.Background(), doctorIdent())
	if err != nil {
		t.Fatalf("Doctor() error: %v", err)
	}

	if snap.State != models.StateProfileIncomplete {
		t.Fatalf("state = %s, want profile_incomplete", snap.State)
	}
	if snap.Stats != (models.DoctorStats{}) {
		t.Fatalf("stats = %+v, want zero while profile is incomplete", snap.Stats)
	}
	if len(snap.RecentBookings) != 0 {
		t.Fatal("no booking data should leak before profile completion")
	}
}

func TestDoctor_StatusCheckFailureTreatedAsIncomplete(t *testing.T) {
	svc := newService(&stubAPI{statusErr: errUpstream}, nil)

	snap, err := svc.Doctor(context.Background(), doctorIdent())
	if err != nil {
		t.Fatalf("Doctor() error: %v", err)
	}

	if snap.State != models.StateProfileIncomplete {
		t.Fatalf("state = %s, want profile_incomplete on status failure", snap.State)
	}
	if len(snap.Degraded) != 1 || snap.Degraded[0] != fetcher.SourceProfile {
		t.Fatalf("degraded = %v, want [profile]", snap.Degraded)
	}
}

func TestDoctor_ReadySnapshot(t *testing.T) {
	api := &stubAPI{
		bookings: []models.Booking{
			{ID: 1, PatientName: "p1", DispensaryName: "D1", AppointmentDate: testNow.Format("2006-01-02"), Status: models.StatusConfirmed},
			{ID: 2, PatientName: "p2", DispensaryName: "D1", AppointmentDate: testNow.Format("2006-01-02"), Status: models.StatusPending},
		},
		invitations: []models.Invitation{{ID: 1, Status: "PENDING"}},
	}
	svc := newService(api, nil)

	snap, err := svc.Doctor(context.Background(), doctorIdent())
	if err != nil {
		t.Fatalf("Doctor() error: %v", err)
	}

	if snap.State != models.StateReady {
		t.Fatalf("state = %s, want ready", snap.State)
	}
	if snap.ID == "" {
		t.Fatal("snapshot ID must be set")
	}
	if !snap.GeneratedAt.Equal(testNow) {
		t.Fatalf("generatedAt = %v, want injected clock %v", snap.GeneratedAt, testNow)
	}
	if snap.Stats.TotalPatients != 2 || snap.Stats.WeeklyAppointments != 1 {
		t.Fatalf("stats = %+v, want 2 patients and 1 weekly appointment", snap.Stats)
	}
	if snap.Stats.PendingInvitations != 1 {
		t.Fatalf("pending invitations = %d, want 1", snap.Stats.PendingInvitations)
	}
	if len(snap.Charts.AppointmentsByDay.Labels) != 7 {
		t.Fatal("time series must have 7 points")
	}
}

func TestDoctor_FetchFailureDegradesNotFails(t *testing.T) {
	svc := newService(&stubAPI{bookingsErr: errUpstream}, nil)

	snap, err := svc.Doctor(context.Background(), doctorIdent())
	if err != nil {
		t.Fatalf("Doctor() error: %v", err)
	}

	if snap.State != models.StateReady {
		t.Fatalf("state = %s, want ready with degraded sources", snap.State)
	}
	if len(snap.Degraded) != 1 || snap.Degraded[0] != fetcher.SourceBookings {
		t.Fatalf("degraded = %v, want [bookings]", snap.Degraded)
	}
	if snap.Charts.AppointmentsByDispensary.Labels[0] != "No Data" {
		t.Fatal("empty ranking must carry the No Data placeholder")
	}
}

func TestDispensary_Snapshot(t *testing.T) {
	api := &stubAPI{
		bookings: []models.Booking{
			{ID: 1, DoctorName: "A", AppointmentDate: testNow.Format("2006-01-02"), Status: models.StatusConfirmed},
		},
		dispProfile: models.DispensaryProfile{Name: "Central", Address: "1 Main St"},
	}
	svc := newService(api, nil)

	snap, err := svc.Dispensary(context.Background(), auth.Identity{Role: auth.RoleDispensary, Token: "tok"})
	if err != nil {
		t.Fatalf("Dispensary() error: %v", err)
	}

	if snap.DispensaryInfo.Name != "Central" {
		t.Fatalf("dispensaryInfo = %+v, want fetched profile", snap.DispensaryInfo)
	}
	if snap.Stats.TotalBookings != 1 || snap.Stats.TodayAppointments != 1 {
		t.Fatalf("stats = %+v, want 1 total and 1 today", snap.Stats)
	}
}

func TestPatient_Snapshot(t *testing.T) {
	rating := 4.2
	api := &stubAPI{
		bookings: []models.Booking{
			{ID: 1, DoctorName: "A", AppointmentDate: testNow.AddDate(0, 0, 1).Format("2006-01-02"), Status: models.StatusPending},
			{ID: 2, DoctorName: "A", AppointmentDate: testNow.AddDate(0, 0, -3).Format("2006-01-02"), Status: models.StatusCompleted},
		},
		dispensaries: []models.Dispensary{{ID: 1, Name: "Central", Rating: &rating}},
	}
	svc := newService(api, nil)

	snap, err := svc.Patient(context.Background(), auth.Identity{Role: auth.RolePatient, Token: "tok"})
	if err != nil {
		t.Fatalf("Patient() error: %v", err)
	}

	if snap.Stats.TotalAppointments != 2 || snap.Stats.CompletedAppointments != 1 {
		t.Fatalf("stats = %+v, want 2 total and 1 completed", snap.Stats)
	}
	if len(snap.UpcomingAppointments) != 1 || snap.UpcomingAppointments[0].ID != 1 {
		t.Fatalf("upcoming = %v, want only the pending future booking", snap.UpcomingAppointments)
	}
	if len(snap.NearbyDispensaries) != 1 {
		t.Fatalf("nearby = %v, want the rated dispensary", snap.NearbyDispensaries)
	}
}

func TestSnapshotsAreArchived(t *testing.T) {
	archive := &recordingArchiver{records: make(chan models.SnapshotRecord, 1)}
	api := &stubAPI{bookings: []models.Booking{{ID: 1, Status: models.StatusConfirmed}}}
	svc := newService(api, archive)

	snap, err := svc.Doctor(context.Background(), doctorIdent())
	if err != nil {
		t.Fatalf("Doctor() error: %v", err)
	}

	select {
	case record := <-archive.records:
		if record.SnapshotID != snap.ID {
			t.Fatalf("archived ID = %s, want %s", record.SnapshotID, snap.ID)
		}
		if record.Role != "DOCTOR" || record.State != "ready" {
			t.Fatalf("archived record = %+v, want DOCTOR/ready", record)
		}
		if record.TotalBookings != 1 {
			t.Fatalf("archived total bookings = %d, want 1", record.TotalBookings)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("snapshot was never archived")
	}
}
