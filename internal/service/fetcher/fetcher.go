package fetcher

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/AnsarMahir/doc4all-dashboard/internal/domain/models"
	"github.com/AnsarMahir/doc4all-dashboard/pkg/clients/doc4all"
)

// Source names identify which fetch degraded inside a bundle. They end up
// on the snapshot so the UI can flag partially loaded dashboards.
const (
	SourceBookings     = "bookings"
	SourceInvitations  = "invitations"
	SourceProfile      = "profile"
	SourceDispensaries = "dispensaries"
)

// Fetcher retrieves raw dashboard records for a role and degrades
// gracefully: a failed list fetch yields an empty slice, a failed profile
// fetch a zero-valued record, and the source name lands in Degraded.
// Nothing is retried and nothing is cached between calls.
type Fetcher struct {
	api    doc4all.Client
	logger *zap.Logger
}

// New wires a fetcher over the platform API client.
func New(api doc4all.Client, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{api: api, logger: logger}
}

// DoctorBundle carries the raw records behind the doctor dashboard.
type DoctorBundle struct {
	Bookings    []models.Booking
	Invitations []models.Invitation
	Degraded    []string
}

// DispensaryBundle carries the raw records behind the dispensary dashboard.
type DispensaryBundle struct {
	Bookings    []models.Booking
	Invitations []models.Invitation
	Profile     models.DispensaryProfile
	Degraded    []string
}

// PatientBundle carries the raw records behind the patient dashboard.
type PatientBundle struct {
	Bookings     []models.Booking
	Dispensaries []models.Dispensary
	Degraded     []string
}

// Doctor fetches bookings and invitations for the authenticated doctor.
func (f *Fetcher) Doctor(ctx context.Context, token string) DoctorBundle {
	var bundle DoctorBundle

	bookings, err := f.api.ListDoctorBookings(ctx, token)
	if err != nil {
		f.logger.Warn("doctor bookings fetch degraded", zap.Error(err))
		bundle.Degraded = append(bundle.Degraded, SourceBookings)
	}
	bundle.Bookings = orEmpty(bookings)

	invitations, err := f.api.ListDoctorInvitations(ctx, token)
	if err != nil {
		f.logger.Warn("doctor invitations fetch degraded", zap.Error(err))
		bundle.Degraded = append(bundle.Degraded, SourceInvitations)
	}
	bundle.Invitations = orEmpty(invitations)

	return bundle
}

// Dispensary fetches bookings, invitations and the dispensary's own
// profile record.
func (f *Fetcher) Dispensary(ctx context.Context, token string) DispensaryBundle {
	var bundle DispensaryBundle

	bookings, err := f.api.ListDispensaryBookings(ctx, token)
	if err != nil {
		f.logger.Warn("dispensary bookings fetch degraded", zap.Error(err))
		bundle.Degraded = append(bundle.Degraded, SourceBookings)
	}
	bundle.Bookings = orEmpty(bookings)

	invitations, err := f.api.ListDispensaryInvitations(ctx, token)
	if err != nil {
		f.logger.Warn("dispensary invitations fetch degraded", zap.Error(err))
		bundle.Degraded = append(bundle.Degraded, SourceInvitations)
	}
	bundle.Invitations = orEmpty(invitations)

	profile, err := f.api.GetDispensaryProfile(ctx, token)
	if err != nil {
		f.logger.Warn("dispensary profile fetch degraded", zap.Error(err))
		bundle.Degraded = append(bundle.Degraded, SourceProfile)
	}
	bundle.Profile = profile

	return bundle
}

// Patient fetches the patient's bookings and the dispensary directory
// concurrently. Both fetches must finish before the bundle is returned;
// either one failing degrades only its own slice.
func (f *Fetcher) Patient(ctx context.Context, token string) PatientBundle {
	var (
		bundle  PatientBundle
		wg      sync.WaitGroup
		mu      sync.Mutex
		degrade = func(source string, err error) {
			f.logger.Warn("patient fetch degraded", zap.String("source", source), zap.Error(err))
			mu.Lock()
			bundle.Degraded = append(bundle.Degraded, source)
			mu.Unlock()
		}
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		bookings, err := f.api.ListPatientBookings(ctx, token)
		if err != nil {
			degrade(SourceBookings, err)
		}
		bundle.Bookings = orEmpty(bookings)
	}()

	go func() {
		defer wg.Done()
		dispensaries, err := f.api.ListDispensaries(ctx, token)
		if err != nil {
			degrade(SourceDispensaries, err)
		}
		bundle.Dispensaries = orEmpty(dispensaries)
	}()

	wg.Wait()

	// Keep degradation order deterministic regardless of goroutine timing.
	if len(bundle.Degraded) == 2 && bundle.Degraded[0] != SourceBookings {
		bundle.Degraded[0], bundle.Degraded[1] = bundle.Degraded[1], bundle.Degraded[0]
	}

	return bundle
}

func orEmpty[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
