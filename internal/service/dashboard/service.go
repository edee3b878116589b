package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AnsarMahir/doc4all-dashboard/internal/auth"
	"github.com/AnsarMahir/doc4all-dashboard/internal/domain/models"
	"github.com/AnsarMahir/doc4all-dashboard/internal/service/aggregate"
	"github.com/AnsarMahir/doc4all-dashboard/internal/service/fetcher"
	"github.com/AnsarMahir/doc4all-dashboard/pkg/clients/doc4all"
)

const archiveTimeout = 5 * time.Second

// Archiver persists a trace of each generated snapshot. Optional; a nil
// Archiver disables archiving.
type Archiver interface {
	SaveSnapshotRecord(ctx context.Context, record models.SnapshotRecord) error
}

// Service builds role-scoped dashboard snapshots: fetch raw records,
// aggregate, assemble. Snapshots are rebuilt in full on every call and
// never cached.
type Service struct {
	fetch   *fetcher.Fetcher
	api     doc4all.Client
	archive Archiver
	logger  *zap.Logger
	now     func() time.Time
}

// NewService wires a dashboard service. archive may be nil.
func NewService(fetch *fetcher.Fetcher, api doc4all.Client, archive Archiver, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		fetch:   fetch,
		api:     api,
		archive: archive,
		logger:  logger,
		now:     time.Now,
	}
}

// Doctor builds the doctor dashboard snapshot. When the doctor has not
// completed their profile yet, the snapshot carries the
// profile_incomplete state and no data; the dashboard becomes available
// only after the completion form succeeds. A failing status check is
// treated as incomplete, matching the platform's sign-up flow.
func (s *Service) Doctor(ctx context.Context, ident auth.Identity) (models.DoctorSnapshot, error) {
	now := s.now()

	status, err := s.api.DoctorProfileStatus(ctx, ident.Token)
	if err != nil {
		s.logger.Warn("doctor profile status check failed", zap.Error(err))
		snap := models.DoctorSnapshot{
			ID:          uuid.NewString(),
			State:       models.StateProfileIncomplete,
			Degraded:    []string{fetcher.SourceProfile},
			GeneratedAt: now,
		}
		s.archiveSnapshot(ident, snap.ID, string(snap.State), snap.Degraded, 0, now)
		return snap, nil
	}
	if !status.IsComplete {
		snap := models.DoctorSnapshot{
			ID:          uuid.NewString(),
			State:       models.StateProfileIncomplete,
			GeneratedAt: now,
		}
		s.archiveSnapshot(ident, snap.ID, string(snap.State), nil, 0, now)
		return snap, nil
	}

	bundle := s.fetch.Doctor(ctx, ident.Token)
	if err := ctx.Err(); err != nil {
		return models.DoctorSnapshot{}, err
	}

	snap := models.DoctorSnapshot{
		ID:             uuid.NewString(),
		State:          models.StateReady,
		Stats:          aggregate.DoctorStats(bundle.Bookings, bundle.Invitations, now),
		RecentBookings: aggregate.RecentBookings(bundle.Bookings),
		Invitations:    aggregate.InvitationPreview(bundle.Invitations),
		Charts: models.DoctorCharts{
			AppointmentsByDay:        aggregate.AppointmentsByDay(bundle.Bookings, now),
			AppointmentsByDispensary: aggregate.TopEntities(bundle.Bookings, aggregate.ByDispensary),
			AppointmentsByStatus:     aggregate.StatusDistribution(bundle.Bookings),
		},
		Degraded:    bundle.Degraded,
		GeneratedAt: now,
	}

	s.archiveSnapshot(ident, snap.ID, string(snap.State), snap.Degraded, len(bundle.Bookings), now)
	return snap, nil
}

// Dispensary builds the dispensary dashboard snapshot.
func (s *Service) Dispensary(ctx context.Context, ident auth.Identity) (models.DispensarySnapshot, error) {
	now := s.now()

	bundle := s.fetch.Dispensary(ctx, ident.Token)
	if err := ctx.Err(); err != nil {
		return models.DispensarySnapshot{}, err
	}

	snap := models.DispensarySnapshot{
		ID:             uuid.NewString(),
		State:          models.StateReady,
		Stats:          aggregate.DispensaryStats(bundle.Bookings, bundle.Invitations, now),
		RecentBookings: aggregate.RecentBookings(bundle.Bookings),
		Invitations:    aggregate.InvitationPreview(bundle.Invitations),
		Charts: models.DispensaryCharts{
			BookingsByDoctor:  aggregate.TopEntities(bundle.Bookings, aggregate.ByDoctor),
			BookingsByStatus:  aggregate.StatusDistribution(bundle.Bookings),
			AppointmentsByDay: aggregate.AppointmentsByDay(bundle.Bookings, now),
		},
		DispensaryInfo: bundle.Profile,
		Degraded:       bundle.Degraded,
		GeneratedAt:    now,
	}

	s.archiveSnapshot(ident, snap.ID, string(snap.State), snap.Degraded, len(bundle.Bookings), now)
	return snap, nil
}

// Patient builds the patient dashboard snapshot. Its two source fetches
// run concurrently and join before aggregation.
func (s *Service) Patient(ctx context.Context, ident auth.Identity) (models.PatientSnapshot, error) {
	now := s.now()

	bundle := s.fetch.Patient(ctx, ident.Token)
	if err := ctx.Err(); err != nil {
		return models.PatientSnapshot{}, err
	}

	snap := models.PatientSnapshot{
		ID:                   uuid.NewString(),
		State:                models.StateReady,
		Stats:                aggregate.PatientStats(bundle.Bookings),
		UpcomingAppointments: aggregate.UpcomingAppointments(bundle.Bookings, now),
		NearbyDispensaries:   aggregate.NearbyDispensaries(bundle.Dispensaries),
		Charts: models.PatientCharts{
			AppointmentsByStatus: aggregate.StatusDistribution(bundle.Bookings),
			AppointmentsByDoctor: aggregate.TopEntities(bundle.Bookings, aggregate.ByDoctor),
			AppointmentsByDay:    aggregate.AppointmentsByDay(bundle.Bookings, now),
		},
		Degraded:    bundle.Degraded,
		GeneratedAt: now,
	}

	s.archiveSnapshot(ident, snap.ID, string(snap.State), snap.Degraded, len(bundle.Bookings), now)
	return snap, nil
}

// archiveSnapshot records the snapshot trace in the background. The write
// runs on a detached context so it survives the request ending; failures
// are logged and never affect the response.
func (s *Service) archiveSnapshot(ident auth.Identity, id, state string, degraded []string, totalBookings int, generatedAt time.Time) {
	if s.archive == nil {
		return
	}

	record := models.SnapshotRecord{
		SnapshotID:    id,
		Role:          string(ident.Role),
		UserID:        ident.UserID,
		State:         state,
		Degraded:      degraded,
		TotalBookings: totalBookings,
		GeneratedAt:   generatedAt,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
		defer cancel()

		if err := s.archive.SaveSnapshotRecord(ctx, record); err != nil {
			s.logger.Warn("snapshot archive write failed", zap.Error(err), zap.String("snapshot_id", id))
		}
	}()
}
