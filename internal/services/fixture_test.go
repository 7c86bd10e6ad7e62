package services_test

import (
	"sync"
	"testing"
	"time"

	"gallery_backend/internal/auth"
	"gallery_backend/internal/email"
	"gallery_backend/internal/monitoring"
	"gallery_backend/internal/repositories"
	"gallery_backend/internal/services"
	"gallery_backend/internal/workers"
	"gallery_backend/test/helpers"

	"gorm.io/gorm"
)

// recordingQueue stands in for the scan worker.
type recordingQueue struct {
	mu   sync.Mutex
	jobs []workers.ScanJob
}

func (q *recordingQueue) Enqueue(job workers.ScanJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, job)
	return nil
}

func (q *recordingQueue) Jobs() []workers.ScanJob {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]workers.ScanJob(nil), q.jobs...)
}

type fixture struct {
	db     *gorm.DB
	mail   *email.LogProvider
	queue  *recordingQueue
	tokens *auth.TokenManager

	auth          services.AuthService
	profiles      services.ProfileService
	gigs          services.GigService
	applications  services.ApplicationService
	agreements    services.AgreementService
	reviews       services.ReviewService
	monitoring    services.MonitoringService
	notifications services.NotificationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	userRepo := repositories.NewUserRepository()
	sessionRepo := repositories.NewSessionRepository()
	profileRepo := repositories.NewProfileRepository()
	gigRepo := repositories.NewGigRepository()
	appRepo := repositories.NewApplicationRepository()
	agreementRepo := repositories.NewAgreementRepository()
	reviewRepo := repositories.NewReviewRepository()

	f := &fixture{
		db:     helpers.NewTestDB(t),
		mail:   email.NewLogProvider(email.NewDefaultTemplateManager()),
		queue:  &recordingQueue{},
		tokens: auth.NewTokenManager("fixture-secret", time.Hour),
	}
	notifier := monitoring.NewMemoryNotifier()
	t.Cleanup(func() { notifier.Close() })

	f.notifications = services.NewNotificationService(f.mail, profileRepo)
	f.auth = services.NewAuthService(userRepo, sessionRepo, f.tokens)
	f.profiles = services.NewProfileService(userRepo, profileRepo, reviewRepo)
	f.gigs = services.NewGigService(gigRepo, profileRepo)
	f.applications = services.NewApplicationService(appRepo, gigRepo, profileRepo, agreementRepo, f.notifications)
	f.agreements = services.NewAgreementService(agreementRepo, profileRepo, f.notifications)
	f.reviews = services.NewReviewService(reviewRepo, gigRepo, profileRepo)
	f.monitoring = services.NewMonitoringService(repositories.NewMonitoringRepository(), profileRepo, f.queue, notifier)

	t.Cleanup(f.notifications.Wait)
	return f
}
