package monitoring

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"gallery_backend/internal/models"
)

// Scanner looks for reuse of one image on the web.
type Scanner interface {
	Scan(ctx context.Context, imageID string) ([]models.InfringementMatch, error)
}

var (
	scanDomains = []string{"randomblog.com", "artforum.net", "social-site.org", "portfolio-scraper.biz"}
	scanPaths   = []string{"/gallery/2024/", "/user-uploads/", "/posts/"}
)

// MaxMatches bounds how many matches one simulated scan reports.
const MaxMatches = 3

// SimulatedScanner fabricates 0 to MaxMatches matches at random URLs.
type SimulatedScanner struct {
	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

func NewSimulatedScanner(seed int64) *SimulatedScanner {
	return &SimulatedScanner{
		rnd: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

func (s *SimulatedScanner) Scan(ctx context.Context, imageID string) ([]models.InfringementMatch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.rnd.Intn(MaxMatches + 1)
	foundAt := s.now()
	matches := make([]models.InfringementMatch, 0, n)
	for i := 0; i < n; i++ {
		domain := scanDomains[s.rnd.Intn(len(scanDomains))]
		path := scanPaths[s.rnd.Intn(len(scanPaths))]
		matches = append(matches, models.InfringementMatch{
			URL:      fmt.Sprintf("https://%s%simage_%d.jpg", domain, path, s.rnd.Intn(1000)),
			Status:   models.MatchStatusFound,
			FoundAt:  foundAt,
			Position: i,
		})
	}
	return matches, nil
}

// Delay returns base plus a random share of jitter.
func (s *SimulatedScanner) Delay(base, jitter time.Duration) time.Duration {
	if jitter <= 0 {
		return base
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return base + time.Duration(s.rnd.Int63n(int64(jitter)))
}
