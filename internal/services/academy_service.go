package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/tida-sports/AcademyBotBack/internal/models"
	"github.com/tida-sports/AcademyBotBack/pkg/geo"
)

var ErrAcademyNotFound = errors.New("academy not found")

const (
	DefaultResultLimit = 5
	MaxResultLimit     = 20
)

type academyLister interface {
	ListDistinct(ctx context.Context) ([]models.Academy, error)
	FindByName(ctx context.Context, fragment string) (*models.Academy, error)
	CountDistinct(ctx context.Context) (int, error)
}

// AcademyService resolves academies around a point. The repository hands back
// the deduplicated academy set; distance, radius filtering, ordering and
// truncation happen here so the geometry stays testable without a database.
type AcademyService struct {
	repo academyLister
}

func NewAcademyService(repo academyLister) *AcademyService {
	return &AcademyService{repo: repo}
}

func (s *AcademyService) FindNearby(
	ctx context.Context,
	lat float64,
	lng float64,
	radiusKM float64,
	limit int,
) ([]models.AcademyWithDistance, error) {
	if limit <= 0 {
		limit = DefaultResultLimit
	}
	if limit > MaxResultLimit {
		limit = MaxResultLimit
	}

	academies, err := s.repo.ListDistinct(ctx)
	if err != nil {
		return nil, err
	}

	nearby := make([]models.AcademyWithDistance, 0, len(academies))
	for _, academy := range academies {
		distance := geo.DistanceKM(lat, lng, academy.Latitude, academy.Longitude)
		if distance < radiusKM {
			nearby = append(nearby, models.AcademyWithDistance{
				Academy:    academy,
				DistanceKM: distance,
			})
		}
	}

	sort.SliceStable(nearby, func(i, j int) bool {
		return nearby[i].DistanceKM < nearby[j].DistanceKM
	})

	if len(nearby) > limit {
		nearby = nearby[:limit]
	}

	return nearby, nil
}

// FindByName looks up a single academy by case-insensitive substring match.
// Generic phrases like "near me" must be nulled by the caller before calling.
func (s *AcademyService) FindByName(ctx context.Context, fragment string) (*models.Academy, error) {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return nil, ErrAcademyNotFound
	}

	academy, err := s.repo.FindByName(ctx, fragment)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAcademyNotFound
		}
		return nil, err
	}
	return academy, nil
}

func (s *AcademyService) CountAcademies(ctx context.Context) (int, error) {
	return s.repo.CountDistinct(ctx)
}
