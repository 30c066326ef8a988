package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tida-sports/AcademyBotBack/internal/models"
	"golang.org/x/sync/errgroup"
)

const (
	prettyDateLayout = "Monday, 02 Jan"
	timeLayout       = "15:04"

	// Upper bound on concurrent per-academy slot lookups in broad search.
	broadSearchConcurrency = 4
)

type intentExtractor interface {
	Extract(ctx context.Context, message string) models.IntentRecord
}

type academyFinder interface {
	FindNearby(ctx context.Context, lat, lng, radiusKM float64, limit int) ([]models.AcademyWithDistance, error)
	FindByName(ctx context.Context, fragment string) (*models.Academy, error)
	CountAcademies(ctx context.Context) (int, error)
}

type slotProvider interface {
	AvailableSlots(ctx context.Context, academyName string, date string) ([]models.FreeSlot, error)
}

// ChatService turns a free-text user message into a formatted reply. The
// extractor output is untrusted: any field may be missing or garbage, so each
// branch degrades to a sensible default instead of assuming the schema.
type ChatService struct {
	extractor    intentExtractor
	academies    academyFinder
	slots        slotProvider
	radiusKM     float64
	defaultLimit int
	now          func() time.Time
}

func NewChatService(
	extractor intentExtractor,
	academies academyFinder,
	slots slotProvider,
	radiusKM float64,
	defaultLimit int,
) *ChatService {
	if defaultLimit <= 0 {
		defaultLimit = DefaultResultLimit
	}
	return &ChatService{
		extractor:    extractor,
		academies:    academies,
		slots:        slots,
		radiusKM:     radiusKM,
		defaultLimit: defaultLimit,
		now:          time.Now,
	}
}

type ChatInput struct {
	Message   string
	Latitude  float64
	Longitude float64
}

// Respond dispatches on the extracted intent in fixed precedence order:
// count, address, slot check, then discovery as the fallback.
func (s *ChatService) Respond(ctx context.Context, input ChatInput) (string, error) {
	record := s.extractor.Extract(ctx, input.Message)
	lowered := strings.ToLower(input.Message)

	limit := s.defaultLimit
	if record.Limit != nil && *record.Limit > 0 {
		limit = *record.Limit
	}

	rawTarget := strings.TrimSpace(stringValue(record.TargetName))
	target := rawTarget
	if isGenericPhrase(target) {
		target = ""
	}

	if record.Intent == models.IntentCountAcademies {
		return s.respondCount(ctx)
	}

	if record.Intent == models.IntentGetAddress ||
		(rawTarget != "" && strings.Contains(lowered, "address")) {
		return s.respondAddress(ctx, target, input.Message)
	}

	if record.Intent == models.IntentCheckSlots ||
		stringValue(record.Date) != "" ||
		strings.Contains(lowered, "slot") {
		return s.respondSlots(ctx, record, input, target, limit)
	}

	return s.respondDiscovery(ctx, input, limit)
}

func (s *ChatService) respondCount(ctx context.Context) (string, error) {
	count, err := s.academies.CountAcademies(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("📊 **System Status**\nActive Academies: **%d**", count), nil
}

func (s *ChatService) respondAddress(
	ctx context.Context,
	target string,
	message string,
) (string, error) {
	searchName := target
	if searchName == "" {
		searchName = message
	}

	academy, err := s.academies.FindByName(ctx, searchName)
	if err != nil {
		if errors.Is(err, ErrAcademyNotFound) {
			return "❌ Academy not found. Try asking for 'academies near me'.", nil
		}
		return "", err
	}
	return fmt.Sprintf("📍 **%s**\n%s", academy.Name, academy.Address), nil
}

func (s *ChatService) respondSlots(
	ctx context.Context,
	record models.IntentRecord,
	input ChatInput,
	target string,
	limit int,
) (string, error) {
	date := strings.TrimSpace(stringValue(record.Date))
	if date == "" {
		return "📅 **Date Needed**\nPlease specify a date (e.g., Today, Tomorrow).", nil
	}

	day, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	prettyDate := day.Format(prettyDateLayout)

	now := s.now()
	isToday := date == now.Format(dateLayout)

	requestedTime := strings.TrimSpace(stringValue(record.Time))
	requestedHour := -1
	if requestedTime != "" {
		parsed, err := time.Parse(timeLayout, requestedTime)
		if err != nil {
			return "", fmt.Errorf("%w: %q", ErrInvalidTime, requestedTime)
		}
		requestedHour = parsed.Hour()
	}

	if target != "" {
		return s.respondNamedSlots(ctx, target, date, prettyDate, requestedTime, requestedHour, isToday, now)
	}
	return s.respondBroadSlots(ctx, input, date, prettyDate, requestedHour, isToday, now, limit)
}

func (s *ChatService) respondNamedSlots(
	ctx context.Context,
	target string,
	date string,
	prettyDate string,
	requestedTime string,
	requestedHour int,
	isToday bool,
	now time.Time,
) (string, error) {
	academy, err := s.academies.FindByName(ctx, target)
	if err != nil {
		if errors.Is(err, ErrAcademyNotFound) {
			return fmt.Sprintf("❌ Academy '**%s**' not found.", target), nil
		}
		return "", err
	}

	free, err := s.slots.AvailableSlots(ctx, academy.Name, date)
	if err != nil {
		return "", err
	}
	if isToday {
		free = DropElapsed(free, now)
	}

	if len(free) == 0 {
		return fmt.Sprintf("❌ **%s** is fully booked on %s.", academy.Name, prettyDate), nil
	}

	if requestedHour >= 0 {
		if match := slotAtHour(free, requestedHour); match != nil {
			return fmt.Sprintf("✅ **Available**\n%s has a slot at **%s**.", academy.Name, match.Display), nil
		}
		return fmt.Sprintf("❌ **Booked**\n%s is taken at %s.", requestedTime, academy.Name), nil
	}

	return fmt.Sprintf("✅ **%s**\n**Open:** %s", academy.Name, FormatTimeRanges(free, SlotDuration)), nil
}

func (s *ChatService) respondBroadSlots(
	ctx context.Context,
	input ChatInput,
	date string,
	prettyDate string,
	requestedHour int,
	isToday bool,
	now time.Time,
	limit int,
) (string, error) {
	centres, err := s.academies.FindNearby(ctx, input.Latitude, input.Longitude, s.radiusKM, limit)
	if err != nil {
		return "", err
	}
	if len(centres) == 0 {
		return fmt.Sprintf("🚫 No academies found within %.0fkm.", s.radiusKM), nil
	}

	// The per-candidate lookups share nothing, so fan out, but keep results
	// indexed to preserve the distance ordering.
	perCentre := make([][]models.FreeSlot, len(centres))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(broadSearchConcurrency)
	for i, centre := range centres {
		g.Go(func() error {
			free, err := s.slots.AvailableSlots(gctx, centre.Name, date)
			if err != nil {
				return err
			}
			if isToday {
				free = DropElapsed(free, now)
			}
			perCentre[i] = free
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	blocks := []string{fmt.Sprintf("### 🗓️ Availability for %s\n", prettyDate)}
	anyFound := false

	for i, centre := range centres {
		free := perCentre[i]
		if len(free) == 0 {
			continue
		}
		anyFound = true

		if requestedHour >= 0 {
			if match := slotAtHour(free, requestedHour); match != nil {
				blocks = append(blocks, fmt.Sprintf(
					"✅ **%s** (%.1f km)\n   • Open at **%s**",
					centre.Name, centre.DistanceKM, match.Display,
				))
			}
			continue
		}

		if len(free) >= SlotsPerDay {
			blocks = append(blocks, fmt.Sprintf(
				"🟢 **%s** (%.1f km)\n   • Entire day available",
				centre.Name, centre.DistanceKM,
			))
		} else {
			blocks = append(blocks, fmt.Sprintf(
				"🟡 **%s** (%.1f km)\n   • %s",
				centre.Name, centre.DistanceKM, FormatTimeRanges(free, SlotDuration),
			))
		}
	}

	if !anyFound {
		return fmt.Sprintf("⚠️ Fully booked nearby for %s.", prettyDate), nil
	}
	return strings.Join(blocks, "\n\n"), nil
}

func (s *ChatService) respondDiscovery(
	ctx context.Context,
	input ChatInput,
	limit int,
) (string, error) {
	centres, err := s.academies.FindNearby(ctx, input.Latitude, input.Longitude, s.radiusKM, limit)
	if err != nil {
		return "", err
	}
	if len(centres) == 0 {
		return "No academies found nearby.", nil
	}

	items := make([]string, 0, len(centres))
	for _, centre := range centres {
		items = append(items, fmt.Sprintf(
			"📍 **%s**\n   %s (%.1f km)",
			centre.Name, centre.Address, centre.DistanceKM,
		))
	}
	header := fmt.Sprintf("Here are the **%d** closest academies:\n\n", len(centres))
	return header + strings.Join(items, "\n\n"), nil
}

func slotAtHour(slots []models.FreeSlot, hour int) *models.FreeSlot {
	for i := range slots {
		if slots[i].Start.Hour() == hour {
			return &slots[i]
		}
	}
	return nil
}

// isGenericPhrase reports whether the extractor handed back a location phrase
// instead of an academy name. Those must never reach the name lookup.
func isGenericPhrase(target string) bool {
	switch strings.ToLower(target) {
	case "near me", "nearby", "closest":
		return true
	}
	return false
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
