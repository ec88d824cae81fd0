package exam

import (
	"errors"
	"math/rand/v2"

	"github.com/abhisek/prepgd/internal/stats"
)

// Mode selects how an exam's parameters are chosen.
type Mode string

const (
	// ModeFull is the standard 20-question mixed mock.
	ModeFull Mode = "full"

	// ModeWeakness drills a randomly picked weak topic.
	ModeWeakness Mode = "weakness"

	// ModeDrill uses a caller-chosen subject and topic.
	ModeDrill Mode = "drill"
)

const (
	// SecondsPerQuestion sets the countdown budget per question.
	SecondsPerQuestion = 45

	FullMockCount   = 20
	FullMockSubject = "General Knowledge & Reasoning"
	FullMockTopic   = "Mixed Patterns"

	WeaknessCount   = 10
	WeaknessSubject = "Mixed"

	MinDrillCount = 5
	MaxDrillCount = 50

	DefaultDifficulty = "Medium"
)

// Subjects lists the SSC GD paper sections offered by the drill picker.
var Subjects = []string{
	"General Intelligence & Reasoning",
	"General Knowledge & Awareness",
	"Elementary Mathematics",
	"English/Hindi",
}

var (
	// ErrNoCredential means no provider API key is configured. Surfaced
	// before any generation attempt so the user can fix settings first.
	ErrNoCredential = errors.New("no API key configured")

	// ErrNoWeakTopics means weakness mode was requested before any
	// topic has been classified weak.
	ErrNoWeakTopics = errors.New("no weak topics identified yet")

	// ErrIncompleteDrill means drill mode is missing a subject or topic.
	ErrIncompleteDrill = errors.New("drill needs a subject and a topic")
)

// Config holds the final parameters one exam attempt is generated with.
type Config struct {
	Mode       Mode
	Subject    string
	Topic      string
	Difficulty string
	Count      int
}

// ResolveConfig fills in the parameters for a mode. Full and weakness
// modes override the caller-supplied subject, topic and count; drill
// mode validates them and clamps count to the allowed range.
func ResolveConfig(mode Mode, st stats.UserStats, subject, topic string, count int) (Config, error) {
	cfg := Config{
		Mode:       mode,
		Subject:    subject,
		Topic:      topic,
		Difficulty: DefaultDifficulty,
		Count:      count,
	}

	switch mode {
	case ModeFull:
		cfg.Subject = FullMockSubject
		cfg.Topic = FullMockTopic
		cfg.Count = FullMockCount

	case ModeWeakness:
		if len(st.WeakTopics) == 0 {
			return Config{}, ErrNoWeakTopics
		}
		cfg.Subject = WeaknessSubject
		cfg.Topic = st.WeakTopics[rand.IntN(len(st.WeakTopics))]
		cfg.Count = WeaknessCount

	case ModeDrill:
		if cfg.Subject == "" || cfg.Topic == "" {
			return Config{}, ErrIncompleteDrill
		}
		if cfg.Count < MinDrillCount {
			cfg.Count = MinDrillCount
		}
		if cfg.Count > MaxDrillCount {
			cfg.Count = MaxDrillCount
		}

	default:
		return Config{}, errors.New("unknown exam mode: " + string(mode))
	}

	return cfg, nil
}
