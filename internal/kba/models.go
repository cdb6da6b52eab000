// Package kba holds the shared types of the knowledge-based-authentication
// quiz engine: the question catalog entries, the ephemeral quiz session, and
// the verification result returned to the consent orchestrator.
package kba

import (
	"time"

	id "guardian/pkg/domain"
)

// Category groups questions by the kind of adult knowledge they probe. A
// session prefers one question per distinct category so a child cannot pass by
// knowing a single subject well.
type Category string

const (
	CategoryFinancial  Category = "financial"
	CategoryIdentity   Category = "identity"
	CategoryHistorical Category = "historical"
	CategoryGeographic Category = "geographic"
	CategoryLegal      Category = "legal"
)

// Categories lists every category in catalog order.
func Categories() []Category {
	return []Category{
		CategoryFinancial,
		CategoryIdentity,
		CategoryHistorical,
		CategoryGeographic,
		CategoryLegal,
	}
}

// Difficulty rates a question. Currently informational; selection does not
// weight by difficulty.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Language selects the localized rendering of a question.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageKorean  Language = "ko"
)

// ParseLanguage maps external input to a supported language, defaulting to
// English for anything unrecognized.
func ParseLanguage(s string) Language {
	if Language(s) == LanguageKorean {
		return LanguageKorean
	}
	return LanguageEnglish
}

// Question is one catalog entry. Immutable after load; the bank hands out
// copies of the slice header, never mutates entries.
type Question struct {
	ID           string
	Category     Category
	Prompt       string
	PromptKo     string
	Options      []string
	OptionsKo    []string
	CorrectIndex int
	Difficulty   Difficulty
}

// Localize renders the question for callers. The correct answer index never
// leaves this package boundary.
func (q Question) Localize(lang Language) PublicQuestion {
	pub := PublicQuestion{ID: q.ID, Prompt: q.Prompt, Options: q.Options}
	if lang == LanguageKorean && q.PromptKo != "" {
		pub.Prompt = q.PromptKo
		if len(q.OptionsKo) == len(q.Options) {
			pub.Options = q.OptionsKo
		}
	}
	return pub
}

// PublicQuestion is the caller-visible projection of a Question.
type PublicQuestion struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"question"`
	Options []string `json:"options"`
}

// Session is a single-use quiz instance. It lives only in the session store
// (memory or Redis) because it carries answer-bearing content; it is never
// written to durable storage.
type Session struct {
	Token     id.SessionToken `json:"token"`
	Questions []Question      `json:"questions"`
	CreatedAt time.Time       `json:"created_at"`
	ExpiresAt time.Time       `json:"expires_at"`
	Attempts  int             `json:"attempts"`
}

// Expired reports whether the session is past its TTL at the given instant.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// VerificationResult reports one scoring outcome. Score and PassThreshold are
// integer percentages (0-100) so the HTTP layer can render them directly.
type VerificationResult struct {
	Passed         bool            `json:"passed"`
	Score          int             `json:"score"`
	TotalQuestions int             `json:"totalQuestions"`
	CorrectAnswers int             `json:"correctAnswers"`
	PassThreshold  int             `json:"passThreshold"`
	Token          id.SessionToken `json:"sessionId"`
	CompletedAt    time.Time       `json:"completedAt"`
}

// SessionStatus is the read-only view returned by status probes.
type SessionStatus struct {
	Valid       bool       `json:"valid"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
	Attempts    *int       `json:"attempts,omitempty"`
	MaxAttempts int        `json:"maxAttempts"`
}
