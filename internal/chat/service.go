// Package chat orchestrates a chat turn: prompt resolution, the model
// call, footprint extraction, and persistence.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ficachi/omeyo-goal-app/internal/events"
	"github.com/ficachi/omeyo-goal-app/internal/footprint"
	"github.com/ficachi/omeyo-goal-app/internal/persona"
	"github.com/ficachi/omeyo-goal-app/internal/store"
)

// Completer is the completion-service collaborator.
type Completer interface {
	Generate(ctx context.Context, system, message string) (string, error)
}

// Store is the slice of persistence the chat pipeline needs.
type Store interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*store.User, error)
	CreateFootprint(ctx context.Context, userID uuid.UUID, pathID *uuid.UUID, item footprint.ActionItem) (uuid.UUID, error)
	AppendConversationTurn(ctx context.Context, userID uuid.UUID, role, content string) (uuid.UUID, error)
}

// Publisher fans chat outcomes out to interested consumers. May be nil.
type Publisher interface {
	Publish(subject string, data any) error
}

type Service struct {
	llm       Completer
	store     Store
	publisher Publisher
	extractor *footprint.Extractor
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(llm Completer, st Store, pub Publisher, logger *slog.Logger) *Service {
	return &Service{
		llm:       llm,
		store:     st,
		publisher: pub,
		extractor: footprint.NewExtractor(logger),
		logger:    logger,
		now:       time.Now,
	}
}

// SetClock overrides the clock used for due-date resolution in tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// CreatedFootprint describes one footprint persisted during a chat turn.
type CreatedFootprint struct {
	ID       uuid.UUID `json:"id"`
	Action   string    `json:"action"`
	DueTime  string    `json:"due_time"`
	DueDate  string    `json:"due_date"`
	Priority int       `json:"priority"`
}

// Result is the outcome of a chat turn. Footprints lists only the items
// that were both extracted and persisted.
type Result struct {
	Reply       string             `json:"response"`
	Personality string             `json:"personality"`
	Footprints  []CreatedFootprint `json:"footprints"`
}

// Chat runs one turn of the pipeline. A completion failure is returned to
// the caller; extraction and persistence failures only reduce the
// footprint count; the reply is always delivered once the model answered.
func (s *Service) Chat(ctx context.Context, userID uuid.UUID, message string) (*Result, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	profile := persona.ParseTraitProfile(user.OceanScores)
	pp := personaFromUser(user)
	system := persona.BuildSystemPrompt(profile, pp)

	reply, err := s.llm.Generate(ctx, system, message)
	if err != nil {
		return nil, fmt.Errorf("completion: %w", err)
	}

	if _, err := s.store.AppendConversationTurn(ctx, userID, "user", message); err != nil {
		s.logger.Warn("failed to record user turn", "user", userID, "error", err)
	}
	if _, err := s.store.AppendConversationTurn(ctx, userID, "model", reply); err != nil {
		s.logger.Warn("failed to record model turn", "user", userID, "error", err)
	}

	created := s.persistFootprints(ctx, userID, s.extractor.Extract(reply, s.now()))

	s.publish(events.SubjectChatCompleted, map[string]any{
		"user_id":    userID.String(),
		"footprints": len(created),
	})

	label := user.Personality
	if label == "" {
		label = persona.ResolveBaseTrait(profile).String()
	}
	if !pp.IsEmpty() && pp.Title != "" {
		label = pp.Title
	}

	return &Result{Reply: reply, Personality: label, Footprints: created}, nil
}

// Confirm records a single user-confirmed action item with priority 1.
func (s *Service) Confirm(ctx context.Context, userID uuid.UUID, action, dueTime string) (*CreatedFootprint, error) {
	if dueTime == "" {
		dueTime = "Today"
	}
	item := footprint.ActionItem{
		Action:   action,
		DueTime:  dueTime,
		DueDate:  footprint.ResolveDueDate(dueTime, s.now()),
		Priority: 1,
	}

	id, err := s.store.CreateFootprint(ctx, userID, nil, item)
	if err != nil {
		return nil, fmt.Errorf("persist footprint: %w", err)
	}

	created := CreatedFootprint{
		ID:       id,
		Action:   item.Action,
		DueTime:  item.DueTime,
		DueDate:  item.DueDate.Format("2006-01-02"),
		Priority: item.Priority,
	}
	s.publishFootprint(userID, created)
	return &created, nil
}

func (s *Service) persistFootprints(ctx context.Context, userID uuid.UUID, items []footprint.ActionItem) []CreatedFootprint {
	created := make([]CreatedFootprint, 0, len(items))
	for _, item := range items {
		id, err := s.store.CreateFootprint(ctx, userID, nil, item)
		if err != nil {
			s.logger.Warn("failed to persist footprint", "user", userID, "action", item.Action, "error", err)
			continue
		}
		cf := CreatedFootprint{
			ID:       id,
			Action:   item.Action,
			DueTime:  item.DueTime,
			DueDate:  item.DueDate.Format("2006-01-02"),
			Priority: item.Priority,
		}
		created = append(created, cf)
		s.publishFootprint(userID, cf)
	}
	return created
}

func (s *Service) publishFootprint(userID uuid.UUID, cf CreatedFootprint) {
	s.publish(events.SubjectFootprintCreated, events.FootprintCreated{
		FootprintID: cf.ID.String(),
		UserID:      userID.String(),
		Action:      cf.Action,
		DueDate:     cf.DueDate,
		Priority:    cf.Priority,
	})
}

func (s *Service) publish(subject string, data any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(subject, data); err != nil {
		s.logger.Warn("failed to publish event", "subject", subject, "error", err)
	}
}

func personaFromUser(u *store.User) *persona.PersonaProfile {
	if u.TotemTitle == "" && u.TotemAnimal == "" && u.TotemEmoji == "" {
		return nil
	}
	return &persona.PersonaProfile{
		Title: u.TotemTitle,
		Label: u.TotemAnimal,
		Icon:  u.TotemEmoji,
	}
}
