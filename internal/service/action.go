package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/evansarr33/sav-simulateur/internal/domain"
	"github.com/evansarr33/sav-simulateur/internal/policy"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// SubmitActionInput is one remediation attempt from an agent.
type SubmitActionInput struct {
	SessionID     uuid.UUID
	Kind          domain.ActionKind
	AmountCents   *int64
	Justification string
}

// ActionService validates remediation actions against the session lifecycle
// and the scenario's policy, and records every attempt.
type ActionService struct {
	sessionRepo  domain.SessionRepository
	scenarioRepo domain.ScenarioRepository
	actionRepo   domain.ActionRepository
	evaluator    *policy.Evaluator
}

// NewActionService creates a new action service
func NewActionService(
	sessionRepo domain.SessionRepository,
	scenarioRepo domain.ScenarioRepository,
	actionRepo domain.ActionRepository,
	evaluator *policy.Evaluator,
) *ActionService {
	return &ActionService{
		sessionRepo:  sessionRepo,
		scenarioRepo: scenarioRepo,
		actionRepo:   actionRepo,
		evaluator:    evaluator,
	}
}

// Submit runs the validation chain in order: known kind, session gate,
// kind-specific rules. Exactly one action row is appended once the gate
// passes, approved or not; nothing is written before that.
func (s *ActionService) Submit(ctx context.Context, callerID uuid.UUID, in SubmitActionInput) (*domain.ActionResult, error) {
	if !domain.KnownActionKind(in.Kind) {
		return nil, domain.InvalidInput(fmt.Sprintf("unknown action kind: %q", in.Kind))
	}

	session, err := loadForMutation(ctx, s.sessionRepo, in.SessionID, callerID)
	if err != nil {
		return nil, err
	}

	var result *domain.ActionResult
	metadata := map[string]any{}
	if in.Justification != "" {
		metadata["justification"] = in.Justification
	}

	switch in.Kind {
	case domain.ActionDiscount:
		result, err = s.evaluateDiscount(ctx, session, in, metadata)
		if err != nil {
			return nil, err
		}
	case domain.ActionRMA:
		ref := newRMARef()
		metadata["ref"] = ref
		result = &domain.ActionResult{
			Approved: true,
			Notice:   fmt.Sprintf("RMA créé: %s", ref),
			Ref:      ref,
		}
	default:
		// Remaining kinds have no rules yet; recorded and acknowledged.
		result = &domain.ActionResult{
			Approved: true,
			Notice:   "Action enregistrée",
		}
	}

	action := &domain.Action{
		ID:          uuid.New(),
		SessionID:   session.ID,
		Kind:        in.Kind,
		AmountCents: in.AmountCents,
		Approved:    result.Approved,
		Metadata:    metadata,
		CreatedAt:   time.Now(),
	}
	if err := s.actionRepo.Create(ctx, action); err != nil {
		return nil, domain.UpstreamError("failed to record action", err)
	}

	log.Info().
		Str("session_id", session.ID.String()).
		Str("kind", string(in.Kind)).
		Bool("approved", result.Approved).
		Msg("action recorded")

	return result, nil
}

// evaluateDiscount resolves the scenario's policy, computes the ceiling and
// compares the requested amount against it. The notice always states the
// ceiling and the percentage used so an operator can audit the decision.
func (s *ActionService) evaluateDiscount(ctx context.Context, session *domain.Session, in SubmitActionInput, metadata map[string]any) (*domain.ActionResult, error) {
	if in.AmountCents == nil || *in.AmountCents < 0 {
		return nil, domain.InvalidInput("amount_cents is required for a discount and must be non-negative")
	}

	pol, err := s.scenarioRepo.GetPolicy(ctx, session.ScenarioID)
	if err != nil {
		return nil, domain.UpstreamError("failed to resolve policy", err)
	}

	basket := s.evaluator.BasketCents()
	ceiling, pct := s.evaluator.DiscountCeiling(pol, basket)
	approved := *in.AmountCents <= ceiling

	metadata["ceiling_cents"] = ceiling
	metadata["percent"] = pct
	metadata["basket_cents"] = basket

	notice := fmt.Sprintf("Réduction validée: %d cts (plafond %.0f%% = %d cts)", *in.AmountCents, pct, ceiling)
	if !approved {
		notice = fmt.Sprintf("Refusé: plafond %.0f%% = %d cts", pct, ceiling)
	}

	return &domain.ActionResult{Approved: approved, Notice: notice}, nil
}

// newRMARef draws a best-effort unique reference with a fixed-width numeric
// suffix. No collision check; acceptable for training use.
func newRMARef() string {
	return fmt.Sprintf("RMA-%d", 100000+rand.Intn(900000))
}
