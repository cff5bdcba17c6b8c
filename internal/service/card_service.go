package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"community_cards/internal/card"
	"community_cards/internal/domain"
	"community_cards/internal/logger"
	"community_cards/internal/lookup"
	"community_cards/internal/session"
)

// CheckResult is the outcome of an eligibility check.
type CheckResult struct {
	Profile   *domain.UserProfile `json:"profile"`
	Eligible  bool                `json:"eligible"`
	Shortfall int                 `json:"shortfall"`
	Threshold int                 `json:"threshold"`
	Preview   *domain.CardData    `json:"preview,omitempty"`
	Message   string              `json:"message"`
}

// FormResult is the outcome of a manual form recompute.
type FormResult struct {
	Draft     *domain.CardDraft `json:"draft,omitempty"`
	Eligible  bool              `json:"eligible"`
	Shortfall int               `json:"shortfall"`
	Threshold int               `json:"threshold"`
	Message   string            `json:"message"`
}

// FormError carries every field error of an invalid form.
type FormError struct {
	Fields []card.FieldError
}

func (e *FormError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid form"
	}
	return "invalid form: " + e.Fields[0].Error()
}

// FieldMap maps each invalid field to its message.
func (e *FormError) FieldMap() map[string]string {
	m := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		if _, ok := m[f.Field]; !ok {
			m[f.Field] = f.Err.Error()
		}
	}
	return m
}

// Unwrap exposes the field errors to errors.Is.
func (e *FormError) Unwrap() []error {
	errs := make([]error, len(e.Fields))
	for i, f := range e.Fields {
		errs[i] = f.Err
	}
	return errs
}

// CardServiceConfig holds dependencies of CardService that have defaults.
type CardServiceConfig struct {
	// LookupTimeout bounds a single lookup; zero means no extra bound.
	LookupTimeout time.Duration
	// IDSource draws card numbers; nil uses crypto/rand.
	IDSource card.IDSource
}

// CardService runs the check → classify → preview → claim workflow on
// top of a session store. The lookup client is injected.
type CardService struct {
	sessions session.Store
	lookup   lookup.Client
	audit    *AuditService
	cfg      CardServiceConfig
	log      *slog.Logger
}

// NewCardService creates the card workflow. audit may be nil.
func NewCardService(sessions session.Store, client lookup.Client, audit *AuditService, cfg CardServiceConfig) *CardService {
	return &CardService{
		sessions: sessions,
		lookup:   client,
		audit:    audit,
		cfg:      cfg,
		log:      logger.With("component", "card_service"),
	}
}

// NewSession starts an empty visitor session.
func (s *CardService) NewSession(ctx context.Context) (*domain.Session, error) {
	return s.sessions.Create(ctx)
}

// Session returns the current state of a session.
func (s *CardService) Session(ctx context.Context, sessionID string) (*domain.Session, error) {
	return s.sessions.Get(ctx, sessionID)
}

// Check looks up handle and decides eligibility. The session's preview
// and draft are cleared when the check starts; an eligible result mints a
// new preview card. If another check on the same session starts before this one
// finishes, this result is discarded and ErrStaleCheck is returned.
func (s *CardService) Check(ctx context.Context, sessionID, handle string) (*CheckResult, error) {
	if err := card.ValidateHandle(handle); err != nil {
		return nil, err
	}

	started, err := s.sessions.Update(ctx, sessionID, func(sess *domain.Session) error {
		sess.CheckSeq++
		sess.Profile = nil
		sess.Preview = nil
		sess.Draft = nil
		return nil
	})
	if err != nil {
		return nil, err
	}
	seq := started.CheckSeq

	lookupCtx := ctx
	if s.cfg.LookupTimeout > 0 {
		var cancel context.CancelFunc
		lookupCtx, cancel = context.WithTimeout(ctx, s.cfg.LookupTimeout)
		defer cancel()
	}

	profile, err := s.lookup.Lookup(lookupCtx, card.StripMarker(handle))
	if err != nil {
		s.log.Warn("lookup failed", "session_id", sessionID, "handle", handle, "error", err)
		s.audit.LogCheckFailed(ctx, sessionID, handle, err)
		if !errors.Is(err, domain.ErrLookupFailed) && !errors.Is(err, domain.ErrProfileNotFound) {
			err = fmt.Errorf("%w: %v", domain.ErrLookupFailed, err)
		}
		return nil, err
	}

	result := &CheckResult{Profile: profile, Threshold: card.EligibilityThreshold}
	draft, decision, ok := card.FromProfile(*profile)
	result.Eligible = decision.Eligible
	result.Shortfall = decision.Shortfall
	if ok {
		minted := card.Mint(draft, s.cfg.IDSource)
		result.Preview = &minted
		result.Message = fmt.Sprintf("You qualify for a %s Community Card!", minted.Rarity)
	} else {
		result.Message = card.IneligibleMessage(profile.FollowersCount)
	}

	_, err = s.sessions.Update(ctx, sessionID, func(sess *domain.Session) error {
		if sess.CheckSeq != seq {
			return domain.ErrStaleCheck
		}
		sess.Profile = profile
		sess.Preview = result.Preview
		sess.Draft = nil
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrStaleCheck) {
			s.log.Info("discarding stale check", "session_id", sessionID, "handle", handle, "seq", seq)
		}
		return nil, err
	}

	EligibilityDecisions.WithLabelValues(eligibleLabel(result.Eligible)).Inc()
	s.audit.LogCheck(ctx, sessionID, profile, result.Eligible, result.Preview)
	s.log.Info("eligibility checked",
		"session_id", sessionID,
		"handle", profile.Username,
		"followers", profile.FollowersCount,
		"eligible", result.Eligible,
	)
	return result, nil
}

// PreviewForm recomputes the manual-form preview. The result replaces
// whatever candidate the session held, so an invalid or ineligible form
// leaves nothing to claim.
func (s *CardService) PreviewForm(ctx context.Context, sessionID string, f card.Form) (*FormResult, error) {
	res, evalErr := EvaluateForm(f)
	_, err := s.sessions.Update(ctx, sessionID, func(sess *domain.Session) error {
		sess.Preview = nil
		sess.Draft = nil
		if evalErr == nil {
			sess.Draft = res.Draft
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if evalErr != nil {
		return nil, evalErr
	}
	return res, nil
}

// EvaluateForm validates and classifies a manual form without touching
// any session.
func EvaluateForm(f card.Form) (*FormResult, error) {
	if errs := card.ValidateForm(f); len(errs) > 0 {
		return nil, &FormError{Fields: errs}
	}
	draft, decision, ok := card.FromForm(f)
	res := &FormResult{
		Eligible:  decision.Eligible,
		Shortfall: decision.Shortfall,
		Threshold: card.EligibilityThreshold,
	}
	if ok {
		res.Draft = &draft
		res.Message = fmt.Sprintf("You qualify for a %s Community Card!", draft.Rarity)
	} else {
		res.Message = card.IneligibleMessage(f.Followers)
	}
	return res, nil
}

// Claim copies the session's eligible preview into its claimed slot,
// replacing any earlier claim. A manual-form draft is minted first.
func (s *CardService) Claim(ctx context.Context, sessionID string) (*domain.CardData, error) {
	var claimed domain.CardData
	_, err := s.sessions.Update(ctx, sessionID, func(sess *domain.Session) error {
		switch {
		case sess.Preview != nil:
			claimed = *sess.Preview
		case sess.Draft != nil:
			claimed = card.Mint(*sess.Draft, s.cfg.IDSource)
		default:
			return domain.ErrNothingToClaim
		}
		// a card below the threshold never reaches the claimed slot
		if !card.DecideEligibility(claimed.Followers).Eligible {
			return domain.ErrNothingToClaim
		}
		c := claimed
		sess.Claimed = &c
		return nil
	})
	if err != nil {
		return nil, err
	}

	CardsClaimed.WithLabelValues(string(claimed.Rarity)).Inc()
	s.audit.LogClaim(ctx, sessionID, &claimed)
	s.log.Info("card claimed",
		"session_id", sessionID,
		"username", claimed.Username,
		"rarity", claimed.Rarity,
		"card", claimed.Number(),
	)
	return &claimed, nil
}

// Claimed returns the session's claimed card, or nil if there is none.
func (s *CardService) Claimed(ctx context.Context, sessionID string) (*domain.CardData, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Claimed, nil
}

// ClaimedMessage is the confirmation shown after a claim.
func ClaimedMessage(c *domain.CardData) string {
	return fmt.Sprintf("Your %s Community Card has been generated!", c.Rarity)
}

func eligibleLabel(ok bool) string {
	if ok {
		return "eligible"
	}
	return "ineligible"
}
