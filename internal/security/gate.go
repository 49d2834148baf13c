package security

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/mauledji/cariss/internal/domain"
	apperrors "github.com/mauledji/cariss/pkg/util"
)

// Stage names, in evaluation order.
const (
	StageRateCheck       = "rate_check"
	StagePublicBypass    = "public_bypass"
	StageTokenPresence   = "token_presence"
	StageTokenValidation = "token_validation"
	StageAuthorization   = "authorization"
)

const bearerScheme = "Bearer"

// TokenVerifier is the part of the token service the gate relies on.
type TokenVerifier interface {
	Validate(token string) bool
	ExtractSubject(token string) (string, error)
}

// Request carries the inputs the gate inspects.
type Request struct {
	Method        string
	Path          string
	ForwardedFor  string
	RemoteAddr    string
	Authorization string
}

// ClientKey resolves the rate limiting key for the request.
func (r Request) ClientKey() string {
	return ClientKey(r.ForwardedFor, r.RemoteAddr)
}

// Outcome is the gate's decision. Rejections carry a *util.DomainError in Err.
type Outcome struct {
	Allowed  bool
	Stage    string
	Identity *domain.Identity
	Err      error
}

// GateConfig lists the path patterns the gate classifies requests with.
type GateConfig struct {
	PublicPaths      []string
	RateLimitedPaths []string
	// Now defaults to time.Now.
	Now func() time.Time
}

type verdict int

const (
	proceed verdict = iota
	allow
	reject
)

type evaluation struct {
	req      Request
	path     string
	now      time.Time
	token    string
	hasToken bool
	identity *domain.Identity
	err      error
}

type stage struct {
	name string
	run  func(ctx context.Context, ev *evaluation) verdict
}

// Gate runs every request through a fixed sequence of stages. The first stage
// that allows or rejects ends the evaluation.
type Gate struct {
	limiter     RateLimiter
	tokens      TokenVerifier
	public      *PathMatcher
	rateLimited *PathMatcher
	now         func() time.Time
	stages      []stage
}

// NewGate wires the stages in their fixed order.
func NewGate(cfg GateConfig, limiter RateLimiter, tokens TokenVerifier) *Gate {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	g := &Gate{
		limiter:     limiter,
		tokens:      tokens,
		public:      NewPathMatcher(cfg.PublicPaths),
		rateLimited: NewPathMatcher(cfg.RateLimitedPaths),
		now:         now,
	}
	g.stages = []stage{
		{name: StageRateCheck, run: g.rateCheck},
		{name: StagePublicBypass, run: g.publicBypass},
		{name: StageTokenPresence, run: g.tokenPresence},
		{name: StageTokenValidation, run: g.tokenValidation},
		{name: StageAuthorization, run: g.authorize},
	}
	return g
}

// Evaluate decides whether req may reach its handler.
func (g *Gate) Evaluate(ctx context.Context, req Request) Outcome {
	ev := &evaluation{req: req, path: cleanPath(req.Path), now: g.now()}
	for _, st := range g.stages {
		switch st.run(ctx, ev) {
		case allow:
			return Outcome{Allowed: true, Stage: st.name, Identity: ev.identity}
		case reject:
			return Outcome{Stage: st.name, Err: ev.err}
		}
	}
	return Outcome{Stage: StageAuthorization, Err: apperrors.NewInternalError(errors.New("gate reached no decision"))}
}

func (g *Gate) rateCheck(ctx context.Context, ev *evaluation) verdict {
	if !g.rateLimited.Match(ev.path) {
		return proceed
	}
	admitted, err := g.limiter.Admit(ctx, ev.req.ClientKey(), ev.now)
	if err != nil {
		ev.err = apperrors.NewInternalError(err)
		return reject
	}
	if !admitted {
		ev.err = apperrors.NewRateLimited()
		return reject
	}
	return proceed
}

func (g *Gate) publicBypass(_ context.Context, ev *evaluation) verdict {
	if ev.req.Method == http.MethodOptions || g.public.Match(ev.path) {
		return allow
	}
	return proceed
}

// tokenPresence accepts the Bearer scheme in any letter case. Anything else,
// including a scheme with no separating space, leaves the request tokenless.
func (g *Gate) tokenPresence(_ context.Context, ev *evaluation) verdict {
	scheme, token, found := strings.Cut(ev.req.Authorization, " ")
	if found && strings.EqualFold(scheme, bearerScheme) {
		ev.token = strings.TrimSpace(token)
		ev.hasToken = true
	}
	return proceed
}

func (g *Gate) tokenValidation(_ context.Context, ev *evaluation) verdict {
	if !ev.hasToken {
		return proceed
	}
	if !g.tokens.Validate(ev.token) {
		ev.err = apperrors.NewInvalidToken()
		return reject
	}
	subject, err := g.tokens.ExtractSubject(ev.token)
	if err != nil {
		ev.err = apperrors.NewInvalidToken()
		return reject
	}
	ev.identity = &domain.Identity{Subject: subject}
	return proceed
}

func (g *Gate) authorize(_ context.Context, ev *evaluation) verdict {
	if ev.identity == nil {
		ev.err = apperrors.NewUnauthorized("authentication required")
		return reject
	}
	return allow
}
