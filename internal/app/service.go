// Package app wires the query and card pipelines behind one service that
// the command surface calls. Every operation degrades to an informative
// reply or a discriminable error; nothing here is fatal to the host.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tabriszx/algoassist/internal/adapters/clist"
	"github.com/tabriszx/algoassist/internal/domain/card"
	"github.com/tabriszx/algoassist/internal/domain/format"
	"github.com/tabriszx/algoassist/internal/domain/model"
	"github.com/tabriszx/algoassist/pkg/logger"
)

// AggregatorHomeURL is the aggregation service homepage, replied verbatim.
const AggregatorHomeURL = "https://clist.by/"

// ContestSource queries the contest aggregation API.
type ContestSource interface {
	Contests(ctx context.Context, days int, resourceID *int) ([]model.Contest, error)
	Problems(ctx context.Context, contestID int64) ([]model.Problem, error)
}

// JudgeSource resolves users and fetches profiles from the judge site.
type JudgeSource interface {
	ResolveUser(ctx context.Context, nameOrID string) (int64, error)
	Profile(ctx context.Context, uid int64) (*model.Profile, error)
}

// CardRenderer rasterizes a card context to an image path.
type CardRenderer interface {
	Render(ctx context.Context, c card.Context) (string, error)
}

// BindingStore persists chat-user to judge-uid associations.
type BindingStore interface {
	Lookup(chatUser string) (int64, error)
	Bind(chatUser string, uid int64) error
}

// Service implements the assistant's command operations.
type Service struct {
	contests ContestSource
	judge    JudgeSource
	renderer CardRenderer
	bindings BindingStore
	fmt      *format.Formatter

	days int
	now  func() time.Time

	log logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithContestSource sets the aggregation API client.
func WithContestSource(src ContestSource) Option {
	return func(s *Service) {
		if src != nil {
			s.contests = src
		}
	}
}

// WithJudgeSource sets the judge site client.
func WithJudgeSource(src JudgeSource) Option {
	return func(s *Service) {
		if src != nil {
			s.judge = src
		}
	}
}

// WithRenderer sets the card renderer.
func WithRenderer(r CardRenderer) Option {
	return func(s *Service) {
		if r != nil {
			s.renderer = r
		}
	}
}

// WithBindings sets the binding store.
func WithBindings(b BindingStore) Option {
	return func(s *Service) {
		if b != nil {
			s.bindings = b
		}
	}
}

// WithFormatter sets the reply formatter.
func WithFormatter(f *format.Formatter) Option {
	return func(s *Service) {
		if f != nil {
			s.fmt = f
		}
	}
}

// WithDays sets the default contest query window.
func WithDays(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.days = days
		}
	}
}

// WithClock replaces the time source. Tests pin it.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		fmt:  format.New(),
		days: 7,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TodayContests replies with contests starting today.
func (s *Service) TodayContests(ctx context.Context) string {
	contests, err := s.contests.Contests(ctx, 1, nil)
	if err != nil {
		return s.fmt.ContestFailure(sentinel(err))
	}
	return s.fmt.TodayContests(contests)
}

// RecentContests replies with contests inside the default window.
func (s *Service) RecentContests(ctx context.Context) string {
	contests, err := s.contests.Contests(ctx, s.days, nil)
	if err != nil {
		return s.fmt.ContestFailure(sentinel(err))
	}
	return s.fmt.RecentContests(contests)
}

// Contests replies with contests filtered by platform and window. A
// non-positive days falls back to the configured default.
func (s *Service) Contests(ctx context.Context, resourceID *int, days int) string {
	if days <= 0 {
		days = s.days
	}
	contests, err := s.contests.Contests(ctx, days, resourceID)
	if err != nil {
		return s.fmt.ContestFailure(sentinel(err))
	}
	return s.fmt.RecentContests(contests)
}

// Problems replies with one contest's problem list.
func (s *Service) Problems(ctx context.Context, contestID int64) string {
	problems, err := s.contests.Problems(ctx, contestID)
	if err != nil {
		return s.fmt.ProblemFailure(sentinel(err))
	}
	return s.fmt.Problems(problems)
}

// Bind resolves nameOrID and persists the association for chatUser.
func (s *Service) Bind(ctx context.Context, chatUser, nameOrID string) error {
	uid, err := s.judge.ResolveUser(ctx, nameOrID)
	if err != nil {
		return err
	}
	if err := s.bindings.Bind(chatUser, uid); err != nil {
		return err
	}
	if s.log != nil {
		s.log.Info(ctx, "user bound", logger.String("chat_user", chatUser), logger.Int64("uid", uid))
	}
	return nil
}

// Card resolves nameOrID, fetches the profile and renders the card,
// returning the image path. The render is idempotent per display name.
func (s *Service) Card(ctx context.Context, nameOrID string) (string, error) {
	uid, err := s.judge.ResolveUser(ctx, nameOrID)
	if err != nil {
		return "", err
	}
	return s.renderCard(ctx, uid)
}

// MyCard renders the card of the judge user bound to chatUser.
func (s *Service) MyCard(ctx context.Context, chatUser string) (string, error) {
	uid, err := s.bindings.Lookup(chatUser)
	if err != nil {
		return "", err
	}
	return s.renderCard(ctx, uid)
}

func (s *Service) renderCard(ctx context.Context, uid int64) (string, error) {
	profile, err := s.judge.Profile(ctx, uid)
	if err != nil {
		return "", err
	}
	if profile.Data.User.Name == "" {
		return "", fmt.Errorf("profile for uid %d carries no display name", uid)
	}
	return s.renderer.Render(ctx, card.BuildContext(profile, s.now()))
}

// sentinel extracts the legacy integer failure signal from a fetch error.
func sentinel(err error) int {
	var ferr *clist.FetchError
	if errors.As(err, &ferr) {
		return ferr.Sentinel()
	}
	return 0
}
