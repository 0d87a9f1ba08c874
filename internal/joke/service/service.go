package service

import (
	"context"
	"errors"
	"math/rand"

	commoncrypto "github.com/jokehub/jokehub/internal/common/crypto"
	commonerrors "github.com/jokehub/jokehub/internal/common/errors"
	"github.com/jokehub/jokehub/internal/common/logger"
	"github.com/jokehub/jokehub/internal/joke/domain"
	jokerepo "github.com/jokehub/jokehub/internal/joke/repository"
	"github.com/jokehub/jokehub/internal/observability/metrics"
)

var (
	ErrJokeNotFound = commonerrors.ErrJokeNotFound
	ErrNoJokes      = commonerrors.ErrNoJokes
)

type JokeService struct {
	repo        jokerepo.Repository
	idGenerator commoncrypto.IDGenerator
	intn        func(n int) int
	log         *logger.Logger
}

func NewJokeService(repo jokerepo.Repository, idGenerator commoncrypto.IDGenerator, log *logger.Logger) *JokeService {
	return &JokeService{
		repo:        repo,
		idGenerator: idGenerator,
		intn:        rand.Intn,
		log:         log,
	}
}

type CreateInput struct {
	Name       string
	Content    string
	JokesterID string
}

func (s *JokeService) Create(ctx context.Context, input CreateInput) (domain.Joke, error) {
	id, err := s.idGenerator.NewID()
	if err != nil {
		return domain.Joke{}, err
	}

	joke := domain.Joke{
		ID:         domain.ID(id),
		Name:       input.Name,
		Content:    input.Content,
		JokesterID: input.JokesterID,
	}

	if err := s.repo.Create(ctx, joke); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"jokester_id": input.JokesterID,
			"action":      "joke_create_failed",
		}).Errorf("joke create failed: %v", err)
		return domain.Joke{}, err
	}

	metrics.JokesCreated.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"joke_id":     id,
		"jokester_id": input.JokesterID,
		"action":      "joke_created",
	}).Info("joke created")

	return joke, nil
}

func (s *JokeService) FindByID(ctx context.Context, id domain.ID) (domain.Joke, error) {
	joke, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, jokerepo.ErrJokeNotFound) {
			return domain.Joke{}, ErrJokeNotFound
		}
		return domain.Joke{}, err
	}

	metrics.JokesServed.WithLabelValues("by_id").Inc()
	return joke, nil
}

func (s *JokeService) ListRecent(ctx context.Context, limit int) ([]domain.Summary, error) {
	return s.repo.ListRecent(ctx, limit)
}

// Random picks by count-then-offset. The two reads are not transactional;
// a concurrent insert can shift the offset by one, which only changes
// which joke wins.
func (s *JokeService) Random(ctx context.Context) (domain.Joke, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return domain.Joke{}, err
	}

	if count == 0 {
		return domain.Joke{}, ErrNoJokes
	}

	joke, err := s.repo.FindByOffset(ctx, s.intn(count))
	if err != nil {
		if errors.Is(err, jokerepo.ErrJokeNotFound) {
			return domain.Joke{}, ErrNoJokes
		}
		return domain.Joke{}, err
	}

	metrics.JokesServed.WithLabelValues("random").Inc()
	return joke, nil
}
