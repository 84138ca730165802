package app

import (
	"context"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"fiture/domain/life"
	"fiture/internal"
	"fiture/ports"
)

// profileSeedSpace bounds the per-profile seeds derived from the top seed
const profileSeedSpace = 1_000_000_000

// SynthesisService generates the full multi-profile life dataset. Profiles
// are independent: each gets its own pre-derived seed and fresh latent
// state, so they can run in parallel without affecting determinism.
type SynthesisService struct {
	logger    *internal.Logger
	envSource ports.EnvironmentSource
	doc       *life.ProfileDoc
	workers   int
}

// NewSynthesisService creates a synthesis service
func NewSynthesisService(envSource ports.EnvironmentSource, doc *life.ProfileDoc, workers int, logger *internal.Logger) *SynthesisService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if workers < 1 {
		workers = 1
	}
	return &SynthesisService{logger: logger, envSource: envSource, doc: doc, workers: workers}
}

// Run reads the environment series once, generates every configured
// profile, and concatenates the results in profile order.
func (s *SynthesisService) Run(ctx context.Context) ([]life.DailyRecord, error) {
	env, err := s.envSource.Read(ctx)
	if err != nil {
		return nil, err
	}

	// Seeds must be drawn from the top-level stream before any parallel
	// work starts, so worker scheduling cannot change the outcome.
	topRng := rand.New(rand.NewSource(s.doc.Seed))
	seeds := make([]int64, len(s.doc.Profiles))
	for i := range s.doc.Profiles {
		seeds[i] = topRng.Int63n(profileSeedSpace)
	}

	results := make([][]life.DailyRecord, len(s.doc.Profiles))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, spec := range s.doc.Profiles {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			params, err := s.doc.ResolveParams(spec)
			if err != nil {
				return err
			}
			synth, err := life.NewSynthesizer(params, spec.Name)
			if err != nil {
				return err
			}
			records, err := synth.Generate(spec.Rows, seeds[i], env)
			if err != nil {
				return err
			}
			s.logger.Info("profile %s: generated %d days (seed %d)", spec.Name, len(records), seeds[i])
			results[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []life.DailyRecord
	for _, records := range results {
		all = append(all, records...)
	}
	return all, nil
}
