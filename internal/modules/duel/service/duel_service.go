package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"mdrank/internal/modules/duel/domain"
	duelout "mdrank/internal/modules/duel/port/out"
	"mdrank/internal/platform/clock"
	apperrors "mdrank/internal/platform/errors"
	"mdrank/internal/platform/logger"
)

// DuelService orchestrates comparison sessions: loading, pair
// selection, outcome application, persistence, and the fan-out to the
// standings, rivalry, and journal read models. Persistence failures
// after an applied outcome are logged and swallowed so the user is
// never blocked mid-session.
type DuelService struct {
	clock     clock.Clock
	rng       *rand.Rand
	logger    *logger.Logger
	provider  duelout.ContenderProvider
	stores    duelout.StoreGateway
	standings duelout.StandingsProjector
	rivalries duelout.RivalryRecorder
	journal   duelout.Journal
	publisher duelout.NotePublisher

	mu       sync.Mutex
	sessions map[string]*domain.Session
}

func NewDuelService(
	clk clock.Clock,
	rng *rand.Rand,
	log *logger.Logger,
	provider duelout.ContenderProvider,
	stores duelout.StoreGateway,
	standings duelout.StandingsProjector,
	rivalries duelout.RivalryRecorder,
	journal duelout.Journal,
	publisher duelout.NotePublisher,
) *DuelService {
	return &DuelService{
		clock:     clk,
		rng:       rng,
		logger:    log,
		provider:  provider,
		stores:    stores,
		standings: standings,
		rivalries: rivalries,
		journal:   journal,
		publisher: publisher,
		sessions:  map[string]*domain.Session{},
	}
}

// StartSession begins a fresh session for the pool: the item list and
// the store load concurrently, the session merges them once both have
// arrived, and an initial pair is selected. A store that cannot be
// read degrades to the empty default inside the gateway; a failed
// item load aborts the start and leaves the session loading.
func (s *DuelService) StartSession(ctx context.Context, poolID string) (domain.Session, error) {
	session := s.obtain(poolID)
	s.mu.Lock()
	session.Begin()
	s.mu.Unlock()

	type itemsResult struct {
		items []domain.Contender
		err   error
	}
	itemsCh := make(chan itemsResult, 1)
	storeCh := make(chan domain.Store, 1)

	go func() {
		items, err := s.provider.Contenders(ctx, poolID)
		itemsCh <- itemsResult{items: items, err: err}
	}()
	go func() {
		store, err := s.stores.Load(ctx, poolID)
		if err != nil {
			s.logger.Warn("store load failed, starting fresh", "pool", poolID, "error", err)
			store = domain.NewStore()
		}
		storeCh <- store
	}()

	var itemsErr error
	for i := 0; i < 2; i++ {
		select {
		case res := <-itemsCh:
			if res.err != nil {
				itemsErr = res.err
				continue
			}
			s.mu.Lock()
			err := session.AttachContenders(res.items)
			s.mu.Unlock()
			if err != nil {
				return domain.Session{}, err
			}
		case store := <-storeCh:
			s.mu.Lock()
			err := session.AttachStore(store)
			s.mu.Unlock()
			if err != nil {
				return domain.Session{}, err
			}
		}
	}
	if itemsErr != nil {
		return domain.Session{}, fmt.Errorf("load items for pool %s: %w", poolID, itemsErr)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := session.NextPair(s.rng); err != nil {
		return domain.Session{}, err
	}
	return snapshot(session), nil
}

// NextPair re-rolls the on-screen pair.
func (s *DuelService) NextPair(_ context.Context, poolID string) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.lookup(poolID)
	if err != nil {
		return domain.Session{}, err
	}
	if _, err := session.NextPair(s.rng); err != nil {
		return domain.Session{}, err
	}
	return snapshot(session), nil
}

// RecordOutcome applies the user's decision for the current pair,
// persists the store, feeds the read models, and selects the next
// pair.
func (s *DuelService) RecordOutcome(ctx context.Context, poolID string, score domain.Score) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.lookup(poolID)
	if err != nil {
		return domain.Session{}, err
	}
	if !session.StoreLoaded() {
		return domain.Session{}, apperrors.ErrStoreNotReady
	}

	event, err := session.RecordOutcome(score, clock.Millis(s.clock), clock.Today(s.clock))
	if err != nil {
		return domain.Session{}, err
	}

	if err := s.stores.Save(ctx, poolID, session.Store); err != nil {
		s.logger.Error("persist store failed, session continues in memory", "pool", poolID, "error", err)
	}
	if err := s.journal.Append(ctx, poolID, event); err != nil {
		s.logger.Warn("journal append failed", "pool", poolID, "error", err)
	}
	if err := s.rivalries.RecordOutcome(ctx, poolID, event); err != nil {
		s.logger.Warn("rivalry record failed", "pool", poolID, "error", err)
	}
	s.projectPair(ctx, session, event)

	if _, err := session.NextPair(s.rng); err != nil {
		return domain.Session{}, err
	}
	return snapshot(session), nil
}

// RemoveItem drops a contender from the working set without touching
// the persisted store and re-derives the pair.
func (s *DuelService) RemoveItem(_ context.Context, poolID string, index int) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.lookup(poolID)
	if err != nil {
		return domain.Session{}, err
	}
	if err := session.RemoveContender(index); err != nil {
		return domain.Session{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if _, err := session.NextPair(s.rng); err != nil {
		return domain.Session{}, err
	}
	return snapshot(session), nil
}

// ResetPool wipes the pool's store durably and returns the working
// set to defaults. The caller must have confirmed.
func (s *DuelService) ResetPool(ctx context.Context, poolID string) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.lookup(poolID)
	if err != nil {
		return domain.Session{}, err
	}
	if err := session.Reset(); err != nil {
		return domain.Session{}, err
	}
	if err := s.stores.Save(ctx, poolID, session.Store); err != nil {
		s.logger.Error("persist reset store failed", "pool", poolID, "error", err)
	}
	if err := s.standings.Reset(ctx, poolID); err != nil {
		s.logger.Warn("standings reset failed", "pool", poolID, "error", err)
	}
	if _, err := session.NextPair(s.rng); err != nil {
		return domain.Session{}, err
	}
	return snapshot(session), nil
}

// History replays the persisted store against the pool's current
// items, independent of any live session. Output is chronological.
func (s *DuelService) History(ctx context.Context, poolID string) ([]domain.HistoryEntry, error) {
	items, err := s.provider.Contenders(ctx, poolID)
	if err != nil {
		return nil, fmt.Errorf("load items for pool %s: %w", poolID, err)
	}
	store, err := s.loadStore(ctx, poolID)
	if err != nil {
		return nil, err
	}
	return domain.ReconstructHistory(items, store), nil
}

// Standings returns the pool's ranking from the standings read model,
// rebuilding the projection from the store first when it is empty.
func (s *DuelService) Standings(ctx context.Context, poolID string, limit int) ([]domain.StandingRow, error) {
	rows, err := s.standings.Top(ctx, poolID, limit)
	if err != nil {
		return nil, fmt.Errorf("query standings: %w", err)
	}
	if len(rows) == 0 {
		if err := s.reindexPool(ctx, poolID); err != nil {
			return nil, err
		}
		rows, err = s.standings.Top(ctx, poolID, limit)
		if err != nil {
			return nil, fmt.Errorf("query standings: %w", err)
		}
	}
	return domain.AssignRanks(rows), nil
}

// PublishStandings rewrites the managed standings block of the pool's
// ranking note.
func (s *DuelService) PublishStandings(ctx context.Context, poolID string) (string, int, error) {
	rows, err := s.Standings(ctx, poolID, 0)
	if err != nil {
		return "", 0, err
	}
	path, err := s.publisher.Publish(ctx, poolID, rows)
	if err != nil {
		return "", 0, fmt.Errorf("publish standings: %w", err)
	}
	return path, len(rows), nil
}

// Reindex rebuilds the standings projection for every configured pool.
func (s *DuelService) Reindex(ctx context.Context) error {
	pools, err := s.provider.Pools(ctx)
	if err != nil {
		return fmt.Errorf("list pools: %w", err)
	}
	for _, poolID := range pools {
		if err := s.reindexPool(ctx, poolID); err != nil {
			return err
		}
	}
	return nil
}

// Events returns the pool's persisted event log in chronological
// order.
func (s *DuelService) Events(ctx context.Context, poolID string) ([]domain.ComparisonEvent, error) {
	store, err := s.loadStore(ctx, poolID)
	if err != nil {
		return nil, err
	}
	return store.Events, nil
}

// RestoreStore replaces the pool's store with one rebuilt by
// replaying the given events from defaults. Any live session is
// discarded so the next start re-merges. The caller must have
// confirmed.
func (s *DuelService) RestoreStore(ctx context.Context, poolID string, events []domain.ComparisonEvent) (domain.Store, error) {
	store := domain.RebuildStore(poolID, events)
	if err := s.stores.Save(ctx, poolID, store); err != nil {
		return domain.Store{}, fmt.Errorf("persist rebuilt store: %w", err)
	}
	s.mu.Lock()
	delete(s.sessions, poolID)
	s.mu.Unlock()
	if err := s.reindexPool(ctx, poolID); err != nil {
		s.logger.Warn("standings reindex after restore failed", "pool", poolID, "error", err)
	}
	return store, nil
}

// DeletePoolStore removes the pool's persisted documents and read
// model rows. The caller must have confirmed.
func (s *DuelService) DeletePoolStore(ctx context.Context, poolID string) error {
	if err := s.stores.Delete(ctx, poolID); err != nil {
		return fmt.Errorf("delete store for pool %s: %w", poolID, err)
	}
	if err := s.standings.Reset(ctx, poolID); err != nil {
		s.logger.Warn("standings reset failed", "pool", poolID, "error", err)
	}
	s.mu.Lock()
	delete(s.sessions, poolID)
	s.mu.Unlock()
	return nil
}

func (s *DuelService) obtain(poolID string) *domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[poolID]
	if !ok {
		session = domain.NewSession(poolID)
		s.sessions[poolID] = session
	}
	return session
}

func (s *DuelService) lookup(poolID string) (*domain.Session, error) {
	session, ok := s.sessions[poolID]
	if !ok {
		return nil, fmt.Errorf("no session for pool %s: %w", poolID, apperrors.ErrNotFound)
	}
	return session, nil
}

func (s *DuelService) loadStore(ctx context.Context, poolID string) (domain.Store, error) {
	store, err := s.stores.Load(ctx, poolID)
	if err != nil {
		s.logger.Warn("store load failed, using empty store", "pool", poolID, "error", err)
		return domain.NewStore(), nil
	}
	return store, nil
}

// projectPair mirrors the two records touched by an outcome into the
// standings read model.
func (s *DuelService) projectPair(ctx context.Context, session *domain.Session, event domain.ComparisonEvent) {
	for _, c := range session.Contenders {
		if c.ID != event.ItemA && c.ID != event.ItemB {
			continue
		}
		row := domain.StandingRow{
			ItemID:      c.ID,
			DisplayName: c.DisplayName,
			Rating:      c.Rating,
			Games:       c.GamesPlayed,
			Last:        c.LastCompared,
		}
		if err := s.standings.Upsert(ctx, session.PoolID, row); err != nil {
			s.logger.Warn("standings upsert failed", "pool", session.PoolID, "item", c.ID, "error", err)
		}
	}
}

func (s *DuelService) reindexPool(ctx context.Context, poolID string) error {
	items, err := s.provider.Contenders(ctx, poolID)
	if err != nil {
		return fmt.Errorf("load items for pool %s: %w", poolID, err)
	}
	store, err := s.loadStore(ctx, poolID)
	if err != nil {
		return err
	}
	merged := domain.MergeContenders(items, store.Ratings)
	if err := s.standings.Reset(ctx, poolID); err != nil {
		return fmt.Errorf("reset standings for pool %s: %w", poolID, err)
	}
	for _, c := range merged {
		row := domain.StandingRow{
			ItemID:      c.ID,
			DisplayName: c.DisplayName,
			Rating:      c.Rating,
			Games:       c.GamesPlayed,
			Last:        c.LastCompared,
		}
		if err := s.standings.Upsert(ctx, poolID, row); err != nil {
			return fmt.Errorf("project standings for pool %s: %w", poolID, err)
		}
	}
	return nil
}

// snapshot copies the session state handed to callers so later
// mutations under the service lock cannot race a render.
func snapshot(session *domain.Session) domain.Session {
	out := *session
	out.Contenders = append([]domain.Contender(nil), session.Contenders...)
	out.History = append([]domain.HistoryEntry(nil), session.History...)
	out.Store = domain.Store{
		Events:  append([]domain.ComparisonEvent(nil), session.Store.Events...),
		Ratings: make(map[string]domain.RatingRecord, len(session.Store.Ratings)),
	}
	for id, rec := range session.Store.Ratings {
		out.Store.Ratings[id] = rec
	}
	return out
}
