package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"mdrank/internal/modules/duel/domain"
	duelout "mdrank/internal/modules/duel/port/out"
	"mdrank/internal/platform/logger"
)

const historyDir = "history"

// JSONStoreGateway keeps one pool's store as two JSON documents under
// history/: events-<pool>.json holds the event array, ratings-<pool>.json
// the record map. A document that is absent, unreadable, or fails the
// strict decode degrades to its empty default; the failure is logged
// and never surfaced. The two writes are separate, so a crash between
// them can leave the documents mutually inconsistent and the next
// load accepts whatever it finds.
type JSONStoreGateway struct {
	docs   duelout.DocumentStore
	logger *logger.Logger
}

func NewJSONStoreGateway(docs duelout.DocumentStore, log *logger.Logger) duelout.StoreGateway {
	return &JSONStoreGateway{docs: docs, logger: log}
}

func eventsPath(poolID string) string {
	return path.Join(historyDir, "events-"+poolID+".json")
}

func ratingsPath(poolID string) string {
	return path.Join(historyDir, "ratings-"+poolID+".json")
}

func (g *JSONStoreGateway) Load(ctx context.Context, poolID string) (domain.Store, error) {
	if poolID == domain.DefaultPoolID {
		g.migrateLegacy(ctx)
	}

	store := domain.NewStore()
	if data, ok := g.readDocument(ctx, eventsPath(poolID)); ok {
		var events []domain.ComparisonEvent
		if err := decodeStrict(data, &events); err != nil {
			g.logger.Warn("events document malformed, starting empty", "pool", poolID, "error", err)
		} else if err := validateEvents(events); err != nil {
			g.logger.Warn("events document invalid, starting empty", "pool", poolID, "error", err)
		} else {
			store.Events = events
		}
	}
	if data, ok := g.readDocument(ctx, ratingsPath(poolID)); ok {
		var ratings map[string]domain.RatingRecord
		if err := decodeStrict(data, &ratings); err != nil {
			g.logger.Warn("ratings document malformed, starting empty", "pool", poolID, "error", err)
		} else if err := validateRatings(ratings); err != nil {
			g.logger.Warn("ratings document invalid, starting empty", "pool", poolID, "error", err)
		} else if ratings != nil {
			store.Ratings = ratings
		}
	}
	return store, nil
}

func (g *JSONStoreGateway) Save(ctx context.Context, poolID string, store domain.Store) error {
	if err := g.docs.MkdirAll(ctx, historyDir); err != nil {
		return err
	}
	events := store.Events
	if events == nil {
		events = []domain.ComparisonEvent{}
	}
	ratings := store.Ratings
	if ratings == nil {
		ratings = map[string]domain.RatingRecord{}
	}
	eventsData, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("encode events: %w", err)
	}
	ratingsData, err := json.MarshalIndent(ratings, "", "  ")
	if err != nil {
		return fmt.Errorf("encode ratings: %w", err)
	}
	if err := g.docs.Write(ctx, eventsPath(poolID), eventsData); err != nil {
		return err
	}
	return g.docs.Write(ctx, ratingsPath(poolID), ratingsData)
}

func (g *JSONStoreGateway) Delete(ctx context.Context, poolID string) error {
	if err := g.docs.Remove(ctx, eventsPath(poolID)); err != nil {
		return err
	}
	return g.docs.Remove(ctx, ratingsPath(poolID))
}

// migrateLegacy copies the unsuffixed single-pool documents into the
// default pool's suffixed documents when the latter are absent or
// empty, then removes the legacy files best-effort. Runs on every
// default-pool load and is a no-op once migrated.
func (g *JSONStoreGateway) migrateLegacy(ctx context.Context) {
	legacyEvents := path.Join(historyDir, "events.json")
	legacyRatings := path.Join(historyDir, "ratings.json")

	migrated := false
	if g.documentMissingOrEmpty(ctx, eventsPath(domain.DefaultPoolID)) {
		if data, ok := g.readDocument(ctx, legacyEvents); ok && len(bytes.TrimSpace(data)) > 0 {
			if err := g.docs.MkdirAll(ctx, historyDir); err == nil {
				if err := g.docs.Write(ctx, eventsPath(domain.DefaultPoolID), data); err != nil {
					g.logger.Warn("legacy events migration failed", "error", err)
				} else {
					migrated = true
					if err := g.docs.Remove(ctx, legacyEvents); err != nil {
						g.logger.Warn("legacy events cleanup failed", "error", err)
					}
				}
			}
		}
	}
	if g.documentMissingOrEmpty(ctx, ratingsPath(domain.DefaultPoolID)) {
		if data, ok := g.readDocument(ctx, legacyRatings); ok && len(bytes.TrimSpace(data)) > 0 {
			if err := g.docs.MkdirAll(ctx, historyDir); err == nil {
				if err := g.docs.Write(ctx, ratingsPath(domain.DefaultPoolID), data); err != nil {
					g.logger.Warn("legacy ratings migration failed", "error", err)
				} else {
					migrated = true
					if err := g.docs.Remove(ctx, legacyRatings); err != nil {
						g.logger.Warn("legacy ratings cleanup failed", "error", err)
					}
				}
			}
		}
	}
	if migrated {
		g.logger.Info("migrated legacy single-pool store", "pool", domain.DefaultPoolID)
	}
}

func (g *JSONStoreGateway) documentMissingOrEmpty(ctx context.Context, docPath string) bool {
	data, ok := g.readDocument(ctx, docPath)
	if !ok {
		return true
	}
	return len(bytes.TrimSpace(data)) == 0
}

// readDocument returns the document bytes and whether a document was
// usable at all. Read failures degrade to absent.
func (g *JSONStoreGateway) readDocument(ctx context.Context, docPath string) ([]byte, bool) {
	exists, err := g.docs.Exists(ctx, docPath)
	if err != nil {
		g.logger.Warn("document stat failed", "path", docPath, "error", err)
		return nil, false
	}
	if !exists {
		return nil, false
	}
	data, err := g.docs.Read(ctx, docPath)
	if err != nil {
		g.logger.Warn("document read failed", "path", docPath, "error", err)
		return nil, false
	}
	return data, true
}

// decodeStrict rejects unknown fields and trailing content so a
// document of the wrong shape fails closed instead of half-loading.
func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("trailing content after document")
	}
	return nil
}

func validateEvents(events []domain.ComparisonEvent) error {
	for i, event := range events {
		if err := event.Validate(); err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
	}
	return nil
}

func validateRatings(ratings map[string]domain.RatingRecord) error {
	for id, record := range ratings {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("rating record with empty item id")
		}
		if err := record.Validate(); err != nil {
			return fmt.Errorf("record %s: %w", id, err)
		}
	}
	return nil
}
