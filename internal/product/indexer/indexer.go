// Package indexer mirrors products into Elasticsearch and answers free-text
// product searches from it.
package indexer

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/event"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/fekuna/omnipos-catalog-service/pkg/search"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const DefaultIndex = "catalog_products"

// Localized fields are objects keyed by language, so every language lands in
// its own text field (name.pt, name.en, ...).
const mapping = `{
  "mappings": {
    "dynamic_templates": [
      {"localized": {"path_match": "*.*", "match_mapping_type": "string", "mapping": {"type": "text"}}}
    ],
    "properties": {
      "merchant_id":  {"type": "keyword"},
      "category_id":  {"type": "keyword"},
      "is_available": {"type": "boolean"},
      "name":         {"type": "object"},
      "description":  {"type": "object"}
    }
  }
}`

// Store is the part of *search.Client the indexer uses.
type Store interface {
	CreateIndex(ctx context.Context, index, mapping string) error
	Index(ctx context.Context, index, id string, doc any) error
	Delete(ctx context.Context, index, id string) error
	Search(ctx context.Context, index string, query map[string]any) (*search.SearchResponse, error)
}

type Document struct {
	MerchantID  string            `json:"merchant_id"`
	CategoryID  string            `json:"category_id"`
	IsAvailable bool              `json:"is_available"`
	Name        map[string]string `json:"name"`
	Description map[string]string `json:"description"`
}

type Indexer struct {
	store  Store
	index  string
	logger logger.ZapLogger
}

func New(store Store, index string, log logger.ZapLogger) *Indexer {
	if index == "" {
		index = DefaultIndex
	}
	return &Indexer{store: store, index: index, logger: log}
}

func (i *Indexer) EnsureIndex(ctx context.Context) error {
	return i.store.CreateIndex(ctx, i.index, mapping)
}

func documentOf(p *model.Product) Document {
	return Document{
		MerchantID:  p.MerchantID,
		CategoryID:  p.CategoryID,
		IsAvailable: p.IsAvailable,
		Name:        p.Name.Map(),
		Description: p.Description.Map(),
	}
}

// Publish keeps the index in step with catalog writes. Events that do not
// touch products are ignored.
func (i *Indexer) Publish(ctx context.Context, ev event.Event) error {
	switch ev.EventType {
	case event.ProductCreated, event.ProductUpdated, event.ProductMoved, event.AvailabilityChanged:
		p, ok := ev.Payload.(*model.Product)
		if !ok {
			i.logger.Warn("product event without product payload",
				zap.String("event_type", string(ev.EventType)), zap.String("entity_id", ev.EntityID))
			return nil
		}
		return i.store.Index(ctx, i.index, p.ID, documentOf(p))
	case event.ProductDeleted:
		return i.store.Delete(ctx, i.index, ev.EntityID)
	case event.CategoryDeleted:
		removal, ok := ev.Payload.(event.Removal)
		if !ok {
			return nil
		}
		var err error
		for _, id := range removal.ProductIDs {
			err = multierr.Append(err, i.store.Delete(ctx, i.index, id))
		}
		return err
	}
	return nil
}

// SearchProductIDs returns the merchant's product ids matching query, best first.
func (i *Indexer) SearchProductIDs(ctx context.Context, merchantID, query string, limit int) ([]string, error) {
	res, err := i.store.Search(ctx, i.index, map[string]any{
		"size":    limit,
		"_source": false,
		"query": map[string]any{
			"bool": map[string]any{
				"filter": []any{
					map[string]any{"term": map[string]any{"merchant_id": merchantID}},
				},
				"must": []any{
					map[string]any{"multi_match": map[string]any{
						"query":     query,
						"fields":    []string{"name.*^3", "description.*"},
						"fuzziness": "AUTO",
					}},
				},
			},
		},
	})
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(res.Hits.Hits))
	for n, hit := range res.Hits.Hits {
		ids[n] = hit.ID
	}
	return ids, nil
}
