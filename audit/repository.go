// audit/repository.go
package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

const DefaultIndex = "panel-loads"

type Repository interface {
	LogLoad(ctx context.Context, load PanelLoad) error
	QueryLoads(ctx context.Context, from, to time.Time, panel string, limit int) ([]PanelLoad, error)
}

type ElasticsearchRepository struct {
	esClient *elasticsearch.Client
	index    string
}

// NewElasticsearchRepository creates a repository writing to index at esURL.
func NewElasticsearchRepository(esURL string, index string) (*ElasticsearchRepository, error) {
	if index == "" {
		index = DefaultIndex
	}
	cfg := elasticsearch.Config{
		Addresses: []string{esURL},
	}
	esClient, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &ElasticsearchRepository{esClient: esClient, index: index}, nil
}

// LogLoad indexes one load record.
func (r *ElasticsearchRepository) LogLoad(ctx context.Context, load PanelLoad) error {
	data, err := json.Marshal(load)
	if err != nil {
		return err
	}

	req := esapi.IndexRequest{
		Index:      r.index,
		DocumentID: load.ID,
		Body:       bytes.NewReader(data),
	}

	res, err := req.Do(ctx, r.esClient)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing document: %s", res.String())
	}

	return nil
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source PanelLoad `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// BuildLoadQuery returns the search body for loads in [from, to], newest
// first, optionally restricted to one panel.
func BuildLoadQuery(from, to time.Time, panel string, limit int) map[string]any {
	must := []any{
		map[string]any{
			"range": map[string]any{
				"timestamp": map[string]any{
					"gte": from.UTC().Format(time.RFC3339),
					"lte": to.UTC().Format(time.RFC3339),
				},
			},
		},
	}
	if panel != "" {
		must = append(must, map[string]any{
			"term": map[string]any{"panel": panel},
		})
	}
	if limit <= 0 {
		limit = 100
	}
	return map[string]any{
		"size": limit,
		"sort": []any{map[string]any{"timestamp": map[string]any{"order": "desc"}}},
		"query": map[string]any{
			"bool": map[string]any{"must": must},
		},
	}
}

// QueryLoads searches load records within a time frame.
func (r *ElasticsearchRepository) QueryLoads(ctx context.Context, from, to time.Time, panel string, limit int) ([]PanelLoad, error) {
	var buf strings.Builder
	if err := json.NewEncoder(&buf).Encode(BuildLoadQuery(from, to, panel, limit)); err != nil {
		return nil, err
	}

	res, err := r.esClient.Search(
		r.esClient.Search.WithContext(ctx),
		r.esClient.Search.WithIndex(r.index),
		r.esClient.Search.WithBody(strings.NewReader(buf.String())),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error searching documents: %s", res.String())
	}

	var sr searchResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, err
	}

	loads := make([]PanelLoad, 0, len(sr.Hits.Hits))
	for _, hit := range sr.Hits.Hits {
		loads = append(loads, hit.Source)
	}
	return loads, nil
}
