// File: internal/provider/search.go
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"

	"iserviceseeker_backend/internal/platform/elasticsearch"
)

type esSearchError struct {
	status string
}

func (e *esSearchError) Error() string {
	return fmt.Sprintf("elasticsearch search error: %s", e.status)
}

// indexProfile pushes the profile document into the provider directory
// index. Indexing is best effort; failures are logged and never surfaced to
// the caller.
func (s *service) indexProfile(ctx context.Context, profileID uint) {
	if s.esClient == nil {
		return
	}

	profile, err := s.repo.FindProfileByID(ctx, profileID)
	if err != nil {
		s.logger.Warn("Skipping profile indexing, could not load profile", zap.Error(err), zap.Uint("profileID", profileID))
		return
	}

	doc, err := profileDocument(profile)
	if err != nil {
		s.logger.Warn("Skipping profile indexing, could not build document", zap.Error(err), zap.Uint("profileID", profileID))
		return
	}

	req := esapi.IndexRequest{
		Index:      elasticsearch.ProvidersIndexName,
		DocumentID: strconv.FormatUint(uint64(profile.ID), 10),
		Body:       bytes.NewReader(doc),
	}
	res, err := req.Do(ctx, s.esClient.Client)
	if err != nil {
		s.logger.Warn("Failed to index provider profile", zap.Error(err), zap.Uint("profileID", profileID))
		return
	}
	defer res.Body.Close()
	if res.IsError() {
		s.logger.Warn("Elasticsearch rejected provider profile document",
			zap.String("status", res.Status()), zap.Uint("profileID", profileID))
		return
	}
	s.logger.Debug("Provider profile indexed", zap.Uint("profileID", profileID))
}

// profileDocument builds the search document for a profile. Service areas
// must be preloaded for category ids to be included.
func profileDocument(p *ServiceProviderProfile) ([]byte, error) {
	categoryIDs := make([]string, 0, len(p.ServiceAreas))
	for _, area := range p.ServiceAreas {
		categoryIDs = append(categoryIDs, strconv.FormatUint(uint64(area.ServiceCategoryID), 10))
	}

	doc := map[string]interface{}{
		"company_name":   p.CompanyName,
		"city":           p.City,
		"state":          p.State,
		"zip_code":       p.ZipCode,
		"category_ids":   categoryIDs,
		"service_radius": p.ServiceRadius,
		"is_verified":    p.IsVerified,
		"is_active":      p.IsActive,
		"created_at":     p.CreatedAt,
	}
	if p.Description != nil {
		doc["description"] = *p.Description
	}
	return json.Marshal(doc)
}

// ReindexAllProfiles pushes every active profile into the directory index.
// Used at startup so the index catches up with rows written while
// Elasticsearch was unavailable. A nil client is a no-op.
func (s *service) ReindexAllProfiles(ctx context.Context) error {
	if s.esClient == nil {
		return nil
	}
	profiles, err := s.repo.FindActiveProfiles(ctx)
	if err != nil {
		return fmt.Errorf("loading profiles for reindex: %w", err)
	}
	for i := range profiles {
		s.indexProfile(ctx, profiles[i].ID)
	}
	s.logger.Info("Provider profile reindex complete", zap.Int("count", len(profiles)))
	return nil
}

// searchProfilesES runs the directory query against Elasticsearch and
// hydrates matching profiles from the database.
func (s *service) searchProfilesES(ctx context.Context, query string, offset, limit int) ([]ServiceProviderProfile, int64, error) {
	esQuery := map[string]interface{}{
		"from": offset,
		"size": limit,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": []interface{}{
					map[string]interface{}{
						"multi_match": map[string]interface{}{
							"query":  query,
							"fields": []string{"company_name^2", "description"},
						},
					},
				},
				"filter": []interface{}{
					map[string]interface{}{"term": map[string]interface{}{"is_active": true}},
				},
			},
		},
		"sort": []interface{}{
			map[string]interface{}{"_score": map[string]interface{}{"order": "desc"}},
			map[string]interface{}{"company_name.keyword": map[string]interface{}{"order": "asc"}},
		},
	}

	var body bytes.Buffer
	if err := json.NewEncoder(&body).Encode(esQuery); err != nil {
		return nil, 0, fmt.Errorf("error encoding provider search query: %w", err)
	}

	res, err := s.esClient.Search(
		s.esClient.Search.WithContext(ctx),
		s.esClient.Search.WithIndex(elasticsearch.ProvidersIndexName),
		s.esClient.Search.WithBody(&body),
		s.esClient.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, 0, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, 0, &esSearchError{status: res.Status()}
	}

	var parsed struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, 0, fmt.Errorf("error decoding provider search response: %w", err)
	}

	profiles := make([]ServiceProviderProfile, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		id, err := strconv.ParseUint(hit.ID, 10, 32)
		if err != nil {
			continue
		}
		profile, err := s.repo.FindProfileByID(ctx, uint(id))
		if err != nil {
			// Index entries can outlive their rows; skip stale hits.
			s.logger.Debug("Skipping stale provider search hit", zap.String("docID", hit.ID))
			continue
		}
		profiles = append(profiles, *profile)
	}
	return profiles, parsed.Hits.Total.Value, nil
}
