// File: internal/platform/elasticsearch/index.go
package elasticsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"
)

const ProvidersIndexName = "service_providers"

// defineProvidersMapping returns the JSON string for the provider directory
// index mapping.
func defineProvidersMapping() (string, error) {
	mapping := map[string]interface{}{
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"company_name":   map[string]interface{}{"type": "text", "fields": map[string]interface{}{"keyword": map[string]interface{}{"type": "keyword", "ignore_above": 256}}},
				"description":    map[string]interface{}{"type": "text"},
				"city":           map[string]interface{}{"type": "keyword"},
				"state":          map[string]interface{}{"type": "keyword"},
				"zip_code":       map[string]interface{}{"type": "keyword"},
				"category_ids":   map[string]interface{}{"type": "keyword"},
				"service_radius": map[string]interface{}{"type": "double"},
				"is_verified":    map[string]interface{}{"type": "boolean"},
				"is_active":      map[string]interface{}{"type": "boolean"},
				"created_at":     map[string]interface{}{"type": "date"},
			},
		},
	}
	mappingBytes, err := json.Marshal(mapping)
	if err != nil {
		return "", fmt.Errorf("error marshalling providers mapping to JSON: %w", err)
	}
	return string(mappingBytes), nil
}

// CreateProvidersIndexIfNotExists creates the provider directory index with
// the defined mapping if it does not already exist. A nil client is a no-op.
func CreateProvidersIndexIfNotExists(client *ESClientWrapper, logger *zap.Logger) error {
	if client == nil {
		return nil
	}
	ctx := context.Background()
	log := logger.Named("elasticsearch_index_setup")

	req := esapi.IndicesExistsRequest{
		Index: []string{ProvidersIndexName},
	}
	res, err := req.Do(ctx, client.Client)
	if err != nil {
		log.Error("Error checking if providers index exists", zap.Error(err))
		return fmt.Errorf("error checking if providers index exists: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		log.Info("Providers index already exists", zap.String("index_name", ProvidersIndexName))
		return nil
	}
	if res.StatusCode != http.StatusNotFound {
		log.Error("Error checking if providers index exists, unexpected status",
			zap.String("status", res.Status()),
			zap.String("index_name", ProvidersIndexName),
		)
		return fmt.Errorf("error checking if providers index exists: status %s", res.Status())
	}

	mappingJSON, err := defineProvidersMapping()
	if err != nil {
		log.Error("Failed to define providers mapping", zap.Error(err))
		return err
	}

	createReq := esapi.IndicesCreateRequest{
		Index: ProvidersIndexName,
		Body:  strings.NewReader(mappingJSON),
	}
	createRes, err := createReq.Do(ctx, client.Client)
	if err != nil {
		log.Error("Error creating providers index", zap.Error(err), zap.String("index_name", ProvidersIndexName))
		return fmt.Errorf("error creating providers index %s: %w", ProvidersIndexName, err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		var errorBody map[string]interface{}
		if err := json.NewDecoder(createRes.Body).Decode(&errorBody); err != nil {
			log.Error("Failed to parse providers index creation error response body", zap.Error(err), zap.String("status", createRes.Status()))
		} else {
			log.Error("Failed to create providers index",
				zap.String("status", createRes.Status()),
				zap.Any("error_details", errorBody),
				zap.String("index_name", ProvidersIndexName),
			)
		}
		return fmt.Errorf("failed to create providers index %s: status %s", ProvidersIndexName, createRes.Status())
	}

	log.Info("Providers index created successfully", zap.String("index_name", ProvidersIndexName))
	return nil
}
