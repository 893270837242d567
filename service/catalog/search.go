package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/elastic/go-elasticsearch/v8"
	"gorm.io/gorm"

	catalogEntity "tillpoint/model/entity/catalog"
)

const searchIndex = "tillpoint_product"

var (
	esOnce   sync.Once
	esClient *elasticsearch.Client
)

// getESClient lazily builds the Elasticsearch client from ELASTICSEARCH_URL.
// Returns nil when search is not configured; callers fall back to SQL.
func getESClient() *elasticsearch.Client {
	esOnce.Do(func() {
		addr := os.Getenv("ELASTICSEARCH_URL")
		if addr == "" {
			return
		}
		client, err := elasticsearch.NewClient(elasticsearch.Config{
			Addresses: []string{addr},
		})
		if err != nil {
			log.Printf("elasticsearch client init failed: %v", err)
			return
		}
		esClient = client
	})
	return esClient
}

// SearchProducts finds products matching query by name or SKU. Uses
// Elasticsearch when configured, otherwise a LIKE scan over the product table.
func SearchProducts(db *gorm.DB, query string, limit int) ([]catalogEntity.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	if client := getESClient(); client != nil {
		products, err := searchES(db, client, query, limit)
		if err == nil {
			return products, nil
		}
		log.Printf("elasticsearch query failed, falling back to sql: %v", err)
	}
	return searchSQL(db, query, limit)
}

func searchES(db *gorm.DB, client *elasticsearch.Client, query string, limit int) ([]catalogEntity.Product, error) {
	body := map[string]interface{}{
		"size": limit,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"name^3", "sku^2"},
			},
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}

	res, err := client.Search(
		client.Search.WithIndex(searchIndex),
		client.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch: %s", res.String())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source struct {
					ProductID uint `json:"product_id"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		ids = append(ids, hit.Source.ProductID)
	}
	if len(ids) == 0 {
		return []catalogEntity.Product{}, nil
	}

	var rows []catalogEntity.Product
	if err := db.Where("product_id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	// Keep relevance order from the search engine.
	byID := make(map[uint]catalogEntity.Product, len(rows))
	for _, row := range rows {
		byID[row.ProductID] = row
	}
	ordered := make([]catalogEntity.Product, 0, len(ids))
	for _, id := range ids {
		if product, ok := byID[id]; ok {
			ordered = append(ordered, product)
		}
	}
	return ordered, nil
}

func searchSQL(db *gorm.DB, query string, limit int) ([]catalogEntity.Product, error) {
	var products []catalogEntity.Product
	pattern := "%" + query + "%"
	err := db.Where("name LIKE ? OR sku LIKE ?", pattern, pattern).
		Order("name asc").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// IndexAllProducts pushes the full catalog into the search index. A no-op
// when Elasticsearch is not configured.
func IndexAllProducts(db *gorm.DB) (int, error) {
	client := getESClient()
	if client == nil {
		return 0, nil
	}
	var products []catalogEntity.Product
	if err := db.Find(&products).Error; err != nil {
		return 0, err
	}
	indexed := 0
	for _, product := range products {
		doc := map[string]interface{}{
			"product_id": product.ProductID,
			"sku":        product.SKU,
			"name":       product.Name,
			"uom":        product.UOM,
		}
		payload, err := json.Marshal(doc)
		if err != nil {
			return indexed, err
		}
		res, err := client.Index(
			searchIndex,
			bytes.NewReader(payload),
			client.Index.WithDocumentID(fmt.Sprintf("%d", product.ProductID)),
		)
		if err != nil {
			return indexed, err
		}
		res.Body.Close()
		if res.IsError() {
			return indexed, fmt.Errorf("index product %d: %s", product.ProductID, res.Status())
		}
		indexed++
	}
	return indexed, nil
}
