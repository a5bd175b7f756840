package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"cartBoost/domain"
)

// TokenSource resolves the per-shop platform access token.
type TokenSource interface {
	AccessToken(ctx context.Context, shop string) (string, error)
}

type CatalogConfig struct {
	APIVersion string
}

// CatalogRepository talks to the platform's Admin GraphQL API for catalog
// lookups and to the storefront recommendations endpoint for "customers
// also bought" suggestions. All returned ids are bare.
type CatalogRepository struct {
	client     *http.Client
	tokens     TokenSource
	apiVersion string
}

func NewCatalogRepository(client *http.Client, tokens TokenSource, cfg CatalogConfig) *CatalogRepository {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	apiVersion := cfg.APIVersion
	if apiVersion == "" {
		apiVersion = "2024-07"
	}

	return &CatalogRepository{
		client:     client,
		tokens:     tokens,
		apiVersion: apiVersion,
	}
}

const productFields = `
id
title
vendor
productType
variants(first: 1) {
	edges {
		node {
			id
			price
		}
	}
}`

var getProductQuery = fmt.Sprintf(`query getProduct($id: ID!) {
	product(id: $id) {%s
	}
}`, productFields)

var getProductsByIDsQuery = fmt.Sprintf(`query getProducts($ids: [ID!]!) {
	nodes(ids: $ids) {
		... on Product {%s
		}
	}
}`, productFields)

var listBestSellingQuery = fmt.Sprintf(`query listBestSelling($first: Int!) {
	products(first: $first, sortKey: BEST_SELLING) {
		edges {
			node {%s
			}
		}
	}
}`, productFields)

func (r *CatalogRepository) GetProduct(ctx context.Context, shop, productID string) (domain.CatalogProduct, error) {
	var payload struct {
		Product *gqlProduct `json:"product"`
	}

	vars := map[string]any{"id": ProductGID(productID)}
	if err := r.query(ctx, shop, getProductQuery, vars, &payload); err != nil {
		return domain.CatalogProduct{}, err
	}

	if payload.Product == nil {
		return domain.CatalogProduct{}, fmt.Errorf("product %s not found", productID)
	}

	return payload.Product.toCatalogProduct(), nil
}

func (r *CatalogRepository) GetProductsByIDs(ctx context.Context, shop string, productIDs []string) ([]domain.CatalogProduct, error) {
	if len(productIDs) == 0 {
		return []domain.CatalogProduct{}, nil
	}

	gids := make([]string, 0, len(productIDs))
	for _, id := range productIDs {
		gids = append(gids, ProductGID(id))
	}

	var payload struct {
		Nodes []*gqlProduct `json:"nodes"`
	}

	vars := map[string]any{"ids": gids}
	if err := r.query(ctx, shop, getProductsByIDsQuery, vars, &payload); err != nil {
		return nil, err
	}

	// deleted products come back as null nodes and are simply absent
	products := make([]domain.CatalogProduct, 0, len(payload.Nodes))
	for _, node := range payload.Nodes {
		if node == nil || node.ID == "" {
			continue
		}
		products = append(products, node.toCatalogProduct())
	}

	return products, nil
}

func (r *CatalogRepository) ListBestSelling(ctx context.Context, shop string, first int) ([]domain.CatalogProduct, error) {
	var payload struct {
		Products struct {
			Edges []struct {
				Node gqlProduct `json:"node"`
			} `json:"edges"`
		} `json:"products"`
	}

	vars := map[string]any{"first": first}
	if err := r.query(ctx, shop, listBestSellingQuery, vars, &payload); err != nil {
		return nil, err
	}

	products := make([]domain.CatalogProduct, 0, len(payload.Products.Edges))
	for _, edge := range payload.Products.Edges {
		products = append(products, edge.Node.toCatalogProduct())
	}

	return products, nil
}

// GetRecommendations uses the storefront's public recommendations endpoint
// rather than the Admin API; it needs no token and returns prices in cents.
func (r *CatalogRepository) GetRecommendations(ctx context.Context, shop, productID string) ([]domain.CatalogProduct, error) {
	url := fmt.Sprintf("https://%s/recommendations/products.json?product_id=%s&limit=10", shop, productID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build recommendations request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("recommendations request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recommendations request returned status %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read recommendations response: %w", err)
	}

	return parseRecommendations(body)
}

// ---- wire types ----

type gqlProduct struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Vendor      string `json:"vendor"`
	ProductType string `json:"productType"`
	Variants    struct {
		Edges []struct {
			Node struct {
				ID    string `json:"id"`
				Price string `json:"price"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"variants"`
}

func (p *gqlProduct) toCatalogProduct() domain.CatalogProduct {
	out := domain.CatalogProduct{
		ID:          BareID(p.ID),
		Title:       p.Title,
		Vendor:      p.Vendor,
		ProductType: p.ProductType,
	}

	if len(p.Variants.Edges) > 0 {
		node := p.Variants.Edges[0].Node
		out.VariantID = BareID(node.ID)
		// a missing or malformed price reads as 0
		out.Price, _ = strconv.ParseFloat(node.Price, 64)
	}

	return out
}

type recommendationsResponse struct {
	Products []struct {
		ID       int64  `json:"id"`
		Title    string `json:"title"`
		Vendor   string `json:"vendor"`
		Type     string `json:"type"`
		Price    int64  `json:"price"`
		Variants []struct {
			ID int64 `json:"id"`
		} `json:"variants"`
	} `json:"products"`
}

func parseRecommendations(body []byte) ([]domain.CatalogProduct, error) {
	var payload recommendationsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode recommendations response: %w", err)
	}

	products := make([]domain.CatalogProduct, 0, len(payload.Products))
	for _, p := range payload.Products {
		cp := domain.CatalogProduct{
			ID:          strconv.FormatInt(p.ID, 10),
			Title:       p.Title,
			Vendor:      p.Vendor,
			ProductType: p.Type,
			Price:       float64(p.Price) / 100,
		}
		if len(p.Variants) > 0 {
			cp.VariantID = strconv.FormatInt(p.Variants[0].ID, 10)
		}
		products = append(products, cp)
	}

	return products, nil
}

// ---- GraphQL transport ----

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (r *CatalogRepository) query(ctx context.Context, shop, query string, variables map[string]any, out any) error {
	token, err := r.tokens.AccessToken(ctx, shop)
	if err != nil {
		return fmt.Errorf("failed to resolve access token: %w", err)
	}

	reqBody, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to encode graphql request: %w", err)
	}

	url := fmt.Sprintf("https://%s/admin/api/%s/graphql.json", shop, r.apiVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Errorf("failed to build graphql request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", token)

	res, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("graphql request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("failed to read graphql response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("graphql request returned status %d", res.StatusCode)
	}

	var envelope graphqlEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("failed to decode graphql envelope: %w", err)
	}

	if len(envelope.Errors) > 0 {
		return errors.New("graphql error: " + envelope.Errors[0].Message)
	}

	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("failed to decode graphql data: %w", err)
	}

	return nil
}
