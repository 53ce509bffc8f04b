package contract_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"

	"github.com/talentbridge/talentbridge-go-api/internal/dto"
	"github.com/talentbridge/talentbridge-go-api/internal/handler"
	"github.com/talentbridge/talentbridge-go-api/internal/models"
)

type stubOpportunityService struct {
	catalog dto.OpportunityListResponse
}

func (s stubOpportunityService) Create(context.Context, string, dto.OpportunityCreateRequest) (dto.OpportunityResponse, error) {
	return dto.OpportunityResponse{}, nil
}

func (s stubOpportunityService) Update(context.Context, string, uint, dto.OpportunityUpdateRequest) (dto.OpportunityResponse, error) {
	return dto.OpportunityResponse{}, nil
}

func (s stubOpportunityService) Close(context.Context, string, uint) error {
	return nil
}

func (s stubOpportunityService) ListPublic(context.Context, dto.OpportunityListRequest) (dto.OpportunityListResponse, error) {
	return s.catalog, nil
}

func (s stubOpportunityService) ListOwned(context.Context, string) ([]dto.OpportunityResponse, error) {
	return nil, nil
}

func TestOpportunityCatalogContract(t *testing.T) {
	schemaPath, err := filepath.Abs(filepath.Join("..", "contracts", "opportunity_catalog.schema.json"))
	require.NoError(t, err)

	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile("file://" + schemaPath)
	require.NoError(t, err)

	now := time.Now().UTC()
	catalog := dto.OpportunityListResponse{
		Items: []dto.OpportunityResponse{
			{
				ID:           12,
				BusinessID:   4,
				BusinessName: "Northwind Traders",
				Title:        "Landing page refresh",
				Description:  "Rebuild the marketing landing page with a modern stack.",
				Tags:         []string{"frontend", "design"},
				Questions: []dto.QuestionPayload{
					{Prompt: "Share a portfolio link", Required: true},
				},
				Status:         models.OpportunityStatusActive,
				ApplicantCount: 7,
				Badge:          &models.BadgeStatus{Badge: models.BadgeFrequent, CompletedProjects: 5},
				CreatedAt:      now,
			},
		},
		Pagination: dto.PaginationMeta{Page: 1, PageSize: 20, TotalItems: 1, TotalPages: 1},
	}

	svc := stubOpportunityService{catalog: catalog}
	opportunityHandler := handler.NewOpportunityHandler(svc, zerolog.Nop())

	app := fiber.New()
	opportunityHandler.Register(app.Group("/api/v1/opportunities"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/opportunities?page=1&page_size=20", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload interface{}
	require.NoError(t, json.Unmarshal(body, &payload))
	require.NoError(t, schema.Validate(payload))
}
