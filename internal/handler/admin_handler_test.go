package handler_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/talentbridge/talentbridge-go-api/internal/dto"
	"github.com/talentbridge/talentbridge-go-api/internal/handler"
	"github.com/talentbridge/talentbridge-go-api/internal/middleware"
	"github.com/talentbridge/talentbridge-go-api/internal/models"
	"github.com/talentbridge/talentbridge-go-api/internal/service"
)

type mockApprovalService struct {
	decideResp dto.BusinessResponse
	decideErr  error
	listResp   dto.AdminBusinessListResponse
	lastID     uint
}

func (m *mockApprovalService) Approve(_ context.Context, businessID uint) (dto.BusinessResponse, error) {
	m.lastID = businessID
	return m.decideResp, m.decideErr
}

func (m *mockApprovalService) Reject(_ context.Context, businessID uint) (dto.BusinessResponse, error) {
	m.lastID = businessID
	return m.decideResp, m.decideErr
}

func (m *mockApprovalService) Status(_ context.Context, businessID uint) (dto.ApprovalStatusResponse, error) {
	return dto.ApprovalStatusResponse{BusinessID: businessID, ApprovalStatus: models.ApprovalPending}, nil
}

func (m *mockApprovalService) StatusForPrincipal(_ context.Context, _ string) (dto.ApprovalStatusResponse, error) {
	return dto.ApprovalStatusResponse{ApprovalStatus: models.ApprovalPending}, nil
}

func (m *mockApprovalService) List(_ context.Context, _ dto.AdminBusinessListRequest) (dto.AdminBusinessListResponse, error) {
	return m.listResp, nil
}

func newAdminTestApp(approvals service.ApprovalService, role string) *fiber.App {
	logger := zerolog.New(io.Discard)
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("principal_id", "admin-1")
		c.Locals("user_role", role)
		return c.Next()
	})
	group := app.Group("/api/v1/admin", middleware.RequireRole("admin"))
	handler.NewAdminHandler(approvals, logger).Register(group)
	return app
}

func TestAdminApprove(t *testing.T) {
	svc := &mockApprovalService{decideResp: dto.BusinessResponse{ID: 4, ApprovalStatus: models.ApprovalApproved}}
	app := newAdminTestApp(svc, "admin")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/businesses/4/approve", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, uint(4), svc.lastID)

	var response struct {
		Success bool                 `json:"success"`
		Data    dto.BusinessResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.Equal(t, models.ApprovalApproved, response.Data.ApprovalStatus)
}

func TestAdminRejectAfterDecisionConflicts(t *testing.T) {
	svc := &mockApprovalService{
		decideErr: service.NewStateError("business", models.ApprovalApproved, models.ApprovalRejected),
	}
	app := newAdminTestApp(svc, "admin")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/businesses/4/reject", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	svc := &mockApprovalService{}
	app := newAdminTestApp(svc, "business")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/businesses", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAdminListBusinesses(t *testing.T) {
	svc := &mockApprovalService{listResp: dto.AdminBusinessListResponse{
		Items:      []dto.BusinessResponse{{ID: 1, CompanyName: "Northwind Traders"}},
		Pagination: dto.PaginationMeta{Page: 1, TotalItems: 1, TotalPages: 1},
	}}
	app := newAdminTestApp(svc, "admin")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/businesses?status=pending", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Success bool                          `json:"success"`
		Data    dto.AdminBusinessListResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.Len(t, response.Data.Items, 1)
}
