package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/talentbridge/talentbridge-go-api/internal/dto"
	"github.com/talentbridge/talentbridge-go-api/internal/models"
)

func newBusinessService(t *testing.T) (BusinessService, *memoryBusinessRepo) {
	t.Helper()

	repo := newMemoryBusinessRepo()
	validate := validator.New(validator.WithRequiredStructEnabled())
	return NewBusinessService(repo, validate, testLogger()), repo
}

func validBusinessRegistration() dto.BusinessRegisterRequest {
	return dto.BusinessRegisterRequest{
		CompanyName:    "Northwind Traders",
		Location:       "Rotterdam",
		Industry:       "Logistics",
		ContactName:    "Sam Owner",
		ContactEmail:   "owner@northwind.test",
		ContactChannel: "email",
		Needs:          "We need a landing page rework",
		Tags:           []string{"web", "design"},
	}
}

func TestBusinessRegisterStartsPending(t *testing.T) {
	svc, _ := newBusinessService(t)

	response, err := svc.Register(context.Background(), "biz-1", validBusinessRegistration())
	require.NoError(t, err)
	require.Equal(t, models.ApprovalPending, response.ApprovalStatus)
	require.Equal(t, "Northwind Traders", response.CompanyName)
}

func TestBusinessRegisterValidation(t *testing.T) {
	svc, _ := newBusinessService(t)

	payload := validBusinessRegistration()
	payload.ContactEmail = "not-an-email"
	_, err := svc.Register(context.Background(), "biz-1", payload)
	require.Error(t, err)

	payload = validBusinessRegistration()
	payload.CompanyName = "x"
	_, err = svc.Register(context.Background(), "biz-1", payload)
	require.Error(t, err)
}

func TestBusinessRegisterSanitizesNeeds(t *testing.T) {
	svc, _ := newBusinessService(t)

	payload := validBusinessRegistration()
	payload.Needs = "<b>bold</b> help wanted<script>x()</script>"

	response, err := svc.Register(context.Background(), "biz-1", payload)
	require.NoError(t, err)
	require.Equal(t, "bold help wanted", response.Needs)
}

func TestBusinessUpdateNeverTouchesApproval(t *testing.T) {
	svc, repo := newBusinessService(t)

	registered, err := svc.Register(context.Background(), "biz-1", validBusinessRegistration())
	require.NoError(t, err)

	moved, err := repo.TransitionApproval(context.Background(), registered.ID, models.ApprovalPending, models.ApprovalApproved)
	require.NoError(t, err)
	require.True(t, moved)

	name := "Northwind International"
	updated, err := svc.Update(context.Background(), "biz-1", dto.BusinessUpdateRequest{CompanyName: &name})
	require.NoError(t, err)
	require.Equal(t, "Northwind International", updated.CompanyName)
	require.Equal(t, models.ApprovalApproved, updated.ApprovalStatus)
}

func TestBusinessGetPublicHidesUnapproved(t *testing.T) {
	svc, repo := newBusinessService(t)

	registered, err := svc.Register(context.Background(), "biz-1", validBusinessRegistration())
	require.NoError(t, err)

	_, err = svc.GetPublic(context.Background(), registered.ID)
	require.ErrorIs(t, err, ErrBusinessNotFound)

	moved, err := repo.TransitionApproval(context.Background(), registered.ID, models.ApprovalPending, models.ApprovalApproved)
	require.NoError(t, err)
	require.True(t, moved)

	public, err := svc.GetPublic(context.Background(), registered.ID)
	require.NoError(t, err)
	require.Equal(t, "Northwind Traders", public.CompanyName)
}

func TestBusinessGetOwnMissing(t *testing.T) {
	svc, _ := newBusinessService(t)

	_, err := svc.GetOwn(context.Background(), "nobody")
	require.ErrorIs(t, err, ErrBusinessNotFound)
}
