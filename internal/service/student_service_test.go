package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/talentbridge/talentbridge-go-api/internal/dto"
)

func newStudentService(t *testing.T) (StudentService, *memoryStudentRepo) {
	t.Helper()

	repo := newMemoryStudentRepo()
	validate := validator.New(validator.WithRequiredStructEnabled())
	return NewStudentService(repo, validate, testLogger()), repo
}

func validStudentRegistration() dto.StudentRegisterRequest {
	return dto.StudentRegisterRequest{
		Name:         "Dana Reyes",
		Email:        "dana@students.test",
		Skills:       []string{"go", "sql"},
		DesiredRoles: []string{"backend"},
		Bio:          "Second-year student looking for real projects.",
		PortfolioURL: "https://dana.example.com",
	}
}

func TestStudentRegisterAndFetch(t *testing.T) {
	svc, _ := newStudentService(t)

	registered, err := svc.Register(context.Background(), "stu-1", validStudentRegistration())
	require.NoError(t, err)
	require.Equal(t, "Dana Reyes", registered.Name)
	require.False(t, registered.OpenToMatching)

	fetched, err := svc.GetOwn(context.Background(), "stu-1")
	require.NoError(t, err)
	require.Equal(t, registered.ID, fetched.ID)
}

func TestStudentRegisterValidation(t *testing.T) {
	svc, _ := newStudentService(t)

	payload := validStudentRegistration()
	payload.Email = "nope"
	_, err := svc.Register(context.Background(), "stu-1", payload)
	require.Error(t, err)

	payload = validStudentRegistration()
	payload.PortfolioURL = "not a url"
	_, err = svc.Register(context.Background(), "stu-1", payload)
	require.Error(t, err)
}

func TestStudentUpdatePartial(t *testing.T) {
	svc, _ := newStudentService(t)

	_, err := svc.Register(context.Background(), "stu-1", validStudentRegistration())
	require.NoError(t, err)

	bio := "Now focused on <i>distributed systems</i>."
	updated, err := svc.Update(context.Background(), "stu-1", dto.StudentUpdateRequest{Bio: &bio})
	require.NoError(t, err)
	require.Equal(t, "Now focused on distributed systems.", updated.Bio)
	require.Equal(t, "Dana Reyes", updated.Name)
}

func TestStudentMatchingToggle(t *testing.T) {
	svc, _ := newStudentService(t)

	_, err := svc.Register(context.Background(), "stu-1", validStudentRegistration())
	require.NoError(t, err)

	on, err := svc.SetOpenToMatching(context.Background(), "stu-1", true)
	require.NoError(t, err)
	require.True(t, on.OpenToMatching)

	off, err := svc.SetOpenToMatching(context.Background(), "stu-1", false)
	require.NoError(t, err)
	require.False(t, off.OpenToMatching)
}

func TestStudentMissingPrincipal(t *testing.T) {
	svc, _ := newStudentService(t)

	_, err := svc.GetOwn(context.Background(), "nobody")
	require.ErrorIs(t, err, ErrStudentNotFound)

	_, err = svc.SetOpenToMatching(context.Background(), "nobody", true)
	require.ErrorIs(t, err, ErrStudentNotFound)
}
