package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talentbridge/talentbridge-go-api/internal/models"
)

func TestSeedDisabled(t *testing.T) {
	svc := NewSeedService(newMemoryBusinessRepo(), newMemoryStudentRepo(), false, "token", testLogger())

	_, err := svc.SeedBusinesses(context.Background(), "token", nil)
	require.ErrorIs(t, err, ErrSeedDisabled)
}

func TestSeedRejectsBadToken(t *testing.T) {
	svc := NewSeedService(newMemoryBusinessRepo(), newMemoryStudentRepo(), true, "token", testLogger())

	_, err := svc.SeedStudents(context.Background(), "wrong", nil)
	require.ErrorIs(t, err, ErrSeedUnauthorized)

	// An empty configured token never authorizes anything.
	svc = NewSeedService(newMemoryBusinessRepo(), newMemoryStudentRepo(), true, "", testLogger())
	_, err = svc.SeedStudents(context.Background(), "", nil)
	require.ErrorIs(t, err, ErrSeedUnauthorized)
}

func TestSeedBusinessesDefaultsToPending(t *testing.T) {
	businesses := newMemoryBusinessRepo()
	svc := NewSeedService(businesses, newMemoryStudentRepo(), true, "token", testLogger())

	created, err := svc.SeedBusinesses(context.Background(), "token", []models.Business{
		{PrincipalID: "seed-1", CompanyName: "Seeded Co", ContactEmail: "s@seeded.test"},
		{PrincipalID: "seed-2", CompanyName: "Approved Co", ContactEmail: "a@seeded.test", ApprovalStatus: models.ApprovalApproved},
	})
	require.NoError(t, err)
	require.Equal(t, 2, created)

	first, err := businesses.GetByPrincipal(context.Background(), "seed-1")
	require.NoError(t, err)
	require.Equal(t, models.ApprovalPending, first.ApprovalStatus)

	second, err := businesses.GetByPrincipal(context.Background(), "seed-2")
	require.NoError(t, err)
	require.Equal(t, models.ApprovalApproved, second.ApprovalStatus)
}

func TestSeedStudents(t *testing.T) {
	students := newMemoryStudentRepo()
	svc := NewSeedService(newMemoryBusinessRepo(), students, true, "token", testLogger())

	created, err := svc.SeedStudents(context.Background(), "token", []models.Student{
		{PrincipalID: "seed-stu", Name: "Seed Student", Email: "seed@students.test"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, created)

	student, err := students.GetByPrincipal(context.Background(), "seed-stu")
	require.NoError(t, err)
	require.Equal(t, "Seed Student", student.Name)
}
