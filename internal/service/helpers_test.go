package service

import (
	"context"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/talentbridge/talentbridge-go-api/internal/models"
	"github.com/talentbridge/talentbridge-go-api/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

type recordingPublisher struct {
	events []LifecycleEvent
}

func (r *recordingPublisher) Publish(_ context.Context, event LifecycleEvent) {
	r.events = append(r.events, event)
}

func (r *recordingPublisher) kinds() []string {
	kinds := make([]string, 0, len(r.events))
	for _, event := range r.events {
		kinds = append(kinds, event.Kind)
	}
	return kinds
}

type recordingMail struct {
	sent []Mail
	err  error
}

func (r *recordingMail) Deliver(_ context.Context, mail Mail) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, mail)
	return nil
}

type memoryBusinessRepo struct {
	businesses map[uint]models.Business
	nextID     uint
}

func newMemoryBusinessRepo() *memoryBusinessRepo {
	return &memoryBusinessRepo{businesses: make(map[uint]models.Business), nextID: 1}
}

func (m *memoryBusinessRepo) Create(_ context.Context, business *models.Business) error {
	business.ID = m.nextID
	business.CreatedAt = time.Now()
	business.UpdatedAt = time.Now()
	m.businesses[m.nextID] = *business
	m.nextID++
	return nil
}

func (m *memoryBusinessRepo) GetByID(_ context.Context, id uint) (models.Business, error) {
	business, ok := m.businesses[id]
	if !ok {
		return models.Business{}, gorm.ErrRecordNotFound
	}
	return business, nil
}

func (m *memoryBusinessRepo) GetByPrincipal(_ context.Context, principalID string) (models.Business, error) {
	for _, business := range m.businesses {
		if business.PrincipalID == principalID {
			return business, nil
		}
	}
	return models.Business{}, gorm.ErrRecordNotFound
}

func (m *memoryBusinessRepo) Update(_ context.Context, business *models.Business) error {
	if _, ok := m.businesses[business.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	business.UpdatedAt = time.Now()
	m.businesses[business.ID] = *business
	return nil
}

func (m *memoryBusinessRepo) TransitionApproval(_ context.Context, id uint, from, to string) (bool, error) {
	business, ok := m.businesses[id]
	if !ok || business.ApprovalStatus != from {
		return false, nil
	}
	business.ApprovalStatus = to
	m.businesses[id] = business
	return true, nil
}

func (m *memoryBusinessRepo) List(_ context.Context, filter repository.BusinessFilter) ([]models.Business, int64, error) {
	filtered := make([]models.Business, 0, len(m.businesses))
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	for _, business := range m.businesses {
		if filter.ApprovalStatus != "" && business.ApprovalStatus != filter.ApprovalStatus {
			continue
		}
		if search != "" {
			name := strings.ToLower(business.CompanyName)
			industry := strings.ToLower(business.Industry)
			if !strings.Contains(name, search) && !strings.Contains(industry, search) {
				continue
			}
		}
		filtered = append(filtered, business)
	}

	sort.Slice(filtered, func(i, j int) bool { return filtered[i].ID < filtered[j].ID })

	total := int64(len(filtered))
	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		start := (page - 1) * filter.PageSize
		if start >= len(filtered) {
			return []models.Business{}, total, nil
		}
		end := start + filter.PageSize
		if end > len(filtered) {
			end = len(filtered)
		}
		filtered = filtered[start:end]
	}

	return filtered, total, nil
}

func (m *memoryBusinessRepo) ListByIDs(_ context.Context, ids []uint) ([]models.Business, error) {
	results := make([]models.Business, 0, len(ids))
	for _, id := range ids {
		if business, ok := m.businesses[id]; ok {
			results = append(results, business)
		}
	}
	return results, nil
}

type memoryStudentRepo struct {
	students map[uint]models.Student
	nextID   uint
}

func newMemoryStudentRepo() *memoryStudentRepo {
	return &memoryStudentRepo{students: make(map[uint]models.Student), nextID: 1}
}

func (m *memoryStudentRepo) Create(_ context.Context, student *models.Student) error {
	student.ID = m.nextID
	student.CreatedAt = time.Now()
	student.UpdatedAt = time.Now()
	m.students[m.nextID] = *student
	m.nextID++
	return nil
}

func (m *memoryStudentRepo) GetByID(_ context.Context, id uint) (models.Student, error) {
	student, ok := m.students[id]
	if !ok {
		return models.Student{}, gorm.ErrRecordNotFound
	}
	return student, nil
}

func (m *memoryStudentRepo) GetByPrincipal(_ context.Context, principalID string) (models.Student, error) {
	for _, student := range m.students {
		if student.PrincipalID == principalID {
			return student, nil
		}
	}
	return models.Student{}, gorm.ErrRecordNotFound
}

func (m *memoryStudentRepo) Update(_ context.Context, student *models.Student) error {
	if _, ok := m.students[student.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	student.UpdatedAt = time.Now()
	m.students[student.ID] = *student
	return nil
}

func (m *memoryStudentRepo) SetOpenToMatching(_ context.Context, id uint, open bool) error {
	student, ok := m.students[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	student.OpenToMatching = open
	m.students[id] = student
	return nil
}

func (m *memoryStudentRepo) ListByIDs(_ context.Context, ids []uint) ([]models.Student, error) {
	results := make([]models.Student, 0, len(ids))
	for _, id := range ids {
		if student, ok := m.students[id]; ok {
			results = append(results, student)
		}
	}
	return results, nil
}

type memoryOpportunityRepo struct {
	opportunities map[uint]models.Opportunity
	businesses    *memoryBusinessRepo
	nextID        uint
}

func newMemoryOpportunityRepo(businesses *memoryBusinessRepo) *memoryOpportunityRepo {
	return &memoryOpportunityRepo{
		opportunities: make(map[uint]models.Opportunity),
		businesses:    businesses,
		nextID:        1,
	}
}

func (m *memoryOpportunityRepo) Create(_ context.Context, opportunity *models.Opportunity) error {
	opportunity.ID = m.nextID
	opportunity.CreatedAt = time.Now()
	opportunity.UpdatedAt = time.Now()
	m.opportunities[m.nextID] = *opportunity
	m.nextID++
	return nil
}

func (m *memoryOpportunityRepo) GetByID(_ context.Context, id uint) (models.Opportunity, error) {
	opportunity, ok := m.opportunities[id]
	if !ok {
		return models.Opportunity{}, gorm.ErrRecordNotFound
	}
	return opportunity, nil
}

func (m *memoryOpportunityRepo) Update(_ context.Context, opportunity *models.Opportunity) error {
	if _, ok := m.opportunities[opportunity.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	opportunity.UpdatedAt = time.Now()
	m.opportunities[opportunity.ID] = *opportunity
	return nil
}

func (m *memoryOpportunityRepo) Close(_ context.Context, id uint) error {
	opportunity, ok := m.opportunities[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	opportunity.Status = models.OpportunityStatusClosed
	m.opportunities[id] = opportunity
	return nil
}

func (m *memoryOpportunityRepo) ListPublic(ctx context.Context, filter repository.OpportunityFilter) ([]models.Opportunity, int64, error) {
	filtered := make([]models.Opportunity, 0, len(m.opportunities))
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	for _, opportunity := range m.opportunities {
		if opportunity.Status != models.OpportunityStatusActive {
			continue
		}
		if m.businesses != nil {
			business, err := m.businesses.GetByID(ctx, opportunity.BusinessID)
			if err != nil || !business.IsApproved() {
				continue
			}
		}
		if search != "" {
			title := strings.ToLower(opportunity.Title)
			desc := strings.ToLower(opportunity.Description)
			if !strings.Contains(title, search) && !strings.Contains(desc, search) {
				continue
			}
		}
		filtered = append(filtered, opportunity)
	}

	sort.Slice(filtered, func(i, j int) bool { return filtered[i].ID < filtered[j].ID })

	total := int64(len(filtered))
	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		start := (page - 1) * filter.PageSize
		if start >= len(filtered) {
			return []models.Opportunity{}, total, nil
		}
		end := start + filter.PageSize
		if end > len(filtered) {
			end = len(filtered)
		}
		filtered = filtered[start:end]
	}

	return filtered, total, nil
}

func (m *memoryOpportunityRepo) ListByBusiness(_ context.Context, businessID uint) ([]models.Opportunity, error) {
	var results []models.Opportunity
	for _, opportunity := range m.opportunities {
		if opportunity.BusinessID == businessID {
			results = append(results, opportunity)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}

func (m *memoryOpportunityRepo) IncrementApplicants(_ context.Context, id uint) error {
	opportunity, ok := m.opportunities[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	opportunity.ApplicantCount++
	m.opportunities[id] = opportunity
	return nil
}

type memoryApplicationRepo struct {
	applications map[uint]models.Application
	nextID       uint
}

func newMemoryApplicationRepo() *memoryApplicationRepo {
	return &memoryApplicationRepo{applications: make(map[uint]models.Application), nextID: 1}
}

func (m *memoryApplicationRepo) Create(_ context.Context, application *models.Application) error {
	if application.OpportunityID != nil {
		for _, existing := range m.applications {
			if existing.StudentID == application.StudentID &&
				existing.OpportunityID != nil &&
				*existing.OpportunityID == *application.OpportunityID &&
				existing.Status != models.ApplicationStatusRejected {
				return gorm.ErrDuplicatedKey
			}
		}
	}
	application.ID = m.nextID
	application.CreatedAt = time.Now()
	application.UpdatedAt = time.Now()
	m.applications[m.nextID] = *application
	m.nextID++
	return nil
}

func (m *memoryApplicationRepo) GetByID(_ context.Context, id uint) (models.Application, error) {
	application, ok := m.applications[id]
	if !ok {
		return models.Application{}, gorm.ErrRecordNotFound
	}
	return application, nil
}

func (m *memoryApplicationRepo) TransitionStatus(_ context.Context, id uint, from, to string, acceptedAt *time.Time) (bool, error) {
	application, ok := m.applications[id]
	if !ok || application.Status != from {
		return false, nil
	}
	application.Status = to
	if acceptedAt != nil {
		application.AcceptedAt = acceptedAt
	}
	m.applications[id] = application
	return true, nil
}

func (m *memoryApplicationRepo) ListByStudent(_ context.Context, studentID uint) ([]models.Application, error) {
	var results []models.Application
	for _, application := range m.applications {
		if application.StudentID == studentID {
			results = append(results, application)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}

func (m *memoryApplicationRepo) ListByBusiness(_ context.Context, businessID uint, status string) ([]models.Application, error) {
	var results []models.Application
	for _, application := range m.applications {
		if application.BusinessID != businessID {
			continue
		}
		if status != "" && application.Status != status {
			continue
		}
		results = append(results, application)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}

func (m *memoryApplicationRepo) HasActiveForTarget(_ context.Context, studentID, opportunityID uint) (bool, error) {
	for _, application := range m.applications {
		if application.StudentID == studentID &&
			application.OpportunityID != nil &&
			*application.OpportunityID == opportunityID &&
			application.Status != models.ApplicationStatusRejected {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryApplicationRepo) CountCompletedByBusiness(_ context.Context, businessID uint) (int64, error) {
	var count int64
	for _, application := range m.applications {
		if application.BusinessID == businessID && application.CountsAsCompleted() {
			count++
		}
	}
	return count, nil
}

func (m *memoryApplicationRepo) AcceptedStudentIDs(_ context.Context, businessID uint) ([]uint, error) {
	seen := make(map[uint]bool)
	var ids []uint
	for _, application := range m.applications {
		if application.BusinessID == businessID && application.Status == models.ApplicationStatusAccepted && !seen[application.StudentID] {
			seen[application.StudentID] = true
			ids = append(ids, application.StudentID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (m *memoryApplicationRepo) AcceptedBusinessIDs(_ context.Context, studentID uint) ([]uint, error) {
	seen := make(map[uint]bool)
	var ids []uint
	for _, application := range m.applications {
		if application.StudentID == studentID && application.Status == models.ApplicationStatusAccepted && !seen[application.BusinessID] {
			seen[application.BusinessID] = true
			ids = append(ids, application.BusinessID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

type memoryRatingRepo struct {
	ratings map[uint]models.Rating
	nextID  uint
}

func newMemoryRatingRepo() *memoryRatingRepo {
	return &memoryRatingRepo{ratings: make(map[uint]models.Rating), nextID: 1}
}

func (m *memoryRatingRepo) Create(_ context.Context, rating *models.Rating) error {
	for _, existing := range m.ratings {
		if existing.ApplicationID == rating.ApplicationID {
			return gorm.ErrDuplicatedKey
		}
	}
	rating.ID = m.nextID
	rating.CreatedAt = time.Now()
	rating.UpdatedAt = time.Now()
	m.ratings[m.nextID] = *rating
	m.nextID++
	return nil
}

func (m *memoryRatingRepo) GetByApplicationID(_ context.Context, applicationID uint) (models.Rating, error) {
	for _, rating := range m.ratings {
		if rating.ApplicationID == applicationID {
			return rating, nil
		}
	}
	return models.Rating{}, gorm.ErrRecordNotFound
}

func (m *memoryRatingRepo) ListByStudent(_ context.Context, studentID uint) ([]models.Rating, error) {
	var results []models.Rating
	for _, rating := range m.ratings {
		if rating.StudentID == studentID {
			results = append(results, rating)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}
