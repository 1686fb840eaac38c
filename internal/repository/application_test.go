// internal/repository/application_test.go
package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"scholarship-portal/internal/common/errors"
	"scholarship-portal/internal/common/logger"
	"scholarship-portal/internal/models"
)

type fakeCollection struct {
	inserts    []interface{}
	insertErrs []error
	findResult *mongo.SingleResult
	lastFilter interface{}
}

func (f *fakeCollection) InsertOne(_ context.Context, document interface{}, _ ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	f.inserts = append(f.inserts, document)
	if len(f.insertErrs) > 0 {
		err := f.insertErrs[0]
		f.insertErrs = f.insertErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	return &mongo.InsertOneResult{}, nil
}

func (f *fakeCollection) FindOne(_ context.Context, filter interface{}, _ ...*options.FindOneOptions) *mongo.SingleResult {
	f.lastFilter = filter
	return f.findResult
}

func duplicateKeyErr() error {
	return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
}

func newTestRepository(coll applicationCollection) *ApplicationRepository {
	return &ApplicationRepository{
		collection:   coll,
		logger:       logger.NewNoOpLogger(),
		queryTimeout: time.Second,
		now:          func() time.Time { return time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC) },
		randInt:      defaultRandInt,
	}
}

func validApplication() *models.Application {
	return &models.Application{
		FirstName:          "Ravi",
		LastName:           "Kumar",
		StudentMobile:      "+91 9876543210",
		FatherMobile:       "+91 9876543211",
		MotherMobile:       "+91 9876543212",
		ProgramType:        "Undergraduate Degree",
		FirstPreference:    "Computer Engineering",
		StudentDeclaration: true,
		ParentDeclaration:  true,
	}
}

func TestApplicationIDFormat(t *testing.T) {
	now := time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)

	id := newApplicationID(now, func(n int) int { return 0 })
	assert.Equal(t, "IAF-2026-10000", id)

	id = newApplicationID(now, func(n int) int { return n - 1 })
	assert.Equal(t, "IAF-2026-99999", id)

	for i := 0; i < 50; i++ {
		id := newApplicationID(now, defaultRandInt)
		assert.True(t, ValidApplicationID(id), "generated id %q must match the public format", id)
	}
}

func TestValidApplicationID(t *testing.T) {
	assert.True(t, ValidApplicationID("IAF-2026-12345"))
	assert.False(t, ValidApplicationID("IAF-2026-1234"))
	assert.False(t, ValidApplicationID("IAF-26-12345"))
	assert.False(t, ValidApplicationID("iaf-2026-12345"))
	assert.False(t, ValidApplicationID("IAF-2026-12345 "))
	assert.False(t, ValidApplicationID(""))
}

func TestCreatePersistsPendingApplication(t *testing.T) {
	coll := &fakeCollection{}
	repo := newTestRepository(coll)

	created, err := repo.Create(context.Background(), validApplication(), models.AuditMeta{
		SubmittedIP: "203.0.113.9",
		TraceID:     "trace-1",
	})

	require.NoError(t, err)
	require.Len(t, coll.inserts, 1)
	assert.True(t, ValidApplicationID(created.ApplicationID))
	assert.Equal(t, models.StatusPending, created.Status)
	assert.Equal(t, created.SubmittedAt, created.LastUpdated)
	assert.Equal(t, "203.0.113.9", created.Audit.SubmittedIP)
	assert.False(t, created.Audit.CreatedAt.IsZero())
}

func TestCreateRedrawsOnIDCollision(t *testing.T) {
	coll := &fakeCollection{insertErrs: []error{duplicateKeyErr(), duplicateKeyErr(), nil}}
	repo := newTestRepository(coll)
	serials := []int{0, 0, 1}
	repo.randInt = func(n int) int {
		v := serials[0]
		serials = serials[1:]
		return v
	}

	created, err := repo.Create(context.Background(), validApplication(), models.AuditMeta{})

	require.NoError(t, err)
	assert.Len(t, coll.inserts, 3)
	assert.Equal(t, "IAF-2026-10001", created.ApplicationID)
}

func TestCreateGivesUpAfterBoundedRedraws(t *testing.T) {
	coll := &fakeCollection{insertErrs: []error{duplicateKeyErr(), duplicateKeyErr(), duplicateKeyErr()}}
	repo := newTestRepository(coll)

	_, err := repo.Create(context.Background(), validApplication(), models.AuditMeta{})

	require.Error(t, err)
	assert.Len(t, coll.inserts, maxIDAttempts)
	var stdErr *errors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, errors.ErrCodeDuplicateApplicationID, stdErr.Code)
}

func TestCreateStopsOnNonDuplicateFailure(t *testing.T) {
	coll := &fakeCollection{insertErrs: []error{context.DeadlineExceeded}}
	repo := newTestRepository(coll)

	_, err := repo.Create(context.Background(), validApplication(), models.AuditMeta{})

	require.Error(t, err)
	assert.Len(t, coll.inserts, 1, "only duplicates justify a redraw")
	var stdErr *errors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, errors.ErrCodeDatabaseTimeout, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestCreateGuardBlocksWithheldConsent(t *testing.T) {
	coll := &fakeCollection{}
	repo := newTestRepository(coll)
	app := validApplication()
	app.ParentDeclaration = false

	_, err := repo.Create(context.Background(), app, models.AuditMeta{})

	require.Error(t, err)
	assert.Empty(t, coll.inserts, "a guarded document never reaches the store")
	var stdErr *errors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, errors.ErrCodeDocumentValidationFailed, stdErr.Code)
}

func TestStatusFilterRequiresContactMatch(t *testing.T) {
	filter := statusFilter("IAF-2026-12345", "+91 9876543210")

	require.Len(t, filter, 2)
	assert.Equal(t, "applicationId", filter[0].Key)
	assert.Equal(t, "$or", filter[1].Key)

	or, ok := filter[1].Value.(bson.A)
	require.True(t, ok)
	require.Len(t, or, 3)
	fields := make([]string, 0, 3)
	for _, clause := range or {
		d := clause.(bson.D)
		fields = append(fields, d[0].Key)
		assert.Equal(t, "+91 9876543210", d[0].Value)
	}
	assert.ElementsMatch(t, []string{"studentMobile", "fatherMobile", "motherMobile"}, fields)
}

func TestStatusProjectionExcludesSensitiveFields(t *testing.T) {
	projection := statusProjection()

	included := make(map[string]bool)
	for _, field := range projection {
		if v, ok := field.Value.(int); ok && v == 1 {
			included[field.Key] = true
		}
	}

	for _, sensitive := range []string{
		"studentMobile", "fatherMobile", "motherMobile",
		"studentEmail", "parentEmail",
		"fatherIncome", "motherIncome",
		"addressLine1", "pinCode", "documents", "audit",
	} {
		assert.False(t, included[sensitive], "%s must never be projected", sensitive)
	}
	assert.True(t, included["applicationId"])
	assert.True(t, included["status"])
}

func TestFindStatusComposesName(t *testing.T) {
	doc := bson.D{
		{Key: "applicationId", Value: "IAF-2026-12345"},
		{Key: "firstName", Value: "Ravi"},
		{Key: "lastName", Value: "Kumar"},
		{Key: "status", Value: "Pending"},
		{Key: "programType", Value: "Undergraduate Degree"},
		{Key: "firstPreference", Value: "Computer Engineering"},
	}
	coll := &fakeCollection{findResult: mongo.NewSingleResultFromDocument(doc, nil, nil)}
	repo := newTestRepository(coll)

	record, err := repo.FindStatus(context.Background(), "IAF-2026-12345", "+91 9876543210")

	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", record.Name)
	assert.Empty(t, record.FirstName, "raw name parts are cleared after composition")
	assert.Empty(t, record.LastName)
	assert.Equal(t, "Pending", record.Status)
}

func TestFindStatusMapsMissingRecordToNotFound(t *testing.T) {
	coll := &fakeCollection{
		findResult: mongo.NewSingleResultFromDocument(bson.D{}, mongo.ErrNoDocuments, nil),
	}
	repo := newTestRepository(coll)

	_, err := repo.FindStatus(context.Background(), "IAF-2026-99999", "+91 9876543210")

	require.Error(t, err)
	var stdErr *errors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, errors.ErrCodeNotFound, stdErr.Code)
	assert.Equal(t, errors.MsgNotFound, stdErr.Message)
}
