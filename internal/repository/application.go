// internal/repository/application.go
package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"scholarship-portal/internal/common/errors"
	"scholarship-portal/internal/common/logger"
	"scholarship-portal/internal/models"
)

// maxIDAttempts bounds identifier redraws when a candidate collides with
// an existing record. Collisions over a 90k space are rare enough that
// three draws failing in a row indicates something other than luck.
const maxIDAttempts = 3

// applicationCollection is the slice of *mongo.Collection this repository
// uses, split out so tests can substitute a fake.
type applicationCollection interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
}

// ApplicationRepository persists applications and serves status lookups.
type ApplicationRepository struct {
	collection   applicationCollection
	logger       logger.Logger
	queryTimeout time.Duration
	now          func() time.Time
	randInt      func(n int) int
}

func NewApplicationRepository(collection *mongo.Collection, log logger.Logger, queryTimeout time.Duration) *ApplicationRepository {
	return &ApplicationRepository{
		collection:   collection,
		logger:       log,
		queryTimeout: queryTimeout,
		now:          time.Now,
		randInt:      defaultRandInt,
	}
}

// Create assigns a public identifier and persists the application. The
// identifier is drawn at random; if the unique index reports a collision
// the insert is retried with a fresh draw, up to maxIDAttempts. Every
// other failure is translated onto the stable taxonomy and returned as-is.
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application, audit models.AuditMeta) (*models.Application, error) {
	now := r.now().UTC()
	app.Status = models.StatusPending
	app.SubmittedAt = now
	app.LastUpdated = now
	audit.CreatedAt = now
	app.Audit = audit

	var lastErr error
	for attempt := 1; attempt <= maxIDAttempts; attempt++ {
		app.ApplicationID = newApplicationID(now, r.randInt)

		if err := checkGuard(app); err != nil {
			return nil, errors.NewDocumentValidationFailedError(err)
		}

		insertCtx, cancel := context.WithTimeout(ctx, r.queryTimeout)
		_, err := r.collection.InsertOne(insertCtx, app)
		cancel()
		if err == nil {
			r.logger.Info("application persisted", map[string]interface{}{
				"applicationId": app.ApplicationID,
				"attempt":       attempt,
			})
			return app, nil
		}

		stdErr := errors.TranslateStorageError(app.ApplicationID, err)
		if stdErr.Code != errors.ErrCodeDuplicateApplicationID {
			return nil, stdErr
		}

		r.logger.Warn("application id collision, redrawing", map[string]interface{}{
			"applicationId": app.ApplicationID,
			"attempt":       attempt,
		})
		lastErr = stdErr
	}

	return nil, lastErr
}

// statusFilter matches a record only when the identifier and one of the
// three registered contact numbers both line up. The contact acts as a
// shared secret so an identifier alone cannot leak status.
func statusFilter(applicationID, contact string) bson.D {
	return bson.D{
		{Key: "applicationId", Value: applicationID},
		{Key: "$or", Value: bson.A{
			bson.D{{Key: "studentMobile", Value: contact}},
			bson.D{{Key: "fatherMobile", Value: contact}},
			bson.D{{Key: "motherMobile", Value: contact}},
		}},
	}
}

// statusProjection whitelists the fields a status response may carry.
// Everything else, contact and financial data included, stays behind.
func statusProjection() bson.D {
	return bson.D{
		{Key: "_id", Value: 0},
		{Key: "applicationId", Value: 1},
		{Key: "firstName", Value: 1},
		{Key: "lastName", Value: 1},
		{Key: "status", Value: 1},
		{Key: "programType", Value: 1},
		{Key: "firstPreference", Value: 1},
		{Key: "submittedAt", Value: 1},
		{Key: "lastUpdated", Value: 1},
		{Key: "statusDetails", Value: 1},
		{Key: "expectedResponseDate", Value: 1},
	}
}

// FindStatus looks up the safe status projection for an identifier plus
// contact pair. A missing record and a contact mismatch are the same
// NOT_FOUND from the caller's point of view.
func (r *ApplicationRepository) FindStatus(ctx context.Context, applicationID, contact string) (*models.StatusRecord, error) {
	queryCtx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	var record models.StatusRecord
	err := r.collection.FindOne(
		queryCtx,
		statusFilter(applicationID, contact),
		options.FindOne().SetProjection(statusProjection()),
	).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.NewNotFoundError("no record for id/contact pair")
		}
		return nil, errors.TranslateStorageError(applicationID, err)
	}

	record.Name = (&models.Application{FirstName: record.FirstName, LastName: record.LastName}).FullName()
	record.FirstName = ""
	record.LastName = ""
	return &record, nil
}
