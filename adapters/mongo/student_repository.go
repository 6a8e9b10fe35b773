package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/schoolyard/roster/server/domain/entities"
	"github.com/schoolyard/roster/server/domain/repositories"
)

// StudentRepository implements repositories.StudentRepository using MongoDB.
type StudentRepository struct {
	students collection
	classes  repositories.ClassRepository
	logger   *zap.Logger
}

// NewStudentRepository creates a new MongoDB student repository. Class
// membership lookups go through the provided class repository.
func NewStudentRepository(db *mongodriver.Database, classes repositories.ClassRepository, logger *zap.Logger) *StudentRepository {
	return &StudentRepository{
		students: wrapCollection(db.Collection("students")),
		classes:  classes,
		logger:   logger,
	}
}

func newStudentRepository(students collection, classes repositories.ClassRepository, logger *zap.Logger) *StudentRepository {
	return &StudentRepository{students: students, classes: classes, logger: logger}
}

// AddStudents persists the given students in a single batch insert. The
// write is all-or-nothing from this layer's point of view: the driver
// error is returned unmodified, without retry or partial-success
// handling.
func (r *StudentRepository) AddStudents(ctx context.Context, students []entities.Student) ([]entities.Student, error) {
	if len(students) == 0 {
		return nil, nil
	}

	// Work on a copy so the caller's batch is left untouched.
	created := make([]entities.Student, len(students))
	copy(created, students)

	docs := make([]interface{}, len(created))
	for i, student := range created {
		docs[i] = student
	}

	result, err := r.students.InsertMany(ctx, docs)
	if err != nil {
		return nil, err
	}

	// Write the generated ids back onto the returned records.
	for i, inserted := range result.InsertedIDs {
		if i >= len(created) {
			break
		}
		if oid, ok := inserted.(primitive.ObjectID); ok {
			created[i].ID = oid
		}
	}

	r.logger.Info("Students created", zap.Int("count", len(created)))

	return created, nil
}

// GetStudents returns every student in the collection. An empty
// collection yields an empty result, not an error.
func (r *StudentRepository) GetStudents(ctx context.Context) ([]entities.Student, error) {
	return r.findStudents(ctx, bson.M{})
}

// SearchByID returns the student with the given identifier, or nil when
// none exists. A malformed identifier fails before the lookup is issued.
func (r *StudentRepository) SearchByID(ctx context.Context, id string) (*entities.Student, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: student id %q", entities.ErrInvalidIdentifier, id)
	}

	var student entities.Student
	if err := r.students.FindOne(ctx, bson.M{"_id": objectID}).Decode(&student); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	return &student, nil
}

// SearchByName returns students matching every whitespace-separated
// token of name as a case-insensitive substring of the first or last
// name. A token may match either field independently of the others.
// Blank input yields a single empty token which matches every student;
// that match-all behavior is intended.
func (r *StudentRepository) SearchByName(ctx context.Context, name string) ([]entities.Student, error) {
	return r.findStudents(ctx, buildNameFilter(name))
}

// SearchByClass returns the students enrolled in the given class. A
// class that does not exist and a class with no members both yield a
// nil result; callers cannot distinguish the two.
func (r *StudentRepository) SearchByClass(ctx context.Context, classID string) ([]entities.Student, error) {
	class, err := r.classes.FindByID(ctx, classID)
	if err != nil {
		return nil, err
	}
	if class == nil || len(class.StudentIDs) == 0 {
		return nil, nil
	}

	return r.findStudents(ctx, buildMemberFilter(class.StudentIDs))
}

func (r *StudentRepository) findStudents(ctx context.Context, filter bson.M) ([]entities.Student, error) {
	cur, err := r.students.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var students []entities.Student
	for cur.Next(ctx) {
		var student entities.Student
		if err := cur.Decode(&student); err != nil {
			return nil, err
		}
		students = append(students, student)
	}
	// A mid-iteration store failure must surface, not truncate the
	// result set.
	if err := cur.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// buildNameFilter turns a free-form name query into a Mongo filter:
// each token must match first_name or last_name as a case-insensitive
// substring, and all tokens must match the same document.
func buildNameFilter(name string) bson.M {
	tokens := strings.Fields(name)
	if len(tokens) == 0 {
		// Blank input degenerates to one empty token, which every
		// name contains.
		tokens = []string{""}
	}

	clauses := make([]bson.M, 0, len(tokens))
	for _, token := range tokens {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(token), Options: "i"}
		clauses = append(clauses, bson.M{"$or": []bson.M{
			{"first_name": pattern},
			{"last_name": pattern},
		}})
	}

	if len(clauses) == 1 {
		return clauses[0]
	}
	return bson.M{"$and": clauses}
}

func buildMemberFilter(studentIDs []primitive.ObjectID) bson.M {
	return bson.M{"_id": bson.M{"$in": studentIDs}}
}
