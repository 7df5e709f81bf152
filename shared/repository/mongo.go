package repository

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"slices"

	"hotel/infras/mongo"
	"hotel/infras/otel"
	"hotel/shared/constant"
	"hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoPrimaryField = "_id"

// MongoRepository is the document backed Store. One collection per entity,
// the primary column is stored as _id.
type MongoRepository[T any] struct {
	db            *mongo.Connection
	otel          otel.Otel
	collection    string
	entitas       string
	primaryColumn string
	fields        []string
}

func NewMongoRepository[T any](entitasName, collection, primaryColumn string, db *mongo.Connection, otl otel.Otel) MongoRepository[T] {
	var zero T

	return MongoRepository[T]{
		db:            db,
		otel:          otl,
		collection:    collection,
		entitas:       entitasName,
		primaryColumn: primaryColumn,
		fields:        getColumns(reflect.TypeOf(zero)),
	}
}

func (repo *MongoRepository[T]) coll() *mongodriver.Collection {
	return repo.db.Collection(repo.collection)
}

func (repo *MongoRepository[T]) spanName(op string) string {
	return fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.entitas, op)
}

func (repo *MongoRepository[T]) field(name string) string {
	if name == repo.primaryColumn {
		return mongoPrimaryField
	}

	return name
}

func (repo *MongoRepository[T]) filter(group dto.FilterGroup) bson.D {
	return BuildMongoFilter(group, repo.primaryColumn)
}

func (repo *MongoRepository[T]) Insert(ctx context.Context, model T) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("Insert"))
	defer scope.End()

	if _, err := repo.coll().InsertOne(ctx, model); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("collection", repo.collection).Msg("failed to insert document")

		return fmt.Errorf("failed to insert data (%s): %w", repo.entitas, duplicateOr(repo.entitas, err))
	}

	return nil
}

func (repo *MongoRepository[T]) InsertBulk(ctx context.Context, models []T) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("InsertBulk"))
	defer scope.End()

	if len(models) == 0 {
		return nil
	}

	docs := make([]any, len(models))
	for i := range models {
		docs[i] = models[i]
	}

	if _, err := repo.coll().InsertMany(ctx, docs); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("collection", repo.collection).Msg("failed to insert documents")

		return fmt.Errorf("failed to bulk insert data (%s): %w", repo.entitas, duplicateOr(repo.entitas, err))
	}

	return nil
}

func (repo *MongoRepository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("Get"))
	defer scope.End()

	var model T

	opts := options.FindOne()
	if projection := repo.projection(columns); projection != nil {
		opts.SetProjection(projection)
	}

	err := repo.coll().FindOne(ctx, repo.filter(filter), opts).Decode(&model)
	if errors.Is(err, mongodriver.ErrNoDocuments) {
		return model, nil
	}

	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("collection", repo.collection).Msg("failed to find document")

		return model, fmt.Errorf("failed to get data (%s): %w", repo.entitas, err)
	}

	return model, nil
}

func (repo *MongoRepository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("GetAll"))
	defer scope.End()

	models := []T{}

	opts := options.Find()
	if params.SortBy != "" {
		dir := -1
		if sortDirection(params.SortDir) == dto.SortDirAsc {
			dir = 1
		}

		opts.SetSort(bson.D{{Key: repo.field(params.SortBy), Value: dir}})
	}

	if params.Limit > 0 {
		opts.SetLimit(int64(params.Limit))

		opts.SetSkip(int64(params.Offset()))
	}

	if projection := repo.projection(columns); projection != nil {
		opts.SetProjection(projection)
	}

	cursor, err := repo.coll().Find(ctx, repo.filter(filter), opts)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("collection", repo.collection).Msg("failed to find documents")

		return models, fmt.Errorf("failed to get all data (%s): %w", repo.entitas, err)
	}

	if err = cursor.All(ctx, &models); err != nil {
		scope.TraceError(err)

		return models, fmt.Errorf("failed to decode data (%s): %w", repo.entitas, err)
	}

	return models, nil
}

func (repo *MongoRepository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("Exist"))
	defer scope.End()

	query := repo.filter(filter)
	if len(query) == 0 {
		return false, errRequiredFilter
	}

	count, err := repo.coll().CountDocuments(ctx, query, options.Count().SetLimit(1))
	if err != nil {
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check exist data (%s): %w", repo.entitas, err)
	}

	return count > 0, nil
}

func (repo *MongoRepository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("Count"))
	defer scope.End()

	count, err := repo.coll().CountDocuments(ctx, repo.filter(filter))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("collection", repo.collection).Msg("failed to count documents")

		return 0, fmt.Errorf("failed to count data (%s): %w", repo.entitas, err)
	}

	return int(count), nil
}

func (repo *MongoRepository[T]) Sum(ctx context.Context, column string, filter dto.FilterGroup) (float64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("Sum"))
	defer scope.End()

	if !slices.Contains(repo.fields, column) {
		return 0, fmt.Errorf("unknown field %q (%s)", column, repo.entitas)
	}

	pipeline := mongodriver.Pipeline{
		{{Key: "$match", Value: repo.filter(filter)}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$" + repo.field(column)}}},
		}}},
	}

	cursor, err := repo.coll().Aggregate(ctx, pipeline)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("collection", repo.collection).Msg("failed to aggregate documents")

		return 0, fmt.Errorf("failed to sum data (%s): %w", repo.entitas, err)
	}

	var result []struct {
		Total float64 `bson:"total"`
	}

	if err = cursor.All(ctx, &result); err != nil {
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to decode sum (%s): %w", repo.entitas, err)
	}

	if len(result) == 0 {
		return 0, nil
	}

	return result[0].Total, nil
}

func (repo *MongoRepository[T]) Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("Update"))
	defer scope.End()

	query := repo.filter(filter)
	if len(query) == 0 {
		return errRequiredFilter
	}

	set := bson.M{}
	for key, value := range mod {
		set[repo.field(key)] = value
	}

	if _, err := repo.coll().UpdateMany(ctx, query, bson.M{"$set": set}); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("collection", repo.collection).Msg("failed to update documents")

		return fmt.Errorf("failed to update data (%s): %w", repo.entitas, err)
	}

	return nil
}

func (repo *MongoRepository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("Delete"))
	defer scope.End()

	query := repo.filter(filter)
	if len(query) == 0 {
		return errRequiredFilter
	}

	if _, err := repo.coll().DeleteMany(ctx, query); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("collection", repo.collection).Msg("failed to delete documents")

		return fmt.Errorf("failed to delete data (%s): %w", repo.entitas, err)
	}

	return nil
}

func (repo *MongoRepository[T]) projection(columns []string) bson.D {
	if len(columns) == 0 {
		return nil
	}

	projection := bson.D{}
	for _, col := range columns {
		projection = append(projection, bson.E{Key: repo.field(col), Value: 1})
	}

	return projection
}

// BuildMongoFilter translates a FilterGroup into a BSON query document.
// Plain SQL filters have no document equivalent and are dropped.
func BuildMongoFilter(group dto.FilterGroup, primaryColumn string) bson.D {
	clauses := make(bson.A, 0, len(group.Filters))

	for _, item := range group.Filters {
		switch f := item.(type) {
		case dto.Filter:
			if clause := mongoClause(f, primaryColumn); clause != nil {
				clauses = append(clauses, clause)
			}
		case dto.FilterGroup:
			if clause := BuildMongoFilter(f, primaryColumn); len(clause) > 0 {
				clauses = append(clauses, clause)
			}
		}
	}

	switch len(clauses) {
	case 0:
		return bson.D{}
	case 1:
		return clauses[0].(bson.D) //nolint:forcetypeassert
	}

	if group.Operator == dto.FilterGroupOperatorOr {
		return bson.D{{Key: "$or", Value: clauses}}
	}

	return bson.D{{Key: "$and", Value: clauses}}
}

func mongoClause(f dto.Filter, primaryColumn string) bson.D {
	field := f.Field
	if field == primaryColumn {
		field = mongoPrimaryField
	}

	switch f.Operator {
	case dto.FilterOperatorEq:
		return bson.D{{Key: field, Value: f.Value}}
	case dto.FilterOperatorLike:
		pattern := regexp.QuoteMeta(fmt.Sprint(f.Value))

		return bson.D{{Key: field, Value: primitive.Regex{Pattern: pattern, Options: "i"}}}
	case dto.FilterOperatorIn:
		return bson.D{{Key: field, Value: bson.D{{Key: "$in", Value: f.Value}}}}
	case dto.FilterOperatorNotEq:
		return bson.D{{Key: field, Value: bson.D{{Key: "$ne", Value: f.Value}}}}
	case dto.FilterOperatorLessEq:
		return bson.D{{Key: field, Value: bson.D{{Key: "$lte", Value: f.Value}}}}
	case dto.FilterOperatorGreaterEq:
		return bson.D{{Key: field, Value: bson.D{{Key: "$gte", Value: f.Value}}}}
	case dto.FilterIsNull:
		return bson.D{{Key: field, Value: nil}}
	case dto.FilterIsNotNull:
		return bson.D{{Key: field, Value: bson.D{{Key: "$ne", Value: nil}}}}
	default:
		return nil
	}
}

func duplicateOr(entity string, err error) error {
	if mongodriver.IsDuplicateKeyError(err) {
		return failure.Conflict(entity + " already exists")
	}

	return err
}
