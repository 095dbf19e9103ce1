package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"loan-manager/domain"
)

const (
	countersCollection  = "counters"
	loanSequenceKey     = "loans"
	mongoConnectTimeout = 10 * time.Second
)

// hide the storage-internal _id from every read
var withoutObjectID = bson.M{"_id": 0}

// MongoLoanStore keeps loans as documents in one collection. Ids come from a
// counter document in a sibling collection incremented with $inc.
type MongoLoanStore struct {
	client   *mongo.Client
	loans    *mongo.Collection
	counters *mongo.Collection
}

// NewMongoLoanStore connects to uri and returns a store over db.collection.
func NewMongoLoanStore(ctx context.Context, uri, db, collection string) (*MongoLoanStore, error) {
	connectCtx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "mongo: connect")
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(err, "mongo: ping")
	}

	s := &MongoLoanStore{
		client:   client,
		loans:    client.Database(db).Collection(collection),
		counters: client.Database(db).Collection(countersCollection),
	}
	if err := s.syncSequence(connectCtx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

// syncSequence raises the counter to the highest stored id so collections
// populated before the counter existed do not receive duplicate ids.
func (s *MongoLoanStore) syncSequence(ctx context.Context) error {
	var last domain.Loan
	err := s.loans.FindOne(ctx, bson.M{},
		options.FindOne().SetSort(bson.D{{Key: "id", Value: -1}}).SetProjection(withoutObjectID),
	).Decode(&last)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "mongo: find highest loan id")
	}

	_, err = s.counters.UpdateOne(ctx,
		bson.M{"_id": loanSequenceKey},
		bson.M{"$max": bson.M{"seq": last.ID}},
		options.Update().SetUpsert(true),
	)
	return errors.Wrap(err, "mongo: sync loan sequence")
}

func (s *MongoLoanStore) NextID(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": loanSequenceKey},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, errors.Wrap(err, "mongo: increment loan sequence")
	}
	return counter.Seq, nil
}

func (s *MongoLoanStore) Insert(ctx context.Context, loan domain.Loan) error {
	_, err := s.loans.InsertOne(ctx, loan)
	return errors.Wrap(err, "mongo: insert loan")
}

func (s *MongoLoanStore) FindAll(ctx context.Context) ([]domain.Loan, error) {
	return s.Find(ctx, domain.LoanFilter{})
}

func (s *MongoLoanStore) FindByID(ctx context.Context, id int64) (domain.Loan, error) {
	var loan domain.Loan
	err := s.loans.FindOne(ctx, bson.M{"id": id},
		options.FindOne().SetProjection(withoutObjectID),
	).Decode(&loan)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Loan{}, domain.ErrLoanNotFound
	}
	if err != nil {
		return domain.Loan{}, errors.Wrap(err, "mongo: find loan")
	}
	return loan, nil
}

func (s *MongoLoanStore) Find(ctx context.Context, filter domain.LoanFilter) ([]domain.Loan, error) {
	cursor, err := s.loans.Find(ctx, filterToBSON(filter),
		options.Find().SetProjection(withoutObjectID),
	)
	if err != nil {
		return nil, errors.Wrap(err, "mongo: find loans")
	}

	loans := []domain.Loan{}
	if err := cursor.All(ctx, &loans); err != nil {
		return nil, errors.Wrap(err, "mongo: decode loans")
	}
	if loans == nil {
		loans = []domain.Loan{}
	}
	return loans, nil
}

func (s *MongoLoanStore) DeleteByID(ctx context.Context, id int64) (int64, error) {
	res, err := s.loans.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return 0, errors.Wrap(err, "mongo: delete loan")
	}
	return res.DeletedCount, nil
}

func (s *MongoLoanStore) Ping(ctx context.Context) error {
	return errors.Wrap(s.client.Ping(ctx, readpref.Primary()), "mongo: ping")
}

func (s *MongoLoanStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func filterToBSON(filter domain.LoanFilter) bson.M {
	query := bson.M{}
	if filter.LoanType != nil {
		query["loan_type"] = *filter.LoanType
	}
	if filter.MaxInterestRate != nil {
		query["interest_rate"] = bson.M{"$lte": *filter.MaxInterestRate}
	}
	return query
}
