package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"book-catalog/internal/domains/book/model"
)

// bookDocument is the stored shape of a book in the collection.
type bookDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	Author        string             `bson:"author"`
	PublishedYear int                `bson:"publishedYear"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}

func (d bookDocument) toEntity() model.Book {
	return model.Book{
		ID:            d.ID.Hex(),
		Title:         d.Title,
		Author:        d.Author,
		PublishedYear: d.PublishedYear,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

type mongoRepository struct {
	coll *mongo.Collection
}

// NewMongoRepository creates a book repository over a document collection.
func NewMongoRepository(coll *mongo.Collection) RepositoryInterface {
	return &mongoRepository{coll: coll}
}

// now is truncated to BSON date precision so the returned record equals the stored one.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, model.ErrInvalidID
	}
	return oid, nil
}

func (r *mongoRepository) Create(ctx context.Context, book *model.Book) (*model.Book, error) {
	ts := now()
	doc := bookDocument{
		Title:         book.Title,
		Author:        book.Author,
		PublishedYear: book.PublishedYear,
		CreatedAt:     ts,
		UpdatedAt:     ts,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, model.WrapStorage("create book", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, model.WrapStorage("create book", errors.New("unexpected inserted id type"))
	}
	doc.ID = oid

	created := doc.toEntity()
	return &created, nil
}

func (r *mongoRepository) FindAll(ctx context.Context) ([]model.Book, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "createdAt", Value: 1},
		{Key: "_id", Value: 1},
	})

	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, model.WrapStorage("list books", err)
	}
	defer cursor.Close(ctx)

	books := make([]model.Book, 0)
	for cursor.Next(ctx) {
		var doc bookDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, model.WrapStorage("decode book", err)
		}
		books = append(books, doc.toEntity())
	}
	if err := cursor.Err(); err != nil {
		return nil, model.WrapStorage("list books", err)
	}
	return books, nil
}

func (r *mongoRepository) FindByID(ctx context.Context, id string) (*model.Book, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var doc bookDocument
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrBookNotFound
		}
		return nil, model.WrapStorage("get book by id", err)
	}

	b := doc.toEntity()
	return &b, nil
}

func (r *mongoRepository) UpdateByID(ctx context.Context, id string, fields model.BookFields) (*model.Book, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"title":         fields.Title,
		"author":        fields.Author,
		"publishedYear": fields.PublishedYear,
		"updatedAt":     now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc bookDocument
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrBookNotFound
		}
		return nil, model.WrapStorage("update book", err)
	}

	b := doc.toEntity()
	return &b, nil
}

func (r *mongoRepository) DeleteByID(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return model.WrapStorage("delete book", err)
	}
	if res.DeletedCount == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

// CanonicalID returns the lowercase hex of the ObjectID.
func (r *mongoRepository) CanonicalID(id string) (string, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return "", err
	}
	return oid.Hex(), nil
}

func (r *mongoRepository) Ping(ctx context.Context) error {
	if err := r.coll.Database().Client().Ping(ctx, readpref.Primary()); err != nil {
		return model.WrapStorage("ping", err)
	}
	return nil
}
