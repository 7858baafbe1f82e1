package database

import (
	"context"
	"time"

	"inkpress/models"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("blog not found")

type collectionFunc func(ctx context.Context) (*mongo.Collection, error)

// PostRepository is the only writer of post documents.
type PostRepository struct {
	collection collectionFunc
}

func NewPostRepository(conn *Connector) *PostRepository {
	return &PostRepository{
		collection: func(ctx context.Context) (*mongo.Collection, error) {
			return conn.Collection(ctx, PostsCollection)
		},
	}
}

// List returns every post in the store's natural order.
func (r *PostRepository) List(ctx context.Context) ([]models.Post, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	cursor, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "finding posts")
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, errors.Wrap(err, "decoding posts")
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return posts, nil
}

// Get loads one post. Malformed identifiers are reported as ErrNotFound.
func (r *PostRepository) Get(ctx context.Context, id string) (*models.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	var post models.Post
	err = coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "finding post %s", id)
	}
	return &post, nil
}

// Create assigns the identifier and creation date, then inserts the post.
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	post.ID = primitive.NewObjectID()
	post.Date = time.Now().UTC().Truncate(time.Millisecond)

	if _, err := coll.InsertOne(ctx, post); err != nil {
		return errors.Wrap(err, "inserting post")
	}
	return nil
}

// Update sets the non-empty fields of update on the post with id.
func (r *PostRepository) Update(ctx context.Context, id string, update models.PostUpdate) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	set := updateFields(update)
	if len(set) == 0 {
		_, err := r.Get(ctx, id)
		return err
	}

	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	res, err := coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return errors.Wrapf(err, "updating post %s", id)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the post with id. Unknown identifiers are not an error.
func (r *PostRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}

	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	if _, err := coll.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return errors.Wrapf(err, "deleting post %s", id)
	}
	return nil
}

func updateFields(u models.PostUpdate) bson.M {
	set := bson.M{}
	for key, value := range map[string]string{
		"title":       u.Title,
		"description": u.Description,
		"category":    u.Category,
		"author":      u.Author,
		"authorImg":   u.AuthorImg,
		"image":       u.Image,
	} {
		if value != "" {
			set[key] = value
		}
	}
	return set
}
