package repositories

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MediaRepository is the store/retrieve-by-key contract for binary media
// (avatars, post images). Keys are opaque to everything above it.
type MediaRepository interface {
	Put(ctx context.Context, key string, src io.Reader, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, string, error)
}

// GridFSMediaRepository implements MediaRepository on MongoDB GridFS
type GridFSMediaRepository struct {
	bucket *gridfs.Bucket
}

// NewGridFSMediaRepository creates a new GridFSMediaRepository
func NewGridFSMediaRepository(db *mongo.Database) *GridFSMediaRepository {
	bucket, _ := gridfs.NewBucket(db)
	return &GridFSMediaRepository{bucket: bucket}
}

// Put stores the bytes under key
func (r *GridFSMediaRepository) Put(ctx context.Context, key string, src io.Reader, contentType string) error {
	opts := options.GridFSUpload().SetMetadata(bson.D{{Key: "contentType", Value: contentType}})
	stream, err := r.bucket.OpenUploadStream(key, opts)
	if err != nil {
		return fmt.Errorf("failed to open upload stream: %w", err)
	}
	if _, err := io.Copy(stream, src); err != nil {
		stream.Close()
		return fmt.Errorf("failed to write media: %w", err)
	}
	return stream.Close()
}

// Open retrieves the bytes stored under key along with their content type
func (r *GridFSMediaRepository) Open(ctx context.Context, key string) (io.ReadCloser, string, error) {
	stream, err := r.bucket.OpenDownloadStreamByName(key)
	if err != nil {
		if err == gridfs.ErrFileNotFound {
			return nil, "", fmt.Errorf("media not found")
		}
		return nil, "", err
	}

	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return stream, contentType, nil
}
