package repositories

import (
	"github.com/lumora-app/backend/internal/apperrors"
	"github.com/lumora-app/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(like *models.Like) (bool, error)
	DeleteLike(postID, profileID uint) error
	GetLikeRecordsByPostID(postID uint) ([]models.LikeRecord, error)
	GetLikesCountByPostID(postID uint) (int64, error)
	HasProfileLikedPost(postID, profileID uint) (bool, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreateLike inserts the edge if absent, atomically against concurrent
// duplicates. The returned bool reports whether the edge was newly
// created; re-liking is not an error.
func (r *PostgresLikeRepository) CreateLike(like *models.Like) (bool, error) {
	res := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(like)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteLike removes the edge. Unlike creation, removal of a missing
// edge is a failed precondition rather than a no-op.
func (r *PostgresLikeRepository) DeleteLike(postID, profileID uint) error {
	res := r.db.Where("post_id = ? AND profile_id = ?", postID, profileID).Delete(&models.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.PreconditionFailed("You have not liked this post")
	}
	return nil
}

// GetLikeRecordsByPostID retrieves the likes on a post in like order,
// denormalized with the liker's username.
func (r *PostgresLikeRepository) GetLikeRecordsByPostID(postID uint) ([]models.LikeRecord, error) {
	var records []models.LikeRecord
	err := r.db.Model(&models.Like{}).
		Select("likes.id, likes.profile_id, profiles.username").
		Joins("JOIN profiles ON profiles.id = likes.profile_id").
		Where("likes.post_id = ?", postID).
		Order("likes.created_at").
		Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// GetLikesCountByPostID retrieves the number of likes on a post
func (r *PostgresLikeRepository) GetLikesCountByPostID(postID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// HasProfileLikedPost checks if a profile has liked a specific post
func (r *PostgresLikeRepository) HasProfileLikedPost(postID, profileID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Where("post_id = ? AND profile_id = ?", postID, profileID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
