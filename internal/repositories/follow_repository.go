package repositories

import (
	"github.com/lumora-app/backend/internal/apperrors"
	"github.com/lumora-app/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository defines the interface for follow graph operations
type FollowRepository interface {
	CreateFollow(follow *models.Follow) (bool, error)
	DeleteFollow(followerID, followedID uint) error
	IsFollowing(followerID, followedID uint) (bool, error)
	IsFollowedBy(profileID, otherID uint) (bool, error)
	GetFollowers(profileID uint) ([]models.Profile, error)
	GetFollowing(profileID uint) ([]models.Profile, error)
	GetFollowersCount(profileID uint) (int64, error)
	GetFollowingCount(profileID uint) (int64, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// CreateFollow inserts the edge if absent. The insert is atomic against
// concurrent duplicates (unique index + ON CONFLICT DO NOTHING); the
// returned bool reports whether the edge was newly created.
func (r *PostgresFollowRepository) CreateFollow(follow *models.Follow) (bool, error) {
	res := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(follow)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteFollow removes the edge. Removing an edge that does not exist is
// a failed precondition, not a no-op.
func (r *PostgresFollowRepository) DeleteFollow(followerID, followedID uint) error {
	res := r.db.Where("follower_id = ? AND followed_id = ?", followerID, followedID).Delete(&models.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.PreconditionFailed("You are not following this profile")
	}
	return nil
}

// IsFollowing reports whether follower currently follows followed
func (r *PostgresFollowRepository) IsFollowing(followerID, followedID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Follow{}).Where("follower_id = ? AND followed_id = ?", followerID, followedID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// IsFollowedBy reports whether profileID is followed by otherID. The two
// directions between a pair of profiles are independent facts.
func (r *PostgresFollowRepository) IsFollowedBy(profileID, otherID uint) (bool, error) {
	return r.IsFollowing(otherID, profileID)
}

// GetFollowers retrieves every profile that follows the given profile
func (r *PostgresFollowRepository) GetFollowers(profileID uint) ([]models.Profile, error) {
	var profiles []models.Profile
	err := r.db.Where("id IN (?)",
		r.db.Model(&models.Follow{}).Select("follower_id").Where("followed_id = ?", profileID),
	).Find(&profiles).Error
	return profiles, err
}

// GetFollowing retrieves every profile the given profile follows
func (r *PostgresFollowRepository) GetFollowing(profileID uint) ([]models.Profile, error) {
	var profiles []models.Profile
	err := r.db.Where("id IN (?)",
		r.db.Model(&models.Follow{}).Select("followed_id").Where("follower_id = ?", profileID),
	).Find(&profiles).Error
	return profiles, err
}

func (r *PostgresFollowRepository) GetFollowersCount(profileID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("followed_id = ?", profileID).Count(&count).Error
	return count, err
}

func (r *PostgresFollowRepository) GetFollowingCount(profileID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("follower_id = ?", profileID).Count(&count).Error
	return count, err
}
