package repositories

import (
	"github.com/lumora-app/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	GetPosts(filter models.PostFilter) ([]models.Post, error)
	GetPostsByProfileID(profileID uint) ([]models.Post, error)
	GetLikedPosts(profileID uint) ([]models.Post, error)
	UpdatePost(post *models.Post) error
	DeletePost(id uint) error
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost creates a new post. The posted timestamp is assigned by the
// store and never updated afterwards.
func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

// GetPostByID retrieves a post by ID
func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPosts retrieves posts matching the filter, newest first. The result
// is distinct even when a post matches through several like edges.
func (r *PostgresPostRepository) GetPosts(filter models.PostFilter) ([]models.Post, error) {
	query := r.db.Model(&models.Post{}).Distinct("posts.*")
	if filter.Hashtag != "" {
		query = query.Where("LOWER(posts.content) LIKE LOWER(?)", "%#"+filter.Hashtag+"%")
	}
	if filter.Content != "" {
		query = query.Where("LOWER(posts.content) LIKE LOWER(?)", "%"+filter.Content+"%")
	}
	if filter.LikedBy != "" {
		query = query.
			Joins("JOIN likes ON likes.post_id = posts.id").
			Joins("JOIN profiles ON profiles.id = likes.profile_id").
			Where("profiles.username = ?", filter.LikedBy)
	}

	var posts []models.Post
	if err := query.Order("posts.posted DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPostsByProfileID retrieves the posts owned by a profile, newest first
func (r *PostgresPostRepository) GetPostsByProfileID(profileID uint) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.Where("profile_id = ?", profileID).Order("posted DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// GetLikedPosts retrieves the posts a profile has liked, most recently
// liked first
func (r *PostgresPostRepository) GetLikedPosts(profileID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Model(&models.Post{}).
		Joins("JOIN likes ON likes.post_id = posts.id").
		Where("likes.profile_id = ?", profileID).
		Order("likes.created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdatePost updates the mutable fields of an existing post. Posted is
// left untouched.
func (r *PostgresPostRepository) UpdatePost(post *models.Post) error {
	return r.db.Model(post).Select("content", "media_key").Updates(map[string]interface{}{
		"content":   post.Content,
		"media_key": post.MediaKey,
	}).Error
}

// DeletePost deletes a post together with its likes and comments in one
// explicit transaction; the store has no native cascade rules.
func (r *PostgresPostRepository) DeletePost(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
}
