package repositories

import (
	"github.com/lumora-app/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	GetCommentRecordsByPostID(postID uint) ([]models.CommentRecord, error)
	UpdateComment(comment *models.Comment) error
	DeleteComment(id uint) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment creates a new comment
func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// GetCommentByID retrieves a comment by ID
func (r *PostgresCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetCommentRecordsByPostID retrieves the comments on a post in creation
// order, denormalized with the commenter's username and the post content.
func (r *PostgresCommentRepository) GetCommentRecordsByPostID(postID uint) ([]models.CommentRecord, error) {
	var records []models.CommentRecord
	err := r.db.Model(&models.Comment{}).
		Select("comments.id, comments.profile_id, profiles.username, comments.post_id, posts.content AS post_content, comments.content, comments.created_at").
		Joins("JOIN profiles ON profiles.id = comments.profile_id").
		Joins("JOIN posts ON posts.id = comments.post_id").
		Where("comments.post_id = ?", postID).
		Order("comments.created_at").
		Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// UpdateComment updates an existing comment
func (r *PostgresCommentRepository) UpdateComment(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

// DeleteComment deletes a comment by ID
func (r *PostgresCommentRepository) DeleteComment(id uint) error {
	return r.db.Delete(&models.Comment{}, id).Error
}
