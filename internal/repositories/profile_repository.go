package repositories

import (
	"github.com/lumora-app/backend/internal/models"
	"gorm.io/gorm"
)

// ProfileRepository defines the interface for profile data operations
type ProfileRepository interface {
	CreateProfile(profile *models.Profile) error
	GetProfileByID(id uint) (*models.Profile, error)
	GetProfileByAccountID(accountID uint) (*models.Profile, error)
	GetProfileByUsername(username string) (*models.Profile, error)
	GetProfiles(filter models.ProfileFilter) ([]models.Profile, error)
	UpdateProfile(profile *models.Profile) error
	DeleteProfile(id uint) error
}

// PostgresProfileRepository implements ProfileRepository for PostgreSQL
type PostgresProfileRepository struct {
	db *gorm.DB
}

// NewPostgresProfileRepository creates a new PostgresProfileRepository
func NewPostgresProfileRepository(db *gorm.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

// CreateProfile creates a new profile. Uniqueness of the username and of
// the one-profile-per-account binding is enforced by the database.
func (r *PostgresProfileRepository) CreateProfile(profile *models.Profile) error {
	return r.db.Create(profile).Error
}

// GetProfileByID retrieves a profile by ID
func (r *PostgresProfileRepository) GetProfileByID(id uint) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.First(&profile, id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetProfileByAccountID retrieves the profile bound to an account
func (r *PostgresProfileRepository) GetProfileByAccountID(accountID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Where("account_id = ?", accountID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetProfileByUsername retrieves a profile by its exact username
func (r *PostgresProfileRepository) GetProfileByUsername(username string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Where("username = ?", username).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetProfiles retrieves profiles matching the filter. Both filters are
// case-insensitive substring matches combined with AND when both are set.
func (r *PostgresProfileRepository) GetProfiles(filter models.ProfileFilter) ([]models.Profile, error) {
	query := r.db.Model(&models.Profile{}).Distinct()
	if filter.Username != "" {
		query = query.Where("LOWER(username) LIKE LOWER(?)", "%"+filter.Username+"%")
	}
	if filter.Bio != "" {
		query = query.Where("LOWER(bio) LIKE LOWER(?)", "%"+filter.Bio+"%")
	}

	var profiles []models.Profile
	if err := query.Order("username").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// UpdateProfile updates an existing profile
func (r *PostgresProfileRepository) UpdateProfile(profile *models.Profile) error {
	return r.db.Save(profile).Error
}

// DeleteProfile deletes a profile and everything hanging off it: its
// posts with their likes and comments, both directions of follow edges,
// and the likes and comments the profile itself made. The store has no
// native cascade rules, so this runs as one explicit transaction.
func (r *PostgresProfileRepository) DeleteProfile(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var postIDs []uint
		if err := tx.Model(&models.Post{}).Where("profile_id = ?", id).Pluck("id", &postIDs).Error; err != nil {
			return err
		}
		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Like{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", postIDs).Delete(&models.Post{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("follower_id = ? OR followed_id = ?", id, id).Delete(&models.Follow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("profile_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("profile_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("actor_id = ? OR recipient_id = ?", id, id).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Profile{}, id).Error
	})
}
