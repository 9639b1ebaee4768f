package models

// Profile is a user's public identity. Exactly one Profile may exist per
// Account; ownership of posts, likes, comments and follow edges always
// refers to the Profile, never to the Account.
type Profile struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	AccountID uint   `json:"-" gorm:"uniqueIndex"` // one profile per account
	Username  string `json:"username" gorm:"size:63;uniqueIndex"`
	FirstName string `json:"first_name,omitempty" gorm:"size:63"`
	LastName  string `json:"last_name,omitempty" gorm:"size:63"`
	Bio       string `json:"bio,omitempty" gorm:"size:200"`
	Pronouns  string `json:"pronouns,omitempty" gorm:"size:53"`
	AvatarKey string `json:"avatar_key,omitempty"` // media store reference
}

// CreateProfileRequest defines the request body for creating a profile
type CreateProfileRequest struct {
	Username  string `json:"username" validate:"required,min=2,max=63"`
	FirstName string `json:"first_name,omitempty" validate:"omitempty,max=63"`
	LastName  string `json:"last_name,omitempty" validate:"omitempty,max=63"`
	Bio       string `json:"bio,omitempty" validate:"omitempty,max=200"`
	Pronouns  string `json:"pronouns,omitempty" validate:"omitempty,max=53"`
}

// UpdateProfileRequest defines the request body for updating a profile
type UpdateProfileRequest struct {
	Username  string `json:"username,omitempty" validate:"omitempty,min=2,max=63"`
	FirstName string `json:"first_name,omitempty" validate:"omitempty,max=63"`
	LastName  string `json:"last_name,omitempty" validate:"omitempty,max=63"`
	Bio       string `json:"bio,omitempty" validate:"omitempty,max=200"`
	Pronouns  string `json:"pronouns,omitempty" validate:"omitempty,max=53"`
}

// ProfileFilter holds the optional filters for profile listings. Both
// filters are case-insensitive substring matches; when both are given
// they compose with AND semantics.
type ProfileFilter struct {
	Username string
	Bio      string
}
