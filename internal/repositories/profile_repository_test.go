package repositories

import (
	"testing"

	"github.com/lumora-app/backend/internal/models"
)

func TestGetProfilesFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresProfileRepository(db)

	seedProfile(t, db, "Anna")
	seedProfile(t, db, "joanna")
	seedProfile(t, db, "bob")
	db.Model(&models.Profile{}).Where("username = ?", "joanna").Update("bio", "Plant lover")

	tests := []struct {
		name   string
		filter models.ProfileFilter
		want   []string
	}{
		{
			name:   "no filter returns everyone",
			filter: models.ProfileFilter{},
			want:   []string{"Anna", "bob", "joanna"},
		},
		{
			name:   "username substring is case-insensitive",
			filter: models.ProfileFilter{Username: "ann"},
			want:   []string{"Anna", "joanna"},
		},
		{
			name:   "bio substring",
			filter: models.ProfileFilter{Bio: "plant"},
			want:   []string{"joanna"},
		},
		{
			name:   "username and bio compose with AND",
			filter: models.ProfileFilter{Username: "ann", Bio: "plant"},
			want:   []string{"joanna"},
		},
		{
			name:   "AND semantics can exclude everyone",
			filter: models.ProfileFilter{Username: "bob", Bio: "plant"},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profiles, err := repo.GetProfiles(tt.filter)
			if err != nil {
				t.Fatalf("GetProfiles failed: %v", err)
			}
			if len(profiles) != len(tt.want) {
				t.Fatalf("expected %d profiles, got %+v", len(tt.want), profiles)
			}
			seen := map[string]bool{}
			for _, p := range profiles {
				if seen[p.Username] {
					t.Errorf("duplicate profile %q in result", p.Username)
				}
				seen[p.Username] = true
			}
			for _, username := range tt.want {
				if !seen[username] {
					t.Errorf("expected %q in result, got %+v", username, profiles)
				}
			}
		})
	}
}

func TestDeleteProfileCascades(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresProfileRepository(db)
	ann := seedProfile(t, db, "ann")
	bob := seedProfile(t, db, "bob")

	annPost := seedPost(t, db, ann.ID, "ann's post")
	bobPost := seedPost(t, db, bob.ID, "bob's post")

	// Edges in every direction plus engagement both ways
	db.Create(&models.Follow{FollowerID: ann.ID, FollowedID: bob.ID})
	db.Create(&models.Follow{FollowerID: bob.ID, FollowedID: ann.ID})
	db.Create(&models.Like{ProfileID: bob.ID, PostID: annPost.ID})
	db.Create(&models.Like{ProfileID: ann.ID, PostID: bobPost.ID})
	db.Create(&models.Comment{ProfileID: bob.ID, PostID: annPost.ID, Content: "nice"})
	db.Create(&models.Comment{ProfileID: ann.ID, PostID: bobPost.ID, Content: "thanks"})

	if err := repo.DeleteProfile(ann.ID); err != nil {
		t.Fatalf("DeleteProfile failed: %v", err)
	}

	var count int64
	db.Model(&models.Post{}).Where("profile_id = ?", ann.ID).Count(&count)
	if count != 0 {
		t.Errorf("expected ann's posts deleted, found %d", count)
	}
	db.Model(&models.Follow{}).Where("follower_id = ? OR followed_id = ?", ann.ID, ann.ID).Count(&count)
	if count != 0 {
		t.Errorf("expected all of ann's follow edges deleted, found %d", count)
	}
	db.Model(&models.Like{}).Count(&count)
	if count != 0 {
		t.Errorf("expected likes on and by ann gone, found %d", count)
	}
	db.Model(&models.Comment{}).Count(&count)
	if count != 0 {
		t.Errorf("expected comments on and by ann gone, found %d", count)
	}

	// Bob and his post survive
	if _, err := repo.GetProfileByID(bob.ID); err != nil {
		t.Errorf("bob's profile should survive: %v", err)
	}
	db.Model(&models.Post{}).Where("id = ?", bobPost.ID).Count(&count)
	if count != 1 {
		t.Error("bob's post should survive the cascade")
	}
}

func TestGetProfileByAccountID(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresProfileRepository(db)
	ann := seedProfile(t, db, "ann")

	got, err := repo.GetProfileByAccountID(ann.AccountID)
	if err != nil {
		t.Fatalf("GetProfileByAccountID failed: %v", err)
	}
	if got.ID != ann.ID {
		t.Errorf("expected profile %d, got %d", ann.ID, got.ID)
	}

	if _, err := repo.GetProfileByAccountID(9999); err == nil {
		t.Error("expected error for unknown account")
	}
}
