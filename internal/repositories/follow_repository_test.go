package repositories

import (
	"testing"

	"github.com/lumora-app/backend/internal/apperrors"
	"github.com/lumora-app/backend/internal/models"
)

func TestCreateFollowIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	ann := seedProfile(t, db, "ann")
	bob := seedProfile(t, db, "bob")

	created, err := repo.CreateFollow(&models.Follow{FollowerID: ann.ID, FollowedID: bob.ID})
	if err != nil {
		t.Fatalf("first follow failed: %v", err)
	}
	if !created {
		t.Error("first follow should report a new edge")
	}

	created, err = repo.CreateFollow(&models.Follow{FollowerID: ann.ID, FollowedID: bob.ID})
	if err != nil {
		t.Fatalf("duplicate follow errored: %v", err)
	}
	if created {
		t.Error("duplicate follow should not report a new edge")
	}

	var count int64
	db.Model(&models.Follow{}).Count(&count)
	if count != 1 {
		t.Errorf("expected exactly 1 edge after duplicate follow, got %d", count)
	}
}

func TestDeleteFollowRequiresExistingEdge(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	ann := seedProfile(t, db, "ann")
	bob := seedProfile(t, db, "bob")

	err := repo.DeleteFollow(ann.ID, bob.ID)
	if !apperrors.Is(err, apperrors.KindPreconditionFailed) {
		t.Fatalf("expected precondition failure for missing edge, got %v", err)
	}

	if _, err := repo.CreateFollow(&models.Follow{FollowerID: ann.ID, FollowedID: bob.ID}); err != nil {
		t.Fatalf("follow failed: %v", err)
	}
	if err := repo.DeleteFollow(ann.ID, bob.ID); err != nil {
		t.Fatalf("unfollow of existing edge failed: %v", err)
	}

	// Removal is strict: a second unfollow fails again
	err = repo.DeleteFollow(ann.ID, bob.ID)
	if !apperrors.Is(err, apperrors.KindPreconditionFailed) {
		t.Fatalf("expected precondition failure for repeated unfollow, got %v", err)
	}
}

func TestFollowDirectionsAreIndependent(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	ann := seedProfile(t, db, "ann")
	bob := seedProfile(t, db, "bob")

	if _, err := repo.CreateFollow(&models.Follow{FollowerID: ann.ID, FollowedID: bob.ID}); err != nil {
		t.Fatalf("follow failed: %v", err)
	}

	annFollowsBob, _ := repo.IsFollowing(ann.ID, bob.ID)
	bobFollowsAnn, _ := repo.IsFollowing(bob.ID, ann.ID)
	if !annFollowsBob || bobFollowsAnn {
		t.Fatalf("one direction should exist: ann->bob=%v bob->ann=%v", annFollowsBob, bobFollowsAnn)
	}

	if _, err := repo.CreateFollow(&models.Follow{FollowerID: bob.ID, FollowedID: ann.ID}); err != nil {
		t.Fatalf("reverse follow failed: %v", err)
	}

	annFollowsBob, _ = repo.IsFollowing(ann.ID, bob.ID)
	bobFollowsAnn, _ = repo.IsFollowing(bob.ID, ann.ID)
	annFollowedByBob, _ := repo.IsFollowedBy(ann.ID, bob.ID)
	if !annFollowsBob || !bobFollowsAnn || !annFollowedByBob {
		t.Errorf("both directions should coexist: ann->bob=%v bob->ann=%v ann<-bob=%v",
			annFollowsBob, bobFollowsAnn, annFollowedByBob)
	}
}

func TestGetFollowersAndFollowing(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	ann := seedProfile(t, db, "ann")
	bob := seedProfile(t, db, "bob")
	cat := seedProfile(t, db, "cat")

	for _, follower := range []*models.Profile{bob, cat} {
		if _, err := repo.CreateFollow(&models.Follow{FollowerID: follower.ID, FollowedID: ann.ID}); err != nil {
			t.Fatalf("follow failed: %v", err)
		}
	}

	followers, err := repo.GetFollowers(ann.ID)
	if err != nil {
		t.Fatalf("GetFollowers failed: %v", err)
	}
	if len(followers) != 2 {
		t.Errorf("expected 2 followers, got %d", len(followers))
	}

	following, err := repo.GetFollowing(bob.ID)
	if err != nil {
		t.Fatalf("GetFollowing failed: %v", err)
	}
	if len(following) != 1 || following[0].Username != "ann" {
		t.Errorf("expected bob to follow only ann, got %+v", following)
	}

	count, err := repo.GetFollowersCount(ann.ID)
	if err != nil || count != 2 {
		t.Errorf("expected follower count 2, got %d (err=%v)", count, err)
	}
	count, err = repo.GetFollowingCount(ann.ID)
	if err != nil || count != 0 {
		t.Errorf("expected following count 0, got %d (err=%v)", count, err)
	}
}
