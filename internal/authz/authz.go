// Package authz holds the capability checks consulted before every
// mutating or visibility-restricted operation. Checks are pure: they
// either return nil or a typed error, and never touch the store.
//
// Identity comparisons are always between Profile IDs, never raw account
// IDs, so comment edit and delete agree on who the author is.
package authz

import "github.com/lumora-app/backend/internal/apperrors"

// CanModifyProfile permits profile mutation only for the owner. Reads
// are unrestricted and never consult this.
func CanModifyProfile(actorProfileID, ownerProfileID uint) error {
	if actorProfileID != ownerProfileID {
		return apperrors.Forbidden("You are not authorized to modify this profile")
	}
	return nil
}

// CanModifyPost permits post mutation only for the owning profile
func CanModifyPost(actorProfileID, ownerProfileID uint) error {
	if actorProfileID != ownerProfileID {
		return apperrors.Forbidden("You are not authorized to modify this post")
	}
	return nil
}

// CanModifyComment permits comment edit and delete only for the
// authoring profile. The post owner gets no say.
func CanModifyComment(actorProfileID, authorProfileID uint) error {
	if actorProfileID != authorProfileID {
		return apperrors.Forbidden("You are not authorized to modify this comment")
	}
	return nil
}

// CheckNotSelf rejects follow/unfollow actions aimed at the actor's own
// profile, independent of any ownership rule.
func CheckNotSelf(actorProfileID, targetProfileID uint, action string) error {
	if actorProfileID == targetProfileID {
		return apperrors.Newf(apperrors.KindValidation, "You cannot %s yourself", action)
	}
	return nil
}

// CanViewLikedPosts restricts a profile's liked-posts listing to that
// profile itself, even though the data is a plain listing.
func CanViewLikedPosts(actorProfileID, targetProfileID uint) error {
	if actorProfileID != targetProfileID {
		return apperrors.Forbidden("You can only view your own liked posts")
	}
	return nil
}
