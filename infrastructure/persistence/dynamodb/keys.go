package dynamodb

import (
	"fmt"
	"strconv"
	"strings"
)

// Keyspace codec: every entity in the shared table is addressed by a
// composite (PK, SK) derived from its identifiers. The functions here are
// pure; prefix scans on a partition key retrieve all sort-key-distinguished
// facets of that entity.
//
//	USER#{userId}        PROFILE                    profile record
//	USERNAME#{username}  RESERVATION                username uniqueness marker
//	USER#{followerId}    FOLLOWS#{followedId}       outgoing follow edge
//	USER#{followedId}    FOLLOWER#{followerId}      incoming follow index
//	POST#{postId}        METADATA                   canonical post
//	USER#{userId}        POST#{timestampMs}#{postId} author timeline copy
//	POST#{postId}        LIKE#{userId}              like edge
//	USER#{userId}        LIKED#{postId}             like index
//	FEED#{followerId}    POST#{timestampMs}#{postId} feed entry
//	CONNECTION#{connId}  METADATA                   websocket connection

const (
	skProfile     = "PROFILE"
	skMetadata    = "METADATA"
	skReservation = "RESERVATION"

	prefixFollows  = "FOLLOWS#"
	prefixFollower = "FOLLOWER#"
	prefixPost     = "POST#"
	prefixLike     = "LIKE#"
	prefixLiked    = "LIKED#"
)

// UserPK returns the partition key for a user's records
func UserPK(userID string) string {
	return "USER#" + userID
}

// ProfileSK returns the sort key of the profile record
func ProfileSK() string {
	return skProfile
}

// UsernamePK returns the partition key of a username reservation
func UsernamePK(username string) string {
	return "USERNAME#" + strings.ToLower(username)
}

// ReservationSK returns the sort key of a username reservation
func ReservationSK() string {
	return skReservation
}

// FollowsSK returns the sort key of the outgoing follow edge
func FollowsSK(followedID string) string {
	return prefixFollows + followedID
}

// FollowerSK returns the sort key of the incoming follow index entry
func FollowerSK(followerID string) string {
	return prefixFollower + followerID
}

// FollowerPrefix returns the sort-key prefix scanning a user's followers
func FollowerPrefix() string {
	return prefixFollower
}

// FollowerFromSK extracts the follower id from an incoming-index sort key
func FollowerFromSK(sk string) string {
	return strings.TrimPrefix(sk, prefixFollower)
}

// PostPK returns the partition key for a post's records
func PostPK(postID string) string {
	return "POST#" + postID
}

// PostMetadataSK returns the sort key of the canonical post record
func PostMetadataSK() string {
	return skMetadata
}

// TimelineSK returns the sort key of a timeline or feed copy of a post.
// The millisecond timestamp leads so lexicographic order is creation order,
// with the post id breaking ties.
func TimelineSK(timestampMs int64, postID string) string {
	return fmt.Sprintf("%s%s#%s", prefixPost, strconv.FormatInt(timestampMs, 10), postID)
}

// TimelinePrefix returns the sort-key prefix scanning timeline/feed entries
func TimelinePrefix() string {
	return prefixPost
}

// LikeSK returns the sort key of a like edge on a post
func LikeSK(userID string) string {
	return prefixLike + userID
}

// LikedSK returns the sort key of the reciprocal like index entry
func LikedSK(postID string) string {
	return prefixLiked + postID
}

// FeedPK returns the partition key of a follower's feed
func FeedPK(followerID string) string {
	return "FEED#" + followerID
}

// ConnectionPK returns the partition key of a websocket connection record
func ConnectionPK(connectionID string) string {
	return "CONNECTION#" + connectionID
}

// ConnectionSK returns the sort key of a websocket connection record
func ConnectionSK() string {
	return skMetadata
}

// ConnectionGSI1SK returns the GSI1 sort key indexing connections by user
func ConnectionGSI1SK(connectionID string) string {
	return "CONNECTION#" + connectionID
}
