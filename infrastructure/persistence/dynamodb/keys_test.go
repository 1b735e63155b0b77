package dynamodb

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyCodec(t *testing.T) {
	assert.Equal(t, "USER#u1", UserPK("u1"))
	assert.Equal(t, "PROFILE", ProfileSK())
	assert.Equal(t, "USERNAME#alice", UsernamePK("alice"))
	assert.Equal(t, "RESERVATION", ReservationSK())
	assert.Equal(t, "FOLLOWS#u2", FollowsSK("u2"))
	assert.Equal(t, "FOLLOWER#u1", FollowerSK("u1"))
	assert.Equal(t, "POST#p1", PostPK("p1"))
	assert.Equal(t, "METADATA", PostMetadataSK())
	assert.Equal(t, "POST#1717243200000#p1", TimelineSK(1717243200000, "p1"))
	assert.Equal(t, "LIKE#u1", LikeSK("u1"))
	assert.Equal(t, "LIKED#p1", LikedSK("p1"))
	assert.Equal(t, "FEED#u1", FeedPK("u1"))
	assert.Equal(t, "CONNECTION#c1", ConnectionPK("c1"))
}

func TestUsernamePK_CaseInsensitive(t *testing.T) {
	// Reservations collapse case so Alice and alice contend for one record
	assert.Equal(t, UsernamePK("alice"), UsernamePK("Alice"))
	assert.Equal(t, UsernamePK("alice"), UsernamePK("ALICE"))
}

func TestFollowerFromSK_RoundTrip(t *testing.T) {
	assert.Equal(t, "u42", FollowerFromSK(FollowerSK("u42")))
}

func TestTimelineSK_OrdersByTimestamp(t *testing.T) {
	// Lexicographic sort key order must match chronological order for
	// timestamps of equal digit width; descending queries then return
	// newest-first
	keys := []string{
		TimelineSK(1717243200300, "c"),
		TimelineSK(1717243200100, "a"),
		TimelineSK(1717243200200, "b"),
	}
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)

	assert.Equal(t, []string{keys[1], keys[2], keys[0]}, sorted)
}

func TestTimelineSK_TieBreaksOnPostID(t *testing.T) {
	a := TimelineSK(1717243200100, "post-a")
	b := TimelineSK(1717243200100, "post-b")
	assert.NotEqual(t, a, b)
	assert.Less(t, a, b)
}
