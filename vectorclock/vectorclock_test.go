package vectorclock_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoobc/revclock/hashclock"
	"github.com/zoobc/revclock/pointclock"
	"github.com/zoobc/revclock/vectorclock"
)

func TestHashclockBackedVectorClockAdvanceAndVerify(t *testing.T) {
	alice, aliceUUID, err := hashclock.Setup(20, nil)
	require.NoError(t, err)
	bob, bobUUID, err := hashclock.Setup(20, nil)
	require.NoError(t, err)

	vc := vectorclock.New[hashclock.Clock, *hashclock.Clock]([]string{"alice", "bob"}, "alice")
	require.NoError(t, vc.Bootstrap("alice", aliceUUID))
	require.NoError(t, vc.Bootstrap("bob", bobUUID))

	aliceTS, err := alice.Advance(2)
	require.NoError(t, err)
	bobTS, err := bob.Advance(5)
	require.NoError(t, err)

	require.True(t, vc.Advance(aliceTS))
	require.True(t, vc.Update("bob", bobTS))

	snap := vc.Read()
	assert.Equal(t, int64(2), snap.Nodes["alice"].Time)
	assert.Equal(t, int64(5), snap.Nodes["bob"].Time)
}

func TestVectorClockFirstTouchBootstraps(t *testing.T) {
	bob, _, err := hashclock.Setup(20, nil)
	require.NoError(t, err)

	vc := vectorclock.New[hashclock.Clock, *hashclock.Clock]([]string{"alice", "bob"}, "alice")
	assert.False(t, vc.Known("bob"))

	ts, err := bob.Advance(3)
	require.NoError(t, err)
	require.True(t, vc.Update("bob", ts))

	assert.True(t, vc.Known("bob"))
	ok, err := vc.VerifyTimestamp("bob", ts)
	require.NoError(t, err)
	assert.True(t, ok)

	snap := vc.Read()
	assert.Equal(t, int64(3), snap.Nodes["bob"].Time)
}

func TestVectorClockRejectsUnknownNode(t *testing.T) {
	alice, aliceUUID, err := hashclock.Setup(20, nil)
	require.NoError(t, err)

	vc := vectorclock.New[hashclock.Clock, *hashclock.Clock]([]string{"alice"}, "alice")
	require.NoError(t, vc.Bootstrap("alice", aliceUUID))

	ts, err := alice.Advance(1)
	require.NoError(t, err)
	assert.False(t, vc.Update("mallory", ts))

	_, err = vc.VerifyTimestamp("mallory", ts)
	assert.Error(t, err)
}

func mapToTimestampMap(uuid [16]byte, times map[string]int64) vectorclock.TimestampMap {
	nodes := make(map[string]vectorclock.Entry, len(times))
	for id, tm := range times {
		nodes[id] = vectorclock.Entry{Time: tm, Value: []byte{byte(tm)}}
	}
	return vectorclock.TimestampMap{UUID: uuid, Nodes: nodes}
}

func TestCausalityPredicates(t *testing.T) {
	var uuid [16]byte
	copy(uuid[:], []byte("0123456789abcdef"))

	a := mapToTimestampMap(uuid, map[string]int64{"alice": 2, "bob": 3})
	b := mapToTimestampMap(uuid, map[string]int64{"alice": 2, "bob": 5})
	c := mapToTimestampMap(uuid, map[string]int64{"alice": 3, "bob": 1})

	before, err := vectorclock.HappensBefore(a, b)
	require.NoError(t, err)
	assert.True(t, before)

	before, err = vectorclock.HappensBefore(b, a)
	require.NoError(t, err)
	assert.False(t, before)

	concurrent, err := vectorclock.AreConcurrent(a, c)
	require.NoError(t, err)
	assert.True(t, concurrent)

	concurrent, err = vectorclock.AreConcurrent(a, b)
	require.NoError(t, err)
	assert.False(t, concurrent)

	assert.False(t, vectorclock.AreIncomparable(a, c))

	var otherUUID [16]byte
	copy(otherUUID[:], []byte("fedcba9876543210"))
	d := mapToTimestampMap(otherUUID, map[string]int64{"alice": 1})
	assert.True(t, vectorclock.AreIncomparable(a, d))
	_, err = vectorclock.HappensBefore(a, d)
	assert.Error(t, err)
}

func TestHappensBeforeReflexiveAndAcrossAdvance(t *testing.T) {
	one, oneUUID, err := hashclock.Setup(20, nil)
	require.NoError(t, err)
	two, twoUUID, err := hashclock.Setup(20, nil)
	require.NoError(t, err)

	vc := vectorclock.New[hashclock.Clock, *hashclock.Clock]([]string{"123", "321"}, "123")
	require.NoError(t, vc.Bootstrap("123", oneUUID))
	require.NoError(t, vc.Bootstrap("321", twoUUID))

	t0 := vc.Read()
	before, err := vectorclock.HappensBefore(t0, t0)
	require.NoError(t, err)
	assert.False(t, before)

	ts1, err := one.Advance(1)
	require.NoError(t, err)
	require.True(t, vc.Update("123", ts1))
	t1 := vc.Read()

	ts2, err := two.Advance(1)
	require.NoError(t, err)
	require.True(t, vc.Update("321", ts2))
	t2 := vc.Read()

	before, err = vectorclock.HappensBefore(t0, t1)
	require.NoError(t, err)
	assert.True(t, before)

	before, err = vectorclock.HappensBefore(t1, t2)
	require.NoError(t, err)
	assert.True(t, before)

	before, err = vectorclock.HappensBefore(t0, t2)
	require.NoError(t, err)
	assert.True(t, before)

	before, err = vectorclock.HappensBefore(t2, t0)
	require.NoError(t, err)
	assert.False(t, before)

	concurrent, err := vectorclock.AreConcurrent(t0, t0)
	require.NoError(t, err)
	assert.True(t, concurrent)
}

func TestPackUnpackRoundTrip(t *testing.T) {
	alice, aliceUUID, err := pointclock.Setup(10, nil)
	require.NoError(t, err)

	vc := vectorclock.New[pointclock.Clock, *pointclock.Clock]([]string{"alice"}, "alice")
	require.NoError(t, vc.Bootstrap("alice", aliceUUID))
	ts, err := alice.Advance(6)
	require.NoError(t, err)
	require.True(t, vc.Advance(ts))

	packed, err := vc.Pack()
	require.NoError(t, err)

	restored, err := vectorclock.Unpack[pointclock.Clock, *pointclock.Clock](packed, "alice")
	require.NoError(t, err)

	snap := restored.Read()
	require.Contains(t, snap.Nodes, "alice")
	assert.Equal(t, int64(6), snap.Nodes["alice"].Time)
	assert.True(t, restored.VerifySelf())
}

func TestPackProducesSortedCompactJSON(t *testing.T) {
	zeta, zetaUUID, err := hashclock.Setup(10, nil)
	require.NoError(t, err)
	alpha, alphaUUID, err := hashclock.Setup(10, nil)
	require.NoError(t, err)

	vc := vectorclock.New[hashclock.Clock, *hashclock.Clock]([]string{"zeta", "alpha"}, "zeta")
	require.NoError(t, vc.Bootstrap("zeta", zetaUUID))
	require.NoError(t, vc.Bootstrap("alpha", alphaUUID))

	zetaTS, err := zeta.Advance(1)
	require.NoError(t, err)
	require.True(t, vc.Advance(zetaTS))

	alphaTS, err := alpha.Advance(1)
	require.NoError(t, err)
	require.True(t, vc.Update("alpha", alphaTS))

	packed, err := vc.Pack()
	require.NoError(t, err)

	assert.NotContains(t, string(packed), " ")

	alphaKey := `"` + hex.EncodeToString([]byte("alpha")) + `"`
	zetaKey := `"` + hex.EncodeToString([]byte("zeta")) + `"`
	assert.Less(t, indexOf(string(packed), alphaKey), indexOf(string(packed), zetaKey))
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
