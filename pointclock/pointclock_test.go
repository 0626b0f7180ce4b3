package pointclock_test

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoobc/revclock/pointclock"
	"github.com/zoobc/revclock/primitives"
	"github.com/zoobc/revclock/revclock"
)

func TestSetupAndAdvance(t *testing.T) {
	updater, uuid, err := pointclock.Setup(10, nil)
	require.NoError(t, err)
	require.Len(t, uuid, 32)

	var clock pointclock.Clock
	require.NoError(t, clock.Bootstrap(uuid))

	ts, err := updater.Advance(3)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), ts.Time())
	assert.True(t, clock.VerifyTimestamp(ts))
	assert.True(t, clock.Update(ts))
}

func TestUpdateIsMonotoneAndIdempotent(t *testing.T) {
	updater, uuid, err := pointclock.Setup(10, nil)
	require.NoError(t, err)

	var clock pointclock.Clock
	require.NoError(t, clock.Bootstrap(uuid))

	first, err := updater.Advance(2)
	require.NoError(t, err)
	require.True(t, clock.Update(first))
	assert.False(t, clock.Update(first))

	earlier := revclock.PlainTimestamp{Value: first.Value, T: 1}
	assert.False(t, clock.VerifyTimestamp(earlier))

	second, err := updater.Advance(5)
	require.NoError(t, err)
	require.True(t, clock.Update(second))

	_, time, ok := clock.Read()
	require.True(t, ok)
	assert.Equal(t, uint32(5), time)
}

func TestRejectsForeignTimestamp(t *testing.T) {
	_, uuidA, err := pointclock.Setup(10, nil)
	require.NoError(t, err)
	updaterB, _, err := pointclock.Setup(10, nil)
	require.NoError(t, err)

	var clock pointclock.Clock
	require.NoError(t, clock.Bootstrap(uuidA))

	foreign, err := updaterB.Advance(1)
	require.NoError(t, err)
	assert.False(t, clock.VerifyTimestamp(foreign))
	assert.False(t, clock.Update(foreign))
}

func TestAdvanceAndSignVerifiesWithStandardEd25519(t *testing.T) {
	updater, uuid, err := pointclock.Setup(10, nil)
	require.NoError(t, err)

	var clock pointclock.Clock
	require.NoError(t, clock.Bootstrap(uuid))

	message := []byte("hello at logical time four")
	ts, err := updater.AdvanceAndSign(4, message)
	require.NoError(t, err)

	assert.True(t, ed25519.Verify(ed25519.PublicKey(ts.Value), message, ts.Signature))
	assert.True(t, clock.VerifySignedTimestamp(ts, message))
	assert.True(t, clock.Update(ts))

	assert.False(t, clock.VerifySignedTimestamp(ts, []byte("hello at logical time FOUR")))
}

func TestPointChainCorrectness(t *testing.T) {
	updater, uuid, err := pointclock.Setup(4, nil)
	require.NoError(t, err)

	one, err := updater.Advance(1)
	require.NoError(t, err)

	doubled, err := primitives.RecursiveNextPoint(one.Value, 1)
	require.NoError(t, err)
	assert.Equal(t, uuid, doubled)
}

func TestVerifyAgainstUUID(t *testing.T) {
	updater, uuid, err := pointclock.Setup(10, nil)
	require.NoError(t, err)

	var clock pointclock.Clock
	require.NoError(t, clock.Bootstrap(uuid))

	ts, err := updater.Advance(9)
	require.NoError(t, err)
	assert.True(t, clock.VerifyTimestamp(ts))

	tampered := revclock.PlainTimestamp{Value: append([]byte(nil), ts.Value...), T: ts.T}
	tampered.Value[0] ^= 0xff
	assert.False(t, clock.VerifyTimestamp(tampered))
}

func TestVerifySelfHoldsAcrossUpdate(t *testing.T) {
	updater, uuid, err := pointclock.Setup(8, nil)
	require.NoError(t, err)

	var clock pointclock.Clock
	require.NoError(t, clock.Bootstrap(uuid))
	assert.True(t, clock.VerifySelf())

	ts, err := updater.Advance(6)
	require.NoError(t, err)
	require.True(t, clock.Update(ts))
	assert.True(t, clock.VerifySelf())
}

func TestUpdaterPackUnpackRoundTrip(t *testing.T) {
	updater, _, err := pointclock.Setup(9, nil)
	require.NoError(t, err)

	packed := updater.Pack()
	restored, err := pointclock.Unpack(packed)
	require.NoError(t, err)

	assert.Equal(t, updater.MaxTime(), restored.MaxTime())

	a, err := updater.Advance(1)
	require.NoError(t, err)
	b, err := restored.Advance(1)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestClockPackUnpackRoundTrip(t *testing.T) {
	updater, uuid, err := pointclock.Setup(9, nil)
	require.NoError(t, err)

	var clock pointclock.Clock
	require.NoError(t, clock.Bootstrap(uuid))
	ts, err := updater.Advance(4)
	require.NoError(t, err)
	require.True(t, clock.Update(ts))

	var restored pointclock.Clock
	require.NoError(t, restored.Unpack(clock.Pack()))

	_, time, ok := restored.Read()
	require.True(t, ok)
	assert.Equal(t, uint32(4), time)
	assert.True(t, restored.Initialized())
	assert.Equal(t, uuid, restored.UUID())
}
