package main

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/rs/zerolog"

	"github.com/zoobc/revclock/hashclock"
	"github.com/zoobc/revclock/pointclock"
	"github.com/zoobc/revclock/vectorclock"
)

func rng(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

func demoHashClock(log zerolog.Logger) {
	log = log.With().Str("clock", "hash").Logger()

	updater, uuid, err := hashclock.Setup(16, nil)
	if err != nil {
		panic(err)
	}
	log.Info().Str("uuid", hex.EncodeToString(uuid)).Msg("setup")

	var clock hashclock.Clock
	if err := clock.Bootstrap(uuid); err != nil {
		panic(err)
	}

	ts, err := updater.Advance(5)
	if err != nil {
		panic(err)
	}
	log.Info().Uint32("t", ts.Time()).Bool("accepted", clock.Update(ts)).Msg("advance")

	ts, err = updater.Advance(16)
	if err != nil {
		panic(err)
	}
	log.Info().
		Uint32("t", ts.Time()).
		Bool("accepted", clock.Update(ts)).
		Bool("terminated", clock.HasTerminated()).
		Msg("advance to max_time")
}

func demoPointClock(log zerolog.Logger) {
	log = log.With().Str("clock", "point").Logger()

	updater, uuid, err := pointclock.Setup(16, nil)
	if err != nil {
		panic(err)
	}
	log.Info().Str("uuid", hex.EncodeToString(uuid)).Msg("setup")

	var clock pointclock.Clock
	if err := clock.Bootstrap(uuid); err != nil {
		panic(err)
	}

	message := rng(16)
	ts, err := updater.AdvanceAndSign(7, message)
	if err != nil {
		panic(err)
	}
	log.Info().
		Str("message", hex.EncodeToString(message)).
		Str("signature", hex.EncodeToString(ts.Signature)).
		Bool("valid_sig", clock.VerifySignedTimestamp(ts, message)).
		Bool("accepted", clock.Update(ts)).
		Msg("advance_and_sign")
}

func demoVectorClock(log zerolog.Logger) {
	log = log.With().Str("clock", "vector").Logger()

	alice, aliceUUID, err := hashclock.Setup(32, nil)
	if err != nil {
		panic(err)
	}
	bob, bobUUID, err := hashclock.Setup(32, nil)
	if err != nil {
		panic(err)
	}

	vc := vectorclock.New[hashclock.Clock, *hashclock.Clock]([]string{"alice", "bob"}, "alice")
	if err := vc.Bootstrap("alice", aliceUUID); err != nil {
		panic(err)
	}
	if err := vc.Bootstrap("bob", bobUUID); err != nil {
		panic(err)
	}

	aliceTS, err := alice.Advance(3)
	if err != nil {
		panic(err)
	}
	vc.Advance(aliceTS)

	bobTS, err := bob.Advance(9)
	if err != nil {
		panic(err)
	}
	vc.Update("bob", bobTS)

	packed, err := vc.Pack()
	if err != nil {
		panic(err)
	}
	log.Info().RawJSON("packed", packed).Msg("pack")

	before := vc.Read()
	aliceTS2, err := alice.Advance(5)
	if err != nil {
		panic(err)
	}
	vc.Advance(aliceTS2)
	after := vc.Read()

	happened, err := vectorclock.HappensBefore(before, after)
	if err != nil {
		panic(err)
	}
	log.Info().Bool("before_precedes_after", happened).Msg("causality")
}

func main() {
	log := zerolog.New(zerolog.NewConsoleWriter()).
		Level(zerolog.InfoLevel).
		With().
		Timestamp().
		Logger()

	demoHashClock(log)
	demoPointClock(log)
	demoVectorClock(log)
}
