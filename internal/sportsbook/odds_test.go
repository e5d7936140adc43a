package sportsbook

import "testing"

func oddsToX(odds uint64) float64 {
	return float64(odds) / 1e9
}

func TestCompressOddsFloorsAt1_2x(t *testing.T) {
	cases := []uint64{1_000_000_000, 1_500_000_000, RawOddsMin - 1}
	for _, raw := range cases {
		if got := CompressOdds(raw); got != MinCompressedOdds {
			t.Errorf("CompressOdds(%d) = %d, want floor %d", raw, got, MinCompressedOdds)
		}
	}
}

func TestCompressOddsCapsAt2_2x(t *testing.T) {
	cases := []uint64{10_000_000_000, RawOddsMax + 1}
	for _, raw := range cases {
		if got := CompressOdds(raw); got != MaxCompressedOdds {
			t.Errorf("CompressOdds(%d) = %d, want ceiling %d", raw, got, MaxCompressedOdds)
		}
	}
}

func TestCompressOddsRangeIs1_2To2_2(t *testing.T) {
	for _, raw := range []uint64{RawOddsMin, 2_000_000_000, 3_000_000_000, 4_000_000_000, 5_000_000_000, RawOddsMax} {
		x := oddsToX(CompressOdds(raw))
		if x < 1.2 || x > 2.2 {
			t.Errorf("raw=%.2fx compressed to %.3fx, out of range", float64(raw)/1e9, x)
		}
	}
}

func TestCompressOddsMonotonicallyIncreasing(t *testing.T) {
	raws := []uint64{1_800_000_000, 2_500_000_000, 3_500_000_000, 4_500_000_000, 5_500_000_000}
	for i := 0; i < len(raws)-1; i++ {
		lo, hi := CompressOdds(raws[i]), CompressOdds(raws[i+1])
		if hi < lo {
			t.Errorf("compression not monotone: %d -> %d, %d -> %d", raws[i], lo, raws[i+1], hi)
		}
	}
}

func TestLockedOddsEmptyPoolFallback(t *testing.T) {
	got := CalculateLockedOddsFromSeeds(0, 0, 0)
	want := LockedOdds{Home: 1_500_000_000, Away: 1_500_000_000, Draw: 1_500_000_000}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestLockedOddsInRangeDefaultSeeds(t *testing.T) {
	odds := CalculateLockedOddsFromSeeds(1_200_000_000_000, 800_000_000_000, 1_000_000_000_000)
	for name, x := range map[string]float64{"home": oddsToX(odds.Home), "away": oddsToX(odds.Away), "draw": oddsToX(odds.Draw)} {
		if x < 1.2 || x > 2.2 {
			t.Errorf("%s odds %.3fx out of range", name, x)
		}
	}
}

func TestLockedOddsExtremeFavorite(t *testing.T) {
	total := SeedPerMatch
	homeSeed := (total * 63) / 100
	awaySeed := (total * 16) / 100
	drawSeed := total - homeSeed - awaySeed

	odds := CalculateLockedOddsFromSeeds(homeSeed, awaySeed, drawSeed)
	h, a := oddsToX(odds.Home), oddsToX(odds.Away)

	if h < 1.2 || h > 1.35 {
		t.Errorf("home should be near 1.2x, got %.3fx", h)
	}
	if a < 1.9 || a > 2.2 {
		t.Errorf("away should be near 2.2x, got %.3fx", a)
	}
}

func TestCalculatePoolImbalance(t *testing.T) {
	empty := &MatchPool{}
	if got := CalculatePoolImbalance(empty); got != 0 {
		t.Errorf("empty pool imbalance = %d, want 0", got)
	}

	pool := &MatchPool{Home: 7000, Away: 2000, Draw: 1000, Total: 10000}
	if got := CalculatePoolImbalance(pool); got != 7000 {
		t.Errorf("imbalance = %d, want 7000", got)
	}
}

func TestCalculateMarketOddsFallback(t *testing.T) {
	pool := &MatchPool{}
	if got := CalculateMarketOdds(pool, OutcomeHome); got != 3*Scale {
		t.Errorf("empty winning pool fallback = %d, want %d", got, 3*Scale)
	}
}
