package amount

import (
	"testing"

	"github.com/chainlane/xrplcore/internal/core/currency"
	"github.com/chainlane/xrplcore/internal/core/decimal"
	"github.com/chainlane/xrplcore/internal/core/xrplid"
	"github.com/stretchr/testify/require"
)

const sampleIssuer = "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh"

func TestNativeFromDropsAndXRP(t *testing.T) {
	a, err := NativeFromDrops(250_000_000)
	require.NoError(t, err)
	require.True(t, a.IsValid())
	require.True(t, a.IsNative())
	require.Equal(t, "250000000", a.ToText())

	xrp, err := decimal.ParseDecimal("25.2")
	require.NoError(t, err)
	b, err := NativeFromXRP(xrp)
	require.NoError(t, err)
	require.Equal(t, "25200000", b.ToText())
}

func TestNativeOutOfRange(t *testing.T) {
	tooBig, err := decimal.ParseDecimal("1000000000000")
	require.NoError(t, err)
	_, err = NativeFromXRP(tooBig)
	require.Error(t, err)

	justUnder, err := decimal.ParseDecimal("100000000000")
	require.NoError(t, err)
	_, err = NativeFromXRP(justUnder)
	require.NoError(t, err)
}

func TestIssuedFromDecimalUnderflowOverflow(t *testing.T) {
	usd, err := currency.NewISO("USD")
	require.NoError(t, err)
	issuer, err := xrplid.UInt160FromJSON(sampleIssuer)
	require.NoError(t, err)

	_, err = IssuedParse("1e-82", usd, issuer)
	require.Error(t, err)

	_, err = IssuedParse("1e-81", usd, issuer)
	require.NoError(t, err)
}

func TestFromJSONShapes(t *testing.T) {
	t.Run("int", func(t *testing.T) {
		a, err := FromJSON(int(500))
		require.NoError(t, err)
		require.True(t, a.IsNative())
		require.Equal(t, "500", a.ToText())
	})

	t.Run("float must be integral", func(t *testing.T) {
		_, err := FromJSON(float64(500))
		require.NoError(t, err)
		_, err = FromJSON(500.5)
		require.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("numeric string", func(t *testing.T) {
		a, err := FromJSON("250000000")
		require.NoError(t, err)
		require.True(t, a.IsNative())
	})

	t.Run("numeric string with decimal point is rejected", func(t *testing.T) {
		_, err := FromJSON("250.5")
		require.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("shorthand string", func(t *testing.T) {
		a, err := FromJSON("100/USD/" + sampleIssuer)
		require.NoError(t, err)
		require.False(t, a.IsNative())
		require.Equal(t, "USD", a.Currency().ToHuman())
		require.Equal(t, "100", a.ToText())
	})

	t.Run("shorthand string without issuer", func(t *testing.T) {
		a, err := FromJSON("100/USD")
		require.NoError(t, err)
		require.False(t, a.IsNative())
		require.True(t, a.Issuer().IsNoIssuer())
	})

	t.Run("object form", func(t *testing.T) {
		a, err := FromJSON(map[string]any{
			"value":    "100.40",
			"currency": "USD",
			"issuer":   sampleIssuer,
		})
		require.NoError(t, err)
		require.Equal(t, "100.4", a.ToText())
	})

	t.Run("object form rejects XRP currency", func(t *testing.T) {
		_, err := FromJSON(map[string]any{"value": "1", "currency": "XRP"})
		require.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("object form requires value", func(t *testing.T) {
		_, err := FromJSON(map[string]any{"currency": "USD"})
		require.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := FromJSON(true)
		require.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestToJSON(t *testing.T) {
	native, err := NativeFromDrops(500)
	require.NoError(t, err)
	require.Equal(t, "500", native.ToJSON())

	usd, err := currency.NewISO("USD")
	require.NoError(t, err)
	issuer, err := xrplid.UInt160FromJSON(sampleIssuer)
	require.NoError(t, err)
	issued, err := IssuedParse("100.4", usd, issuer)
	require.NoError(t, err)

	obj, ok := issued.ToJSON().(map[string]string)
	require.True(t, ok)
	require.Equal(t, "100.4", obj["value"])
	require.Equal(t, "USD", obj["currency"])
	require.Equal(t, sampleIssuer, obj["issuer"])
}

func TestFromHumanShapes(t *testing.T) {
	t.Run("bare number is native XRP", func(t *testing.T) {
		a, err := FromHuman("25.2", InterestOpts{})
		require.NoError(t, err)
		require.True(t, a.IsNative())
		require.Equal(t, "25200000", a.ToText())
	})

	t.Run("number XRP two tokens", func(t *testing.T) {
		a, err := FromHuman("XRP 250", InterestOpts{})
		require.NoError(t, err)
		require.True(t, a.IsNative())
		require.Equal(t, "250000000", a.ToText())
	})

	t.Run("number then code two tokens", func(t *testing.T) {
		a, err := FromHuman("100 USD", InterestOpts{})
		require.NoError(t, err)
		require.False(t, a.IsNative())
		require.Equal(t, "USD", a.Currency().ToHuman())
	})

	t.Run("code then number two tokens", func(t *testing.T) {
		a, err := FromHuman("USD 100", InterestOpts{})
		require.NoError(t, err)
		require.Equal(t, "100", a.ToText())
	})

	t.Run("number glued to three-char code", func(t *testing.T) {
		a, err := FromHuman("100USD", InterestOpts{})
		require.NoError(t, err)
		require.Equal(t, "USD", a.Currency().ToHuman())
		require.Equal(t, "100", a.ToText())
	})

	t.Run("malformed input rejected", func(t *testing.T) {
		_, err := FromHuman("not a number", InterestOpts{})
		require.Error(t, err)
	})
}

func TestToHumanFormatting(t *testing.T) {
	usd, err := currency.NewISO("USD")
	require.NoError(t, err)
	a, err := IssuedParse("1234567.891", usd, xrplid.NoIssuerUInt160())
	require.NoError(t, err)

	require.Equal(t, "1,234,567.891", a.ToHuman(DefaultToHumanOpts()))

	noGroup := DefaultToHumanOpts()
	noGroup.DisableGrouping = true
	require.Equal(t, "1234567.891", a.ToHuman(noGroup))

	precise := DefaultToHumanOpts()
	two := 2
	precise.Precision = &two
	require.Equal(t, "1,234,567.89", a.ToHuman(precise))

	minPrec := DefaultToHumanOpts()
	minPrec.MinPrecision = 6
	require.Equal(t, "1,234,567.891000", a.ToHuman(minPrec))
}

func TestToHumanSkipEmptyFraction(t *testing.T) {
	usd, err := currency.NewISO("USD")
	require.NoError(t, err)
	a, err := IssuedParse("100", usd, xrplid.NoIssuerUInt160())
	require.NoError(t, err)

	opts := DefaultToHumanOpts()
	opts.MinPrecision = 2
	opts.SkipEmptyFraction = true
	require.Equal(t, "100", a.ToHuman(opts))

	opts.SkipEmptyFraction = false
	require.Equal(t, "100.00", a.ToHuman(opts))
}

func TestToHumanNegativeAndSignSuppression(t *testing.T) {
	usd, err := currency.NewISO("USD")
	require.NoError(t, err)
	a, err := IssuedParse("-50", usd, xrplid.NoIssuerUInt160())
	require.NoError(t, err)

	require.Equal(t, "-50", a.ToHuman(DefaultToHumanOpts()))

	opts := DefaultToHumanOpts()
	opts.DisableSigned = true
	require.Equal(t, "50", a.ToHuman(opts))
}

func TestArithmeticIdentities(t *testing.T) {
	a, err := NativeFromDrops(777)
	require.NoError(t, err)
	zero, err := NativeFromDrops(0)
	require.NoError(t, err)
	one, err := NativeFromDrops(1)
	require.NoError(t, err)

	require.True(t, a.Add(zero).Equals(a))
	require.True(t, a.Subtract(a).IsZero())
	require.True(t, a.Multiply(one).Equals(a))

	// Invert/double-invert only round-trips exactly for native amounts
	// of 1 drop: any larger drops count inverts to a fraction below one
	// drop, which rounds toward zero. Exercise the identity at the
	// granularity where it actually holds.
	require.True(t, one.Invert().Invert().Equals(one))

	ratio := a.Divide(a)
	require.True(t, ratio.Equals(one))
}

func TestIssuedArithmeticIdentities(t *testing.T) {
	usd, err := currency.NewISO("USD")
	require.NoError(t, err)
	issuer := xrplid.NoIssuerUInt160()

	a, err := IssuedParse("42.5", usd, issuer)
	require.NoError(t, err)
	zero, err := IssuedParse("0", usd, issuer)
	require.NoError(t, err)
	one, err := IssuedParse("1", usd, issuer)
	require.NoError(t, err)

	require.True(t, a.Add(zero).Equals(a))
	require.True(t, a.Subtract(a).IsZero())
	require.True(t, a.Multiply(one).Equals(a))

	inverted := a.Invert()
	require.True(t, inverted.Invert().Equals(a))
}

func TestNativeAndIssuedAreNotComparable(t *testing.T) {
	native, err := NativeFromDrops(100)
	require.NoError(t, err)
	usd, err := currency.NewISO("USD")
	require.NoError(t, err)
	issued, err := IssuedParse("100", usd, xrplid.NoIssuerUInt160())
	require.NoError(t, err)

	require.False(t, native.Equals(issued))
	_, err = native.CompareTo(issued)
	require.ErrorIs(t, err, ErrNotComparable)
	require.False(t, native.Add(issued).IsValid())
}

func TestInvalidPropagation(t *testing.T) {
	invalid := Invalid()
	require.False(t, invalid.IsValid())

	valid, err := NativeFromDrops(10)
	require.NoError(t, err)

	require.False(t, invalid.Add(valid).IsValid())
	require.False(t, valid.Add(invalid).IsValid())
	require.False(t, invalid.Multiply(valid).IsValid())
	require.False(t, invalid.Invert().IsValid())
}

func TestDivideByZeroIsInvalid(t *testing.T) {
	a, err := NativeFromDrops(100)
	require.NoError(t, err)
	zero, err := NativeFromDrops(0)
	require.NoError(t, err)

	require.False(t, a.Divide(zero).IsValid())
}

func TestRatioHumanAndProductHuman(t *testing.T) {
	usd, err := currency.NewISO("USD")
	require.NoError(t, err)
	issuer, err := xrplid.UInt160FromJSON(sampleIssuer)
	require.NoError(t, err)

	hundred, err := IssuedParse("100", usd, issuer)
	require.NoError(t, err)
	ten, err := IssuedParse("10", usd, issuer)
	require.NoError(t, err)

	ratio := hundred.RatioHuman(ten, InterestOpts{})
	require.True(t, ratio.IsValid())
	require.Equal(t, "10", ratio.ToText())
	require.Equal(t, "USD", ratio.Currency().ToHuman())

	doubled, err := IssuedParse("2", usd, issuer)
	require.NoError(t, err)
	product := ten.ProductHuman(doubled, InterestOpts{})
	require.Equal(t, "20", product.ToText())
}

func TestRatioHumanWithNativeDenominator(t *testing.T) {
	// from_json("10") denotes 10 drops (native amounts are integer
	// drops per spec.md's from_json rules), so the drops-compensation
	// step multiplies the 100 USD numerator by 10^6 before dividing by
	// the 10-drop denominator: 100*10^6/10 = 10000000. See DESIGN.md's
	// open-question note on this scenario for why that isn't "10".
	xrpAmount, err := NativeFromDrops(10)
	require.NoError(t, err)
	usd, err := currency.NewISO("USD")
	require.NoError(t, err)
	issuer, err := xrplid.UInt160FromJSON(sampleIssuer)
	require.NoError(t, err)
	numerator, err := IssuedParse("100", usd, issuer)
	require.NoError(t, err)

	result := numerator.RatioHuman(xrpAmount, InterestOpts{})
	require.True(t, result.IsValid())
	// Result is an IOU-typed intermediary: IsNative() is false even
	// though the denominator was native, but the currency tag tracks
	// the numerator.
	require.False(t, result.IsNative())
	require.Equal(t, "USD", result.Currency().ToHuman())
	require.Equal(t, "10000000", result.ToText())
}

func TestRatioHumanRejectsZeroOrInvalid(t *testing.T) {
	usd, err := currency.NewISO("USD")
	require.NoError(t, err)
	issuer := xrplid.NoIssuerUInt160()
	a, err := IssuedParse("100", usd, issuer)
	require.NoError(t, err)
	zero, err := IssuedParse("0", usd, issuer)
	require.NoError(t, err)

	require.False(t, a.RatioHuman(zero, InterestOpts{}).IsValid())
	require.False(t, a.RatioHuman(Invalid(), InterestOpts{}).IsValid())
}

func TestDropsAndDecimalXRPAccessors(t *testing.T) {
	native, err := NativeFromDrops(2_500_000)
	require.NoError(t, err)
	drops, ok := native.Drops()
	require.True(t, ok)
	require.Equal(t, int64(2_500_000), drops)
	xrp, ok := native.DecimalXRP()
	require.True(t, ok)
	require.True(t, xrp.Equals(mustDecimal(t, "2.5")))

	usd, err := currency.NewISO("USD")
	require.NoError(t, err)
	issued, err := IssuedParse("2.5", usd, xrplid.NoIssuerUInt160())
	require.NoError(t, err)
	_, ok = issued.Drops()
	require.False(t, ok)
	_, ok = issued.DecimalXRP()
	require.False(t, ok)

	_, ok = Invalid().Drops()
	require.False(t, ok)
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.ParseDecimal(s)
	require.NoError(t, err)
	return d
}
