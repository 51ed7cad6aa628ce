package currency

import (
	"testing"

	"github.com/chainlane/xrplcore/internal/core/decimal"
	"github.com/stretchr/testify/require"
)

func TestNativeCurrency(t *testing.T) {
	c := Native()
	require.True(t, c.IsNative())
	require.True(t, c.IsValid())
	require.Equal(t, "XRP", c.ToHuman())
	require.False(t, c.HasInterest())
}

func TestISOCurrencyRoundTrip(t *testing.T) {
	c, err := NewISO("USD")
	require.NoError(t, err)
	require.False(t, c.IsNative())
	require.Equal(t, "USD", c.ToHuman())
	require.Equal(t, "0000000000000000000000005553440000000000", c.ToHex())

	decoded, err := FromHex(c.ToHex())
	require.NoError(t, err)
	require.True(t, decoded.Equals(c))
	require.Equal(t, "USD", decoded.ToHuman())
}

func TestISOCurrencyRejectsXRP(t *testing.T) {
	_, err := NewISO("XRP")
	require.ErrorIs(t, err, ErrInvalidCode)
	_, err = NewISO("xrp")
	require.ErrorIs(t, err, ErrInvalidCode)
}

func TestISOCurrencyRejectsWrongLength(t *testing.T) {
	_, err := NewISO("US")
	require.ErrorIs(t, err, ErrInvalidCode)
}

func TestFromHumanVariants(t *testing.T) {
	xrp, err := FromHuman("xrp")
	require.NoError(t, err)
	require.True(t, xrp.IsNative())

	usd, err := FromHuman("USD")
	require.NoError(t, err)
	require.Equal(t, "USD", usd.ToHuman())

	hexForm, err := FromHuman("0000000000000000000000005553440000000000")
	require.NoError(t, err)
	require.Equal(t, "USD", hexForm.ToHuman())
}

func TestDemurrageCurrencyNoInterestAtZeroRate(t *testing.T) {
	c, err := NewDemurrage("DMC", 0, 0)
	require.NoError(t, err)
	require.False(t, c.IsNative())
	require.False(t, c.HasInterest())

	_, err = c.GetInterestAt(0)
	require.ErrorIs(t, err, ErrNoInterest)
}

func TestDemurrageInterestGrowsOverTime(t *testing.T) {
	start := uint32(100)
	halflifeSeconds := float64(3600) // one hour half-life, interest (positive)
	c, err := NewDemurrage("DMC", halflifeSeconds, start)
	require.NoError(t, err)
	require.True(t, c.HasInterest())

	at0 := RippleEpochOffset + int64(start)
	factor0, err := c.GetInterestAt(at0)
	require.NoError(t, err)
	one, err := decimal.FromFloat64(1)
	require.NoError(t, err)
	require.True(t, factor0.Equals(one))

	atHalflife := at0 + int64(halflifeSeconds)
	factorHalf, err := c.GetInterestAt(atHalflife)
	require.NoError(t, err)
	require.Equal(t, 1, factorHalf.Compare(factor0), "factor should have doubled after one half-life")
}

func TestDemurrageDecaysWithNegativeHalflife(t *testing.T) {
	start := uint32(0)
	c, err := NewDemurrage("DMC", -3600, start)
	require.NoError(t, err)

	base := RippleEpochOffset + int64(start)
	f0, err := c.GetInterestAt(base)
	require.NoError(t, err)

	later, err := c.GetInterestAt(base + 3600)
	require.NoError(t, err)
	require.Equal(t, -1, later.Compare(f0), "demurrage factor should shrink over time")
}

func TestDemurrageRoundTripThroughHex(t *testing.T) {
	c, err := NewDemurrage("DMC", 1800, 555)
	require.NoError(t, err)

	decoded, err := FromHex(c.ToHex())
	require.NoError(t, err)
	require.True(t, decoded.HasInterest())
	require.True(t, decoded.Equals(c))

	f1, err := c.GetInterestAt(RippleEpochOffset + 1000)
	require.NoError(t, err)
	f2, err := decoded.GetInterestAt(RippleEpochOffset + 1000)
	require.NoError(t, err)
	require.True(t, f1.Equals(f2))
}

func TestFromHexRejectsWrongLength(t *testing.T) {
	_, err := FromHex("1234")
	require.Error(t, err)
}
