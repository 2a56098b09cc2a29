package moneypkg

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		input   string
		want    Amount
		wantErr error
	}{
		{name: "Integer", input: "100", want: 100_0000_0000},
		{name: "AllDecimalPlaces", input: "30.00000000", want: 30_0000_0000},
		{name: "SmallestUnit", input: "0.00000001", want: 1},
		{name: "Negative", input: "-1.5", want: -1_5000_0000},
		{name: "Zero", input: "0", want: 0},
		{name: "TooPrecise", input: "1.000000005", wantErr: ErrTooPrecise},
		{name: "Malformed", input: "!@#$", wantErr: ErrMalformed},
		{name: "Empty", input: "", wantErr: ErrMalformed},
		{name: "OutOfRange", input: "99999999999999999999", wantErr: ErrOutOfRange},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := FromString(tc.input)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "30.00000000", Amount(30_0000_0000).String())
	require.Equal(t, "0.00000001", Amount(1).String())
	require.Equal(t, "0.00000000", Amount(0).String())
	require.Equal(t, "-0.50000000", Amount(-5000_0000).String())
}

func TestArithmetic(t *testing.T) {
	t.Parallel()

	a := Amount(100_0000_0000)
	b := Amount(30_0000_0000)

	require.Equal(t, Amount(130_0000_0000), a.Add(b))
	require.Equal(t, Amount(70_0000_0000), a.Sub(b))
	require.True(t, b.LessThan(a))
	require.True(t, a.IsPositive())
	require.False(t, Amount(0).IsPositive())
	require.True(t, a.Sub(a).Sub(b).IsNegative())
}

func TestJSONRoundTrip(t *testing.T) {
	t.Parallel()

	in := Amount(1_0000_0005)

	data, err := json.Marshal(in)
	require.NoError(t, err)
	require.Equal(t, `"1.00000005"`, string(data))

	var out Amount
	require.NoError(t, json.Unmarshal(data, &out))
	require.Equal(t, in, out)
}

func TestScanValue(t *testing.T) {
	t.Parallel()

	var a Amount
	require.NoError(t, a.Scan(int64(42)))
	require.Equal(t, Amount(42), a)

	v, err := Amount(42).Value()
	require.NoError(t, err)
	require.Equal(t, int64(42), v)

	require.Error(t, a.Scan("42"))
}
