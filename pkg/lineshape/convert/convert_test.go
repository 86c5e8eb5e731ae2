package convert_test

import (
	"errors"
	"net/netip"
	"reflect"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lineshape/lineshape-go/pkg/lineshape/convert"
)

func TestIntegers(t *testing.T) {
	tests := []struct {
		name    string
		typ     convert.Type
		raw     string
		want    any
		wantErr bool
	}{
		{"plain", convert.Int, "65", 65, false},
		{"zeros", convert.Int, "000", 0, false},
		{"negative", convert.Int, "-45", -45, false},
		{"trailing garbage", convert.Int, "5x6", nil, true},
		{"trailing space", convert.Int, "35  ", nil, true},
		{"leading space", convert.Int, " 35", nil, true},
		{"empty", convert.Int, "", nil, true},
		{"hex is not base 10", convert.Int, "0x10", nil, true},
		{"int8 overflow", convert.Int8, "128", nil, true},
		{"int8 max", convert.Int8, "127", int8(127), false},
		{"int32", convert.Int32, "-34", int32(-34), false},
		{"int64", convert.Int64, "9000000000", int64(9000000000), false},
		{"uint negative", convert.Uint32, "-1", nil, true},
		{"uint32", convert.Uint32, "43", uint32(43), false},
		{"uint64", convert.Uint64, "18446744073709551615", uint64(18446744073709551615), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.typ.Convert(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				var convErr *convert.Error
				require.True(t, errors.As(err, &convErr))
				assert.Equal(t, tt.raw, convErr.Raw)
				assert.Equal(t, tt.typ.Name(), convErr.Type)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFloats(t *testing.T) {
	got, err := convert.Float64.Convert("3.25")
	require.NoError(t, err)
	assert.Equal(t, 3.25, got)

	got, err = convert.Float32.Convert("-0.5")
	require.NoError(t, err)
	assert.Equal(t, float32(-0.5), got)

	_, err = convert.Float64.Convert("3.25ms")
	require.Error(t, err)
	assert.ErrorIs(t, err, strconv.ErrSyntax)
}

func TestString_NeverFails(t *testing.T) {
	for _, raw := range []string{"", " ", "5x6", "func<>name", "\x00\xff"} {
		got, err := convert.String.Convert(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, got)
	}
}

func TestBoolDurationTime(t *testing.T) {
	b, err := convert.Bool.Convert("true")
	require.NoError(t, err)
	assert.Equal(t, true, b)
	_, err = convert.Bool.Convert("yes")
	assert.Error(t, err)

	d, err := convert.Duration.Convert("1m30s")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, d)
	_, err = convert.Duration.Convert("1m30s!")
	assert.Error(t, err)

	ts, err := convert.Time("2006-01-02").Convert("2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), ts)
	_, err = convert.Time("2006-01-02").Convert("2024-01-15 ")
	assert.Error(t, err)
}

func TestTime_KeepsParseError(t *testing.T) {
	_, err := convert.Time("2006-01-02").Convert("2024-13-01")
	require.Error(t, err)

	var cerr *convert.Error
	require.ErrorAs(t, err, &cerr)
	var perr *time.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, err.Error(), "month out of range")
}

func TestError_Message(t *testing.T) {
	_, err := convert.Int.Convert("5x6")
	require.Error(t, err)
	assert.Equal(t, `cannot convert "5x6" to int: invalid syntax`, err.Error())
}

func TestFunc(t *testing.T) {
	upper := convert.Func("level", func(raw string) (any, error) {
		switch raw {
		case "INFO", "WARN", "ERROR":
			return raw, nil
		}
		return nil, errors.New("unknown level")
	})

	v, err := upper.Convert("WARN")
	require.NoError(t, err)
	assert.Equal(t, "WARN", v)

	_, err = upper.Convert("warn")
	var convErr *convert.Error
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, "level", convErr.Type)
}

func TestLookup(t *testing.T) {
	for _, name := range convert.Names() {
		typ, ok := convert.Lookup(name)
		require.True(t, ok, name)
		assert.NotNil(t, typ)
	}

	typ, ok := convert.Lookup("int")
	require.True(t, ok)
	assert.Equal(t, "int", typ.Name())

	_, ok = convert.Lookup("complex128")
	assert.False(t, ok)
}

func TestParseType(t *testing.T) {
	typ, err := convert.ParseType("uint8")
	require.NoError(t, err)
	assert.Equal(t, "uint8", typ.Name())

	typ, err = convert.ParseType("time:15:04:05")
	require.NoError(t, err)
	assert.Equal(t, "time(15:04:05)", typ.Name())
	v, err := typ.Convert("23:59:59")
	require.NoError(t, err)
	assert.Equal(t, 23, v.(time.Time).Hour())

	_, err = convert.ParseType("time:")
	assert.Error(t, err)

	_, err = convert.ParseType("complex128")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown type "complex128"`)
	assert.Contains(t, err.Error(), "bool, duration, float")
	assert.ErrorIs(t, err, convert.ErrUnknownType)
}

type level int

func TestForType(t *testing.T) {
	tests := []struct {
		typ  reflect.Type
		name string
	}{
		{reflect.TypeOf(""), "string"},
		{reflect.TypeOf(0), "int"},
		{reflect.TypeOf(level(0)), "int"},
		{reflect.TypeOf(uint16(0)), "uint16"},
		{reflect.TypeOf(0.0), "float64"},
		{reflect.TypeOf(time.Second), "duration"},
		{reflect.TypeOf(netip.Addr{}), "netip.Addr"},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			typ, err := convert.ForType(tt.typ)
			require.NoError(t, err)
			assert.Equal(t, tt.name, typ.Name())
		})
	}

	_, err := convert.ForType(reflect.TypeOf([]int{}))
	assert.Error(t, err)
}

func TestText(t *testing.T) {
	typ, err := convert.Text(reflect.TypeOf(netip.Addr{}))
	require.NoError(t, err)

	v, err := typ.Convert("10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, netip.MustParseAddr("10.0.0.1"), v)

	_, err = typ.Convert("10.0.0.1:80")
	assert.Error(t, err)

	_, err = convert.Text(reflect.TypeOf(0))
	assert.Error(t, err)
}
