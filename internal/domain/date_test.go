package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-03-09"`), &d))
	assert.Equal(t, "2024-03-09", d.String())

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-09"`, string(b))

	require.NoError(t, json.Unmarshal([]byte(`"2024-03-09T22:15:00Z"`), &d))
	assert.Equal(t, "2024-03-09", d.String())

	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`"09/03/2024"`), &d))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2023, 12, 31, 18, 30, 0, 0, time.UTC)))
	assert.Equal(t, "2023-12-31", d.String())

	require.NoError(t, d.Scan("2022-01-05"))
	assert.Equal(t, "2022-01-05", d.String())

	require.NoError(t, d.Scan([]byte("2022-01-06 00:00:00+00:00")))
	assert.Equal(t, "2022-01-06", d.String())

	assert.Error(t, d.Scan(42))
}

func TestDateValue(t *testing.T) {
	v, err := Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	d, err := ParseDate("2021-07-14")
	require.NoError(t, err)
	v, err = d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2021-07-14", v)
}
