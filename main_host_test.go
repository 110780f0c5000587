//go:build !tinygo

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReportPeriodUS(t *testing.T) {
	us, err := reportPeriodUS(0)
	require.NoError(t, err)
	require.Zero(t, us)

	us, err = reportPeriodUS(2 * time.Second)
	require.NoError(t, err)
	require.Equal(t, uint32(2_000_000), us)

	us, err = reportPeriodUS(maxReportEvery)
	require.NoError(t, err)
	require.Equal(t, uint32(0xFFFFFFFF), us)

	_, err = reportPeriodUS(72 * time.Minute)
	require.Error(t, err)
	_, err = reportPeriodUS(-time.Second)
	require.Error(t, err)
	_, err = reportPeriodUS(time.Nanosecond)
	require.Error(t, err)
}
