package tmframe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGVCIDToVal(t *testing.T) {
	tests := []struct {
		name string
		g    GVCID
		want uint16
	}{
		{
			name: "all max fields", // spec §8 scenario 6
			g:    GVCID{MCID: MCID{TFVN: 3, SCID: 0x3FF}, VCID: 7},
			want: 0xFFFE,
		},
		{
			name: "all zero",
			g:    GVCID{},
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GVCIDToVal(tt.g)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestGVCIDToVal_RangeViolation(t *testing.T) {
	_, err := GVCIDToVal(GVCID{MCID: MCID{TFVN: 4}})
	require.Error(t, err)
	require.True(t, IsErrRangeViolation(err))
}

func TestGVCIDRoundTrip(t *testing.T) {
	g := GVCID{MCID: MCID{TFVN: 2, SCID: 0x155}, VCID: 5}
	val, err := GVCIDToVal(g)
	require.NoError(t, err)
	require.True(t, g.Equal(GVCIDFromVal(val)))
}
