package chargestats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubWireless stands in for the wireless subsystem model.
type stubWireless struct {
	translated int32
	tierStats  TierPowerStats
	resets     int
}

func (s *stubWireless) TranslateAdapterMode(sysMode int32) int32 {
	s.translated = sysMode
	return 100 + sysMode
}

func (s *stubWireless) CalculateTierStats(int32, string) TierPowerStats {
	return s.tierStats
}

func (s *stubWireless) ResetTier() {
	s.resets++
}

const (
	baseSummary  = "3,9000,2000, 80,4400,90,4450"
	wirelessHead = "A:2\nD:1,2,3,4,5, 6,7\n"
	pcaHead      = "D:a,b 1,2,3,4,5\n"
)

func TestAssembleSessionBaseOnly(t *testing.T) {
	rec, err := assembleSession(baseSummary, "", "", "", &stubWireless{})
	require.NoError(t, err)

	assert.Equal(t, baseSessionSlots, rec.size)
	assert.Equal(t, int32(3), rec.slots[0])
	assert.Equal(t, int32(4450), rec.slots[6])
	// Slots never written stay at their zero default.
	for i := 7; i < chargeStatsSlots; i++ {
		assert.Zero(t, rec.slots[i], "slot %d", i)
	}
}

func TestAssembleSessionWireless(t *testing.T) {
	wireless := &stubWireless{}
	rec, err := assembleSession(baseSummary, wirelessHead, "", "", wireless)
	require.NoError(t, err)

	assert.Equal(t, chargeStatsSlots, rec.size)
	assert.Equal(t, int32(2), wireless.translated)
	assert.Equal(t, int32(102), rec.slots[0], "adapter type retranslated from sys_mode")
	for i := 0; i < wlcSessionSlots; i++ {
		assert.Equal(t, int32(i+1), rec.slots[10+i], "slot %d", 10+i)
	}
}

func TestAssembleSessionPCAOnly(t *testing.T) {
	rec, err := assembleSession(baseSummary, "", pcaHead, "", &stubWireless{})
	require.NoError(t, err)

	assert.Equal(t, chargeStatsSlots, rec.size)
	assert.Equal(t, adapterTypeUSBPDPPS, rec.slots[0], "adapter type forced to PPS")
	assert.Equal(t, int32(0xa), rec.slots[10])
	assert.Equal(t, int32(0xb), rec.slots[11])
	assert.Equal(t, int32(3), rec.slots[12])
	assert.Equal(t, int32(4), rec.slots[13])
	assert.Equal(t, int32(5), rec.slots[14])
	assert.Equal(t, int32(1), rec.slots[15])
	assert.Equal(t, int32(2), rec.slots[16])
}

// With both side channels present, wireless keeps the adapter type and
// slots 10/11/15 while PCA still owns 12/13/14/16.
func TestAssembleSessionWirelessAndPCA(t *testing.T) {
	rec, err := assembleSession(baseSummary, wirelessHead, pcaHead, "", &stubWireless{})
	require.NoError(t, err)

	assert.Equal(t, chargeStatsSlots, rec.size)
	assert.Equal(t, int32(102), rec.slots[0])
	assert.Equal(t, int32(1), rec.slots[10])
	assert.Equal(t, int32(2), rec.slots[11])
	assert.Equal(t, int32(6), rec.slots[15])
	assert.Equal(t, int32(3), rec.slots[12])
	assert.Equal(t, int32(4), rec.slots[13])
	assert.Equal(t, int32(5), rec.slots[14])
	assert.Equal(t, int32(2), rec.slots[16])
}

// A matching PDO line overrides the APDO/PDO slots last, whatever
// wireless or PCA put there.
func TestAssembleSessionPDOOverride(t *testing.T) {
	pdoText := "1, 85.5,1200,320, 10,5,2, 15,18,22, -200,-150,-100, 50,55,60\nD:11,22,33,44,55,66,77\n"

	rec, err := assembleSession(baseSummary, wirelessHead, pcaHead, pdoText, &stubWireless{})
	require.NoError(t, err)

	assert.Equal(t, chargeStatsSlots, rec.size)
	assert.Equal(t, int32(0x22), rec.slots[15], "APDO")
	assert.Equal(t, int32(0x77), rec.slots[16], "PDO")
}

func TestAssembleSessionWirelessDegraded(t *testing.T) {
	tests := []struct {
		name     string
		wireless string
		wantSize int
		wantType int32
	}{
		{
			name:     "bad adapter type line skips wireless merge",
			wireless: "X:2\nD:1,2,3,4,5, 6,7\n",
			wantSize: baseSessionSlots,
			wantType: 3,
		},
		{
			name:     "bad capabilities line keeps translated type only",
			wireless: "A:2\nD:bogus\n",
			wantSize: baseSessionSlots,
			wantType: 102,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := assembleSession(baseSummary, tt.wireless, "", "", &stubWireless{})
			require.NoError(t, err)
			assert.Equal(t, tt.wantSize, rec.size)
			assert.Equal(t, tt.wantType, rec.slots[0])
		})
	}
}

func TestAssembleSessionMalformedSummary(t *testing.T) {
	_, err := assembleSession("0", wirelessHead, pcaHead, "", &stubWireless{})
	require.Error(t, err)
}
