package chargestats

// Vendor atom value arrays start at field ID 2; slot position in the
// dense array is field ID minus this offset.
const vendorAtomOffset = 2

// ChargeStats atom field IDs.
const (
	fieldAdapterType = iota + vendorAtomOffset
	fieldAdapterVoltage
	fieldAdapterAmperage
	fieldSsocIn
	fieldVoltageIn
	fieldSsocOut
	fieldVoltageOut
	fieldChargeCapacity
	fieldCsiAggregateStatus
	fieldCsiAggregateType
	fieldAdapterCapabilities0
	fieldAdapterCapabilities1
	fieldAdapterCapabilities2
	fieldAdapterCapabilities3
	fieldAdapterCapabilities4
	fieldReceiverState0
	fieldReceiverState1
)

// VoltageTierStats atom field IDs.
const (
	fieldVoltageTier = iota + vendorAtomOffset
	fieldSocIn
	fieldCcIn
	fieldTempIn
	fieldTimeFastSecs
	fieldTimeTaperSecs
	fieldTimeOtherSecs
	fieldTempMin
	fieldTempAvg
	fieldTempMax
	fieldIbattMin
	fieldIbattAvg
	fieldIbattMax
	fieldIclMin
	fieldIclAvg
	fieldIclMax
	fieldMinAdapterPowerOut
	fieldTimeAvgAdapterPowerOut
	fieldMaxAdapterPowerOut
	fieldChargingOperatingPoint
)

// Adapter type forced into slot 0 when a PCA log is present without a
// wireless one.
const adapterTypeUSBPDPPS int32 = 8

var chargeStatsFields = [...]int32{
	fieldAdapterType,
	fieldAdapterVoltage,
	fieldAdapterAmperage,
	fieldSsocIn,
	fieldVoltageIn,
	fieldSsocOut,
	fieldVoltageOut,
	fieldChargeCapacity,
	fieldCsiAggregateStatus,
	fieldCsiAggregateType,
	fieldAdapterCapabilities0,
	fieldAdapterCapabilities1,
	fieldAdapterCapabilities2,
	fieldAdapterCapabilities3,
	fieldAdapterCapabilities4,
	fieldReceiverState0,
	fieldReceiverState1,
}

var voltageTierFields = [...]int32{
	fieldVoltageTier,
	fieldSocIn,
	fieldCcIn,
	fieldTempIn,
	fieldTimeFastSecs,
	fieldTimeTaperSecs,
	fieldTimeOtherSecs,
	fieldTempMin,
	fieldTempAvg,
	fieldTempMax,
	fieldIbattMin,
	fieldIbattAvg,
	fieldIbattMax,
	fieldIclMin,
	fieldIclAvg,
	fieldIclMax,
	fieldMinAdapterPowerOut,
	fieldTimeAvgAdapterPowerOut,
	fieldMaxAdapterPowerOut,
	fieldChargingOperatingPoint,
}

const (
	chargeStatsSlots = len(chargeStatsFields) // 17
	wlcSessionSlots  = 7                      // slots contributed by wireless/PCA
	baseSessionSlots = chargeStatsSlots - wlcSessionSlots

	voltageTierSlots = len(voltageTierFields) // 20
	wlcTierSlots     = 4                      // trailing wireless-derived slots
	baseTierSlots    = voltageTierSlots - wlcTierSlots
)
