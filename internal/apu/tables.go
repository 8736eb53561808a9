package apu

// lengthTable maps a 5-bit length-counter load value to its counter value
// (shared by all four length-counted channels).
var lengthTable = [32]uint8{
	10, 254, 20, 2, 40, 4, 80, 6,
	160, 8, 60, 10, 14, 12, 26, 14,
	12, 16, 24, 8, 48, 6, 96, 4,
	192, 2, 72, 16, 28, 32, 52, 2,
}

// dutyTable holds the four pulse duty-cycle waveforms, 8 steps each.
var dutyTable = [4][8]uint8{
	{0, 1, 0, 0, 0, 0, 0, 0}, // 12.5%
	{0, 1, 1, 0, 0, 0, 0, 0}, // 25%
	{0, 1, 1, 1, 1, 0, 0, 0}, // 50%
	{1, 0, 0, 1, 1, 1, 1, 1}, // 75%
}

// triangleTable is the 32-step triangle wave sequence.
var triangleTable = [32]uint8{
	15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0,
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15,
}

// noisePeriodTableNTSC and noisePeriodTablePAL give the noise timer period
// per the 4-bit period index, in CPU cycles.
var noisePeriodTableNTSC = [16]uint16{
	4, 8, 16, 32, 64, 96, 128, 160,
	202, 254, 380, 508, 762, 1016, 2034, 4068,
}

var noisePeriodTablePAL = [16]uint16{
	4, 7, 14, 30, 60, 88, 118, 148,
	188, 236, 354, 472, 708, 944, 1890, 3778,
}

// dmcRateTableNTSC and dmcRateTablePAL give the DMC timer period per the
// 4-bit rate index, in CPU cycles.
var dmcRateTableNTSC = [16]uint16{
	428, 380, 340, 320, 286, 254, 226, 214,
	190, 160, 142, 128, 106, 84, 72, 54,
}

var dmcRateTablePAL = [16]uint16{
	398, 354, 316, 298, 276, 236, 210, 198,
	176, 148, 132, 118, 98, 78, 66, 50,
}
