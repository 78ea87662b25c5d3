package utils

// ComputeStay prices a stay at a nightly rate: nights follow NightCount, total is rate × nights.
func ComputeStay(nightlyPrice int64, checkIn, checkOut string) (nights int, total int64) {
	nights = NightCount(checkIn, checkOut)
	return nights, nightlyPrice * int64(nights)
}
