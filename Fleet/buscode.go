package Fleet

// DeriveBusCode builds the composite bus code from its three fragments:
// the two-letter model prefix, the last four characters of the chassis
// number and the serial suffix. The chassis fragment only participates
// once the chassis number has at least four characters; a shorter chassis
// contributes nothing. Pure function; callers re-derive the code on every
// fragment edit rather than patching a stored value.
func DeriveBusCode(modelPrefix, chassisNo, serialNo string) string {
	chassis := []rune(chassisNo)
	if len(chassis) < 4 {
		return modelPrefix + serialNo
	}
	return modelPrefix + string(chassis[len(chassis)-4:]) + serialNo
}
