package bluetooth

// ManufacturerLabel names an unnamed device after its Bluetooth SIG company ID
// and the last two octets of its MAC, e.g. "Apple EE:FF". Unknown IDs give "".
// See: https://www.bluetooth.com/specifications/assigned-numbers/
func ManufacturerLabel(companyID uint16, mac string) string {
	name, ok := companyNames[companyID]
	if !ok {
		return ""
	}
	if len(mac) == 17 {
		return name + " " + mac[12:]
	}
	return name
}

var companyNames = map[uint16]string{
	0x004C: "Apple",
	0x0006: "Microsoft",
	0x00E0: "Google",
	0x0075: "Samsung",
	0x0310: "Xiaomi",
	0x0157: "Huawei",
	0x038F: "Garmin",
	0x0087: "Bose",
	0x012D: "Sony",
	0x0171: "Amazon",
	0x02FF: "Tile",
	0x0059: "Nordic",
	0x000D: "Texas Inst.",
	0x0822: "Tuya/Govee",
	0x0499: "Ruuvi",
	0x015D: "Espressif",
	0x01DA: "Jabra",
	0x0958: "IKEA",
	0x03DA: "Fitbit",
	0x0269: "Oura",
	0x0473: "Withings",
}
