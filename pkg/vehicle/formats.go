package vehicle

// The types below enumerate values accepted by the server. They are sent as-is and not validated
// client-side.

type DistanceFormat string

const (
	DistanceKilometers DistanceFormat = "km"
	DistanceMiles      DistanceFormat = "mi"
)

type TemperatureFormat string

const (
	TemperatureCelsius    TemperatureFormat = "c"
	TemperatureFahrenheit TemperatureFormat = "f"
)

type PressureFormat string

const (
	PressureBar PressureFormat = "bar"
	PressureKPa PressureFormat = "kpa"
	PressurePSI PressureFormat = "psi"
)

type MapStyle string

const (
	MapStyleLight MapStyle = "light"
	MapStyleDark  MapStyle = "dark"
)

// Format selects the encoding of historical data.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

type Seat string

const (
	SeatFrontLeft     Seat = "front_left"
	SeatFrontRight    Seat = "front_right"
	SeatRearLeft      Seat = "rear_left"
	SeatRearCenter    Seat = "rear_center"
	SeatRearRight     Seat = "rear_right"
	SeatThirdRowLeft  Seat = "third_row_left"
	SeatThirdRowRight Seat = "third_row_right"
)

type ClimateKeeperMode string

const (
	ClimateKeeperOff  ClimateKeeperMode = "off"
	ClimateKeeperOn   ClimateKeeperMode = "on"
	ClimateKeeperDog  ClimateKeeperMode = "dog"
	ClimateKeeperCamp ClimateKeeperMode = "camp"
)
