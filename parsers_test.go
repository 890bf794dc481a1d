package avwx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"
)

func TestOrdinalDay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		day  int
		want string
	}{
		{1, "1st"},
		{2, "2nd"},
		{3, "3rd"},
		{4, "4th"},
		{11, "11th"},
		{12, "12th"},
		{13, "13th"},
		{20, "20th"},
		{21, "21st"},
		{22, "22nd"},
		{23, "23rd"},
		{31, "31st"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, OrdinalDay(tt.day))
	}
}

func TestParseStation(t *testing.T) {
	t.Parallel()

	station, err := ParseStation("EGMC")
	require.NoError(t, err)
	assert.Equal(t, "EGMC", station)

	_, err = ParseStation("EGM")
	assert.ErrorIs(t, err, ErrMissingStation)

	_, err = ParseStation("egmc")
	assert.ErrorIs(t, err, ErrMissingStation)
}

func TestParseIssueTime(t *testing.T) {
	t.Parallel()

	at, err := ParseIssueTime("201650")
	require.NoError(t, err)
	assert.Equal(t, Instant{Day: 20, Hour: 16, Minute: 50}, at)

	for _, token := range []string{"321650", "002315", "202460", "201661", "20165", "2016500"} {
		_, err := ParseIssueTime(token)
		assert.ErrorIs(t, err, ErrMalformedTime, "token %q", token)
	}
}

func TestParseValidityToken(t *testing.T) {
	t.Parallel()

	period, err := ParseValidityToken("2018/2102")
	require.NoError(t, err)
	assert.Equal(t, Instant{Day: 20, Hour: 18}, period.From)
	assert.Equal(t, Instant{Day: 21, Hour: 2}, period.To)

	_, err = ParseValidityToken("2018-2102")
	assert.ErrorIs(t, err, ErrMalformedTime)

	_, err = ParseValidityToken("2025/2102")
	assert.ErrorIs(t, err, ErrMalformedTime)
}

// Hour 24 means end of day and normalizes to hour 0 of the next day number.
func TestParseValidityToken_hour24(t *testing.T) {
	t.Parallel()

	period, err := ParseValidityToken("2924/3006")
	require.NoError(t, err)
	assert.Equal(t, Instant{Day: 30, Hour: 0}, period.From)
	assert.Equal(t, Instant{Day: 30, Hour: 6}, period.To)

	period, err = ParseValidityToken("1218/1324")
	require.NoError(t, err)
	assert.Equal(t, Instant{Day: 14, Hour: 0}, period.To)
}

func TestParseWind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Wind{Direction: 310, Speed: 9}, parseWind("31009KT"))
	assert.Equal(t, Wind{Direction: 240, Speed: 16, Gust: ptr.To(24)}, parseWind("24016G24KT"))
	assert.Equal(t, Wind{Variable: true, Speed: 3}, parseWind("VRB03KT"))
	assert.Equal(t, Wind{Direction: 280, Speed: 105}, parseWind("280105KT"))
}

// MPS and KMH winds come back in whole knots.
func TestParseWind_otherUnits(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Wind{Direction: 320, Speed: 10}, parseWind("32005MPS"))
	assert.Equal(t, Wind{Direction: 320, Speed: 19, Gust: ptr.To(29)}, parseWind("32010G15MPS"))
	assert.Equal(t, Wind{Direction: 250, Speed: 5}, parseWind("25010KMH"))
	assert.Equal(t, Wind{Variable: true, Speed: 4}, parseWind("VRB02MPS"))
}

func TestParseWindShear(t *testing.T) {
	t.Parallel()

	ws := parseWindShear("WS020/30025KT")
	assert.Equal(t, 2000, ws.Altitude)
	assert.Equal(t, Wind{Direction: 300, Speed: 25}, ws.Wind)
	assert.Equal(t, "WS020/30025KT", ws.Raw)

	ws = parseWindShear("WS010/18040G50KT")
	assert.Equal(t, 1000, ws.Altitude)
	assert.Equal(t, Wind{Direction: 180, Speed: 40, Gust: ptr.To(50)}, ws.Wind)

	ws = parseWindShear("WS015/20010MPS")
	assert.Equal(t, Wind{Direction: 200, Speed: 19}, ws.Wind)
}

func TestParseWindVariation(t *testing.T) {
	t.Parallel()

	wind := parseWind("31009KT")
	parseWindVariation(&wind, "280V360")
	assert.Equal(t, ptr.To(280), wind.VariableFrom)
	assert.Equal(t, ptr.To(360), wind.VariableTo)
}

func TestParseVisibility(t *testing.T) {
	t.Parallel()

	vis := parseVisibility("9999")
	assert.Equal(t, Visibility{Distance: 9999, Unit: UnitMeters, OrMore: true, Raw: "9999"}, vis)

	vis = parseVisibility("0350")
	assert.Equal(t, Visibility{Distance: 350, Unit: UnitMeters, Raw: "0350"}, vis)

	vis = parseVisibility("10SM")
	assert.Equal(t, Visibility{Distance: 10, Unit: UnitStatuteMiles, Raw: "10SM"}, vis)

	vis = parseVisibility("P6SM")
	assert.Equal(t, Visibility{Distance: 6, Unit: UnitStatuteMiles, OrMore: true, Raw: "P6SM"}, vis)

	vis = parseVisibility("6+")
	assert.Equal(t, Visibility{Distance: 6, Unit: UnitStatuteMiles, OrMore: true, Raw: "6+"}, vis)
}

func TestParseCloud(t *testing.T) {
	t.Parallel()

	assert.Equal(t, CloudLayer{Coverage: CoverageBroken, Height: 1900}, parseCloud("BKN019"))
	assert.Equal(t, CloudLayer{Coverage: CoverageFew, Height: 25000}, parseCloud("FEW250"))
	assert.Equal(t, CloudLayer{Coverage: CoverageVertical, Height: 200}, parseCloud("VV002"))
	assert.Equal(t, CloudLayer{Coverage: CoverageBroken, Height: 2500, Type: "CB"}, parseCloud("BKN025CB"))
	assert.Equal(t, CloudLayer{Coverage: CoverageFew, Height: 3000, Type: "TCU"}, parseCloud("FEW030TCU"))
	assert.Equal(t, CloudLayer{Coverage: CoverageSkyClear}, parseCloud("SKC"))
	assert.Equal(t, CloudLayer{Coverage: CoverageNoSignificant}, parseCloud("NSC"))
}

func TestParseWeather(t *testing.T) {
	t.Parallel()

	assert.Equal(t, WeatherGroup{Intensity: "-", Descriptor: "SH", Phenomenon: "RA"}, parseWeather("-SHRA"))
	assert.Equal(t, WeatherGroup{Intensity: "+", Descriptor: "TS", Phenomenon: "RA"}, parseWeather("+TSRA"))
	assert.Equal(t, WeatherGroup{Phenomenon: "BR"}, parseWeather("BR"))
	assert.Equal(t, WeatherGroup{Intensity: "-", Phenomenon: "RASN"}, parseWeather("-RASN"))
	assert.Equal(t, WeatherGroup{Intensity: "VC", Descriptor: "TS"}, parseWeather("VCTS"))
}

func TestParseTempDew(t *testing.T) {
	t.Parallel()

	assert.Equal(t, TemperatureDewpoint{Temperature: 3, DewPoint: 0}, parseTempDew("03/M00"))
	assert.Equal(t, TemperatureDewpoint{Temperature: -5, DewPoint: -12}, parseTempDew("M05/M12"))
	assert.Equal(t, TemperatureDewpoint{Temperature: 27, DewPoint: 17}, parseTempDew("27/17"))
}

func TestParseAltimeter(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Altimeter{Unit: UnitHectopascals, Value: 1014}, parseAltimeter("Q1014"))
	assert.Equal(t, Altimeter{Unit: UnitInchesHg, Value: 29.92}, parseAltimeter("A2992"))
}

func TestParseForecastTemperature(t *testing.T) {
	t.Parallel()

	extreme, err := parseForecastTemperature("TX33/1315Z")
	require.NoError(t, err)
	assert.Equal(t, ForecastTemperature{Value: 33, At: Instant{Day: 13, Hour: 15}}, extreme)

	extreme, err = parseForecastTemperature("TNM02/1406Z")
	require.NoError(t, err)
	assert.Equal(t, ForecastTemperature{Value: -2, At: Instant{Day: 14, Hour: 6}}, extreme)
}

func TestParseQNH(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 29.75, parseQNH("QNH2975INS"))
}
