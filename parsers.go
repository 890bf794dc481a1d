package avwx

import (
	"fmt"
	"strconv"
	"strings"
)

// OrdinalDay renders a day-of-month with its English ordinal suffix. The
// teens always take "th" regardless of the trailing digit.
func OrdinalDay(day int) string {
	suffix := "th"
	if day%100 < 11 || day%100 > 13 {
		switch day % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(day) + suffix
}

// ParseStation validates a 4-letter aerodrome identifier.
func ParseStation(token string) (string, error) {
	if !stationRegex.MatchString(token) {
		return "", fmt.Errorf("%w: %q", ErrMissingStation, token)
	}
	return token, nil
}

// ParseIssueTime parses a DDHHMM digit group (the trailing Z already
// stripped) into an instant.
func ParseIssueTime(token string) (Instant, error) {
	matches := issueTimeRegex.FindStringSubmatch(token)
	if matches == nil {
		return Instant{}, fmt.Errorf("%w: %q is not DDHHMM", ErrMalformedTime, token)
	}

	day, _ := strconv.Atoi(matches[1])
	hour, _ := strconv.Atoi(matches[2])
	minute, _ := strconv.Atoi(matches[3])

	if day < 1 || day > 31 {
		return Instant{}, fmt.Errorf("%w: day %d out of range", ErrMalformedTime, day)
	}
	if hour > 23 {
		return Instant{}, fmt.Errorf("%w: hour %d out of range", ErrMalformedTime, hour)
	}
	if minute > 59 {
		return Instant{}, fmt.Errorf("%w: minute %d out of range", ErrMalformedTime, minute)
	}

	return Instant{Day: day, Hour: hour, Minute: minute}, nil
}

// parseDayHour parses one DDHH half of a validity token. Hour 24 means end
// of day and normalizes to 00 of the next day number; the day arithmetic is
// opaque (no month resolution).
func parseDayHour(dd, hh string) (Instant, error) {
	day, _ := strconv.Atoi(dd)
	hour, _ := strconv.Atoi(hh)

	if day < 1 || day > 31 {
		return Instant{}, fmt.Errorf("%w: day %d out of range", ErrMalformedTime, day)
	}
	if hour > 24 {
		return Instant{}, fmt.Errorf("%w: hour %d out of range", ErrMalformedTime, hour)
	}
	if hour == 24 {
		day++
		hour = 0
	}

	return Instant{Day: day, Hour: hour}, nil
}

// ParseValidityToken parses a DDHH/DDHH validity window.
func ParseValidityToken(token string) (ValidityPeriod, error) {
	matches := validRegex.FindStringSubmatch(token)
	if matches == nil {
		return ValidityPeriod{}, fmt.Errorf("%w: %q is not DDHH/DDHH", ErrMalformedTime, token)
	}

	from, err := parseDayHour(matches[1], matches[2])
	if err != nil {
		return ValidityPeriod{}, err
	}
	to, err := parseDayHour(matches[3], matches[4])
	if err != nil {
		return ValidityPeriod{}, err
	}

	return ValidityPeriod{From: from, To: to}, nil
}

// parseWind parses a wind group already classified by shape. MPS and KMH
// speeds are normalized to whole knots.
func parseWind(token string) Wind {
	unit := "KT"
	matches := windRegex.FindStringSubmatch(token)
	if matches == nil {
		matches = windRegexMPS.FindStringSubmatch(token)
		if matches == nil {
			return Wind{}
		}
		unit = matches[5]
	}

	wind := Wind{}
	if matches[1] == "VRB" {
		wind.Variable = true
	} else {
		wind.Direction, _ = strconv.Atoi(matches[1])
	}
	speed, _ := strconv.Atoi(matches[2])
	wind.Speed = speedInKnots(speed, unit)
	if matches[4] != "" {
		gust, _ := strconv.Atoi(matches[4])
		gust = speedInKnots(gust, unit)
		wind.Gust = &gust
	}

	return wind
}

// speedInKnots normalizes an encoded wind speed to whole knots.
func speedInKnots(speed int, unit string) int {
	switch unit {
	case "MPS":
		return MetersPerSecondToKnots(speed)
	case "KMH":
		return KilometersPerHourToKnots(speed)
	}
	return speed
}

// parseWindShear parses a wind-shear group like "WS020/30025KT"; the encoded
// altitude is hundreds of feet.
func parseWindShear(token string) WindShear {
	matches := windShearRegex.FindStringSubmatch(token)
	if matches == nil {
		return WindShear{Raw: token}
	}

	altitude, _ := strconv.Atoi(matches[1])
	ws := WindShear{Altitude: altitude * 100, Raw: token}
	ws.Wind.Direction, _ = strconv.Atoi(matches[2])
	speed, _ := strconv.Atoi(matches[3])
	ws.Wind.Speed = speedInKnots(speed, matches[6])
	if matches[5] != "" {
		gust, _ := strconv.Atoi(matches[5])
		gust = speedInKnots(gust, matches[6])
		ws.Wind.Gust = &gust
	}

	return ws
}

// parseWindVariation fills the DDDVDDD bounds onto an already parsed wind.
func parseWindVariation(wind *Wind, token string) {
	matches := windVarRegex.FindStringSubmatch(token)
	if matches == nil || wind == nil {
		return
	}

	from, _ := strconv.Atoi(matches[1])
	to, _ := strconv.Atoi(matches[2])
	wind.VariableFrom = &from
	wind.VariableTo = &to
}

// parseVisibility parses the numeric and open-ended visibility forms. 9999
// and the P/"+" prefixed forms are the "this far or more" sentinels.
func parseVisibility(token string) Visibility {
	if visRegexMeters.MatchString(token) {
		distance, _ := strconv.Atoi(token)
		return Visibility{
			Distance: distance,
			Unit:     UnitMeters,
			OrMore:   distance == 9999,
			Raw:      token,
		}
	}

	if matches := visRegexPlus.FindStringSubmatch(token); matches != nil {
		distance, _ := strconv.Atoi(matches[1])
		return Visibility{Distance: distance, Unit: UnitStatuteMiles, OrMore: true, Raw: token}
	}

	if matches := visRegexMiles.FindStringSubmatch(token); matches != nil {
		distance, _ := strconv.Atoi(matches[2])
		return Visibility{
			Distance: distance,
			Unit:     UnitStatuteMiles,
			OrMore:   matches[1] == "P",
			Raw:      token,
		}
	}

	return Visibility{Raw: token}
}

// cavokVisibility is the visibility recorded for a CAVOK keyword.
func cavokVisibility() Visibility {
	return Visibility{Distance: 9999, Unit: UnitMeters, OrMore: true, Raw: "CAVOK"}
}

// parseCloud parses a cloud layer group; the encoded height is hundreds of
// feet. The sky-clear words (SKC, CLR, NSC, NCD) carry no height, and a
// CB/TCU suffix marks a convective layer.
func parseCloud(token string) CloudLayer {
	matches := cloudRegex.FindStringSubmatch(token)
	if matches == nil {
		return CloudLayer{}
	}

	height, _ := strconv.Atoi(matches[2])
	return CloudLayer{
		Coverage: Coverage(matches[1]),
		Height:   height * 100,
		Type:     matches[3],
	}
}

// parseWeather splits a present-weather group into intensity, descriptor and
// phenomenon codes.
func parseWeather(token string) WeatherGroup {
	matches := weatherRegex.FindStringSubmatch(token)
	if matches == nil {
		return WeatherGroup{Phenomenon: token}
	}
	// The phenomenon group repeats, so take the remainder of the token
	// rather than the last submatch.
	return WeatherGroup{
		Intensity:  matches[1],
		Descriptor: matches[2],
		Phenomenon: token[len(matches[1])+len(matches[2]):],
	}
}

// parseTempDew parses the TT/TT pair; an M prefix marks negative values.
func parseTempDew(token string) TemperatureDewpoint {
	matches := tempRegex.FindStringSubmatch(token)
	if matches == nil {
		return TemperatureDewpoint{}
	}

	temp, _ := strconv.Atoi(matches[2])
	if matches[1] == "M" {
		temp = -temp
	}
	dew, _ := strconv.Atoi(matches[4])
	if matches[3] == "M" {
		dew = -dew
	}

	return TemperatureDewpoint{Temperature: temp, DewPoint: dew}
}

// parseAltimeter parses a pressure setting group. Q values are whole
// hectopascals; A values are hundredths of inches of mercury.
func parseAltimeter(token string) Altimeter {
	matches := altimeterRegex.FindStringSubmatch(token)
	if matches == nil {
		return Altimeter{}
	}

	value, _ := strconv.Atoi(matches[2])
	if matches[1] == "Q" {
		return Altimeter{Unit: UnitHectopascals, Value: float64(value)}
	}
	return Altimeter{Unit: UnitInchesHg, Value: float64(value) / 100.0}
}

// parseForecastTemperature parses a TX/TN extreme group like "TXM02/2012Z".
func parseForecastTemperature(token string) (ForecastTemperature, error) {
	matches := maxTempRegex.FindStringSubmatch(token)
	if matches == nil {
		matches = minTempRegex.FindStringSubmatch(token)
	}
	if matches == nil {
		return ForecastTemperature{}, fmt.Errorf("%w: %q", ErrMalformedTime, token)
	}

	value, _ := strconv.Atoi(matches[2])
	if matches[1] == "M" {
		value = -value
	}
	at, err := parseDayHour(matches[3], matches[4])
	if err != nil {
		return ForecastTemperature{}, err
	}

	return ForecastTemperature{Value: value, At: at}, nil
}

// parseQNH parses a QNH forecast group like "QNH2992INS" into inches of
// mercury.
func parseQNH(token string) float64 {
	matches := qnhRegex.FindStringSubmatch(token)
	if matches == nil {
		return 0
	}
	value, _ := strconv.Atoi(matches[1])
	return float64(value) / 100.0
}

// rawRemarks joins everything after the RMK keyword verbatim.
func rawRemarks(tokens []Token) string {
	texts := make([]string, len(tokens))
	for i, tok := range tokens {
		texts[i] = tok.Text
	}
	return strings.Join(texts, " ")
}
