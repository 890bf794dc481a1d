package avwx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

var (
	labelColor   = color.New(color.FgCyan)
	sectionColor = color.New(color.FgBlue)
	numberColor  = color.New(color.FgGreen)
)

const notReported = "not reported"

// formatInstant renders an instant as its UTC clock time, e.g. "16:50Z".
func formatInstant(i Instant) string {
	return fmt.Sprintf("%02d:%02dZ", i.Hour, i.Minute)
}

// formatInstantOn renders an instant with its day label, e.g. "16:50Z on 20th".
func formatInstantOn(i Instant) string {
	return fmt.Sprintf("%s on %s", formatInstant(i), OrdinalDay(i.Day))
}

// FormatPeriod renders a from/to window. The day label is dropped when both
// ends fall on the same day.
func FormatPeriod(from, to Instant) string {
	if from.Day == to.Day {
		return fmt.Sprintf("%s to %s", formatInstant(from), formatInstant(to))
	}
	return fmt.Sprintf("%s to %s", formatInstantOn(from), formatInstantOn(to))
}

// formatWind converts a decoded wind group to a human-readable string.
func formatWind(wind Wind) string {
	var b strings.Builder

	if !wind.Variable && wind.Direction == 0 && wind.Speed == 0 && wind.Gust == nil {
		return "Calm"
	}

	if wind.Variable {
		b.WriteString("Variable")
	} else {
		fmt.Fprintf(&b, "From %d°", wind.Direction)
	}
	fmt.Fprintf(&b, " at %d knots", wind.Speed)
	if wind.Gust != nil {
		fmt.Fprintf(&b, ", gusting to %d knots", *wind.Gust)
	}
	if wind.VariableFrom != nil && wind.VariableTo != nil {
		fmt.Fprintf(&b, " (varying between %d° and %d°)", *wind.VariableFrom, *wind.VariableTo)
	}

	return b.String()
}

// formatVisibility converts a decoded visibility group to a human-readable
// string.
func formatVisibility(vis Visibility) string {
	switch vis.Unit {
	case UnitMeters:
		if vis.OrMore {
			return "10 km or more"
		}
		return formatNumberWithCommas(vis.Distance) + " meters"
	case UnitStatuteMiles:
		value := strconv.Itoa(vis.Distance)
		if strings.Contains(vis.Raw, "/") {
			value = strings.TrimSuffix(strings.TrimLeft(vis.Raw, "MP"), "SM")
		}
		if vis.OrMore {
			return "Greater than " + value + " statute miles"
		}
		if strings.HasPrefix(vis.Raw, "M") {
			return "Less than " + value + " statute miles"
		}
		return value + " statute miles"
	}
	return vis.Raw
}

// formatWeatherGroup converts a split weather group to prose, e.g.
// {"-", "SH", "RA"} becomes "light rain showers".
func formatWeatherGroup(group WeatherGroup) string {
	var words []string

	// VC reads as a trailing qualifier, the +/- intensities as a prefix.
	if group.Intensity == "+" || group.Intensity == "-" {
		words = append(words, weatherDescriptions[group.Intensity])
	}

	phenomenon := group.Phenomenon
	if phenomenon == "NSW" {
		return "no significant weather"
	}
	var phenomenonWords []string
	for len(phenomenon) >= 2 {
		code := phenomenon[:2]
		if desc, ok := weatherDescriptions[code]; ok {
			phenomenonWords = append(phenomenonWords, desc)
		} else {
			phenomenonWords = append(phenomenonWords, code)
		}
		phenomenon = phenomenon[2:]
	}

	switch group.Descriptor {
	case "":
		words = append(words, phenomenonWords...)
	case "SH":
		if len(phenomenonWords) == 0 {
			words = append(words, "showers")
			break
		}
		// "rain showers" reads better than "showers rain"
		words = append(words, strings.Join(phenomenonWords, " ")+" showers")
	default:
		if desc, ok := weatherDescriptions[group.Descriptor]; ok {
			words = append(words, desc)
		}
		words = append(words, phenomenonWords...)
	}

	if group.Intensity == "VC" {
		words = append(words, "in the vicinity")
	}

	return strings.Join(words, " ")
}

// formatWeather joins all present-weather groups into one line.
func formatWeather(weather []WeatherGroup) string {
	var parts []string
	for _, group := range weather {
		parts = append(parts, formatWeatherGroup(group))
	}
	return capitalizeFirst(strings.Join(parts, ", "))
}

// formatCloud renders one layer, e.g. "Broken at 1,900 feet" or
// "Scattered at 8,000 feet (cumulonimbus)". Sky-clear words render bare.
func formatCloud(layer CloudLayer) string {
	word := string(layer.Coverage)
	if w, ok := coverageWords[layer.Coverage]; ok {
		word = w
	}
	switch layer.Coverage {
	case CoverageSkyClear, CoverageClear, CoverageNoSignificant, CoverageNoneDetected:
		return word
	}
	desc := fmt.Sprintf("%s at %s feet", word, formatNumberWithCommas(layer.Height))
	if t, ok := cloudTypeWords[layer.Type]; ok {
		desc += " (" + t + ")"
	}
	return desc
}

// formatWindShear renders a shear layer, e.g.
// "at 2,000 feet, from 300° at 25 knots".
func formatWindShear(ws WindShear) string {
	wind := formatWind(ws.Wind)
	if wind != "" {
		wind = strings.ToLower(wind[:1]) + wind[1:]
	}
	return fmt.Sprintf("at %s feet, %s", formatNumberWithCommas(ws.Altitude), wind)
}

// formatAltimeter renders the pressure setting in its encoded unit with the
// converted value alongside.
func formatAltimeter(alt Altimeter) string {
	if alt.Unit == UnitInchesHg {
		return fmt.Sprintf("%.2f inHg (%.1f hPa)", alt.Value, InHgToMillibars(alt.Value))
	}
	return fmt.Sprintf("%.0f hPa (%.2f inHg)", alt.Value, HectopascalsToInHg(alt.Value))
}

// FormatMETAR renders a decoded METAR as a fixed-order block of labelled
// lines. Output depends only on the record, so repeated calls are identical.
func FormatMETAR(m *METAR) string {
	var sb strings.Builder

	labelColor.Fprint(&sb, "Report Type: ")
	sb.WriteString(m.ReportType.String())
	if m.Auto {
		sb.WriteString(", Automated")
	}
	sb.WriteString("\n")

	labelColor.Fprint(&sb, "Station: ")
	sb.WriteString(m.Station + "\n")

	labelColor.Fprint(&sb, "Observation Day: ")
	sb.WriteString(OrdinalDay(m.Time.Day) + "\n")

	labelColor.Fprint(&sb, "Observation Time: ")
	sb.WriteString(formatInstant(m.Time) + "\n")

	labelColor.Fprint(&sb, "Wind: ")
	if m.Wind != nil {
		sb.WriteString(formatWind(*m.Wind) + "\n")
	} else {
		sb.WriteString(notReported + "\n")
	}

	if m.WindShear != nil {
		labelColor.Fprint(&sb, "Wind Shear: ")
		sb.WriteString(formatWindShear(*m.WindShear) + "\n")
	}

	if m.Visibility != nil {
		labelColor.Fprint(&sb, "Visibility: ")
		sb.WriteString(formatVisibility(*m.Visibility) + "\n")
	}

	if len(m.Weather) > 0 {
		labelColor.Fprint(&sb, "Weather: ")
		sb.WriteString(formatWeather(m.Weather) + "\n")
	}

	if len(m.Clouds) > 0 {
		labelColor.Fprintln(&sb, "Clouds:")
		for _, layer := range m.Clouds {
			sb.WriteString("  - " + formatCloud(layer) + "\n")
		}
	}

	labelColor.Fprint(&sb, "Temperature/Dewpoint: ")
	if m.TempDew != nil {
		fmt.Fprintf(&sb, "%d°C (%d°F) / %d°C (%d°F)\n",
			m.TempDew.Temperature, CelsiusToFahrenheit(m.TempDew.Temperature),
			m.TempDew.DewPoint, CelsiusToFahrenheit(m.TempDew.DewPoint))
	} else {
		sb.WriteString(notReported + "\n")
	}

	if m.Altimeter != nil {
		labelColor.Fprint(&sb, "Altimeter: ")
		sb.WriteString(formatAltimeter(*m.Altimeter) + "\n")
	}

	if m.Remarks != "" {
		labelColor.Fprint(&sb, "Remarks: ")
		sb.WriteString(m.Remarks + "\n")
	}

	return sb.String()
}

// changeLabel is the header word for a change group.
func changeLabel(group ChangeGroup) string {
	switch group.Kind {
	case ChangeFrom:
		return "FROM"
	case ChangeBecoming:
		return "BECOMING"
	case ChangeTemporary:
		return "TEMPORARY"
	case ChangeProbTemporary:
		return fmt.Sprintf("PROB%d TEMPORARY", group.Probability)
	}
	return string(group.Kind)
}

// formatConditions appends the wind/visibility/weather/cloud lines of one
// block at the given indent.
func formatConditions(sb *strings.Builder, cond Conditions, indent string) {
	if cond.Wind != nil {
		sb.WriteString(indent)
		labelColor.Fprint(sb, "Wind: ")
		sb.WriteString(formatWind(*cond.Wind) + "\n")
	}
	if cond.WindShear != nil {
		sb.WriteString(indent)
		labelColor.Fprint(sb, "Wind Shear: ")
		sb.WriteString(formatWindShear(*cond.WindShear) + "\n")
	}
	if cond.Visibility != nil {
		sb.WriteString(indent)
		labelColor.Fprint(sb, "Visibility: ")
		sb.WriteString(formatVisibility(*cond.Visibility) + "\n")
	}
	if len(cond.Weather) > 0 {
		sb.WriteString(indent)
		labelColor.Fprint(sb, "Weather: ")
		sb.WriteString(formatWeather(cond.Weather) + "\n")
	}
	for _, layer := range cond.Clouds {
		sb.WriteString(indent)
		labelColor.Fprint(sb, "Clouds: ")
		sb.WriteString(formatCloud(layer) + "\n")
	}
}

// FormatTAF renders a decoded TAF as a header block, the base forecast and a
// numbered list of change groups.
func FormatTAF(t *TAF) string {
	var sb strings.Builder

	labelColor.Fprint(&sb, "Station: ")
	sb.WriteString(t.Station + "\n")

	labelColor.Fprint(&sb, "Issue Day: ")
	sb.WriteString(OrdinalDay(t.IssueTime.Day) + "\n")

	labelColor.Fprint(&sb, "Issue Time: ")
	sb.WriteString(formatInstant(t.IssueTime) + "\n")

	labelColor.Fprint(&sb, "Valid From: ")
	sb.WriteString(formatInstantOn(t.Validity.From) + "\n")

	labelColor.Fprint(&sb, "Valid To: ")
	sb.WriteString(formatInstantOn(t.Validity.To) + "\n")

	if t.Amended || t.Corrected || t.Auto || t.Nil {
		var kinds []string
		if t.Amended {
			kinds = append(kinds, "Amended")
		}
		if t.Corrected {
			kinds = append(kinds, "Corrected")
		}
		if t.Auto {
			kinds = append(kinds, "Automated")
		}
		if t.Nil {
			kinds = append(kinds, "Nil (forecast suspended)")
		}
		labelColor.Fprint(&sb, "Type: ")
		sb.WriteString(strings.Join(kinds, ", ") + "\n")
	}

	sb.WriteString("\n")
	sectionColor.Fprintln(&sb, "BASE FORECAST:")
	formatConditions(&sb, t.Base, "  ")

	if len(t.Changes) > 0 {
		sb.WriteString("\n")
		sectionColor.Fprintln(&sb, "FORECAST CHANGES:")
		for i, group := range t.Changes {
			sb.WriteString("  ")
			numberColor.Fprintf(&sb, "%d. ", i+1)
			sb.WriteString(changeLabel(group))
			switch {
			case group.From.IsZero():
				sb.WriteString(" period not specified:\n")
			case group.Kind == ChangeFrom:
				sb.WriteString(" " + formatInstantOn(group.From) + ":\n")
			default:
				sb.WriteString(" " + FormatPeriod(group.From, group.To) + ":\n")
			}
			formatConditions(&sb, group.Conditions, "     ")
		}
	}

	if len(t.MaxTemps) > 0 || len(t.MinTemps) > 0 {
		sb.WriteString("\n")
		sectionColor.Fprintln(&sb, "TEMPERATURE FORECAST:")
		for _, extreme := range t.MaxTemps {
			fmt.Fprintf(&sb, "  Maximum %d°C at %s\n", extreme.Value, formatInstantOn(extreme.At))
		}
		for _, extreme := range t.MinTemps {
			fmt.Fprintf(&sb, "  Minimum %d°C at %s\n", extreme.Value, formatInstantOn(extreme.At))
		}
	}

	if len(t.QNH) > 0 {
		sb.WriteString("\n")
		sectionColor.Fprintln(&sb, "PRESSURE FORECAST:")
		for _, qnh := range t.QNH {
			fmt.Fprintf(&sb, "  Lowest QNH %.2f inHg (%.1f hPa)\n", qnh, InHgToMillibars(qnh))
		}
	}

	if t.Remarks != "" {
		sb.WriteString("\n")
		labelColor.Fprint(&sb, "Remarks: ")
		sb.WriteString(t.Remarks + "\n")
	}

	return sb.String()
}

// capitalizeFirst capitalizes the first letter of a string.
func capitalizeFirst(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// formatNumberWithCommas adds thousands separators to a number.
func formatNumberWithCommas(n int) string {
	numStr := strconv.Itoa(n)

	result := ""
	for i, c := range numStr {
		if i > 0 && (len(numStr)-i)%3 == 0 {
			result += ","
		}
		result += string(c)
	}

	return result
}
