package avwx

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// Parse failures that abort the whole record.
var (
	ErrEmptyInput     = errors.New("empty report")
	ErrMissingStation = errors.New("missing station identifier")
	ErrMissingTime    = errors.New("missing report time")
	ErrMalformedTime  = errors.New("malformed time group")
)

// FieldError records a recoverable problem with a single field group. The
// decoders collect these on the record instead of failing; the affected field
// stays unset.
type FieldError struct {
	Field  string
	Token  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: bad token %q: %s", e.Field, e.Token, e.Reason)
}

// Commonly used regular expressions
var (
	stationRegex   = regexp.MustCompile(`^[A-Z]{4}$`)
	timeRegex      = regexp.MustCompile(`^(\d{2})(\d{2})(\d{2})Z$`)
	issueTimeRegex = regexp.MustCompile(`^(\d{2})(\d{2})(\d{2})$`)
	windRegex      = regexp.MustCompile(`^(VRB|\d{3})(\d{2,3})(G(\d{2,3}))?KT$`)
	windRegexMPS   = regexp.MustCompile(`^(VRB|\d{3})(\d{2,3})(G(\d{2,3}))?(MPS|KMH)$`)
	windShearRegex = regexp.MustCompile(`^WS(\d{3})/(\d{3})(\d{2,3})(G(\d{2,3}))?(KT|MPS|KMH)$`)
	windVarRegex   = regexp.MustCompile(`^(\d{3})V(\d{3})$`)
	visRegexMeters = regexp.MustCompile(`^\d{4}$`)
	visRegexMiles  = regexp.MustCompile(`^([MP]?)(\d+)(/\d+)?SM$`)
	visRegexPlus   = regexp.MustCompile(`^(\d+)\+$`)
	cloudRegex     = regexp.MustCompile(`^(SKC|CLR|NSC|NCD|FEW|SCT|BKN|OVC|VV)(\d{3})?(CB|TCU)?$`)
	tempRegex      = regexp.MustCompile(`^(M?)(\d{2})/(M?)(\d{2})$`)
	altimeterRegex = regexp.MustCompile(`^([QA])(\d{4})$`)
	validRegex     = regexp.MustCompile(`^(\d{2})(\d{2})/(\d{2})(\d{2})$`)
	fromGroupRegex = regexp.MustCompile(`^FM(\d{2})(\d{2})(\d{2})$`)
	probRegex      = regexp.MustCompile(`^PROB(30|40)$`)
	// The phenomenon part may be empty for descriptor-only groups (VCTS, VCSH)
	// but the whole match must be non-empty.
	weatherRegex = regexp.MustCompile(`^(\+|-|VC)?(MI|PR|BC|DR|BL|SH|TS|FZ)?(DZ|RA|SN|SG|IC|PL|GR|GS|UP|BR|FG|FU|VA|DU|SA|HZ|PY|PO|SQ|FC|SS|DS)*$`)
	maxTempRegex   = regexp.MustCompile(`^TX(M?)(\d{2})/(\d{2})(\d{2})Z$`)
	minTempRegex   = regexp.MustCompile(`^TN(M?)(\d{2})/(\d{2})(\d{2})Z$`)
	qnhRegex       = regexp.MustCompile(`^QNH(\d{4})INS$`)
)

// Intensity/descriptor/phenomenon word mapping for present-weather groups
var weatherDescriptions = map[string]string{
	"+":  "heavy",
	"-":  "light",
	"VC": "in the vicinity",
	"MI": "shallow",
	"PR": "partial",
	"BC": "patches",
	"DR": "low drifting",
	"BL": "blowing",
	"SH": "showers",
	"TS": "thunderstorm",
	"FZ": "freezing",
	"DZ": "drizzle",
	"RA": "rain",
	"SN": "snow",
	"SG": "snow grains",
	"IC": "ice crystals",
	"PL": "ice pellets",
	"GR": "hail",
	"GS": "small hail",
	"UP": "unknown precipitation",
	"BR": "mist",
	"FG": "fog",
	"FU": "smoke",
	"VA": "volcanic ash",
	"DU": "widespread dust",
	"SA": "sand",
	"HZ": "haze",
	"PY": "spray",
	"PO": "dust whirls",
	"SQ": "squalls",
	"FC": "funnel cloud",
	"SS": "sandstorm",
	"DS": "duststorm",
}

// Cloud coverage word mapping
var coverageWords = map[Coverage]string{
	CoverageFew:           "Few",
	CoverageScattered:     "Scattered",
	CoverageBroken:        "Broken",
	CoverageOvercast:      "Overcast",
	CoverageVertical:      "Vertical visibility",
	CoverageSkyClear:      "Sky clear",
	CoverageClear:         "Clear",
	CoverageNoSignificant: "No significant clouds",
	CoverageNoneDetected:  "No clouds detected",
}

// Convective cloud type word mapping
var cloudTypeWords = map[string]string{
	"CB":  "cumulonimbus",
	"TCU": "towering cumulus",
}

// ReportType distinguishes routine from special observations.
type ReportType int

const (
	Routine ReportType = iota
	Special
)

func (t ReportType) String() string {
	if t == Special {
		return "Special (SPECI)"
	}
	return "Routine (METAR)"
}

// Instant is a day-of-month time within the report's implied month. All
// encoded times are UTC. The zero value (day 0) means "not present": day
// numbers in the encoding are always 1-31.
type Instant struct {
	Day    int
	Hour   int
	Minute int
}

// IsZero reports whether the instant was never set.
func (i Instant) IsZero() bool { return i.Day == 0 }

// ValidityPeriod is the day/hour window a TAF or change group applies to.
type ValidityPeriod struct {
	From Instant
	To   Instant
}

// Wind holds a decoded wind group. Direction is in degrees unless Variable is
// set. Gust and the variable-direction bounds are absent unless encoded.
type Wind struct {
	Direction    int
	Variable     bool
	Speed        int
	Gust         *int
	VariableFrom *int
	VariableTo   *int
}

// WindShear is a WShhh/dddffKT group: the wind at a shear layer above the
// aerodrome. Altitude is feet; the encoded value is hundreds of feet.
type WindShear struct {
	Altitude int
	Wind     Wind
	Raw      string
}

// DistanceUnit is the unit a visibility value was encoded in.
type DistanceUnit string

const (
	UnitMeters       DistanceUnit = "m"
	UnitStatuteMiles DistanceUnit = "SM"
)

// Visibility holds a decoded visibility group. OrMore marks the open-ended
// encodings (9999, P6SM, "6+", CAVOK). Raw keeps the token text for fraction
// forms the integer Distance cannot carry.
type Visibility struct {
	Distance int
	Unit     DistanceUnit
	OrMore   bool
	Raw      string
}

// Coverage is a cloud layer coverage class.
type Coverage string

const (
	CoverageFew       Coverage = "FEW"
	CoverageScattered Coverage = "SCT"
	CoverageBroken    Coverage = "BKN"
	CoverageOvercast  Coverage = "OVC"
	CoverageVertical  Coverage = "VV"

	// Sky-clear words carry no height or type.
	CoverageSkyClear      Coverage = "SKC"
	CoverageClear         Coverage = "CLR"
	CoverageNoSignificant Coverage = "NSC"
	CoverageNoneDetected  Coverage = "NCD"
)

// CloudLayer is one reported layer; Height is feet above aerodrome level,
// always a multiple of 100. Type is "CB" or "TCU" when a convective suffix
// is encoded.
type CloudLayer struct {
	Coverage Coverage
	Height   int
	Type     string
}

// WeatherGroup is one present-weather group split into its code parts, e.g.
// "-SHRA" -> {"-", "SH", "RA"}.
type WeatherGroup struct {
	Intensity  string
	Descriptor string
	Phenomenon string
}

// TemperatureDewpoint is the TT/TT pair in whole degrees Celsius.
type TemperatureDewpoint struct {
	Temperature int
	DewPoint    int
}

// PressureUnit is the unit an altimeter group was encoded in.
type PressureUnit string

const (
	UnitHectopascals PressureUnit = "hPa"
	UnitInchesHg     PressureUnit = "inHg"
)

// Altimeter is the pressure setting; Q-prefix values are whole hectopascals,
// A-prefix values are hundredths of inches of mercury.
type Altimeter struct {
	Unit  PressureUnit
	Value float64
}

// Conditions is the wind/visibility/weather/cloud block shared by METAR
// records, TAF base forecasts, and TAF change groups. Nil pointers and empty
// slices mean the group was not encoded.
type Conditions struct {
	Wind       *Wind
	WindShear  *WindShear
	Visibility *Visibility
	Weather    []WeatherGroup
	Clouds     []CloudLayer
}

// METAR is a decoded observation report. Records are built once per decode
// call and not mutated afterwards, except for the out-of-band ReceiptTime
// annotation, which the retrieval layer attaches.
type METAR struct {
	ReportType  ReportType
	Station     string
	Time        Instant
	Auto        bool
	ReceiptTime *time.Time
	Conditions
	TempDew   *TemperatureDewpoint
	Altimeter *Altimeter
	Remarks   string
	Raw       string
	Problems  []FieldError
}

// SetReceiptTime attaches the time the raw text was obtained. The receipt
// time never comes from the token stream.
func (m *METAR) SetReceiptTime(t time.Time) {
	utc := t.UTC()
	m.ReceiptTime = &utc
}

// ChangeKind is the introducer class of a TAF change group.
type ChangeKind string

const (
	ChangeFrom          ChangeKind = "FM"
	ChangeBecoming      ChangeKind = "BECMG"
	ChangeTemporary     ChangeKind = "TEMPO"
	ChangeProbTemporary ChangeKind = "PROB TEMPO"
)

// ChangeGroup is one timed deviation from the base forecast. From/To come
// from the group's own period tokens: FM groups carry only From, the others
// carry both. Probability is 30 or 40 for ChangeProbTemporary, 0 otherwise.
type ChangeGroup struct {
	Kind        ChangeKind
	Probability int
	From        Instant
	To          Instant
	Conditions
	Raw string
}

// ForecastTemperature is a TX/TN extreme with the instant it applies to.
type ForecastTemperature struct {
	Value int
	At    Instant
}

// TAF is a decoded terminal forecast: a base conditions block plus change
// groups in encoding order.
type TAF struct {
	Station   string
	IssueTime Instant
	Validity  ValidityPeriod
	Amended   bool
	Corrected bool
	Auto      bool
	Nil       bool
	Base      Conditions
	Changes   []ChangeGroup
	MaxTemps  []ForecastTemperature
	MinTemps  []ForecastTemperature
	QNH       []float64
	Remarks   string
	Raw       string
	Problems  []FieldError
}
