package avwx

import (
	"fmt"
	"strconv"
	"strings"
)

// DecodeMETAR decodes a raw METAR string into a METAR record. Station and
// observation time are mandatory; every other group degrades to unset with a
// problem entry, and the raw text is retained on the record either way.
func DecodeMETAR(raw string) (*METAR, error) {
	tokens, err := Scan(raw)
	if err != nil {
		return nil, err
	}

	m := &METAR{Raw: raw}

	i := 0
	switch tokens[i].Text {
	case "METAR":
		i++
	case "SPECI":
		m.ReportType = Special
		i++
	}

	if i >= len(tokens) || !stationRegex.MatchString(tokens[i].Text) {
		return nil, fmt.Errorf("%w: report %q", ErrMissingStation, raw)
	}
	m.Station = tokens[i].Text
	i++

	if i >= len(tokens) || tokens[i].Kind != TokenTime {
		return nil, fmt.Errorf("%w: report %q", ErrMissingTime, raw)
	}
	obsTime, err := ParseIssueTime(strings.TrimSuffix(tokens[i].Text, "Z"))
	if err != nil {
		return nil, err
	}
	m.Time = obsTime
	i++

	for ; i < len(tokens); i++ {
		tok := tokens[i]
		if tok.Text == "RMK" {
			m.Remarks = rawRemarks(tokens[i+1:])
			break
		}

		switch tok.Kind {
		case TokenWind:
			wind := parseWind(tok.Text)
			if i+1 < len(tokens) && tokens[i+1].Kind == TokenWindVariation {
				parseWindVariation(&wind, tokens[i+1].Text)
				i++
			}
			if problem := checkWind(wind, tok.Text); problem != nil {
				m.Problems = append(m.Problems, *problem)
			}
			m.Wind = &wind
		case TokenWindShear:
			ws := parseWindShear(tok.Text)
			m.WindShear = &ws
		case TokenVisibility:
			vis := parseVisibility(tok.Text)
			m.Visibility = &vis
		case TokenCloud:
			m.Clouds = append(m.Clouds, parseCloud(tok.Text))
		case TokenWeather:
			m.Weather = append(m.Weather, parseWeather(tok.Text))
		case TokenTempDew:
			tempDew := parseTempDew(tok.Text)
			m.TempDew = &tempDew
		case TokenAltimeter:
			alt := parseAltimeter(tok.Text)
			m.Altimeter = &alt
		case TokenKeyword:
			switch tok.Text {
			case "CAVOK":
				vis := cavokVisibility()
				m.Visibility = &vis
			case "NSW":
				m.Weather = append(m.Weather, WeatherGroup{Phenomenon: "NSW"})
			case "AUTO":
				m.Auto = true
			}
			// COR, NOSIG and friends carry no field data
		default:
			m.Problems = append(m.Problems, FieldError{
				Field:  guessField(tok.Text),
				Token:  tok.Text,
				Reason: "unrecognized group",
			})
		}
	}

	return m, nil
}

// DecodeTAF decodes a raw TAF string into a TAF record. Station, issue time
// and the overall validity window are mandatory; the base forecast and every
// change group degrade field-by-field.
func DecodeTAF(raw string) (*TAF, error) {
	tokens, err := Scan(raw)
	if err != nil {
		return nil, err
	}

	t := &TAF{Raw: raw}

	i := 0
	if tokens[i].Text == "TAF" {
		i++
		for i < len(tokens) && (tokens[i].Text == "AMD" || tokens[i].Text == "COR") {
			if tokens[i].Text == "AMD" {
				t.Amended = true
			} else {
				t.Corrected = true
			}
			i++
		}
	}

	if i >= len(tokens) || !stationRegex.MatchString(tokens[i].Text) {
		return nil, fmt.Errorf("%w: report %q", ErrMissingStation, raw)
	}
	t.Station = tokens[i].Text
	i++

	if i >= len(tokens) || tokens[i].Kind != TokenTime {
		return nil, fmt.Errorf("%w: report %q", ErrMissingTime, raw)
	}
	issue, err := ParseIssueTime(strings.TrimSuffix(tokens[i].Text, "Z"))
	if err != nil {
		return nil, err
	}
	t.IssueTime = issue
	i++

	if i >= len(tokens) || tokens[i].Kind != TokenValidity {
		return nil, fmt.Errorf("%w: no validity period in %q", ErrMalformedTime, raw)
	}
	validity, err := ParseValidityToken(tokens[i].Text)
	if err != nil {
		return nil, err
	}
	t.Validity = validity
	i++

	// consume fills a conditions block until the next change-group introducer
	// or end of input. TX/TN/QNH and remark groups belong to the report as a
	// whole no matter where they turn up.
	consume := func(cond *Conditions, start int) int {
		i := start
		for i < len(tokens) {
			tok := tokens[i]
			if tok.Kind == TokenFrom || tok.Kind == TokenChange || tok.Kind == TokenProb {
				return i
			}
			if tok.Text == "RMK" {
				t.Remarks = rawRemarks(tokens[i+1:])
				return len(tokens)
			}

			switch tok.Kind {
			case TokenWind:
				wind := parseWind(tok.Text)
				if i+1 < len(tokens) && tokens[i+1].Kind == TokenWindVariation {
					parseWindVariation(&wind, tokens[i+1].Text)
					i++
				}
				if problem := checkWind(wind, tok.Text); problem != nil {
					t.Problems = append(t.Problems, *problem)
				}
				cond.Wind = &wind
			case TokenWindShear:
				ws := parseWindShear(tok.Text)
				cond.WindShear = &ws
			case TokenVisibility:
				vis := parseVisibility(tok.Text)
				cond.Visibility = &vis
			case TokenCloud:
				cond.Clouds = append(cond.Clouds, parseCloud(tok.Text))
			case TokenWeather:
				cond.Weather = append(cond.Weather, parseWeather(tok.Text))
			case TokenMaxTemp:
				if extreme, err := parseForecastTemperature(tok.Text); err == nil {
					t.MaxTemps = append(t.MaxTemps, extreme)
				}
			case TokenMinTemp:
				if extreme, err := parseForecastTemperature(tok.Text); err == nil {
					t.MinTemps = append(t.MinTemps, extreme)
				}
			case TokenQNH:
				t.QNH = append(t.QNH, parseQNH(tok.Text))
			case TokenKeyword:
				switch tok.Text {
				case "CAVOK":
					vis := cavokVisibility()
					cond.Visibility = &vis
				case "NSW":
					cond.Weather = append(cond.Weather, WeatherGroup{Phenomenon: "NSW"})
				case "AUTO":
					t.Auto = true
				case "NIL":
					t.Nil = true
				}
			default:
				t.Problems = append(t.Problems, FieldError{
					Field:  guessField(tok.Text),
					Token:  tok.Text,
					Reason: "unrecognized group",
				})
			}
			i++
		}
		return i
	}

	i = consume(&t.Base, i)

	for i < len(tokens) {
		tok := tokens[i]

		switch tok.Kind {
		case TokenFrom:
			group := ChangeGroup{Kind: ChangeFrom, Raw: tok.Text}
			from, err := ParseIssueTime(tok.Text[2:])
			if err != nil {
				t.Problems = append(t.Problems, FieldError{Field: "change group", Token: tok.Text, Reason: "bad FM time"})
			} else {
				group.From = from
			}
			i = consume(&group.Conditions, i+1)
			t.Changes = append(t.Changes, group)

		case TokenChange:
			kind := ChangeBecoming
			if tok.Text == "TEMPO" {
				kind = ChangeTemporary
			}
			group := ChangeGroup{Kind: kind, Raw: tok.Text}
			i++
			i = consumePeriod(t, &group, tokens, i)
			i = consume(&group.Conditions, i)
			t.Changes = append(t.Changes, group)

		case TokenProb:
			matches := probRegex.FindStringSubmatch(tok.Text)
			if i+1 < len(tokens) && tokens[i+1].Text == "TEMPO" {
				group := ChangeGroup{Kind: ChangeProbTemporary, Raw: tok.Text + " TEMPO"}
				group.Probability, _ = strconv.Atoi(matches[1])
				i += 2
				i = consumePeriod(t, &group, tokens, i)
				i = consume(&group.Conditions, i)
				t.Changes = append(t.Changes, group)
				continue
			}
			// Unrecognized introducer variant: keep the trailing field tokens
			// by letting them flow into the most recent group.
			t.Problems = append(t.Problems, FieldError{Field: "change group", Token: tok.Text, Reason: "PROB not followed by TEMPO"})
			if len(t.Changes) > 0 {
				i = consume(&t.Changes[len(t.Changes)-1].Conditions, i+1)
			} else {
				i = consume(&t.Base, i+1)
			}

		default:
			t.Problems = append(t.Problems, FieldError{Field: "report", Token: tok.Text, Reason: "unrecognized group"})
			i++
		}
	}

	return t, nil
}

// consumePeriod parses the DDHH/DDHH token a BECMG/TEMPO group carries onto
// the group. The grammar always provides one; a group without it is recorded
// as a problem and left periodless.
func consumePeriod(t *TAF, group *ChangeGroup, tokens []Token, i int) int {
	if i < len(tokens) && tokens[i].Kind == TokenValidity {
		period, err := ParseValidityToken(tokens[i].Text)
		if err == nil {
			group.From = period.From
			group.To = period.To
			group.Raw += " " + tokens[i].Text
			return i + 1
		}
		t.Problems = append(t.Problems, FieldError{Field: "change group", Token: tokens[i].Text, Reason: err.Error()})
		return i + 1
	}
	t.Problems = append(t.Problems, FieldError{Field: "change group", Token: group.Raw, Reason: "no period token"})
	return i
}

// checkWind reports the gust/speed invariant without failing the parse.
func checkWind(wind Wind, token string) *FieldError {
	if wind.Gust != nil && *wind.Gust <= wind.Speed {
		return &FieldError{Field: "wind", Token: token, Reason: "gust not greater than sustained speed"}
	}
	return nil
}

// guessField names the field an unrecognized token most likely belonged to.
func guessField(token string) string {
	switch {
	case strings.HasSuffix(token, "KT"):
		return "wind"
	case strings.HasSuffix(token, "SM"):
		return "visibility"
	default:
		return "report"
	}
}
