package avwx

import "strings"

// TokenKind classifies a raw token by shape so the decoders can consume
// groups positionally without re-matching every pattern at every position.
type TokenKind int

const (
	TokenUnknown TokenKind = iota
	TokenKeyword
	TokenStation
	TokenTime
	TokenValidity
	TokenWind
	TokenWindShear
	TokenWindVariation
	TokenVisibility
	TokenCloud
	TokenTempDew
	TokenAltimeter
	TokenFrom
	TokenChange
	TokenProb
	TokenWeather
	TokenMaxTemp
	TokenMinTemp
	TokenQNH
)

// Token is one whitespace-delimited group of a raw report. Text is kept
// verbatim so unrecognized groups survive to the record's problem list and
// the raw-text fallback.
type Token struct {
	Text string
	Kind TokenKind
}

var keywords = map[string]bool{
	"METAR": true,
	"SPECI": true,
	"TAF":   true,
	"AMD":   true,
	"COR":   true,
	"NIL":   true,
	"AUTO":  true,
	"CAVOK": true,
	"NSW":   true,
	"NOSIG": true,
	"RMK":   true,
}

// Scan splits a raw report line into classified tokens. No token is dropped;
// malformed groups come back TokenUnknown for the decoders to reject
// field-by-field. Only zero-length input is an error.
func Scan(raw string) ([]Token, error) {
	fields := strings.Fields(strings.TrimSpace(raw))
	if len(fields) == 0 {
		return nil, ErrEmptyInput
	}

	tokens := make([]Token, len(fields))
	for i, f := range fields {
		tokens[i] = Token{Text: f, Kind: classify(f)}
	}
	return tokens, nil
}

// classify maps token text to its shape. Order matters: the setwise-ambiguous
// shapes (weather groups vs 4-letter station ids, change introducers vs
// keywords) are resolved by checking the more specific pattern first.
func classify(s string) TokenKind {
	switch s {
	case "BECMG", "TEMPO":
		return TokenChange
	}
	if keywords[s] {
		return TokenKeyword
	}

	switch {
	case probRegex.MatchString(s):
		return TokenProb
	case fromGroupRegex.MatchString(s):
		return TokenFrom
	case timeRegex.MatchString(s):
		return TokenTime
	case validRegex.MatchString(s):
		return TokenValidity
	case windRegex.MatchString(s), windRegexMPS.MatchString(s):
		return TokenWind
	case windShearRegex.MatchString(s):
		return TokenWindShear
	case windVarRegex.MatchString(s):
		return TokenWindVariation
	case visRegexMeters.MatchString(s), visRegexMiles.MatchString(s), visRegexPlus.MatchString(s):
		return TokenVisibility
	case cloudRegex.MatchString(s):
		return TokenCloud
	case tempRegex.MatchString(s):
		return TokenTempDew
	case altimeterRegex.MatchString(s):
		return TokenAltimeter
	case maxTempRegex.MatchString(s):
		return TokenMaxTemp
	case minTempRegex.MatchString(s):
		return TokenMinTemp
	case qnhRegex.MatchString(s):
		return TokenQNH
	case weatherRegex.MatchString(s):
		return TokenWeather
	case stationRegex.MatchString(s):
		return TokenStation
	}
	return TokenUnknown
}
