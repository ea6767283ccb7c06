// Package infer classifies CSV sample columns into catalog.ParameterType
// values.
//
// Rules are tried in a fixed order and the first rule that accepts every
// non-blank value of a column wins:
//
//	Empty    every value is blank ("" after trimming, or "-")
//	Integer  123, -7
//	Float    1.5, .25, 2e-3
//	IUnits   10 kOhm, 5V
//	FUnits   4.7 uF, 0.1%
//	Range    -40 ~ 85, 1.8V ~ 5.5V
//	List     a, b / c with at least one value holding two or more tokens
//	         and no empty token
//	URL      http, https or ftp with a host
//	String   anything else
package infer

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/signadot/partcat/catalog"
)

// ErrAmbiguous marks a column that matched no specific rule and fell back
// to String. It is a diagnostic, not a failure.
var ErrAmbiguous = errors.New("inference ambiguous")

const (
	number  = `[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`
	integer = `[+-]?\d+`
	unit    = `[\p{L}°%][\p{L}°%/]{0,7}`
)

var (
	integerRE = regexp.MustCompile(`^` + integer + `$`)
	floatRE   = regexp.MustCompile(`^` + number + `$`)
	iunitsRE  = regexp.MustCompile(`^` + integer + `\s*` + unit + `$`)
	funitsRE  = regexp.MustCompile(`^` + number + `\s*` + unit + `$`)
	rangeRE   = regexp.MustCompile(`^` + number + `\s*(?:` + unit + `)?\s*~\s*` + number + `\s*(?:` + unit + `)?$`)
	tokenRE   = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N}.+#_-]*$`)
)

// Result is the inferred type of one column.
type Result struct {
	Type catalog.ParameterType
	// Ambiguous is set when non-blank values matched no rule but String.
	Ambiguous bool
	// Values and Blanks count the sample values seen.
	Values, Blanks int
}

// Err returns an error wrapping ErrAmbiguous for an ambiguous result and
// nil otherwise.
func (r Result) Err() error {
	if !r.Ambiguous {
		return nil
	}
	return fmt.Errorf("%w: %d non-blank values fell back to %s", ErrAmbiguous, r.Values-r.Blanks, r.Type)
}

type rule struct {
	typ    catalog.ParameterType
	accept func(string) bool
	// column, when set, is checked once all values are accepted.
	column func([]string) bool
}

var rules = []rule{
	{typ: catalog.IntegerType, accept: integerRE.MatchString},
	{typ: catalog.FloatType, accept: floatRE.MatchString},
	{typ: catalog.IUnitsType, accept: iunitsRE.MatchString},
	{typ: catalog.FUnitsType, accept: funitsRE.MatchString},
	{typ: catalog.RangeType, accept: rangeRE.MatchString},
	{typ: catalog.ListType, accept: isList, column: anyMultiple},
	{typ: catalog.URLType, accept: isURL},
}

// Blank reports whether v counts as a missing value.
func Blank(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || v == "-"
}

// Column infers the type of a column from its sample values, header
// excluded.
func Column(values []string) Result {
	res := Result{Values: len(values)}
	var vs []string
	for _, v := range values {
		if Blank(v) {
			res.Blanks++
			continue
		}
		vs = append(vs, strings.TrimSpace(v))
	}
	if len(vs) == 0 {
		res.Type = catalog.EmptyType
		return res
	}
rules:
	for i := range rules {
		r := &rules[i]
		for _, v := range vs {
			if !r.accept(v) {
				continue rules
			}
		}
		if r.column != nil && !r.column(vs) {
			continue
		}
		res.Type = r.typ
		return res
	}
	res.Type = catalog.StringType
	res.Ambiguous = true
	return res
}

// listTokens splits v on ',' and '/'. Empty fields are kept, so a leading,
// trailing or doubled delimiter shows up as an empty token.
func listTokens(v string) []string {
	return strings.Split(strings.ReplaceAll(v, "/", ","), ",")
}

func isList(v string) bool {
	for _, tok := range listTokens(v) {
		if !tokenRE.MatchString(strings.TrimSpace(tok)) {
			return false
		}
	}
	return true
}

func anyMultiple(vs []string) bool {
	for _, v := range vs {
		if len(listTokens(v)) > 1 {
			return true
		}
	}
	return false
}

func isURL(v string) bool {
	u, err := url.ParseRequestURI(v)
	if err != nil {
		return false
	}
	switch u.Scheme {
	case "http", "https", "ftp":
		return u.Host != ""
	}
	return false
}
