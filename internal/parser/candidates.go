package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"payroll/internal/domain"
)

var (
	fenceOpenRe  = regexp.MustCompile("^\\s*```[A-Za-z]*[ \\t]*\\r?\\n?")
	fenceCloseRe = regexp.MustCompile("\\r?\\n?[ \\t]*```\\s*$")
)

// StripCodeFence removes a leading ```json (or bare ```) line and a trailing ``` from s.
func StripCodeFence(s string) string {
	s = fenceOpenRe.ReplaceAllString(s, "")
	s = fenceCloseRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// DecodeCandidates parses the raw model answer into normalised candidates.
// The answer may be fenced, may be a bare array, a single object, or an object wrapping
// the array under "data", "workers" or "users". Any parse failure rejects the whole answer.
func DecodeCandidates(raw string) ([]domain.Candidate, error) {
	body := StripCodeFence(raw)
	if body == "" {
		return []domain.Candidate{}, nil
	}

	var items []rawCandidate
	switch body[0] {
	case '[':
		if err := json.Unmarshal([]byte(body), &items); err != nil {
			return nil, fmt.Errorf("%w: %v (raw: %s)", domain.ErrExtractionMalformed, err, Truncate(body, 200))
		}
	case '{':
		var wrapper struct {
			Data    []rawCandidate `json:"data"`
			Workers []rawCandidate `json:"workers"`
			Users   []rawCandidate `json:"users"`
		}
		if err := json.Unmarshal([]byte(body), &wrapper); err == nil {
			switch {
			case wrapper.Data != nil:
				items = wrapper.Data
			case wrapper.Workers != nil:
				items = wrapper.Workers
			case wrapper.Users != nil:
				items = wrapper.Users
			}
		}
		if items == nil {
			var single rawCandidate
			if err := json.Unmarshal([]byte(body), &single); err != nil {
				return nil, fmt.Errorf("%w: %v (raw: %s)", domain.ErrExtractionMalformed, err, Truncate(body, 200))
			}
			items = []rawCandidate{single}
		}
	default:
		return nil, fmt.Errorf("%w: not a JSON array or object (raw: %s)", domain.ErrExtractionMalformed, Truncate(body, 200))
	}

	out := make([]domain.Candidate, 0, len(items))
	for i := range items {
		c := items[i].candidate()
		c.Normalize()
		out = append(out, c)
	}
	return out, nil
}

type rawCandidate struct {
	Name     flexString `json:"name"`
	Identity flexString `json:"identity"`
	Phone    flexString `json:"phone"`
	Salary   flexInt    `json:"salary"`
	Bankcard flexString `json:"bankcard"`
	Address  flexString `json:"address"`
}

func (r *rawCandidate) candidate() domain.Candidate {
	return domain.Candidate{
		Identity: string(r.Identity),
		Name:     string(r.Name),
		Phone:    string(r.Phone),
		Bankcard: string(r.Bankcard),
		Address:  string(r.Address),
		Salary:   int(r.Salary),
	}
}

// flexString accepts a JSON string, a number (kept verbatim so long card numbers do not
// lose digits), or null.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0, bytes.Equal(b, []byte("null")):
		*f = ""
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
	case b[0] == '-' || (b[0] >= '0' && b[0] <= '9'):
		*f = flexString(b)
	case bytes.Equal(b, []byte("true")), bytes.Equal(b, []byte("false")):
		*f = ""
	default:
		return fmt.Errorf("unexpected JSON value %s", Truncate(string(b), 40))
	}
	return nil
}

// flexInt accepts a JSON number, a numeric string such as "4,900" or "4900元", or null.
// Unreadable values decode to 0, meaning "not recognised".
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	s := string(b)
	if b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	}
	s = strings.NewReplacer(",", "", "，", "", "元", "", "¥", "", " ", "").Replace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		*f = 0
		return nil
	}
	*f = flexInt(math.Round(v))
	return nil
}
