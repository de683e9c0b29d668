// Package status defines the parsed representation of a fleet endpoint's
// /status payload.
//
// A [Record] only exists in fully validated form: [Parse] either returns a
// complete record or an error describing the first problem it found. There
// is no partially populated or defaulted record.
package status

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Record is the parsed payload reported by one endpoint's /status route.
type Record struct {
	// Application is the reporting application's name.
	Application string

	// Version is the application version, compared as an exact literal
	// when grouping ("1.0" and "1.00" are distinct).
	Version string

	// Uptime is the reported uptime in seconds.
	Uptime float64

	// RequestCount is the total number of requests the endpoint served.
	RequestCount uint64

	// ErrorCount is the number of failed requests.
	ErrorCount uint64

	// SuccessCount is the number of successful requests.
	SuccessCount uint64
}

// flexFloat accepts a JSON number or a numeric string ("123.45").
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) > 0 && s[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %s", data)
	}
	*f = flexFloat(v)
	return nil
}

// flexCount accepts a JSON number or a numeric string, and rejects
// negative or fractional values.
type flexCount uint64

func (c *flexCount) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) > 0 && s[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid count %s", data)
	}
	*c = flexCount(v)
	return nil
}

// payload mirrors the wire format. Fields are pointers so a missing key is
// distinguishable from a zero value.
type payload struct {
	Application  *string    `json:"Application"`
	Version      *string    `json:"Version"`
	Uptime       *flexFloat `json:"Uptime"`
	RequestCount *flexCount `json:"Request_Count"`
	ErrorCount   *flexCount `json:"Error_Count"`
	SuccessCount *flexCount `json:"Success_Count"`
}

// Parse decodes a /status payload into a [Record].
//
// All six fields are required. Numeric fields are accepted either as JSON
// numbers or as numeric strings, matching what the fleet actually emits.
// Any missing key, failed coercion, or negative value rejects the whole
// payload; there is no best-effort fallback.
func Parse(data []byte) (Record, error) {
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Record{}, fmt.Errorf("decode status payload: %w", err)
	}

	switch {
	case p.Application == nil:
		return Record{}, fmt.Errorf("missing field %q", "Application")
	case p.Version == nil:
		return Record{}, fmt.Errorf("missing field %q", "Version")
	case p.Uptime == nil:
		return Record{}, fmt.Errorf("missing field %q", "Uptime")
	case p.RequestCount == nil:
		return Record{}, fmt.Errorf("missing field %q", "Request_Count")
	case p.ErrorCount == nil:
		return Record{}, fmt.Errorf("missing field %q", "Error_Count")
	case p.SuccessCount == nil:
		return Record{}, fmt.Errorf("missing field %q", "Success_Count")
	}

	if *p.Uptime < 0 {
		return Record{}, fmt.Errorf("uptime must not be negative, got %v", float64(*p.Uptime))
	}

	return Record{
		Application:  *p.Application,
		Version:      *p.Version,
		Uptime:       float64(*p.Uptime),
		RequestCount: uint64(*p.RequestCount),
		ErrorCount:   uint64(*p.ErrorCount),
		SuccessCount: uint64(*p.SuccessCount),
	}, nil
}
